package patient

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mylatitude/engage/internal/appointment"
	"github.com/mylatitude/engage/internal/feedback"
	"github.com/mylatitude/engage/internal/shared/events"
)

func newTestHandler() (*Handler, *Store, *appointment.Store, *feedback.Store) {
	patients := NewStore()
	visits := appointment.NewStore(patients)
	entries := feedback.NewStore()
	return NewHandler(patients, visits, entries, events.NewBus()), patients, visits, entries
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndList(t *testing.T) {
	h, _, _, _ := newTestHandler()
	router := h.Routes()

	rec := doJSON(t, router, http.MethodPost, "/", CreatePatientRequest{
		Name: "Anna Rossi", Email: "Anna@Example.com", Age: 44, Sex: SexFemale,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var created Patient
	json.Unmarshal(rec.Body.Bytes(), &created)
	if created.ID != 1 {
		t.Errorf("Expected ID 1, got %d", created.ID)
	}
	if created.Email != "anna@example.com" {
		t.Errorf("Expected lowercased email, got '%s'", created.Email)
	}

	rec = doJSON(t, router, http.MethodGet, "/", nil)
	var all []Patient
	json.Unmarshal(rec.Body.Bytes(), &all)
	if len(all) != 1 {
		t.Errorf("Expected 1 patient listed, got %d", len(all))
	}
}

func TestListFilteredByEmail(t *testing.T) {
	h, store, _, _ := newTestHandler()
	router := h.Routes()

	store.Add(CreatePatientRequest{Name: "Anna", Email: "anna@example.com", Age: 44, Sex: SexFemale})
	store.Add(CreatePatientRequest{Name: "Bruno", Email: "bruno@example.com", Age: 50, Sex: SexMale})

	rec := doJSON(t, router, http.MethodGet, "/?email=ANNA@example.com", nil)
	var found []Patient
	json.Unmarshal(rec.Body.Bytes(), &found)
	if len(found) != 1 || found[0].Name != "Anna" {
		t.Errorf("Expected Anna only, got %v", found)
	}

	rec = doJSON(t, router, http.MethodGet, "/?email=nessuno@example.com", nil)
	if rec.Body.String() != "[]\n" {
		t.Errorf("Expected empty JSON array, got %s", rec.Body.String())
	}
}

func TestCreateValidationError(t *testing.T) {
	h, store, _, _ := newTestHandler()
	router := h.Routes()

	rec := doJSON(t, router, http.MethodPost, "/", CreatePatientRequest{
		Name: "", Email: "not-an-email", Age: 200, Sex: "X",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}

	var body struct {
		Error   string            `json:"error"`
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR, got %s", body.Code)
	}
	for _, field := range []string{"name", "email", "age", "sex"} {
		if _, present := body.Details[field]; !present {
			t.Errorf("Expected detail for '%s', got %v", field, body.Details)
		}
	}
	if store.Count() != 0 {
		t.Error("Rejected patient must not be stored")
	}
}

func TestGetUnknownPatient(t *testing.T) {
	h, _, _, _ := newTestHandler()

	rec := doJSON(t, h.Routes(), http.MethodGet, "/99", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestGetSummary(t *testing.T) {
	h, store, visits, entries := newTestHandler()
	router := h.Routes()

	store.Add(CreatePatientRequest{Name: "Anna", Email: "anna@example.com", Age: 44, Sex: SexFemale})
	visits.Add(appointment.CreateAppointmentRequest{PatientID: 1, Specialty: "Cardiologia", Date: "2026-10-01"})
	visits.Add(appointment.CreateAppointmentRequest{PatientID: 1, Specialty: "Dermatologia", Date: "2026-01-10"})
	visits.SetStatus(2, appointment.StatusCompleted)

	one := 1
	entries.Add(feedback.Feedback{PatientID: &one, Rating: 9})

	rec := doJSON(t, router, http.MethodGet, "/1/summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var summary Summary
	json.Unmarshal(rec.Body.Bytes(), &summary)
	if summary.Patient.ID != 1 {
		t.Errorf("Expected patient 1, got %d", summary.Patient.ID)
	}
	if len(summary.UpcomingAppointments) != 1 || summary.UpcomingAppointments[0].Specialty != "Cardiologia" {
		t.Errorf("Unexpected upcoming visits: %v", summary.UpcomingAppointments)
	}
	if len(summary.PastAppointments) != 1 || summary.PastAppointments[0].Specialty != "Dermatologia" {
		t.Errorf("Unexpected past visits: %v", summary.PastAppointments)
	}
	if summary.FeedbackCount != 1 {
		t.Errorf("Expected 1 feedback entry, got %d", summary.FeedbackCount)
	}
}

func TestGetSummaryEmptyListsAreArrays(t *testing.T) {
	h, store, _, _ := newTestHandler()
	store.Add(CreatePatientRequest{Name: "Anna", Email: "anna@example.com", Age: 44, Sex: SexFemale})

	rec := doJSON(t, h.Routes(), http.MethodGet, "/1/summary", nil)

	var raw map[string]json.RawMessage
	json.Unmarshal(rec.Body.Bytes(), &raw)
	for _, key := range []string{"upcoming_appointments", "past_appointments"} {
		if string(raw[key]) != "[]" {
			t.Errorf("Expected '%s' to be [], got %s", key, raw[key])
		}
	}
}
