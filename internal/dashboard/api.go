package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mylatitude/engage/internal/appointment"
	"github.com/mylatitude/engage/internal/feedback"
	"github.com/mylatitude/engage/internal/patient"
)

// maxPatientRows caps the per-patient extract in the clinic view
const maxPatientRows = 10

// PatientSource lists registered patients
type PatientSource interface {
	List() []patient.Patient
	Count() int
}

// VisitSource provides appointment views per patient
type VisitSource interface {
	ListByPatientAndStatus(patientID int, status appointment.Status) []appointment.Appointment
}

// FeedbackSource provides satisfaction figures
type FeedbackSource interface {
	Summarize() feedback.Summary
	CountByPatient(patientID int) int
}

// PatientRow is one line of the per-patient extract
type PatientRow struct {
	PatientID      int    `json:"patient_id"`
	Name           string `json:"name"`
	UpcomingVisits int    `json:"upcoming_visits"`
	PastVisits     int    `json:"past_visits"`
	FeedbackCount  int    `json:"feedback_count"`
}

// Summary is the clinic-facing overview
type Summary struct {
	ActivePatients int              `json:"active_patients"`
	Feedback       feedback.Summary `json:"feedback"`
	Patients       []PatientRow     `json:"patients"`
}

// Handler provides HTTP handlers for the clinic dashboard
type Handler struct {
	patients PatientSource
	visits   VisitSource
	feedback FeedbackSource
}

// NewHandler creates a new dashboard handler
func NewHandler(patients PatientSource, visits VisitSource, feedback FeedbackSource) *Handler {
	return &Handler{patients: patients, visits: visits, feedback: feedback}
}

// Routes registers the dashboard routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/summary", h.GetSummary)
	return r
}

// GetSummary returns the clinic overview: patient volume, satisfaction
// figures and a per-patient extract
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	all := h.patients.List()

	rows := []PatientRow{}
	for i, p := range all {
		if i >= maxPatientRows {
			break
		}
		rows = append(rows, PatientRow{
			PatientID:      p.ID,
			Name:           p.Name,
			UpcomingVisits: len(h.visits.ListByPatientAndStatus(p.ID, appointment.StatusBooked)),
			PastVisits:     len(h.visits.ListByPatientAndStatus(p.ID, appointment.StatusCompleted)),
			FeedbackCount:  h.feedback.CountByPatient(p.ID),
		})
	}

	writeJSON(w, http.StatusOK, Summary{
		ActivePatients: h.patients.Count(),
		Feedback:       h.feedback.Summarize(),
		Patients:       rows,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
