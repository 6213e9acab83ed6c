package appointment

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mylatitude/engage/internal/notification"
	"github.com/mylatitude/engage/internal/shared/config"
	"github.com/mylatitude/engage/internal/shared/errors"
	"github.com/mylatitude/engage/internal/shared/events"
	"github.com/mylatitude/engage/internal/shared/metrics"
)

// PatientInfo resolves patient contact details for reminders
type PatientInfo interface {
	Info(id int) (name, phone string, err error)
}

// Handler provides HTTP handlers for the appointment module
type Handler struct {
	repo     *Store
	patients PatientInfo
	notifier *notification.Service
	hospital config.HospitalConfig
	bus      events.EventBus
}

// NewHandler creates a new appointment handler
func NewHandler(repo *Store, patients PatientInfo, notifier *notification.Service, hospital config.HospitalConfig, bus events.EventBus) *Handler {
	return &Handler{repo: repo, patients: patients, notifier: notifier, hospital: hospital, bus: bus}
}

// Routes registers the appointment routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/by_patient/{patientID}", h.ListByPatient)
	r.Post("/{appointmentID}/reminder", h.SendReminder)

	return r
}

// Create books a new appointment
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	a, err := h.repo.Add(req)
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.RecordAppointmentBooked(a.Specialty)

	if h.bus != nil {
		event := events.NewEvent("appointment.booked", "appointment", map[string]any{
			"appointment_id": a.ID,
			"patient_id":     a.PatientID,
			"specialty":      a.Specialty,
			"date":           a.Date,
		}).WithActor(strconv.Itoa(a.PatientID), "patient")
		h.bus.Publish(r.Context(), event)
	}

	writeJSON(w, http.StatusOK, a)
}

// ListByPatient lists a patient's appointments in booking order
func (h *Handler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "patientID"))
	if err != nil {
		writeError(w, errors.BadRequest("invalid patient ID"))
		return
	}

	out := h.repo.ListByPatient(id)
	if out == nil {
		out = []Appointment{}
	}
	writeJSON(w, http.StatusOK, out)
}

// ReminderRequest is the request to dispatch a preparation reminder
type ReminderRequest struct {
	TimeSlot string `json:"time_slot,omitempty"`
}

// SendReminder builds the preparation SMS for a visit and dispatches it
func (h *Handler) SendReminder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "appointmentID"))
	if err != nil {
		writeError(w, errors.BadRequest("invalid appointment ID"))
		return
	}

	var req ReminderRequest
	if r.Body != nil {
		// Empty body means default time slot
		json.NewDecoder(r.Body).Decode(&req)
	}
	if req.TimeSlot == "" {
		req.TimeSlot = "mattina"
	}

	a, err := h.repo.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	name, phone, err := h.patients.Info(a.PatientID)
	if err != nil {
		writeError(w, err)
		return
	}

	body := PreparationMessage(name, h.hospital.Name, req.TimeSlot, a)

	n, err := h.notifier.SendSMS(r.Context(), name, phone, body)
	if err != nil {
		writeError(w, errors.Wrap(err, "failed to send reminder"))
		return
	}

	metrics.RecordReminderSent()

	if h.bus != nil {
		event := events.NewEvent("appointment.reminder.sent", "appointment", map[string]any{
			"appointment_id": a.ID,
			"patient_id":     a.PatientID,
		}).WithActor(strconv.Itoa(a.PatientID), "system")
		h.bus.Publish(r.Context(), event)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"appointment_id": a.ID,
		"notification":   n,
	})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	if appErr, ok := err.(*errors.AppError); ok {
		w.WriteHeader(appErr.HTTPStatus)
		json.NewEncoder(w).Encode(map[string]any{
			"error":   appErr.Message,
			"code":    appErr.Code,
			"details": appErr.Details,
		})
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
}
