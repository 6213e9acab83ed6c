package patient

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mylatitude/engage/internal/appointment"
	"github.com/mylatitude/engage/internal/shared/errors"
	"github.com/mylatitude/engage/internal/shared/events"
	"github.com/mylatitude/engage/internal/shared/metrics"
)

// VisitSource provides appointment views for the summary
type VisitSource interface {
	ListByPatientAndStatus(patientID int, status appointment.Status) []appointment.Appointment
}

// FeedbackCounter counts feedback entries linked to a patient
type FeedbackCounter interface {
	CountByPatient(patientID int) int
}

// Handler provides HTTP handlers for the patient module
type Handler struct {
	repo     *Store
	visits   VisitSource
	feedback FeedbackCounter
	bus      events.EventBus
}

// NewHandler creates a new patient handler
func NewHandler(repo *Store, visits VisitSource, feedback FeedbackCounter, bus events.EventBus) *Handler {
	return &Handler{repo: repo, visits: visits, feedback: feedback, bus: bus}
}

// Routes registers the patient routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)

	r.Route("/{patientID}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Get("/summary", h.GetSummary)
	})

	return r
}

// List lists all patients, optionally filtered by email
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if email := r.URL.Query().Get("email"); email != "" {
		out := h.repo.FindByEmail(email)
		if out == nil {
			out = []Patient{}
		}
		writeJSON(w, http.StatusOK, out)
		return
	}

	writeJSON(w, http.StatusOK, h.repo.List())
}

// Create registers a new patient
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	p, err := h.repo.Add(req)
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.RecordPatientRegistered()

	if h.bus != nil {
		event := events.NewEvent("patient.registered", "patient", map[string]any{
			"patient_id": p.ID,
			"email":      p.Email,
		}).WithActor(strconv.Itoa(p.ID), "patient")
		h.bus.Publish(r.Context(), event)
	}

	writeJSON(w, http.StatusOK, p)
}

// Get returns a patient by ID
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "patientID"))
	if err != nil {
		writeError(w, errors.BadRequest("invalid patient ID"))
		return
	}

	p, err := h.repo.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// GetSummary returns the aggregate view of a patient's activity
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "patientID"))
	if err != nil {
		writeError(w, errors.BadRequest("invalid patient ID"))
		return
	}

	p, err := h.repo.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	upcoming := h.visits.ListByPatientAndStatus(id, appointment.StatusBooked)
	if upcoming == nil {
		upcoming = []appointment.Appointment{}
	}
	past := h.visits.ListByPatientAndStatus(id, appointment.StatusCompleted)
	if past == nil {
		past = []appointment.Appointment{}
	}

	writeJSON(w, http.StatusOK, Summary{
		Patient:              p,
		UpcomingAppointments: upcoming,
		PastAppointments:     past,
		FeedbackCount:        h.feedback.CountByPatient(id),
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
