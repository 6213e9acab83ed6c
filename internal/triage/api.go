package triage

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mylatitude/engage/internal/shared/errors"
	"github.com/mylatitude/engage/internal/shared/events"
	"github.com/mylatitude/engage/internal/shared/metrics"
)

// Handler provides HTTP handlers for the triage rules
type Handler struct {
	bus events.EventBus
}

// NewHandler creates a new triage handler
func NewHandler(bus events.EventBus) *Handler {
	return &Handler{bus: bus}
}

// FollowUpRoutes registers the follow-up check-in routes
func (h *Handler) FollowUpRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/checkin", h.CheckIn)
	return r
}

// SymptomRoutes registers the symptom triage routes
func (h *Handler) SymptomRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/symptoms", h.Symptoms)
	return r
}

// CheckInRequest is the follow-up check-in request
type CheckInRequest struct {
	PatientID         int    `json:"patient_id"`
	DaysFromProcedure int    `json:"days_from_procedure"`
	PainLevel         int    `json:"pain_level"`
	ShortnessOfBreath bool   `json:"shortness_of_breath"`
	Fever             bool   `json:"fever"`
	Notes             string `json:"notes,omitempty"`
}

// CheckIn evaluates a post-procedure follow-up check-in
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	result, err := EvaluateCheckIn(CheckIn{
		DaysFromProcedure: req.DaysFromProcedure,
		PainLevel:         req.PainLevel,
		ShortnessOfBreath: req.ShortnessOfBreath,
		Fever:             req.Fever,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.RecordCheckin(result.TriageLevel)

	if h.bus != nil {
		event := events.NewEvent("triage.checkin.evaluated", "triage", map[string]any{
			"patient_id":   req.PatientID,
			"triage_level": result.TriageLevel,
		}).WithActor(strconv.Itoa(req.PatientID), "patient")
		h.bus.Publish(r.Context(), event)
	}

	writeJSON(w, http.StatusOK, result)
}

// Symptoms estimates urgency for a symptom report
func (h *Handler) Symptoms(w http.ResponseWriter, r *http.Request) {
	var req SymptomReport
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	result, err := EvaluateSymptoms(req)
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.RecordSymptomReport(result.Level)

	writeJSON(w, http.StatusOK, result)
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
