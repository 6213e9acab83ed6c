package feedback

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mylatitude/engage/internal/shared/errors"
	"github.com/mylatitude/engage/internal/shared/events"
	"github.com/mylatitude/engage/internal/shared/metrics"
)

// Handler provides HTTP handlers for the feedback module
type Handler struct {
	repo *Store
	bus  events.EventBus
}

// NewHandler creates a new feedback handler
func NewHandler(repo *Store, bus events.EventBus) *Handler {
	return &Handler{repo: repo, bus: bus}
}

// Routes registers the feedback routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/summary", h.GetSummary)

	return r
}

// Create records a feedback entry and echoes it back
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req Feedback
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	f, err := h.repo.Add(req)
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.RecordFeedback(string(f.Touchpoint))

	if h.bus != nil {
		event := events.NewEvent("feedback.received", "feedback", map[string]any{
			"rating":     f.Rating,
			"touchpoint": f.Touchpoint,
		})
		h.bus.Publish(r.Context(), event)
	}

	writeJSON(w, http.StatusOK, f)
}

// GetSummary returns aggregate satisfaction figures
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.repo.Summarize())
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
