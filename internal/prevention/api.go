package prevention

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mylatitude/engage/internal/shared/errors"
)

// Handler provides HTTP handlers for prevention plans
type Handler struct{}

// NewHandler creates a new prevention handler
func NewHandler() *Handler {
	return &Handler{}
}

// Routes registers the prevention routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/plan", h.Plan)
	return r
}

// Plan builds a prevention plan for the given profile
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	writeJSON(w, http.StatusOK, BuildPlan(req))
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
