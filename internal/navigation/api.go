package navigation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mylatitude/engage/internal/shared/config"
	"github.com/mylatitude/engage/internal/shared/errors"
)

// Handler provides HTTP handlers for hospital navigation
type Handler struct {
	hospital config.HospitalConfig
}

// NewHandler creates a new navigation handler
func NewHandler(hospital config.HospitalConfig) *Handler {
	return &Handler{hospital: hospital}
}

// Routes registers the navigation routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/info", h.Info)
	return r
}

// Info builds the access guidance for a department
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	var req InfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	if strings.TrimSpace(req.Department) == "" {
		writeError(w, errors.Validation("validation failed", map[string]string{
			"department": "department is required",
		}))
		return
	}

	writeJSON(w, http.StatusOK, h.buildInfo(req))
}

func (h *Handler) buildInfo(req InfoRequest) Info {
	building := req.Building
	if building == "" {
		building = h.hospital.DefaultBuilding
	}

	floor := h.hospital.DefaultFloor
	if req.Floor != nil {
		floor = *req.Floor
	}

	guidance := []string{
		"Entra dall'ingresso principale.",
		fmt.Sprintf("Segui le indicazioni per il %s.", building),
		fmt.Sprintf("Sali al piano %d.", floor),
		fmt.Sprintf("Cerca la segnaletica per il reparto %s.", req.Department),
	}

	return Info{
		Department:  req.Department,
		Description: fmt.Sprintf("Informazioni di accesso per il reparto %s.", req.Department),
		Building:    building,
		Floor:       floor,
		Guidance:    guidance,
	}
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
