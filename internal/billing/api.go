package billing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mylatitude/engage/internal/appointment"
	"github.com/mylatitude/engage/internal/shared/errors"
	"github.com/mylatitude/engage/internal/shared/events"
	"github.com/mylatitude/engage/internal/shared/metrics"
)

// AppointmentSource provides the visits that can be paid for
type AppointmentSource interface {
	Get(id int) (appointment.Appointment, error)
	FutureByPatient(patientID int, today time.Time) []appointment.Appointment
}

// Handler provides HTTP handlers for the payment simulation
type Handler struct {
	appointments AppointmentSource
	bus          events.EventBus
	now          func() time.Time
}

// NewHandler creates a new billing handler
func NewHandler(appointments AppointmentSource, bus events.EventBus) *Handler {
	return &Handler{appointments: appointments, bus: bus, now: time.Now}
}

// Routes registers the billing routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/quotes/by_patient/{patientID}", h.QuotesByPatient)
	r.Post("/pay", h.Pay)
	return r
}

// QuotesByPatient returns the payable future visits for a patient.
// Appointments with unparsable dates are left out of the list.
func (h *Handler) QuotesByPatient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "patientID"))
	if err != nil {
		writeError(w, errors.BadRequest("invalid patient ID"))
		return
	}

	quotes := []Quote{}
	for _, a := range h.appointments.FutureByPatient(id, h.now()) {
		quotes = append(quotes, QuoteFor(a))
	}

	writeJSON(w, http.StatusOK, quotes)
}

// PayRequest is the request to simulate a payment
type PayRequest struct {
	AppointmentID int    `json:"appointment_id"`
	Method        string `json:"method"`
}

// Receipt is the outcome of a simulated payment
type Receipt struct {
	PaymentID     string `json:"payment_id"`
	AppointmentID int    `json:"appointment_id"`
	Method        string `json:"method"`
	Amount        int    `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

// Pay simulates a payment for a visit; no real transaction happens
func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	var req PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	if !ValidMethod(req.Method) {
		writeError(w, errors.Validation("validation failed", map[string]string{
			"method": "method must be one of: Carta di credito, Bancomat, Satispay, App bancaria",
		}))
		return
	}

	a, err := h.appointments.Get(req.AppointmentID)
	if err != nil {
		writeError(w, err)
		return
	}

	receipt := Receipt{
		PaymentID:     uuid.New().String(),
		AppointmentID: a.ID,
		Method:        req.Method,
		Amount:        PriceFor(a.Specialty),
		Currency:      "EUR",
		Status:        "completato",
		Message: fmt.Sprintf(
			"Pagamento simulato completato per la visita %d con %s (demo: nessuna transazione reale).",
			a.ID, req.Method),
	}

	metrics.RecordPaymentSimulated(req.Method)

	if h.bus != nil {
		event := events.NewEvent("billing.payment.simulated", "billing", map[string]any{
			"payment_id":     receipt.PaymentID,
			"appointment_id": a.ID,
			"amount":         receipt.Amount,
			"method":         req.Method,
		}).WithActor(strconv.Itoa(a.PatientID), "patient")
		h.bus.Publish(r.Context(), event)
	}

	writeJSON(w, http.StatusOK, receipt)
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
