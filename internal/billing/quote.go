package billing

import (
	"strings"

	"github.com/mylatitude/engage/internal/appointment"
)

// Simulated prices in euro; the demo has no real price list
const (
	basePrice       = 60
	cardiologyPrice = 90
	oncologyPrice   = 120
	bloodTestPrice  = 30
)

// Accepted payment methods
var PaymentMethods = []string{
	"Carta di credito",
	"Bancomat",
	"Satispay",
	"App bancaria",
}

// ValidMethod reports whether the payment method is accepted
func ValidMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// PriceFor returns the simulated price for a specialty
func PriceFor(specialty string) int {
	switch {
	case strings.Contains(specialty, "Cardio"):
		return cardiologyPrice
	case strings.Contains(specialty, "Oncologia"):
		return oncologyPrice
	case strings.Contains(specialty, "Prelievo"):
		return bloodTestPrice
	}
	return basePrice
}

// Quote is a payable upcoming visit with its simulated price
type Quote struct {
	AppointmentID int    `json:"appointment_id"`
	Specialty     string `json:"specialty"`
	Date          string `json:"date"`
	Amount        int    `json:"amount"`
	Currency      string `json:"currency"`
}

// QuoteFor builds the quote for an appointment
func QuoteFor(a appointment.Appointment) Quote {
	return Quote{
		AppointmentID: a.ID,
		Specialty:     a.Specialty,
		Date:          a.Date,
		Amount:        PriceFor(a.Specialty),
		Currency:      "EUR",
	}
}
