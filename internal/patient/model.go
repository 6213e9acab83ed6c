package patient

import "github.com/mylatitude/engage/internal/appointment"

// Sex is the self-declared sex of a patient
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
	SexOther  Sex = "Altro"
)

// Valid reports whether the value is one of the accepted options
func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexOther:
		return true
	}
	return false
}

// Patient represents a registered patient. Identifiers are sequential
// integers assigned by the store; email is stored lowercased and is not
// unique.
type Patient struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
	Sex   Sex    `json:"sex"`
	Phone string `json:"phone,omitempty"`
}

// CreatePatientRequest is the request to register a patient
type CreatePatientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
	Sex   Sex    `json:"sex"`
	Phone string `json:"phone,omitempty"`
}

// Summary is the aggregate view of a patient's activity
type Summary struct {
	Patient              Patient                   `json:"patient"`
	UpcomingAppointments []appointment.Appointment `json:"upcoming_appointments"`
	PastAppointments     []appointment.Appointment `json:"past_appointments"`
	FeedbackCount        int                       `json:"feedback_count"`
}
