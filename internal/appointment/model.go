package appointment

// Status is the lifecycle state of an appointment
type Status string

const (
	StatusBooked    Status = "prenotata"
	StatusCompleted Status = "completata"
	StatusCancelled Status = "cancellata"
)

// Valid reports whether the value is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusBooked, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment represents a booked visit. The date is an ISO-8601
// calendar date (YYYY-MM-DD) kept as received; date-dependent views
// skip entries that fail to parse rather than failing the listing.
type Appointment struct {
	ID        int    `json:"id"`
	PatientID int    `json:"patient_id"`
	Specialty string `json:"specialty"`
	Date      string `json:"date"`
	Reason    string `json:"reason,omitempty"`
	Status    Status `json:"status"`
}

// CreateAppointmentRequest is the request to book an appointment
type CreateAppointmentRequest struct {
	PatientID int    `json:"patient_id"`
	Specialty string `json:"specialty"`
	Date      string `json:"date"`
	Reason    string `json:"reason,omitempty"`
}
