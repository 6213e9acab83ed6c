package appointment

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mylatitude/engage/internal/shared/errors"
)

// PatientDirectory resolves patient references at booking time
type PatientDirectory interface {
	Exists(id int) bool
}

// Store holds the process-lifetime appointment collection. Records are
// append-only; status may be advanced but entries are never removed, so
// count+1 identifiers stay monotonic.
type Store struct {
	mu           sync.RWMutex
	appointments []Appointment
	patients     PatientDirectory
}

// NewStore creates an empty appointment store backed by the given
// patient directory
func NewStore(patients PatientDirectory) *Store {
	return &Store{patients: patients}
}

// Add validates and appends a new appointment with status "prenotata".
// The patient reference is checked once, at creation time.
func (s *Store) Add(req CreateAppointmentRequest) (Appointment, error) {
	details := map[string]string{}
	if strings.TrimSpace(req.Specialty) == "" {
		details["specialty"] = "specialty is required"
	}
	if strings.TrimSpace(req.Date) == "" {
		details["date"] = "date is required"
	}
	if len(details) > 0 {
		return Appointment{}, errors.Validation("validation failed", details)
	}

	if !s.patients.Exists(req.PatientID) {
		return Appointment{}, errors.NotFound("patient", strconv.Itoa(req.PatientID))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := Appointment{
		ID:        len(s.appointments) + 1,
		PatientID: req.PatientID,
		Specialty: req.Specialty,
		Date:      req.Date,
		Reason:    req.Reason,
		Status:    StatusBooked,
	}
	s.appointments = append(s.appointments, a)
	return a, nil
}

// Get returns an appointment by ID
func (s *Store) Get(id int) (Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return Appointment{}, errors.NotFound("appointment", strconv.Itoa(id))
}

// ListByPatient returns the patient's appointments in insertion order
func (s *Store) ListByPatient(patientID int) []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Appointment
	for _, a := range s.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out
}

// ListByPatientAndStatus filters by patient and status, preserving
// insertion order
func (s *Store) ListByPatientAndStatus(patientID int, status Status) []Appointment {
	var out []Appointment
	for _, a := range s.ListByPatient(patientID) {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

// FutureByPatient returns the patient's appointments dated today or
// later. Entries whose date does not parse as YYYY-MM-DD are excluded
// from the view, never an error.
func (s *Store) FutureByPatient(patientID int, today time.Time) []Appointment {
	day := today.Format("2006-01-02")

	var out []Appointment
	for _, a := range s.ListByPatient(patientID) {
		if _, err := time.Parse("2006-01-02", a.Date); err != nil {
			continue
		}
		// ISO dates order lexicographically
		if a.Date >= day {
			out = append(out, a)
		}
	}
	return out
}

// SetStatus advances the status of an appointment. There is no public
// endpoint for this; it is driven by back-office processes.
func (s *Store) SetStatus(id int, status Status) error {
	if !status.Valid() {
		return errors.Validation("validation failed", map[string]string{
			"status": "status must be prenotata, completata or cancellata",
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.appointments {
		if s.appointments[i].ID == id {
			s.appointments[i].Status = status
			return nil
		}
	}
	return errors.NotFound("appointment", strconv.Itoa(id))
}

// Count returns the number of booked appointments
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.appointments)
}
