package patient

import (
	"strconv"
	"strings"
	"sync"

	"github.com/mylatitude/engage/internal/shared/errors"
)

// Store holds the process-lifetime patient collection. Records are
// append-only; identifiers are assigned as count+1 at creation, which
// stays monotonic because nothing is ever removed.
type Store struct {
	mu       sync.RWMutex
	patients []Patient
}

// NewStore creates an empty patient store
func NewStore() *Store {
	return &Store{}
}

// Add validates and appends a new patient, assigning the next ID
func (s *Store) Add(req CreatePatientRequest) (Patient, error) {
	details := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		details["name"] = "name is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		details["email"] = "email is required"
	} else if !strings.Contains(req.Email, "@") {
		details["email"] = "email must contain @"
	}
	if req.Age < 0 || req.Age > 120 {
		details["age"] = "age must be between 0 and 120"
	}
	if !req.Sex.Valid() {
		details["sex"] = "sex must be M, F or Altro"
	}
	if len(details) > 0 {
		return Patient{}, errors.Validation("validation failed", details)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := Patient{
		ID:    len(s.patients) + 1,
		Name:  req.Name,
		Email: strings.ToLower(req.Email),
		Age:   req.Age,
		Sex:   req.Sex,
		Phone: req.Phone,
	}
	s.patients = append(s.patients, p)
	return p, nil
}

// List returns all patients in insertion order
func (s *Store) List() []Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Patient, len(s.patients))
	copy(out, s.patients)
	return out
}

// Get returns a patient by ID
func (s *Store) Get(id int) (Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.patients {
		if p.ID == id {
			return p, nil
		}
	}
	return Patient{}, errors.NotFound("patient", strconv.Itoa(id))
}

// Exists reports whether a patient with the given ID is registered
func (s *Store) Exists(id int) bool {
	_, err := s.Get(id)
	return err == nil
}

// Info returns the contact details used for notifications
func (s *Store) Info(id int) (name, phone string, err error) {
	p, err := s.Get(id)
	if err != nil {
		return "", "", err
	}
	return p.Name, p.Phone, nil
}

// FindByEmail returns patients whose stored email matches, ignoring
// case. An empty email matches nothing.
func (s *Store) FindByEmail(email string) []Patient {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Patient
	for _, p := range s.patients {
		if strings.ToLower(p.Email) == email {
			out = append(out, p)
		}
	}
	return out
}

// Count returns the number of registered patients
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.patients)
}
