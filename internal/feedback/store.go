package feedback

import (
	"math"
	"sync"

	"github.com/mylatitude/engage/internal/shared/errors"
)

// Store holds the process-lifetime feedback collection
type Store struct {
	mu      sync.RWMutex
	entries []Feedback
}

// NewStore creates an empty feedback store
func NewStore() *Store {
	return &Store{}
}

// Add validates and appends a feedback entry
func (s *Store) Add(f Feedback) (Feedback, error) {
	if f.Rating < 0 || f.Rating > 10 {
		return Feedback{}, errors.Validation("rating must be between 0 and 10", map[string]string{
			"rating": "rating must be between 0 and 10",
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, f)
	return f, nil
}

// CountByPatient counts feedback entries linked to a patient
func (s *Store) CountByPatient(patientID int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, f := range s.entries {
		if f.PatientID != nil && *f.PatientID == patientID {
			n++
		}
	}
	return n
}

// Count returns the number of feedback entries
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Summarize computes response count, average rating and the estimated
// NPS. Detractors rate 6 or below, promoters 9 or above; passives stay
// out of the numerator but count in the denominator. The formula is
// ((promoters-detractors)/n)*100, kept as in the reference behavior.
func (s *Store) Summarize() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) == 0 {
		return Summary{NResponses: 0, AverageRating: 0.0, NPS: 0.0}
	}

	sum := 0
	promoters := 0
	detractors := 0
	for _, f := range s.entries {
		sum += f.Rating
		if f.Rating >= 9 {
			promoters++
		} else if f.Rating <= 6 {
			detractors++
		}
	}

	n := len(s.entries)
	avg := float64(sum) / float64(n)
	nps := (float64(promoters-detractors) / float64(n)) * 100

	return Summary{
		NResponses:    n,
		AverageRating: round(avg, 2),
		NPS:           round(nps, 1),
	}
}

func round(v float64, decimals int) float64 {
	shift := math.Pow(10, float64(decimals))
	return math.Round(v*shift) / shift
}
