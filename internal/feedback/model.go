package feedback

// Touchpoint is the category of care interaction a feedback entry
// refers to
type Touchpoint string

const (
	TouchpointVisit     Touchpoint = "visita"
	TouchpointAdmission Touchpoint = "ricovero"
	TouchpointER        Touchpoint = "pronto soccorso"
	TouchpointOther     Touchpoint = "altro"
)

// Feedback represents a submitted feedback entry. Entries are immutable
// and never looked up individually, so they carry no identifier.
type Feedback struct {
	PatientID  *int       `json:"patient_id,omitempty"`
	Rating     int        `json:"rating"`
	Comment    string     `json:"comment,omitempty"`
	Touchpoint Touchpoint `json:"touchpoint"`
}

// Summary holds the aggregate satisfaction figures
type Summary struct {
	NResponses    int     `json:"n_responses"`
	AverageRating float64 `json:"average_rating"`
	NPS           float64 `json:"nps"`
}
