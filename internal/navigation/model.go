package navigation

// InfoRequest asks for access guidance to a department. Building and
// floor fall back to the facility defaults when absent.
type InfoRequest struct {
	Department string `json:"department"`
	Building   string `json:"building,omitempty"`
	Floor      *int   `json:"floor,omitempty"`
}

// Info is the access guidance for a department
type Info struct {
	Department  string   `json:"department"`
	Description string   `json:"description"`
	Building    string   `json:"building"`
	Floor       int      `json:"floor"`
	Guidance    []string `json:"guidance"`
}
