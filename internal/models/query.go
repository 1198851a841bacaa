package models

// QueryRequest represents a ranking request for one user and free-text query.
type QueryRequest struct {
	UserID int    `json:"user_id"`
	Text   string `json:"text"`
	// BoostFactor multiplies the score of books on the user's to-read list.
	// Must be > 1 once defaults are applied.
	BoostFactor float64 `json:"boost_factor,omitempty"`
	// K is how many ranked books to return.
	K int `json:"k,omitempty"`
	// SaveResult persists the ranked set keyed by (user id, text).
	SaveResult bool `json:"save_result,omitempty"`
}

// Default request parameters. Validation of the filled-in values happens at
// the engine entry point, before any model call.
const (
	DefaultBoostFactor = 1.5
	DefaultK           = 20
)

// ApplyDefaults fills zero-valued optional fields. It does not validate;
// a caller-supplied BoostFactor of 0.5 is left for the engine to reject.
func (q *QueryRequest) ApplyDefaults() {
	if q.BoostFactor == 0 {
		q.BoostFactor = DefaultBoostFactor
	}
	if q.K == 0 {
		q.K = DefaultK
	}
}
