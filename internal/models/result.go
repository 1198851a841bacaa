package models

// Recommendation is a single ranked book with its final fused score.
// Intermediate signal columns are dropped before results leave the engine;
// only the fused score and display metadata survive.
type Recommendation struct {
	Book       *Book   `json:"book"`
	FinalScore float64 `json:"final_score"`
	// InReadList reports whether the book is on the user's to-read list.
	InReadList bool `json:"in_to_read_list"`
	Rank       int  `json:"rank"`
}

// QueryResponse is the response for a ranking request: up to K
// recommendations sorted by final score descending.
type QueryResponse struct {
	Results   []*Recommendation `json:"results"`
	UserID    int               `json:"user_id"`
	Query     string            `json:"query"`
	QueryTime int64             `json:"query_time_ms"`
}
