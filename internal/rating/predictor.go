// Package rating predicts per-user book affinity from a pre-trained
// matrix-factorization model. Training happens offline; this package only
// loads the exported artifact and serves predictions.
package rating

import "context"

// Predictor returns one predicted affinity score per book id, aligned to
// the input order.
type Predictor interface {
	Predict(ctx context.Context, userID int, bookIDs []int) ([]float64, error)
	// MaxUserID is the highest user id the model was trained on.
	MaxUserID() int
}
