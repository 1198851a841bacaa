package rating

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Rating scale the model was trained on; predictions are clamped to it.
const (
	minRating = 1.0
	maxRating = 5.0
)

// FactorModel is an SVD-style matrix factorization: prediction is the
// global mean plus user and item biases plus the dot product of latent
// factors. The model is read-only after Load; failing to load it is a
// startup-time fatal, not a per-query error.
type FactorModel struct {
	globalMean  float64
	userBias    []float64
	itemBias    []float64
	userFactors [][]float64
	itemFactors [][]float64
}

// modelArtifact is the exported-model JSON layout. Users and items are
// 1-based ids indexing the slices at id-1.
type modelArtifact struct {
	GlobalMean  float64     `json:"global_mean"`
	UserBias    []float64   `json:"user_bias"`
	ItemBias    []float64   `json:"item_bias"`
	UserFactors [][]float64 `json:"user_factors"`
	ItemFactors [][]float64 `json:"item_factors"`
}

// Load reads a trained model artifact from path.
func Load(path string) (*FactorModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rating model %s: %w", path, err)
	}
	var art modelArtifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("failed to parse rating model %s: %w", path, err)
	}
	return New(art.GlobalMean, art.UserBias, art.ItemBias, art.UserFactors, art.ItemFactors)
}

// New builds a model from already-decoded parameters, checking that biases
// and factors agree on user and item counts.
func New(globalMean float64, userBias, itemBias []float64, userFactors, itemFactors [][]float64) (*FactorModel, error) {
	if len(userFactors) == 0 || len(itemFactors) == 0 {
		return nil, fmt.Errorf("rating model has no factors")
	}
	if len(userBias) != len(userFactors) {
		return nil, fmt.Errorf("user bias/factor count mismatch: %d vs %d", len(userBias), len(userFactors))
	}
	if len(itemBias) != len(itemFactors) {
		return nil, fmt.Errorf("item bias/factor count mismatch: %d vs %d", len(itemBias), len(itemFactors))
	}
	dim := len(userFactors[0])
	for i, f := range userFactors {
		if len(f) != dim {
			return nil, fmt.Errorf("user %d factor dimension %d, want %d", i+1, len(f), dim)
		}
	}
	for i, f := range itemFactors {
		if len(f) != dim {
			return nil, fmt.Errorf("item %d factor dimension %d, want %d", i+1, len(f), dim)
		}
	}
	return &FactorModel{
		globalMean:  globalMean,
		userBias:    userBias,
		itemBias:    itemBias,
		userFactors: userFactors,
		itemFactors: itemFactors,
	}, nil
}

// Predict returns one clamped prediction per book id, aligned to bookIDs.
// Unknown book ids predict the global mean plus the user bias.
func (m *FactorModel) Predict(ctx context.Context, userID int, bookIDs []int) ([]float64, error) {
	if userID < 1 || userID > len(m.userFactors) {
		return nil, fmt.Errorf("user id %d outside model range [1, %d]", userID, len(m.userFactors))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	uf := m.userFactors[userID-1]
	ub := m.userBias[userID-1]

	out := make([]float64, len(bookIDs))
	for i, id := range bookIDs {
		pred := m.globalMean + ub
		if id >= 1 && id <= len(m.itemFactors) {
			pred += m.itemBias[id-1]
			itf := m.itemFactors[id-1]
			for k := range uf {
				pred += uf[k] * itf[k]
			}
		}
		if pred < minRating {
			pred = minRating
		} else if pred > maxRating {
			pred = maxRating
		}
		out[i] = pred
	}
	return out, nil
}

// MaxUserID returns the highest user id covered by the model.
func (m *FactorModel) MaxUserID() int {
	return len(m.userFactors)
}
