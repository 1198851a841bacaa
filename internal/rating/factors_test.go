package rating

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func testModel(t *testing.T) *FactorModel {
	t.Helper()
	m, err := New(
		3.5,
		[]float64{0.2, -0.1},
		[]float64{0.1, 0.0, -0.3},
		[][]float64{{1, 0}, {0, 1}},
		[][]float64{{0.5, 0}, {0, 0.5}, {0.25, 0.25}},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return m
}

func TestFactorModel_Predict(t *testing.T) {
	m := testModel(t)
	ctx := context.Background()

	got, err := m.Predict(ctx, 1, []int{1, 2, 3})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	// user 1: mean 3.5 + bias 0.2, factors (1,0).
	want := []float64{
		3.5 + 0.2 + 0.1 + 0.5, // book 1
		3.5 + 0.2 + 0.0 + 0.0, // book 2
		3.5 + 0.2 - 0.3 + 0.25, // book 3
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("prediction %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFactorModel_Predict_Alignment(t *testing.T) {
	m := testModel(t)
	// Output order follows input order, not id order.
	got, err := m.Predict(context.Background(), 2, []int{3, 1})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 predictions, got %d", len(got))
	}
	direct, _ := m.Predict(context.Background(), 2, []int{1})
	if got[1] != direct[0] {
		t.Errorf("prediction for book 1 differs by position: %v vs %v", got[1], direct[0])
	}
}

func TestFactorModel_Predict_Clamped(t *testing.T) {
	m, err := New(
		10.0, // absurd mean forces clamping
		[]float64{0},
		[]float64{0},
		[][]float64{{1}},
		[][]float64{{1}},
	)
	if err != nil {
		t.Fatal(err)
	}
	got, err := m.Predict(context.Background(), 1, []int{1})
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != maxRating {
		t.Errorf("expected clamp to %v, got %v", maxRating, got[0])
	}
}

func TestFactorModel_Predict_UnknownUser(t *testing.T) {
	m := testModel(t)
	if _, err := m.Predict(context.Background(), 3, []int{1}); err == nil {
		t.Error("expected error for user outside model range")
	}
	if _, err := m.Predict(context.Background(), 0, []int{1}); err == nil {
		t.Error("expected error for user id 0")
	}
}

func TestNew_Mismatches(t *testing.T) {
	if _, err := New(3, []float64{0}, []float64{0, 0}, [][]float64{{1}, {1}}, [][]float64{{1}, {1}}); err == nil {
		t.Error("expected error for user bias/factor mismatch")
	}
	if _, err := New(3, nil, nil, nil, nil); err == nil {
		t.Error("expected error for empty model")
	}
}

func TestNew_RaggedFactors(t *testing.T) {
	// A ragged user row must fail at construction, not panic in Predict.
	if _, err := New(3,
		[]float64{0, 0},
		[]float64{0},
		[][]float64{{1, 2}, {1, 2, 3}},
		[][]float64{{1, 2}},
	); err == nil {
		t.Error("expected error for ragged user factor row")
	}
	if _, err := New(3,
		[]float64{0},
		[]float64{0, 0},
		[][]float64{{1, 2}},
		[][]float64{{1, 2}, {1}},
	); err == nil {
		t.Error("expected error for ragged item factor row")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	artifact := `{
		"global_mean": 3.9,
		"user_bias": [0.0],
		"item_bias": [0.0, 0.1],
		"user_factors": [[0.5, 0.5]],
		"item_factors": [[0.1, 0.1], [0.2, 0.2]]
	}`
	if err := os.WriteFile(path, []byte(artifact), 0600); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.MaxUserID() != 1 {
		t.Errorf("expected MaxUserID 1, got %d", m.MaxUserID())
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing model artifact")
	}
}
