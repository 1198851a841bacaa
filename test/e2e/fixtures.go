package e2e

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/hyperjump/osusume/internal/models"
)

// WriteBooksCSV writes the corpus catalog in the ingest CSV layout.
func WriteBooksCSV(path string, books []*models.Book) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"book_id", "title", "authors", "average_rating"}); err != nil {
		return err
	}
	for _, b := range books {
		record := []string{
			strconv.Itoa(b.ID),
			b.Title,
			b.Authors,
			fmt.Sprintf("%.2f", b.AverageRating),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteReadListCSV writes (user_id, book_id) pairs in the ingest CSV layout.
func WriteReadListCSV(path string, entries []models.ReadListEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"user_id", "book_id"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := w.Write([]string{strconv.Itoa(e.UserID), strconv.Itoa(e.BookID)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteRatingModel writes a trained-model artifact covering the given user
// and item counts. Biases vary slightly per user so predictions are not all
// identical.
func WriteRatingModel(path string, users, items int) error {
	userBias := make([]float64, users)
	userFactors := make([][]float64, users)
	for i := range userFactors {
		userBias[i] = float64(i%5) * 0.05
		userFactors[i] = []float64{0.1, -0.05, 0.2}
	}
	itemBias := make([]float64, items)
	itemFactors := make([][]float64, items)
	for i := range itemFactors {
		itemBias[i] = float64(i%7) * 0.03
		itemFactors[i] = []float64{0.05, 0.1, -0.1}
	}
	art := map[string]interface{}{
		"global_mean":  3.6,
		"user_bias":    userBias,
		"item_bias":    itemBias,
		"user_factors": userFactors,
		"item_factors": itemFactors,
	}
	data, err := json.MarshalIndent(art, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
