// Package cli provides CLI utilities for Osusume.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hyperjump/osusume/internal/models"
)

// OutputFormat is the format for recommendation output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteRecommendations writes a ranked result set to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteRecommendations(w io.Writer, response *models.QueryResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeRecommendationsText(w, response)
		return nil
	}
}

func writeRecommendationsText(w io.Writer, response *models.QueryResponse) {
	fmt.Fprintf(w, "\n%d recommendations for user %d in %dms",
		len(response.Results), response.UserID, response.QueryTime)
	if response.Query != "" {
		fmt.Fprintf(w, " (query: %q)", response.Query)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)
	for _, rec := range response.Results {
		writeOneRecommendation(w, rec)
	}
}

func writeOneRecommendation(w io.Writer, rec *models.Recommendation) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	marker := ""
	if rec.InReadList {
		marker = " | on to-read list"
	}
	fmt.Fprintf(w, "Rank: %d | Score: %.4f%s\n", rec.Rank, rec.FinalScore, marker)
	fmt.Fprintf(w, "Title: %s\n", Truncate(rec.Book.Title, 120))
	if rec.Book.Authors != "" {
		fmt.Fprintf(w, "Authors: %s\n", Truncate(rec.Book.Authors, 120))
	}
	if rec.Book.AverageRating > 0 {
		fmt.Fprintf(w, "Average rating: %.2f\n", rec.Book.AverageRating)
	}
	fmt.Fprintln(w)
}

// PrintRecommendations prints a result set to stdout in text format.
func PrintRecommendations(response *models.QueryResponse) {
	_ = WriteRecommendations(os.Stdout, response, OutputText)
}

// Truncate truncates s to maxLen and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// TruncateWords returns up to maxWords from the space-separated string.
func TruncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
