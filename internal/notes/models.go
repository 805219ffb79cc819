// Package notes holds the timestamped note model and the in-memory store
// that backs a single video session.
package notes

import (
	"fmt"
	"math"
	"time"
)

const (
	CategoryGeneral   = "General"
	CategoryImportant = "Important"
	CategoryQuestion  = "Question"
	CategorySummary   = "Summary"
	CategoryCode      = "Code"
	CategoryReference = "Reference"

	DefaultCategory = CategoryGeneral
)

// Categories lists the labels a note may carry, in the order they are offered to the user.
var Categories = []string{
	CategoryGeneral,
	CategoryImportant,
	CategoryQuestion,
	CategorySummary,
	CategoryCode,
	CategoryReference,
}

var knownCategories = map[string]bool{
	CategoryGeneral:   true,
	CategoryImportant: true,
	CategoryQuestion:  true,
	CategorySummary:   true,
	CategoryCode:      true,
	CategoryReference: true,
}

type Note struct {
	ID            string    `json:"id"`
	Timestamp     float64   `json:"timestamp"`
	FormattedTime string    `json:"formatted_time"`
	Content       string    `json:"content"`
	Category      string    `json:"category"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsCategory reports whether name is one of the fixed note categories.
func IsCategory(name string) bool {
	return knownCategories[name]
}

// NormalizeCategory maps empty or unknown labels to DefaultCategory.
func NormalizeCategory(name string) string {
	if knownCategories[name] {
		return name
	}
	return DefaultCategory
}

const secondsPerDay = 24 * 60 * 60

// FormatTimestamp renders a playback position as HH:MM:SS. Fractional seconds
// are truncated, and hours wrap at 24 so the result is always 8 characters.
// Negative, NaN and infinite input render as 00:00:00.
func FormatTimestamp(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	// Wrap before converting; large floats overflow int64.
	total := int64(math.Mod(math.Floor(seconds), secondsPerDay))
	s := total % 60
	m := (total / 60) % 60
	h := total / 3600
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
