package routes

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ThanathipChokanantang/Airline-calculate/internal/domain/models"
)

// UnreachableMarker is the display form of the score-0.0 sentinel.
const UnreachableMarker = "🚫 0.0 (out of range)"

// FormatScore renders a raw score value for display. Unparseable input maps
// to "N/A", 0.0 to the unreachable marker, anything else to whole-star
// glyphs, a half star when the fractional part lies in [0.25, 0.75), and the
// one-decimal numeric value in parentheses.
func FormatScore(raw string) string {
	score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(score) {
		return models.NotAvailable
	}

	if score == 0.0 {
		return UnreachableMarker
	}

	// Truncation toward zero, so a negative score renders zero stars
	// instead of raising.
	fullStars := int(score)
	frac := score - float64(fullStars)

	stars := ""
	if fullStars > 0 {
		stars = strings.Repeat("★", fullStars)
	}

	half := ""
	if frac >= 0.25 && frac < 0.75 {
		half = "½"
	}

	return fmt.Sprintf("%s%s (%.1f)", stars, half, score)
}

// FormatRecordScore is FormatScore for an already-typed record score.
func FormatRecordScore(score float64) string {
	if math.IsNaN(score) {
		return models.NotAvailable
	}
	return FormatScore(strconv.FormatFloat(score, 'f', -1, 64))
}

// Selectable returns the identifiers the user may pick: every record whose
// score is strictly positive, in table order. When any score is unparseable
// the filter fails open and returns every identifier unfiltered.
func Selectable(table *models.EvaluationTable) []string {
	if table == nil {
		return nil
	}

	all := make([]string, 0, len(table.Records))
	picked := make([]string, 0, len(table.Records))
	failOpen := false

	for _, rec := range table.Records {
		all = append(all, rec.Model)
		if math.IsNaN(rec.Score) {
			failOpen = true
			continue
		}
		if rec.Score > 0 {
			picked = append(picked, rec.Model)
		}
	}

	if failOpen {
		return all
	}
	return picked
}
