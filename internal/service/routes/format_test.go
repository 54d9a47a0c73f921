package routes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ThanathipChokanantang/Airline-calculate/internal/domain/models"
)

func TestFormatScore(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "0", want: UnreachableMarker},
		{raw: "0.0", want: UnreachableMarker},
		{raw: "3.1", want: "★★★ (3.1)"},
		{raw: "2", want: "★★ (2.0)"},
		{raw: "4.5", want: "★★★★½ (4.5)"},
		{raw: "0.5", want: "½ (0.5)"},
		{raw: "not-a-number", want: models.NotAvailable},
		{raw: "", want: models.NotAvailable},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatScore(tt.raw), "raw=%q", tt.raw)
	}
}

func TestFormatScoreHalfStarBoundaries(t *testing.T) {
	// Half star only when the fractional part lies in [0.25, 0.75).
	assert.NotContains(t, FormatScore("3.24"), "½")
	assert.Contains(t, FormatScore("3.25"), "½")
	assert.Contains(t, FormatScore("3.74"), "½")
	assert.NotContains(t, FormatScore("3.75"), "½")

	// 3.75 rounds up to the next tenth in the numeric suffix instead.
	assert.Equal(t, "★★★ (3.8)", FormatScore("3.75"))
}

func TestFormatScoreNegativeFailsOpen(t *testing.T) {
	// Negative values never occur in a valid table, but the formatter must
	// still render rather than raise.
	assert.NotPanics(t, func() { FormatScore("-1") })
	assert.Equal(t, " (-1.0)", FormatScore("-1"))
	assert.Equal(t, " (-2.5)", FormatScore("-2.5"))
	assert.NotContains(t, FormatScore("-2.5"), "½")
	assert.Equal(t, " (-0.5)", FormatScore("-0.5"))
}

func TestFormatScoreIsPure(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, UnreachableMarker, FormatScore("0.0"))
	}
}

func TestFormatRecordScore(t *testing.T) {
	assert.Equal(t, UnreachableMarker, FormatRecordScore(0))
	assert.Equal(t, "★★★★½ (4.5)", FormatRecordScore(4.5))
	assert.Equal(t, models.NotAvailable, FormatRecordScore(math.NaN()))
}

func tableWithScores(scores ...float64) *models.EvaluationTable {
	table := &models.EvaluationTable{}
	names := []string{"A320neo", "A321neo", "A350-900", "A350-900ULR", "B787-8", "B787-9", "B777-300ER"}
	for i, score := range scores {
		table.Records = append(table.Records, models.EvaluationRecord{
			Model: names[i],
			Score: score,
		})
	}
	return table
}

func TestSelectableExcludesUnreachable(t *testing.T) {
	table := tableWithScores(0.0, 2.0, 0.0, 4.5)

	assert.Equal(t, []string{"A321neo", "A350-900ULR"}, Selectable(table))
}

func TestSelectableFailsOpenOnUnparseableScore(t *testing.T) {
	table := tableWithScores(0.0, math.NaN(), 4.0)

	assert.Equal(t, []string{"A320neo", "A321neo", "A350-900"}, Selectable(table))
}

func TestSelectableNilTable(t *testing.T) {
	assert.Nil(t, Selectable(nil))
}
