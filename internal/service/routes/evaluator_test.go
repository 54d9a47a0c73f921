package routes

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThanathipChokanantang/Airline-calculate/internal/config"
	"github.com/ThanathipChokanantang/Airline-calculate/internal/domain/models"
	"github.com/ThanathipChokanantang/Airline-calculate/internal/fleet"
)

var testOrigin = config.RouteConfig{
	OriginIATA:    "BKK",
	OriginCity:    "Bangkok",
	OriginCountry: "Thailand",
}

// stubOracle is a deterministic gemini.Client substitute.
type stubOracle struct {
	generateFn     func(prompt string) (string, error)
	generateJSONFn func(prompt string) (string, error)
	jsonCalls      []string
}

func (s *stubOracle) Generate(_ context.Context, prompt string) (string, error) {
	if s.generateFn == nil {
		return "", errors.New("unexpected Generate call")
	}
	return s.generateFn(prompt)
}

func (s *stubOracle) GenerateJSON(_ context.Context, prompt string) (string, error) {
	s.jsonCalls = append(s.jsonCalls, prompt)
	if s.generateJSONFn == nil {
		return "", errors.New("unexpected GenerateJSON call")
	}
	return s.generateJSONFn(prompt)
}

func newTestService(oracle *stubOracle) *Service {
	return NewService(oracle, fleet.Default(), testOrigin, nil)
}

// oracleRow builds a well-formed 11-element reply for the given model.
func oracleRow(t *testing.T, model string, frequency int, score float64) string {
	t.Helper()

	times := make([]string, frequency)
	for i := range times {
		times[i] = "08:00"
	}
	timetable := strings.Join(times, ", ")

	row := []any{
		model, 15000, "288/40/0", 1950,
		"1500/200/0", "1400/180/0",
		frequency, timetable, timetable,
		score,
		"Healthy forecast demand and good slot availability make this aircraft a sound fit for the route.",
	}
	data, err := json.Marshal(row)
	require.NoError(t, err)
	return string(data)
}

func testQuery(distanceKM int) models.RouteQuery {
	return models.RouteQuery{
		OriginIATA:      "BKK",
		DestinationIATA: "LHR",
		DestinationCity: "London",
		Continent:       "Europe",
		DistanceKM:      distanceKM,
	}
}

func TestEvaluateShortCircuitsOutOfRangeAircraft(t *testing.T) {
	oracle := &stubOracle{
		generateJSONFn: func(prompt string) (string, error) {
			return oracleRow(t, "any", 3, 4.5), nil
		},
	}
	svc := newTestService(oracle)

	// 7000 km exceeds only the A320neo's 6300 km range.
	table, err := svc.Evaluate(context.Background(), testQuery(7000), nil)
	require.NoError(t, err)
	require.Len(t, table.Records, 7)

	assert.Len(t, oracle.jsonCalls, 6)
	for _, prompt := range oracle.jsonCalls {
		assert.NotContains(t, prompt, "A320neo (")
	}

	first := table.Records[0]
	assert.Equal(t, "A320neo", first.Model)
	assert.Zero(t, first.Score)
	assert.Equal(t, 0, first.WeeklyFrequency)
	assert.Equal(t, models.NotAvailable, first.OriginDepartures)
	assert.Equal(t, models.NotAvailable+"/"+models.NotAvailable, first.OutboundLoad)
}

func TestEvaluateNeverCallsOracleWhenNothingReaches(t *testing.T) {
	oracle := &stubOracle{}
	svc := newTestService(oracle)

	table, err := svc.Evaluate(context.Background(), testQuery(20000), nil)
	require.NoError(t, err)
	require.Len(t, table.Records, 7)

	assert.Empty(t, oracle.jsonCalls)
	for _, rec := range table.Records {
		assert.Zero(t, rec.Score, rec.Model)
	}
}

func TestEvaluatePreservesCatalogOrder(t *testing.T) {
	oracle := &stubOracle{
		generateJSONFn: func(prompt string) (string, error) {
			return oracleRow(t, "any", 2, 3.0), nil
		},
	}
	svc := newTestService(oracle)

	table, err := svc.Evaluate(context.Background(), testQuery(5000), nil)
	require.NoError(t, err)

	assert.Equal(t, fleet.Default().Models(), modelsOf(table))
}

func TestEvaluateMalformedReplyDegradesOneRowOnly(t *testing.T) {
	oracle := &stubOracle{
		generateJSONFn: func(prompt string) (string, error) {
			if strings.Contains(prompt, "B787-8 (") {
				return "this is not json", nil
			}
			return oracleRow(t, "ok", 3, 4.0), nil
		},
	}
	svc := newTestService(oracle)

	table, err := svc.Evaluate(context.Background(), testQuery(5000), nil)
	require.NoError(t, err)
	require.Len(t, table.Records, 7)

	fallbacks := 0
	for _, rec := range table.Records {
		if rec.Model == "B787-8" {
			fallbacks++
			assert.Equal(t, 1.0, rec.Score)
			assert.Contains(t, rec.Rationale, "failed validation")
			assert.Equal(t, models.NotAvailable, rec.SeatLayout)
		} else {
			assert.Equal(t, 4.0, rec.Score)
		}
	}
	assert.Equal(t, 1, fallbacks)
}

func TestEvaluateFrequencyTimetableMismatchIsMalformed(t *testing.T) {
	oracle := &stubOracle{
		generateJSONFn: func(prompt string) (string, error) {
			row := []any{
				"x", 15000, "288/40/0", 1950,
				"1500/200/0", "1400/180/0",
				4, "08:00, 12:00", "09:30, 18:00",
				4.5, "Timetable is shorter than the stated frequency which must fail validation here.",
			}
			data, _ := json.Marshal(row)
			return string(data), nil
		},
	}
	svc := newTestService(oracle)

	table, err := svc.Evaluate(context.Background(), testQuery(5000), nil)
	require.NoError(t, err)

	for _, rec := range table.Records {
		assert.Equal(t, 1.0, rec.Score, rec.Model)
		assert.Contains(t, rec.Rationale, "!= frequency")
	}
}

func TestEvaluateZeroScoreFromOracleIsMalformed(t *testing.T) {
	// 0.0 is reserved for the unreachable sentinel.
	oracle := &stubOracle{
		generateJSONFn: func(prompt string) (string, error) {
			return oracleRow(t, "x", 2, 0.0), nil
		},
	}
	svc := newTestService(oracle)

	table, err := svc.Evaluate(context.Background(), testQuery(5000), nil)
	require.NoError(t, err)

	for _, rec := range table.Records {
		assert.Equal(t, 1.0, rec.Score)
	}
}

func TestEvaluateWrongFieldCountIsMalformed(t *testing.T) {
	oracle := &stubOracle{
		generateJSONFn: func(prompt string) (string, error) {
			return `["only", "five", "fields", "in", "here"]`, nil
		},
	}
	svc := newTestService(oracle)

	table, err := svc.Evaluate(context.Background(), testQuery(5000), nil)
	require.NoError(t, err)

	for _, rec := range table.Records {
		assert.Equal(t, 1.0, rec.Score)
		assert.Contains(t, rec.Rationale, "expected 11 fields")
	}
}

func TestEvaluateOracleFailureAbortsWholeTable(t *testing.T) {
	calls := 0
	oracle := &stubOracle{
		generateJSONFn: func(prompt string) (string, error) {
			calls++
			if calls == 3 {
				return "", errors.New("connection refused")
			}
			return oracleRow(t, "ok", 2, 4.0), nil
		},
	}
	svc := newTestService(oracle)

	table, err := svc.Evaluate(context.Background(), testQuery(5000), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOracleUnavailable)
	assert.Nil(t, table)
}

func TestEvaluateRejectsNonPositiveDistance(t *testing.T) {
	svc := newTestService(&stubOracle{})

	_, err := svc.Evaluate(context.Background(), testQuery(0), nil)
	assert.Error(t, err)
}

func TestEvaluateProgressTicksOncePerAircraft(t *testing.T) {
	oracle := &stubOracle{
		generateJSONFn: func(prompt string) (string, error) {
			return oracleRow(t, "ok", 1, 3.5), nil
		},
	}
	svc := newTestService(oracle)

	var ticks []int
	_, err := svc.Evaluate(context.Background(), testQuery(7000), func(done, total int, model string) {
		ticks = append(ticks, done)
		assert.Equal(t, 7, total)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, ticks)
}

func TestVerifyAirport(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		consistent bool
		reason     string
	}{
		{name: "pass", reply: "PASS", consistent: true},
		{name: "pass with trailing text", reply: "PASS - all details match", consistent: true},
		{name: "fail", reply: "FAIL: HKT is in Phuket, not London", consistent: false, reason: "HKT is in Phuket, not London"},
		{name: "gibberish", reply: "maybe?", consistent: false, reason: "uninterpretable verdict: maybe?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := &stubOracle{
				generateFn: func(prompt string) (string, error) { return tt.reply, nil },
			}
			svc := newTestService(oracle)

			ok, reason, err := svc.VerifyAirport(context.Background(), "HKT", "Phuket", "Domestic")
			require.NoError(t, err)
			assert.Equal(t, tt.consistent, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestVerifyAirportOracleError(t *testing.T) {
	oracle := &stubOracle{
		generateFn: func(prompt string) (string, error) { return "", errors.New("401 unauthorized") },
	}
	svc := newTestService(oracle)

	_, _, err := svc.VerifyAirport(context.Background(), "HKT", "Phuket", "Domestic")
	assert.ErrorIs(t, err, ErrOracleUnavailable)
}

func TestFlightDistance(t *testing.T) {
	oracle := &stubOracle{
		generateFn: func(prompt string) (string, error) {
			assert.Contains(t, prompt, "BKK")
			assert.Contains(t, prompt, "LHR")
			return "The great-circle distance is 9544 kilometers.", nil
		},
	}
	svc := newTestService(oracle)

	distance, err := svc.FlightDistance(context.Background(), "lhr")
	require.NoError(t, err)
	assert.Equal(t, 9544, distance)
}

func TestFlightDistanceNoNumberInReply(t *testing.T) {
	oracle := &stubOracle{
		generateFn: func(prompt string) (string, error) { return "I could not determine that.", nil },
	}
	svc := newTestService(oracle)

	_, err := svc.FlightDistance(context.Background(), "LHR")
	assert.ErrorIs(t, err, ErrNoDistance)
}

func TestFlightDistanceOracleError(t *testing.T) {
	oracle := &stubOracle{
		generateFn: func(prompt string) (string, error) { return "", errors.New("timeout") },
	}
	svc := newTestService(oracle)

	_, err := svc.FlightDistance(context.Background(), "LHR")
	assert.ErrorIs(t, err, ErrOracleUnavailable)
}

func modelsOf(table *models.EvaluationTable) []string {
	out := make([]string, 0, len(table.Records))
	for _, rec := range table.Records {
		out = append(out, rec.Model)
	}
	return out
}
