package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ThanathipChokanantang/Airline-calculate/internal/domain/models"
)

const oracleFieldCount = 11

// Evaluate builds one EvaluationRecord per catalog entry, in catalog order.
// Aircraft whose range cannot cover the distance are short-circuited locally
// and never reach the oracle. A malformed per-aircraft reply degrades only
// that row; an oracle transport failure aborts the whole table.
func (s *Service) Evaluate(ctx context.Context, q models.RouteQuery, progress ProgressFunc) (*models.EvaluationTable, error) {
	if q.DistanceKM <= 0 {
		return nil, fmt.Errorf("distance must be positive, got %d", q.DistanceKM)
	}

	specs := s.catalog.Specs()
	table := &models.EvaluationTable{
		Query:   q,
		Records: make([]models.EvaluationRecord, 0, len(specs)),
	}

	for i, spec := range specs {
		if spec.RangeKM < q.DistanceKM {
			table.Records = append(table.Records, unreachableRecord(spec, q.DistanceKM))
			s.logger.Debug("range short-circuit, oracle skipped",
				zap.String("model", spec.Model),
				zap.Int("range_km", spec.RangeKM),
				zap.Int("distance_km", q.DistanceKM))
			if progress != nil {
				progress(i+1, len(specs), spec.Model)
			}
			continue
		}

		reply, err := s.oracle.GenerateJSON(ctx, evaluationPrompt(s.origin, q, spec))
		if err != nil {
			return nil, fmt.Errorf("%w: evaluate %s: %v", ErrOracleUnavailable, spec.Model, err)
		}

		rec, err := parseOracleRecord(reply, spec)
		if err != nil {
			s.logger.Warn("malformed oracle record, substituting fallback",
				zap.String("model", spec.Model),
				zap.Error(err))
			rec = fallbackRecord(spec, err)
		}
		table.Records = append(table.Records, rec)

		if progress != nil {
			progress(i+1, len(specs), spec.Model)
		}
	}

	return table, nil
}

// unreachableRecord is the deterministic sentinel row for an aircraft whose
// range cannot cover the queried distance. Score exactly 0.0 is reserved for
// this shape.
func unreachableRecord(spec models.AircraftSpec, distanceKM int) models.EvaluationRecord {
	return models.EvaluationRecord{
		Model:                 spec.Model,
		RangeKM:               spec.RangeKM,
		SeatLayout:            spec.SeatLayout(),
		HourlyCostUSD:         spec.HourlyCostUSD,
		OutboundLoad:          models.NotAvailable + "/" + models.NotAvailable,
		InboundLoad:           models.NotAvailable + "/" + models.NotAvailable,
		WeeklyFrequency:       0,
		OriginDepartures:      models.NotAvailable,
		DestinationDepartures: models.NotAvailable,
		Score:                 0.0,
		Rationale: fmt.Sprintf(
			"The %s does not have the range (%d km) to fly this route (%d km) non-stop, so it scores 0.0 stars.",
			spec.Model, spec.RangeKM, distanceKM),
	}
}

// fallbackRecord stands in for a structurally invalid oracle reply. The score
// of 1.0 distinguishes an oracle malfunction from an unreachable route.
func fallbackRecord(spec models.AircraftSpec, cause error) models.EvaluationRecord {
	return models.EvaluationRecord{
		Model:                 spec.Model,
		SeatLayout:            models.NotAvailable,
		OutboundLoad:          models.NotAvailable,
		InboundLoad:           models.NotAvailable,
		OriginDepartures:      models.NotAvailable,
		DestinationDepartures: models.NotAvailable,
		Score:                 1.0,
		Rationale:             fmt.Sprintf("The oracle reply for %s failed validation: %v", spec.Model, cause),
	}
}

// parseOracleRecord decodes the oracle's positional JSON array into a typed
// record. Any structural or semantic violation is returned as an error so
// the caller can substitute the fallback row.
func parseOracleRecord(reply string, spec models.AircraftSpec) (models.EvaluationRecord, error) {
	var raw []any
	if err := json.Unmarshal([]byte(reply), &raw); err != nil {
		return models.EvaluationRecord{}, fmt.Errorf("decode json array: %w", err)
	}
	if len(raw) != oracleFieldCount {
		return models.EvaluationRecord{}, fmt.Errorf("expected %d fields, got %d", oracleFieldCount, len(raw))
	}

	if _, err := asString(raw[0]); err != nil {
		return models.EvaluationRecord{}, fmt.Errorf("field 1 (model): %w", err)
	}

	rangeKM, err := asInt(raw[1])
	if err != nil {
		return models.EvaluationRecord{}, fmt.Errorf("field 2 (range): %w", err)
	}
	seatLayout, err := asString(raw[2])
	if err != nil {
		return models.EvaluationRecord{}, fmt.Errorf("field 3 (seat layout): %w", err)
	}
	hourlyCost, err := asInt(raw[3])
	if err != nil {
		return models.EvaluationRecord{}, fmt.Errorf("field 4 (hourly cost): %w", err)
	}
	outbound, err := asString(raw[4])
	if err != nil {
		return models.EvaluationRecord{}, fmt.Errorf("field 5 (outbound load): %w", err)
	}
	inbound, err := asString(raw[5])
	if err != nil {
		return models.EvaluationRecord{}, fmt.Errorf("field 6 (inbound load): %w", err)
	}
	frequency, err := asInt(raw[6])
	if err != nil {
		return models.EvaluationRecord{}, fmt.Errorf("field 7 (frequency): %w", err)
	}
	if frequency < 0 {
		return models.EvaluationRecord{}, fmt.Errorf("field 7 (frequency): negative value %d", frequency)
	}
	originTimes, err := asString(raw[7])
	if err != nil {
		return models.EvaluationRecord{}, fmt.Errorf("field 8 (origin departures): %w", err)
	}
	destTimes, err := asString(raw[8])
	if err != nil {
		return models.EvaluationRecord{}, fmt.Errorf("field 9 (destination departures): %w", err)
	}
	score, err := asFloat(raw[9])
	if err != nil {
		return models.EvaluationRecord{}, fmt.Errorf("field 10 (score): %w", err)
	}
	if score <= 0 {
		// 0.0 is the unreachable sentinel; the oracle must never emit it for
		// a route it was asked about.
		return models.EvaluationRecord{}, fmt.Errorf("field 10 (score): non-positive value %v", score)
	}
	rationale, err := asString(raw[10])
	if err != nil {
		return models.EvaluationRecord{}, fmt.Errorf("field 11 (rationale): %w", err)
	}

	if n := countDepartures(originTimes); n != frequency {
		return models.EvaluationRecord{}, fmt.Errorf("origin departures count %d != frequency %d", n, frequency)
	}
	if n := countDepartures(destTimes); n != frequency {
		return models.EvaluationRecord{}, fmt.Errorf("destination departures count %d != frequency %d", n, frequency)
	}

	return models.EvaluationRecord{
		Model:                 spec.Model,
		RangeKM:               rangeKM,
		SeatLayout:            seatLayout,
		HourlyCostUSD:         hourlyCost,
		OutboundLoad:          outbound,
		InboundLoad:           inbound,
		WeeklyFrequency:       frequency,
		OriginDepartures:      originTimes,
		DestinationDepartures: destTimes,
		Score:                 score,
		Rationale:             rationale,
	}, nil
}

func countDepartures(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || s == models.NotAvailable {
		return 0
	}
	n := 0
	for _, t := range strings.Split(s, ",") {
		if strings.TrimSpace(t) != "" {
			n++
		}
	}
	return n
}

func asString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", v)
	}
	return s, nil
}

// asFloat accepts JSON numbers and numeric strings; the oracle is not always
// strict about quoting.
func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("non-numeric string %q", n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

func asInt(v any) (int, error) {
	f, err := asFloat(v)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
