// Package routes implements the route evaluation pipeline: airport
// verification, distance lookup and the per-aircraft evaluation table, with
// every non-trivial judgement delegated to an injected oracle.
package routes

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ThanathipChokanantang/Airline-calculate/internal/config"
	"github.com/ThanathipChokanantang/Airline-calculate/internal/domain/models"
	"github.com/ThanathipChokanantang/Airline-calculate/internal/fleet"
	"github.com/ThanathipChokanantang/Airline-calculate/pkg/clients/gemini"
)

// ErrOracleUnavailable marks transport or authentication failures of the
// oracle. It aborts the whole operation it occurred in: a model that cannot
// be reached for one aircraft cannot be reached for the next either.
var ErrOracleUnavailable = errors.New("oracle unavailable")

// ErrNoDistance indicates the oracle's reply contained no usable distance.
var ErrNoDistance = errors.New("no distance in oracle reply")

// ProgressFunc is invoked once per completed per-aircraft call. Observational
// only; nil is a valid value.
type ProgressFunc func(done, total int, model string)

// Planner is the surface the HTTP layer consumes.
type Planner interface {
	VerifyAirport(ctx context.Context, code, city, continent string) (bool, string, error)
	FlightDistance(ctx context.Context, code string) (int, error)
	Evaluate(ctx context.Context, q models.RouteQuery, progress ProgressFunc) (*models.EvaluationTable, error)
}

// Service is the production Planner backed by the Gemini oracle.
type Service struct {
	oracle  gemini.Client
	catalog *fleet.Catalog
	origin  config.RouteConfig
	logger  *zap.Logger
}

// NewService wires a new evaluation service instance.
func NewService(oracle gemini.Client, catalog *fleet.Catalog, origin config.RouteConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		oracle:  oracle,
		catalog: catalog,
		origin:  origin,
		logger:  logger,
	}
}

// VerifyAirport asks the oracle whether the (code, city, continent) triple is
// consistent with the real world. The second return value carries the
// oracle's explanation when the check fails.
func (s *Service) VerifyAirport(ctx context.Context, code, city, continent string) (bool, string, error) {
	reply, err := s.oracle.Generate(ctx, verifyPrompt(s.origin, code, city, continent))
	if err != nil {
		return false, "", fmt.Errorf("%w: verify airport %s: %v", ErrOracleUnavailable, code, err)
	}

	verdict := strings.TrimSpace(reply)
	switch {
	case strings.HasPrefix(verdict, "PASS"):
		return true, "", nil
	case strings.HasPrefix(verdict, "FAIL"):
		reason := strings.TrimSpace(strings.TrimPrefix(verdict, "FAIL"))
		reason = strings.TrimSpace(strings.TrimPrefix(reason, ":"))
		return false, reason, nil
	default:
		s.logger.Warn("uninterpretable verification verdict", zap.String("code", code), zap.String("verdict", verdict))
		return false, fmt.Sprintf("uninterpretable verdict: %s", verdict), nil
	}
}

var digitsPattern = regexp.MustCompile(`\d+`)

// FlightDistance resolves the great-circle distance in kilometers from the
// configured origin to the destination airport. The oracle is asked for a
// bare integer; the first run of digits in the reply wins.
func (s *Service) FlightDistance(ctx context.Context, code string) (int, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	reply, err := s.oracle.Generate(ctx, distancePrompt(s.origin, code))
	if err != nil {
		return 0, fmt.Errorf("%w: distance to %s: %v", ErrOracleUnavailable, code, err)
	}

	match := digitsPattern.FindString(reply)
	if match == "" {
		return 0, fmt.Errorf("%w: %q", ErrNoDistance, reply)
	}

	distance, err := strconv.Atoi(match)
	if err != nil || distance <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrNoDistance, reply)
	}

	s.logger.Info("flight distance resolved",
		zap.String("origin", s.origin.OriginIATA),
		zap.String("destination", code),
		zap.Int("distance_km", distance))

	return distance, nil
}
