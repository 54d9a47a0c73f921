// Package decisions records the user's final aircraft pick for a route.
package decisions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ThanathipChokanantang/Airline-calculate/internal/domain/models"
	"github.com/ThanathipChokanantang/Airline-calculate/internal/service/routes"
)

// ErrNotSelectable indicates the requested model is not in the table's
// selectable set (unknown, unreachable, or zero-scored).
var ErrNotSelectable = errors.New("aircraft not selectable for this route")

// Store is the persistence surface for confirmed decisions.
type Store interface {
	SaveDecision(ctx context.Context, decision models.RouteDecision) error
	ListDecisions(ctx context.Context, limit int64) ([]models.RouteDecision, error)
}

// Sheet appends confirmed decisions to the spreadsheet log.
type Sheet interface {
	AppendDecision(ctx context.Context, decision models.RouteDecision) error
}

// Recorder is the surface the HTTP layer consumes.
type Recorder interface {
	Confirm(ctx context.Context, table *models.EvaluationTable, model string) (models.RouteDecision, error)
	Recent(ctx context.Context, limit int64) ([]models.RouteDecision, error)
}

// Service implements the Recorder interface.
type Service struct {
	store  Store
	sheet  Sheet
	logger *zap.Logger
	now    func() time.Time
}

// NewService constructs a decision recorder. The sheet may be nil when the
// spreadsheet log is not configured.
func NewService(store Store, sheet Sheet, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		sheet:  sheet,
		logger: logger,
		now:    time.Now,
	}
}

// Confirm validates the pick against the table's selectable set and persists
// the resulting decision. A spreadsheet append failure is logged but does not
// fail the confirmation; the MongoDB record is authoritative.
func (s *Service) Confirm(ctx context.Context, table *models.EvaluationTable, model string) (models.RouteDecision, error) {
	selectable := routes.Selectable(table)

	allowed := false
	for _, m := range selectable {
		if m == model {
			allowed = true
			break
		}
	}
	if !allowed {
		return models.RouteDecision{}, fmt.Errorf("%w: %s", ErrNotSelectable, model)
	}

	rec, ok := table.Lookup(model)
	if !ok {
		return models.RouteDecision{}, fmt.Errorf("%w: %s", ErrNotSelectable, model)
	}

	decision := models.RouteDecision{
		OriginIATA:            table.Query.OriginIATA,
		DestinationIATA:       table.Query.DestinationIATA,
		DestinationCity:       table.Query.DestinationCity,
		Continent:             table.Query.Continent,
		DistanceKM:            table.Query.DistanceKM,
		Model:                 rec.Model,
		Score:                 rec.Score,
		WeeklyFrequency:       rec.WeeklyFrequency,
		OriginDepartures:      rec.OriginDepartures,
		DestinationDepartures: rec.DestinationDepartures,
		Rationale:             rec.Rationale,
		CreatedAt:             s.now().UTC(),
	}

	if err := s.store.SaveDecision(ctx, decision); err != nil {
		return models.RouteDecision{}, fmt.Errorf("save decision: %w", err)
	}

	if s.sheet != nil {
		if err := s.sheet.AppendDecision(ctx, decision); err != nil {
			s.logger.Error("failed to append decision to sheet", zap.Error(err), zap.String("model", decision.Model))
		}
	}

	s.logger.Info("route decision confirmed",
		zap.String("destination", decision.DestinationIATA),
		zap.String("model", decision.Model),
		zap.Float64("score", decision.Score))

	return decision, nil
}

// Recent returns the most recently confirmed decisions.
func (s *Service) Recent(ctx context.Context, limit int64) ([]models.RouteDecision, error) {
	return s.store.ListDecisions(ctx, limit)
}
