package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/ThanathipChokanantang/Airline-calculate/internal/config"
	"github.com/ThanathipChokanantang/Airline-calculate/internal/domain/models"
)

const decisionRange = "Decisions!A:L"

// GoogleSheetRepository appends confirmed route decisions to a spreadsheet
// using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed decision log.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendDecision writes the decision as one row of the Decisions sheet.
func (r *GoogleSheetRepository) AppendDecision(ctx context.Context, decision models.RouteDecision) error {
	row := []interface{}{
		decision.CreatedAt.Format(time.RFC3339),
		decision.OriginIATA,
		decision.DestinationIATA,
		decision.DestinationCity,
		decision.Continent,
		decision.DistanceKM,
		decision.Model,
		decision.Score,
		decision.WeeklyFrequency,
		decision.OriginDepartures,
		decision.DestinationDepartures,
		decision.Rationale,
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, decisionRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append decision into range %s: %w", decisionRange, err)
	}

	r.logger.Debug("decision appended to sheet",
		zap.String("destination", decision.DestinationIATA),
		zap.String("model", decision.Model))
	return nil
}
