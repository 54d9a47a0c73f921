package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ThanathipChokanantang/Airline-calculate/internal/domain/models"
	"github.com/ThanathipChokanantang/Airline-calculate/internal/service/decisions"
	"github.com/ThanathipChokanantang/Airline-calculate/internal/service/routes"
)

const decisionListLimit = 20

// RoutesHandler exposes the route evaluation pipeline over HTTP.
type RoutesHandler struct {
	planner        routes.Planner
	recorder       decisions.Recorder
	cache          *routes.TableCache
	originIATA     string
	catalogVersion string
	logger         *zap.Logger
}

// NewRoutesHandler constructs the HTTP handler adapter.
func NewRoutesHandler(planner routes.Planner, recorder decisions.Recorder, cache *routes.TableCache, originIATA, catalogVersion string, logger *zap.Logger) *RoutesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoutesHandler{
		planner:        planner,
		recorder:       recorder,
		cache:          cache,
		originIATA:     originIATA,
		catalogVersion: catalogVersion,
		logger:         logger,
	}
}

// Verify checks the destination triple against the oracle.
func (h *RoutesHandler) Verify(c *gin.Context) {
	req, ok := h.bindRoute(c, c.ShouldBindJSON)
	if !ok {
		return
	}

	consistent, reason, err := h.planner.VerifyAirport(c.Request.Context(), req.IATACode, req.City, req.Continent)
	if err != nil {
		h.logger.Error("airport verification failed", zap.Error(err), zap.String("code", req.IATACode))
		c.JSON(http.StatusBadGateway, gin.H{"error": "oracle unavailable"})
		return
	}

	c.JSON(http.StatusOK, models.VerifyResponse{Consistent: consistent, Reason: reason})
}

// Evaluate resolves the distance and serves the full evaluation table.
func (h *RoutesHandler) Evaluate(c *gin.Context) {
	req, ok := h.bindRoute(c, c.ShouldBindJSON)
	if !ok {
		return
	}

	table, err := h.tableFor(c, req)
	if err != nil {
		h.respondTableError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildEvaluationResponse(table))
}

// Export serves the evaluation table as header-less CSV.
func (h *RoutesHandler) Export(c *gin.Context) {
	req, ok := h.bindRoute(c, c.ShouldBindQuery)
	if !ok {
		return
	}

	table, err := h.tableFor(c, req)
	if err != nil {
		h.respondTableError(c, err)
		return
	}

	data, err := routes.ExportCSV(table)
	if err != nil {
		h.logger.Error("failed to export table", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export table"})
		return
	}

	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// Select confirms the user's aircraft pick for an evaluated route.
func (h *RoutesHandler) Select(c *gin.Context) {
	var req models.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid select payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	routeReq, ok := h.normalizeRoute(c, req.RouteRequest)
	if !ok {
		return
	}

	table, err := h.tableFor(c, routeReq)
	if err != nil {
		h.respondTableError(c, err)
		return
	}

	decision, err := h.recorder.Confirm(c.Request.Context(), table, req.Model)
	if err != nil {
		if errors.Is(err, decisions.ErrNotSelectable) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to confirm decision", zap.Error(err), zap.String("model", req.Model))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record decision"})
		return
	}

	c.JSON(http.StatusCreated, decision)
}

// Decisions lists recently confirmed route decisions.
func (h *RoutesHandler) Decisions(c *gin.Context) {
	list, err := h.recorder.Recent(c.Request.Context(), decisionListLimit)
	if err != nil {
		h.logger.Error("failed to list decisions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list decisions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"decisions": list})
}

func (h *RoutesHandler) bindRoute(c *gin.Context, bind func(any) error) (models.RouteRequest, bool) {
	var req models.RouteRequest
	if err := bind(&req); err != nil {
		h.logger.Warn("invalid route payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return models.RouteRequest{}, false
	}
	return h.normalizeRoute(c, req)
}

func (h *RoutesHandler) normalizeRoute(c *gin.Context, req models.RouteRequest) (models.RouteRequest, bool) {
	req.IATACode = strings.ToUpper(strings.TrimSpace(req.IATACode))
	req.City = strings.TrimSpace(req.City)

	if len(req.IATACode) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "iata_code must be a 3-letter code"})
		return models.RouteRequest{}, false
	}
	if !models.ValidContinent(req.Continent) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown continent"})
		return models.RouteRequest{}, false
	}
	return req, true
}

// tableFor resolves the distance and returns the evaluation table for the
// request, reusing the cached table when the query identity matches.
func (h *RoutesHandler) tableFor(c *gin.Context, req models.RouteRequest) (*models.EvaluationTable, error) {
	ctx := c.Request.Context()

	distance, err := h.planner.FlightDistance(ctx, req.IATACode)
	if err != nil {
		return nil, err
	}

	query := models.RouteQuery{
		OriginIATA:      h.originIATA,
		DestinationIATA: req.IATACode,
		DestinationCity: req.City,
		Continent:       req.Continent,
		DistanceKM:      distance,
	}

	if table, ok := h.cache.Get(query, h.catalogVersion); ok {
		return table, nil
	}

	table, err := h.planner.Evaluate(ctx, query, func(done, total int, model string) {
		h.logger.Info("aircraft evaluated",
			zap.Int("done", done),
			zap.Int("total", total),
			zap.String("model", model))
	})
	if err != nil {
		return nil, err
	}

	h.cache.Put(query, h.catalogVersion, table)
	return table, nil
}

func (h *RoutesHandler) respondTableError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, routes.ErrOracleUnavailable):
		h.logger.Error("oracle unavailable", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "oracle unavailable"})
	case errors.Is(err, routes.ErrNoDistance):
		h.logger.Warn("distance could not be resolved", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "flight distance could not be resolved"})
	default:
		h.logger.Error("evaluation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "evaluation failed"})
	}
}

func buildEvaluationResponse(table *models.EvaluationTable) models.EvaluationResponse {
	views := make([]models.RecordView, 0, len(table.Records))
	for _, rec := range table.Records {
		views = append(views, models.RecordView{
			EvaluationRecord: rec,
			ScoreDisplay:     routes.FormatRecordScore(rec.Score),
		})
	}

	return models.EvaluationResponse{
		Query:      table.Query,
		Records:    views,
		Selectable: routes.Selectable(table),
	}
}
