package models

// RouteRequest carries the destination triple collected from the user.
type RouteRequest struct {
	IATACode  string `json:"iata_code" form:"iata_code" binding:"required"`
	City      string `json:"city" form:"city" binding:"required"`
	Continent string `json:"continent" form:"continent" binding:"required"`
}

// SelectRequest confirms one aircraft model for a previously evaluated route.
type SelectRequest struct {
	RouteRequest
	Model string `json:"model" binding:"required"`
}

// VerifyResponse reports the oracle's consistency verdict for the triple.
type VerifyResponse struct {
	Consistent bool   `json:"consistent"`
	Reason     string `json:"reason,omitempty"`
}

// RecordView decorates a table row with its display-formatted score.
type RecordView struct {
	EvaluationRecord
	ScoreDisplay string `json:"score_display"`
}

// EvaluationResponse is the full table as served over HTTP, together with the
// identifiers the user may still select (score > 0, table order).
type EvaluationResponse struct {
	Query      RouteQuery   `json:"query"`
	Records    []RecordView `json:"records"`
	Selectable []string     `json:"selectable"`
}
