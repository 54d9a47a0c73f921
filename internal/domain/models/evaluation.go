package models

import "time"

// NotAvailable is the sentinel written into fields the oracle could not supply.
const NotAvailable = "N/A"

// RouteQuery identifies one evaluation request. Distance is resolved before
// the query reaches the evaluator and is always strictly positive there.
type RouteQuery struct {
	OriginIATA      string `json:"origin_iata"`
	DestinationIATA string `json:"destination_iata"`
	DestinationCity string `json:"destination_city"`
	Continent       string `json:"continent"`
	DistanceKM      int    `json:"distance_km"`
}

// EvaluationRecord is one table row: the oracle's verdict for a single
// aircraft on the queried route, or one of the two local sentinel shapes
// (unreachable, fallback). A score of exactly 0.0 always means the aircraft
// cannot reach the destination; a fallback row carries 1.0.
type EvaluationRecord struct {
	Model                 string  `json:"model" csv:"model"`
	RangeKM               int     `json:"range_km" csv:"range_km"`
	SeatLayout            string  `json:"seat_layout" csv:"seat_layout"`
	HourlyCostUSD         int     `json:"hourly_cost_usd" csv:"hourly_cost_usd"`
	OutboundLoad          string  `json:"outbound_load" csv:"outbound_load"`
	InboundLoad           string  `json:"inbound_load" csv:"inbound_load"`
	WeeklyFrequency       int     `json:"weekly_frequency" csv:"weekly_frequency"`
	OriginDepartures      string  `json:"origin_departures" csv:"origin_departures"`
	DestinationDepartures string  `json:"destination_departures" csv:"destination_departures"`
	Score                 float64 `json:"score" csv:"score"`
	Rationale             string  `json:"rationale" csv:"rationale"`
}

// EvaluationTable holds one record per catalog entry, in catalog order.
// It is rebuilt whenever the query identity changes and is never persisted.
type EvaluationTable struct {
	Query   RouteQuery         `json:"query"`
	Records []EvaluationRecord `json:"records"`
}

// Lookup returns the record for the given aircraft model.
func (t *EvaluationTable) Lookup(model string) (EvaluationRecord, bool) {
	for _, rec := range t.Records {
		if rec.Model == model {
			return rec, true
		}
	}
	return EvaluationRecord{}, false
}

// RouteDecision is the user's confirmed pick for a route, the only artifact
// this service persists.
type RouteDecision struct {
	OriginIATA            string    `bson:"origin_iata" json:"origin_iata"`
	DestinationIATA       string    `bson:"destination_iata" json:"destination_iata"`
	DestinationCity       string    `bson:"destination_city" json:"destination_city"`
	Continent             string    `bson:"continent" json:"continent"`
	DistanceKM            int       `bson:"distance_km" json:"distance_km"`
	Model                 string    `bson:"model" json:"model"`
	Score                 float64   `bson:"score" json:"score"`
	WeeklyFrequency       int       `bson:"weekly_frequency" json:"weekly_frequency"`
	OriginDepartures      string    `bson:"origin_departures" json:"origin_departures"`
	DestinationDepartures string    `bson:"destination_departures" json:"destination_departures"`
	Rationale             string    `bson:"rationale" json:"rationale"`
	CreatedAt             time.Time `bson:"created_at" json:"created_at"`
}
