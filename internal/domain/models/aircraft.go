package models

import "fmt"

// AircraftSpec describes one airframe the airline can deploy on a new route.
// Specs are defined once at process start and never mutated.
type AircraftSpec struct {
	Model         string `json:"model"`
	SeatsEco      int    `json:"seats_eco"`
	SeatsBC       int    `json:"seats_bc"`
	SeatsFirst    int    `json:"seats_first"`
	HourlyCostUSD int    `json:"hourly_cost_usd"`
	RangeKM       int    `json:"range_km"`
}

// SeatLayout renders the cabin configuration in the "eco/bc/first" form used
// across prompts, tables and exports.
func (s AircraftSpec) SeatLayout() string {
	return fmt.Sprintf("%d/%d/%d", s.SeatsEco, s.SeatsBC, s.SeatsFirst)
}

// Continents enumerates the accepted destination regions. "Domestic" marks a
// route that stays inside the origin country.
var Continents = []string{
	"Domestic",
	"Africa",
	"Antarctica",
	"Asia",
	"Europe",
	"North America",
	"Oceania",
	"South America",
}

// ValidContinent reports whether the provided region tag is one of the fixed set.
func ValidContinent(name string) bool {
	for _, c := range Continents {
		if c == name {
			return true
		}
	}
	return false
}
