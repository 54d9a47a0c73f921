package routes

import (
	"fmt"

	"github.com/ThanathipChokanantang/Airline-calculate/internal/config"
	"github.com/ThanathipChokanantang/Airline-calculate/internal/domain/models"
)

func verifyPrompt(origin config.RouteConfig, code, city, continent string) string {
	return fmt.Sprintf(
		"Verify the consistency of this airport record: IATA code %s, city %s, continent %s. "+
			"If the three values agree with the real world, answer exactly 'PASS'. "+
			"If they do not, answer 'FAIL: [short explanation of the mismatch]'. "+
			"If the continent is 'Domestic', treat the city %q as located in %s and verify the IATA code against airports in %s.",
		code, city, continent, city, origin.OriginCountry, origin.OriginCountry)
}

func distancePrompt(origin config.RouteConfig, code string) string {
	return fmt.Sprintf(
		"Find the great-circle flight distance from %s (%s) to the airport with IATA or ICAO code %s. "+
			"Reply with the distance in kilometers only, as a whole number, not an approximation.",
		origin.OriginIATA, origin.OriginCity, code)
}

func evaluationPrompt(origin config.RouteConfig, q models.RouteQuery, spec models.AircraftSpec) string {
	return fmt.Sprintf(`For the route %s to %s (%s), distance %d km, analyse and compute the data for the aircraft %s (seats %s, %d USD/hr, range %d km).

The returned data MUST be a JSON array with exactly 11 elements, in this order:
1. Aircraft model (string)
2. Range in kilometers (integer)
3. Seat layout eco/bc/first (string)
4. Hourly fuel cost in USD (integer)
5. Forecast outbound passengers per week eco/bc/first (string)
6. Forecast inbound passengers per week eco/bc/first (string)
7. Suitable round-trip frequency per week (integer)
8. Suitable departure times from %s (string, comma separated HH:MM values, the number of times must equal the frequency in element 7)
9. Suitable departure times from the destination (string, comma separated HH:MM values, the number of times must equal the frequency in element 7)
10. Suitability score (number, e.g. 4.5 or 3.0, never 0.0 when the route is reachable)
11. Rationale (string, 50-100 words, no commas)`,
		origin.OriginIATA, q.DestinationCity, q.DestinationIATA, q.DistanceKM,
		spec.Model, spec.SeatLayout(), spec.HourlyCostUSD, spec.RangeKM,
		origin.OriginIATA)
}
