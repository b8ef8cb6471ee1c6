package engine

import "fmt"

// FormatTime renders seconds as m:ss for order countdowns.
func FormatTime(seconds float64) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatCurrency renders whole-dollar amounts for display.
func FormatCurrency(amount int) string {
	return fmt.Sprintf("$%d", amount)
}

// NearestZone returns the closest zone of the given kind and its distance.
func NearestZone(config *CityConfig, pos Position, kind ZoneKind) (Zone, float64, bool) {
	var nearest Zone
	minDistance := -1.0
	found := false

	for _, zone := range config.Zones {
		if zone.Kind != kind {
			continue
		}
		distance := pos.DistanceTo(zone.Position)
		if minDistance < 0 || distance < minDistance {
			minDistance = distance
			nearest = zone
			found = true
		}
	}

	return nearest, minDistance, found
}

// CountZones counts zones of a specific kind in the city.
func CountZones(config *CityConfig, kind ZoneKind) int {
	count := 0
	for _, zone := range config.Zones {
		if zone.Kind == kind {
			count++
		}
	}
	return count
}
