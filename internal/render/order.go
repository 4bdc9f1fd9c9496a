package render

import (
	"sort"
	"time"

	"tempmon_dashboard/internal/models"
)

func statusRank(status string) int {
	switch status {
	case models.StatusCritical:
		return 0
	case models.StatusWarning:
		return 1
	case models.StatusNormal:
		return 2
	default:
		return 3
	}
}

// SortUnits returns a copy ordered critical, warning, normal, then anything
// else. Units of equal status keep their input order.
func SortUnits(units []models.TemperatureUnit) []models.TemperatureUnit {
	out := make([]models.TemperatureUnit, len(units))
	copy(out, units)
	sort.SliceStable(out, func(i, j int) bool {
		return statusRank(out[i].Status) < statusRank(out[j].Status)
	})
	return out
}

func parsedOrZero(s string) time.Time {
	t, _ := ParseTimestamp(s)
	return t
}

// SortAlerts returns a copy ordered unresolved first, then critical first,
// then newest first. Unreadable timestamps sort last within their group.
func SortAlerts(alerts []models.Alert) []models.Alert {
	out := make([]models.Alert, len(alerts))
	copy(out, alerts)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Resolved != b.Resolved {
			return !a.Resolved
		}
		ac, bc := a.Severity == models.SeverityCritical, b.Severity == models.SeverityCritical
		if ac != bc {
			return ac
		}
		return parsedOrZero(a.Timestamp).After(parsedOrZero(b.Timestamp))
	})
	return out
}

// SortReadings returns a copy in ascending timestamp order.
func SortReadings(readings []models.Reading) []models.Reading {
	out := make([]models.Reading, len(readings))
	copy(out, readings)
	sort.SliceStable(out, func(i, j int) bool {
		return parsedOrZero(out[i].Timestamp).Before(parsedOrZero(out[j].Timestamp))
	})
	return out
}
