package render

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Deviation classes returned by TemperatureStatusClass.
const (
	ClassNormal  = "normal"
	ClassWarning = "warning"
	ClassDanger  = "danger"
)

// Thresholds are the absolute deviations from a set point at which a
// reading becomes a warning or a danger.
type Thresholds struct {
	Warning  float64 `mapstructure:"warning_threshold"`
	Critical float64 `mapstructure:"critical_threshold"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{Warning: 2, Critical: 5}
}

// orDefault fills non-positive thresholds with the defaults.
func (t Thresholds) orDefault() Thresholds {
	d := DefaultThresholds()
	if t.Warning <= 0 {
		t.Warning = d.Warning
	}
	if t.Critical <= 0 {
		t.Critical = d.Critical
	}
	return t
}

// Classify is TemperatureStatusClass with the receiver's thresholds.
func (t Thresholds) Classify(current, target float64) string {
	t = t.orDefault()
	return TemperatureStatusClass(current, target, t.Warning, t.Critical)
}

// TemperatureStatusClass compares |current-target| against the thresholds.
// A deviation equal to a threshold stays in the lower class.
func TemperatureStatusClass(current, target, warning, critical float64) string {
	dev := math.Abs(current - target)
	switch {
	case dev > critical:
		return ClassDanger
	case dev > warning:
		return ClassWarning
	default:
		return ClassNormal
	}
}

// jsRound rounds half-up, so -0.5 becomes 0 rather than -1.
func jsRound(x float64) float64 {
	return math.Floor(x + 0.5)
}

func plural(n float64, unit string) string {
	if n != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%.0f %s ago", n, unit)
}

// TimeAgo renders the coarsest of seconds, minutes, hours or days elapsed
// between t and now. Each step rounds the previous one, not the raw delta.
func TimeAgo(t, now time.Time) string {
	sec := jsRound(float64(now.Sub(t).Milliseconds()) / 1000)
	mins := jsRound(sec / 60)
	hours := jsRound(mins / 60)
	days := jsRound(hours / 24)

	switch {
	case sec < 60:
		return plural(sec, "second")
	case mins < 60:
		return plural(mins, "minute")
	case hours < 24:
		return plural(hours, "hour")
	default:
		return plural(days, "day")
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts the timestamp shapes the backend emits. Values
// without a zone are read as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// TimeAgoString is TimeAgo for a raw backend timestamp, "Unknown" when it
// is missing or unreadable.
func TimeAgoString(s string, now time.Time) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return "Unknown"
	}
	return TimeAgo(t, now)
}

// FormatTemperature renders "%.1f°<unit>" or "N/A" for a missing value.
func FormatTemperature(v *float64, unit string) string {
	if v == nil {
		return "N/A"
	}
	if unit == "" {
		unit = "C"
	}
	return fmt.Sprintf("%.1f°%s", *v, unit)
}

// FormatSize renders the equipment size, "N/A" when unset or zero.
func FormatSize(v *float64, unit string) string {
	if v == nil || *v == 0 {
		return "N/A"
	}
	return strings.TrimSpace(fmt.Sprintf("%g %s", *v, unit))
}

// FormatDateTime renders a backend timestamp for the unit modal.
func FormatDateTime(s string) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		if s == "" {
			return "N/A"
		}
		return s
	}
	return t.Format("2006-01-02 15:04:05")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
