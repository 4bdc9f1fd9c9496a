package render

import "tempmon_dashboard/internal/models"

// Badge is a Bootstrap badge: CSS classes plus its text.
type Badge struct {
	Class string
	Label string
}

// StatusBadge maps a unit status onto its badge. Unrecognized statuses keep
// their raw text on a neutral badge.
func StatusBadge(status string) Badge {
	switch status {
	case models.StatusCritical:
		return Badge{Class: "bg-danger", Label: "Critical"}
	case models.StatusWarning:
		return Badge{Class: "bg-warning text-dark", Label: "Warning"}
	case models.StatusNormal:
		return Badge{Class: "bg-success", Label: "Normal"}
	default:
		return Badge{Class: "bg-secondary", Label: orDefault(status, "Unknown")}
	}
}
