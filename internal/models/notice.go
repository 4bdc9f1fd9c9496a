package models

import "time"

// Banner levels, matching the Bootstrap alert variants used on the page.
const (
	LevelSuccess = "success"
	LevelDanger  = "danger"
	LevelInfo    = "info"
	LevelWarning = "warning"
)

// Notice is one banner shown in the fixed-position alert container.
type Notice struct {
	ID          string    `json:"id"`
	Level       string    `json:"level"`
	Message     string    `json:"message"`
	Dismissible bool      `json:"dismissible"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the notice should no longer be shown at now.
func (n Notice) Expired(now time.Time) bool {
	return !n.ExpiresAt.IsZero() && !now.Before(n.ExpiresAt)
}
