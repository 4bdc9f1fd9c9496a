package models

import "time"

// ActionEvent is a single journal entry of an admin form action.
type ActionEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // action name, e.g. TOKEN.REVOKE
	Outcome     string    `json:"outcome"`     // SUCCESS | FAILURE | PREVIEW | REJECTED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
