package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tempmon_dashboard/internal/models"
)

type ViewSQLite struct {
	db *sql.DB
}

func NewViewSQLite(db *sql.DB) *ViewSQLite {
	return &ViewSQLite{db: db}
}

var errEmptySessionID = errors.New("view state: empty session id")

const (
	upsertViewSQL = `
		INSERT INTO view_state (session_id, facility_id, hours, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			facility_id=excluded.facility_id,
			hours=excluded.hours,
			updated_at=excluded.updated_at
	`

	selectViewSQL = `
		SELECT session_id, facility_id, hours, updated_at
		FROM view_state WHERE session_id=?
	`
)

// Save upserts the view row of one session. Selector defaults are applied
// before writing so a stored row is always usable as-is.
func (r *ViewSQLite) Save(ctx context.Context, v models.ViewState) error {
	sid := strings.TrimSpace(v.SessionID)
	if sid == "" {
		return errEmptySessionID
	}
	sel := v.Selection()

	ts := v.UpdatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	if _, err := r.db.ExecContext(ctx, upsertViewSQL, sid, sel.FacilityID, sel.Hours, ts); err != nil {
		return fmt.Errorf("save view state %q: %w", sid, err)
	}
	return nil
}

// Load fetches the view row of a session. A session without a row gets the
// default selection and a nil error.
func (r *ViewSQLite) Load(ctx context.Context, sessionID string) (models.ViewState, error) {
	row := r.db.QueryRowContext(ctx, selectViewSQL, sessionID)

	var v models.ViewState
	if err := row.Scan(&v.SessionID, &v.FacilityID, &v.Hours, &v.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ViewState{
				SessionID:  sessionID,
				FacilityID: models.AllFacilities,
				Hours:      models.DefaultHours,
			}, nil
		}
		return models.ViewState{}, fmt.Errorf("load view state %q: %w", sessionID, err)
	}
	v.UpdatedAt = v.UpdatedAt.UTC()
	return v, nil
}
