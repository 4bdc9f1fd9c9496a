package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"tempmon_dashboard/internal/models"

	"github.com/google/uuid"
)

type ActionSQLite struct {
	db *sql.DB
}

func NewActionSQLite(db *sql.DB) *ActionSQLite { return &ActionSQLite{db: db} }

const layoutSQLiteTimestamp = "2006-01-02 15:04:05"

// Append inserts a new journal entry. If EventID or OccurredAt are empty, they're set.
func (r *ActionSQLite) Append(ctx context.Context, e models.ActionEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	var metaPtr *string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO action_events (id, occurred_at, type, outcome, message, meta)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		e.EventID,
		e.OccurredAt.Format(layoutSQLiteTimestamp),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		strings.ToUpper(strings.TrimSpace(e.Outcome)),
		e.Description,
		metaPtr,
	)
	return err
}

// List returns the entries matching q, newest first.
func (r *ActionSQLite) List(ctx context.Context, q ActionQuery) ([]models.ActionEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !q.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, q.From.UTC().Format(layoutSQLiteTimestamp))
	}
	if !q.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, q.To.UTC().Format(layoutSQLiteTimestamp))
	}
	if typ := strings.ToUpper(strings.TrimSpace(q.Type)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}
	if outcome := strings.ToUpper(strings.TrimSpace(q.Outcome)); outcome != "" {
		conds = append(conds, "outcome = ?")
		args = append(args, outcome)
	}

	stmt := `SELECT id, occurred_at, type, outcome, message, meta FROM action_events`
	if len(conds) > 0 {
		stmt += " WHERE " + strings.Join(conds, " AND ")
	}
	stmt += " ORDER BY occurred_at DESC"

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.ActionEvent, 0, 64)
	for rows.Next() {
		var ev models.ActionEvent
		var metaStr sql.NullString
		if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &ev.Outcome, &ev.Description, &metaStr); err != nil {
			return nil, err
		}
		ev.OccurredAt = ev.OccurredAt.UTC()

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
