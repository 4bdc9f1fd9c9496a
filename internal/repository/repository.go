package repository

import (
	"context"
	"database/sql"
	"time"

	"tempmon_dashboard/internal/models"
)

// ViewRepo persists the selector state of each viewer session.
type ViewRepo interface {
	Save(ctx context.Context, v models.ViewState) error
	Load(ctx context.Context, sessionID string) (models.ViewState, error)
}

// ActionQuery narrows a journal listing. Zero fields do not filter.
type ActionQuery struct {
	From    time.Time // inclusive
	To      time.Time // inclusive
	Type    string    // action name
	Outcome string    // SUCCESS | FAILURE | PREVIEW | REJECTED
}

// ActionRepo is the append-only journal of admin form actions.
type ActionRepo interface {
	Append(ctx context.Context, e models.ActionEvent) error
	List(ctx context.Context, q ActionQuery) ([]models.ActionEvent, error)
}

type Repository struct {
	ViewRepo   ViewRepo
	ActionRepo ActionRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		ViewRepo:   NewViewSQLite(db),
		ActionRepo: NewActionSQLite(db),
	}
}
