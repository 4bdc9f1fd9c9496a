package service

import (
	"context"
	"fmt"
	"time"

	"tempmon_dashboard/internal/apiclient"
	"tempmon_dashboard/internal/logger"
	"tempmon_dashboard/internal/models"
	"tempmon_dashboard/internal/observability"
	"tempmon_dashboard/internal/repository"
)

// Dashboard runs refresh cycles for one viewer and answers unit lookups
// from the viewer's last committed refresh.
type Dashboard interface {
	View(ctx context.Context, sessionID string) (*View, error)
	Refresh(ctx context.Context, view *View, sel models.Selection) (*Snapshot, error)
	UnitDetail(ctx context.Context, view *View, unitID string) (*UnitDetail, error)
	TriggerIngestion(ctx context.Context, view *View) error
}

// Actions binds admin forms to backend REST calls.
type Actions interface {
	Dispatch(ctx context.Context, sessionID, name string, form Form) (*Outcome, error)
	Lookup(name string) (Action, bool)
}

// ActionLog exposes the action journal with filtering access.
type ActionLog interface {
	List(ctx context.Context, f LogFilter) (*ActionLogPage, error)
}

// Admin reads the data behind the admin page and its charts.
type Admin interface {
	Page(ctx context.Context, sessionID string) (*AdminPage, error)
	CustomerStats(ctx context.Context) ([]models.CustomerStat, error)
	IngestionSummary(ctx context.Context) (models.IngestionSummary, error)
	Health(ctx context.Context) (models.Record, error)
}

// Pages loads the customer browse pages.
type Pages interface {
	Facilities(ctx context.Context, sessionID string) (*FacilitiesPage, error)
	FacilityDetail(ctx context.Context, sessionID, facilityID string) (*FacilityPage, error)
	Units(ctx context.Context, sessionID string) (*UnitsPage, error)
	Settings(ctx context.Context, sessionID string) (*SettingsPage, error)
}

// Sessions issues and verifies the viewer session cookie.
type Sessions interface {
	Issue() (sessionID, token string, err error)
	Parse(token string) (string, error)
}

// Notifier is the per-viewer banner board.
type Notifier interface {
	Post(sessionID, level, message string, dismissible bool) models.Notice
	Active(sessionID string) []models.Notice
	Dismiss(sessionID, noticeID string) bool
}

// Janitor drops expired banners and idle views until ctx is canceled.
type Janitor interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Dashboard
	Actions
	ActionLog
	Admin
	Pages
	Sessions
	Notifier
	Janitor
}

// Config carries the service-level settings read at start-up.
type Config struct {
	SessionSecret string
	SessionTTL    time.Duration
	BannerTimeout time.Duration
	ViewIdleTTL   time.Duration
}

// NewService wires the repositories and the backend client into the
// concrete services. It fails when an action names a callback that does
// not exist.
func NewService(repos *repository.Repository, api *apiclient.Client, cfg Config, metrics *observability.Metrics, log *logger.Logger) (*Service, error) {
	registry, callbacks := DefaultRegistry(), DefaultCallbacks()
	if err := registry.Validate(callbacks); err != nil {
		return nil, fmt.Errorf("action registry: %w", err)
	}

	board := NewBoard(cfg.BannerTimeout)
	views := NewViewStore(repos.ViewRepo)

	return &Service{
		Dashboard: NewDashboardService(api, views, board, metrics, log),
		Actions:   NewActionService(api, registry, callbacks, repos.ActionRepo, board, metrics, log),
		ActionLog: NewActionLogService(repos.ActionRepo, registry),
		Admin:     NewAdminService(api, board),
		Pages:     NewPageService(api, views, board),
		Sessions:  NewSessionService(cfg.SessionSecret, cfg.SessionTTL),
		Notifier:  board,
		Janitor:   NewSweeper(board, views, cfg.ViewIdleTTL),
	}, nil
}
