package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tempmon_dashboard/internal/apiclient"
	"tempmon_dashboard/internal/logger"
	"tempmon_dashboard/internal/models"
	"tempmon_dashboard/internal/observability"
	"tempmon_dashboard/internal/render"

	"golang.org/x/sync/errgroup"
)

const (
	refreshFailedText   = "Failed to update dashboard. Please try again later."
	noHistoryText       = "No historical data available for this unit"
	historyFailedText   = "Failed to load history data"
	ingestionOKText     = "Data ingestion triggered successfully"
	ingestionFailedText = "Failed to trigger data ingestion"

	historyHours = 24
	historyLimit = 24
)

var ErrUnitNotFound = errors.New("unit not found in the current dashboard")

// TemperatureAPI is the part of the backend the dashboard reads.
type TemperatureAPI interface {
	GetLatestTemperatures(ctx context.Context, q apiclient.TemperatureQuery) (models.LatestTemperatures, error)
	GetCustomerFacilities(ctx context.Context) (models.FacilityList, error)
	GetTemperatureAlerts(ctx context.Context, q apiclient.TemperatureQuery) (models.AlertList, error)
	GetTemperatures(ctx context.Context, q apiclient.TemperatureQuery) (models.ReadingList, error)
	TriggerIngestion(ctx context.Context) (*apiclient.Result, error)
}

type DashboardService struct {
	api     TemperatureAPI
	views   *ViewStore
	board   *Board
	metrics *observability.Metrics
	log     *logger.Logger
	now     func() time.Time
}

func NewDashboardService(api TemperatureAPI, views *ViewStore, board *Board, metrics *observability.Metrics, log *logger.Logger) *DashboardService {
	return &DashboardService{
		api:     api,
		views:   views,
		board:   board,
		metrics: metrics,
		log:     log,
		now:     time.Now,
	}
}

func (s *DashboardService) View(ctx context.Context, sessionID string) (*View, error) {
	return s.views.Get(ctx, sessionID)
}

// Refresh runs one refresh cycle for the view. The three reads run
// concurrently and all of them must succeed; on failure nothing is
// committed and an error banner is posted. A cycle overtaken by a newer
// one returns ErrStaleRefresh whatever its own outcome.
func (s *DashboardService) Refresh(ctx context.Context, view *View, sel models.Selection) (*Snapshot, error) {
	sel = sel.Normalize()
	token := view.begin(sel)
	defer view.finish()

	q := apiclient.TemperatureQuery{Hours: sel.Hours}
	if sel.FacilityID != models.AllFacilities {
		q.FacilityID = sel.FacilityID
	}

	var (
		latest     models.LatestTemperatures
		facilities models.FacilityList
		alerts     models.AlertList
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		latest, err = s.api.GetLatestTemperatures(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		facilities, err = s.api.GetCustomerFacilities(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		alerts, err = s.api.GetTemperatureAlerts(gctx, q)
		return err
	})

	if err := g.Wait(); err != nil {
		if !view.isLatest(token) {
			s.metrics.Refresh(observability.OutcomeStale)
			return nil, ErrStaleRefresh
		}
		s.board.Post(view.SessionID(), models.LevelDanger, refreshFailedText, true)
		s.metrics.Refresh(observability.OutcomeFailed)
		return nil, fmt.Errorf("refresh dashboard: %w", err)
	}

	opts, selected := render.FacilityOptions(facilities.Facilities, sel.FacilityID)
	snap := &Snapshot{
		Selection:  models.Selection{FacilityID: selected, Hours: sel.Hours},
		Units:      latest.Units,
		Facilities: facilities.Facilities,
		Alerts:     alerts.Alerts,
		Options:    opts,
		FetchedAt:  s.now().UTC(),
	}
	if err := view.commit(token, snap); err != nil {
		s.metrics.Refresh(observability.OutcomeStale)
		return nil, err
	}
	s.metrics.Refresh(observability.OutcomeOK)

	if err := s.views.Save(ctx, view); err != nil && s.log != nil {
		s.log.Warnw("view_state_save_failed", "session_id", view.SessionID(), "err", err)
	}
	return snap, nil
}

// UnitDetail builds the modal of a unit from the last committed refresh
// and its recent history. A failed history read degrades to a notice.
func (s *DashboardService) UnitDetail(ctx context.Context, view *View, unitID string) (*UnitDetail, error) {
	unit, ok := view.Unit(unitID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnitNotFound, unitID)
	}
	d := &UnitDetail{Unit: unit}
	slot := view.Chart(render.UnitHistoryChartID)

	list, err := s.api.GetTemperatures(ctx, apiclient.TemperatureQuery{
		UnitID: unitID,
		Hours:  historyHours,
		Limit:  historyLimit,
	})
	if err != nil {
		slot.Destroy()
		d.Notice, d.NoticeLevel, d.Err = historyFailedText, models.LevelDanger, err
		return d, nil
	}
	if len(list.Readings) == 0 {
		slot.Destroy()
		d.Notice, d.NoticeLevel = noHistoryText, models.LevelInfo
		return d, nil
	}

	d.Readings = render.SortReadings(list.Readings)
	chart := slot.Replace(render.HistoryChart(d.Readings, unit))
	d.Chart = &chart
	return d, nil
}

// TriggerIngestion asks the backend for fresh readings and reports the
// result on the viewer's banner board.
func (s *DashboardService) TriggerIngestion(ctx context.Context, view *View) error {
	if _, err := s.api.TriggerIngestion(ctx); err != nil {
		s.board.Post(view.SessionID(), models.LevelDanger, ingestionFailedText+": "+err.Error(), true)
		return fmt.Errorf("trigger ingestion: %w", err)
	}
	s.board.Post(view.SessionID(), models.LevelSuccess, ingestionOKText, true)
	return nil
}
