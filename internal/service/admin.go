package service

import (
	"context"
	"fmt"

	"tempmon_dashboard/internal/models"

	"golang.org/x/sync/errgroup"
)

// AdminAPI is the admin surface of the backend.
type AdminAPI interface {
	GetAllCustomers(ctx context.Context) (models.RecordList, error)
	GetAllFacilities(ctx context.Context) (models.RecordList, error)
	GetSystemOverview(ctx context.Context) (models.Record, error)
	GetSystemConfig(ctx context.Context) (models.Record, error)
	GetSystemAlerts(ctx context.Context) (models.AlertList, error)
	GetCustomerStats(ctx context.Context) ([]models.CustomerStat, error)
	GetIngestionSummary(ctx context.Context) (models.IngestionSummary, error)
	Health(ctx context.Context) (models.Record, error)
}

type AdminService struct {
	api   AdminAPI
	board *Board
}

func NewAdminService(api AdminAPI, board *Board) *AdminService {
	return &AdminService{api: api, board: board}
}

// Page loads the admin landing page. The customer list is required; the
// other sections degrade to empty with a warning banner each.
func (s *AdminService) Page(ctx context.Context, sessionID string) (*AdminPage, error) {
	page := &AdminPage{}
	var (
		customers, facilities models.RecordList
		alerts                models.AlertList
		errFacilities         error
		errOverview           error
		errConfig             error
		errAlerts             error
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		customers, err = s.api.GetAllCustomers(ctx)
		return err
	})
	g.Go(func() error {
		facilities, errFacilities = s.api.GetAllFacilities(ctx)
		return nil
	})
	g.Go(func() error {
		page.Overview, errOverview = s.api.GetSystemOverview(ctx)
		return nil
	})
	g.Go(func() error {
		page.Config, errConfig = s.api.GetSystemConfig(ctx)
		return nil
	})
	g.Go(func() error {
		alerts, errAlerts = s.api.GetSystemAlerts(ctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		s.board.Post(sessionID, models.LevelDanger, "Error loading admin dashboard data: "+err.Error(), true)
		return &AdminPage{}, fmt.Errorf("load admin page: %w", err)
	}

	page.Customers = customers.Items
	page.Facilities = facilities.Items
	page.Alerts = alerts.Alerts

	for _, w := range []struct {
		what string
		err  error
	}{
		{"facilities data", errFacilities},
		{"system overview", errOverview},
		{"system configuration", errConfig},
		{"system alerts", errAlerts},
	} {
		if w.err != nil {
			s.board.Post(sessionID, models.LevelWarning, fmt.Sprintf("Error loading %s: %v", w.what, w.err), true)
		}
	}
	return page, nil
}

func (s *AdminService) CustomerStats(ctx context.Context) ([]models.CustomerStat, error) {
	return s.api.GetCustomerStats(ctx)
}

func (s *AdminService) IngestionSummary(ctx context.Context) (models.IngestionSummary, error) {
	return s.api.GetIngestionSummary(ctx)
}

func (s *AdminService) Health(ctx context.Context) (models.Record, error) {
	return s.api.Health(ctx)
}
