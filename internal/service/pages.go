package service

import (
	"context"
	"errors"
	"fmt"

	"tempmon_dashboard/internal/apiclient"
	"tempmon_dashboard/internal/models"
	"tempmon_dashboard/internal/render"

	"golang.org/x/sync/errgroup"
)

const facilityHistoryHours = 24

var ErrFacilityNotFound = errors.New("facility not found")

// PagesAPI is the customer surface of the backend behind the browse pages.
type PagesAPI interface {
	GetCurrentCustomer(ctx context.Context) (models.Record, error)
	GetCustomerFacilities(ctx context.Context) (models.FacilityList, error)
	GetLatestTemperatures(ctx context.Context, q apiclient.TemperatureQuery) (models.LatestTemperatures, error)
	GetTemperatures(ctx context.Context, q apiclient.TemperatureQuery) (models.ReadingList, error)
	GetTemperatureStats(ctx context.Context, q apiclient.TemperatureQuery) (models.Record, error)
}

// PageService loads the facilities, units and settings pages. Required
// reads post a danger banner on failure; optional ones a warning.
type PageService struct {
	api   PagesAPI
	views *ViewStore
	board *Board
}

func NewPageService(api PagesAPI, views *ViewStore, board *Board) *PageService {
	return &PageService{api: api, views: views, board: board}
}

func (s *PageService) warn(sessionID, what string, err error) {
	if err != nil {
		s.board.Post(sessionID, models.LevelWarning, fmt.Sprintf("Error loading %s: %v", what, err), true)
	}
}

// Facilities lists the customer's facilities. Live unit statuses are
// optional; without them the cards fall back to the stored unit counts.
func (s *PageService) Facilities(ctx context.Context, sessionID string) (*FacilitiesPage, error) {
	var (
		facilities models.FacilityList
		latest     models.LatestTemperatures
		errLatest  error
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		facilities, err = s.api.GetCustomerFacilities(ctx)
		return err
	})
	g.Go(func() error {
		latest, errLatest = s.api.GetLatestTemperatures(ctx, apiclient.TemperatureQuery{})
		return nil
	})
	if err := g.Wait(); err != nil {
		s.board.Post(sessionID, models.LevelDanger, "Error loading facilities data: "+err.Error(), true)
		return &FacilitiesPage{}, fmt.Errorf("load facilities: %w", err)
	}
	s.warn(sessionID, "unit status", errLatest)
	return &FacilitiesPage{Facilities: facilities.Facilities, Units: latest.Units}, nil
}

// FacilityDetail loads one facility with its units, the last day of
// readings as a chart, and the backend's statistics for it.
func (s *PageService) FacilityDetail(ctx context.Context, sessionID, facilityID string) (*FacilityPage, error) {
	page, err := s.facilityDetail(ctx, sessionID, facilityID)
	if err != nil {
		s.board.Post(sessionID, models.LevelDanger, "Error loading facility details: "+err.Error(), true)
		return nil, err
	}
	return page, nil
}

func (s *PageService) facilityDetail(ctx context.Context, sessionID, facilityID string) (*FacilityPage, error) {
	view, err := s.views.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	q := apiclient.TemperatureQuery{FacilityID: facilityID, Hours: facilityHistoryHours}

	var (
		facilities            models.FacilityList
		latest                models.LatestTemperatures
		readings              models.ReadingList
		stats                 models.Record
		errReadings, errStats error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		facilities, err = s.api.GetCustomerFacilities(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		latest, err = s.api.GetLatestTemperatures(gctx, apiclient.TemperatureQuery{FacilityID: facilityID})
		return err
	})
	g.Go(func() error {
		readings, errReadings = s.api.GetTemperatures(gctx, q)
		return nil
	})
	g.Go(func() error {
		stats, errStats = s.api.GetTemperatureStats(gctx, q)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load facility %q: %w", facilityID, err)
	}

	page := &FacilityPage{Units: latest.Units, Stats: stats}
	found := false
	for _, f := range facilities.Facilities {
		if f.ID.String() == facilityID {
			page.Facility, found = f, true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrFacilityNotFound, facilityID)
	}

	slot := view.Chart(render.FacilityChartID)
	switch {
	case errReadings != nil:
		slot.Destroy()
		s.warn(sessionID, "facility readings", errReadings)
	case len(readings.Readings) == 0:
		slot.Destroy()
	default:
		chart := slot.Replace(render.FacilityHistoryChart(render.SortReadings(readings.Readings)))
		page.Chart = &chart
	}
	s.warn(sessionID, "temperature statistics", errStats)
	return page, nil
}

// Units lists every unit of the customer. Facility names missing from the
// latest readings are filled from the facility list when it loads.
func (s *PageService) Units(ctx context.Context, sessionID string) (*UnitsPage, error) {
	var (
		latest     models.LatestTemperatures
		facilities models.FacilityList
		errFacs    error
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		latest, err = s.api.GetLatestTemperatures(ctx, apiclient.TemperatureQuery{})
		return err
	})
	g.Go(func() error {
		facilities, errFacs = s.api.GetCustomerFacilities(ctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.board.Post(sessionID, models.LevelDanger, "Error loading units data: "+err.Error(), true)
		return &UnitsPage{}, fmt.Errorf("load units: %w", err)
	}
	s.warn(sessionID, "facilities data", errFacs)

	names := make(map[string]string, len(facilities.Facilities))
	for _, f := range facilities.Facilities {
		names[f.ID.String()] = f.Name
	}
	units := make([]models.TemperatureUnit, len(latest.Units))
	for i, u := range latest.Units {
		if u.FacilityName == "" {
			u.FacilityName = names[u.FacilityID.String()]
		}
		units[i] = u
	}
	return &UnitsPage{Units: units}, nil
}

// Settings loads the signed-in customer's profile and API tokens.
func (s *PageService) Settings(ctx context.Context, sessionID string) (*SettingsPage, error) {
	profile, err := s.api.GetCurrentCustomer(ctx)
	if err != nil {
		s.board.Post(sessionID, models.LevelDanger, "Error loading settings data: "+err.Error(), true)
		return &SettingsPage{}, fmt.Errorf("load settings: %w", err)
	}
	return &SettingsPage{Profile: profile}, nil
}
