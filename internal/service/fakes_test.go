package service

import (
	"context"
	"net/http"
	"sync"

	"tempmon_dashboard/internal/apiclient"
	"tempmon_dashboard/internal/models"
)

func f64(v float64) *float64 { return &v }

type fakeViewRepo struct {
	mu    sync.Mutex
	saved map[string]models.ViewState
	err   error
}

func newFakeViewRepo() *fakeViewRepo {
	return &fakeViewRepo{saved: map[string]models.ViewState{}}
}

func (r *fakeViewRepo) Save(_ context.Context, v models.ViewState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.saved[v.SessionID] = v
	return nil
}

func (r *fakeViewRepo) Load(_ context.Context, sessionID string) (models.ViewState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.saved[sessionID]; ok {
		return v, nil
	}
	return models.ViewState{SessionID: sessionID, FacilityID: models.AllFacilities, Hours: models.DefaultHours}, nil
}

// fakeTempAPI serves canned payloads; the hooks, when set, take precedence.
type fakeTempAPI struct {
	mu sync.Mutex

	units      []models.TemperatureUnit
	facilities []models.Facility
	alerts     []models.Alert
	readings   []models.Reading
	profile    models.Record
	stats      models.Record

	latestHook   func(ctx context.Context, q apiclient.TemperatureQuery) (models.LatestTemperatures, error)
	facilityErr  error
	alertErr     error
	historyErr   error
	ingestionErr error
	latestErr    error
	profileErr   error
	statsErr     error

	latestQueries  []apiclient.TemperatureQuery
	historyQueries []apiclient.TemperatureQuery
	statsQueries   []apiclient.TemperatureQuery
}

func (f *fakeTempAPI) GetLatestTemperatures(ctx context.Context, q apiclient.TemperatureQuery) (models.LatestTemperatures, error) {
	f.mu.Lock()
	f.latestQueries = append(f.latestQueries, q)
	hook := f.latestHook
	units := f.units
	f.mu.Unlock()
	if hook != nil {
		return hook(ctx, q)
	}
	if f.latestErr != nil {
		return models.LatestTemperatures{}, f.latestErr
	}
	return models.LatestTemperatures{Units: units}, nil
}

func (f *fakeTempAPI) GetCustomerFacilities(context.Context) (models.FacilityList, error) {
	return models.FacilityList{Facilities: f.facilities}, f.facilityErr
}

func (f *fakeTempAPI) GetTemperatureAlerts(context.Context, apiclient.TemperatureQuery) (models.AlertList, error) {
	return models.AlertList{Alerts: f.alerts}, f.alertErr
}

func (f *fakeTempAPI) GetTemperatures(_ context.Context, q apiclient.TemperatureQuery) (models.ReadingList, error) {
	f.mu.Lock()
	f.historyQueries = append(f.historyQueries, q)
	f.mu.Unlock()
	if f.historyErr != nil {
		return models.ReadingList{}, f.historyErr
	}
	return models.ReadingList{Readings: f.readings}, nil
}

func (f *fakeTempAPI) GetTemperatureStats(_ context.Context, q apiclient.TemperatureQuery) (models.Record, error) {
	f.mu.Lock()
	f.statsQueries = append(f.statsQueries, q)
	f.mu.Unlock()
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return f.stats, nil
}

func (f *fakeTempAPI) GetCurrentCustomer(context.Context) (models.Record, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeTempAPI) TriggerIngestion(context.Context) (*apiclient.Result, error) {
	if f.ingestionErr != nil {
		return nil, f.ingestionErr
	}
	return &apiclient.Result{Status: http.StatusAccepted}, nil
}

type apiCall struct {
	Method string
	Route  string
	Path   string
	Body   map[string]string
}

// fakeActionAPI records every admin call it receives.
type fakeActionAPI struct {
	mu    sync.Mutex
	calls []apiCall
	res   *apiclient.Result
	err   error
}

func (f *fakeActionAPI) Do(_ context.Context, method, route, path string, body map[string]string) (*apiclient.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, apiCall{Method: method, Route: route, Path: path, Body: body})
	if f.err != nil {
		return nil, f.err
	}
	if f.res != nil {
		return f.res, nil
	}
	return &apiclient.Result{Status: http.StatusOK, JSON: []byte(`{}`)}, nil
}

func (f *fakeActionAPI) Calls() []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]apiCall, len(f.calls))
	copy(out, f.calls)
	return out
}
