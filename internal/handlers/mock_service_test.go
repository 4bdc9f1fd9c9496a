package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"tempmon_dashboard/internal/apiclient"
	"tempmon_dashboard/internal/models"
	"tempmon_dashboard/internal/repository"
	"tempmon_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Backend fake ----

type backendCall struct {
	Method string
	Path   string
	Body   map[string]string
}

// fakeBackend stands in for the backend REST API behind every service.
type fakeBackend struct {
	mu sync.Mutex

	units      []models.TemperatureUnit
	facilities []models.Facility
	alerts     []models.Alert
	readings   []models.Reading
	stats      []models.CustomerStat
	summary    models.IngestionSummary

	profile   models.Record
	tempStats models.Record

	latestErr    error
	facilityErr  error
	profileErr   error
	ingestionErr error
	summaryErr   error
	doErr        error
	doResult     *apiclient.Result

	calls []backendCall
}

func (f *fakeBackend) GetLatestTemperatures(context.Context, apiclient.TemperatureQuery) (models.LatestTemperatures, error) {
	return models.LatestTemperatures{Units: f.units}, f.latestErr
}

func (f *fakeBackend) GetCustomerFacilities(context.Context) (models.FacilityList, error) {
	return models.FacilityList{Facilities: f.facilities}, f.facilityErr
}

func (f *fakeBackend) GetTemperatureAlerts(context.Context, apiclient.TemperatureQuery) (models.AlertList, error) {
	return models.AlertList{Alerts: f.alerts}, nil
}

func (f *fakeBackend) GetTemperatures(context.Context, apiclient.TemperatureQuery) (models.ReadingList, error) {
	return models.ReadingList{Readings: f.readings}, nil
}

func (f *fakeBackend) GetTemperatureStats(context.Context, apiclient.TemperatureQuery) (models.Record, error) {
	return f.tempStats, nil
}

func (f *fakeBackend) GetCurrentCustomer(context.Context) (models.Record, error) {
	return f.profile, f.profileErr
}

func (f *fakeBackend) TriggerIngestion(context.Context) (*apiclient.Result, error) {
	if f.ingestionErr != nil {
		return nil, f.ingestionErr
	}
	return &apiclient.Result{Status: http.StatusAccepted}, nil
}

func (f *fakeBackend) Do(_ context.Context, method, _, path string, body map[string]string) (*apiclient.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, backendCall{Method: method, Path: path, Body: body})
	if f.doErr != nil {
		return nil, f.doErr
	}
	if f.doResult != nil {
		return f.doResult, nil
	}
	return &apiclient.Result{Status: http.StatusOK, JSON: []byte(`{}`)}, nil
}

func (f *fakeBackend) Calls() []backendCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]backendCall(nil), f.calls...)
}

func (f *fakeBackend) GetAllCustomers(context.Context) (models.RecordList, error) {
	return models.RecordList{Items: []models.Record{{"id": "7", "name": "Acme", "customer_code": "ACME"}}}, nil
}

func (f *fakeBackend) GetAllFacilities(context.Context) (models.RecordList, error) {
	return models.RecordList{Items: []models.Record{{"id": "12", "name": "North"}}}, nil
}

func (f *fakeBackend) GetSystemOverview(context.Context) (models.Record, error) {
	return models.Record{"customer_count": 1}, nil
}

func (f *fakeBackend) GetSystemConfig(context.Context) (models.Record, error) {
	return models.Record{"ingestion_interval": "15"}, nil
}

func (f *fakeBackend) GetSystemAlerts(context.Context) (models.AlertList, error) {
	return models.AlertList{}, nil
}

func (f *fakeBackend) GetCustomerStats(context.Context) ([]models.CustomerStat, error) {
	return f.stats, nil
}

func (f *fakeBackend) GetIngestionSummary(context.Context) (models.IngestionSummary, error) {
	return f.summary, f.summaryErr
}

func (f *fakeBackend) Health(context.Context) (models.Record, error) {
	return models.Record{"status": "healthy"}, nil
}

// ---- Repository fakes ----

type fakeViewRepo struct {
	mu    sync.Mutex
	saved map[string]models.ViewState
}

func (r *fakeViewRepo) Save(_ context.Context, v models.ViewState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saved == nil {
		r.saved = map[string]models.ViewState{}
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
	return models.ViewState{SessionID: sessionID}, nil
}

type fakeJournal struct {
	mu       sync.Mutex
	events   []models.ActionEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
	lastQ    repository.ActionQuery
}

func (j *fakeJournal) Append(_ context.Context, e models.ActionEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, e)
	return nil
}

func (j *fakeJournal) List(_ context.Context, q repository.ActionQuery) ([]models.ActionEvent, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.lastQ = q
	j.lastFrom, j.lastTo, j.lastType = q.From, q.To, q.Type
	return j.events, j.err
}

// ---- Shared Test Helpers ----

func sampleBackend() *fakeBackend {
	cur, set := -18.0, -18.0
	warm, cool := 9.0, 4.0
	return &fakeBackend{
		units: []models.TemperatureUnit{
			{UnitID: "1", Name: "Freezer A", FacilityID: "f1", FacilityName: "North", Status: models.StatusNormal, CurrentTemperature: &cur, SetTemperature: &set},
			{UnitID: "2", Name: "Cooler B", FacilityID: "f1", FacilityName: "North", Status: models.StatusCritical, CurrentTemperature: &warm, SetTemperature: &cool},
		},
		facilities: []models.Facility{{ID: "f1", Name: "North", City: "Oslo", Country: "Norway", UnitsCount: 2}},
		tempStats:  models.Record{"avg_temperature": -4.5, "reading_count": 48},
		profile: models.Record{
			"name":          "Acme Foods",
			"customer_code": "ACME",
			"tokens":        []any{map[string]any{"id": "3", "name": "ci-token", "is_active": true}},
		},
		readings: []models.Reading{
			{Timestamp: "2025-03-01T10:00:00Z", Temperature: 4},
			{Timestamp: "2025-03-01T11:00:00Z", Temperature: 5},
		},
	}
}

func newTestServices(b *fakeBackend) (*service.Service, *fakeJournal) {
	board := service.NewBoard(time.Minute)
	views := service.NewViewStore(&fakeViewRepo{})
	journal := &fakeJournal{}
	return &service.Service{
		Dashboard: service.NewDashboardService(b, views, board, nil, nil),
		Actions:   service.NewActionService(b, service.DefaultRegistry(), service.DefaultCallbacks(), journal, board, nil, nil),
		ActionLog: service.NewActionLogService(journal, service.DefaultRegistry()),
		Admin:     service.NewAdminService(b, board),
		Pages:     service.NewPageService(b, views, board),
		Sessions:  service.NewSessionService("test-secret", time.Hour),
		Notifier:  board,
		Janitor:   service.NewSweeper(board, views, 0),
	}, journal
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil, Config{SessionTTL: time.Hour}, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// browser replays the session cookie like a real browser would.
type browser struct {
	t       *testing.T
	r       http.Handler
	cookies []*http.Cookie
}

func newBrowser(t *testing.T, r http.Handler) *browser {
	return &browser{t: t, r: r}
}

func (b *browser) do(method, target, contentType string, body io.Reader) *httptest.ResponseRecorder {
	b.t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	b.r.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		b.cookies = set
	}
	return w
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, target, "", nil)
}
