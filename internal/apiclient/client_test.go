package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tempmon_dashboard/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := New(Config{
		BaseURL:      srv.URL + "/api",
		AdminBaseURL: srv.URL,
		HealthURL:    srv.URL + "/health",
		Token:        "secret",
	}, srv.Client(), nil)
	return c, srv
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestRequest_JSONSuccess(t *testing.T) {
	var gotHeaders http.Header
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		assert.Equal(t, "/api/customers/me", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"name":"Acme"}`)
	})

	res, err := c.Request(context.Background(), "/customers/me", Options{})
	require.NoError(t, err)
	require.True(t, res.IsJSON())

	var body map[string]string
	require.NoError(t, res.Decode(&body))
	assert.Equal(t, "Acme", body["name"])
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "application/json", gotHeaders.Get("Accept"))
	assert.Equal(t, "Bearer secret", gotHeaders.Get("Authorization"))
}

func TestRequest_CallerHeadersOverrideDefaults(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/plain", r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	})

	_, err := c.Request(context.Background(), "/x", Options{Headers: map[string]string{"Accept": "text/plain"}})
	require.NoError(t, err)
}

func TestRequest_JSONErrorCarriesServerMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"error":"facility not found"}`)
	})

	_, err := c.Request(context.Background(), "/temperatures/latest", Options{})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "facility not found", apiErr.Error())
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestRequest_JSONErrorWithoutMessageFallsBack(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"detail":"boom"}`)
	})

	_, err := c.Request(context.Background(), "/x", Options{})
	require.Error(t, err)
	assert.Equal(t, genericErrorText, err.Error())
}

func TestRequest_NonJSON(t *testing.T) {
	t.Run("error status rejects with generic message", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, "<h1>bad gateway</h1>")
		})
		_, err := c.Request(context.Background(), "/x", Options{})
		require.Error(t, err)
		assert.Equal(t, genericErrorText, err.Error())
		assert.Equal(t, http.StatusBadGateway, StatusOf(err))
	})

	t.Run("success resolves with raw text", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			_, _ = io.WriteString(w, "queued")
		})
		res, err := c.Request(context.Background(), "/x", Options{})
		require.NoError(t, err)
		assert.False(t, res.IsJSON())
		assert.Equal(t, "queued", res.Text)
	})
}

func TestRequest_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := New(Config{BaseURL: srv.URL}, srv.Client(), nil)
	srv.Close()

	_, err := c.Request(context.Background(), "/x", Options{})
	require.Error(t, err)
	assert.Equal(t, 0, StatusOf(err))
}

func TestGetLatestTemperatures_OmitsUnsetFilters(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/temperatures/latest", r.URL.Path)
		assert.Equal(t, "hours=24", r.URL.RawQuery)
		writeJSON(w, http.StatusOK, `{"units":[{"unit_id":12,"name":"Freezer A","status":"normal","current_temperature":-18.2}]}`)
	})

	got, err := c.GetLatestTemperatures(context.Background(), TemperatureQuery{Hours: 24})
	require.NoError(t, err)
	require.Len(t, got.Units, 1)
	assert.Equal(t, "12", got.Units[0].UnitID.String())
	require.NotNil(t, got.Units[0].CurrentTemperature)
	assert.InDelta(t, -18.2, *got.Units[0].CurrentTemperature, 1e-9)
}

func TestDo_AdminSurfaceSendsFlatJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/admin/customers/7", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"name": "Acme"}, body)
		writeJSON(w, http.StatusOK, `{"id":7,"name":"Acme"}`)
	})

	res, err := c.Do(context.Background(), http.MethodPut, "/admin/customers/{customer_id}", "/admin/customers/7", map[string]string{"name": "Acme"})
	require.NoError(t, err)
	assert.True(t, res.IsJSON())
}

func TestTriggerIngestion_UsesPOST(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/customers/me/trigger-ingestion", r.URL.Path)
		writeJSON(w, http.StatusAccepted, `{"status":"queued"}`)
	})

	res, err := c.TriggerIngestion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, res.Status)
}

func TestAdminChartEndpoints(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/api/customer_stats":
			writeJSON(w, http.StatusOK, `[{"customer_id":"c1","customer_code":"ACME","facility_count":2,"unit_count":5,"reading_count":900}]`)
		case "/admin/api/ingestion_summary":
			writeJSON(w, http.StatusOK, `{"success_count":9,"failure_count":1,"total_records":1200,"success_rate":90}`)
		default:
			http.NotFound(w, r)
		}
	})

	stats, err := c.GetCustomerStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "ACME", stats[0].CustomerCode)
	assert.Equal(t, 5, stats[0].UnitCount)

	sum, err := c.GetIngestionSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, sum.Processes())
	assert.InDelta(t, 90.0, sum.SuccessRate, 1e-9)
}

func TestGetTemperatureStats_ForwardsFilters(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/temperatures/statistics", r.URL.Path)
		assert.Equal(t, "facility_id=f1&hours=24", r.URL.RawQuery)
		writeJSON(w, http.StatusOK, `{"avg_temperature":3.5,"reading_count":96}`)
	})

	stats, err := c.GetTemperatureStats(context.Background(), TemperatureQuery{FacilityID: "f1", Hours: 24})
	require.NoError(t, err)
	assert.Equal(t, "3.5", stats.String("avg_temperature"))
	assert.Equal(t, "96", stats.String("reading_count"))
}

func TestGetCurrentCustomer(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/customers/me", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		writeJSON(w, http.StatusOK, `{"id":7,"name":"Acme","tokens":[{"id":3,"name":"ci"}]}`)
	})

	profile, err := c.GetCurrentCustomer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "7", profile.String("id"))
	assert.Equal(t, "Acme", profile.String("name"))
}

func TestGetCurrentCustomer_Error(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"error":"invalid token"}`)
	})

	_, err := c.GetCurrentCustomer(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
	assert.Equal(t, "invalid token", err.Error())
}

func TestDo_MetricsUseRouteTemplate(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"error":"no such token"}`)
	}))
	t.Cleanup(backend.Close)

	metrics := observability.NewMetrics()
	c := New(Config{AdminBaseURL: backend.URL}, backend.Client(), metrics)
	for _, id := range []string{"3", "4", "5"} {
		_, err := c.Do(context.Background(), http.MethodDelete,
			"/admin/customers/{customer_id}/tokens/{token_id}", "/admin/customers/7/tokens/"+id, nil)
		require.Error(t, err)
	}

	scrape := httptest.NewServer(metrics.Handler())
	t.Cleanup(scrape.Close)
	resp, err := http.Get(scrape.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := string(raw)

	assert.Contains(t, out, `endpoint="/admin/customers/{customer_id}/tokens/{token_id}"} 3`)
	assert.False(t, strings.Contains(out, "/admin/customers/7/tokens/3"), "resource ids must not become labels")
}
