package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"tempmon_dashboard/internal/apiclient"
	"tempmon_dashboard/internal/models"
	"tempmon_dashboard/internal/render"
	"tempmon_dashboard/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type actionResponse struct {
	Action  string          `json:"action"`
	Level   string          `json:"level"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Confirm string          `json:"confirm"`
	Patches []service.Patch `json:"patches"`
	Banners string          `json:"banners"`
}

func postAction(t *testing.T, b *browser, name, body string) (*actionResponse, int) {
	t.Helper()
	w := b.do(http.MethodPost, "/admin/actions/"+name, "application/json", strings.NewReader(body))
	var out actionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return &out, w.Code
}

func TestTokenRevoke_EndToEnd(t *testing.T) {
	backend := sampleBackend()
	s, journal := newTestServices(backend)
	b := newBrowser(t, newTestRouter(s))

	out, code := postAction(t, b, "token.revoke", `{"customer_id":"7","token_id":"3"}`)
	require.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Are you sure you want to revoke this token? This action cannot be undone.", out.Confirm)
	assert.Empty(t, backend.Calls(), "declined confirmation must not reach the backend")

	out, code = postAction(t, b, "token.revoke", `{"customer_id":"7","token_id":"3","confirm":"true"}`)
	require.Equal(t, http.StatusOK, code)

	calls := backend.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodDelete, calls[0].Method)
	assert.Equal(t, "/admin/customers/7/tokens/3", calls[0].Path)

	require.Len(t, out.Patches, 1)
	assert.Equal(t, service.PatchRemove, out.Patches[0].Kind)
	assert.Equal(t, "#token-row-3", out.Patches[0].Selector)
	assert.Contains(t, out.Banners, "Token revoked successfully!")

	require.Len(t, journal.events, 2)
	assert.Equal(t, "REJECTED", journal.events[0].Outcome)
	assert.Equal(t, "SUCCESS", journal.events[1].Outcome)
}

func TestDispatchAction_FormEncoded(t *testing.T) {
	backend := sampleBackend()
	s, _ := newTestServices(backend)
	b := newBrowser(t, newTestRouter(s))

	form := url.Values{"name": {"Acme"}, "customer_code": {"ACME"}}
	w := b.do(http.MethodPost, "/admin/actions/customer.create", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	calls := backend.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/admin/customers", calls[0].Path)
	assert.Equal(t, map[string]string{"name": "Acme", "customer_code": "ACME"}, calls[0].Body)
}

func TestDispatchAction_Errors(t *testing.T) {
	t.Run("unknown action", func(t *testing.T) {
		s, _ := newTestServices(sampleBackend())
		_, code := postAction(t, newBrowser(t, newTestRouter(s)), "nope", `{}`)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("missing field", func(t *testing.T) {
		s, _ := newTestServices(sampleBackend())
		out, code := postAction(t, newBrowser(t, newTestRouter(s)), "customer.create", `{"name":""}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, out.Banners, errMissingFields)
	})

	t.Run("invalid body", func(t *testing.T) {
		s, _ := newTestServices(sampleBackend())
		b := newBrowser(t, newTestRouter(s))
		w := b.do(http.MethodPost, "/admin/actions/customer.create", "application/json", strings.NewReader(`{`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("backend failure", func(t *testing.T) {
		backend := sampleBackend()
		backend.doErr = &apiclient.APIError{Status: http.StatusBadRequest, Message: "duplicate code"}
		s, _ := newTestServices(backend)
		out, code := postAction(t, newBrowser(t, newTestRouter(s)), "customer.create", `{"name":"Acme"}`)
		assert.Equal(t, http.StatusBadGateway, code)
		assert.Equal(t, "Error creating customer: duplicate code", out.Error)
		assert.Contains(t, out.Banners, "duplicate code")
	})
}

func TestAdminPage(t *testing.T) {
	s, _ := newTestServices(sampleBackend())
	b := newBrowser(t, newTestRouter(s))

	w := b.get("/admin")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	html := w.Body.String()
	for _, want := range []string{`id="customerCreateForm"`, "customer-update-form", "token-create-form", "Acme", "North"} {
		assert.Contains(t, html, want)
	}
}

func TestAdminCharts(t *testing.T) {
	backend := sampleBackend()
	backend.stats = []models.CustomerStat{{CustomerCode: "ACME", FacilityCount: 1, UnitCount: 2, ReadingCount: 40}}
	backend.summary = models.IngestionSummary{SuccessCount: 9, FailureCount: 1, TotalRecords: 100, SuccessRate: 90}
	s, _ := newTestServices(backend)
	b := newBrowser(t, newTestRouter(s))

	w := b.get("/admin/charts/customer-stats")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="`+render.CustomerStatsChartID+`"`)

	w = b.get("/admin/charts/ingestion-summary")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="`+render.IngestionSummaryChartID+`"`)

	backend.summaryErr = errors.New("boom")
	w = b.get("/admin/charts/ingestion-summary")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), errIngestionStats)
}

func TestAdminCharts_Empty(t *testing.T) {
	s, _ := newTestServices(sampleBackend())
	b := newBrowser(t, newTestRouter(s))

	w := b.get("/admin/charts/customer-stats")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), noCustomerStatsText)
}
