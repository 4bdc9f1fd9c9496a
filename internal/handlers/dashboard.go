package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tempmon_dashboard/internal/models"
	"tempmon_dashboard/internal/render"
	"tempmon_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errLoadView     = "failed to load dashboard view"
	errRender       = "failed to render page"
	errStaleRefresh = "refresh superseded by a newer request"
	errUnitNotFound = "Unit not found"
	errIngestion    = "failed to trigger data ingestion"
)

// renderHTML renders into a buffer first so a template failure still
// produces a clean 500.
func (h *Handler) renderHTML(c *gin.Context, code int, logKey string, fn func(w io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errRender, logKey, err)
		return
	}
	c.Data(code, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) view(c *gin.Context) (*service.View, bool) {
	v, err := h.services.Dashboard.View(c.Request.Context(), sessionID(c))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadView, "view_load_failed", err, "session_id", sessionID(c))
		return nil, false
	}
	return v, true
}

// selectionFromQuery overlays facility_id and hours from the query string
// on the view's current selection.
func selectionFromQuery(c *gin.Context, current models.Selection) models.Selection {
	sel := current
	if f := strings.TrimSpace(c.Query("facility_id")); f != "" {
		sel.FacilityID = f
	}
	if hs := c.Query("hours"); hs != "" {
		if n, err := strconv.Atoi(hs); err == nil && n > 0 {
			sel.Hours = n
		}
	}
	return sel.Normalize()
}

// dashboardModel assembles the page model from the view's last committed
// refresh. Before the first one the sections stay in their loading state.
func (h *Handler) dashboardModel(v *service.View) render.Dashboard {
	d := render.Dashboard{
		Hours:      v.Selection().Hours,
		Notices:    h.services.Notifier.Active(v.SessionID()),
		Now:        time.Now(),
		Thresholds: h.cfg.Thresholds,
		Interval:   h.cfg.RefreshInterval,
	}
	snap := v.Snapshot()
	if snap == nil {
		return d
	}
	d.Loaded = true
	d.Units = snap.Units
	d.Facilities = snap.Facilities
	d.Alerts = snap.Alerts
	d.Options = snap.Options
	d.Hours = snap.Selection.Hours
	if chart, ok := v.Chart(render.TemperatureChartID).Current(); ok {
		d.Chart = &chart
	}
	return d
}

// refresh runs one cycle and logs failures that are not just superseded.
func (h *Handler) refresh(c *gin.Context, v *service.View, sel models.Selection) error {
	_, err := h.services.Dashboard.Refresh(c.Request.Context(), v, sel)
	if err != nil && !errors.Is(err, service.ErrStaleRefresh) && h.log != nil {
		h.log.Warnw("dashboard_refresh_failed", "err", err, "session_id", v.SessionID(),
			"facility_id", sel.FacilityID, "hours", sel.Hours)
	}
	return err
}

// @Summary      Dashboard page
// @Description  Renders the temperature dashboard after one refresh cycle.
// @Tags         dashboard
// @Produce      html
// @Param        facility_id  query  string  false  "Facility id or 'all'"
// @Param        hours        query  int     false  "Time range in hours"  Enums(1,6,12,24,72,168)
// @Success      200  {string}  string  "HTML page"
// @Router       / [get]
func (h *Handler) dashboardPage(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	_ = h.refresh(c, v, selectionFromQuery(c, v.Selection()))

	d := h.dashboardModel(v)
	h.renderHTML(c, http.StatusOK, "dashboard_render_failed", func(w io.Writer) error {
		return h.renderer.Page(w, d)
	})
}

// @Summary      Refresh dashboard fragments
// @Description  Runs one refresh cycle and returns every section keyed by CSS selector. A superseded cycle answers 409 and must be ignored.
// @Tags         dashboard
// @Produce      json
// @Param        facility_id  query  string  false  "Facility id or 'all'"
// @Param        hours        query  int     false  "Time range in hours"
// @Success      200  {object}  map[string]interface{}  "fragments"
// @Failure      409  {object}  map[string]string
// @Failure      502  {object}  map[string]interface{}  "error, fragments"
// @Router       /dashboard/fragments/refresh [get]
func (h *Handler) refreshFragments(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	err := h.refresh(c, v, selectionFromQuery(c, v.Selection()))
	if errors.Is(err, service.ErrStaleRefresh) {
		c.JSON(http.StatusConflict, gin.H{"error": errStaleRefresh})
		return
	}

	fragments, rerr := h.renderer.Fragments(h.dashboardModel(v))
	if rerr != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errRender, "fragments_render_failed", rerr)
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "fragments": fragments})
		return
	}
	c.JSON(http.StatusOK, gin.H{"fragments": fragments})
}

// @Summary      Unit detail
// @Description  Renders the unit-detail modal body with the unit's 24h history chart.
// @Tags         dashboard
// @Produce      html
// @Param        id   path  string  true  "Unit id"
// @Success      200  {string}  string  "HTML fragment"
// @Failure      404  {string}  string  "HTML fragment"
// @Router       /dashboard/units/{id} [get]
func (h *Handler) unitDetail(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	unitID := c.Param("id")
	d, err := h.services.Dashboard.UnitDetail(c.Request.Context(), v, unitID)
	if err != nil {
		h.renderHTML(c, http.StatusNotFound, "unit_error_render_failed", func(w io.Writer) error {
			return h.renderer.ChartError(w, errUnitNotFound)
		})
		return
	}
	if d.Err != nil && h.log != nil {
		h.log.Warnw("unit_history_failed", "err", d.Err, "unit_id", unitID)
	}

	model := render.UnitDetail{Unit: d.Unit, Chart: d.Chart, Notice: d.Notice, NoticeLevel: d.NoticeLevel}
	h.renderHTML(c, http.StatusOK, "unit_detail_render_failed", func(w io.Writer) error {
		return h.renderer.UnitDetail(w, model)
	})
}

// @Summary      Trigger ingestion
// @Description  Asks the backend to pull fresh readings; the outcome is posted as a banner.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "fragments"
// @Failure      502  {object}  map[string]interface{}  "error, fragments"
// @Router       /dashboard/ingestion [post]
func (h *Handler) triggerIngestion(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	err := h.services.Dashboard.TriggerIngestion(c.Request.Context(), v)

	banners, rerr := h.renderer.Banners(h.services.Notifier.Active(v.SessionID()))
	if rerr != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errRender, "banners_render_failed", rerr)
		return
	}
	fragments := map[string]string{render.SelectorBanners: banners}
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ingestion_trigger_failed", "err", err)
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": errIngestion, "fragments": fragments})
		return
	}
	c.JSON(http.StatusOK, gin.H{"fragments": fragments})
}

// @Summary      Dismiss banner
// @Tags         dashboard
// @Produce      json
// @Param        id   path  string  true  "Banner id"
// @Success      200  {object}  map[string]bool
// @Router       /dashboard/banners/{id}/dismiss [post]
func (h *Handler) dismissBanner(c *gin.Context) {
	ok := h.services.Notifier.Dismiss(sessionID(c), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"dismissed": ok})
}
