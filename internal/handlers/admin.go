package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"tempmon_dashboard/internal/models"
	"tempmon_dashboard/internal/render"
	"tempmon_dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	errInvalidBody      = "invalid body: "
	errMissingFields    = "Please fill in all required fields"
	errCustomerStats    = "Error loading customer statistics"
	errIngestionStats   = "Error loading ingestion statistics"
	noCustomerStatsText = "No customer data available"
	noIngestionText     = "No ingestion data available"
)

// @Summary      Admin page
// @Description  Renders customers, facilities, system overview, alerts and configuration with forms bound to admin actions.
// @Tags         admin
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Router       /admin [get]
func (h *Handler) adminPage(c *gin.Context) {
	sid := sessionID(c)
	page, err := h.services.Admin.Page(c.Request.Context(), sid)
	if err != nil && h.log != nil {
		h.log.Errorw("admin_page_load_failed", "err", err)
	}
	if page == nil {
		page = &service.AdminPage{}
	}

	model := render.Admin{
		Customers:  page.Customers,
		Facilities: page.Facilities,
		Overview:   page.Overview,
		Config:     page.Config,
		Alerts:     page.Alerts,
		Notices:    h.services.Notifier.Active(sid),
		Now:        time.Now(),
	}
	h.renderHTML(c, http.StatusOK, "admin_render_failed", func(w io.Writer) error {
		return h.renderer.Admin(w, model)
	})
}

// bindForm accepts a flat JSON object or a url-encoded form.
func bindForm(c *gin.Context) (service.Form, error) {
	form := service.Form{}
	if c.ContentType() == binding.MIMEJSON {
		if err := c.ShouldBindJSON(&form); err != nil {
			return nil, err
		}
		return form, nil
	}
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	for k := range c.Request.PostForm {
		form[k] = c.Request.PostForm.Get(k)
	}
	return form, nil
}

// @Summary      Dispatch admin action
// @Description  Binds a submitted admin form to its REST call. Destructive actions answer 409 with a confirm prompt until resubmitted with confirm=true.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        name  path  string             true  "Action name"  Enums(customer.create,customer.update,token.create,token.revoke,facility.create,facility.update,unit.create,unit.update,config.update,ml.configure,ml.train)
// @Param        form  body  map[string]string  true  "Flat form fields"
// @Success      200  {object}  map[string]interface{}  "outcome with patches and banners"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string  "error, confirm"
// @Failure      502  {object}  map[string]interface{}
// @Router       /admin/actions/{name} [post]
func (h *Handler) dispatchAction(c *gin.Context) {
	sid := sessionID(c)
	name := c.Param("name")

	form, err := bindForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody + err.Error()})
		return
	}

	outcome, err := h.services.Actions.Dispatch(c.Request.Context(), sid, name, form)
	switch {
	case errors.Is(err, service.ErrUnknownAction):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, service.ErrConfirmationRequired):
		action, _ := h.services.Actions.Lookup(name)
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "confirm": action.Confirm})
		return
	case errors.Is(err, service.ErrMissingField):
		h.services.Notifier.Post(sid, models.LevelWarning, errMissingFields, true)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "banners": h.bannersHTML(sid)})
		return
	case err != nil:
		if h.log != nil {
			h.log.Errorw("admin_action_failed", "err", err, "action", name)
		}
		resp := gin.H{"error": err.Error(), "banners": h.bannersHTML(sid)}
		if outcome != nil {
			resp["error"] = outcome.Message
			resp["status"] = outcome.Status
		}
		c.JSON(http.StatusBadGateway, resp)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"action":  outcome.Action,
		"level":   outcome.Level,
		"message": outcome.Message,
		"status":  outcome.Status,
		"patches": outcome.Patches,
		"data":    outcome.Data,
		"banners": h.bannersHTML(sid),
	})
}

// bannersHTML renders the session's banners, empty when rendering fails.
func (h *Handler) bannersHTML(sid string) string {
	html, err := h.renderer.Banners(h.services.Notifier.Active(sid))
	if err != nil {
		if h.log != nil {
			h.log.Errorw("banners_render_failed", "err", err)
		}
		return ""
	}
	return html
}

// @Summary      Customer statistics charts
// @Tags         admin
// @Produce      html
// @Success      200  {string}  string  "HTML fragment"
// @Failure      502  {string}  string  "HTML fragment"
// @Router       /admin/charts/customer-stats [get]
func (h *Handler) customerStatsChart(c *gin.Context) {
	stats, err := h.services.Admin.CustomerStats(c.Request.Context())
	if err != nil {
		if h.log != nil {
			h.log.Errorw("customer_stats_failed", "err", err)
		}
		h.chartError(c, http.StatusBadGateway, errCustomerStats)
		return
	}
	if len(stats) == 0 {
		h.chartError(c, http.StatusOK, noCustomerStatsText)
		return
	}

	v, ok := h.view(c)
	if !ok {
		return
	}
	resources, readings := render.CustomerStatsCharts(stats)
	rv := v.Chart(render.CustomerStatsChartID).Replace(resources)
	dv := v.Chart(render.CustomerReadingsChartID).Replace(readings)
	h.renderHTML(c, http.StatusOK, "customer_stats_render_failed", func(w io.Writer) error {
		return h.renderer.CustomerStats(w, rv, dv)
	})
}

// @Summary      Ingestion summary chart
// @Tags         admin
// @Produce      html
// @Success      200  {string}  string  "HTML fragment"
// @Failure      502  {string}  string  "HTML fragment"
// @Router       /admin/charts/ingestion-summary [get]
func (h *Handler) ingestionSummaryChart(c *gin.Context) {
	summary, err := h.services.Admin.IngestionSummary(c.Request.Context())
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ingestion_summary_failed", "err", err)
		}
		h.chartError(c, http.StatusBadGateway, errIngestionStats)
		return
	}
	if summary.Processes() == 0 {
		h.chartError(c, http.StatusOK, noIngestionText)
		return
	}

	v, ok := h.view(c)
	if !ok {
		return
	}
	chart := v.Chart(render.IngestionSummaryChartID).Replace(render.IngestionChart(summary))
	cards := render.NewIngestionCards(summary)
	h.renderHTML(c, http.StatusOK, "ingestion_summary_render_failed", func(w io.Writer) error {
		return h.renderer.IngestionSummary(w, chart, cards)
	})
}

func (h *Handler) chartError(c *gin.Context, code int, msg string) {
	h.renderHTML(c, code, "chart_error_render_failed", func(w io.Writer) error {
		return h.renderer.ChartError(w, msg)
	})
}
