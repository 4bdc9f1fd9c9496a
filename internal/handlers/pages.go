package handlers

import (
	"io"
	"net/http"
	"time"

	"tempmon_dashboard/internal/render"

	"github.com/gin-gonic/gin"
)

func (h *Handler) registerPageRoutes(r *gin.RouterGroup) {
	r.GET("/facilities", h.facilitiesPage)
	r.GET("/facilities/:id", h.facilityPage)
	r.GET("/units", h.unitsPage)
	r.GET("/settings", h.settingsPage)
}

// @Summary      Facilities page
// @Description  Lists the customer's facilities with live unit counts and the share of units in alarm.
// @Tags         pages
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Router       /facilities [get]
func (h *Handler) facilitiesPage(c *gin.Context) {
	sid := sessionID(c)
	page, err := h.services.Pages.Facilities(c.Request.Context(), sid)
	if err != nil && h.log != nil {
		h.log.Warnw("facilities_page_load_failed", "err", err, "session_id", sid)
	}
	model := render.FacilitiesPage{
		Facilities: page.Facilities,
		Units:      page.Units,
		Notices:    h.services.Notifier.Active(sid),
	}
	h.renderHTML(c, http.StatusOK, "facilities_render_failed", func(w io.Writer) error {
		return h.renderer.Facilities(w, model)
	})
}

// @Summary      Facility detail page
// @Description  Renders one facility with its units, 24h readings chart and statistics. Redirects to /facilities when the facility cannot be loaded.
// @Tags         pages
// @Produce      html
// @Param        id   path  string  true  "Facility id"
// @Success      200  {string}  string  "HTML page"
// @Success      303  {string}  string  "Redirect to /facilities"
// @Router       /facilities/{id} [get]
func (h *Handler) facilityPage(c *gin.Context) {
	sid := sessionID(c)
	page, err := h.services.Pages.FacilityDetail(c.Request.Context(), sid, c.Param("id"))
	if err != nil {
		if h.log != nil {
			h.log.Warnw("facility_page_load_failed", "err", err, "session_id", sid, "facility_id", c.Param("id"))
		}
		c.Redirect(http.StatusSeeOther, "/facilities")
		return
	}
	model := render.FacilityPage{
		Facility:   page.Facility,
		Units:      page.Units,
		Chart:      page.Chart,
		Stats:      page.Stats,
		Notices:    h.services.Notifier.Active(sid),
		Now:        time.Now(),
		Thresholds: h.cfg.Thresholds,
	}
	h.renderHTML(c, http.StatusOK, "facility_render_failed", func(w io.Writer) error {
		return h.renderer.Facility(w, model)
	})
}

// @Summary      Units page
// @Description  Lists every unit of the customer, most severe first.
// @Tags         pages
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Router       /units [get]
func (h *Handler) unitsPage(c *gin.Context) {
	sid := sessionID(c)
	page, err := h.services.Pages.Units(c.Request.Context(), sid)
	if err != nil && h.log != nil {
		h.log.Warnw("units_page_load_failed", "err", err, "session_id", sid)
	}
	model := render.UnitsPage{
		Units:      page.Units,
		Notices:    h.services.Notifier.Active(sid),
		Now:        time.Now(),
		Thresholds: h.cfg.Thresholds,
	}
	h.renderHTML(c, http.StatusOK, "units_render_failed", func(w io.Writer) error {
		return h.renderer.Units(w, model)
	})
}

// @Summary      Settings page
// @Description  Renders the signed-in customer's profile and API tokens.
// @Tags         pages
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Router       /settings [get]
func (h *Handler) settingsPage(c *gin.Context) {
	sid := sessionID(c)
	page, err := h.services.Pages.Settings(c.Request.Context(), sid)
	if err != nil && h.log != nil {
		h.log.Warnw("settings_page_load_failed", "err", err, "session_id", sid)
	}
	h.renderHTML(c, http.StatusOK, "settings_render_failed", func(w io.Writer) error {
		return h.renderer.Settings(w, render.SettingsPage{
			Profile: page.Profile,
			Notices: h.services.Notifier.Active(sid),
		})
	})
}
