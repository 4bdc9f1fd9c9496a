package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"tempmon_dashboard/internal/models"
)

// Section selectors, as keyed in Fragments.
const (
	SelectorTable      = "#current-temps-table tbody"
	SelectorFacilities = "#facilities-container"
	SelectorAlerts     = "#alerts-container"
	SelectorOptions    = "#facility-selector"
	SelectorBanners    = "#alert-container"
	SelectorChart      = "#temperature-chart-box"
)

// Renderer holds the page templates, parsed once.
type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	t := template.New("tempmon").Funcs(template.FuncMap{
		"classToken": ClassToken,
	})
	for _, src := range []string{baseTemplates, dashboardTemplate, adminTemplate, pagesTemplate} {
		var err error
		if t, err = t.Parse(src); err != nil {
			return nil, fmt.Errorf("parse templates: %w", err)
		}
	}
	return &Renderer{tmpl: t}, nil
}

// MustNew is New for start-up code and tests.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

func (r *Renderer) executeString(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.execute(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Page writes the full dashboard document.
func (r *Renderer) Page(w io.Writer, d Dashboard) error {
	return r.execute(w, "dashboard", d.view())
}

// Fragments renders every refreshable section keyed by its CSS selector.
// Sections are only included once the dashboard has loaded; banners are
// always included.
func (r *Renderer) Fragments(d Dashboard) (map[string]string, error) {
	v := d.view()
	out := make(map[string]string, 6)

	banners, err := r.executeString("banners", v.Notices)
	if err != nil {
		return nil, err
	}
	out[SelectorBanners] = banners
	if !v.Loaded {
		return out, nil
	}

	for selector, name := range map[string]string{
		SelectorTable:      "temps_rows",
		SelectorFacilities: "facilities",
		SelectorAlerts:     "alerts",
		SelectorOptions:    "selector",
	} {
		html, err := r.executeString(name, v)
		if err != nil {
			return nil, err
		}
		out[selector] = html
	}

	if v.Chart != nil {
		html, err := r.executeString("chart", v.Chart)
		if err != nil {
			return nil, err
		}
		out[SelectorChart] = html
	}
	return out, nil
}

// Banners renders the alert container content.
func (r *Renderer) Banners(notices []models.Notice) (string, error) {
	return r.executeString("banners", notices)
}

// UnitDetail writes the body of the unit-detail modal.
func (r *Renderer) UnitDetail(w io.Writer, d UnitDetail) error {
	return r.execute(w, "unit_detail", d.view())
}

// Admin writes the admin landing page.
func (r *Renderer) Admin(w io.Writer, a Admin) error {
	return r.execute(w, "admin", a.view())
}

// CustomerStats writes the two customer bar charts.
func (r *Renderer) CustomerStats(w io.Writer, resources, readings ChartView) error {
	return r.execute(w, "customer_stats", struct {
		Resources, Readings *ChartView
	}{&resources, &readings})
}

// IngestionSummary writes the ingestion pie and its summary cards.
func (r *Renderer) IngestionSummary(w io.Writer, chart ChartView, cards IngestionCards) error {
	return r.execute(w, "ingestion_summary", struct {
		Chart *ChartView
		Cards IngestionCards
	}{&chart, cards})
}

// Facilities writes the facilities list page.
func (r *Renderer) Facilities(w io.Writer, p FacilitiesPage) error {
	return r.execute(w, "facilities_page", p.view())
}

// Facility writes the detail page of one facility.
func (r *Renderer) Facility(w io.Writer, p FacilityPage) error {
	return r.execute(w, "facility_page", p.view())
}

func (r *Renderer) Units(w io.Writer, p UnitsPage) error {
	return r.execute(w, "units_page", p.view())
}

func (r *Renderer) Settings(w io.Writer, p SettingsPage) error {
	return r.execute(w, "settings_page", p.view())
}

// ChartError writes the inline notice shown in place of a failed chart.
func (r *Renderer) ChartError(w io.Writer, message string) error {
	return r.execute(w, "chart_error", message)
}
