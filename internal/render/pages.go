package render

import (
	"time"

	"tempmon_dashboard/internal/models"
)

// FacilitySummary is a card of the facilities page. Alarm counts only
// cover units with a live status.
type FacilitySummary struct {
	FacilityCard
	Critical   int
	Warning    int
	AlarmShare int // percent of the facility's units in warning or critical
}

// FacilitySummaries counts the live units of every facility. A facility
// without live units keeps its stored unit count.
func FacilitySummaries(facilities []models.Facility, units []models.TemperatureUnit) []FacilitySummary {
	type tally struct{ units, critical, warning int }
	byFacility := make(map[string]*tally, len(facilities))
	for _, u := range units {
		id := u.FacilityID.String()
		t, ok := byFacility[id]
		if !ok {
			t = &tally{}
			byFacility[id] = t
		}
		t.units++
		switch u.Status {
		case models.StatusCritical:
			t.critical++
		case models.StatusWarning:
			t.warning++
		}
	}

	cards := FacilityCards(facilities)
	out := make([]FacilitySummary, 0, len(cards))
	for _, c := range cards {
		s := FacilitySummary{FacilityCard: c}
		if t, ok := byFacility[c.ID]; ok {
			s.Units = t.units
			s.Critical, s.Warning = t.critical, t.warning
			s.AlarmShare = Percent(t.critical+t.warning, t.units)
		}
		out = append(out, s)
	}
	return out
}

// FacilitiesPage is the facilities list.
type FacilitiesPage struct {
	Facilities []models.Facility
	Units      []models.TemperatureUnit
	Notices    []models.Notice
}

type facilitiesView struct {
	Nav        string
	Facilities []FacilitySummary
	Notices    []models.Notice
}

func (p FacilitiesPage) view() facilitiesView {
	return facilitiesView{
		Nav:        "facilities",
		Facilities: FacilitySummaries(p.Facilities, p.Units),
		Notices:    p.Notices,
	}
}

// FacilityPage is one facility with its units and last day of readings.
type FacilityPage struct {
	Facility   models.Facility
	Units      []models.TemperatureUnit
	Chart      *ChartView
	Stats      models.Record
	Notices    []models.Notice
	Now        time.Time
	Thresholds Thresholds
}

type facilityView struct {
	Nav     string
	Summary FacilitySummary
	Rows    []UnitRow
	Chart   *ChartView
	Stats   []Field
	Notices []models.Notice
}

func (p FacilityPage) view() facilityView {
	now := p.Now
	if now.IsZero() {
		now = time.Now()
	}
	summary := FacilitySummaries([]models.Facility{p.Facility}, p.Units)[0]
	return facilityView{
		Nav:     "facilities",
		Summary: summary,
		Rows:    UnitRows(p.Units, now, p.Thresholds),
		Chart:   p.Chart,
		Stats:   Fields(p.Stats),
		Notices: p.Notices,
	}
}

// UnitsPage lists every unit of the customer.
type UnitsPage struct {
	Units      []models.TemperatureUnit
	Notices    []models.Notice
	Now        time.Time
	Thresholds Thresholds
}

type unitsView struct {
	Nav     string
	Rows    []UnitRow
	Notices []models.Notice
}

func (p UnitsPage) view() unitsView {
	now := p.Now
	if now.IsZero() {
		now = time.Now()
	}
	return unitsView{Nav: "units", Rows: UnitRows(p.Units, now, p.Thresholds), Notices: p.Notices}
}

// SettingsPage is the customer profile with its API tokens.
type SettingsPage struct {
	Profile models.Record
	Notices []models.Notice
}

type settingsView struct {
	Nav     string
	Profile []Field
	Tokens  []TokenView
	Notices []models.Notice
}

func (p SettingsPage) view() settingsView {
	return settingsView{
		Nav:     "settings",
		Profile: Fields(p.Profile),
		Tokens:  tokenViews(p.Profile),
		Notices: p.Notices,
	}
}
