package service

import (
	"time"

	"tempmon_dashboard/internal/models"
	"tempmon_dashboard/internal/render"
)

// LogFilter narrows the action journal by time range, action name and outcome.
type LogFilter struct {
	From    time.Time // inclusive; zero means no lower bound
	To      time.Time // inclusive; zero means no upper bound
	Type    string    // action name, e.g. "token.revoke"; empty means all
	Outcome string    // SUCCESS, FAILURE, PREVIEW or REJECTED; empty means all
}

// Snapshot is one committed refresh. It replaces the previous one wholesale.
type Snapshot struct {
	Token      uint64
	Selection  models.Selection
	Units      []models.TemperatureUnit
	Facilities []models.Facility
	Alerts     []models.Alert
	Options    []render.Option
	FetchedAt  time.Time
}

// UnitDetail is the unit-detail modal content. Err holds the history
// fetch failure behind a "Failed to load history data" notice.
type UnitDetail struct {
	Unit        models.TemperatureUnit
	Readings    []models.Reading
	Chart       *render.ChartView
	Notice      string
	NoticeLevel string
	Err         error
}

// FacilitiesPage is the customer's facilities with the latest unit
// statuses, when they loaded.
type FacilitiesPage struct {
	Facilities []models.Facility
	Units      []models.TemperatureUnit
}

// FacilityPage is one facility. Chart is nil when there are no readings
// and Stats is nil when the statistics failed to load.
type FacilityPage struct {
	Facility models.Facility
	Units    []models.TemperatureUnit
	Chart    *render.ChartView
	Stats    models.Record
}

type UnitsPage struct {
	Units []models.TemperatureUnit
}

type SettingsPage struct {
	Profile models.Record
}

// AdminPage is the data of the admin landing page.
type AdminPage struct {
	Customers  []models.Record
	Facilities []models.Record
	Overview   models.Record
	Config     models.Record
	Alerts     []models.Alert
}
