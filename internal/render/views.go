package render

import (
	"sort"
	"strings"
	"time"

	"tempmon_dashboard/internal/models"
)

// UnitRow is one row of the current temperatures table.
type UnitRow struct {
	UnitID      string
	Name        string
	Facility    string
	Temperature string
	Deviation   string // normal | warning | danger, empty without a set point
	Badge       Badge
	Updated     string
}

// UnitRows sorts the units by severity and formats each row.
func UnitRows(units []models.TemperatureUnit, now time.Time, th Thresholds) []UnitRow {
	sorted := SortUnits(units)
	rows := make([]UnitRow, 0, len(sorted))
	for _, u := range sorted {
		row := UnitRow{
			UnitID:      u.UnitID.String(),
			Name:        orDefault(u.Name, "Unnamed Unit"),
			Facility:    orDefault(u.FacilityName, "Unknown Facility"),
			Temperature: FormatTemperature(u.CurrentTemperature, u.Unit),
			Badge:       StatusBadge(u.Status),
			Updated:     TimeAgoString(u.LastUpdated, now),
		}
		if u.CurrentTemperature != nil && u.SetTemperature != nil {
			row.Deviation = th.Classify(*u.CurrentTemperature, *u.SetTemperature)
		}
		rows = append(rows, row)
	}
	return rows
}

// FacilityCard is one card of the facilities section.
type FacilityCard struct {
	ID       string
	Name     string
	Location string
	Units    int
}

func FacilityCards(facilities []models.Facility) []FacilityCard {
	cards := make([]FacilityCard, 0, len(facilities))
	for _, f := range facilities {
		loc := "Unknown"
		if f.City != "" {
			loc = f.City + ", " + f.Country
		}
		cards = append(cards, FacilityCard{
			ID:       f.ID.String(),
			Name:     orDefault(f.Name, "Unnamed Facility"),
			Location: loc,
			Units:    f.UnitsCount,
		})
	}
	return cards
}

// AlertItem is one entry of the alerts list.
type AlertItem struct {
	Severity string
	Title    string
	Message  string
	TimeAgo  string
	Resolved bool
}

// AlertItems orders the alerts and formats each entry.
func AlertItems(alerts []models.Alert, now time.Time) []AlertItem {
	sorted := SortAlerts(alerts)
	items := make([]AlertItem, 0, len(sorted))
	for _, a := range sorted {
		items = append(items, AlertItem{
			Severity: a.Severity,
			Title:    a.UnitName + " - " + a.FacilityName,
			Message:  a.Message,
			TimeAgo:  TimeAgoString(a.Timestamp, now),
			Resolved: a.Resolved,
		})
	}
	return items
}

// ChartView binds chart data to a canvas. Generation changes on every
// redraw so the page can drop the previous chart instance.
type ChartView struct {
	ID         string
	Generation uint64
	Data       ChartData
}

// Dashboard is everything the dashboard page and its fragments need.
// Loaded is false before the first successful refresh, in which case the
// sections show their loading placeholders.
type Dashboard struct {
	Loaded     bool
	Units      []models.TemperatureUnit
	Facilities []models.Facility
	Alerts     []models.Alert
	Options    []Option
	Hours      int
	Chart      *ChartView
	Notices    []models.Notice
	Now        time.Time
	Thresholds Thresholds
	Interval   time.Duration
}

type dashboardView struct {
	Loaded        bool
	Rows          []UnitRow
	Facilities    []FacilityCard
	Alerts        []AlertItem
	Options       []Option
	Hours         int
	Ranges        []rangeOption
	Chart         *ChartView
	Notices       []models.Notice
	IntervalMilli int64
}

type rangeOption struct {
	Hours    int
	Label    string
	Selected bool
}

func (d Dashboard) view() dashboardView {
	now := d.Now
	if now.IsZero() {
		now = time.Now()
	}
	hours := d.Hours
	if hours <= 0 {
		hours = models.DefaultHours
	}
	opts := d.Options
	if len(opts) == 0 {
		opts, _ = FacilityOptions(nil, models.AllFacilities)
	}

	ranges := make([]rangeOption, 0, len(TimeRanges))
	for _, r := range TimeRanges {
		ranges = append(ranges, rangeOption{Hours: r.Hours, Label: r.Label, Selected: r.Hours == hours})
	}

	return dashboardView{
		Loaded:        d.Loaded,
		Rows:          UnitRows(d.Units, now, d.Thresholds),
		Facilities:    FacilityCards(d.Facilities),
		Alerts:        AlertItems(d.Alerts, now),
		Options:       opts,
		Hours:         hours,
		Ranges:        ranges,
		Chart:         d.Chart,
		Notices:       d.Notices,
		IntervalMilli: d.Interval.Milliseconds(),
	}
}

// UnitDetail fills the unit-detail modal. Exactly one of Chart and Notice
// is set once the history request has finished.
type UnitDetail struct {
	Unit        models.TemperatureUnit
	Chart       *ChartView
	Notice      string
	NoticeLevel string
}

type unitDetailView struct {
	UnitID      string
	Name        string
	Facility    string
	Current     string
	Target      string
	Badge       Badge
	Equipment   string
	Size        string
	LastUpdate  string
	Chart       *ChartView
	Notice      string
	NoticeLevel string
}

func (d UnitDetail) view() unitDetailView {
	u := d.Unit
	return unitDetailView{
		UnitID:      u.UnitID.String(),
		Name:        orDefault(u.Name, "Unnamed Unit"),
		Facility:    orDefault(u.FacilityName, "Unknown Facility"),
		Current:     FormatTemperature(u.CurrentTemperature, u.Unit),
		Target:      FormatTemperature(u.SetTemperature, u.Unit),
		Badge:       StatusBadge(u.Status),
		Equipment:   orDefault(u.EquipmentType, "N/A"),
		Size:        FormatSize(u.SizeValue, u.SizeUnit),
		LastUpdate:  FormatDateTime(u.LastUpdated),
		Chart:       d.Chart,
		Notice:      d.Notice,
		NoticeLevel: d.NoticeLevel,
	}
}

// Field is a labelled value of an opaque admin record.
type Field struct {
	Key   string
	Value string
}

// Fields lists a record's scalar fields in key order.
func Fields(r models.Record) []Field {
	keys := make([]string, 0, len(r))
	for k, v := range r {
		switch v.(type) {
		case map[string]any, []any:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, Field{Key: k, Value: r.String(k)})
	}
	return out
}

// CustomerView is a customer row of the admin page with its tokens.
type CustomerView struct {
	ID     string
	Name   string
	Code   string
	Tokens []TokenView
}

type TokenView struct {
	ID        string
	Name      string
	CreatedAt string
	Active    bool
}

// tokenViews lists the API tokens nested in a customer record.
func tokenViews(customer models.Record) []TokenView {
	var out []TokenView
	for _, t := range nested(customer, "tokens") {
		out = append(out, TokenView{
			ID:        t.String("id"),
			Name:      orDefault(t.String("name"), "token-"+t.String("id")),
			CreatedAt: FormatDateTime(t.String("created_at")),
			Active:    t.String("is_active") != "false",
		})
	}
	return out
}

// FacilityView is a facility row of the admin page with its units.
type FacilityView struct {
	ID    string
	Name  string
	Code  string
	Units []AdminUnitView
}

type AdminUnitView struct {
	ID   string
	Name string
	Code string
}

// Admin is the admin landing page.
type Admin struct {
	Customers  []models.Record
	Facilities []models.Record
	Overview   models.Record
	Config     models.Record
	Alerts     []models.Alert
	Notices    []models.Notice
	Now        time.Time
}

type adminView struct {
	Customers  []CustomerView
	Facilities []FacilityView
	Overview   []Field
	Config     []Field
	Alerts     []AlertItem
	Notices    []models.Notice
}

func (a Admin) view() adminView {
	now := a.Now
	if now.IsZero() {
		now = time.Now()
	}
	v := adminView{
		Overview: Fields(a.Overview),
		Config:   configFields(a.Config),
		Alerts:   AlertItems(a.Alerts, now),
		Notices:  a.Notices,
	}
	for _, c := range a.Customers {
		cv := CustomerView{
			ID:   c.String("id"),
			Name: orDefault(c.String("name"), c.String("customer_code")),
			Code: c.String("customer_code"),
		}
		cv.Tokens = tokenViews(c)
		v.Customers = append(v.Customers, cv)
	}
	for _, f := range a.Facilities {
		fv := FacilityView{
			ID:   f.String("id"),
			Name: orDefault(f.String("name"), f.String("facility_code")),
			Code: f.String("facility_code"),
		}
		for _, u := range nested(f, "units") {
			fv.Units = append(fv.Units, AdminUnitView{
				ID:   u.String("id"),
				Name: orDefault(u.String("name"), u.String("unit_code")),
				Code: u.String("unit_code"),
			})
		}
		v.Facilities = append(v.Facilities, fv)
	}
	return v
}

// configFields flattens the config document. Entries are either plain
// values or objects carrying a "value" field.
func configFields(r models.Record) []Field {
	out := make([]Field, 0, len(r))
	for k, v := range r {
		switch t := v.(type) {
		case map[string]any:
			out = append(out, Field{Key: k, Value: models.Record(t).String("value")})
		default:
			out = append(out, Field{Key: k, Value: r.String(k)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func nested(r models.Record, key string) []models.Record {
	list, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]models.Record, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, models.Record(m))
		}
	}
	return out
}

// ClassToken makes an id usable inside a class name or selector.
func ClassToken(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
