package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"tempmon_dashboard/internal/models"
)

// Canvas ids the chart data is drawn into.
const (
	TemperatureChartID      = "temperature-chart"
	UnitHistoryChartID      = "unit-history-chart"
	FacilityChartID         = "facility-history-chart"
	CustomerStatsChartID    = "customerStatsChart"
	CustomerReadingsChartID = "customerReadingsChart"
	IngestionSummaryChartID = "ingestionSummaryChart"
)

// Dataset is one series handed to the charting library.
type Dataset struct {
	Label           string     `json:"label,omitempty"`
	Data            []*float64 `json:"data"`
	BorderColor     any        `json:"borderColor,omitempty"`
	BackgroundColor any        `json:"backgroundColor,omitempty"`
	BorderDash      []int      `json:"borderDash,omitempty"`
	BorderWidth     int        `json:"borderWidth,omitempty"`
	Fill            bool       `json:"fill"`
	PointRadius     *int       `json:"pointRadius,omitempty"`
	Tension         float64    `json:"tension,omitempty"`
}

// ChartData is the library-neutral description of one chart: categorical
// labels plus numeric series.
type ChartData struct {
	Type        string    `json:"type"`
	Title       string    `json:"title,omitempty"`
	Labels      []string  `json:"labels"`
	Datasets    []Dataset `json:"datasets"`
	YTitle      string    `json:"yTitle,omitempty"`
	XTitle      string    `json:"xTitle,omitempty"`
	BeginAtZero bool      `json:"beginAtZero,omitempty"`
}

// JSON encodes the chart for a data attribute. Encoding plain structs
// cannot fail, so errors fall back to an empty object.
func (c ChartData) JSON() string {
	b, err := json.Marshal(c)
	if err != nil {
		return "{}"
	}
	return string(b)
}

var palette = []string{
	"rgba(13, 110, 253, 1)",
	"rgba(25, 135, 84, 1)",
	"rgba(220, 53, 69, 1)",
	"rgba(255, 193, 7, 1)",
	"rgba(13, 202, 240, 1)",
	"rgba(111, 66, 193, 1)",
}

func withAlpha(color string, alpha float64) string {
	return strings.Replace(color, "1)", fmt.Sprintf("%g)", alpha), 1)
}

func num(v float64) *float64 { return &v }

func ints(v int) *int { return &v }

// OverviewChart is a single "Now" point per unit, colour-cycled.
func OverviewChart(units []models.TemperatureUnit) ChartData {
	data := ChartData{
		Type:     "line",
		Labels:   []string{"Now"},
		Datasets: make([]Dataset, 0, len(units)),
		YTitle:   "Temperature (°C)",
	}
	for i, u := range units {
		color := palette[i%len(palette)]
		data.Datasets = append(data.Datasets, Dataset{
			Label:           orDefault(u.Name, fmt.Sprintf("Unit %d", i+1)),
			Data:            []*float64{u.CurrentTemperature},
			BorderColor:     color,
			BackgroundColor: withAlpha(color, 0.2),
			Tension:         0.1,
		})
	}
	return data
}

// HistoryChart plots the readings in the order given, with the set point
// as a dashed flat reference line.
func HistoryChart(readings []models.Reading, unit models.TemperatureUnit) ChartData {
	labels := make([]string, 0, len(readings))
	temps := make([]*float64, 0, len(readings))
	setLine := make([]*float64, 0, len(readings))
	for _, r := range readings {
		label := r.Timestamp
		if t, ok := ParseTimestamp(r.Timestamp); ok {
			label = t.Format("15:04")
		}
		labels = append(labels, label)
		temps = append(temps, num(r.Temperature))
		setLine = append(setLine, unit.SetTemperature)
	}

	return ChartData{
		Type:   "line",
		Labels: labels,
		Datasets: []Dataset{
			{
				Label:           "Temperature",
				Data:            temps,
				BorderColor:     palette[0],
				BackgroundColor: withAlpha(palette[0], 0.1),
				Fill:            true,
				Tension:         0.1,
			},
			{
				Label:       "Set Temperature",
				Data:        setLine,
				BorderColor: palette[1],
				BorderDash:  []int{5, 5},
				PointRadius: ints(0),
			},
		},
		YTitle: fmt.Sprintf("Temperature (°%s)", orDefault(unit.Unit, "C")),
		XTitle: "Time",
	}
}

// FacilityHistoryChart is the readings of a whole facility as one series.
func FacilityHistoryChart(readings []models.Reading) ChartData {
	c := HistoryChart(readings, models.TemperatureUnit{})
	c.Datasets = c.Datasets[:1]
	c.Title = "Last 24 hours"
	return c
}

// CustomerStatsCharts returns the resources bar chart and the readings bar
// chart, which has its own scale.
func CustomerStatsCharts(stats []models.CustomerStat) (resources, readings ChartData) {
	labels := make([]string, 0, len(stats))
	facilities := make([]*float64, 0, len(stats))
	units := make([]*float64, 0, len(stats))
	counts := make([]*float64, 0, len(stats))
	for _, s := range stats {
		labels = append(labels, s.CustomerCode)
		facilities = append(facilities, num(float64(s.FacilityCount)))
		units = append(units, num(float64(s.UnitCount)))
		counts = append(counts, num(float64(s.ReadingCount)))
	}

	resources = ChartData{
		Type:   "bar",
		Title:  "Customer Resources",
		Labels: labels,
		Datasets: []Dataset{
			barDataset("Facilities", facilities, palette[0]),
			barDataset("Storage Units", units, palette[2]),
		},
		YTitle:      "Count",
		XTitle:      "Customer",
		BeginAtZero: true,
	}
	readings = ChartData{
		Type:        "bar",
		Title:       "Customer Temperature Readings",
		Labels:      labels,
		Datasets:    []Dataset{barDataset("Temperature Readings", counts, palette[1])},
		YTitle:      "Reading Count",
		XTitle:      "Customer",
		BeginAtZero: true,
	}
	return resources, readings
}

func barDataset(label string, data []*float64, color string) Dataset {
	return Dataset{
		Label:           label,
		Data:            data,
		BorderColor:     color,
		BackgroundColor: withAlpha(color, 0.7),
		BorderWidth:     1,
	}
}

// IngestionChart is the Success/Failure pie of recent ingestion runs.
func IngestionChart(s models.IngestionSummary) ChartData {
	ok, fail := palette[1], palette[2]
	return ChartData{
		Type:   "pie",
		Title:  "Ingestion Process Results",
		Labels: []string{"Success", "Failure"},
		Datasets: []Dataset{{
			Data:            []*float64{num(float64(s.SuccessCount)), num(float64(s.FailureCount))},
			BackgroundColor: []string{withAlpha(ok, 0.7), withAlpha(fail, 0.7)},
			BorderColor:     []string{ok, fail},
			BorderWidth:     1,
		}},
	}
}

// IngestionCards are the figures shown under the ingestion pie.
type IngestionCards struct {
	SuccessRate  string
	TotalRecords int
	Processes    int
}

func NewIngestionCards(s models.IngestionSummary) IngestionCards {
	return IngestionCards{
		SuccessRate:  fmt.Sprintf("%.1f%%", s.SuccessRate),
		TotalRecords: s.TotalRecords,
		Processes:    s.Processes(),
	}
}

// Percent is a slice's rounded share of the total, 0 when the total is 0.
func Percent(value, total int) int {
	if total == 0 {
		return 0
	}
	return int(jsRound(float64(value) / float64(total) * 100))
}
