package models

// Unit statuses reported by the backend.
const (
	StatusCritical = "critical"
	StatusWarning  = "warning"
	StatusNormal   = "normal"
	StatusUnknown  = "unknown"
)

// Alert severities.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
)

// TemperatureUnit is the latest reading of one monitored storage/cooling unit.
// It is rebuilt on every refresh and never merged with a previous copy.
type TemperatureUnit struct {
	UnitID             ID       `json:"unit_id"`
	Name               string   `json:"name"`
	FacilityID         ID       `json:"facility_id,omitempty"`
	FacilityName       string   `json:"facility_name"`
	CurrentTemperature *float64 `json:"current_temperature,omitempty"`
	SetTemperature     *float64 `json:"set_temperature,omitempty"`
	Unit               string   `json:"unit,omitempty"` // C | F | K
	Status             string   `json:"status"`
	LastUpdated        string   `json:"last_updated,omitempty"`
	EquipmentType      string   `json:"equipment_type,omitempty"`
	SizeValue          *float64 `json:"size_value,omitempty"`
	SizeUnit           string   `json:"size_unit,omitempty"`
}

// Facility is a physical site containing one or more units.
type Facility struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
	UnitsCount int    `json:"units_count"`
}

// Alert is a temperature excursion raised by the backend.
type Alert struct {
	UnitID       ID     `json:"unit_id,omitempty"`
	UnitName     string `json:"unit_name"`
	FacilityID   ID     `json:"facility_id,omitempty"`
	FacilityName string `json:"facility_name"`
	Severity     string `json:"severity"`
	Resolved     bool   `json:"resolved"`
	Message      string `json:"message"`
	Timestamp    string `json:"timestamp"`
}

// Reading is one historical sample for a single unit.
type Reading struct {
	Timestamp   string  `json:"timestamp"`
	Temperature float64 `json:"temperature"`
}

// LatestTemperatures is the payload of GET /api/temperatures/latest.
type LatestTemperatures struct {
	Units []TemperatureUnit `json:"units"`
}

// FacilityList is the payload of GET /api/customers/me/facilities.
type FacilityList struct {
	Facilities []Facility `json:"facilities"`
}

// AlertList is the payload of GET /api/temperatures/alerts and the admin system alerts.
type AlertList struct {
	Alerts []Alert `json:"alerts"`
}

// ReadingList is the payload of GET /api/temperatures.
type ReadingList struct {
	Readings []Reading `json:"readings"`
}
