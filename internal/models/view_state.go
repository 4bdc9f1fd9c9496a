package models

import "time"

// AllFacilities is the selector sentinel meaning "no facility filter".
const AllFacilities = "all"

// DefaultHours is the default time range of the dashboard.
const DefaultHours = 24

// Selection is what the facility and time-range selectors currently hold.
type Selection struct {
	FacilityID string `json:"facility_id"`
	Hours      int    `json:"hours"`
}

// Normalize applies the selector defaults.
func (s Selection) Normalize() Selection {
	if s.FacilityID == "" {
		s.FacilityID = AllFacilities
	}
	if s.Hours <= 0 {
		s.Hours = DefaultHours
	}
	return s
}

// ViewState is the persisted selection of one viewer session.
type ViewState struct {
	SessionID  string    `json:"session_id"`
	FacilityID string    `json:"facility_id"`
	Hours      int       `json:"hours"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Selection returns the normalized selection stored in the view state.
func (v ViewState) Selection() Selection {
	return Selection{FacilityID: v.FacilityID, Hours: v.Hours}.Normalize()
}
