package render

import "tempmon_dashboard/internal/models"

// Option is one entry of the facility selector.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// FacilityOptions rebuilds the selector behind "All Facilities". The
// current value stays selected when a facility with that id still exists,
// otherwise the selection falls back to models.AllFacilities. The returned
// string is the effective selection.
func FacilityOptions(facilities []models.Facility, current string) ([]Option, string) {
	selected := models.AllFacilities
	for _, f := range facilities {
		if current != "" && f.ID.String() == current {
			selected = current
			break
		}
	}

	opts := make([]Option, 0, len(facilities)+1)
	opts = append(opts, Option{
		Value:    models.AllFacilities,
		Label:    "All Facilities",
		Selected: selected == models.AllFacilities,
	})
	for _, f := range facilities {
		id := f.ID.String()
		opts = append(opts, Option{
			Value:    id,
			Label:    orDefault(f.Name, "Unnamed Facility"),
			Selected: id == selected && selected != models.AllFacilities,
		})
	}
	return opts, selected
}

// TimeRanges are the hour windows offered by the time-range selector.
var TimeRanges = []struct {
	Hours int
	Label string
}{
	{1, "Last hour"},
	{6, "Last 6 hours"},
	{12, "Last 12 hours"},
	{24, "Last 24 hours"},
	{72, "Last 3 days"},
	{168, "Last 7 days"},
}
