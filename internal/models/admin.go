package models

import (
	"fmt"
	"strconv"
)

// Record is an admin-side entity (customer, token, config entry, overview).
// The dashboard echoes its fields into forms and never validates them.
type Record map[string]any

// String returns the field as text, or "" when absent.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	default:
		return stringify(t)
	}
}

// RecordList is the paged envelope of the admin listings (customers, facilities).
type RecordList struct {
	Items []Record `json:"items"`
}

// CustomerStat is one entry of GET /admin/api/customer_stats.
type CustomerStat struct {
	CustomerID    ID     `json:"customer_id"`
	CustomerCode  string `json:"customer_code"`
	FacilityCount int    `json:"facility_count"`
	UnitCount     int    `json:"unit_count"`
	ReadingCount  int    `json:"reading_count"`
}

// IngestionSummary is the payload of GET /admin/api/ingestion_summary.
type IngestionSummary struct {
	SuccessCount int     `json:"success_count"`
	FailureCount int     `json:"failure_count"`
	TotalRecords int     `json:"total_records"`
	SuccessRate  float64 `json:"success_rate"`
}

// Processes is the number of ingestion runs the summary covers.
func (s IngestionSummary) Processes() int { return s.SuccessCount + s.FailureCount }

func stringify(v any) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
