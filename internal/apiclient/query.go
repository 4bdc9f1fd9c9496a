package apiclient

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
)

// Params is an optional-value query parameter set. Nil values (and nil
// pointers) mean "not set" and are dropped before encoding, so an omitted
// filter never reaches the backend as a literal placeholder.
type Params map[string]any

// Compact deletes unset entries in place and returns p.
func (p Params) Compact() Params {
	for k, v := range p {
		if k == "" || isUnset(v) {
			delete(p, k)
		}
	}
	return p
}

// Encode compacts p and renders it as a query string with sorted keys.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}
	values := url.Values{}
	for k, v := range p.Compact() {
		values.Set(k, formatValue(v))
	}
	return values.Encode()
}

func isUnset(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func formatValue(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		v = rv.Elem().Interface()
	}
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// TemperatureQuery holds the optional filters accepted by the
// /temperatures endpoints. Zero values are treated as not set.
type TemperatureQuery struct {
	FacilityID string
	Hours      int
	UnitID     string
	Limit      int
}

// Params converts the query into a Params set, leaving zero fields unset.
func (q TemperatureQuery) Params() Params {
	p := Params{"facility_id": nil, "hours": nil, "unit_id": nil, "limit": nil}
	if q.FacilityID != "" {
		p["facility_id"] = q.FacilityID
	}
	if q.Hours > 0 {
		p["hours"] = q.Hours
	}
	if q.UnitID != "" {
		p["unit_id"] = q.UnitID
	}
	if q.Limit > 0 {
		p["limit"] = q.Limit
	}
	return p
}
