package apiclient

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_EncodeDropsUnset(t *testing.T) {
	var missing *string
	hours := 12

	cases := []struct {
		name string
		in   Params
		want string
	}{
		{"nil_map", nil, ""},
		{"all_unset", Params{"facility_id": nil, "unit_id": missing}, ""},
		{"mixed", Params{"facility_id": nil, "hours": 24, "unit_id": "u-1"}, "hours=24&unit_id=u-1"},
		{"pointer_value", Params{"hours": &hours}, "hours=12"},
		{"sorted_keys", Params{"limit": 24, "hours": 24, "unit_id": "x"}, "hours=24&limit=24&unit_id=x"},
		{"escaped", Params{"facility_id": "a b&c"}, "facility_id=a+b%26c"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Encode()
			assert.Equal(t, tc.want, got)
			assert.NotContains(t, got, "undefined")
			assert.NotContains(t, got, "nil")
		})
	}
}

func TestTemperatureQuery_Params(t *testing.T) {
	t.Run("empty query sends nothing", func(t *testing.T) {
		assert.Equal(t, "", TemperatureQuery{}.Params().Encode())
	})

	t.Run("only set filters are sent", func(t *testing.T) {
		qs := TemperatureQuery{Hours: 24}.Params().Encode()
		assert.Equal(t, "hours=24", qs)
		for _, k := range []string{"facility_id", "unit_id", "limit"} {
			if strings.Contains(qs, k) {
				t.Fatalf("unexpected %s in %q", k, qs)
			}
		}
	})

	t.Run("history window", func(t *testing.T) {
		qs := TemperatureQuery{UnitID: "7", Hours: 24, Limit: 24}.Params().Encode()
		assert.Equal(t, "hours=24&limit=24&unit_id=7", qs)
	})
}
