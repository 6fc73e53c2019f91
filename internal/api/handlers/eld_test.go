package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-log-service/internal/eld"
)

func TestPlaceParamsTrims(t *testing.T) {
	q, err := url.ParseQuery("pickup=+chicago+&dropoff=%09denver")
	require.NoError(t, err)

	pickup, dropoff := placeParams(q)
	assert.Equal(t, "chicago", pickup)
	assert.Equal(t, "denver", dropoff)

	// Chart links built from trimmed names carry no stray whitespace.
	panels := eld.BuildPanels(1000, 24, pickup, dropoff)
	got := panelResponses(panels, pickup, dropoff)
	require.Len(t, got, 1)
	assert.Equal(t, "Chicago", got[0].From)
	assert.Equal(t, "/v1/eld/panels/1/chart.png?cycle_hours=24&dropoff=denver&pickup=chicago&total_miles=1000", got[0].ChartURL)
}

func TestEldParams(t *testing.T) {
	tests := []struct {
		query     string
		miles     float64
		cycle     float64
		wantError bool
	}{
		{"", 0, 0, false},
		{"total_miles=12.5&cycle_hours=70", 12.5, 70, false},
		{"total_miles=x", 0, 0, true},
		{"cycle_hours=10001", 0, 0, true},
		{"cycle_hours=10000", 0, 10000, false},
	}

	for _, tt := range tests {
		q, err := url.ParseQuery(tt.query)
		require.NoError(t, err)

		miles, cycle, err := eldParams(q)
		if tt.wantError {
			assert.Error(t, err, tt.query)
			continue
		}
		require.NoError(t, err, tt.query)
		assert.Equal(t, tt.miles, miles, tt.query)
		assert.Equal(t, tt.cycle, cycle, tt.query)
	}
}
