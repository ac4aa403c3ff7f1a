package grib

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMagnitude(t *testing.T) {
	assert.Equal(t, 5.0, Magnitude(3, 4))
	assert.Equal(t, 0.0, Magnitude(0, 0))
	assert.Equal(t, 5.0, Magnitude(-3, 4))
}

func TestBearingCompassValues(t *testing.T) {
	cases := []struct {
		name    string
		u, v    float64
		bearing float64
	}{
		{"eastward comes from the west", 1, 0, 270},
		{"northward comes from the south", 0, 1, 180},
		{"westward comes from the east", -1, 0, 90},
		{"southward comes from the north", 0, -1, 0},
		{"north-eastward comes from the south-west", 1, 1, 225},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.bearing, Bearing(tc.u, tc.v), 1e-9)
		})
	}
}

func TestBearingStaysInCompassRange(t *testing.T) {
	for angle := 0.0; angle < 360; angle += 7.3 {
		rad := angle * math.Pi / 180
		b := Bearing(math.Cos(rad), math.Sin(rad))
		assert.GreaterOrEqual(t, b, 0.0)
		assert.Less(t, b, 360.0)
	}
}
