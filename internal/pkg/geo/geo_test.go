package geo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

// One degree of latitude is ~111 195 m on a 6 371 km sphere.
const metersPerDegree = 2 * 3.141592653589793 * EarthRadiusMeters / 360

func TestDistance_Symmetric(t *testing.T) {
	points := [][2]float64{
		{-6.2088, 106.8456},
		{-7.2575, 112.7521},
		{51.5074, -0.1278},
		{0, 0},
		{89.9, 179.9},
	}
	for _, a := range points {
		assert.Equal(t, 0.0, Distance(a[0], a[1], a[0], a[1]))
		for _, b := range points {
			assert.InDelta(t, Distance(a[0], a[1], b[0], b[1]), Distance(b[0], b[1], a[0], a[1]), 1e-6)
		}
	}
}

func TestDistance_JakartaSurabaya(t *testing.T) {
	d := Distance(-6.2088, 106.8456, -7.2575, 112.7521)
	assert.InDelta(t, 663000, d, 5000)
}

func TestDistance_AlongMeridianAndEquator(t *testing.T) {
	assert.InDelta(t, metersPerDegree, Distance(0, 0, 1, 0), 1e-6)
	assert.InDelta(t, metersPerDegree, Distance(0, 0, 0, 1), 1e-6)
	assert.InDelta(t, 180*metersPerDegree, Distance(0, 0, 0, 180), 1e-3)
}

func TestValidateLocation(t *testing.T) {
	fence := Geofence{Name: "Head Office", Latitude: ptr(0), Longitude: ptr(0), RadiusMeters: 100}

	t.Run("inside radius", func(t *testing.T) {
		res, err := ValidateLocation(fence, 50/metersPerDegree, 0)
		require.NoError(t, err)
		assert.True(t, res.Valid)
		assert.InDelta(t, 50, res.DistanceMeters, 0.5)
	})

	t.Run("outside radius", func(t *testing.T) {
		res, err := ValidateLocation(fence, 150/metersPerDegree, 0)
		require.Error(t, err)
		assert.False(t, res.Valid)
		assert.True(t, errors.Is(err, ErrOutsideGeofence))

		var geoErr *GeofenceError
		require.True(t, errors.As(err, &geoErr))
		assert.InDelta(t, 150, geoErr.DistanceMeters, 0.5)
		assert.Equal(t, "you are 150m away from Head Office. maximum allowed: 100m", err.Error())
	})

	t.Run("on the boundary", func(t *testing.T) {
		res, err := ValidateLocation(Geofence{Name: "HQ", Latitude: ptr(0), Longitude: ptr(0), RadiusMeters: 0}, 0, 0)
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})

	t.Run("no coordinates", func(t *testing.T) {
		res, err := ValidateLocation(Geofence{Name: "Remote", RadiusMeters: 100}, 0, 0)
		assert.ErrorIs(t, err, ErrLocationNotConfigured)
		assert.False(t, res.Valid)
	})
}
