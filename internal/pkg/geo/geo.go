package geo

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadiusMeters is the mean earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000

var (
	ErrLocationNotConfigured = errors.New("branch location not configured")
	ErrOutsideGeofence       = errors.New("you are outside the allowed radius")
)

// Geofence is a circular area around a branch.
type Geofence struct {
	Name         string
	Latitude     *float64
	Longitude    *float64
	RadiusMeters int
}

type LocationResult struct {
	Valid          bool
	DistanceMeters float64
}

// GeofenceError reports how far the caller is from the branch.
type GeofenceError struct {
	Branch         string
	DistanceMeters float64
	RadiusMeters   int
}

func (e *GeofenceError) Error() string {
	return fmt.Sprintf("you are %.0fm away from %s. maximum allowed: %dm", math.Round(e.DistanceMeters), e.Branch, e.RadiusMeters)
}

func (e *GeofenceError) Unwrap() error {
	return ErrOutsideGeofence
}

// Distance returns the great-circle distance in meters between two
// coordinates given in degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1, phi2 := radians(lat1), radians(lat2)
	halfDPhi := radians(lat2-lat1) / 2
	halfDLambda := radians(lon2-lon1) / 2

	sinPhi, sinLambda := math.Sin(halfDPhi), math.Sin(halfDLambda)
	h := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda

	return 2 * EarthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ValidateLocation checks a coordinate against the fence. The result carries the
// measured distance even when the error is non-nil.
func ValidateLocation(fence Geofence, lat, lng float64) (LocationResult, error) {
	if fence.Latitude == nil || fence.Longitude == nil {
		return LocationResult{}, ErrLocationNotConfigured
	}

	distance := Distance(*fence.Latitude, *fence.Longitude, lat, lng)
	if distance > float64(fence.RadiusMeters) {
		return LocationResult{DistanceMeters: distance}, &GeofenceError{
			Branch:         fence.Name,
			DistanceMeters: distance,
			RadiusMeters:   fence.RadiusMeters,
		}
	}

	return LocationResult{Valid: true, DistanceMeters: distance}, nil
}
