package branch

import (
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/geo"
)

const (
	DefaultRadiusMeters = 50
	MinRadiusMeters     = 1
	MaxRadiusMeters     = 10000
	DefaultTimezone     = "Asia/Jakarta"
)

type Branch struct {
	ID           string
	Name         string
	Address      *string
	Latitude     *float64
	Longitude    *float64
	RadiusMeters int
	Timezone     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Geofence returns the check-in area of the branch.
func (b Branch) Geofence() geo.Geofence {
	return geo.Geofence{
		Name:         b.Name,
		Latitude:     b.Latitude,
		Longitude:    b.Longitude,
		RadiusMeters: b.RadiusMeters,
	}
}

// Location loads the branch timezone, falling back to fallback and then UTC.
func (b Branch) Location(fallback string) *time.Location {
	for _, name := range []string{b.Timezone, fallback} {
		if name == "" {
			continue
		}
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.UTC
}
