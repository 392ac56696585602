package branch

import (
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
)

// BranchResponse represents the response structure for a branch.
type BranchResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Address      *string  `json:"address,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RadiusMeters int      `json:"radius"`
	Timezone     string   `json:"timezone"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

func ToResponse(b Branch) BranchResponse {
	return BranchResponse{
		ID:           b.ID,
		Name:         b.Name,
		Address:      b.Address,
		Latitude:     b.Latitude,
		Longitude:    b.Longitude,
		RadiusMeters: b.RadiusMeters,
		Timezone:     b.Timezone,
		CreatedAt:    b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    b.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateBranchRequest represents the request structure for creating a branch.
type CreateBranchRequest struct {
	Name         string   `json:"name" validate:"required,max=100"`
	Address      *string  `json:"address,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	RadiusMeters *int     `json:"radius,omitempty"`
	Timezone     *string  `json:"timezone,omitempty"`
}

func (r *CreateBranchRequest) Validate() error {
	errs := validator.Struct(r)
	validateLocation(&errs, r.Latitude, r.Longitude, r.RadiusMeters, r.Timezone)
	return errs.Err()
}

// ApplyDefaults fills radius and timezone when they are omitted.
func (r *CreateBranchRequest) ApplyDefaults() {
	if r.RadiusMeters == nil {
		radius := DefaultRadiusMeters
		r.RadiusMeters = &radius
	}
	if r.Timezone == nil || validator.IsEmpty(*r.Timezone) {
		tz := DefaultTimezone
		r.Timezone = &tz
	}
}

// UpdateBranchRequest represents the request structure for updating a branch.
type UpdateBranchRequest struct {
	ID           string   `json:"id" validate:"required"`
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Address      *string  `json:"address,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	RadiusMeters *int     `json:"radius,omitempty"`
	Timezone     *string  `json:"timezone,omitempty"`
}

func (r *UpdateBranchRequest) Validate() error {
	errs := validator.Struct(r)
	validateLocation(&errs, r.Latitude, r.Longitude, r.RadiusMeters, r.Timezone)
	return errs.Err()
}

func validateLocation(errs *validator.ValidationErrors, lat, lng *float64, radius *int, timezone *string) {
	if (lat == nil) != (lng == nil) {
		errs.Add("latitude", "latitude and longitude must be provided together")
	}
	if radius != nil && (*radius < MinRadiusMeters || *radius > MaxRadiusMeters) {
		errs.Add("radius", "radius must be between 1 and 10000 meters")
	}
	if timezone != nil && !validator.IsEmpty(*timezone) {
		if _, err := time.LoadLocation(*timezone); err != nil {
			errs.Add("timezone", "timezone must be a valid IANA timezone")
		}
	}
}
