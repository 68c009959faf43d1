package http

import (
	"time"

	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
)

// ResourceResponse is the shape of a vehicle or driver in API responses.
type ResourceResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Name          string    `json:"name"`
	PlateNumber   *string   `json:"plate_number,omitempty"`
	LicenseNumber *string   `json:"license_number,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewResourceResponse converts a domain fleet.Resource to its API shape.
func NewResourceResponse(r *fleet.Resource) ResourceResponse {
	return ResourceResponse{
		ID:            r.ID,
		Type:          string(r.Type),
		Name:          r.Name,
		PlateNumber:   r.PlateNumber,
		LicenseNumber: r.LicenseNumber,
		Phone:         r.Phone,
		CreatedAt:     r.CreatedAt,
	}
}

// FleetResponse groups a vendor's resources by type.
type FleetResponse struct {
	Vehicles []ResourceResponse `json:"vehicles"`
	Drivers  []ResourceResponse `json:"drivers"`
}

func NewFleetResponse(l *fleet.List) FleetResponse {
	resp := FleetResponse{
		Vehicles: make([]ResourceResponse, 0, len(l.Vehicles)),
		Drivers:  make([]ResourceResponse, 0, len(l.Drivers)),
	}
	for _, v := range l.Vehicles {
		resp.Vehicles = append(resp.Vehicles, NewResourceResponse(v))
	}
	for _, d := range l.Drivers {
		resp.Drivers = append(resp.Drivers, NewResourceResponse(d))
	}
	return resp
}

// CreateResourceRequest registers a vehicle or a driver.
type CreateResourceRequest struct {
	Type          string  `json:"type" binding:"required,oneof=vehicle driver"`
	Name          string  `json:"name" binding:"required"`
	PlateNumber   *string `json:"plate_number"`
	LicenseNumber *string `json:"license_number"`
	Phone         *string `json:"phone"`
}
