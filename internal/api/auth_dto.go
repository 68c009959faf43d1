package api

import (
	"time"

	"github.com/nekogravitycat/fleet-availability-backend/internal/vendor"
)

// VendorResponse is the shape of vendor data returned in API responses.
type VendorResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	CompanyName *string    `json:"company_name"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
	IsActive    bool       `json:"is_active"`
}

// NewVendorResponse converts a domain vendor.Vendor to VendorResponse.
func NewVendorResponse(v *vendor.Vendor) VendorResponse {
	return VendorResponse{
		ID:          v.ID,
		Email:       v.Email,
		CompanyName: v.CompanyName,
		CreatedAt:   v.CreatedAt,
		LastLoginAt: v.LastLoginAt,
		IsActive:    v.IsActive,
	}
}

// RegisterRequest defines the payload for vendor registration.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	CompanyName string `json:"company_name"`
}

// LoginRequest defines the payload for vendor login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse returns the created vendor.
type RegisterResponse struct {
	Vendor VendorResponse `json:"vendor"`
}

// LoginResponse returns the token and vendor info.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	Vendor      VendorResponse `json:"vendor"`
}

// MeResponse returns the current vendor info.
type MeResponse struct {
	Vendor VendorResponse `json:"vendor"`
}
