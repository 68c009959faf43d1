package auth

import "github.com/gin-gonic/gin"

// GetVendorID returns the authenticated vendor's ID or empty string.
// Handlers pass this value explicitly into services; nothing below the HTTP
// layer reads the request context for identity.
func GetVendorID(c *gin.Context) string {
	if v, ok := c.Get("vendorID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetVendorEmail returns the authenticated vendor's email or empty string.
func GetVendorEmail(c *gin.Context) string {
	if v, ok := c.Get("vendorEmail"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
