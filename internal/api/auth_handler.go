package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/fleet-availability-backend/internal/auth"
	"github.com/nekogravitycat/fleet-availability-backend/internal/vendor"
)

type AuthHandler struct {
	vendorService vendor.Service
	jwtManager    *auth.JWTManager
}

func NewAuthHandler(
	vendorService vendor.Service,
	jwtManager *auth.JWTManager,
) *AuthHandler {
	return &AuthHandler{
		vendorService: vendorService,
		jwtManager:    jwtManager,
	}
}

//
// POST /v1/auth/register
//

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()

	v, err := h.vendorService.Register(ctx, req.Email, req.Password, req.CompanyName)
	if err != nil {
		switch err {
		case vendor.ErrEmailAlreadyUsed:
			c.JSON(http.StatusConflict, gin.H{"error": "email already used"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	resp := RegisterResponse{
		Vendor: NewVendorResponse(v),
	}

	c.JSON(http.StatusCreated, resp)
}

//
// POST /v1/auth/login
//

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()

	v, err := h.vendorService.Login(ctx, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid email or password",
		})
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(v.ID, v.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to generate token",
		})
		return
	}

	resp := LoginResponse{
		AccessToken: token,
		Vendor:      NewVendorResponse(v),
	}

	c.JSON(http.StatusOK, resp)
}

//
// GET /v1/auth/me
//

func (h *AuthHandler) Me(c *gin.Context) {
	vendorID := auth.GetVendorID(c)
	if vendorID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	v, err := h.vendorService.GetByID(c.Request.Context(), vendorID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "vendor not found"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{Vendor: NewVendorResponse(v)})
}
