package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nekogravitycat/fleet-availability-backend/internal/auth"
	"github.com/nekogravitycat/fleet-availability-backend/internal/availability"
	availHttp "github.com/nekogravitycat/fleet-availability-backend/internal/availability/http"
	"github.com/nekogravitycat/fleet-availability-backend/internal/calendar"
	calHttp "github.com/nekogravitycat/fleet-availability-backend/internal/calendar/http"
	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
	fleetHttp "github.com/nekogravitycat/fleet-availability-backend/internal/fleet/http"
	"github.com/nekogravitycat/fleet-availability-backend/internal/metrics"
	"github.com/nekogravitycat/fleet-availability-backend/internal/schedule"
	schedHttp "github.com/nekogravitycat/fleet-availability-backend/internal/schedule/http"
	"github.com/nekogravitycat/fleet-availability-backend/internal/unavailability"
	unavailHttp "github.com/nekogravitycat/fleet-availability-backend/internal/unavailability/http"
	"github.com/nekogravitycat/fleet-availability-backend/internal/vendor"
)

// Config collects everything the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	VendorService       vendor.Service
	FleetService        fleet.Service
	ScheduleService     schedule.Service
	AvailabilityService availability.Service
	UnavailService      unavailability.Service
	CalendarService     calendar.Service

	JWTManager *auth.JWTManager
	Metrics    *metrics.Collector
	Registry   *prometheus.Registry
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth, Metrics)
// and registering routes for the various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global middleware:
	// - Logger: logs request information to the console.
	// - Recovery: captures panics and returns a 500 instead of crashing.
	r.Use(gin.Logger(), gin.Recovery())

	if cfg.Metrics != nil {
		r.Use(RequestMetrics(cfg.Metrics))
	}

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:8081", // Local portal dev server
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware validates the vendor JWT on every protected route.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	// Initialize HTTP handlers for each module (injecting service dependencies).
	authHandler := NewAuthHandler(cfg.VendorService, cfg.JWTManager)
	fleetHandler := fleetHttp.NewHandler(cfg.FleetService)
	schedHandler := schedHttp.NewHandler(cfg.ScheduleService)
	availHandler := availHttp.NewHandler(cfg.AvailabilityService)
	unavailHandler := unavailHttp.NewHandler(cfg.UnavailService)
	calHandler := calHttp.NewHandler(cfg.CalendarService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", authMiddleware, authHandler.Me)
		}

		fleetHttp.RegisterRoutes(v1, fleetHandler, authMiddleware)
		schedHttp.RegisterRoutes(v1, schedHandler, authMiddleware)
		availHttp.RegisterRoutes(v1, availHandler, authMiddleware)
		unavailHttp.RegisterRoutes(v1, unavailHandler, authMiddleware)
		calHttp.RegisterRoutes(v1, calHandler, authMiddleware)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	}

	return r
}
