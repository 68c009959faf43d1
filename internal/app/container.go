package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/nekogravitycat/fleet-availability-backend/internal/api"
	"github.com/nekogravitycat/fleet-availability-backend/internal/auth"
	"github.com/nekogravitycat/fleet-availability-backend/internal/availability"
	"github.com/nekogravitycat/fleet-availability-backend/internal/calendar"
	"github.com/nekogravitycat/fleet-availability-backend/internal/fleet"
	"github.com/nekogravitycat/fleet-availability-backend/internal/metrics"
	"github.com/nekogravitycat/fleet-availability-backend/internal/schedule"
	"github.com/nekogravitycat/fleet-availability-backend/internal/unavailability"
	"github.com/nekogravitycat/fleet-availability-backend/internal/vendor"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	collector := metrics.NewCollector(registry)

	// Vendor module
	vendorRepo := vendor.NewPgxRepository(cfg.DBPool)
	vendorService := vendor.NewService(vendorRepo, passwordHasher)

	// Fleet module (resource registry)
	fleetRepo := fleet.NewPgxRepository(cfg.DBPool)
	fleetService := fleet.NewService(fleetRepo)

	// Conflict sources and engine
	scheduleRepo := schedule.NewPgxRepository(cfg.DBPool)
	unavailRepo := unavailability.NewPgxRepository(cfg.DBPool)
	engine := availability.NewEngine(
		schedule.NewBlockingSource(scheduleRepo),
		unavailability.NewBlockingSource(unavailRepo),
		collector,
	)
	availService := availability.NewService(engine, fleetService)

	// Write paths around the engine
	scheduleService := schedule.NewService(scheduleRepo, fleetService, engine, collector)
	unavailService := unavailability.NewService(unavailRepo, fleetService, engine, collector)

	// Calendar projection (display only)
	calendarService := calendar.NewService(scheduleService, unavailService)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		VendorService:       vendorService,
		FleetService:        fleetService,
		ScheduleService:     scheduleService,
		AvailabilityService: availService,
		UnavailService:      unavailService,
		CalendarService:     calendarService,
		JWTManager:          jwtManager,
		Metrics:             collector,
		Registry:            registry,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
