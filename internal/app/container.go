package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/verdantstay/hospitality-backend/internal/api"
	"github.com/verdantstay/hospitality-backend/internal/auth"
	"github.com/verdantstay/hospitality-backend/internal/availability"
	"github.com/verdantstay/hospitality-backend/internal/booking"
	"github.com/verdantstay/hospitality-backend/internal/inventory"
	"github.com/verdantstay/hospitality-backend/internal/property"
	"github.com/verdantstay/hospitality-backend/internal/rbac"
	"github.com/verdantstay/hospitality-backend/internal/resource"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Record-store repositories
	propertyRepo := property.NewPgxRepository(cfg.DBPool)
	resourceRepo := resource.NewPgxRepository(cfg.DBPool)
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	inventoryRepo := inventory.NewPgxRepository(cfg.DBPool)
	rbacRepo := rbac.NewPgxRepository(cfg.DBPool)

	// Decision services
	availabilityService := availability.NewService(propertyRepo, resourceRepo, bookingRepo, inventoryRepo)
	rbacService := rbac.NewService(rbacRepo)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		AvailabilityService: availabilityService,
		RBACService:         rbacService,
		JWTManager:          jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
