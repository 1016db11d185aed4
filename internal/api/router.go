package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/verdantstay/hospitality-backend/internal/auth"
	"github.com/verdantstay/hospitality-backend/internal/availability"
	availabilityHttp "github.com/verdantstay/hospitality-backend/internal/availability/http"
	"github.com/verdantstay/hospitality-backend/internal/rbac"
	rbacHttp "github.com/verdantstay/hospitality-backend/internal/rbac/http"
)

// Config holds everything the router needs to assemble middleware and routes.
type Config struct {
	IsProduction        bool
	ProdOrigins         string
	AvailabilityService availability.Service
	RBACService         rbac.Service
	JWTManager          *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, access log, recovery,
// auth) and registering routes for the decision modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Recovery captures panics to prevent server crashes and returns a 500.
	r.Use(RequestID(), AccessLog(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService)
	rbacHandler := rbacHttp.NewHandler(cfg.RBACService)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware)
		rbacHttp.RegisterRoutes(v1, rbacHandler, authMiddleware)
	}

	return r
}
