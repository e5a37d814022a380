package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/gridiron-sim/internal/api/handlers"
	"github.com/stitts-dev/gridiron-sim/internal/api/middleware"
	"github.com/stitts-dev/gridiron-sim/internal/services"
	"github.com/stitts-dev/gridiron-sim/internal/stats"
	"github.com/stitts-dev/gridiron-sim/pkg/config"
	"github.com/stitts-dev/gridiron-sim/pkg/database"
)

// limiterIdleTTL is how long a client's bucket survives without requests.
const limiterIdleTTL = 10 * time.Minute

// Dependencies groups what the HTTP layer needs. Cache and Stream are nil
// when Redis is not configured.
type Dependencies struct {
	Config  *config.Config
	DB      *database.DB
	Cache   *services.CacheService
	Stream  *stats.StreamRecorder
	Matches *services.MatchService
}

// NewRouter builds the engine with health endpoints at the root and the
// match API under /api/v1.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	health := handlers.NewHealthHandler(deps.DB, deps.Cache, deps.Stream)
	router.GET("/health", health.GetHealth)
	router.GET("/ready", health.GetReady)

	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.RateLimit(middleware.NewClientRateLimiter(
		deps.Config.RateLimitRPS,
		deps.Config.RateLimitBurst,
		limiterIdleTTL,
	)))
	SetupRoutes(apiV1, deps.Matches)

	return router
}

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, matches *services.MatchService) {
	matchHandler := handlers.NewMatchHandler(matches)
	simulationHandler := handlers.NewSimulationHandler(matches)

	// Match endpoints
	group.POST("/matches", matchHandler.CreateMatch)
	group.GET("/matches/:id", matchHandler.GetMatch)
	group.GET("/matches/:id/plays", matchHandler.GetPlays)

	// Simulation endpoints
	group.POST("/simulations", simulationHandler.RunSimulation)
}
