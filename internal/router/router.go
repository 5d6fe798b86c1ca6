package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-recipes/backend/config"
	"github.com/pageza/alchemorsel-recipes/backend/internal/api"
	"github.com/pageza/alchemorsel-recipes/backend/internal/logger"
	"github.com/pageza/alchemorsel-recipes/backend/internal/middleware"
	"github.com/pageza/alchemorsel-recipes/backend/internal/rpc"
)

// SetupRouter configures the gateway routes. rdb may be nil, in which case
// requests are not rate limited.
func SetupRouter(cfg *config.Config, dispatcher *rpc.Dispatcher, db *gorm.DB, rdb *redis.Client, log *logger.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.ErrorHandler(log),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	var v1Middleware []gin.HandlerFunc
	if rdb != nil {
		v1Middleware = append(v1Middleware, middleware.NewGatewayRateLimiter(rdb, cfg.RateLimitPerMinute, log).Middleware())
	}

	api.SetupAPI(router, api.NewHealthHandler(db, rdb), api.NewRPCHandler(dispatcher), v1Middleware...)
	return router
}
