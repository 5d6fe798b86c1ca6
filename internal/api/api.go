package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupAPI registers the health, metrics and RPC routes. v1Middleware only
// applies to the /api/v1 group.
func SetupAPI(router *gin.Engine, health *HealthHandler, rpcHandler *RPCHandler, v1Middleware ...gin.HandlerFunc) {
	router.GET("/health", health.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(v1Middleware...)
	{
		rpcHandler.RegisterRoutes(v1)
	}
}
