package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-recipes/backend/internal/apperr"
	"github.com/pageza/alchemorsel-recipes/backend/internal/rpc"
)

// maxBodyBytes caps gateway payloads.
const maxBodyBytes = 1 << 20

// HealthHandler reports whether the database and Redis are reachable.
// Either dependency may be nil.
type HealthHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

// HealthCheck returns the health status of the service
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	healthy := true

	if h.db != nil {
		checks["database"] = "ok"
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			checks["database"] = err.Error()
			healthy = false
		}
	}
	if h.rdb != nil {
		checks["redis"] = "ok"
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "checks": checks})
}

// RPCHandler exposes the command dispatcher over HTTP.
type RPCHandler struct {
	dispatcher *rpc.Dispatcher
}

// NewRPCHandler creates a new RPCHandler instance
func NewRPCHandler(dispatcher *rpc.Dispatcher) *RPCHandler {
	return &RPCHandler{dispatcher: dispatcher}
}

// Call runs the command named by the :cmd path parameter with the request
// body as its payload.
func (h *RPCHandler) Call(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		_ = c.Error(apperr.InvalidInput("failed to read request body: %v", err))
		return
	}

	result, err := h.dispatcher.Dispatch(c.Request.Context(), c.Param("cmd"), body)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Commands lists the commands the gateway accepts.
func (h *RPCHandler) Commands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"commands": h.dispatcher.Commands()})
}

// RegisterRoutes registers the RPC routes on rg
func (h *RPCHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rpc", h.Commands)
	rg.POST("/rpc/:cmd", h.Call)
}
