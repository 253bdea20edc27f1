package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/marketplace/backend/internal/infrastructure/persistence"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
)

// SystemHandler serves health and version endpoints
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	redis     *redis.Client
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, redisClient *redis.Client) *SystemHandler {
	return &SystemHandler{db: db, redis: redisClient, startTime: time.Now()}
}

// RegisterRoutes registers the system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/system/info", h.Info)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type systemInfoResponse struct {
	Name      string `json:"name"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Health reports dependency status. Any failed dependency makes the
// whole endpoint report 503 so load balancers rotate the instance out.
func (h *SystemHandler) Health(c *gin.Context) {
	checks := map[string]string{"database": "ok", "redis": "ok"}
	healthy := true

	if err := h.db.Ping(); err != nil {
		checks["database"] = err.Error()
		healthy = false
	}
	if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	}

	status := http.StatusOK
	resp := healthResponse{Status: "ok", Checks: checks}
	if !healthy {
		status = http.StatusServiceUnavailable
		resp.Status = "degraded"
	}
	c.JSON(status, dto.NewSuccessResponse(resp))
}

// Info returns basic process information
func (h *SystemHandler) Info(c *gin.Context) {
	h.Success(c, systemInfoResponse{
		Name:      "Marketplace Backend",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}
