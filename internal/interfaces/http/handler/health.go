package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether the database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus is the payload of the health endpoint
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Time     string `json:"time"`
}

// HealthHandler serves GET /health
type HealthHandler struct {
	BaseHandler
	db      Pinger
	timeout time.Duration
}

// NewHealthHandler creates a health handler that pings db within two seconds
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, timeout: 2 * time.Second}
}

// Check handles GET /health
//
// @ID           healthCheck
// @Summary      Health check
// @Description  Report service and database health
// @Tags         health
// @Produce      json
// @Success      200 {object} dto.Envelope{data=HealthStatus}
// @Failure      503 {object} dto.Envelope
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)
	if err := h.db.Ping(ctx); err != nil {
		logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
		resp := dto.NewErrorResponse("Database unreachable", http.StatusServiceUnavailable, dto.ErrCodeUnavailable)
		resp.Data = HealthStatus{Status: "unhealthy", Database: "error", Time: now}
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	h.Success(c, http.StatusOK, "Healthy", HealthStatus{Status: "healthy", Database: "ok", Time: now})
}
