package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stockflow/backend/internal/interfaces/http/dto"
)

// HealthHandler handles health and system endpoints
type HealthHandler struct {
	BaseHandler
	startTime time.Time
	dbPing    func() error
}

// NewHealthHandler creates a new HealthHandler. dbPing may be nil when
// no database check is wanted.
func NewHealthHandler(dbPing func() error) *HealthHandler {
	return &HealthHandler{
		startTime: time.Now(),
		dbPing:    dbPing,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

// Health reports service liveness and database reachability
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Database:  "ok",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if h.dbPing != nil {
		if err := h.dbPing(); err != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse("UNHEALTHY", "Database is unreachable"))
			return
		}
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
