package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edukit/campus/internal/pkg/httputils"
	"github.com/edukit/campus/pkg/component/storage"
)

// HealthHandler reports liveness and the health of registered storage clients.
type HealthHandler struct {
	manager *storage.Manager
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(manager *storage.Manager, version string) *HealthHandler {
	return &HealthHandler{manager: manager, version: version}
}

// Live always returns 200 while the process is serving.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready checks every registered storage backend and returns 503 when any
// of them is unreachable.
func (h *HealthHandler) Ready(c *gin.Context) {
	statuses := h.manager.HealthCheckAll(c.Request.Context())

	healthy := true
	for _, s := range statuses {
		if !s.Healthy {
			healthy = false
			break
		}
	}

	body := gin.H{"version": h.version, "backends": statuses}
	if !healthy {
		body["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	body["status"] = "ok"
	c.JSON(http.StatusOK, body)
}

// Version returns the build version.
func (h *HealthHandler) Version(c *gin.Context) {
	httputils.WriteData(c, gin.H{"version": h.version})
}
