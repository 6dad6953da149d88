package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"golf-atlas/notify"
	"golf-atlas/services"
)

// RegisterHealth mounts /health and /ready. Ready means the default catalog
// has published a snapshot.
func RegisterHealth(r gin.IRoutes, registry *services.Registry, hub *notify.Hub) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "source": registry.Default().Source()})
	})

	r.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		snap, err := registry.Default().Snapshot()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "not_ready",
				"error":      services.UserMessage(err),
				"ws_clients": stats.WSClients,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"snapshot_id": snap.ID,
			"courses":     snap.Stats.Valid,
			"overrides":   registry.OverrideCount(),
			"ws_clients":  stats.WSClients,
		})
	})
}
