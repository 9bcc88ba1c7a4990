package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/services"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/utils"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/database"
)

type HealthHandler struct {
	db            *database.MongoDB
	cacheService  services.CacheService
	tariffService services.TariffService
}

func NewHealthHandler(db *database.MongoDB, cacheService services.CacheService, tariffService services.TariffService) *HealthHandler {
	return &HealthHandler{
		db:            db,
		cacheService:  cacheService,
		tariffService: tariffService,
	}
}

// Health reports dependency status. An unreachable backing store flips the
// overall status and the HTTP code to 503.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	healthy := true

	if err := h.db.PingContext(ctx); err != nil {
		checks["mongodb"] = "unreachable"
		healthy = false
	} else {
		checks["mongodb"] = "ok"
	}

	if err := h.cacheService.Ping(ctx); err != nil {
		checks["redis"] = "unreachable"
		healthy = false
	} else {
		checks["redis"] = "ok"
	}

	snapshot := h.tariffService.SnapshotInfo()
	checks["tariff_snapshot"] = gin.H{
		"global_rows":   snapshot.GlobalRows,
		"override_rows": snapshot.OverrideRows,
		"loaded_at":     snapshot.LoadedAt,
	}

	status := http.StatusOK
	body := gin.H{
		"status":  "healthy",
		"version": utils.AppVersion,
		"checks":  checks,
	}
	if !healthy {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
	}

	c.JSON(status, body)
}

// Ready reports whether the engine can serve rate requests, which requires a
// loaded tariff snapshot.
func (h *HealthHandler) Ready(c *gin.Context) {
	snapshot := h.tariffService.SnapshotInfo()
	if snapshot.LoadedAt.IsZero() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "tariff snapshot not loaded",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
