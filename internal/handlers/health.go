package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prehab-dev/prehab/db"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const healthTimeout = 5 * time.Second

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(gdb *gorm.DB) *HealthHandler {
	return &HealthHandler{db: gdb}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if err := db.Ping(c.Request.Context(), h.db, healthTimeout); err != nil {
		zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("database health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unavailable",
			"error":     "database unreachable",
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Prehab is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
