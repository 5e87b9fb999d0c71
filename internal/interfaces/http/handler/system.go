package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SystemHandler serves health endpoints
type SystemHandler struct {
	BaseHandler
	db *gorm.DB
}

// NewSystemHandler creates a SystemHandler
func NewSystemHandler(db *gorm.DB) *SystemHandler {
	return &SystemHandler{db: db}
}

// RegisterRoutes registers system routes on the engine root
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/healthz", h.Healthz)
	rg.GET("/readyz", h.Readyz)
}

// Healthz reports process liveness
func (h *SystemHandler) Healthz(c *gin.Context) {
	h.Success(c, gin.H{"status": "ok"})
}

// Readyz reports whether the database is reachable
func (h *SystemHandler) Readyz(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		h.InternalError(c, "database unavailable")
		return
	}
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		h.InternalError(c, "database unavailable")
		return
	}
	h.Success(c, gin.H{"status": "ready"})
}
