package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]bool
// @Router       /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DBHealth godoc
// @Summary      Database connectivity probe
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]bool
// @Failure      500 {object} ErrorResponse
// @Router       /api/db-health [get]
func (h *HealthHandler) DBHealth(c *gin.Context) {
	var ok int
	if err := h.db.Raw("SELECT 1").Scan(&ok).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errResp(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": ok == 1})
}
