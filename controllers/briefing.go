package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shangour/URmine149/briefing"
)

type BriefingController struct {
	DB      *gorm.DB
	Service *briefing.Service
}

// Generate accepts the snapshot posted by the dashboard; when the body
// carries no tasks, the snapshot is read from storage instead.
func (bc *BriefingController) Generate(c *gin.Context) {
	var snap briefing.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(snap.Tasks) == 0 {
		if err := bc.DB.Order("start_time DESC").Find(&snap.Tasks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tasks"})
			return
		}
		if err := bc.DB.Find(&snap.Employees).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load employees"})
			return
		}
		if err := bc.DB.Order("reported_at DESC").Find(&snap.Blockers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load blockers"})
			return
		}
	}

	result, err := bc.Service.Generate(c.Request.Context(), snap)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
