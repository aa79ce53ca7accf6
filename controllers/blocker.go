package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shangour/URmine149/lifecycle"
	"github.com/shangour/URmine149/models"
)

type BlockerController struct {
	DB     *gorm.DB
	Engine *lifecycle.Engine
}

func (bc *BlockerController) GetBlockers(c *gin.Context) {
	var blockers []models.Blocker

	if err := bc.DB.Order("reported_at DESC").Find(&blockers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load blockers"})
		return
	}

	c.JSON(http.StatusOK, blockers)
}

func (bc *BlockerController) Resolve(c *gin.Context) {
	if err := bc.Engine.ResolveBlocker(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blocker resolved"})
}
