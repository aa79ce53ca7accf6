package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shangour/URmine149/models"
)

type ActivityController struct {
	DB *gorm.DB
}

func (ac *ActivityController) GetActivities(c *gin.Context) {
	var activities []models.Activity

	if err := ac.DB.Order("timestamp DESC").Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activities"})
		return
	}

	c.JSON(http.StatusOK, activities)
}
