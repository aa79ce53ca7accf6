package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shangour/URmine149/models"
)

type EmployeeController struct {
	DB *gorm.DB
}

func (ec *EmployeeController) GetEmployees(c *gin.Context) {
	var employees []models.Employee

	if err := ec.DB.Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load employees"})
		return
	}

	c.JSON(http.StatusOK, employees)
}
