package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shangour/URmine149/constants"
	"github.com/shangour/URmine149/models"
	"github.com/shangour/URmine149/utils"
)

type AuthController struct {
	DB        *gorm.DB
	JWTSecret []byte
}

type registerInput struct {
	Username   string  `json:"username" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Password   string  `json:"password" binding:"required,min=8"`
	Role       string  `json:"role" binding:"required,oneof=manager employee"`
	EmployeeID *string `json:"employeeId"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Role == constants.RoleEmployee && input.EmployeeID != nil {
		var emp models.Employee
		if err := ac.DB.Where("id = ?", *input.EmployeeID).First(&emp).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown employee id"})
			return
		}
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Username:   input.Username,
		Name:       input.Name,
		Password:   hashed,
		Role:       input.Role,
		EmployeeID: input.EmployeeID,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User registered",
	})
}

type loginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ac.DB.
		Where("username = ?", input.Username).
		First(&user).Error; err != nil {

		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !utils.CheckPassword(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(user, ac.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"username":   user.Username,
			"name":       user.Name,
			"role":       user.Role,
			"employeeId": user.EmployeeID,
		},
	})
}
