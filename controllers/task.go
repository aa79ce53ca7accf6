package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shangour/URmine149/lifecycle"
	"github.com/shangour/URmine149/models"
	"github.com/shangour/URmine149/utils"
)

type TaskController struct {
	DB     *gorm.DB
	Engine *lifecycle.Engine
}

func (tc *TaskController) GetTasks(c *gin.Context) {
	var tasks []models.Task

	if err := tc.DB.Order("start_time DESC").Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tasks"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (tc *TaskController) GetTask(c *gin.Context) {
	id := c.Param("id")

	var task models.Task
	if err := tc.DB.Where("id = ?", id).First(&task).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, task)
}

type createTaskInput struct {
	OwnerID     string             `json:"ownerId" binding:"required"`
	Code        string             `json:"code" binding:"required"`
	Description string             `json:"description" binding:"required"`
	Manager     string             `json:"manager"`
	Mentor      string             `json:"mentor"`
	Attachment  *models.Attachment `json:"attachment"`
	DueDate     *int64             `json:"dueDate"`
}

func (tc *TaskController) CreateTask(c *gin.Context) {
	var input createTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := tc.Engine.CreateTask(c.Request.Context(), lifecycle.TaskCreationInput{
		OwnerID:     input.OwnerID,
		Code:        input.Code,
		Description: input.Description,
		Manager:     input.Manager,
		Mentor:      input.Mentor,
		Attachment:  input.Attachment,
		DueDate:     input.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

type statusUpdateInput struct {
	ProgressPercentage *int   `json:"progressPercentage" binding:"required,min=0,max=100"`
	ActivityText       string `json:"activityText" binding:"required"`
	ScreenshotData     string `json:"screenshotData" binding:"required"`
}

func (tc *TaskController) StatusUpdate(c *gin.Context) {
	var input statusUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !tc.callerMayAct(c) {
		return
	}

	err := tc.Engine.RecordStatusUpdate(c.Request.Context(), c.Param("id"), lifecycle.StatusUpdateInput{
		ProgressPercentage: *input.ProgressPercentage,
		ActivityText:       input.ActivityText,
		ScreenshotData:     input.ScreenshotData,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Update successful"})
}

type blockerReportInput struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description" binding:"required"`
	Severity       string `json:"severity" binding:"required,oneof=Low Medium High Critical"`
	ScreenshotData string `json:"screenshotData" binding:"required"`
}

func (tc *TaskController) BlockerReport(c *gin.Context) {
	var input blockerReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !tc.callerMayAct(c) {
		return
	}

	err := tc.Engine.RecordBlockerReport(c.Request.Context(), c.Param("id"), lifecycle.BlockerReportInput{
		Title:          input.Title,
		Description:    input.Description,
		Severity:       input.Severity,
		ScreenshotData: input.ScreenshotData,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blocker reported successfully"})
}

func (tc *TaskController) Submit(c *gin.Context) {
	if !tc.callerMayAct(c) {
		return
	}

	if err := tc.Engine.SubmitTask(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task submitted successfully"})
}

func (tc *TaskController) Approve(c *gin.Context) {
	if err := tc.Engine.ApproveTask(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task approved"})
}

func (tc *TaskController) Reject(c *gin.Context) {
	if err := tc.Engine.RejectTask(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task returned for revision"})
}

// callerMayAct enforces that employees only touch their own task.
// Managers pass unconditionally. A missing task falls through so the
// engine can answer 404 consistently.
func (tc *TaskController) callerMayAct(c *gin.Context) bool {
	var task models.Task
	if err := tc.DB.Where("id = ?", c.Param("id")).First(&task).Error; err != nil {
		return true
	}

	role, _ := c.Get("role")
	roleStr, _ := role.(string)
	employeeID := c.GetString("employee_id")

	if !utils.CanActOnTask(task, roleStr, employeeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to act on this task"})
		return false
	}
	return true
}
