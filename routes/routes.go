package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shangour/URmine149/briefing"
	"github.com/shangour/URmine149/config"
	"github.com/shangour/URmine149/constants"
	"github.com/shangour/URmine149/controllers"
	"github.com/shangour/URmine149/lifecycle"
	"github.com/shangour/URmine149/middleware"
)

func SetupRouter(db *gorm.DB, engine *lifecycle.Engine, briefer *briefing.Service, jwtSecret []byte) *gin.Engine {
	r := gin.Default()

	authController := controllers.AuthController{DB: db, JWTSecret: jwtSecret}
	taskController := controllers.TaskController{DB: db, Engine: engine}
	employeeController := controllers.EmployeeController{DB: db}
	blockerController := controllers.BlockerController{DB: db, Engine: engine}
	activityController := controllers.ActivityController{DB: db}
	seedController := controllers.SeedController{Engine: engine}
	briefingController := controllers.BriefingController{DB: db, Service: briefer}

	r.POST("/register", authController.Register)
	r.POST("/login", authController.Login)

	r.GET("/healthz", func(c *gin.Context) {
		if err := config.PingDB(db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := r.Group("/", middleware.AuthMiddleware(jwtSecret))

	authed.GET("/tasks", taskController.GetTasks)
	authed.GET("/tasks/:id", taskController.GetTask)
	authed.GET("/employees", employeeController.GetEmployees)
	authed.GET("/blockers", blockerController.GetBlockers)
	authed.GET("/activities", activityController.GetActivities)

	authed.POST("/tasks/:id/status-update", taskController.StatusUpdate)
	authed.POST("/tasks/:id/blocker-report", taskController.BlockerReport)
	authed.POST("/tasks/:id/submit", taskController.Submit)

	managerOnly := authed.Group("/", middleware.RoleMiddleware(constants.RoleManager))
	managerOnly.POST("/tasks", taskController.CreateTask)
	managerOnly.POST("/tasks/:id/approve", taskController.Approve)
	managerOnly.POST("/tasks/:id/reject", taskController.Reject)
	managerOnly.POST("/blockers/:id/resolve", blockerController.Resolve)
	managerOnly.POST("/seed", seedController.Reset)
	managerOnly.POST("/generate-briefing", briefingController.Generate)

	return r
}
