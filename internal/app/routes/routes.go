// Package routes wires controllers onto the Gin engine.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/gradesphere/internal/app/controllers"
	"github.com/yigit/gradesphere/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	recordController *controllers.RecordController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
	}

	// The grade scale is fixed and public; clients use it to render forms.
	v1.GET("/grade-scale", recordController.GradeScale)

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.Me)

		records := authenticated.Group("/records")
		{
			records.GET("/me", recordController.GetMyRecord)
			records.POST("/me/semesters", recordController.AddSemester)
			records.PUT("/me/semesters/:semesterId", recordController.UpdateSemester)
			records.DELETE("/me/semesters/:semesterId", recordController.DeleteSemester)
		}
	}
}
