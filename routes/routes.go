package routes

import (
	"net/http"

	"clinical-trials-api/controllers"
	"clinical-trials-api/store"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the API under /api.
func SetupRoutes(router *gin.Engine, st store.Store, applicationController *controllers.ApplicationController) {
	api := router.Group("/api")
	{
		// Health check
		api.GET("/health", controllers.HealthCheck(st))

		applications := api.Group("/applications")
		{
			applications.POST("", applicationController.CreateApplication)
			applications.GET("", applicationController.GetApplications)
			applications.GET("/:appId", applicationController.GetApplication)
			applications.PUT("/:appId", applicationController.UpdateApplication)
			applications.DELETE("/:appId", applicationController.DeleteApplication)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
}
