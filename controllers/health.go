package controllers

import (
	"context"
	"net/http"
	"time"

	"clinical-trials-api/store"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether the store answers a ping.
func HealthCheck(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "error",
				"message": "Database is unreachable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Clinical Trials API is running",
		})
	}
}
