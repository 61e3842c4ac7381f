package utils

import (
	"log"
	"time"

	"LoveForTennis/utils/apperror"

	"github.com/gin-gonic/gin"
)

// Logger logs method, path, status and latency of each request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		log.Printf("[HTTP] %s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(startTime))
	}
}

// ErrorHandler renders the last error attached with c.Error as
// {"error", "code"}. Causes of internal errors are only logged.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		appErr := apperror.From(c.Errors.Last().Err)
		if appErr.Cause != nil {
			log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Cause)
		}
		if c.Writer.Written() {
			return
		}
		c.JSON(appErr.Status, gin.H{"error": appErr.Message, "code": appErr.Code})
	}
}
