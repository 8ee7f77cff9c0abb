package router

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger logs method, path, user, status and latency.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = "-"
		}
		log.Printf("%s %s user=%s -> %d (%s)", c.Request.Method, c.Request.URL.Path, userID, c.Writer.Status(), duration)
	}
}
