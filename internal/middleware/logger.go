package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ContextKeyRequestID = "request_id"

// RequestID injects an X-Request-ID header into the request and response so
// portal requests can be matched against front-end reports.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger writes one line per request once the handler chain has finished.
// Role and enterprise are only present on authenticated routes, where the
// auth middleware has filled the context by the time the line is written.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		requestID := c.GetString(ContextKeyRequestID)
		role := c.GetString(ContextKeyRole)
		if role == "" {
			role = "anonyme"
		}
		enterprise := "-"
		if id, err := GetEnterpriseID(c); err == nil {
			enterprise = id.String()
		}

		log.Printf("[%s] %s %s %d %s role=%s entreprise=%s",
			requestID,
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			role,
			enterprise,
		)
		for _, e := range c.Errors {
			log.Printf("[%s] handler error: %v", requestID, e.Err)
		}
	}
}

// Recovery recovers from panics and returns a 500 error.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
