package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS headers sent with every response
const (
	AllowOrigin  = "*"
	AllowHeaders = "content-type,x-idempotency-key"
	AllowMethods = "GET,POST,OPTIONS"
)

// CORS sets the cross-origin headers and answers preflight requests directly
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", AllowOrigin)
		h.Set("Access-Control-Allow-Headers", AllowHeaders)
		h.Set("Access-Control-Allow-Methods", AllowMethods)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
