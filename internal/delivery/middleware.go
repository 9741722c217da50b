package delivery

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const userIDKey = "userID"

// TokenResolver is the identity collaborator: it maps a bearer credential
// to the user id that owns it.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (int64, error)
}

func AuthMiddleware(resolver TokenResolver, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Middleware: Authorization header is missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorBody{Message: "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			log.Warnf("Middleware: Invalid Authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorBody{Message: "Invalid Authorization header format"})
			return
		}

		userID, err := resolver.ResolveToken(c.Request.Context(), parts[1])
		if err != nil {
			log.Warnf("Middleware: Token resolution failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorBody{Message: "Invalid or expired token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()

		latency := time.Since(startTime)
		statusCode := c.Writer.Status()

		entry := logger.WithFields(logrus.Fields{
			"status_code": statusCode,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"remote_ip":   c.ClientIP(),
			"latency_ms":  latency.Milliseconds(),
		})

		switch {
		case statusCode >= 500:
			entry.Error("Request completed with server error")
		case statusCode >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// currentUserID returns the authenticated user id placed in the context by
// AuthMiddleware.
func currentUserID(c *gin.Context) (int64, bool) {
	val, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := val.(int64)
	return id, ok && id > 0
}
