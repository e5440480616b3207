package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/notebook/internal/common"
	"github.com/dmitrijs2005/notebook/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDContextKey = "request_id"
	requestIDHeaderName = "X-Request-ID"
	userIDContextKey    = "user_id"

	msgUnauthenticated = "Please authenticate using valid token"
)

// RequestIDFromContext returns the request id or an empty string.
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}

func userIDFromContext(c *gin.Context) string {
	if id, ok := auth.UserIDFromContext(c.Request.Context()); ok {
		return id
	}
	return c.GetString(userIDContextKey)
}

// cors allows browser clients from any origin. Preflight requests are
// answered with 204 before routing.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Add("Vary", "Access-Control-Request-Headers")

		if c.Request.Method != http.MethodOptions {
			h.Set("Access-Control-Expose-Headers", requestIDHeaderName)
			c.Next()
			return
		}

		h.Set("Access-Control-Allow-Methods", "GET, HEAD, PUT, PATCH, POST, DELETE")
		if reqHeaders := c.GetHeader("Access-Control-Request-Headers"); reqHeaders != "" {
			h.Set("Access-Control-Allow-Headers", reqHeaders)
		} else {
			h.Set("Access-Control-Allow-Headers", "Content-Type, "+common.AuthTokenHeaderName+", "+requestIDHeaderName)
		}
		c.AbortWithStatus(http.StatusNoContent)
	}
}

// requestID reuses a client supplied X-Request-ID (trimmed, at most 128
// bytes) or generates one, and echoes it back.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeaderName))
		if len(id) > 128 {
			id = id[:128]
		}
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(requestIDContextKey, id)
		c.Writer.Header().Set(requestIDHeaderName, id)
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startedAt := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		s.logger.Info(c.Request.Context(), "request",
			"request_id", RequestIDFromContext(c),
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", float64(time.Since(startedAt).Microseconds())/1000.0,
			"client_ip", c.ClientIP(),
		)
	}
}

func (s *Server) onPanic(c *gin.Context, p any) {
	s.logger.Error(c.Request.Context(), "panic in handler", "request_id", RequestIDFromContext(c), "panic", p)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
}

// authGate admits requests carrying a valid auth-token header and stores
// the token's user id in the gin and request contexts.
func (s *Server) authGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := s.tokens.ParseToken(c.GetHeader(common.AuthTokenHeaderName))
		if err != nil {
			s.logger.Warn(c.Request.Context(), "rejected token",
				"request_id", RequestIDFromContext(c),
				"reason", err.Error(),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": msgUnauthenticated})
			return
		}

		c.Set(userIDContextKey, claims.UserID)
		c.Request = c.Request.WithContext(auth.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}
