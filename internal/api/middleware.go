package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tt-go/internal/tt"
)

const claimsKey = "claims"

// RequestLogger logs one line per request after it completes.
func RequestLogger(logger tt.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).Round(time.Microsecond),
			"ip", c.ClientIP(),
		}
		if claims, ok := c.Get(claimsKey); ok {
			cl := claims.(*tt.Claims)
			args = append(args, "role", cl.Role, "user_id", cl.ID)
		}
		switch {
		case c.Writer.Status() >= 500:
			logger.Error("request", args...)
		case c.Writer.Status() >= 400:
			logger.Warn("request", args...)
		default:
			logger.Info("request", args...)
		}
	}
}

// Recovery turns a panic into a 500 response.
func Recovery(logger tt.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error("panic serving request", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "internal server error",
			"type":  fmt.Sprintf("%T", recovered),
		})
	})
}

// Authenticate requires a valid Bearer access token and stores its claims
// in the context.
func Authenticate(svc *tt.TTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeError(c, nil, tt.Unauthenticated("Authorization header missing or malformed"))
			return
		}
		claims, err := svc.Authenticate(strings.TrimSpace(token))
		if err != nil {
			writeError(c, nil, err)
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRoles admits callers whose role is one of roles.
func RequireRoles(roles ...tt.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := tt.Authorize(claimsFrom(c), roles...); err != nil {
			writeError(c, nil, err)
			return
		}
		c.Next()
	}
}

// RequireDevice rejects employee tokens minted for a device other than the
// one the employee last logged in from.
func RequireDevice(svc *tt.TTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.CheckDevice(c.Request.Context(), claimsFrom(c)); err != nil {
			writeError(c, nil, err)
			return
		}
		c.Next()
	}
}

func claimsFrom(c *gin.Context) *tt.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*tt.Claims)
	return claims
}
