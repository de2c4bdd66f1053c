package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tt-go/internal/tt"
)

func statusFor(k tt.Kind) int {
	switch k {
	case tt.KindUnauthenticated:
		return http.StatusUnauthorized
	case tt.KindForbidden:
		return http.StatusForbidden
	case tt.KindInvalid:
		return http.StatusBadRequest
	case tt.KindNotFound:
		return http.StatusNotFound
	case tt.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError aborts the request with the response for err. Unclassified
// errors are logged and reported without their message.
func writeError(c *gin.Context, logger tt.Logger, err error) {
	var e *tt.Error
	if errors.As(err, &e) {
		body := gin.H{"error": e.Message}
		if e.Code != "" {
			body["code"] = e.Code
		}
		status := statusFor(e.Kind)
		if status >= 500 && logger != nil {
			logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
		}
		c.AbortWithStatusJSON(status, body)
		return
	}

	if logger != nil {
		logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": "internal server error",
		"type":  fmt.Sprintf("%T", rootCause(err)),
	})
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	writeError(c, h.logger, err)
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}
