package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/numen-cli/internal/core/domain"
	"github.com/custodia-labs/numen-cli/internal/logger"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeError maps a service error to a status code and body.
// Upstream causes are logged and never sent to the client.
func writeError(c *gin.Context, err error) {
	var fe *domain.FieldError
	switch {
	case errors.As(err, &fe):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fe.Message, Field: fe.Field})
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedType):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "too many requests, please try again later"})
	case errors.Is(err, domain.ErrLLMUnavailable), errors.Is(err, domain.ErrShareUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: rootMessage(err)})
	case errors.Is(err, domain.ErrChatUnavailable):
		logger.Warn("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: domain.ErrChatUnavailable.Error()})
	case errors.Is(err, domain.ErrEmailFailed):
		logger.Warn("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: domain.ErrEmailFailed.Error()})
	default:
		logger.Warn("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// unavailable writes 503 for a service that is not configured.
func unavailable(c *gin.Context, what string) {
	c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: what + " is not configured"})
}

func rootMessage(err error) string {
	for _, sentinel := range []error{domain.ErrLLMUnavailable, domain.ErrShareUnavailable} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
