package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"couple-schedule-manager/internal/assistant"
	"couple-schedule-manager/pkg/response"
)

var errInvalidTasksParam = errors.New("tasks must be a JSON array")

var errUpstreamUnavailable = errors.New("AI service unavailable")

// mapError translates use-case errors into HTTP responses.
func (h *handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, assistant.ErrEmptyMessage):
		response.Error(c, err, nil)
	case errors.Is(err, assistant.ErrUpstreamUnavailable):
		response.ErrorWithStatus(c, http.StatusServiceUnavailable, errUpstreamUnavailable)
	default:
		response.InternalError(c, err)
	}
}
