package http

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
)

// processChatReq binds and validates the chat request body.
func (h *handler) processChatReq(c *gin.Context) (chatReq, error) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processSuggestionsReq binds the suggestions query parameters. The tasks
// param is a JSON-encoded array mirroring what the web client holds in state.
func (h *handler) processSuggestionsReq(c *gin.Context) (suggestionsReq, error) {
	var req suggestionsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	if req.TasksJSON != "" {
		if err := json.Unmarshal([]byte(req.TasksJSON), &req.tasks); err != nil {
			return req, errInvalidTasksParam
		}
	}
	return req, req.validate()
}
