package http

import (
	"github.com/gin-gonic/gin"

	"couple-schedule-manager/internal/middleware"
	"couple-schedule-manager/pkg/response"
)

// Chat godoc
// @Summary     Send a message to the assistant
// @Description Runs one conversational turn: the message is classified as chat
// @Description or a task request; task requests are persisted and confirmed.
// @Tags        Assistant
// @Accept      json
// @Produce     json
// @Param       body body chatReq true "User message with optional task context"
// @Success     200 {object} chatResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     503 {object} response.Resp "AI service unavailable"
// @Router      /api/v1/assistant/chat [POST]
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := middleware.GetScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	req, err := h.processChatReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.HandleChatTurn(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.HandleChatTurn: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newChatResp(output))
}

// Suggestions godoc
// @Summary     Get scheduling suggestions
// @Description Asks the assistant for scheduling advice over the caller's
// @Description upcoming tasks, passed as a JSON array in the tasks query param.
// @Tags        Assistant
// @Accept      json
// @Produce     json
// @Param       tasks query string false "JSON array of upcoming tasks"
// @Success     200 {object} suggestionsResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     503 {object} response.Resp "AI service unavailable"
// @Router      /api/v1/assistant/suggestions [GET]
func (h *handler) Suggestions(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := middleware.GetScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	req, err := h.processSuggestionsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Suggest(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Suggest: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newSuggestionsResp(output))
}
