package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"hovertrans/backend/internal/dispatch"
	"hovertrans/backend/internal/logger"
	"hovertrans/backend/internal/message"
)

// Dispatcher routes inbound messages.
type Dispatcher interface {
	Dispatch(ctx context.Context, from dispatch.Sender, msg message.Message) dispatch.Ack
}

type MessageHandler struct {
	dispatcher Dispatcher
}

func NewMessageHandler(dispatcher Dispatcher) *MessageHandler {
	return &MessageHandler{dispatcher: dispatcher}
}

func (h *MessageHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/messages", h.Post)
}

// Post accepts one message envelope and acknowledges it before any work is
// done. Envelopes that parse but carry an unusable payload are logged and
// still acknowledged.
// @Summary Post a message
// @Description Route a TRANSLATE_TEXT or SAVE_TRANSLATION envelope; the result reaches the tab's event stream
// @Tags messages
// @Accept json
// @Produce json
// @Param X-Tab-ID header string false "Sending tab"
// @Param message body message.Envelope true "Message envelope"
// @Success 202 {object} dispatch.Ack
// @Failure 400 {object} errorResponse
// @Router /messages [post]
func (h *MessageHandler) Post(c echo.Context) error {
	var env message.Envelope
	if err := c.Bind(&env); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if env.Type == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "type is required"})
	}

	from := dispatch.Sender{TabID: tabIDFromRequest(c)}

	msg, err := message.Decode(env)
	if err != nil {
		logger.Warn("malformed message", "module", "handler", "action", "receive", "resource", "message", "result", "ignored", "type", string(env.Type), "tab_id", from.TabID, "error", err)
		return c.JSON(http.StatusAccepted, dispatch.Ack{Received: true})
	}

	return c.JSON(http.StatusAccepted, h.dispatcher.Dispatch(c.Request().Context(), from, msg))
}
