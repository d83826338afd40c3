package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"hovertrans/backend/internal/logger"
	"hovertrans/backend/internal/message"
)

// TabHub is the tab registry the handler serves.
type TabHub interface {
	Register() string
	Unregister(id string) bool
	Attach(id string) (<-chan message.Envelope, func(), error)
}

type TabHandler struct {
	hub       TabHub
	keepAlive time.Duration
}

type tabResponse struct {
	TabID string `json:"tabId"`
}

func NewTabHandler(hub TabHub, keepAlive time.Duration) *TabHandler {
	if keepAlive <= 0 {
		keepAlive = DefaultKeepAlive
	}
	return &TabHandler{hub: hub, keepAlive: keepAlive}
}

func (h *TabHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/tabs", h.Create)
	g.GET("/tabs/:id/events", h.Events)
	g.DELETE("/tabs/:id", h.Delete)
}

// Create registers a new tab.
// @Summary Register a tab
// @Tags tabs
// @Produce json
// @Success 201 {object} tabResponse
// @Router /tabs [post]
func (h *TabHandler) Create(c echo.Context) error {
	return c.JSON(http.StatusCreated, tabResponse{TabID: h.hub.Register()})
}

// Delete unregisters a tab and ends its event stream.
// @Summary Unregister a tab
// @Tags tabs
// @Param id path string true "Tab ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /tabs/{id} [delete]
func (h *TabHandler) Delete(c echo.Context) error {
	if !h.hub.Unregister(c.Param("id")) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "tab not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Events streams every message addressed to the tab as server-sent events.
// The stream ends when the client disconnects or the tab is removed.
// @Summary Stream tab messages
// @Description Server-sent events, one event per message; the event name is the message type
// @Tags tabs
// @Produce text/event-stream
// @Param id path string true "Tab ID"
// @Success 200 {string} string "event stream"
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /tabs/{id}/events [get]
func (h *TabHandler) Events(c echo.Context) error {
	id := c.Param("id")
	mailbox, detach, err := h.hub.Attach(id)
	if err != nil {
		return writeServiceError(c, err)
	}
	defer detach()

	logger.Debug("tab stream opened", "module", "handler", "action", "stream", "resource", "tab", "result", "ok", "tab_id", id)
	startEventStream(c)

	ctx := c.Request().Context()
	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case env, ok := <-mailbox:
			if !ok {
				return nil
			}
			if err := writeEvent(c, string(env.Type), env.Payload); err != nil {
				return nil
			}
		case <-ticker.C:
			if err := writeKeepAlive(c); err != nil {
				return nil
			}
		case <-ctx.Done():
			if !errors.Is(ctx.Err(), context.Canceled) {
				logger.Debug("tab stream ended", "module", "handler", "action", "stream", "resource", "tab", "result", "ok", "tab_id", id, "error", ctx.Err())
			}
			return nil
		}
	}
}
