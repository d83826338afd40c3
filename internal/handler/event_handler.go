package handler

import (
	"encoding/json"
	"time"

	"github.com/labstack/echo/v4"

	"hovertrans/backend/internal/bus"
)

// EventHandler streams bus topics to extension pages.
type EventHandler struct {
	bus       *bus.Bus
	keepAlive time.Duration
}

func NewEventHandler(b *bus.Bus, keepAlive time.Duration) *EventHandler {
	if keepAlive <= 0 {
		keepAlive = DefaultKeepAlive
	}
	return &EventHandler{bus: b, keepAlive: keepAlive}
}

func (h *EventHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/notifications/events", h.Notifications)
	g.GET("/tooltips/events", h.Tooltips)
}

// Notifications streams notifications raised anywhere in the backend.
// @Summary Stream notifications
// @Description Server-sent NOTIFICATION events, e.g. after a translation is saved
// @Tags events
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Router /notifications/events [get]
func (h *EventHandler) Notifications(c echo.Context) error {
	return streamTopic(c, h.bus, bus.Notification, h.keepAlive)
}

// Tooltips streams translation results accepted by tabs, for the page UI
// that draws the tooltip.
// @Summary Stream tooltips
// @Description Server-sent SHOW_TRANSLATION_TOOLTIP events
// @Tags events
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Router /tooltips/events [get]
func (h *EventHandler) Tooltips(c echo.Context) error {
	return streamTopic(c, h.bus, bus.ShowTranslationTooltip, h.keepAlive)
}

func streamTopic[T any](c echo.Context, b *bus.Bus, topic bus.Topic[T], keepAlive time.Duration) error {
	values, cancel := bus.Subscribe(b, topic, 0)
	defer cancel()

	startEventStream(c)

	ctx := c.Request().Context()
	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	for {
		select {
		case v, ok := <-values:
			if !ok {
				return nil
			}
			data, err := json.Marshal(v)
			if err != nil {
				c.Logger().Errorf("encode %s: %v", topic.Name(), err)
				continue
			}
			if err := writeEvent(c, topic.Name(), data); err != nil {
				return nil
			}
		case <-ticker.C:
			if err := writeKeepAlive(c); err != nil {
				return nil
			}
		case <-ctx.Done():
			return nil
		}
	}
}
