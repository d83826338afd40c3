package notify

import (
	"context"
	"strconv"

	"hovertrans/backend/internal/bus"
	"hovertrans/backend/internal/i18n"
	"hovertrans/backend/internal/logger"
	"hovertrans/backend/internal/message"
	"hovertrans/backend/internal/model"
	"hovertrans/backend/internal/snowflake"
)

// IconURL is the fixed notification icon.
const IconURL = "/icon-128.png"

// PreviewLength is the number of characters of the original text shown in a
// save notification.
const PreviewLength = 20

// Notifier shows a notification to the user. tabID may be empty.
type Notifier interface {
	Notify(ctx context.Context, tabID string, n model.Notification)
}

// TabSender delivers a message to one tab.
type TabSender interface {
	SendToTab(ctx context.Context, tabID string, msg message.Message) error
}

// Preview truncates text to PreviewLength characters, adding "..." when cut.
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= PreviewLength {
		return text
	}
	return string(runes[:PreviewLength]) + "..."
}

// Saved builds the notification shown after a translation is saved.
func Saved(catalog *i18n.Catalog, originalText string) model.Notification {
	return model.Notification{
		ID:      strconv.FormatInt(snowflake.NextID(), 10),
		IconURL: IconURL,
		Title:   catalog.T(i18n.MsgNotificationSavedTitle, nil),
		Message: catalog.T(i18n.MsgNotificationSavedMessage, map[string]any{"Preview": Preview(originalText)}),
	}
}

// BusNotifier logs the notification, publishes it on the bus and forwards it
// to the originating tab when there is one.
type BusNotifier struct {
	bus  *bus.Bus
	tabs TabSender
}

// NewBusNotifier creates a notifier. tabs may be nil.
func NewBusNotifier(b *bus.Bus, tabs TabSender) *BusNotifier {
	return &BusNotifier{bus: b, tabs: tabs}
}

func (n *BusNotifier) Notify(ctx context.Context, tabID string, note model.Notification) {
	logger.Info("notification", "module", "notify", "action", "create", "resource", "notification", "result", "ok", "id", note.ID, "title", note.Title, "message", note.Message)

	if n.bus != nil {
		if err := bus.Publish(ctx, n.bus, bus.Notification, note); err != nil {
			logger.Warn("notification not published", "module", "notify", "action", "publish", "resource", "notification", "result", "failed", "id", note.ID, "error", err)
		}
	}
	if n.tabs != nil && tabID != "" {
		if err := n.tabs.SendToTab(ctx, tabID, message.Notification{Notification: note}); err != nil {
			logger.Debug("notification not delivered to tab", "module", "notify", "action", "send", "resource", "notification", "result", "failed", "tab_id", tabID, "error", err)
		}
	}
}
