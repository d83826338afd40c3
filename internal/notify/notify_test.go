package notify_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hovertrans/backend/internal/bus"
	"hovertrans/backend/internal/i18n"
	"hovertrans/backend/internal/message"
	"hovertrans/backend/internal/model"
	"hovertrans/backend/internal/notify"
)

func TestPreview(t *testing.T) {
	require.Equal(t, "short", notify.Preview("short"))
	require.Equal(t, strings.Repeat("a", 20), notify.Preview(strings.Repeat("a", 20)))
	require.Equal(t, strings.Repeat("a", 20)+"...", notify.Preview(strings.Repeat("a", 21)))
	require.Equal(t, strings.Repeat("가", 20)+"...", notify.Preview(strings.Repeat("가", 30)))
}

func TestSaved(t *testing.T) {
	catalog, err := i18n.New("en")
	require.NoError(t, err)

	n := notify.Saved(catalog, "The quick brown fox jumps over the lazy dog")
	require.NotEmpty(t, n.ID)
	require.Equal(t, notify.IconURL, n.IconURL)
	require.Equal(t, "Translation saved", n.Title)
	require.Equal(t, `"The quick brown fox ..." saved`, n.Message)
}

type tabRecorder struct {
	tabID string
	msg   message.Message
}

func (r *tabRecorder) SendToTab(_ context.Context, tabID string, msg message.Message) error {
	r.tabID = tabID
	r.msg = msg
	return nil
}

func TestBusNotifier(t *testing.T) {
	b := bus.New()
	t.Cleanup(func() { _ = b.Close(context.Background()) })
	ch, cancel := bus.Subscribe(b, bus.Notification, 1)
	defer cancel()
	tabs := &tabRecorder{}

	n := notify.NewBusNotifier(b, tabs)
	n.Notify(context.Background(), "tab-1", model.Notification{ID: "42", Title: "t"})

	select {
	case note := <-ch:
		require.Equal(t, "42", note.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("notification not published")
	}
	require.Equal(t, "tab-1", tabs.tabID)
	require.Equal(t, message.KindNotification, tabs.msg.Kind())
}

func TestBusNotifier_NoTab(t *testing.T) {
	tabs := &tabRecorder{}
	n := notify.NewBusNotifier(nil, tabs)

	n.Notify(context.Background(), "", model.Notification{ID: "1"})
	require.Nil(t, tabs.msg)
}
