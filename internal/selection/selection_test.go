package selection_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hovertrans/backend/internal/bus"
	"hovertrans/backend/internal/message"
	"hovertrans/backend/internal/model"
	"hovertrans/backend/internal/selection"
)

type recordingSender struct {
	sent []message.Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg message.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func TestDetect(t *testing.T) {
	ev := selection.PointerEvent{TargetTag: "P", PageX: 10, PageY: 20}

	sel, ok := selection.Detect(ev, "  bonjour \n", "https://example.com")
	require.True(t, ok)
	require.Equal(t, model.SelectionInfo{
		Text:     "bonjour",
		Position: model.Position{X: 10, Y: 20},
		URL:      "https://example.com",
	}, sel)
}

func TestDetect_Ignored(t *testing.T) {
	cases := []struct {
		name string
		ev   selection.PointerEvent
		text string
	}{
		{"input", selection.PointerEvent{TargetTag: "INPUT"}, "hi"},
		{"lowercase textarea", selection.PointerEvent{TargetTag: "textarea"}, "hi"},
		{"select", selection.PointerEvent{TargetTag: "SELECT"}, "hi"},
		{"option", selection.PointerEvent{TargetTag: "Option"}, "hi"},
		{"contenteditable", selection.PointerEvent{TargetTag: "DIV", ContentEditable: "true"}, "hi"},
		{"empty", selection.PointerEvent{TargetTag: "P"}, ""},
		{"whitespace", selection.PointerEvent{TargetTag: "P"}, " \t\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := selection.Detect(tc.ev, tc.text, "https://example.com")
			require.False(t, ok)
		})
	}
}

func TestDetect_ContentEditableFalse(t *testing.T) {
	_, ok := selection.Detect(selection.PointerEvent{TargetTag: "DIV", ContentEditable: "false"}, "hi", "")
	require.True(t, ok)
}

func TestContentScript_OnPointerUp(t *testing.T) {
	sender := &recordingSender{}
	cs := selection.NewContentScript("https://example.com", sender, newBus(t))

	sent, err := cs.OnPointerUp(context.Background(), selection.PointerEvent{TargetTag: "SPAN", PageX: 1, PageY: 2}, "bonjour")
	require.NoError(t, err)
	require.True(t, sent)

	sent, err = cs.OnPointerUp(context.Background(), selection.PointerEvent{TargetTag: "INPUT"}, "bonjour")
	require.NoError(t, err)
	require.False(t, sent)

	require.Len(t, sender.sent, 1)
	msg, ok := sender.sent[0].(message.TranslateText)
	require.True(t, ok)
	require.Equal(t, "bonjour", msg.Text)
	require.Equal(t, model.Position{X: 1, Y: 2}, msg.Position)
	require.Equal(t, "https://example.com", msg.URL)
}

func TestContentScript_OnPointerUp_SendError(t *testing.T) {
	sender := &recordingSender{err: errors.New("disconnected")}
	cs := selection.NewContentScript("https://example.com", sender, newBus(t))

	sent, err := cs.OnPointerUp(context.Background(), selection.PointerEvent{TargetTag: "P"}, "bonjour")
	require.Error(t, err)
	require.False(t, sent)
}

func newBus(t *testing.T) *bus.Bus {
	t.Helper()
	b := bus.New()
	t.Cleanup(func() { _ = b.Close(context.Background()) })
	return b
}

func nextTooltip(t *testing.T, ch <-chan model.TranslationResult) model.TranslationResult {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("no tooltip raised")
		return model.TranslationResult{}
	}
}

func TestContentScript_OnMessage(t *testing.T) {
	b := newBus(t)
	tooltips, cancel := bus.Subscribe(b, bus.ShowTranslationTooltip, 1)
	defer cancel()
	cs := selection.NewContentScript("https://example.com", &recordingSender{}, b)
	ctx := context.Background()

	result := model.TranslationResult{OriginalText: "bonjour", TranslatedText: "hello", URL: "https://example.com"}
	require.True(t, cs.OnMessage(ctx, message.TranslationResult{TranslationResult: result}))
	require.Equal(t, result, nextTooltip(t, tooltips))

	require.False(t, cs.OnMessage(ctx, message.Unknown{Type: "PING"}))
	require.False(t, cs.OnMessage(ctx, message.TranslateText{Text: "x"}))
}

type tabRecorder struct {
	ids  []string
	msgs []message.Message
	err  error
}

func (r *tabRecorder) SendToTab(_ context.Context, id string, msg message.Message) error {
	if r.err != nil {
		return r.err
	}
	r.ids = append(r.ids, id)
	r.msgs = append(r.msgs, msg)
	return nil
}

func TestRelay(t *testing.T) {
	b := newBus(t)
	tooltips, cancel := bus.Subscribe(b, bus.ShowTranslationTooltip, 4)
	defer cancel()
	tabs := &tabRecorder{}
	relay := selection.NewRelay(tabs, b)
	ctx := context.Background()

	result := model.TranslationResult{OriginalText: "bonjour", TranslatedText: "hello"}
	require.NoError(t, relay.SendToTab(ctx, "tab-1", message.TranslationResult{TranslationResult: result}))
	require.NoError(t, relay.SendToTab(ctx, "tab-1", message.Notification{}))

	require.Equal(t, []string{"tab-1", "tab-1"}, tabs.ids)
	require.Equal(t, result, nextTooltip(t, tooltips))
}

func TestRelay_UndeliveredRaisesNothing(t *testing.T) {
	b := newBus(t)
	tooltips, cancel := bus.Subscribe(b, bus.ShowTranslationTooltip, 1)
	defer cancel()
	relay := selection.NewRelay(&tabRecorder{err: errors.New("gone")}, b)

	err := relay.SendToTab(context.Background(), "tab-1", message.TranslationResult{})
	require.Error(t, err)

	select {
	case <-tooltips:
		t.Fatal("tooltip raised for an undelivered result")
	case <-time.After(300 * time.Millisecond):
	}
}
