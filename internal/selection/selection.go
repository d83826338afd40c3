// Package selection turns pointer-up events into translation requests and
// routes translation results back to the page UI.
package selection

import (
	"context"
	"strings"

	"hovertrans/backend/internal/bus"
	"hovertrans/backend/internal/logger"
	"hovertrans/backend/internal/message"
	"hovertrans/backend/internal/model"
)

// ignoredElements are form controls whose selections belong to the user's input.
var ignoredElements = map[string]struct{}{
	"INPUT":    {},
	"TEXTAREA": {},
	"SELECT":   {},
	"OPTION":   {},
}

// PointerEvent is a pointer release observed in the page.
type PointerEvent struct {
	// TargetTag is the tag name of the event target; empty when the target is not an element.
	TargetTag string
	// ContentEditable is the target's contenteditable attribute value.
	ContentEditable string
	PageX           float64
	PageY           float64
}

// ShouldIgnore reports whether the event target is an input-like element.
func ShouldIgnore(ev PointerEvent) bool {
	if _, ok := ignoredElements[strings.ToUpper(ev.TargetTag)]; ok {
		return true
	}
	return strings.EqualFold(ev.ContentEditable, "true")
}

// Detect returns the selection for ev, or false if no translation should be requested.
func Detect(ev PointerEvent, selected, pageURL string) (model.SelectionInfo, bool) {
	if ShouldIgnore(ev) {
		return model.SelectionInfo{}, false
	}
	text := strings.TrimSpace(selected)
	if text == "" {
		return model.SelectionInfo{}, false
	}
	return model.SelectionInfo{
		Text:     text,
		Position: model.Position{X: ev.PageX, Y: ev.PageY},
		URL:      pageURL,
	}, true
}

// Sender delivers a message from the page to the background.
type Sender interface {
	Send(ctx context.Context, msg message.Message) error
}

// ContentScript is the page-side half of one tab.
type ContentScript struct {
	pageURL string
	sender  Sender
	bus     *bus.Bus
}

// NewContentScript creates the content side for a page.
func NewContentScript(pageURL string, sender Sender, b *bus.Bus) *ContentScript {
	return &ContentScript{pageURL: pageURL, sender: sender, bus: b}
}

// OnPointerUp sends one TRANSLATE_TEXT for a qualifying selection and reports
// whether a message was sent.
func (c *ContentScript) OnPointerUp(ctx context.Context, ev PointerEvent, selected string) (bool, error) {
	sel, ok := Detect(ev, selected, c.pageURL)
	if !ok {
		return false, nil
	}
	if err := c.sender.Send(ctx, message.NewTranslateText(sel)); err != nil {
		logger.Warn("translate request not sent", "module", "selection", "action", "send", "resource", "message", "result", "failed", "error", err)
		return false, err
	}
	return true, nil
}

// OnMessage handles a message from the background. Translation results are
// raised as SHOW_TRANSLATION_TOOLTIP; everything else is ignored.
func (c *ContentScript) OnMessage(ctx context.Context, msg message.Message) bool {
	return raiseTooltip(ctx, c.bus, msg)
}

func raiseTooltip(ctx context.Context, b *bus.Bus, msg message.Message) bool {
	result, ok := msg.(message.TranslationResult)
	if !ok {
		return false
	}
	if err := bus.Publish(ctx, b, bus.ShowTranslationTooltip, result.TranslationResult); err != nil {
		logger.Warn("tooltip not raised", "module", "selection", "action", "publish", "resource", "tooltip", "result", "failed", "error", err)
		return false
	}
	return true
}

// TabMessenger delivers a message to one tab.
type TabMessenger interface {
	SendToTab(ctx context.Context, tabID string, msg message.Message) error
}

// Relay stands in for the receiving side of content scripts served over
// HTTP: it forwards every message to the tab and raises the tooltip event
// for translation results the tab accepted.
type Relay struct {
	tabs TabMessenger
	bus  *bus.Bus
}

// NewRelay wraps tabs.
func NewRelay(tabs TabMessenger, b *bus.Bus) *Relay {
	return &Relay{tabs: tabs, bus: b}
}

func (r *Relay) SendToTab(ctx context.Context, tabID string, msg message.Message) error {
	if err := r.tabs.SendToTab(ctx, tabID, msg); err != nil {
		return err
	}
	raiseTooltip(ctx, r.bus, msg)
	return nil
}
