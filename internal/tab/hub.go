// Package tab tracks the browser tabs connected to the backend and holds a
// bounded mailbox of outbound messages for each of them.
package tab

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"hovertrans/backend/internal/logger"
	"hovertrans/backend/internal/message"
)

// DefaultMailboxSize is the number of undelivered messages kept per tab.
const DefaultMailboxSize = 32

var (
	ErrUnknownTab      = errors.New("unknown tab")
	ErrMailboxFull     = errors.New("tab mailbox full")
	ErrAlreadyAttached = errors.New("tab already has an event stream")
)

type tab struct {
	mailbox  chan message.Envelope
	attached bool
	lastSeen time.Time
}

// Hub is safe for concurrent use.
type Hub struct {
	mu          sync.Mutex
	tabs        map[string]*tab
	mailboxSize int
	now         func() time.Time
}

// NewHub creates a hub whose tabs buffer up to mailboxSize messages.
func NewHub(mailboxSize int) *Hub {
	if mailboxSize <= 0 {
		mailboxSize = DefaultMailboxSize
	}
	return &Hub{
		tabs:        make(map[string]*tab),
		mailboxSize: mailboxSize,
		now:         time.Now,
	}
}

// Register creates a tab and returns its ID.
func (h *Hub) Register() string {
	id := uuid.NewString()

	h.mu.Lock()
	h.tabs[id] = &tab{
		mailbox:  make(chan message.Envelope, h.mailboxSize),
		lastSeen: h.now(),
	}
	h.mu.Unlock()

	logger.Debug("tab registered", "module", "tab", "action", "create", "resource", "tab", "result", "ok", "tab_id", id)
	return id
}

// Unregister removes a tab and closes its mailbox, ending attached readers.
func (h *Hub) Unregister(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, ok := h.tabs[id]
	if !ok {
		return false
	}
	delete(h.tabs, id)
	close(t.mailbox)
	logger.Debug("tab unregistered", "module", "tab", "action", "delete", "resource", "tab", "result", "ok", "tab_id", id)
	return true
}

// Attach returns the tab's mailbox for reading. A tab has at most one reader
// at a time; detach must be called when the reader goes away.
func (h *Hub) Attach(id string) (<-chan message.Envelope, func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, ok := h.tabs[id]
	if !ok {
		return nil, nil, ErrUnknownTab
	}
	if t.attached {
		return nil, nil, ErrAlreadyAttached
	}
	t.attached = true
	t.lastSeen = h.now()

	var once sync.Once
	detach := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			t.attached = false
			t.lastSeen = h.now()
		})
	}
	return t.mailbox, detach, nil
}

// Touch records activity from the tab and reports whether it is registered.
func (h *Hub) Touch(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, ok := h.tabs[id]
	if ok {
		t.lastSeen = h.now()
	}
	return ok
}

// SendToTab queues msg for the tab. It never blocks.
func (h *Hub) SendToTab(ctx context.Context, id string, msg message.Message) error {
	env, err := message.Encode(msg)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	t, ok := h.tabs[id]
	if !ok {
		return ErrUnknownTab
	}

	select {
	case t.mailbox <- env:
		return nil
	default:
		logger.Warn("tab mailbox full", "module", "tab", "action", "send", "resource", "tab", "result", "dropped", "tab_id", id, "type", env.Type)
		return ErrMailboxFull
	}
}

// PruneStale removes tabs nobody has been attached to for longer than ttl
// and returns how many were removed.
func (h *Hub) PruneStale(ctx context.Context, ttl time.Duration) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	cutoff := h.now().Add(-ttl)
	removed := 0
	for id, t := range h.tabs {
		if !t.attached && t.lastSeen.Before(cutoff) {
			delete(h.tabs, id)
			close(t.mailbox)
			removed++
		}
	}
	return removed
}

// Len returns the number of registered tabs.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.tabs)
}
