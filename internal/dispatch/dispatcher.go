// Package dispatch routes messages arriving from tabs and UI pages to the
// translator and the persistence services.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"hovertrans/backend/internal/i18n"
	"hovertrans/backend/internal/logger"
	"hovertrans/backend/internal/message"
	"hovertrans/backend/internal/model"
	"hovertrans/backend/internal/notify"
	"hovertrans/backend/internal/service"
	"hovertrans/backend/internal/translator"
)

const (
	// DefaultWorkers is the pool size used when Options.Workers is not positive.
	DefaultWorkers = 16
	// MaxPending is the number of accepted messages that may wait for a free
	// worker. Messages arriving while the queue is full are dropped.
	MaxPending = 1024
)

var (
	// ErrClosed is returned for messages that arrive after Close.
	ErrClosed = errors.New("dispatcher closed")
	// ErrQueueFull is returned when MaxPending messages are already waiting.
	ErrQueueFull = errors.New("dispatch queue full")
)

// Sender identifies where a message came from. TabID is empty for senders
// that are not a tab, such as the review page.
type Sender struct {
	TabID string
}

// Ack is the immediate reply to every dispatched message.
type Ack struct {
	Received bool `json:"received"`
}

// TabMessenger delivers a message to one tab.
type TabMessenger interface {
	SendToTab(ctx context.Context, tabID string, msg message.Message) error
}

// Options configures a Dispatcher.
type Options struct {
	Translator translator.Translator
	Settings   service.SettingsService
	History    service.HistoryService
	Notifier   notify.Notifier
	Tabs       TabMessenger
	Catalog    *i18n.Catalog
	Workers    int
	// Now is used for result timestamps; defaults to time.Now.
	Now func() time.Time
}

type job struct {
	ctx context.Context
	run func(context.Context)
}

// Dispatcher acknowledges messages immediately and handles them on a bounded
// worker pool. Accepted messages wait in a queue of MaxPending entries that a
// feeder drains into the pool; Dispatch itself never waits for a worker.
type Dispatcher struct {
	translator translator.Translator
	settings   service.SettingsService
	history    service.HistoryService
	notifier   notify.Notifier
	tabs       TabMessenger
	catalog    *i18n.Catalog
	now        func() time.Time

	pool       *ants.Pool
	queue      chan job
	feederDone chan struct{}
	wg         sync.WaitGroup
	mu         sync.RWMutex
	closed     bool
}

// New creates a dispatcher and its worker pool.
func New(opts Options) (*Dispatcher, error) {
	if opts.Translator == nil || opts.Settings == nil || opts.History == nil || opts.Catalog == nil {
		return nil, errors.New("dispatch: translator, settings, history and catalog are required")
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	pool, err := ants.NewPool(workers,
		ants.WithPanicHandler(func(p any) {
			logger.Error("dispatch worker panic", "module", "dispatch", "action", "handle", "resource", "message", "result", "failed", "panic", p)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	d := &Dispatcher{
		translator: opts.Translator,
		settings:   opts.Settings,
		history:    opts.History,
		notifier:   opts.Notifier,
		tabs:       opts.Tabs,
		catalog:    opts.Catalog,
		now:        now,
		pool:       pool,
		queue:      make(chan job, MaxPending),
		feederDone: make(chan struct{}),
	}
	go d.feed()
	return d, nil
}

// Dispatch acknowledges msg and schedules its handling. The work outlives
// ctx; results reach the sender tab as a separate message.
func (d *Dispatcher) Dispatch(ctx context.Context, from Sender, msg message.Message) Ack {
	if err := d.schedule(ctx, from, msg); err != nil {
		logger.Warn("message not scheduled", "module", "dispatch", "action", "submit", "resource", string(msg.Kind()), "result", "dropped", "tab_id", from.TabID, "error", err)
	}
	return Ack{Received: true}
}

// TabSender posts messages to a dispatcher on behalf of one tab.
type TabSender struct {
	d     *Dispatcher
	tabID string
}

// SenderFor returns a sender whose messages carry tabID as their origin.
func (d *Dispatcher) SenderFor(tabID string) TabSender {
	return TabSender{d: d, tabID: tabID}
}

// Send schedules msg and reports whether it was accepted.
func (s TabSender) Send(ctx context.Context, msg message.Message) error {
	return s.d.schedule(ctx, Sender{TabID: s.tabID}, msg)
}

func (d *Dispatcher) schedule(ctx context.Context, from Sender, msg message.Message) error {
	run := d.route(from, msg)
	if run == nil {
		return nil
	}
	return d.enqueue(job{ctx: context.WithoutCancel(ctx), run: run})
}

func (d *Dispatcher) enqueue(j job) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}

	d.wg.Add(1)
	select {
	case d.queue <- j:
		return nil
	default:
		d.wg.Done()
		return ErrQueueFull
	}
}

// feed hands queued jobs to the pool, waiting for a free worker when all
// are busy.
func (d *Dispatcher) feed() {
	defer close(d.feederDone)
	for j := range d.queue {
		err := d.pool.Submit(func() {
			defer d.wg.Done()
			j.run(j.ctx)
		})
		if err != nil {
			d.wg.Done()
			logger.Error("message not handled", "module", "dispatch", "action", "submit", "resource", "message", "result", "failed", "error", err)
		}
	}
}

// Close stops accepting messages, waits for queued and in-flight work and
// releases the pool.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
	<-d.feederDone
	d.pool.Release()
}

// Running returns the number of busy workers.
func (d *Dispatcher) Running() int {
	return d.pool.Running()
}

func (d *Dispatcher) route(from Sender, msg message.Message) func(context.Context) {
	switch m := msg.(type) {
	case message.TranslateText:
		return func(ctx context.Context) { d.handleTranslateText(ctx, from, m) }
	case message.SaveTranslation:
		return func(ctx context.Context) { d.handleSaveTranslation(ctx, from, m) }
	case message.Unknown:
		logger.Warn("unknown message type", "module", "dispatch", "action", "route", "resource", "message", "result", "ignored", "type", string(m.Type), "tab_id", from.TabID)
	default:
		logger.Debug("unexpected inbound message", "module", "dispatch", "action", "route", "resource", "message", "result", "ignored", "type", string(msg.Kind()), "tab_id", from.TabID)
	}
	return nil
}

func (d *Dispatcher) handleTranslateText(ctx context.Context, from Sender, m message.TranslateText) {
	settings := d.settings.GetSettings(ctx)

	text, err := d.translator.Translate(ctx, m.Text, settings.TargetLanguage)
	if err != nil {
		logger.Warn("translation failed", "module", "dispatch", "action", "translate", "resource", "translation", "result", "failed", "target", settings.TargetLanguage, "error", err)
	}

	result := model.TranslationResult{
		OriginalText:   m.Text,
		TranslatedText: d.catalog.DisplayText(text, err),
		Position:       m.Position,
		URL:            m.URL,
		Timestamp:      model.FormatTimestamp(d.now()),
		Failed:         err != nil,
	}

	if from.TabID == "" || d.tabs == nil {
		logger.Debug("translation result has no tab", "module", "dispatch", "action", "reply", "resource", "translation", "result", "dropped")
		return
	}
	if err := d.tabs.SendToTab(ctx, from.TabID, message.TranslationResult{TranslationResult: result}); err != nil {
		logger.Warn("translation result not delivered", "module", "dispatch", "action", "reply", "resource", "translation", "result", "failed", "tab_id", from.TabID, "error", err)
		return
	}
	logger.Debug("translation result sent", "module", "dispatch", "action", "reply", "resource", "translation", "result", "ok", "tab_id", from.TabID, "failed", result.Failed)
}

func (d *Dispatcher) handleSaveTranslation(ctx context.Context, from Sender, m message.SaveTranslation) {
	settings := d.settings.GetSettings(ctx)

	if err := d.history.Append(ctx, m.Record(settings.TargetLanguage)); err != nil {
		logger.Error("save translation failed", "module", "dispatch", "action", "save", "resource", "translation", "result", "failed", "error", err)
		return
	}

	if d.notifier != nil {
		d.notifier.Notify(ctx, from.TabID, notify.Saved(d.catalog, m.OriginalText))
	}
}
