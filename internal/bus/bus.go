// Package bus is an in-process publish/subscribe channel with a fixed set of
// typed topics. It replaces DOM custom events between the content side and
// the UI. Each topic is an in-memory gocloud pubsub topic carrying JSON.
package bus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"gocloud.dev/pubsub"
	"gocloud.dev/pubsub/mempubsub"

	"hovertrans/backend/internal/logger"
	"hovertrans/backend/internal/model"
)

// Topic is a named channel carrying values of type T.
type Topic[T any] struct {
	name string
}

// Name returns the topic's wire name.
func (t Topic[T]) Name() string { return t.name }

var (
	// ShowTranslationTooltip is raised when a translation result reaches a tab.
	ShowTranslationTooltip = Topic[model.TranslationResult]{name: "SHOW_TRANSLATION_TOOLTIP"}
	// Notification carries user-visible notifications (toasts).
	Notification = Topic[model.Notification]{name: "NOTIFICATION"}
)

const (
	// DefaultBuffer is the per-subscriber buffer used when Subscribe gets 0.
	DefaultBuffer = 16
	ackDeadline   = 30 * time.Second
)

// ErrClosed is returned by Publish after Close.
var ErrClosed = errors.New("bus closed")

type subscriber struct {
	deliver func([]byte) bool
	close   func()
}

// channel is one pubsub topic with the single subscription that feeds the
// local subscribers.
type channel struct {
	name  string
	topic *pubsub.Topic
	sub   *pubsub.Subscription
	subs  map[int]subscriber
}

// Bus fans values out to every subscriber of a topic. Publishing never waits
// for subscribers: a subscriber whose buffer is full misses the value.
// Delivery order between separate publishes is not guaranteed.
type Bus struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.RWMutex
	closed   bool
	nextID   int
	channels map[string]*channel
}

// New creates an empty bus. Close releases its topics.
func New() *Bus {
	ctx, cancel := context.WithCancel(context.Background())
	return &Bus{ctx: ctx, cancel: cancel, channels: make(map[string]*channel)}
}

// channelLocked returns the channel for name, opening it on first use.
// The caller holds b.mu for writing.
func (b *Bus) channelLocked(name string) *channel {
	if ch, ok := b.channels[name]; ok {
		return ch
	}
	topic := mempubsub.NewTopic()
	ch := &channel{
		name:  name,
		topic: topic,
		sub:   mempubsub.NewSubscription(topic, ackDeadline),
		subs:  make(map[int]subscriber),
	}
	b.channels[name] = ch

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.receive(ch)
	}()
	return ch
}

func (b *Bus) receive(ch *channel) {
	for {
		msg, err := ch.sub.Receive(b.ctx)
		if err != nil {
			if b.ctx.Err() == nil {
				logger.Error("bus receive failed", "module", "bus", "action", "receive", "resource", ch.name, "result", "failed", "error", err)
			}
			return
		}
		b.fanOut(ch, msg.Body)
		msg.Ack()
	}
}

func (b *Bus) fanOut(ch *channel, body []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range ch.subs {
		if !sub.deliver(body) {
			logger.Warn("bus subscriber full", "module", "bus", "action", "publish", "resource", ch.name, "result", "dropped")
		}
	}
}

// Subscribe registers a subscriber on topic. The returned cancel function
// unregisters it and closes the channel; it is safe to call more than once.
func Subscribe[T any](b *Bus, topic Topic[T], buffer int) (<-chan T, func()) {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	out := make(chan T, buffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(out)
		return out, func() {}
	}
	ch := b.channelLocked(topic.name)
	id := b.nextID
	b.nextID++
	ch.subs[id] = subscriber{
		deliver: func(body []byte) bool {
			var v T
			if err := json.Unmarshal(body, &v); err != nil {
				logger.Warn("bus message undecodable", "module", "bus", "action", "decode", "resource", topic.name, "result", "dropped", "error", err)
				return true
			}
			select {
			case out <- v:
				return true
			default:
				return false
			}
		},
		close: func() { close(out) },
	}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := ch.subs[id]; ok {
				delete(ch.subs, id)
				sub.close()
			}
		})
	}
	return out, cancel
}

// Publish sends v on topic. It returns once the value is queued; subscribers
// receive it asynchronously.
func Publish[T any](ctx context.Context, b *Bus, topic Topic[T], v T) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", topic.name, err)
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	ch := b.channelLocked(topic.name)
	b.mu.Unlock()

	if err := ch.topic.Send(ctx, &pubsub.Message{Body: body, Metadata: map[string]string{"topic": topic.name}}); err != nil {
		return fmt.Errorf("publish %s: %w", topic.name, err)
	}
	return nil
}

// Subscribers returns the number of subscribers on topic.
func Subscribers[T any](b *Bus, topic Topic[T]) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ch, ok := b.channels[topic.name]
	if !ok {
		return 0
	}
	return len(ch.subs)
}

// Close stops delivery, shuts the topics down and closes every subscriber
// channel. It is safe to call more than once.
func (b *Bus) Close(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	b.cancel()
	b.wg.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	var errs []error
	for _, ch := range b.channels {
		for id, sub := range ch.subs {
			delete(ch.subs, id)
			sub.close()
		}
		if err := ch.sub.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown subscription %s: %w", ch.name, err))
		}
		if err := ch.topic.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown topic %s: %w", ch.name, err))
		}
	}
	return errors.Join(errs...)
}
