package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted in tick N become
// readable after the SwapBuffers at the start of tick N+1. Each event type
// gets its own typed channel, and channels dispatch in the order their type
// was first seen.
type Bus struct {
	mu     sync.Mutex // guards byType and order; emit and dispatch run on the tick goroutine
	byType map[reflect.Type]queue
	order  []queue
}

// queue is the type-erased face of a channel[T].
type queue interface {
	swap()
	dispatch() int
	pending() int
}

type channel[T any] struct {
	front, back []T
	handlers    []func(T)
}

func (c *channel[T]) swap() {
	c.front, c.back = c.back, c.front
	clear(c.back)
	c.back = c.back[:0]
}

func (c *channel[T]) dispatch() int {
	for _, ev := range c.front {
		for _, h := range c.handlers {
			h(ev)
		}
	}
	return len(c.front)
}

func (c *channel[T]) pending() int { return len(c.back) }

func NewBus() *Bus {
	return &Bus{byType: make(map[reflect.Type]queue)}
}

func channelOf[T any](b *Bus) *channel[T] {
	t := reflect.TypeFor[T]()
	b.mu.Lock()
	defer b.mu.Unlock()
	if q, ok := b.byType[t]; ok {
		return q.(*channel[T])
	}
	c := &channel[T]{}
	b.byType[t] = c
	b.order = append(b.order, c)
	return c
}

// Emit queues an event for delivery next tick.
func Emit[T any](b *Bus, event T) {
	c := channelOf[T](b)
	c.back = append(c.back, event)
}

// Subscribe registers a handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	c := channelOf[T](b)
	c.handlers = append(c.handlers, fn)
}

// SwapBuffers makes last tick's events readable and empties the emit side.
func (b *Bus) SwapBuffers() {
	for _, q := range b.queues() {
		q.swap()
	}
}

// DispatchAll delivers the readable events and returns how many there were.
// Events emitted by handlers wait for the next swap.
func (b *Bus) DispatchAll() int {
	n := 0
	for _, q := range b.queues() {
		n += q.dispatch()
	}
	return n
}

// Pending returns the number of events waiting for the next swap.
func (b *Bus) Pending() int {
	n := 0
	for _, q := range b.queues() {
		n += q.pending()
	}
	return n
}

func (b *Bus) queues() []queue {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.order
}
