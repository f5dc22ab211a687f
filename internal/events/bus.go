// Package events carries document lifecycle notifications from the storage
// layer to interested listeners, primarily the websocket stream that keeps
// list views live.
package events

import (
	"sync"
	"time"
)

// EventType names a document lifecycle event
type EventType string

const (
	DocumentCreated   EventType = "created"
	DocumentUpdated   EventType = "updated"
	DocumentDeleted   EventType = "deleted"
	DocumentSubmitted EventType = "submitted"
	DocumentCancelled EventType = "cancelled"
	DocumentAmended   EventType = "amended"
)

// Event describes one document change. Payloads carry identifiers only;
// listeners re-fetch through the API, which applies permissions.
type Event struct {
	Type    EventType `json:"type"`
	DocType string    `json:"doctype"`
	ID      string    `json:"id"`
	User    string    `json:"user,omitempty"`
	At      time.Time `json:"at"`
}

// subscriberBuffer bounds each subscriber channel; slow consumers drop
// events rather than stalling publishers
const subscriberBuffer = 64

// Bus is an in-process fan-out of document events. Publish never blocks.
type Bus struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

// NewBus creates an event bus
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a listener. The returned cancel function must be
// called when the listener goes away; it closes the channel.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if ch, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber without blocking. A full
// subscriber buffer drops the event for that subscriber only.
func (b *Bus) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
