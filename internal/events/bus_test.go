package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishFanOut(t *testing.T) {
	bus := NewBus()
	ch1, cancel1 := bus.Subscribe()
	defer cancel1()
	ch2, cancel2 := bus.Subscribe()
	defer cancel2()

	bus.Publish(Event{Type: DocumentCreated, DocType: "Customer", ID: "Acme"})

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case e := <-ch:
			assert.Equal(t, DocumentCreated, e.Type)
			assert.Equal(t, "Acme", e.ID)
			assert.False(t, e.At.IsZero(), "timestamp stamped on publish")
		default:
			t.Fatal("expected event on every subscriber")
		}
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()

	require.Equal(t, 1, bus.SubscriberCount())
	cancel()
	assert.Equal(t, 0, bus.SubscriberCount())

	// The channel is closed; publishes after cancel are not delivered.
	bus.Publish(Event{Type: DocumentDeleted, DocType: "Customer", ID: "Acme"})
	_, open := <-ch
	assert.False(t, open)
}

func TestCancelIsIdempotent(t *testing.T) {
	bus := NewBus()
	_, cancel := bus.Subscribe()
	cancel()
	assert.NotPanics(t, cancel)
}

func TestSlowSubscriberDropsEvents(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer+10; i++ {
		bus.Publish(Event{Type: DocumentUpdated, DocType: "Customer", ID: "Acme"})
	}

	// Publish never blocks; the buffer holds what fits and the rest drop.
	assert.Len(t, ch, subscriberBuffer)
}
