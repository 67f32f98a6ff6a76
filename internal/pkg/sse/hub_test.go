package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	hub.Publish("emp-1", Event{Event: "attendance_update", Data: "payload"})

	select {
	case ev := <-ch:
		assert.Equal(t, "attendance_update", ev.Event)
		assert.Equal(t, "payload", ev.Data)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestPublishToOtherTopicIsNotDelivered(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	hub.Publish("emp-2", Event{Event: "attendance_update"})

	select {
	case <-ch:
		t.Fatal("event delivered to the wrong topic")
	default:
	}
}

func TestPublishToMany(t *testing.T) {
	hub := NewHub()

	empCh, empCleanup := hub.Subscribe("emp-1")
	defer empCleanup()
	mgrCh, mgrCleanup := hub.Subscribe(ManagersTopic)
	defer mgrCleanup()

	hub.PublishToMany([]string{"emp-1", ManagersTopic}, Event{Event: "attendance_update"})

	empEv := <-empCh
	assert.Equal(t, "emp-1", empEv.Topic)
	mgrEv := <-mgrCh
	assert.Equal(t, ManagersTopic, mgrEv.Topic)
}

func TestPublishWithFullChannelDoesNotBlock(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	// Channel buffer is 10; extra events are dropped rather than blocking
	for i := 0; i < 50; i++ {
		hub.Publish("emp-1", Event{Event: "attendance_update"})
	}
}

func TestCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("emp-1")
	require.Equal(t, 1, hub.SubscriberCount("emp-1"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("emp-1"))
	assert.Equal(t, 0, hub.TotalSubscribers())
}

func TestTotalSubscribers(t *testing.T) {
	hub := NewHub()

	_, c1 := hub.Subscribe("emp-1")
	defer c1()
	_, c2 := hub.Subscribe("emp-2")
	defer c2()
	_, c3 := hub.Subscribe(ManagersTopic)
	defer c3()

	assert.Equal(t, 3, hub.TotalSubscribers())
}
