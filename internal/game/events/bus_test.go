package events

import (
	"testing"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	var receivedEvent Event
	id := bus.SubscribeFunc(TypeGameStarted, func(e Event) {
		receivedEvent = e
	})
	assert.Equal(t, "game.started_func_1", id)

	bus.Publish(NewGameStartedEvent("test-game", 3, 1))

	require.NotNil(t, receivedEvent, "Event should have been received")
	assert.Equal(t, TypeGameStarted, receivedEvent.Type())
	assert.Equal(t, "test-game", receivedEvent.GameID())
	assert.False(t, receivedEvent.Timestamp().IsZero())
}

func TestEventBusMultipleHandlers(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	handler1Called := false
	handler2Called := false
	bus.SubscribeFunc(TypeTurnEnded, func(e Event) { handler1Called = true })
	bus.SubscribeFunc(TypeTurnEnded, func(e Event) { handler2Called = true })

	bus.Publish(NewTurnEndedEvent("test-game", "p1", "p2"))

	assert.True(t, handler1Called, "Handler 1 should have been called")
	assert.True(t, handler2Called, "Handler 2 should have been called")
}

// TestSubscriber is a test implementation of Subscriber
type TestSubscriber struct {
	id              string
	interestedTypes map[string]bool
	receivedEvents  []Event
}

func (ts *TestSubscriber) ID() string {
	return ts.id
}

func (ts *TestSubscriber) HandleEvent(e Event) {
	ts.receivedEvents = append(ts.receivedEvents, e)
}

func (ts *TestSubscriber) InterestedIn(eventType string) bool {
	if ts.interestedTypes == nil {
		return true
	}
	return ts.interestedTypes[eventType]
}

func TestEventBusSubscriber(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	all := &TestSubscriber{id: "all"}
	lobby := &TestSubscriber{id: "lobby", interestedTypes: map[string]bool{TypePlayerJoined: true}}
	bus.Subscribe(all)
	bus.Subscribe(lobby)
	assert.Equal(t, 2, bus.SubscriberCount())

	bus.Publish(NewPlayerJoinedEvent("g", "p2", "red", 1))
	bus.Publish(NewCommandExecutedEvent("g", "p1", "boot"))

	assert.Len(t, all.receivedEvents, 2)
	require.Len(t, lobby.receivedEvents, 1)
	joined, ok := lobby.receivedEvents[0].(*PlayerJoinedEvent)
	require.True(t, ok)
	assert.Equal(t, "p2", joined.PlayerID)

	bus.Unsubscribe("all")
	bus.Publish(NewCommandExecutedEvent("g", "p1", "boot"))
	assert.Len(t, all.receivedEvents, 2)
	assert.Equal(t, 1, bus.SubscriberCount())
}

func TestEventBusPanicRecovery(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	called := false
	bus.SubscribeFunc(TypeGameEnded, func(e Event) { panic("boom") })
	bus.SubscribeFunc(TypeGameEnded, func(e Event) { called = true })

	assert.NotPanics(t, func() {
		bus.Publish(NewGameEndedEvent("g", core.Winner{PlayerID: "p1", Points: 20}, 0))
	})
	assert.True(t, called, "later handlers still run after a panic")
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NotPanics(t, func() { p.Publish(NewPlayerLostEvent("g", "p", true)) })
}
