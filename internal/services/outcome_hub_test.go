package services

import (
	"testing"
	"time"

	"github.com/pokerdesk/club_ledger/internal/models"
	"github.com/pokerdesk/club_ledger/pkg/logger"
)

func TestOutcomeHub_PublishOrder(t *testing.T) {
	hub := NewOutcomeHub(logger.NewNop())
	defer hub.Close()

	events, cancel := hub.Subscribe()
	defer cancel()

	for i := 1; i <= 3; i++ {
		hub.Publish(models.SessionOutcome{PlayerID: uint(i)})
	}

	for i := 1; i <= 3; i++ {
		select {
		case outcome := <-events:
			if outcome.PlayerID != uint(i) {
				t.Errorf("event %d: PlayerID = %d, want %d", i, outcome.PlayerID, i)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
}

func TestOutcomeHub_CancelStopsDelivery(t *testing.T) {
	hub := NewOutcomeHub(logger.NewNop())
	defer hub.Close()

	events, cancel := hub.Subscribe()
	cancel()

	// Publishing after cancel must not panic; the channel is closed.
	hub.Publish(models.SessionOutcome{PlayerID: 1})

	if _, ok := <-events; ok {
		t.Error("expected closed channel after cancel")
	}
}

func TestOutcomeHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewOutcomeHub(logger.NewNop())
	defer hub.Close()

	_, cancel := hub.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		// More events than the subscriber buffer holds; extras are dropped.
		for i := 0; i < 200; i++ {
			hub.Publish(models.SessionOutcome{PlayerID: 1})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}

func TestOutcomeHub_SubscribeAfterClose(t *testing.T) {
	hub := NewOutcomeHub(logger.NewNop())
	hub.Close()

	events, cancel := hub.Subscribe()
	defer cancel()

	if _, ok := <-events; ok {
		t.Error("expected closed channel from a closed hub")
	}
}

func TestPlayerLocks_SerializesPerPlayer(t *testing.T) {
	locks := newPlayerLocks()

	counter := 0
	done := make(chan struct{})

	for i := 0; i < 50; i++ {
		go func() {
			unlock := locks.lock(7)
			counter++
			unlock()
			done <- struct{}{}
		}()
	}

	for i := 0; i < 50; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("goroutine did not finish; lock not released?")
		}
	}

	if counter != 50 {
		t.Errorf("counter = %d, want 50", counter)
	}
}
