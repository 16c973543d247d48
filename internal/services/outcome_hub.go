package services

import (
	"sync"

	"github.com/pokerdesk/club_ledger/internal/models"
	"github.com/pokerdesk/club_ledger/pkg/logger"
)

// OutcomeHub fans settlement events out to subscribers as ordered snapshots.
// Slow subscribers get events dropped rather than blocking settlement; a
// subscriber that misses events should re-read the outcome table, which is
// the source of truth.
type OutcomeHub struct {
	mu          sync.RWMutex
	subscribers map[chan models.SessionOutcome]struct{}
	log         *logger.Logger
	closed      bool
}

func NewOutcomeHub(log *logger.Logger) *OutcomeHub {
	return &OutcomeHub{
		subscribers: make(map[chan models.SessionOutcome]struct{}),
		log:         log,
	}
}

// Subscribe registers a buffered channel that receives settlement outcomes
// in publish order. The returned cancel func must be called when done.
func (h *OutcomeHub) Subscribe() (<-chan models.SessionOutcome, func()) {
	ch := make(chan models.SessionOutcome, 64)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the outcome to every subscriber without blocking.
func (h *OutcomeHub) Publish(outcome models.SessionOutcome) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	for ch := range h.subscribers {
		select {
		case ch <- outcome:
		default:
			h.log.Warn("outcome event dropped - subscriber buffer full",
				"player_id", outcome.PlayerID)
		}
	}
}

// Close shuts the hub down and closes all subscriber channels.
func (h *OutcomeHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subscribers {
		delete(h.subscribers, ch)
		close(ch)
	}
}
