package services

import (
	"sync"
)

// playerLocks hands out one mutex per player so the session state machine
// runs as a single-writer sequence inside this process. The database row
// lock still guards against other writers.
type playerLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newPlayerLocks() *playerLocks {
	return &playerLocks{
		locks: make(map[uint]*sync.Mutex),
	}
}

func (p *playerLocks) lock(playerID uint) func() {
	p.mu.Lock()
	l, ok := p.locks[playerID]
	if !ok {
		l = &sync.Mutex{}
		p.locks[playerID] = l
	}
	p.mu.Unlock()

	l.Lock()
	return l.Unlock
}
