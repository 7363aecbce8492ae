// internal/team/locks.go
package team

import (
	"sync"

	"github.com/google/uuid"
)

// teamLocks serializes every read-modify-write on one team. Mutators
// operate over the whole aggregate, so concurrent installs on one car
// or concurrent purchases against one budget would otherwise lose
// updates. Different teams lock independently.
type teamLocks struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*sync.Mutex
}

func newTeamLocks() *teamLocks {
	return &teamLocks{byID: make(map[uuid.UUID]*sync.Mutex)}
}

// lock acquires the per-team mutex and returns its unlock function.
func (l *teamLocks) lock(id uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.byID[id]
	if !ok {
		m = &sync.Mutex{}
		l.byID[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// forget drops the mutex of a deleted team.
func (l *teamLocks) forget(id uuid.UUID) {
	l.mu.Lock()
	delete(l.byID, id)
	l.mu.Unlock()
}
