package router

import (
	"sync"
	"time"
)

// cooldownTable tracks the last accepted invocation per (user, command).
// Entries live only in memory and are dropped on restart.
type cooldownTable struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time
}

func newCooldownTable(window time.Duration) *cooldownTable {
	return &cooldownTable{
		window: window,
		last:   make(map[string]time.Time),
	}
}

// Allow reports whether an invocation is accepted. On acceptance the
// timestamp is recorded; on rejection it is left untouched, so a burst of
// rejected calls does not extend the cooldown.
func (t *cooldownTable) Allow(userID, command string, now time.Time) bool {
	if t.window <= 0 {
		return true
	}
	key := userID + "\x00" + command

	t.mu.Lock()
	defer t.mu.Unlock()

	if last, ok := t.last[key]; ok && now.Sub(last) < t.window {
		return false
	}
	t.last[key] = now
	return true
}
