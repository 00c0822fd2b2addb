package realm

import "sync"

// The active realm is a single process-wide slot, the universe identifier
// lookups currently resolve against. Components that need a different
// realm for a bounded operation must switch through Swap so the prior
// value is restored on every exit path.

var (
	currentMu sync.Mutex
	current   *Realm
)

// Current returns the active realm, which may be nil before SetCurrent
// or Swap has ever been called.
func Current() *Realm {
	currentMu.Lock()
	defer currentMu.Unlock()
	return current
}

// SetCurrent sets the active realm without capturing the prior value.
// Use Swap for scoped switches.
func SetCurrent(r *Realm) {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = r
}

// Guard captures the realm that was active at Swap time so it can be
// restored unconditionally.
type Guard struct {
	prior    *Realm
	restored bool
}

// Swap makes r the active realm and returns a guard holding the prior
// one. Callers must arrange Restore on every exit path:
//
//	g := realm.Swap(pluginRealm)
//	defer g.Restore()
func Swap(r *Realm) *Guard {
	currentMu.Lock()
	defer currentMu.Unlock()

	g := &Guard{prior: current}
	current = r
	return g
}

// Restore puts back the realm captured by Swap. It is idempotent, so a
// deferred Restore stays correct if an early explicit Restore was done.
func (g *Guard) Restore() {
	if g.restored {
		return
	}
	g.restored = true

	currentMu.Lock()
	defer currentMu.Unlock()
	current = g.prior
}
