package bills

import "time"

// passGuard is a single-slot semaphore serializing processing passes within
// this process. Release is deferred by a cooldown so rapid repeated triggers
// from the same data change collapse into one pass. It is advisory only:
// cross-process double-payment is prevented by the atomic primitive, not by
// this guard.
type passGuard struct {
	slot     chan struct{}
	cooldown time.Duration
}

func newPassGuard(cooldown time.Duration) *passGuard {
	g := &passGuard{
		slot:     make(chan struct{}, 1),
		cooldown: cooldown,
	}
	g.slot <- struct{}{}
	return g
}

// tryAcquire takes the slot without blocking. Returns false when a pass is
// already in flight or cooling down.
func (g *passGuard) tryAcquire() bool {
	select {
	case <-g.slot:
		return true
	default:
		return false
	}
}

// releaseAfterCooldown returns the slot after the cooldown window elapses.
func (g *passGuard) releaseAfterCooldown() {
	time.AfterFunc(g.cooldown, func() {
		g.slot <- struct{}{}
	})
}
