package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/capitania/consimar/internal/domain"
)

// CountdownTracker keeps the remaining authorized seconds-at-sea for every
// despatched vessel, keyed by folio. The map is purely local ephemeral
// state: Refresh rebuilds it wholesale from the stored departure timestamp
// and authorized duration, never from previous in-memory values, so a long
// running tick loop cannot drift from the authoritative data.
type CountdownTracker struct {
	mu        sync.RWMutex
	remaining map[string]int64
}

func NewCountdownTracker() *CountdownTracker {
	return &CountdownTracker{remaining: map[string]int64{}}
}

// RemainingAt derives the remaining seconds for a vessel at the given
// instant, floored at zero.
func RemainingAt(v domain.Vessel, now time.Time) int64 {
	end := v.FechaHoraSalida.Add(time.Duration(v.TiempoDespacho) * time.Second)
	left := end.Sub(now) / time.Second
	if left < 0 {
		return 0
	}
	return int64(left)
}

// Refresh replaces the tracked set from the authoritative vessel list.
// Only despatched vessels are tracked; entries for vessels that arrived
// (or disappeared) are dropped.
func (t *CountdownTracker) Refresh(vessels []domain.Vessel, now time.Time) {
	updated := make(map[string]int64, len(vessels))
	for _, v := range vessels {
		if v.Estado != domain.StateDespachada || v.FechaHoraSalida.IsZero() || v.TiempoDespacho <= 0 {
			continue
		}
		updated[v.Folio] = RemainingAt(v, now)
	}

	t.mu.Lock()
	t.remaining = updated
	t.mu.Unlock()
}

// Track initializes the countdown for a freshly despatched folio.
func (t *CountdownTracker) Track(folio string, seconds int64) {
	if seconds < 0 {
		seconds = 0
	}
	t.mu.Lock()
	t.remaining[folio] = seconds
	t.mu.Unlock()
}

// Remove stops tracking a folio once its arrival is recorded.
func (t *CountdownTracker) Remove(folio string) {
	t.mu.Lock()
	delete(t.remaining, folio)
	t.mu.Unlock()
}

// Remaining returns the tracked value for a folio. The boolean is false
// for untracked folios, which render as "Calculando..." rather than 0.
func (t *CountdownTracker) Remaining(folio string) (int64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	left, ok := t.remaining[folio]
	return left, ok
}

// Snapshot copies the tracked map for presentation.
func (t *CountdownTracker) Snapshot() map[string]int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]int64, len(t.remaining))
	for folio, left := range t.remaining {
		out[folio] = left
	}
	return out
}

// Tick decrements every tracked entry by one second, flooring at zero.
// Entries that reach zero stay tracked: "Vencido" is a state of its own,
// distinct from not-yet-computed.
func (t *CountdownTracker) Tick() {
	t.mu.Lock()
	for folio, left := range t.remaining {
		if left > 0 {
			t.remaining[folio] = left - 1
		}
	}
	t.mu.Unlock()
}

// Run ticks once per second until the context is cancelled.
func (t *CountdownTracker) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Tick()
		}
	}
}

// Band classifies a folio's remaining time for presentation.
func (t *CountdownTracker) Band(folio string) domain.TimeBand {
	left, ok := t.Remaining(folio)
	return BandFor(left, ok)
}

// BandFor maps a remaining value to its presentation band.
func BandFor(remaining int64, tracked bool) domain.TimeBand {
	switch {
	case !tracked:
		return domain.BandUnknown
	case remaining <= 0:
		return domain.BandExpired
	case remaining <= domain.CriticalThresholdSeconds:
		return domain.BandCritical
	default:
		return domain.BandNormal
	}
}
