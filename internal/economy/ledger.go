// Package economy tracks the tile currency earned from focus sessions
// and spent on placements.
package economy

import "errors"

// ErrInsufficientTiles is returned when a spend exceeds the balance.
var ErrInsufficientTiles = errors.New("economy: insufficient tiles")

// Balance is a point-in-time copy of the ledger counters.
type Balance struct {
	Earned    int // Lifetime tiles credited
	Used      int // Net tiles currently placed
	Available int // Spendable tiles
}

// Ledger holds the tile counters. Available never goes negative.
type Ledger struct {
	earned    int
	used      int
	available int
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Restore replaces the counters with previously persisted values.
// Negative values are clamped to zero.
func (l *Ledger) Restore(b Balance) {
	l.earned = max(0, b.Earned)
	l.used = max(0, b.Used)
	l.available = max(0, b.Available)
}

// Credit awards n tiles. Non-positive n is ignored.
func (l *Ledger) Credit(n int) {
	if n <= 0 {
		return
	}
	l.earned += n
	l.available += n
}

// TrySpend deducts n tiles if the balance covers it.
// On failure nothing changes.
func (l *Ledger) TrySpend(n int) error {
	if n <= 0 {
		return nil
	}
	if l.available < n {
		return ErrInsufficientTiles
	}
	l.available -= n
	l.used += n
	return nil
}

// Refund returns n tiles to the balance.
func (l *Ledger) Refund(n int) {
	if n <= 0 {
		return
	}
	l.available += n
	l.used = max(0, l.used-n)
}

// CanSpend reports whether n tiles are available.
func (l *Ledger) CanSpend(n int) bool {
	return l.available >= n
}

// Earned returns lifetime credited tiles.
func (l *Ledger) Earned() int { return l.earned }

// Used returns tiles currently placed.
func (l *Ledger) Used() int { return l.used }

// Available returns the spendable balance.
func (l *Ledger) Available() int { return l.available }

// Balance returns a copy of all counters.
func (l *Ledger) Balance() Balance {
	return Balance{
		Earned:    l.earned,
		Used:      l.used,
		Available: l.available,
	}
}

// Consistent reports whether available == earned - used.
func (b Balance) Consistent() bool {
	return b.Available == b.Earned-b.Used
}
