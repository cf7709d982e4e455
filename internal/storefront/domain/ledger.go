package domain

// Ledger maps product id to remaining available quantity. It is the single
// gate for cart additions: one unit leaves the ledger per unit reserved into
// the cart and comes back per unit released. Quantities never go negative.
//
// Ledger is not safe for concurrent use; the reconciliation engine serializes
// access to it.
type Ledger struct {
	levels map[string]int
}

// NewLedger copies levels into a fresh ledger. Negative values (a corrupt
// persisted map) are clamped to zero so the no-negative invariant holds from
// the start.
func NewLedger(levels map[string]int) *Ledger {
	l := &Ledger{levels: make(map[string]int, len(levels))}
	for id, qty := range levels {
		if qty < 0 {
			qty = 0
		}
		l.levels[id] = qty
	}
	return l
}

// Get reports the available quantity; unknown ids read as zero.
func (l *Ledger) Get(productID string) int {
	return l.levels[productID]
}

// Reserve takes one unit. It fails with ErrOutOfStock on a zero-quantity
// product and mutates nothing in that case.
func (l *Ledger) Reserve(productID string) error {
	if l.levels[productID] <= 0 {
		return ErrOutOfStock
	}
	l.levels[productID]--
	return nil
}

// Release returns one unit to the ledger. Always succeeds.
func (l *Ledger) Release(productID string) {
	l.levels[productID]++
}

// ReleaseQuantity returns qty units in one step, used when a whole cart line
// is removed. Non-positive quantities are ignored.
func (l *Ledger) ReleaseQuantity(productID string, qty int) {
	if qty <= 0 {
		return
	}
	l.levels[productID] += qty
}

// Levels returns a copy of the full map for persistence and snapshots.
func (l *Ledger) Levels() map[string]int {
	out := make(map[string]int, len(l.levels))
	for id, qty := range l.levels {
		out[id] = qty
	}
	return out
}
