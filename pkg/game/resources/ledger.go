// Package resources tracks the station's power, oxygen and health totals.
package resources

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Resource names a tracked quantity.
type Resource string

// Known resources
const (
	Power  Resource = "power"
	Oxygen Resource = "oxygen"
	Health Resource = "health"
)

// All returns every known resource in display order
func All() []Resource {
	return []Resource{Power, Oxygen, Health}
}

// Parse returns the resource with the given name
func Parse(name string) (Resource, bool) {
	for _, r := range All() {
		if string(r) == name {
			return r, true
		}
	}
	return "", false
}

// ErrInsufficient is returned by Deduct when a total is below the requested amount.
var ErrInsufficient = errors.New("insufficient resources")

// Amounts maps resources to quantities. A missing entry is zero.
type Amounts map[Resource]float64

// IsZero returns true if every entry is zero
func (a Amounts) IsZero() bool {
	for _, v := range a {
		if v != 0 {
			return false
		}
	}
	return true
}

// Clone returns an independent copy
func (a Amounts) Clone() Amounts {
	out := make(Amounts, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// String formats the amounts as "oxygen:25 power:100" in name order
func (a Amounts) String() string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%g", k, a[Resource(k)]))
	}
	return strings.Join(parts, " ")
}

// Ledger holds the player's current resource totals. A capacity of zero means uncapped.
type Ledger struct {
	totals   Amounts
	capacity Amounts
}

// NewLedger creates a ledger with the given starting totals and capacities
func NewLedger(initial, capacity Amounts) *Ledger {
	l := &Ledger{totals: Amounts{}, capacity: Amounts{}}
	for k, v := range capacity {
		l.capacity[k] = v
	}
	for k, v := range initial {
		l.totals[k] = v
	}
	return l
}

// Get returns the current total of r
func (l *Ledger) Get(r Resource) float64 {
	return l.totals[r]
}

// Capacity returns the cap for r, or zero when uncapped
func (l *Ledger) Capacity(r Resource) float64 {
	return l.capacity[r]
}

// Totals returns a copy of every total
func (l *Ledger) Totals() Amounts {
	return l.totals.Clone()
}

// Add increases r by amount, clamped to its capacity
func (l *Ledger) Add(r Resource, amount float64) {
	v := l.totals[r] + amount
	if limit := l.capacity[r]; limit > 0 && v > limit {
		v = limit
	}
	l.totals[r] = v
}

// Consume takes amount of r. When the total cannot cover it the total drops to zero and
// Consume returns false.
func (l *Ledger) Consume(r Resource, amount float64) bool {
	if l.totals[r] >= amount {
		l.totals[r] -= amount
		return true
	}
	l.totals[r] = 0
	return false
}

// Percentage returns r as a percentage of its capacity, or 0 when uncapped
func (l *Ledger) Percentage(r Resource) float64 {
	limit := l.capacity[r]
	if limit <= 0 {
		return 0
	}
	return l.totals[r] / limit * 100
}

// CanAfford returns true if every total covers the matching cost
func (l *Ledger) CanAfford(cost Amounts) bool {
	for r, v := range cost {
		if l.totals[r] < v {
			return false
		}
	}
	return true
}

// Deduct subtracts cost from the totals. It changes nothing and returns ErrInsufficient
// when any total is short.
func (l *Ledger) Deduct(cost Amounts) error {
	if !l.CanAfford(cost) {
		return fmt.Errorf("%w: have %v, need %v", ErrInsufficient, l.totals, cost)
	}
	for r, v := range cost {
		l.totals[r] -= v
	}
	return nil
}

// Refund adds cost back without clamping, undoing a Deduct exactly.
func (l *Ledger) Refund(cost Amounts) {
	for r, v := range cost {
		l.totals[r] += v
	}
}
