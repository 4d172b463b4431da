package counters

// CounterType represents a type of counter tracked on a permanent.
type CounterType string

const (
	// CounterTypeLore counts up on sagas: one counter per chapter resolved.
	CounterTypeLore CounterType = "lore"
	// CounterTypeTime counts down on impending creatures: the permanent is a
	// non-creature until the last time counter is removed. Distinct from lore
	// even though both ride the same storage, so end-step countdown can never
	// touch a saga's chapter count.
	CounterTypeTime CounterType = "time"
)

// String returns the string representation of the counter type.
func (ct CounterType) String() string {
	return string(ct)
}

// Counters manages the counters on a single permanent.
type Counters struct {
	counts map[CounterType]int
}

// NewCounters creates a new empty counter collection.
func NewCounters() *Counters {
	return &Counters{
		counts: make(map[CounterType]int),
	}
}

// Add adds the specified amount of counters. Non-positive amounts are ignored.
func (cs *Counters) Add(ct CounterType, amount int) {
	if amount <= 0 {
		return
	}
	cs.counts[ct] += amount
}

// Remove removes up to the specified amount of counters, never going below
// zero. Returns true if any counters were removed.
func (cs *Counters) Remove(ct CounterType, amount int) bool {
	if amount <= 0 {
		return false
	}
	current, ok := cs.counts[ct]
	if !ok || current == 0 {
		return false
	}
	if current <= amount {
		delete(cs.counts, ct)
	} else {
		cs.counts[ct] = current - amount
	}
	return true
}

// Count returns the number of counters of the given type.
func (cs *Counters) Count(ct CounterType) int {
	return cs.counts[ct]
}

// Has returns true if there is at least one counter of the given type.
func (cs *Counters) Has(ct CounterType) bool {
	return cs.counts[ct] > 0
}

// Copy creates a deep copy of the counter collection.
func (cs *Counters) Copy() *Counters {
	c := NewCounters()
	for ct, n := range cs.counts {
		c.counts[ct] = n
	}
	return c
}
