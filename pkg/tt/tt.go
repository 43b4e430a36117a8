// Package tt implements the transposition table: a fixed-size, direct-mapped,
// mutex-serialized cache from Zobrist hash to search result, with a
// protected-hash exemption that shields the current root search from
// concurrent Lazy-SMP eviction.
package tt

import (
	"sync"

	"github.com/corvidlabs/negamax/pkg/position"
)

// Bound classifies how a stored Value relates to the true minimax value.
type Bound uint8

const (
	// Exact is a fully-searched value.
	Exact Bound = iota
	// Upper means the true value is at most Value (a fail-low / alpha cutoff).
	Upper
	// Lower means the true value is at least Value (a fail-high / beta cutoff).
	Lower
)

func (b Bound) String() string {
	switch b {
	case Exact:
		return "Exact"
	case Upper:
		return "Upper"
	case Lower:
		return "Lower"
	default:
		return "?"
	}
}

// DefaultSize is the default slot count, approximately 2^20, per spec 4.6.
const DefaultSize = 1 << 20

// MaxDepth is the sentinel depth written for opening-book hits (spec 4.10):
// large enough that no real search iteration at MAX_DEPTH ever reaches it,
// so the facade always treats a book entry as the authoritative exact value.
const MaxDepth = 1 << 16

// Entry is a single transposition-table record.
type Entry struct {
	Hash  uint64
	Move  position.Move
	Depth int
	Value int
	Bound Bound
}

// IsNull reports whether e is the "no entry" sentinel: depth 0, null move.
func (e Entry) IsNull() bool {
	return e.Depth == 0 && e.Move.IsNull()
}

// nullEntry is the seed/empty-slot value: depth 0 and a NULL from-square,
// distinct from Go's zero Move (which would otherwise name a8-a8).
func nullEntry() Entry {
	return Entry{Move: position.NullMove}
}

// Table is the concurrent transposition table. All operations are
// serialized by a single mutex per spec 4.6 ("All operations are serialized
// by a single mutex"): the protected-hash exemption is a cross-slot
// invariant that a lock-free per-slot CAS (as the teacher's table uses)
// cannot express, so this table trades the teacher's lock-free design for
// the coarser mutex the spec mandates. See DESIGN.md.
type Table struct {
	mu   sync.Mutex
	mask uint64
	slot []Entry

	protected   uint64
	hasProtected bool
}

// New creates a table with the given slot count, rounded down to the
// nearest power of two (minimum 1).
func New(size int) *Table {
	n := 1
	for n*2 <= size {
		n *= 2
	}
	t := &Table{
		mask: uint64(n - 1),
		slot: make([]Entry, n),
	}
	for i := range t.slot {
		t.slot[i] = nullEntry()
	}
	return t
}

func (t *Table) index(hash uint64) uint64 {
	return hash & t.mask
}

// Size returns the slot count.
func (t *Table) Size() int {
	return len(t.slot)
}

// Get returns the entry stored for hash, or the null entry if the slot is
// empty or holds a different hash.
func (t *Table) Get(hash uint64) Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.slot[t.index(hash)]
	if e.Hash != hash {
		return nullEntry()
	}
	return e
}

// Put writes e into its slot per the replacement policy (spec 4.6):
//   - the slot is empty, or
//   - the slot holds the same hash with depth <= e.Depth, or
//   - the slot holds a different hash that is not currently protected.
//
// Returns whether the write happened.
func (t *Table) Put(e Entry) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.index(e.Hash)
	cur := t.slot[i]

	switch {
	case t.hasProtected && t.protected == i && cur.Hash != e.Hash:
		return false // slot is protected for a different hash
	case cur.IsNull():
		t.slot[i] = e
		return true
	case cur.Hash == e.Hash:
		if cur.Depth > e.Depth {
			return false
		}
		t.slot[i] = e
		return true
	default:
		t.slot[i] = e
		return true
	}
}

// Clear zeroes the table wholesale, e.g. when a new game starts.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.slot {
		t.slot[i] = nullEntry()
	}
	t.hasProtected = false
}

// SetProtected marks hash's slot as protected: it may only be replaced by
// another entry with the same hash, per spec 4.6. If the slot currently
// holds a different hash, it is reset to a seed (null) entry carrying the
// new protected hash, so Get(hash) reports a (miss) entry rather than a
// stale collider's value, and subsequent Puts for this hash see an empty
// match rather than a foreign one. This is Open Question 3's pinned
// behavior (see DESIGN.md): SetProtected is the sole entry point that
// changes which hash a slot protects.
func (t *Table) SetProtected(hash uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.index(hash)
	t.protected = i
	t.hasProtected = true

	if t.slot[i].Hash != hash {
		seed := nullEntry()
		seed.Hash = hash
		t.slot[i] = seed
	}
}

// ClearProtected removes the current protection, allowing any hash to
// replace any slot again.
func (t *Table) ClearProtected() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.hasProtected = false
}
