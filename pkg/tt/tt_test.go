package tt_test

import (
	"sync"
	"testing"

	"github.com/corvidlabs/negamax/pkg/coord"
	"github.com/corvidlabs/negamax/pkg/position"
	"github.com/corvidlabs/negamax/pkg/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func move(from, to string) position.Move {
	f, _ := coord.ParseSquare(from)
	t, _ := coord.ParseSquare(to)
	return position.Move{From: f, To: t}
}

func TestGetMiss(t *testing.T) {
	table := tt.New(16)
	e := table.Get(0xABCD)
	assert.True(t, e.IsNull())
}

func TestPutGetRoundTrip(t *testing.T) {
	table := tt.New(16)
	e := tt.Entry{Hash: 7, Move: move("e2", "e4"), Depth: 3, Value: 42, Bound: tt.Exact}

	require.True(t, table.Put(e))

	got := table.Get(7)
	assert.Equal(t, e, got)
}

func TestPutReplacementDepthPolicy(t *testing.T) {
	table := tt.New(16)
	e1 := tt.Entry{Hash: 7, Move: move("e2", "e4"), Depth: 5, Value: 1, Bound: tt.Exact}
	require.True(t, table.Put(e1))

	// Shallower write to the same hash is rejected.
	e2 := tt.Entry{Hash: 7, Move: move("d2", "d4"), Depth: 2, Value: 2, Bound: tt.Exact}
	assert.False(t, table.Put(e2))
	assert.Equal(t, e1, table.Get(7))

	// Equal-or-deeper write replaces.
	e3 := tt.Entry{Hash: 7, Move: move("d2", "d4"), Depth: 5, Value: 3, Bound: tt.Exact}
	assert.True(t, table.Put(e3))
	assert.Equal(t, e3, table.Get(7))
}

func TestPutCollisionWithoutProtection(t *testing.T) {
	table := tt.New(2) // mask = 1, so hash 0 and hash 2 collide in slot 0.
	e1 := tt.Entry{Hash: 0, Move: move("e2", "e4"), Depth: 1, Bound: tt.Exact}
	require.True(t, table.Put(e1))

	e2 := tt.Entry{Hash: 2, Move: move("d2", "d4"), Depth: 1, Bound: tt.Exact}
	assert.True(t, table.Put(e2)) // unprotected collision is replaced
	assert.Equal(t, e2, table.Get(2))
}

func TestProtectedHashResistsForeignEviction(t *testing.T) {
	table := tt.New(2)
	root := uint64(0)
	table.SetProtected(root)

	// A write for a different hash colliding into the protected slot is rejected.
	foreign := tt.Entry{Hash: 2, Move: move("d2", "d4"), Depth: 9, Bound: tt.Exact}
	assert.False(t, table.Put(foreign))

	// A write for the protected hash itself still succeeds.
	own := tt.Entry{Hash: root, Move: move("e2", "e4"), Depth: 3, Bound: tt.Exact}
	assert.True(t, table.Put(own))
	assert.Equal(t, own, table.Get(root))
}

func TestSetProtectedResetsForeignSlot(t *testing.T) {
	table := tt.New(2)
	foreign := tt.Entry{Hash: 2, Move: move("d2", "d4"), Depth: 9, Bound: tt.Exact}
	require.True(t, table.Put(foreign))

	table.SetProtected(0) // collides into the same slot as hash 2

	// The slot was reset to a seed entry for the newly protected hash: a miss on 2...
	assert.True(t, table.Get(2).IsNull())
	// ...and a null entry (not a stale foreign one) on the protected hash.
	got := table.Get(0)
	assert.True(t, got.IsNull())
	assert.Equal(t, uint64(0), got.Hash)
}

func TestConcurrentAccessNeverReturnsMismatchedHash(t *testing.T) {
	table := tt.New(1 << 10)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				h := uint64(w*500 + i)
				table.Put(tt.Entry{Hash: h, Move: move("e2", "e4"), Depth: 1, Bound: tt.Exact})
				e := table.Get(h)
				if !e.IsNull() {
					assert.Equal(t, h, e.Hash)
				}
			}
		}(w)
	}
	wg.Wait()
}

func TestClearWipesTable(t *testing.T) {
	table := tt.New(16)
	table.Put(tt.Entry{Hash: 3, Move: move("e2", "e4"), Depth: 1, Bound: tt.Exact})
	table.Clear()
	assert.True(t, table.Get(3).IsNull())
}
