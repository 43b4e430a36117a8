package search

import (
	"context"

	"github.com/corvidlabs/negamax/pkg/pool"
	"github.com/corvidlabs/negamax/pkg/position"
	"github.com/corvidlabs/negamax/pkg/tt"
)

// RootSearch runs Negamax over the full [-Inf, Inf] window at depth and
// additionally writes an Exact entry at p's hash with the best move found,
// so the next iteration's move ordering (and the engine facade's poll) can
// read it back regardless of what bound the inner search settled on (spec
// 4.9). Returns the aborted flag separately from the score so callers never
// mistake the Aborted sentinel for a legitimate (if coincidentally equal)
// evaluation.
func RootSearch(ctx context.Context, table *tt.Table, zt *position.ZobristTable, p *position.Position, depth int, budget Budget) (value int, move position.Move, aborted bool) {
	hash := p.Hash()

	value = Negamax(ctx, table, zt, p, -Inf, Inf, depth, budget)
	if value == Aborted {
		return 0, position.NullMove, true
	}

	mv := table.Get(hash).Move
	table.Put(tt.Entry{Hash: hash, Move: mv, Depth: depth, Value: value, Bound: tt.Exact})
	return value, mv, false
}

// IterativeDeepening dispatches a RootSearch task for every depth 1..maxDepth
// onto wp (spec 4.9). Because the transposition table is shared, tasks
// dispatched for later depths benefit from earlier tasks' entries and PV
// moves regardless of scheduling order (Lazy SMP) -- there is no ordering
// guarantee among them (spec 5). The root position is shared by every
// dispatched task via a single pointer, read-only; Go's garbage collector
// frees it once the last task drops its reference, so there is no explicit
// reference count. Each task generates its own legal moves; no move buffer
// is shared.
//
// IterativeDeepening blocks until every dispatched task has completed or
// been aborted by the time budget; the facade polls the table afterwards
// for the deepest completed entry at root's hash.
func IterativeDeepening(ctx context.Context, wp *pool.Pool, table *tt.Table, zt *position.ZobristTable, root *position.Position, maxDepth int, budget Budget) {
	for depth := 1; depth <= maxDepth; depth++ {
		d := depth
		wp.Submit(func() {
			RootSearch(ctx, table, zt, root, d, budget)
		})
	}
	wp.Wait()
}
