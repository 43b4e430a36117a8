// Package search implements the negamax alpha-beta search with transposition
// table cutoffs and time-budgeted iterative deepening (spec 4.8, 4.9).
package search

import (
	"context"
	"time"

	"github.com/corvidlabs/negamax/pkg/eval"
	"github.com/corvidlabs/negamax/pkg/order"
	"github.com/corvidlabs/negamax/pkg/piece"
	"github.com/corvidlabs/negamax/pkg/position"
	"github.com/corvidlabs/negamax/pkg/rules"
	"github.com/corvidlabs/negamax/pkg/tt"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Aborted is the sentinel value negamax returns when the wall-clock search
// budget (or context cancellation) is observed mid-search. It is chosen far
// outside the legitimate score range so a caller that forgets to check for
// it will see an implausible blowout rather than a quietly wrong move, and
// so it is always safe to compare against without risk of colliding with a
// real evaluation.
const Aborted = -(1 << 61)

// Mate is the score magnitude returned for a checkmate of the side to move.
const Mate = 1000000

// Inf bounds the initial alpha-beta window; strictly greater than Mate so a
// forced mate is never clipped by the window itself.
const Inf = Mate + Mate

// Budget bounds how long a single negamax call tree may run before it
// starts returning Aborted, checked at every recursive entry (spec 5,
// "negamax itself does not suspend; it polls time at every recursive
// entry").
type Budget struct {
	Start time.Time
	Limit time.Duration
}

func (b Budget) expired() bool {
	return b.Limit > 0 && time.Since(b.Start) >= b.Limit
}

// Negamax evaluates p to the given depth from the side-to-move's
// perspective: higher is better for whoever is on move. alpha and beta are
// the search window in that same perspective. zt may be nil only for
// scratch legality probes elsewhere; a live search always threads a real
// Zobrist table through so TT hashes line up.
func Negamax(ctx context.Context, table *tt.Table, zt *position.ZobristTable, p *position.Position, alpha, beta, depth int, budget Budget) int {
	alphaInitial := alpha

	hash := p.Hash()
	entry := table.Get(hash)
	if !entry.IsNull() && entry.Depth >= depth {
		switch entry.Bound {
		case tt.Exact:
			return entry.Value
		case tt.Lower:
			if entry.Value > alpha {
				alpha = entry.Value
			}
		case tt.Upper:
			if entry.Value < beta {
				beta = entry.Value
			}
		}
		if alpha >= beta {
			return entry.Value
		}
	}

	side := p.Turn()
	legal := rules.LegalMoves(p, side)
	if len(legal) == 0 {
		if p.IsChecked(side) {
			return -Mate
		}
		return 0 // stalemate
	}

	if depth == 0 {
		sign := 1
		if side == piece.Black {
			sign = -1
		}
		return int(eval.Evaluate(p)) * sign
	}

	if budget.expired() || contextx.IsCancelled(ctx) {
		return Aborted
	}

	ordered := order.Moves(entry.Move, legal)

	best := -Inf
	var bestMove position.Move
	bound := tt.Upper

	for _, m := range ordered {
		child := p.Copy()
		rules.MakeMove(zt, child, m, true)

		v := Negamax(ctx, table, zt, child, -beta, -alpha, depth-1, budget)
		if v == Aborted {
			return Aborted
		}
		v = -v

		if v > best {
			best = v
			bestMove = m
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			bound = tt.Lower
			break
		}
	}

	if bound != tt.Lower {
		if best <= alphaInitial {
			bound = tt.Upper
		} else {
			bound = tt.Exact
		}
	}

	table.Put(tt.Entry{Hash: hash, Move: bestMove, Depth: depth, Value: best, Bound: bound})
	return best
}
