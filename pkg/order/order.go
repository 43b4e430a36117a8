// Package order implements move ordering for the negamax search: the
// transposition table's remembered best move first, then captures, then
// quiet moves, each bucket in generation order (spec 4.7).
package order

import "github.com/corvidlabs/negamax/pkg/position"

// Moves reorders moves into PV-first, captures, quiets. pv is
// position.NullMove if there is no remembered best move for this position. The PV move is
// deduplicated out of whichever bucket it would otherwise land in.
func Moves(pv position.Move, moves []position.Move) []position.Move {
	ret := make([]position.Move, 0, len(moves))

	hasPV := !pv.IsNull()
	if hasPV {
		for _, m := range moves {
			if m.Equals(pv) {
				ret = append(ret, m)
				break
			}
		}
	}

	for _, m := range moves {
		if m.IsCapture() && !(hasPV && m.Equals(pv)) {
			ret = append(ret, m)
		}
	}
	for _, m := range moves {
		if !m.IsCapture() && !(hasPV && m.Equals(pv)) {
			ret = append(ret, m)
		}
	}
	return ret
}
