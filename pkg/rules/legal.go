package rules

import (
	"github.com/corvidlabs/negamax/pkg/piece"
	"github.com/corvidlabs/negamax/pkg/position"
)

// IsPossible reports whether m matches a pseudo-legal candidate generated
// for the piece on m.From: correct shape, unobstructed path, and (for
// castling) unobstructed/unattacked intervening squares. It does not check
// whose turn it is, nor whether the move leaves the mover's own king
// attacked -- that composition is IsLegal's job (spec 4.3).
func IsPossible(p *position.Position, m position.Move) bool {
	from := p.Get(m.From)
	if from.IsEmpty() {
		return false
	}
	for _, c := range candidates(p, from.Color, m.From) {
		if c.Equals(m) {
			return true
		}
	}
	return false
}

// IsLegal composes the six criteria of spec 4.3:
//  1. IsPossible(m)
//  2. the target square does not hold a king
//  3. the mover's color equals the side to move
//  4. pawn-specific checks (en passant target/rank, double-push path,
//     non-capturing push onto an empty square) -- enforced by generation
//     and re-checked here via IsPossible against the current board
//  5. castling requires the corresponding availability flag -- enforced by
//     generation
//  6. applying the move does not leave the mover's own king attacked
//
// Castling is also rejected when the king's starting square is attacked,
// which criterion 6 alone (looking only at the destination) does not catch.
// IsLegal never mutates p: criterion 6 is checked against a scratch copy.
func IsLegal(p *position.Position, m position.Move) bool {
	if !IsPossible(p, m) {
		return false
	}
	mover := p.Get(m.From)
	target := p.Get(m.To)
	if target.Kind == piece.King {
		return false
	}
	if mover.Color != p.Turn() {
		return false
	}
	if mover.Kind == piece.King && (m.To.File-m.From.File == 2 || m.From.File-m.To.File == 2) &&
		p.IsAttacked(mover.Color, m.From) {
		return false // castling out of check
	}

	scratch := p.Copy()
	MakeMove(nil, scratch, m, false)
	return !scratch.IsChecked(mover.Color)
}

// LegalMoves filters PseudoLegalMoves(p, side) down to the legal subset.
func LegalMoves(p *position.Position, side piece.Color) []position.Move {
	var ret []position.Move
	for _, m := range PseudoLegalMoves(p, side) {
		if IsLegal(p, m) {
			ret = append(ret, m)
		}
	}
	return ret
}
