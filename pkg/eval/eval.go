// Package eval implements the static position evaluator: a sum of named
// material, safety and positional terms, white-positive.
package eval

import (
	"github.com/corvidlabs/negamax/pkg/coord"
	"github.com/corvidlabs/negamax/pkg/piece"
	"github.com/corvidlabs/negamax/pkg/position"
)

// Score is a white-positive integer position score. Evaluate assumes the
// position is not terminal; checkmate/stalemate adjudication happens in
// pkg/search.
type Score int

// NominalValue is the material value of a piece kind, white-positive table
// per spec 4.5. The king's value is nominal (never traded) but included so
// a king capture -- which cannot occur under legal play -- would dominate
// any other term if it ever did.
func NominalValue(k piece.Kind) Score {
	switch k {
	case piece.King:
		return 20000
	case piece.Queen:
		return 900
	case piece.Rook:
		return 500
	case piece.Bishop:
		return 330
	case piece.Knight:
		return 320
	case piece.Pawn:
		return 100
	default:
		return 0
	}
}

const (
	checkBonus      Score = 30
	castlingBonus   Score = 1
	kingGuardBonus  Score = 10
	innerCenterBonus Score = 5
	outerCenterBonus Score = 2
)

// Evaluate returns the static score of p from White's perspective.
func Evaluate(p *position.Position) Score {
	var s Score

	s += material(p)
	s += checkTerm(p)
	s += castlingTerm(p)
	s += kingGuardTerm(p)
	s += centralOccupationTerm(p)

	return s
}

func material(p *position.Position) Score {
	var s Score
	for _, c := range []piece.Color{piece.White, piece.Black} {
		sign := Score(1)
		if c == piece.Black {
			sign = -1
		}
		for _, sq := range p.PieceList(c).Squares() {
			s += sign * NominalValue(p.Get(sq).Kind)
		}
	}
	return s
}

// checkTerm: White in check is a penalty for White (-30); Black in check is
// a bonus for White (+30), per spec 4.5's literal sign convention.
func checkTerm(p *position.Position) Score {
	var s Score
	if p.IsChecked(piece.White) {
		s -= checkBonus
	}
	if p.IsChecked(piece.Black) {
		s += checkBonus
	}
	return s
}

func castlingTerm(p *position.Position) Score {
	rights := p.Castling()
	var s Score
	for _, w := range []position.Wing{position.KingSide, position.QueenSide} {
		if rights.Has(piece.White, w) {
			s += castlingBonus
		}
		if rights.Has(piece.Black, w) {
			s -= castlingBonus
		}
	}
	return s
}

var kingNeighborOffsets = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

// kingGuardTerm rewards friendly pieces adjacent to their own king.
func kingGuardTerm(p *position.Position) Score {
	var s Score
	for _, c := range []piece.Color{piece.White, piece.Black} {
		sign := Score(1)
		if c == piece.Black {
			sign = -1
		}
		king := p.KingSquare(c)
		if king.IsNull() {
			continue
		}
		for _, d := range kingNeighborOffsets {
			n := king.Add(d[0], d[1])
			if !n.IsValid() {
				continue
			}
			if sq := p.Get(n); !sq.IsEmpty() && sq.Color == c {
				s += sign * kingGuardBonus
			}
		}
	}
	return s
}

// centralOccupationTerm scores pieces inside the files 2-5, ranks 2-5 region:
// the inner 2x2 (files 3-4, ranks 3-4) scores +/-5, the surrounding 12
// squares of that 4x4 region score +/-2.
func centralOccupationTerm(p *position.Position) Score {
	var s Score
	for f := coord.File(2); f <= 5; f++ {
		for r := coord.Rank(2); r <= 5; r++ {
			sq := p.Get(coord.New(f, r))
			if sq.IsEmpty() {
				continue
			}
			bonus := outerCenterBonus
			if f >= 3 && f <= 4 && r >= 3 && r <= 4 {
				bonus = innerCenterBonus
			}
			if sq.Color == piece.White {
				s += bonus
			} else {
				s -= bonus
			}
		}
	}
	return s
}
