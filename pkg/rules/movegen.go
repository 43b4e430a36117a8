// Package rules implements pseudo-legal move generation, attack-based
// legality checking, and the state mutator that applies a move to a
// position. Legality checks never mutate the caller's position: candidate
// moves are validated against a scratch copy.
package rules

import (
	"github.com/corvidlabs/negamax/pkg/coord"
	"github.com/corvidlabs/negamax/pkg/piece"
	"github.com/corvidlabs/negamax/pkg/position"
)

var knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
var kingOffsets = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// PseudoLegalMoves generates all pseudo-legal moves for side in p: shape,
// blocking and castling-path constraints are honored, but a move that
// leaves the mover's own king attacked is not excluded here. At most 27
// destinations are generated per piece (a queen on an open board).
func PseudoLegalMoves(p *position.Position, side piece.Color) []position.Move {
	var ret []position.Move
	for _, from := range p.PieceList(side).Squares() {
		ret = append(ret, candidates(p, side, from)...)
	}
	return ret
}

func candidates(p *position.Position, side piece.Color, from coord.Coord) []position.Move {
	sq := p.Get(from)
	switch sq.Kind {
	case piece.King:
		return kingCandidates(p, side, from)
	case piece.Queen:
		return sliderCandidates(p, side, from, append(append([][2]int{}, bishopDirs[:]...), rookDirs[:]...))
	case piece.Rook:
		return sliderCandidates(p, side, from, rookDirs[:])
	case piece.Bishop:
		return sliderCandidates(p, side, from, bishopDirs[:])
	case piece.Knight:
		return jumpCandidates(p, side, from, knightOffsets[:])
	case piece.Pawn:
		return pawnCandidates(p, side, from)
	default:
		return nil
	}
}

func classify(p *position.Position, to coord.Coord) (position.MoveType, piece.Kind) {
	if p.IsEmpty(to) {
		return position.Normal, piece.Empty
	}
	return position.Capture, p.Get(to).Kind
}

func jumpCandidates(p *position.Position, side piece.Color, from coord.Coord, offsets [][2]int) []position.Move {
	var ret []position.Move
	for _, d := range offsets {
		to := from.Add(d[0], d[1])
		if !to.IsValid() {
			continue
		}
		if s := p.Get(to); !s.IsEmpty() && s.Color == side {
			continue // cannot capture own piece
		}
		typ, cap := classify(p, to)
		ret = append(ret, position.Move{From: from, To: to, Type: typ, Capture: cap})
	}
	return ret
}

func sliderCandidates(p *position.Position, side piece.Color, from coord.Coord, dirs [][2]int) []position.Move {
	var ret []position.Move
	for _, d := range dirs {
		to := from.Add(d[0], d[1])
		for to.IsValid() {
			s := p.Get(to)
			if !s.IsEmpty() && s.Color == side {
				break // blocked by own piece
			}
			typ, cap := classify(p, to)
			ret = append(ret, position.Move{From: from, To: to, Type: typ, Capture: cap})
			if !s.IsEmpty() {
				break // blocked by captured enemy piece; ray stops here
			}
			to = to.Add(d[0], d[1])
		}
	}
	return ret
}

func kingCandidates(p *position.Position, side piece.Color, from coord.Coord) []position.Move {
	ret := jumpCandidates(p, side, from, kingOffsets[:])
	ret = append(ret, castlingCandidates(p, side, from)...)
	return ret
}

// homeRank returns the back rank for color c (White: 7, Black: 0, per the
// top-origin engine coordinate convention).
func homeRank(c piece.Color) coord.Rank {
	if c == piece.White {
		return 7
	}
	return 0
}

// castlingCandidates generates 0, 1 or 2 castling moves. Per spec's
// documented ambiguity (see DESIGN.md Open Question 1), the king's own
// starting square is deliberately NOT checked for attack here; only the
// squares it passes over or lands on are. The b-file is exempt from the
// queenside attack check (it is never the king's square), per Open
// Question 2.
func castlingCandidates(p *position.Position, side piece.Color, from coord.Coord) []position.Move {
	rank := homeRank(side)
	if from != coord.New(4, rank) {
		return nil // king not on its home square; cannot castle regardless of rights
	}

	var ret []position.Move

	if p.Castling().Has(side, position.KingSide) {
		f, g := coord.New(5, rank), coord.New(6, rank)
		if p.IsEmpty(f) && p.IsEmpty(g) &&
			!p.IsAttacked(side, f) && !p.IsAttacked(side, g) {
			ret = append(ret, position.Move{From: from, To: g, Type: position.KingSideCastle})
		}
	}
	if p.Castling().Has(side, position.QueenSide) {
		b, c, d := coord.New(1, rank), coord.New(2, rank), coord.New(3, rank)
		if p.IsEmpty(b) && p.IsEmpty(c) && p.IsEmpty(d) &&
			!p.IsAttacked(side, c) && !p.IsAttacked(side, d) {
			ret = append(ret, position.Move{From: from, To: c, Type: position.QueenSideCastle})
		}
	}
	return ret
}

// CastlingRookMove returns the rook's from/to squares for a castling move.
func CastlingRookMove(side piece.Color, typ position.MoveType) (from, to coord.Coord) {
	rank := homeRank(side)
	if typ == position.KingSideCastle {
		return coord.New(7, rank), coord.New(5, rank)
	}
	return coord.New(0, rank), coord.New(3, rank)
}

func pawnCandidates(p *position.Position, side piece.Color, from coord.Coord) []position.Move {
	var ret []position.Move

	fwd := -1
	startRank := coord.Rank(6)
	lastRank := coord.Rank(0)
	epRank := coord.Rank(2) // square an en-passant capture lands on
	if side == piece.Black {
		fwd = 1
		startRank = 1
		lastRank = 7
		epRank = 5
	}

	push := from.Add(0, fwd)
	if push.IsValid() && p.IsEmpty(push) {
		ret = append(ret, pawnMove(from, push, position.Push, piece.Empty, lastRank))

		if from.Rank == startRank {
			jump := from.Add(0, 2*fwd)
			if jump.IsValid() && p.IsEmpty(jump) {
				ret = append(ret, position.Move{From: from, To: jump, Type: position.Jump})
			}
		}
	}

	for _, df := range []int{-1, 1} {
		to := from.Add(df, fwd)
		if !to.IsValid() {
			continue
		}
		if s := p.Get(to); !s.IsEmpty() {
			if s.Color != side {
				ret = append(ret, pawnMove(from, to, position.Capture, s.Kind, lastRank))
			}
			continue
		}
		// Square empty: only legal as an en-passant capture.
		if epFile, ok := p.EnPassantFile(side); ok && to.File == epFile && to.Rank == epRank {
			ret = append(ret, position.Move{From: from, To: to, Type: position.EnPassant, Capture: piece.Pawn})
		}
	}
	return ret
}

func pawnMove(from, to coord.Coord, base position.MoveType, capture piece.Kind, lastRank coord.Rank) position.Move {
	if to.Rank == lastRank {
		if base == position.Capture {
			return position.Move{From: from, To: to, Type: position.CapturePromotion, Capture: capture}
		}
		return position.Move{From: from, To: to, Type: position.Promotion}
	}
	return position.Move{From: from, To: to, Type: base, Capture: capture}
}

// EnPassantCaptureSquare returns the square of the pawn captured by an
// en-passant move m made by side.
func EnPassantCaptureSquare(side piece.Color, m position.Move) coord.Coord {
	back := -1
	if side == piece.White {
		back = 1
	}
	return m.To.Add(0, back)
}
