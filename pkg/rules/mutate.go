package rules

import (
	"github.com/corvidlabs/negamax/pkg/coord"
	"github.com/corvidlabs/negamax/pkg/piece"
	"github.com/corvidlabs/negamax/pkg/position"
)

// MakeMove applies m to p in place: en-passant bookkeeping, castling-right
// removal, rook relocation for castling, queen promotion on last-rank
// arrival, piece-list maintenance, side-to-move swap, check-flag
// recomputation and ply increment. If zt is non-nil and computeHash is
// true, the Zobrist hash is rebuilt from scratch; otherwise the hash is set
// to 0, the sentinel for an unhashed scratch state (spec 4.4/4.2 — the
// teacher's incremental Zobrist.Move update is not required, and
// recompute-from-scratch is what spec testable property 1 exercises).
//
// MakeMove assumes m is at least pseudo-legal; it is the caller's
// responsibility (IsLegal, or a verified PseudoLegalMoves entry) to have
// established that.
func MakeMove(zt *position.ZobristTable, p *position.Position, m position.Move, computeHash bool) {
	mover := p.Get(m.From)
	side := mover.Color

	switch m.Type {
	case position.EnPassant:
		captured := EnPassantCaptureSquare(side, m)
		p.Clear(captured)
		p.MovePiece(m.From, m.To)

	case position.Capture, position.CapturePromotion:
		p.Clear(m.To)
		p.MovePiece(m.From, m.To)

	case position.KingSideCastle, position.QueenSideCastle:
		p.MovePiece(m.From, m.To)
		rf, rt := CastlingRookMove(side, m.Type)
		p.MovePiece(rf, rt)

	default:
		p.MovePiece(m.From, m.To)
	}

	if m.Type == position.Promotion || m.Type == position.CapturePromotion {
		p.Clear(m.To)
		p.Put(m.To, side, piece.Queen)
	}

	updateCastlingRights(p, side, m)
	updateEnPassant(p, side, m)

	p.SetTurn(side.Opponent())
	p.RecomputeCheckFlags()
	p.IncPly()

	if computeHash && zt != nil {
		zt.Rehash(p)
	} else {
		p.SetHash(0)
	}
}

func updateEnPassant(p *position.Position, side piece.Color, m position.Move) {
	if m.Type != position.Jump {
		p.ClearEnPassant()
		return
	}
	p.SetEnPassant(side.Opponent(), m.To.File)
}

func updateCastlingRights(p *position.Position, side piece.Color, m position.Move) {
	rights := p.Castling()

	mover := p.Get(m.To) // piece now sits at m.To
	if mover.Kind == piece.King {
		rights = rights.WithoutColor(side)
	}
	if m.From == kingsideRookHome(side) {
		rights = rights.Without(side, position.KingSide)
	}
	if m.From == queensideRookHome(side) {
		rights = rights.Without(side, position.QueenSide)
	}

	// A captured rook on its own starting square loses that side's right,
	// regardless of which color made the capturing move.
	opp := side.Opponent()
	if m.To == kingsideRookHome(opp) && (m.Type == position.Capture || m.Type == position.CapturePromotion) {
		rights = rights.Without(opp, position.KingSide)
	}
	if m.To == queensideRookHome(opp) && (m.Type == position.Capture || m.Type == position.CapturePromotion) {
		rights = rights.Without(opp, position.QueenSide)
	}

	p.SetCastling(rights)
}

func kingsideRookHome(c piece.Color) coord.Coord {
	return coord.New(7, homeRank(c))
}

func queensideRookHome(c piece.Color) coord.Coord {
	return coord.New(0, homeRank(c))
}
