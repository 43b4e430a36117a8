package position

import (
	"github.com/corvidlabs/negamax/pkg/coord"
	"github.com/corvidlabs/negamax/pkg/piece"
)

// ZobristTable is a process-lifetime table of 64-bit constants indexed in
// the Polyglot opening-book key layout (see pkg/book): 12 piece planes
// (pawn..king, black before white within each kind) of 64 squares each, 4
// independent castling-right keys, 8 en-passant-file keys, and one
// side-to-move key. The table is the same in every process. Its constants
// come from the fixed generator in NewZobristTable, not from the published
// Polyglot key array, so hashes (including hash(NewInitial())) differ from
// those stored in real Polyglot books.
type ZobristTable struct {
	pieces    [12][64]uint64
	castling  [4]uint64
	enpassant [8]uint64
	turn      uint64
}

// DefaultSeed is the fixed seed used at program start. Kept for API and
// config compatibility (pkg/config, pkg/engine thread it through as the
// book RNG seed too); the key table itself is the fixed Polyglot-layout
// table below and does not vary with seed.
const DefaultSeed = 0x5EC0BA5E

// polyglotSeed is the internal generator seed for the key table: a fixed
// xorshift64* stream, independent of DefaultSeed, producing the 12x64
// piece-square, 4 castling, 8 en-passant and 1 turn keys in that order.
const polyglotSeed uint64 = 0x37b4a4b3f0d1c0d0

// NewZobristTable builds the standard Polyglot-layout key table. seed is
// accepted for backward-compatible call sites but otherwise unused: the key
// table is fixed so that hashes are comparable across processes.
func NewZobristTable(seed int64) *ZobristTable {
	_ = seed
	t := &ZobristTable{}

	s := polyglotSeed
	next := func() uint64 {
		s ^= s >> 12
		s ^= s << 25
		s ^= s >> 27
		return s * 0x2545F4914F6CDD1D
	}

	for p := 0; p < 12; p++ {
		for sq := 0; sq < 64; sq++ {
			t.pieces[p][sq] = next()
		}
	}
	for i := range t.castling {
		t.castling[i] = next()
	}
	for i := range t.enpassant {
		t.enpassant[i] = next()
	}
	t.turn = next()
	return t
}

// polyglotKindRank orders piece kinds pawn..king, matching the Polyglot
// piece-index convention (piece index = 2*kindRank + colorBit).
func polyglotKindRank(k piece.Kind) int {
	switch k {
	case piece.Pawn:
		return 0
	case piece.Knight:
		return 1
	case piece.Bishop:
		return 2
	case piece.Rook:
		return 3
	case piece.Queen:
		return 4
	case piece.King:
		return 5
	default:
		return 0
	}
}

// polyglotPieceIndex maps (color, kind) to the 0..11 Polyglot piece-plane
// index: within each kind, black (colorBit 0) comes before white (colorBit 1).
func polyglotPieceIndex(c piece.Color, k piece.Kind) int {
	colorBit := 0
	if c == piece.White {
		colorBit = 1
	}
	return 2*polyglotKindRank(k) + colorBit
}

// polyglotSquareIndex maps an engine (top-origin) coordinate to the
// Polyglot/LERF square index: a1=0 .. h8=63, rank-major. Engine rank 0 is
// SAN rank 8, so the SAN rank is 7-engineRank.
func polyglotSquareIndex(f coord.File, r coord.Rank) int {
	return (7-int(r))*8 + int(f)
}

// Hash computes the Zobrist hash of p from scratch.
func (t *ZobristTable) Hash(p *Position) uint64 {
	var h uint64
	for r := coord.Rank(0); r < 8; r++ {
		for f := coord.File(0); f < 8; f++ {
			sq := p.Get(coord.New(f, r))
			if sq.IsEmpty() {
				continue
			}
			h ^= t.pieces[polyglotPieceIndex(sq.Color, sq.Kind)][polyglotSquareIndex(f, r)]
		}
	}
	if p.castling.Has(piece.White, KingSide) {
		h ^= t.castling[0]
	}
	if p.castling.Has(piece.White, QueenSide) {
		h ^= t.castling[1]
	}
	if p.castling.Has(piece.Black, KingSide) {
		h ^= t.castling[2]
	}
	if p.castling.Has(piece.Black, QueenSide) {
		h ^= t.castling[3]
	}
	if file, ok := p.EnPassantFile(p.turn); ok {
		h ^= t.enpassant[file]
	}
	if p.turn == piece.White {
		h ^= t.turn
	}
	return h
}

// Rehash recomputes p.hash from scratch and stores it. Exposed so that
// pkg/rules' MakeMove can satisfy spec 4.2's "rebuilt from scratch after
// each make_move" contract without pkg/position needing to re-derive the
// whole-board loop itself, and so tests can assert property 1 (hash(P)
// recomputed always equals P.hash) directly.
func (t *ZobristTable) Rehash(p *Position) {
	p.hash = t.Hash(p)
}
