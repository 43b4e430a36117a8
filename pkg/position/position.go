// Package position implements the chess board model: an 8x8 grid of
// squares, per-color piece lists, castling/en-passant flags, cached king
// and check state, and the Zobrist hash.
package position

import (
	"fmt"
	"strings"

	"github.com/corvidlabs/negamax/pkg/coord"
	"github.com/corvidlabs/negamax/pkg/piece"
)

// Square is the content of a single board square: Empty, or a (Kind, Color) pair.
type Square struct {
	Kind  piece.Kind
	Color piece.Color
}

// IsEmpty reports whether the square holds no piece.
func (s Square) IsEmpty() bool {
	return s.Kind == piece.Empty
}

// PieceList holds up to 16 coordinates for one color's pieces. Absent slots
// are coord.Null. Order is not significant beyond iteration stability.
type PieceList [16]coord.Coord

func (pl *PieceList) add(sq coord.Coord) {
	for i := range pl {
		if pl[i].IsNull() {
			pl[i] = sq
			return
		}
	}
	panic("piece list full")
}

// relocate moves from -> to. to == coord.Null removes the entry (capture).
func (pl *PieceList) relocate(from, to coord.Coord) {
	for i := range pl {
		if pl[i] == from {
			pl[i] = to
			return
		}
	}
	panic(fmt.Sprintf("relocate: %v not found in piece list", from))
}

// Squares returns the live (non-null) coordinates in the list.
func (pl *PieceList) Squares() []coord.Coord {
	var ret []coord.Coord
	for _, sq := range pl {
		if !sq.IsNull() {
			ret = append(ret, sq)
		}
	}
	return ret
}

// Position represents a full chess position suitable for move generation.
// Not safe for concurrent use; callers that need to explore variations
// take a Copy per spec's "recursive calls see immutable snapshots" rule.
type Position struct {
	grid   [8][8]Square
	pieces [piece.NumColors]PieceList

	castling Castling
	// epFile[c] is the file (0-7) a pawn of color c may currently capture
	// en passant onto, or -1 if none. Set only immediately after the
	// opponent's double pawn push; cleared on any other move.
	epFile [piece.NumColors]int8

	kingSquare [piece.NumColors]coord.Coord
	inCheck    [piece.NumColors]bool

	turn piece.Color
	ply  int
	hash uint64
}

// New returns an empty position with no pieces, no castling rights, side to move White.
func New() *Position {
	p := &Position{turn: piece.White}
	p.epFile[piece.White] = -1
	p.epFile[piece.Black] = -1
	for c := piece.ZeroColor; c < piece.NumColors; c++ {
		for i := range p.pieces[c] {
			p.pieces[c][i] = coord.Null
		}
	}
	p.kingSquare[piece.White] = coord.Null
	p.kingSquare[piece.Black] = coord.Null
	return p
}

// NewInitial returns the standard chess starting position.
func NewInitial() *Position {
	p := New()
	p.castling = Castling(0xF)

	back := []piece.Kind{piece.Rook, piece.Knight, piece.Bishop, piece.Queen, piece.King, piece.Bishop, piece.Knight, piece.Rook}
	for f := coord.File(0); f < 8; f++ {
		p.Put(coord.New(f, 0), piece.Black, back[f])
		p.Put(coord.New(f, 1), piece.Black, piece.Pawn)
		p.Put(coord.New(f, 6), piece.White, piece.Pawn)
		p.Put(coord.New(f, 7), piece.White, back[f])
	}
	p.recomputeCheckFlags()
	return p
}

// Get returns the content of sq.
func (p *Position) Get(sq coord.Coord) Square {
	return p.grid[sq.Rank][sq.File]
}

// IsEmpty reports whether sq is unoccupied.
func (p *Position) IsEmpty(sq coord.Coord) bool {
	return p.Get(sq).IsEmpty()
}

// Put places a piece on sq, updating the piece list and cached king square.
// The square must be empty. No legality checking.
func (p *Position) Put(sq coord.Coord, c piece.Color, k piece.Kind) {
	p.grid[sq.Rank][sq.File] = Square{Kind: k, Color: c}
	p.pieces[c].add(sq)
	if k == piece.King {
		p.kingSquare[c] = sq
	}
}

// Clear empties sq, removing any piece from its owner's piece list.
func (p *Position) Clear(sq coord.Coord) {
	s := p.Get(sq)
	if s.IsEmpty() {
		return
	}
	p.grid[sq.Rank][sq.File] = Square{}
	p.pieces[s.Color].relocate(sq, coord.Null)
}

// RelocatePiece moves the piece list entry for color c from `from` to `to`.
// to == coord.Null denotes a capture (removal). Does not touch the grid;
// callers that move grid contents use Put/Clear and call this to keep the
// piece list in sync, or use MovePiece which does both.
func (p *Position) RelocatePiece(c piece.Color, from, to coord.Coord) {
	p.pieces[c].relocate(from, to)
	if to.IsNull() {
		return
	}
	if p.kingSquare[c] == from {
		p.kingSquare[c] = to
	}
}

// MovePiece relocates the piece at `from` to `to` on both the grid and the
// piece list. `to` must be empty (captures are handled by the caller via
// Clear before calling MovePiece).
func (p *Position) MovePiece(from, to coord.Coord) {
	s := p.Get(from)
	if s.IsEmpty() {
		panic("MovePiece: source square empty")
	}
	p.grid[from.Rank][from.File] = Square{}
	p.grid[to.Rank][to.File] = s
	p.RelocatePiece(s.Color, from, to)
}

// PieceList returns the piece list for color c. Callers must not mutate the result.
func (p *Position) PieceList(c piece.Color) *PieceList {
	return &p.pieces[c]
}

// KingSquare returns the cached king square for color c.
func (p *Position) KingSquare(c piece.Color) coord.Coord {
	return p.kingSquare[c]
}

// IsChecked returns the cached "king in check" flag for color c.
func (p *Position) IsChecked(c piece.Color) bool {
	return p.inCheck[c]
}

// Castling returns the current castling rights.
func (p *Position) Castling() Castling {
	return p.castling
}

// EnPassantFile returns the file color c may capture en passant onto, if any.
func (p *Position) EnPassantFile(c piece.Color) (coord.File, bool) {
	f := p.epFile[c]
	if f < 0 {
		return 0, false
	}
	return coord.File(f), true
}

// Turn returns the side to move.
func (p *Position) Turn() piece.Color {
	return p.turn
}

// Ply returns the half-move counter.
func (p *Position) Ply() int {
	return p.ply
}

// Hash returns the current Zobrist hash.
func (p *Position) Hash() uint64 {
	return p.hash
}

// Copy returns a deep, independent copy of p.
func (p *Position) Copy() *Position {
	c := *p
	return &c
}

// The setters below exist so pkg/rules' state mutator can update derived
// fields after applying a move without pkg/position needing to know
// anything about move semantics (en passant, castling rights lost, etc).
// They are mutator plumbing, not part of the read-oriented query surface
// above.

// SetCastling overwrites the castling rights.
func (p *Position) SetCastling(c Castling) {
	p.castling = c
}

// SetEnPassant records that color c may capture en passant onto file f on
// its next move, clearing any previously recorded target for either color.
func (p *Position) SetEnPassant(c piece.Color, f coord.File) {
	p.epFile[piece.White] = -1
	p.epFile[piece.Black] = -1
	p.epFile[c] = int8(f)
}

// ClearEnPassant clears any en-passant target for both colors.
func (p *Position) ClearEnPassant() {
	p.epFile[piece.White] = -1
	p.epFile[piece.Black] = -1
}

// SetTurn overwrites the side to move.
func (p *Position) SetTurn(c piece.Color) {
	p.turn = c
}

// IncPly increments the half-move counter.
func (p *Position) IncPly() {
	p.ply++
}

// SetHash overwrites the cached Zobrist hash, e.g. to the unhashed-scratch
// sentinel value 0 when the mutator is told not to maintain the hash.
func (p *Position) SetHash(h uint64) {
	p.hash = h
}

// RecomputeCheckFlags recomputes both colors' king-in-check flags from
// scratch. Exported for pkg/rules' state mutator to call after applying a
// move; see the unexported recomputeCheckFlags used by NewInitial.
func (p *Position) RecomputeCheckFlags() {
	p.recomputeCheckFlags()
}

// recomputeCheckFlags recomputes both colors' king-in-check flags from
// scratch by attack detection. Called after any mutation affecting either
// king's safety. Lives here (not pkg/rules) to avoid an import cycle: rules
// needs Position, and check state is core position data, not move generation.
func (p *Position) recomputeCheckFlags() {
	p.inCheck[piece.White] = p.IsAttacked(piece.White, p.kingSquare[piece.White])
	p.inCheck[piece.Black] = p.IsAttacked(piece.Black, p.kingSquare[piece.Black])
}

// knightOffsets, kingOffsets are the jump/step deltas used by attack detection.
var knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
var kingOffsets = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// IsAttacked returns true iff sq is attacked by a piece of victim's opponent. It
// works by reverse enumeration: rays and jumps are projected outward from sq
// as if sq held each attacking piece type, and checked against what is
// actually there. Ignores whose turn it is; a purely geometric query.
func (p *Position) IsAttacked(victim piece.Color, sq coord.Coord) bool {
	attacker := victim.Opponent()

	for _, d := range knightOffsets {
		if t := sq.Add(d[0], d[1]); t.IsValid() {
			if s := p.Get(t); s.Kind == piece.Knight && s.Color == attacker {
				return true
			}
		}
	}
	for _, d := range kingOffsets {
		if t := sq.Add(d[0], d[1]); t.IsValid() {
			if s := p.Get(t); s.Kind == piece.King && s.Color == attacker {
				return true
			}
		}
	}
	for _, d := range bishopDirs {
		if p.rayAttacked(sq, d, attacker, piece.Bishop, piece.Queen) {
			return true
		}
	}
	for _, d := range rookDirs {
		if p.rayAttacked(sq, d, attacker, piece.Rook, piece.Queen) {
			return true
		}
	}

	// Pawn attacks: a White pawn attacks diagonally "up" (towards rank 0); a
	// Black pawn attacks diagonally "down" (towards rank 7).
	pawnRankDelta := -1
	if attacker == piece.White {
		pawnRankDelta = 1
	}
	for _, df := range []int{-1, 1} {
		if t := sq.Add(df, pawnRankDelta); t.IsValid() {
			if s := p.Get(t); s.Kind == piece.Pawn && s.Color == attacker {
				return true
			}
		}
	}
	return false
}

func (p *Position) rayAttacked(from coord.Coord, d [2]int, attacker piece.Color, kinds ...piece.Kind) bool {
	t := from.Add(d[0], d[1])
	for t.IsValid() {
		if !p.IsEmpty(t) {
			s := p.Get(t)
			if s.Color != attacker {
				return false
			}
			for _, k := range kinds {
				if s.Kind == k {
					return true
				}
			}
			return false
		}
		t = t.Add(d[0], d[1])
	}
	return false
}

func (p *Position) String() string {
	var sb strings.Builder
	for r := coord.Rank(0); r < 8; r++ {
		for f := coord.File(0); f < 8; f++ {
			s := p.Get(coord.New(f, r))
			if s.IsEmpty() {
				sb.WriteByte('-')
			} else {
				sb.WriteString(piece.Print(s.Color, s.Kind))
			}
		}
		if r != 7 {
			sb.WriteByte('/')
		}
	}
	return fmt.Sprintf("%v %v turn=%v castling=%v", sb.String(), p.turn, p.turn, p.castling)
}
