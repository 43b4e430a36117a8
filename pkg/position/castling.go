package position

import "github.com/corvidlabs/negamax/pkg/piece"

// Wing is a castling wing.
type Wing uint8

const (
	KingSide Wing = iota
	QueenSide
)

// Castling is a 4-bit set of castling rights: one bit per (color, wing),
// so its values range over 0..15. The Zobrist table keys each of the 4
// bits separately.
type Castling uint8

const (
	NumCastling Castling = 16
)

func bit(c piece.Color, w Wing) Castling {
	return 1 << (uint8(c)*2 + uint8(w))
}

// Has reports whether color c may still castle on wing w.
func (r Castling) Has(c piece.Color, w Wing) bool {
	return r&bit(c, w) != 0
}

// Without returns the rights with color c's wing w right removed.
func (r Castling) Without(c piece.Color, w Wing) Castling {
	return r &^ bit(c, w)
}

// WithoutColor returns the rights with both of color c's wings removed, as
// happens when c's king moves.
func (r Castling) WithoutColor(c piece.Color) Castling {
	return r.Without(c, KingSide).Without(c, QueenSide)
}

func (r Castling) String() string {
	s := ""
	if r.Has(piece.White, KingSide) {
		s += "K"
	}
	if r.Has(piece.White, QueenSide) {
		s += "Q"
	}
	if r.Has(piece.Black, KingSide) {
		s += "k"
	}
	if r.Has(piece.Black, QueenSide) {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}
