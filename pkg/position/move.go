package position

import (
	"fmt"

	"github.com/corvidlabs/negamax/pkg/coord"
	"github.com/corvidlabs/negamax/pkg/piece"
)

// MoveType classifies a move for the mutator and for move ordering. Derived
// during generation; not part of the move's identity (two moves with the
// same From/To but different Type never coexist as legal alternatives for
// the same position).
type MoveType uint8

const (
	Normal MoveType = iota
	Push             // single pawn push
	Jump             // double pawn push, sets the en-passant file
	EnPassant
	KingSideCastle
	QueenSideCastle
	Capture
	Promotion
	CapturePromotion
)

// Move is a pair (From, To). Promotion to queen is implicit whenever a pawn
// reaches its last rank; castling is a king move of two files; en passant is
// a pawn diagonal move onto an empty square. Type and Capture are
// move-generation metadata, not part of the move's identity: see Equals.
type Move struct {
	From, To coord.Coord
	Type     MoveType
	Capture  piece.Kind // captured piece kind, if any
}

// Equals compares moves by identity: origin and destination square only.
func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To
}

// IsNull reports whether m is the "no move" sentinel (NULL from-square).
// Note this is NOT Go's zero Move{}, whose From is the valid square a8;
// use NullMove when constructing an explicit "no move" value.
func (m Move) IsNull() bool {
	return m.From.IsNull()
}

// NullMove is the canonical "no move" sentinel: NULL from- and to-squares.
var NullMove = Move{From: coord.Null, To: coord.Null}

// IsCapture reports whether m captures a piece (including en passant).
func (m Move) IsCapture() bool {
	return m.Type == Capture || m.Type == CapturePromotion || m.Type == EnPassant
}

func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}

// ParseMove parses a move in pure coordinate notation, e.g. "e2e4". The
// trailing promotion letter, if present (queen promotion is implicit so it is
// accepted but not required), is validated and discarded.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("invalid move: %q", s)
	}
	from, err := coord.ParseSquare(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %v", s, err)
	}
	to, err := coord.ParseSquare(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %v", s, err)
	}
	if len(s) == 5 && s[4] != 'q' && s[4] != 'Q' {
		return Move{}, fmt.Errorf("invalid promotion in move %q: only queen promotion is supported", s)
	}
	return Move{From: from, To: to}, nil
}
