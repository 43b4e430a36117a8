// Package fen implements the external FEN boundary: parsing a position from
// Forsyth-Edwards Notation and serializing one back out (spec 6). This is
// the only place engine-internal top-origin ranks (rank 0 = Black's home)
// are translated to and from FEN's bottom-origin rank-8-first convention --
// which, since FEN already lists rank 8 first, lines up directly with the
// engine's row-major grid without any mirroring (unlike the Polyglot book's
// bottom-origin scheme; see pkg/book).
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/corvidlabs/negamax/pkg/coord"
	"github.com/corvidlabs/negamax/pkg/piece"
	"github.com/corvidlabs/negamax/pkg/position"
)

// Initial is the FEN for the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN record into a fresh Position. zt is used to compute
// the position's Zobrist hash; it must not be nil.
func Decode(s string, zt *position.ZobristTable) (*position.Position, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid FEN %q: expected 6 fields, got %v", s, len(parts))
	}

	p := position.New()

	rank := coord.Rank(0)
	file := coord.File(0)
	for _, r := range parts[0] {
		switch {
		case r == '/':
			if file != 8 {
				return nil, fmt.Errorf("invalid FEN %q: short rank", s)
			}
			rank++
			file = 0
		case unicode.IsDigit(r):
			file += coord.File(r - '0')
		default:
			c, k, ok := parsePiece(r)
			if !ok {
				return nil, fmt.Errorf("invalid FEN %q: bad piece %q", s, r)
			}
			if rank > 7 || file > 7 {
				return nil, fmt.Errorf("invalid FEN %q: square out of range", s)
			}
			p.Put(coord.New(file, rank), c, k)
			file++
		}
	}
	if rank != 7 || file != 8 {
		return nil, fmt.Errorf("invalid FEN %q: wrong number of squares", s)
	}

	turn, ok := parseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("invalid FEN %q: bad active color %q", s, parts[1])
	}
	p.SetTurn(turn)

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("invalid FEN %q: bad castling field %q", s, parts[2])
	}
	p.SetCastling(castling)

	if parts[3] == "-" {
		p.ClearEnPassant()
	} else {
		sq, err := coord.ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid FEN %q: bad en passant field: %v", s, err)
		}
		// FEN's en-passant square is the one the capturing pawn lands on; the
		// capturing side is whoever is to move.
		p.SetEnPassant(turn, sq.File)
	}

	if _, err := strconv.Atoi(parts[4]); err != nil {
		return nil, fmt.Errorf("invalid FEN %q: bad halfmove clock %q", s, parts[4])
	}
	fullmoves, err := strconv.Atoi(parts[5])
	if err != nil || fullmoves < 0 {
		return nil, fmt.Errorf("invalid FEN %q: bad fullmove number %q", s, parts[5])
	}
	ply := 2*(fullmoves-1) + int(turn)
	if ply < 0 {
		ply = 0
	}
	for i := 0; i < ply; i++ {
		p.IncPly()
	}

	p.RecomputeCheckFlags()
	zt.Rehash(p)
	return p, nil
}

// Encode serializes p back to a FEN record. The halfmove clock is always
// printed as 0: the 50-move rule is an explicit non-goal (spec 1) and
// Position does not track it.
func Encode(p *position.Position) string {
	var sb strings.Builder
	for r := coord.Rank(0); r < 8; r++ {
		blanks := 0
		for f := coord.File(0); f < 8; f++ {
			sq := p.Get(coord.New(f, r))
			if sq.IsEmpty() {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(piece.Print(sq.Color, sq.Kind))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r != 7 {
			sb.WriteByte('/')
		}
	}

	turn := "w"
	if p.Turn() == piece.Black {
		turn = "b"
	}

	ep := "-"
	if f, ok := p.EnPassantFile(p.Turn()); ok {
		rank := coord.Rank(5)
		if p.Turn() == piece.White {
			rank = 2
		}
		ep = coord.New(f, rank).String()
	}

	fullmoves := p.Ply()/2 + 1
	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), turn, printCastling(p.Castling()), ep, 0, fullmoves)
}

func parsePiece(r rune) (piece.Color, piece.Kind, bool) {
	c := piece.White
	upper := r
	if unicode.IsLower(r) {
		c = piece.Black
		upper = unicode.ToUpper(r)
	}
	k, ok := piece.ParseKind(upper)
	return c, k, ok
}

func parseColor(s string) (piece.Color, bool) {
	switch s {
	case "w":
		return piece.White, true
	case "b":
		return piece.Black, true
	default:
		return 0, false
	}
}

func parseCastling(s string) (position.Castling, bool) {
	var c position.Castling
	if s == "-" {
		return c, true
	}
	for _, r := range s {
		switch r {
		case 'K':
			c |= 1 << 0
		case 'Q':
			c |= 1 << 1
		case 'k':
			c |= 1 << 2
		case 'q':
			c |= 1 << 3
		default:
			return 0, false
		}
	}
	return c, true
}

func printCastling(c position.Castling) string {
	s := ""
	if c.Has(piece.White, position.KingSide) {
		s += "K"
	}
	if c.Has(piece.White, position.QueenSide) {
		s += "Q"
	}
	if c.Has(piece.Black, position.KingSide) {
		s += "k"
	}
	if c.Has(piece.Black, position.QueenSide) {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}
