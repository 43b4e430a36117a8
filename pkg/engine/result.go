package engine

import "github.com/corvidlabs/negamax/pkg/piece"

// Result is the outcome of a game, computed from checkmate/stalemate
// predicates plus an insufficient-material draw check (spec 6's
// game_result(), supplemented per SPEC_FULL.md §3 -- repetition and the
// 50-move rule stay out of scope per spec.md's explicit non-goals).
type Result uint8

const (
	// None means the game is ongoing.
	None Result = iota
	WhiteWin
	BlackWin
	Draw
)

func (r Result) String() string {
	switch r {
	case WhiteWin:
		return "white"
	case BlackWin:
		return "black"
	case Draw:
		return "draw"
	default:
		return "none"
	}
}

func winnerOf(c piece.Color) Result {
	if c == piece.White {
		return WhiteWin
	}
	return BlackWin
}
