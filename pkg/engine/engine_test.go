package engine_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"
	"time"

	"github.com/corvidlabs/negamax/pkg/book"
	"github.com/corvidlabs/negamax/pkg/coord"
	"github.com/corvidlabs/negamax/pkg/engine"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyBook(t *testing.T) *book.Book {
	t.Helper()
	// One dummy record far outside any reachable-in-these-tests hash, so the
	// book never interferes with non-book-phase assertions, but still
	// satisfies "zero records is fatal" at Load time.
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[0:8], 0xFFFFFFFFFFFFFFF0)
	b, err := book.Load(bytes.NewReader(buf))
	require.NoError(t, err)
	return b
}

func TestSubmitHumanMoveLegalAndIllegal(t *testing.T) {
	e := engine.New(emptyBook(t), engine.DefaultOptions())
	defer e.Close()

	require.NoError(t, e.SubmitHumanMove(sq("e2"), sq("e4")))
	assert.Error(t, e.SubmitHumanMove(sq("e2"), sq("e4"))) // no longer a pawn there / not side to move's piece
}

func TestNewGameResetsPosition(t *testing.T) {
	e := engine.New(emptyBook(t), engine.DefaultOptions())
	defer e.Close()

	require.NoError(t, e.SubmitHumanMove(sq("e2"), sq("e4")))
	e.NewGame(context.Background())

	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", e.SerializePositionToFEN())
}

func TestLoadPositionFromFENRoundTrip(t *testing.T) {
	e := engine.New(emptyBook(t), engine.DefaultOptions())
	defer e.Close()

	const want = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	require.NoError(t, e.LoadPositionFromFEN(want))
	assert.Equal(t, want, e.SerializePositionToFEN())
}

func TestLoadPositionFromFENInvalidLeavesStateUntouched(t *testing.T) {
	e := engine.New(emptyBook(t), engine.DefaultOptions())
	defer e.Close()

	before := e.SerializePositionToFEN()
	require.Error(t, e.LoadPositionFromFEN("not a fen"))
	assert.Equal(t, before, e.SerializePositionToFEN())
}

func TestRequestEngineMoveFindsMateInOne(t *testing.T) {
	opts := engine.DefaultOptions()
	opts.MaxDepth = lang.Some(uint(3))
	opts.SearchBudget = lang.Some(3 * time.Second)
	opts.Workers = 1

	e := engine.New(emptyBook(t), opts)
	defer e.Close()

	require.NoError(t, e.LoadPositionFromFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1"))

	e.RequestEngineMove(context.Background())

	deadline := time.Now().Add(3 * time.Second)
	var mv interface{ String() string }
	for time.Now().Before(deadline) {
		if m, ok := e.PollEngineMove(); ok {
			mv = m
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.NotNil(t, mv)
	assert.Equal(t, "a1a8", mv.String())
}

func TestGameResultNoneAtStart(t *testing.T) {
	e := engine.New(emptyBook(t), engine.DefaultOptions())
	defer e.Close()

	assert.Equal(t, engine.None, e.GameResult())
}

func TestGameResultCheckmate(t *testing.T) {
	e := engine.New(emptyBook(t), engine.DefaultOptions())
	defer e.Close()

	// Fool's mate position: Black has just delivered checkmate.
	require.NoError(t, e.LoadPositionFromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"))
	assert.Equal(t, engine.BlackWin, e.GameResult())
}

func sq(s string) coord.Coord {
	c, _ := coord.ParseSquare(s)
	return c
}
