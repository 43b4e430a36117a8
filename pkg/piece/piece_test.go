package piece_test

import (
	"testing"

	"github.com/corvidlabs/negamax/pkg/piece"
	"github.com/stretchr/testify/assert"
)

func TestOpponent(t *testing.T) {
	assert.Equal(t, piece.Black, piece.White.Opponent())
	assert.Equal(t, piece.White, piece.Black.Opponent())
}

func TestPrintCasing(t *testing.T) {
	assert.Equal(t, "Q", piece.Print(piece.White, piece.Queen))
	assert.Equal(t, "q", piece.Print(piece.Black, piece.Queen))
	assert.Equal(t, "-", piece.Print(piece.White, piece.Empty))
}

func TestParseKind(t *testing.T) {
	k, ok := piece.ParseKind('N')
	assert.True(t, ok)
	assert.Equal(t, piece.Knight, k)

	_, ok = piece.ParseKind('x')
	assert.False(t, ok)
}

func TestKindIsValid(t *testing.T) {
	assert.True(t, piece.Pawn.IsValid())
	assert.False(t, piece.Empty.IsValid())
}
