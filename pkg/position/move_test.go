package position_test

import (
	"testing"

	"github.com/corvidlabs/negamax/pkg/coord"
	"github.com/corvidlabs/negamax/pkg/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValueMoveIsNotNullMove(t *testing.T) {
	var zero position.Move
	assert.False(t, zero.IsNull(), "zero Move{} has From=a8, not the NULL sentinel")
	assert.True(t, position.NullMove.IsNull())
}

func TestParseMoveRoundTrip(t *testing.T) {
	m, err := position.ParseMove("e2e4")
	require.NoError(t, err)
	assert.Equal(t, "e2e4", m.String())
	assert.Equal(t, coord.New(4, 6), m.From)
	assert.Equal(t, coord.New(4, 4), m.To)
}

func TestParseMoveAcceptsOptionalQueenPromotion(t *testing.T) {
	_, err := position.ParseMove("e7e8q")
	assert.NoError(t, err)

	_, err = position.ParseMove("e7e8n")
	assert.Error(t, err, "only queen promotion is supported")
}

func TestParseMoveRejectsMalformed(t *testing.T) {
	_, err := position.ParseMove("e2")
	assert.Error(t, err)
}

func TestEqualsIgnoresTypeAndCapture(t *testing.T) {
	a := position.Move{From: coord.New(4, 6), To: coord.New(4, 4), Type: position.Jump}
	b := position.Move{From: coord.New(4, 6), To: coord.New(4, 4), Type: position.Normal}
	assert.True(t, a.Equals(b))
}
