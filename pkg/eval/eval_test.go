package eval_test

import (
	"testing"

	"github.com/corvidlabs/negamax/pkg/coord"
	"github.com/corvidlabs/negamax/pkg/eval"
	"github.com/corvidlabs/negamax/pkg/piece"
	"github.com/corvidlabs/negamax/pkg/position"
	"github.com/stretchr/testify/assert"
)

func TestEvaluateSymmetricStartingPositionIsZero(t *testing.T) {
	p := position.NewInitial()
	assert.Equal(t, eval.Score(0), eval.Evaluate(p))
}

func TestEvaluateRewardsMaterialAdvantage(t *testing.T) {
	p := position.New()
	p.Put(coord.New(4, 7), piece.White, piece.King)
	p.Put(coord.New(4, 0), piece.Black, piece.King)
	p.Put(coord.New(0, 7), piece.White, piece.Queen)

	assert.True(t, eval.Evaluate(p) > 0)
}

func TestEvaluateChecksFavorCheckingSide(t *testing.T) {
	base := position.New()
	base.Put(coord.New(4, 7), piece.White, piece.King)
	base.Put(coord.New(4, 0), piece.Black, piece.King)
	baseline := eval.Evaluate(base)

	checked := base.Copy()
	checked.Put(coord.New(4, 1), piece.White, piece.Rook)
	checked.RecomputeCheckFlags()

	assert.True(t, eval.Evaluate(checked) > baseline)
}

func TestNominalValueOrdering(t *testing.T) {
	assert.True(t, eval.NominalValue(piece.Queen) > eval.NominalValue(piece.Rook))
	assert.True(t, eval.NominalValue(piece.Rook) > eval.NominalValue(piece.Bishop))
	assert.True(t, eval.NominalValue(piece.Knight) > eval.NominalValue(piece.Pawn))
}
