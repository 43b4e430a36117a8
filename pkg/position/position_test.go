package position_test

import (
	"testing"

	"github.com/corvidlabs/negamax/pkg/coord"
	"github.com/corvidlabs/negamax/pkg/piece"
	"github.com/corvidlabs/negamax/pkg/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitialHashMatchesFromScratch(t *testing.T) {
	zt := position.NewZobristTable(position.DefaultSeed)
	p := position.NewInitial()
	zt.Rehash(p)

	assert.Equal(t, zt.Hash(p), p.Hash())
}

func TestCopyIsIndependent(t *testing.T) {
	p := position.NewInitial()
	c := p.Copy()

	c.Clear(coord.New(0, 6)) // clear a white pawn on the copy only
	assert.False(t, p.IsEmpty(coord.New(0, 6)))
	assert.True(t, c.IsEmpty(coord.New(0, 6)))
}

func TestPutTracksKingSquare(t *testing.T) {
	p := position.New()
	p.Put(coord.New(4, 7), piece.White, piece.King)
	assert.Equal(t, coord.New(4, 7), p.KingSquare(piece.White))
}

func TestMovePieceUpdatesGridAndPieceList(t *testing.T) {
	p := position.New()
	from, to := coord.New(0, 6), coord.New(0, 4)
	p.Put(from, piece.White, piece.Pawn)

	p.MovePiece(from, to)

	assert.True(t, p.IsEmpty(from))
	assert.Equal(t, piece.Pawn, p.Get(to).Kind)

	found := false
	for _, sq := range p.PieceList(piece.White).Squares() {
		if sq == to {
			found = true
		}
		require.NotEqual(t, from, sq)
	}
	assert.True(t, found)
}

func TestIsAttackedByQueenAlongRank(t *testing.T) {
	p := position.New()
	p.Put(coord.New(4, 7), piece.White, piece.King)
	p.Put(coord.New(4, 0), piece.Black, piece.King)
	p.Put(coord.New(0, 3), piece.Black, piece.Queen)

	assert.True(t, p.IsAttacked(piece.White, coord.New(7, 3)))
	assert.False(t, p.IsAttacked(piece.White, coord.New(7, 4)))
}

func TestIsAttackedBlockedByInterveningPiece(t *testing.T) {
	p := position.New()
	p.Put(coord.New(0, 3), piece.Black, piece.Rook)
	p.Put(coord.New(3, 3), piece.White, piece.Pawn)

	assert.False(t, p.IsAttacked(piece.White, coord.New(7, 3)))
}

func TestRecomputeCheckFlags(t *testing.T) {
	p := position.New()
	p.Put(coord.New(4, 7), piece.White, piece.King)
	p.Put(coord.New(4, 0), piece.Black, piece.King)
	p.Put(coord.New(4, 1), piece.Black, piece.Rook)

	p.RecomputeCheckFlags()
	assert.True(t, p.IsChecked(piece.White))
	assert.False(t, p.IsChecked(piece.Black))
}
