package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/corvidlabs/negamax/pkg/fen"
	"github.com/corvidlabs/negamax/pkg/position"
	"github.com/corvidlabs/negamax/pkg/search"
	"github.com/corvidlabs/negamax/pkg/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegamaxFindsMateInOne(t *testing.T) {
	zt := position.NewZobristTable(position.DefaultSeed)
	p, err := fen.Decode("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 0", zt)
	require.NoError(t, err)

	table := tt.New(1 << 10)
	budget := search.Budget{Start: time.Now(), Limit: 2 * time.Second}

	value, move, aborted := search.RootSearch(context.Background(), table, zt, p, 2, budget)
	require.False(t, aborted)
	assert.Equal(t, search.Mate, value)
	assert.Equal(t, "a1a8", move.String())
}

func TestNegamaxZeroDepthReturnsStaticEvalSign(t *testing.T) {
	zt := position.NewZobristTable(position.DefaultSeed)
	p := position.NewInitial()
	zt.Rehash(p)

	table := tt.New(1 << 8)
	budget := search.Budget{}

	v := search.Negamax(context.Background(), table, zt, p, -search.Inf, search.Inf, 0, budget)
	assert.Equal(t, 0, v) // symmetric starting position
}

func TestNegamaxExpiredBudgetAborts(t *testing.T) {
	zt := position.NewZobristTable(position.DefaultSeed)
	p := position.NewInitial()
	zt.Rehash(p)

	table := tt.New(1 << 8)
	budget := search.Budget{Start: time.Now().Add(-time.Hour), Limit: time.Minute}

	v := search.Negamax(context.Background(), table, zt, p, -search.Inf, search.Inf, 4, budget)
	assert.Equal(t, search.Aborted, v)
}

func TestNegamaxCancelledContextAborts(t *testing.T) {
	zt := position.NewZobristTable(position.DefaultSeed)
	p := position.NewInitial()
	zt.Rehash(p)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	table := tt.New(1 << 8)
	v := search.Negamax(ctx, table, zt, p, -search.Inf, search.Inf, 4, search.Budget{})
	assert.Equal(t, search.Aborted, v)
}
