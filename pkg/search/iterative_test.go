package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/corvidlabs/negamax/pkg/fen"
	"github.com/corvidlabs/negamax/pkg/pool"
	"github.com/corvidlabs/negamax/pkg/position"
	"github.com/corvidlabs/negamax/pkg/search"
	"github.com/corvidlabs/negamax/pkg/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterativeDeepeningLeavesBestMoveAtRootHash(t *testing.T) {
	zt := position.NewZobristTable(position.DefaultSeed)
	p, err := fen.Decode("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1", zt)
	require.NoError(t, err)

	table := tt.New(1 << 10)
	wp := pool.New(1, 8)
	defer wp.Close()

	budget := search.Budget{Start: time.Now(), Limit: 3 * time.Second}
	search.IterativeDeepening(context.Background(), wp, table, zt, p, 3, budget)

	entry := table.Get(p.Hash())
	require.False(t, entry.IsNull())
	assert.Equal(t, "a1a8", entry.Move.String())
}
