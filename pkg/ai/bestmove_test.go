package ai_test

import (
	"context"
	"testing"
	"time"

	"github.com/TayDa64/liku-ai/pkg/ai"
	"github.com/TayDa64/liku-ai/pkg/board/fen"
	"github.com/TayDa64/liku-ai/pkg/board/san"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzePositionIgnoresTheBook(t *testing.T) {
	opts := ai.DefaultOptions()
	opts.UseBook = true
	opts.Ponder = false
	opts.DepthLimit = 3
	opts.MaxTime = lang.Some(5 * time.Second)

	a := newTestAI(t, fen.Initial, opts)

	res, err := a.AnalyzePosition(context.Background())
	require.NoError(t, err)

	// A book hit reports Depth 0; AnalyzePosition must actually search.
	assert.Greater(t, res.Depth, 0)
}

func TestGetHintUsesAShortFixedBudgetRegardlessOfMaxTime(t *testing.T) {
	opts := ai.DefaultOptions()
	opts.UseBook = false
	opts.Ponder = false
	opts.MaxTime = lang.Some(10 * time.Second)

	a := newTestAI(t, "8/8/8/3k4/8/3K4/3P4/8 w - - 0 1", opts)

	start := time.Now()
	res, err := a.GetHint(context.Background())
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.NotEmpty(t, res.BestMove)
	assert.Less(t, elapsed, 2*time.Second, "GetHint must not run anywhere near MaxTime")
}

func TestEloTargetReturnsALegalMoveEvenWhenNoisy(t *testing.T) {
	opts := ai.DefaultOptions()
	opts.UseBook = false
	opts.Ponder = false
	opts.DepthLimit = 3
	opts.MaxTime = lang.Some(5 * time.Second)
	opts.EloTarget = lang.Some(uint(400)) // low strength: heavy noise

	a := newTestAI(t, "r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 0 1", opts)

	res, err := a.GetBestMove(context.Background())
	require.NoError(t, err)

	pos, turn, _, _, err := fen.Decode("r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 0 1")
	require.NoError(t, err)
	legal := pos.LegalMoves(turn)

	found := false
	for _, m := range legal {
		if san.Format(pos, turn, legal, m) == res.BestMove {
			found = true
			break
		}
	}
	assert.True(t, found, "noisy move %q must still be a legal move", res.BestMove)
}
