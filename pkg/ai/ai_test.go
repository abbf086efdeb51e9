package ai_test

import (
	"context"
	"testing"
	"time"

	"github.com/TayDa64/liku-ai/pkg/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/seekerror/stdlib/pkg/lang"
)

func newTestAI(t *testing.T, fenStr string, opts ai.Options) *ai.AI {
	t.Helper()
	ctx := context.Background()
	a := ai.New(ctx, ai.WithOptions(opts))
	require.NoError(t, a.Reset(ctx, fenStr))
	return a
}

func TestGetBestMoveFindsMateInOne(t *testing.T) {
	opts := ai.DefaultOptions()
	opts.UseBook = false
	opts.Ponder = false
	opts.DepthLimit = 4
	opts.MaxTime = lang.Some(5 * time.Second)

	a := newTestAI(t, "r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 0 1", opts)

	res, err := a.GetBestMove(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Qxf7#", res.BestMove)
}

func TestGetBestMoveConsultsBookAtStartingPosition(t *testing.T) {
	opts := ai.DefaultOptions()
	opts.UseBook = true
	opts.Ponder = false

	a := newTestAI(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", opts)

	res, err := a.GetBestMove(context.Background())
	require.NoError(t, err)

	want := map[string]bool{"e4": true, "d4": true, "c4": true, "Nf3": true}
	assert.True(t, want[res.BestMove], "book move %q not among expected mainline replies", res.BestMove)
}

func TestKingAndPawnEndgameOpposition(t *testing.T) {
	opts := ai.DefaultOptions()
	opts.UseBook = false
	opts.Ponder = false
	opts.DepthLimit = 7
	opts.MaxTime = lang.Some(5 * time.Second)

	a := newTestAI(t, "8/8/8/3k4/8/3K4/3P4/8 w - - 0 1", opts)

	res, err := a.GetBestMove(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ke3", res.BestMove)
}

func TestTacticalQueenSwing(t *testing.T) {
	opts := ai.DefaultOptions()
	opts.UseBook = false
	opts.Ponder = false
	opts.DepthLimit = 7
	opts.MaxTime = lang.Some(5 * time.Second)

	a := newTestAI(t, "2rr3k/pp3pp1/1nnqbN1p/3pN3/2pP4/2P3Q1/PPB4P/R4RK1 w - - 0 1", opts)

	res, err := a.GetBestMove(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Qg6", res.BestMove)
}

func TestPromotionRace(t *testing.T) {
	opts := ai.DefaultOptions()
	opts.UseBook = false
	opts.Ponder = false
	opts.DepthLimit = 5
	opts.MaxTime = lang.Some(5 * time.Second)

	a := newTestAI(t, "8/1P6/8/8/8/5K2/6q1/3k4 w - - 0 1", opts)

	res, err := a.GetBestMove(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b8=Q", res.BestMove)
}

func TestGetBestMoveReportsNoLegalMovesOnCheckmate(t *testing.T) {
	opts := ai.DefaultOptions()
	opts.UseBook = false
	opts.Ponder = false

	// Fool's mate final position: black has just delivered mate, white to move has none.
	a := newTestAI(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", opts)

	_, err := a.GetBestMove(context.Background())
	assert.ErrorIs(t, err, ai.ErrNoLegalMoves)
}

func TestPlayRejectsIllegalMove(t *testing.T) {
	a := newTestAI(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ai.DefaultOptions())

	err := a.Play(context.Background(), "e2e5")
	assert.ErrorIs(t, err, ai.ErrIllegalMove)
}

func TestPlayThenTakeBackRestoresPosition(t *testing.T) {
	a := newTestAI(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ai.DefaultOptions())

	before := a.Position()
	require.NoError(t, a.Play(context.Background(), "e2e4"))
	assert.NotEqual(t, before, a.Position())

	require.NoError(t, a.TakeBack(context.Background()))
	assert.Equal(t, before, a.Position())
}

func TestResetClearsBoardToNewPosition(t *testing.T) {
	a := newTestAI(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ai.DefaultOptions())

	const kpEnding = "8/8/8/3k4/8/3K4/3P4/8 w - - 0 1"
	require.NoError(t, a.Reset(context.Background(), kpEnding))
	assert.Equal(t, kpEnding, a.Position())
}

func TestSetConfigAndGetConfigRoundTrip(t *testing.T) {
	a := newTestAI(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ai.DefaultOptions())

	opts := ai.DefaultOptions()
	opts.DepthLimit = 3
	opts.Noise = 5
	a.SetConfig(opts)

	assert.Equal(t, opts, a.GetConfig())
}
