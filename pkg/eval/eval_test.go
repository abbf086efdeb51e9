package eval_test

import (
	"context"
	"testing"

	"github.com/TayDa64/liku-ai/pkg/board"
	"github.com/TayDa64/liku-ai/pkg/board/fen"
	"github.com/TayDa64/liku-ai/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluate(t *testing.T, e eval.Evaluator, fenStr string) eval.Centipawns {
	t.Helper()
	pos, turn, noprogress, fullmoves, err := fen.Decode(fenStr)
	require.NoError(t, err)

	b := board.NewBoard(board.NewZobristTable(1), pos, turn, noprogress, fullmoves)
	return e.Evaluate(context.Background(), b)
}

// TestStandardEvaluatorIsMirrorSymmetric checks that flipping a position vertically and
// swapping piece colors (so the advantaged side and the side to move both change) leaves the
// evaluation unchanged, since Evaluate always reports relative to the side to move.
func TestStandardEvaluatorIsMirrorSymmetric(t *testing.T) {
	e := eval.Standard(12)

	a := evaluate(t, e, "r3k3/ppp2ppp/8/4N3/8/8/PPP2PPP/R3K3 w - - 0 1")
	b := evaluate(t, e, "r3k3/ppp2ppp/8/8/4n3/8/PPP2PPP/R3K3 b - - 0 1")

	assert.Equal(t, a, b)
}

func TestStandardEvaluatorSymmetricPositionIsZero(t *testing.T) {
	e := eval.Standard(12)
	score := evaluate(t, e, "r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1")
	assert.Zero(t, score)
}

func TestMaterialFavorsTheSideWithMorePieces(t *testing.T) {
	score := evaluate(t, eval.Material{}, "4k3/8/8/8/4P3/8/8/4K3 w - - 0 1")
	assert.Greater(t, score, eval.Centipawns(0))
}

func TestMaterialIgnoresKingCount(t *testing.T) {
	// Kings are always 1-1 and excluded from the count; this must read as a dead draw.
	score := evaluate(t, eval.Material{}, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.Zero(t, score)
}
