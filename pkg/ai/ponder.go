package ai

import (
	"github.com/TayDa64/liku-ai/pkg/board"
	"github.com/TayDa64/liku-ai/pkg/board/fen"
	"github.com/TayDa64/liku-ai/pkg/search/searchctl"
)

// ponderState tracks a background search started on the position the orchestrator predicts
// the opponent will reach, per spec.md §4.6 steps 5-6. fen identifies the predicted position
// so a later GetBestMove/Play can tell whether the prediction held.
type ponderState struct {
	fen    string
	handle searchctl.Handle
}

// predictedFEN encodes the position reached from b by playing bestMove followed by
// ponderMove, without disturbing b itself.
func predictedFEN(b *board.Board, bestMove, ponderMove board.Move) string {
	fork := b.Fork()
	fork.PushMove(bestMove)
	fork.PushMove(ponderMove)
	return fen.Encode(fork.Position(), fork.Turn(), fork.NoProgress(), fork.FullMoves())
}
