package search

import (
	"context"

	"github.com/TayDa64/liku-ai/pkg/board"
	"github.com/TayDa64/liku-ai/pkg/eval"
)

// Exploration defines move ordering and, for quiescence, which moves are explored at all.
// Grounded on the teacher's pkg/search/exploration.go.
type Exploration func(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn)

// FullExploration orders every move by MVV-LVA and explores all of them. Default for
// full-width search.
func FullExploration(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
	return MVVLVA, board.IsAnyMove
}

// QuiescentExploration orders by MVV-LVA but only explores captures, promotions and moves
// that answer a check -- the usual quiescence move set, so the search doesn't simply run
// full-width to an arbitrary deeper ply.
func QuiescentExploration(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
	inCheck := b.Position().IsChecked(b.Turn())
	return MVVLVA, func(m board.Move) bool {
		if inCheck {
			return true
		}
		return m.IsCapture() || m.IsPromotion()
	}
}

// MVVLVA implements Most-Valuable-Victim/Least-Valuable-Attacker move priority: big
// captures by small pieces sort first.
func MVVLVA(m board.Move) board.MovePriority {
	if p := board.MovePriority(100 * eval.NominalValueGain(m)); p > 0 {
		return p - board.MovePriority(eval.NominalValue(m.Piece))
	}
	return 0
}

// WithKillersAndHistory layers killer-move and history-heuristic ordering on top of a base
// MovePriorityFn for quiet (non-capture) moves, which MVV-LVA alone cannot distinguish.
func WithKillersAndHistory(base board.MovePriorityFn, killers [2]board.Move, h *HistoryTable, turn board.Color) board.MovePriorityFn {
	return func(m board.Move) board.MovePriority {
		if p := base(m); p > 0 {
			return p + 1<<20 // keep captures/promotions ranked above any quiet move
		}
		if killers[0].Equals(m) {
			return 1 << 19
		}
		if killers[1].Equals(m) {
			return 1<<19 - 1
		}
		if h != nil {
			return board.MovePriority(h.Score(turn, m))
		}
		return 0
	}
}
