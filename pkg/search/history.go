package search

import "github.com/TayDa64/liku-ai/pkg/board"

// HistoryTable accumulates a score per (color, from, to) for quiet moves that caused a
// beta cutoff, weighted by the square of the depth at which the cutoff occurred -- the
// classic history heuristic: a quiet move that has been good across many positions in this
// search is probably good again, even without a matching killer-table slot.
type HistoryTable struct {
	score [board.NumColors][64][64]int32
}

// NewHistoryTable returns an empty history table.
func NewHistoryTable() *HistoryTable {
	return &HistoryTable{}
}

// Record rewards a quiet move that caused a cutoff at the given remaining depth.
func (t *HistoryTable) Record(turn board.Color, m board.Move, depth int) {
	if m.IsCapture() || m.IsPromotion() {
		return
	}
	t.score[turn][m.From][m.To] += int32(depth * depth)
}

// Score returns the accumulated history value for a move.
func (t *HistoryTable) Score(turn board.Color, m board.Move) int32 {
	return t.score[turn][m.From][m.To]
}
