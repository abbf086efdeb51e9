package search

import "github.com/TayDa64/liku-ai/pkg/board"

// maxKillerPly bounds the killer table, matching typical search depths the engine is
// expected to reach; deeper plies fall back to plain MVV-LVA/history ordering.
const maxKillerPly = 128

// KillerTable records, per ply, the two most recent quiet moves that caused a beta cutoff.
// Quiet moves rarely repeat across sibling nodes at the same ply for no reason -- a move
// that cut off once nearby is worth trying again first, the way the teacher's MVV-LVA
// ordering does for captures.
type KillerTable struct {
	moves [maxKillerPly][2]board.Move
}

// NewKillerTable returns an empty killer table.
func NewKillerTable() *KillerTable {
	return &KillerTable{}
}

// At returns the two killer moves recorded for ply, if any.
func (t *KillerTable) At(ply int) [2]board.Move {
	if ply < 0 || ply >= maxKillerPly {
		return [2]board.Move{}
	}
	return t.moves[ply]
}

// Record inserts m as the newest killer at ply, unless it is already the most recent one.
// Only called for quiet (non-capture, non-promotion) cutoffs -- captures are already well
// ordered by MVV-LVA.
func (t *KillerTable) Record(ply int, m board.Move) {
	if ply < 0 || ply >= maxKillerPly || m.IsCapture() || m.IsPromotion() {
		return
	}
	if t.moves[ply][0].Equals(m) {
		return
	}
	t.moves[ply][1] = t.moves[ply][0]
	t.moves[ply][0] = m
}
