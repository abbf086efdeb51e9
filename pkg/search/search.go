// Package search implements negamax/principal-variation search with alpha-beta pruning,
// a transposition table, quiescence search, and the forward-pruning heuristics (null-move,
// late-move reductions, futility, razoring) that keep a fixed search depth tractable.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/TayDa64/liku-ai/pkg/board"
	"github.com/TayDa64/liku-ai/pkg/eval"
)

// Context carries the per-call search window and shared tables through a recursive search,
// grounded on the teacher's searchctl.Iterative-constructed search.Context (Alpha/Beta/TT),
// generalized with the killer-move and history tables the teacher's single-file search
// never had. Ponder holds a predicted continuation to explore first regardless of its
// computed priority, matching the teacher's runAlphaBeta.ponder field.
type Context struct {
	Alpha, Beta Score
	TT          TranspositionTable
	Noise       eval.Random
	Killers     *KillerTable
	History     *HistoryTable
	Ponder      []board.Move
	Stats       *Stats
}

// Search implements full-width search of the game tree to a fixed depth.
type Search interface {
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, Score, []board.Move, error)
}

// QuietSearch implements quiescence search: a capture/check-only extension run at the
// leaves of Search so the static evaluation is never taken in the middle of a tactical
// exchange.
type QuietSearch interface {
	QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, Score)
}

// PV represents the principal variation found by one iterative-deepening pass.
type PV struct {
	Depth int
	Moves []board.Move
	Score Score
	Nodes uint64
	Time  time.Duration
	Hash  float64 // transposition table utilization, [0;1]
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hash=%v%% pv=%v",
		p.Depth, p.Score, p.Nodes, p.Time, int(100*p.Hash), board.PrintMoves(p.Moves))
}

func firstOrNone(pv []board.Move) board.Move {
	if len(pv) == 0 {
		return board.Move{}
	}
	return pv[0]
}
