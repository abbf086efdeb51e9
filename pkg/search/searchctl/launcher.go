// Package searchctl drives iterative-deepening search: it repeatedly invokes a
// search.Search implementation at increasing depth, widening/narrowing the search window
// with aspiration windows once the search is deep enough to trust the previous iteration's
// score, and enforces depth and time limits. Grounded on the teacher's
// pkg/search/searchctl package.
package searchctl

import (
	"context"
	"fmt"
	"strings"

	"github.com/TayDa64/liku-ai/pkg/board"
	"github.com/TayDa64/liku-ai/pkg/eval"
	"github.com/TayDa64/liku-ai/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold dynamic search options. The caller may change these between searches.
type Options struct {
	// DepthLimit, if set, limits the search to the given ply depth. Zero means no limit.
	DepthLimit lang.Optional[uint]
	// TimeControl, if set, limits the search to the given time parameters.
	TimeControl lang.Optional[TimeControl]
}

func (o Options) String() string {
	var ret []string
	if v, ok := o.DepthLimit.V(); ok {
		ret = append(ret, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		ret = append(ret, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(ret, ", "))
}

// Launcher manages iterative-deepening searches.
type Launcher interface {
	// Launch starts a new search from the given position. It expects an exclusive (forked)
	// board and returns a PV channel fed with deeper and deeper results as they complete.
	// The channel is closed once the search halts. killers and history may be nil, in which
	// case move ordering falls back to MVV-LVA alone.
	Launch(ctx context.Context, b *board.Board, tt search.TranspositionTable, noise eval.Random,
		killers *search.KillerTable, history *search.HistoryTable, opt Options) (Handle, <-chan search.PV)
}

// Handle lets the caller manage a running search. The caller is expected to spin off
// searches against forked boards and halt/abandon them when no longer needed.
type Handle interface {
	// Halt halts the search, if running, and returns the best result found so far.
	// Idempotent.
	Halt() search.PV
}
