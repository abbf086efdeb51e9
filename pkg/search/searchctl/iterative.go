package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/TayDa64/liku-ai/pkg/board"
	"github.com/TayDa64/liku-ai/pkg/eval"
	"github.com/TayDa64/liku-ai/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// aspirationWindow is the initial half-width of the window opened around the previous
// iteration's score, and aspirationMinDepth is the shallowest depth at which it's tried at
// all. Below that depth, scores swing too much iteration to iteration for a narrow window
// to pay for itself in wasted re-searches -- resolved as "disabled for depth <= 3" in
// DESIGN.md.
const (
	aspirationWindow   = search.Score(50)
	aspirationMinDepth = 4
)

// Iterative is a search harness for iterative-deepening search: it calls Root.Search at
// increasing depth, each time inside an aspiration window derived from the previous
// iteration's score once the search is deep enough to trust it, widening the window and
// re-searching the same depth on a fail-low or fail-high. Grounded on the teacher's
// searchctl.Iterative, extended with aspiration windows (the teacher always searches the
// full window).
type Iterative struct {
	Root search.Search
}

func (i *Iterative) Launch(ctx context.Context, b *board.Board, tt search.TranspositionTable, noise eval.Random,
	killers *search.KillerTable, history *search.HistoryTable, opt Options) (Handle, <-chan search.PV) {

	out := make(chan search.PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, i.Root, b, tt, noise, killers, history, opt, out)

	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	pv search.PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, root search.Search, b *board.Board, tt search.TranspositionTable,
	noise eval.Random, killers *search.KillerTable, history *search.HistoryTable, opt Options, out chan search.PV) {

	defer h.init.Close()
	defer close(out)

	sctx := &search.Context{TT: tt, Noise: noise, Killers: killers, History: history, Stats: &search.Stats{}}
	soft, useSoft := EnforceTimeControl(ctx, h, opt.TimeControl, b.Turn())

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	depth := 1
	var prevScore search.Score
	havePrev := false
	launched := time.Now()

	for !h.quit.IsClosed() {
		start := time.Now()

		nodes, score, moves, err := i.searchOneDepth(wctx, root, sctx, b, depth, prevScore, havePrev)
		if err != nil {
			if err == search.ErrHalted {
				return // Halt was called.
			}
			logw.Errorf(ctx, "Search failed on %v at depth=%v: %v", b, depth, err)
			return
		}

		pv := search.PV{
			Depth: depth,
			Nodes: nodes,
			Score: score,
			Moves: moves,
			Time:  time.Since(start),
		}
		if tt != nil {
			pv.Hash = tt.Used()
		}

		logw.Debugf(ctx, "Searched %v: %v %v", b.Position(), pv, sctx.Stats)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()
		prevScore, havePrev = score, true

		if limit, ok := opt.DepthLimit.V(); ok && uint(depth) == limit {
			return // halt: reached max depth
		}
		if md, ok := score.MateDistance(); ok && md <= depth {
			return // halt: forced mate found within full-width search. Exact result.
		}
		if useSoft && soft < time.Since(launched) {
			return // halt: exceeded soft time limit. Do not start a new iteration.
		}
		depth++
	}
}

// Halt stops the search, blocking until at least one depth has completed (so a search
// halted immediately after launch still returns a usable, if shallow, PV), and returns the
// deepest result found so far. Idempotent: a second call returns the same PV.
func (h *handle) Halt() search.PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}

// searchOneDepth runs depth under an aspiration window (once deep enough to have a prior
// score), widening and re-searching the same depth as long as the result falls outside the
// current window. Grounded on the standard widen-on-fail aspiration loop; no teacher
// analogue.
func (i *Iterative) searchOneDepth(ctx context.Context, root search.Search, sctx *search.Context, b *board.Board,
	depth int, prevScore search.Score, havePrev bool) (uint64, search.Score, []board.Move, error) {

	alpha, beta := search.NegInfScore, search.InfScore
	if havePrev && depth >= aspirationMinDepth {
		alpha, beta = prevScore-aspirationWindow, prevScore+aspirationWindow
	}
	window := aspirationWindow

	for {
		sctx.Alpha, sctx.Beta = alpha, beta
		nodes, score, moves, err := root.Search(ctx, sctx, b, depth)
		if err != nil {
			return nodes, score, moves, err
		}

		full := alpha <= search.NegInfScore && beta >= search.InfScore
		switch {
		case !full && score <= alpha:
			alpha = search.Max(search.NegInfScore, alpha-2*window)
			window *= 2
		case !full && score >= beta:
			beta = search.Min(search.InfScore, beta+2*window)
			window *= 2
		default:
			return nodes, score, moves, nil
		}
	}
}
