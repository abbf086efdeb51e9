package ai

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/TayDa64/liku-ai/pkg/board"
	"github.com/TayDa64/liku-ai/pkg/board/san"
	"github.com/TayDa64/liku-ai/pkg/eval"
	"github.com/TayDa64/liku-ai/pkg/search"
	"github.com/TayDa64/liku-ai/pkg/search/searchctl"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// watchdogTimeout is an absolute per-call ceiling independent of any configured MaxTime, so
// a misbehaving search can never hang a caller forever.
const watchdogTimeout = 10 * time.Second

// topKCandidates bounds how many legal root moves are evaluated for Elo-scaled noise
// selection, matching spec.md §4.6 step 4's "top K≈8".
const topKCandidates = 8

// Result is the outcome of GetBestMove/AnalyzePosition/GetHint, generalizing the teacher's
// bare search.PV with the SAN-formatted move fields and hash-full value (permille, 0..1000)
// spec.md §6's result object names.
type Result struct {
	BestMove   string
	PonderMove string
	Score      search.Score
	Depth      int
	SelDepth   int
	Nodes      uint64
	NPS        uint64
	PV         []string
	HashFull   float64
	Aborted    bool
}

func (r Result) String() string {
	return fmt.Sprintf("{move=%v ponder=%v score=%v depth=%v nodes=%v nps=%v aborted=%v}",
		r.BestMove, r.PonderMove, r.Score, r.Depth, r.Nodes, r.NPS, r.Aborted)
}

// GetBestMove selects a move for the current position: a book hit if configured and
// available, otherwise a full search, optionally perturbed by Elo-scaled noise, with the PV's
// second move scheduled as a background ponder. Consumes a matching in-flight ponder instead
// of researching, per spec.md §4.6 step 5.
//
// GetBestMove only holds its lock for setup and teardown, not while the search itself runs,
// so Stop can halt it from another goroutine (spec.md §4.6's "caller awaits via a
// request/response channel" model -- the search runs on its own goroutine, not inline).
func (a *AI) GetBestMove(ctx context.Context) (Result, error) {
	a.mu.Lock()
	if res, ok, err := a.consumePonderLocked(ctx); ok || err != nil {
		a.mu.Unlock()
		return res, err
	}
	if a.opts.UseBook {
		if res, ok, err := a.probeBookLocked(ctx); ok || err != nil {
			a.mu.Unlock()
			return res, err
		}
	}
	preFEN := a.positionLocked()
	opt := a.searchOptionsLocked()
	a.mu.Unlock()

	res, err := a.search(ctx, opt)
	if err != nil {
		return Result{}, err
	}

	a.mu.Lock()
	if a.positionLocked() == preFEN {
		a.schedulePonderLocked(ctx, res)
	}
	a.mu.Unlock()
	return res, nil
}

// AnalyzePosition runs a full search of the current position, ignoring the opening book and
// without disturbing any active ponder, for callers that want engine output without
// committing to a move (e.g. a UI's analysis mode).
func (a *AI) AnalyzePosition(ctx context.Context) (Result, error) {
	a.mu.Lock()
	opt := a.searchOptionsLocked()
	a.mu.Unlock()

	return a.search(ctx, opt)
}

// GetHint runs a cheap, time-boxed search (book still consulted) and reports a suggested
// move without scheduling a ponder or consuming any active one, since a hint does not commit
// the caller to actually playing the move.
func (a *AI) GetHint(ctx context.Context) (Result, error) {
	a.mu.Lock()
	if a.opts.UseBook {
		if res, ok, err := a.probeBookLocked(ctx); ok || err != nil {
			a.mu.Unlock()
			return res, err
		}
	}

	opt := a.searchOptionsLocked()
	hint := 300 * time.Millisecond
	if max, ok := a.opts.MaxTime.V(); ok && max/2 < hint {
		hint = max / 2
	}
	opt.TimeControl = lang.Some(searchctl.FixedTimeControl(hint))
	a.mu.Unlock()

	return a.search(ctx, opt)
}

func (a *AI) searchOptionsLocked() searchctl.Options {
	var opt searchctl.Options
	if a.opts.DepthLimit > 0 {
		opt.DepthLimit = lang.Some(a.opts.DepthLimit)
	}
	if max, ok := a.opts.MaxTime.V(); ok {
		opt.TimeControl = lang.Some(searchctl.FixedTimeControl(max))
	}
	return opt
}

// probeBookLocked returns a book move as an immediate Result if the opening book has a
// playable reply for the current position, ok=false if the book has nothing to say.
func (a *AI) probeBookLocked(ctx context.Context) (Result, bool, error) {
	fenStr := a.positionLocked()

	legal := a.b.Position().LegalMoves(a.b.Turn())
	if len(legal) == 0 {
		return Result{}, false, ErrNoLegalMoves
	}

	m, ok, err := a.book.Pick(ctx, fenStr, a.rng)
	if err != nil || !ok {
		return Result{}, false, err
	}

	logw.Infof(ctx, "Book hit %v: %v", fenStr, m)
	return Result{BestMove: san.Format(a.b.Position(), a.b.Turn(), legal, m)}, true, nil
}

// consumePonderLocked reports a cached ponder result if the current position matches the
// one being pondered, halting the ponder search and folding its PV into a Result. ok=false
// means there was nothing to consume (no ponder, or it no longer matches).
func (a *AI) consumePonderLocked(ctx context.Context) (Result, bool, error) {
	if a.ponder == nil {
		return Result{}, false, nil
	}
	if a.ponder.fen != a.positionLocked() {
		a.ponder.handle.Halt()
		a.ponder = nil
		return Result{}, false, nil
	}

	pv := a.ponder.handle.Halt()
	a.ponder = nil

	logw.Infof(ctx, "Ponder hit %v: %v", a.positionLocked(), pv)
	return a.toResultLocked(pv, false), true, nil
}

// search dispatches a search under opt and converts the result to the external Result shape.
// It holds the AI's lock only to snapshot the position and to fold the result back in, not
// for the (potentially long) duration of the search itself.
func (a *AI) search(ctx context.Context, opt searchctl.Options) (Result, error) {
	a.mu.Lock()
	legal := a.b.Position().LegalMoves(a.b.Turn())
	if len(legal) == 0 {
		a.mu.Unlock()
		return Result{}, ErrNoLegalMoves
	}

	wctx, cancel := context.WithTimeout(ctx, watchdogTimeout)
	defer cancel()

	a.haltActiveLocked(ctx)

	handle, out := a.launcher.Launch(wctx, a.b.Fork(), a.tt, a.noise, a.killers, a.history, opt)
	a.active = handle
	a.mu.Unlock()

	var last search.PV
	var haveResult bool
	for pv := range out {
		last, haveResult = pv, true
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.active = nil

	if wctx.Err() != nil && !haveResult {
		if ctx.Err() != nil {
			return Result{}, ErrCancelledSearch
		}
		return Result{}, ErrSearchTimeout
	}
	if !haveResult || len(last.Moves) == 0 {
		a.clearCacheLocked(ctx)
		return Result{}, ErrInternalInvariant
	}

	best := last.Moves[0]
	if elo, ok := a.opts.EloTarget.V(); ok {
		if noisy, ok := a.selectNoisyRootMoveLocked(ctx, legal, best, last.Score, elo); ok {
			best = noisy
		}
	}

	res := a.toResultLocked(last, wctx.Err() != nil)
	res.BestMove = san.Format(a.b.Position(), a.b.Turn(), legal, best)
	return res, nil
}

func (a *AI) toResultLocked(pv search.PV, aborted bool) Result {
	res := Result{
		Score:    pv.Score,
		Depth:    pv.Depth,
		Nodes:    pv.Nodes,
		HashFull: 1000 * pv.Hash,
		Aborted:  aborted,
	}
	if pv.Time > 0 {
		res.NPS = uint64(float64(pv.Nodes) / pv.Time.Seconds())
	}
	if len(pv.Moves) > 0 {
		legal := a.b.Position().LegalMoves(a.b.Turn())
		res.BestMove = san.Format(a.b.Position(), a.b.Turn(), legal, pv.Moves[0])
	}
	if len(pv.Moves) > 1 {
		next, ok := a.b.Position().Move(pv.Moves[0])
		if ok {
			res.PonderMove = san.Format(next, a.b.Turn().Opponent(), next.LegalMoves(a.b.Turn().Opponent()), pv.Moves[1])
		}
	}
	res.PV = formatPV(a.b.Position(), a.b.Turn(), pv.Moves)
	res.SelDepth = res.Depth
	return res
}

func formatPV(pos *board.Position, turn board.Color, moves []board.Move) []string {
	out := make([]string, 0, len(moves))
	cur, side := pos, turn
	for _, m := range moves {
		legal := cur.LegalMoves(side)
		out = append(out, san.Format(cur, side, legal, m))
		next, ok := cur.Move(m)
		if !ok {
			break
		}
		cur, side = next, side.Opponent()
	}
	return out
}

// selectNoisyRootMoveLocked implements spec.md §4.6 step 4: evaluate up to topKCandidates
// legal root moves by a one-ply static evaluation, add Gaussian noise scaled to the target
// Elo's sigma, and pick the argmax, with a safety clamp against picking a move far worse
// than the true best. ok=false means the true best move should be kept unchanged (no target
// set, or only one legal move).
func (a *AI) selectNoisyRootMoveLocked(ctx context.Context, legal []board.Move, best board.Move, bestScore search.Score, eloTarget uint) (board.Move, bool) {
	if len(legal) <= 1 {
		return board.Move{}, false
	}

	sigma := math.Max(0, (2400-float64(eloTarget))/10)
	if sigma == 0 {
		return board.Move{}, false
	}

	type candidate struct {
		move  board.Move
		score float64
	}
	cands := make([]candidate, 0, len(legal))
	for _, m := range legal {
		var s float64
		if m.Equals(best) {
			s = float64(bestScore)
		} else if !a.b.PushMove(m) {
			continue
		} else {
			s = -float64(a.evaluator.Evaluate(ctx, a.b))
			a.b.PopMove()
		}
		cands = append(cands, candidate{move: m, score: s})
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].score > cands[j].score })
	if len(cands) > topKCandidates {
		cands = cands[:topKCandidates]
	}

	trueBest := cands[0].score
	bestIdx, bestNoisy := 0, math.Inf(-1)
	for i := range cands {
		noisy := cands[i].score + sigma*eval.GaussianNoise(a.rng)
		if noisy > bestNoisy {
			bestNoisy, bestIdx = noisy, i
		}
	}

	pick := cands[bestIdx].move
	if trueBest-cands[bestIdx].score > 400 && a.rng.Float64() < 0.7 {
		top := cands
		if len(top) > 3 {
			top = top[:3]
		}
		pick = top[a.rng.Intn(len(top))].move
	}
	return pick, true
}

// schedulePonderLocked, once a move has been selected, starts a background search on the
// position after bestMove followed by the PV's predicted reply, per spec.md §4.6 step 5.
// No-op if pondering is disabled or the PV had no predicted reply.
func (a *AI) schedulePonderLocked(ctx context.Context, res Result) {
	if !a.opts.Ponder || res.BestMove == "" || res.PonderMove == "" {
		return
	}

	legal := a.b.Position().LegalMoves(a.b.Turn())
	bestMove, ok := matchSAN(a.b.Position(), a.b.Turn(), legal, res.BestMove)
	if !ok {
		return
	}
	afterBest, ok := a.b.Position().Move(bestMove)
	if !ok {
		return
	}
	opponent := a.b.Turn().Opponent()
	replyLegal := afterBest.LegalMoves(opponent)
	ponderMove, ok := matchSAN(afterBest, opponent, replyLegal, res.PonderMove)
	if !ok {
		return
	}
	predicted, ok := afterBest.Move(ponderMove)
	if !ok {
		return
	}

	fenStr := predictedFEN(a.b, bestMove, ponderMove)
	predictedBoard := a.b.Fork()
	predictedBoard.PushMove(bestMove)
	predictedBoard.PushMove(ponderMove)

	// Pondering must outlive the request that triggered it (it runs during the opponent's
	// thinking time, not the caller's); it is stopped explicitly via the handle, never via
	// ctx cancellation, so it is launched against context.Background() rather than ctx.
	opt := searchctl.Options{}
	handle, out := a.launcher.Launch(context.Background(), predictedBoard, a.tt, a.noise, a.killers, a.history, opt)
	go func() {
		for range out {
		}
	}()

	logw.Debugf(ctx, "Pondering %v after %v %v", predicted, bestMove, ponderMove)
	a.ponder = &ponderState{fen: fenStr, handle: handle}
}

// matchSAN re-resolves a previously formatted SAN string back to a board.Move by formatting
// every legal move and comparing, since Result only carries the human-readable notation.
func matchSAN(pos *board.Position, turn board.Color, legal []board.Move, s string) (board.Move, bool) {
	for _, m := range legal {
		if san.Format(pos, turn, legal, m) == s {
			return m, true
		}
	}
	return board.Move{}, false
}
