package search

import (
	"context"

	"github.com/TayDa64/liku-ai/pkg/board"
	"github.com/TayDa64/liku-ai/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Options gates the forward-pruning heuristics of Negamax, mirroring how the teacher
// gates behavior through plain struct fields rather than a plugin registry (see
// search.Exploration/search.Selection in the teacher's exploration.go/selection.go).
// Null-move pruning, futility pruning and razoring have no teacher analogue at all
// (SPEC_FULL.md §4.5) and live entirely behind these toggles.
type Options struct {
	// NullMove enables null-move pruning (step 6): d >= NullMoveMinDepth, side to move not
	// in check, and not a bare king+pawns endgame.
	NullMove          bool
	NullMoveMinDepth  int
	NullMoveReduction int

	// LMR enables late-move reductions (step 8) for quiet, non-check moves past the first
	// LMRMinMoveIndex candidates, at depth >= LMRMinDepth.
	LMR             bool
	LMRMinDepth     int
	LMRMinMoveIndex int

	// Futility enables futility pruning (step 5) at depth <= FutilityMaxDepth: quiet moves
	// are skipped outright when the static eval plus a depth-indexed margin cannot reach
	// alpha. Known simplification: the spec carves out moves that give check, but cheaply
	// testing "does this quiet move give check" before making it would require its own
	// attack computation per candidate, so this implementation prunes every quiet move in
	// that band except the first move searched at the node, documented here rather than
	// silently dropped.
	Futility         bool
	FutilityMaxDepth int
	FutilityMargins  []Score // indexed by depth, 1-based; index 0 unused

	// Razoring enables dropping straight to quiescence (step 4) at depth <=
	// RazorMaxDepth when static eval plus RazorMargin still can't reach alpha.
	Razoring      bool
	RazorMaxDepth int
	RazorMargin   Score
}

// DefaultOptions returns the heuristic thresholds used unless the caller overrides them,
// chosen from the typical ranges spec.md §4.5 names for each technique.
func DefaultOptions() Options {
	return Options{
		NullMove:           true,
		NullMoveMinDepth:   3,
		NullMoveReduction:  2,
		LMR:                true,
		LMRMinDepth:        3,
		LMRMinMoveIndex:    3,
		Futility:           true,
		FutilityMaxDepth:   3,
		FutilityMargins:    []Score{0, 120, 220, 340},
		Razoring:      true,
		RazorMaxDepth: 2,
		RazorMargin:   300,
	}
}

func (o Options) futilityMargin(depth int) Score {
	if depth <= 0 || depth >= len(o.FutilityMargins) {
		if len(o.FutilityMargins) == 0 {
			return 0
		}
		return o.FutilityMargins[len(o.FutilityMargins)-1]
	}
	return o.FutilityMargins[depth]
}

// Negamax implements negamax search with alpha-beta pruning, principal-variation search,
// null-move pruning, late-move reductions, futility pruning and razoring, backed by a
// transposition table and quiescence search at the leaves. Grounded on, in contribution
// order: the teacher's search.AlphaBeta (alphabeta.go, overall TT-probe-then-recurse
// shape; the alpha update here is fail-hard, so a node never returns less than its incoming
// alpha), search.PVS (pvs.go, null-window re-search), and
// search.Quiescence (quiescence.go, leaf extension) -- see SPEC_FULL.md §4.5 for the full
// grounding ledger. Null-move/futility/razoring are new relative to the teacher.
type Negamax struct {
	Explore   Exploration
	Evaluator eval.Evaluator // static eval, used by the pruning heuristics below depth 0
	Eval      QuietSearch    // quiescence search at depth 0
	Opt       Options
}

func (n Negamax) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, Score, []board.Move, error) {
	run := &runNegamax{
		explore: fullIfNotSet(n.Explore),
		static:  n.Evaluator,
		eval:    n.Eval,
		opt:     n.Opt,
		tt:      sctx.TT,
		noise:   sctx.Noise,
		killers: sctx.Killers,
		history: sctx.History,
		ponder:  sctx.Ponder,
		stats:   sctx.Stats,
		rootPly: b.Ply(),
		b:       b,
	}

	low, high := NegInfScore, InfScore
	if !sctx.Alpha.IsInvalid() {
		low = sctx.Alpha
	}
	if !sctx.Beta.IsInvalid() {
		high = sctx.Beta
	}

	score, moves := run.search(ctx, depth, low, high, true)
	if score.IsInvalid() || contextx.IsCancelled(ctx) {
		return run.nodes, InvalidScore, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

type runNegamax struct {
	explore Exploration
	static  eval.Evaluator
	eval    QuietSearch
	opt     Options
	tt      TranspositionTable
	noise   eval.Random
	killers *KillerTable
	history *HistoryTable
	stats   *Stats
	b       *board.Board
	nodes   uint64

	rootPly int    // b.Ply() at the start of this Search call, to derive a relative ply
	ponder  []board.Move
}

// search returns the positive score for the side to move at the current node, and the
// principal variation from this node onward. A returned InvalidScore means the search was
// cancelled; callers must check IsInvalid before negating it (negating InvalidScore would
// silently produce a valid-looking score).
func (r *runNegamax) search(ctx context.Context, depth int, alpha, beta Score, isPV bool) (Score, []board.Move) {
	if contextx.IsCancelled(ctx) {
		return InvalidScore, nil
	}
	if r.b.Result().Outcome == board.Draw {
		return ZeroScore, nil
	}

	ply := r.b.Ply() - r.rootPly
	r.stats.observePly(ply)

	origAlpha := alpha

	var ttMove board.Move
	if bound, storedDepth, storedScore, move, ok := r.tt.Read(r.b.Hash()); ok {
		ttMove = move
		if r.stats != nil {
			r.stats.TTHits++
		}
		if storedDepth >= depth {
			score := AdjustMateScoreForRead(storedScore, 0, ply)
			switch bound {
			case ExactBound:
				if r.stats != nil {
					r.stats.TTCutoffs++
				}
				return score, nil
			case LowerBound:
				if score >= beta {
					if r.stats != nil {
						r.stats.TTCutoffs++
					}
					return score, nil
				}
			case UpperBound:
				if score <= alpha {
					if r.stats != nil {
						r.stats.TTCutoffs++
					}
					return score, nil
				}
			}
		}
	}

	if depth <= 0 {
		nodes, score := r.quiesce(ctx, alpha, beta)
		r.tt.Write(r.b.Hash(), ExactBound, ply, 0, AdjustMateScoreForWrite(score, ply, 0), board.Move{})
		_ = nodes
		return score, nil
	}

	r.nodes++
	if r.stats != nil {
		r.stats.Nodes++
	}

	inCheck := r.b.Position().IsChecked(r.b.Turn())

	var staticEval Score
	haveStatic := false
	static := func() Score {
		if !haveStatic {
			staticEval = HeuristicScore(r.static.Evaluate(ctx, r.b))
			haveStatic = true
		}
		return staticEval
	}

	if r.opt.Razoring && depth <= r.opt.RazorMaxDepth && !inCheck && !isPV {
		if static()+r.opt.RazorMargin <= alpha {
			nodes, score := r.quiesce(ctx, alpha, beta)
			_ = nodes
			if r.stats != nil {
				r.stats.RazorCutoffs++
			}
			return score, nil
		}
	}

	futile := false
	if r.opt.Futility && depth >= 1 && depth <= r.opt.FutilityMaxDepth && !inCheck && !isPV {
		if static()+r.opt.futilityMargin(depth) <= alpha {
			futile = true
		}
	}

	if r.opt.NullMove && depth >= r.opt.NullMoveMinDepth && !inCheck && !isPV &&
		r.b.Position().HasNonPawnMaterial(r.b.Turn()) {
		if r.b.PushNullMove() {
			reduced := depth - 1 - r.opt.NullMoveReduction
			if reduced < 0 {
				reduced = 0
			}
			score, _ := r.search(ctx, reduced, beta.Negate(), beta.Negate()+1, false)
			r.b.PopNullMove()

			if !score.IsInvalid() {
				score = IncrementMateDistance(score).Negate()
				if score >= beta {
					if r.stats != nil {
						r.stats.NullMoveCutoffs++
					}
					return beta, nil
				}
			}
		}
	}

	killers := [2]board.Move{}
	if r.killers != nil {
		killers = r.killers.At(ply)
	}
	priority, explore := r.explore(ctx, r.b)
	priority = WithKillersAndHistory(priority, killers, r.history, r.b.Turn())
	priority = board.First(ttMove, priority)

	var pondered board.Move
	if len(r.ponder) > 0 {
		pondered = r.ponder[0]
		priority = board.First(pondered, priority)
	}

	moves := board.NewMoveList(r.b.Position().PseudoLegalMoves(r.b.Turn()), priority)

	hasLegalMove := false
	moveIndex := 0
	var pv []board.Move

	for {
		move, ok := moves.Next()
		if !ok {
			break
		}
		if !explore(move) {
			continue
		}

		quiet := !move.IsCapture() && !move.IsPromotion()
		if futile && moveIndex > 0 && quiet {
			if r.stats != nil {
				r.stats.FutilityPrunes++
			}
			continue
		}

		turn := r.b.Turn()
		if !r.b.PushMove(move) {
			continue
		}
		hasLegalMove = true

		outerPonder := r.ponder
		if len(outerPonder) > 0 && pondered.Equals(move) {
			r.ponder = outerPonder[1:]
		} else {
			r.ponder = nil
		}

		givesCheck := r.b.Position().IsChecked(r.b.Turn())

		var score Score
		var rem []board.Move

		switch {
		case moveIndex == 0:
			score, rem = r.search(ctx, depth-1, beta.Negate(), alpha.Negate(), isPV)

		default:
			searchDepth := depth - 1
			reduction := 0
			if r.opt.LMR && depth >= r.opt.LMRMinDepth && moveIndex >= r.opt.LMRMinMoveIndex &&
				quiet && !givesCheck && !inCheck {
				reduction = lmrReduction(depth, moveIndex)
				searchDepth -= reduction
				if searchDepth < 0 {
					searchDepth = 0
				}
				if r.stats != nil {
					r.stats.LMRReductions++
				}
			}

			score, rem = r.search(ctx, searchDepth, alpha.Negate()-1, alpha.Negate(), false)
			if !score.IsInvalid() && reduction > 0 && IncrementMateDistance(score).Negate() > alpha {
				score, rem = r.search(ctx, depth-1, alpha.Negate()-1, alpha.Negate(), false)
			}
			if !score.IsInvalid() {
				if s := IncrementMateDistance(score).Negate(); s > alpha && s < beta {
					score, rem = r.search(ctx, depth-1, beta.Negate(), alpha.Negate(), true)
				}
			}
		}

		r.ponder = outerPonder
		if score.IsInvalid() {
			r.b.PopMove()
			return InvalidScore, nil
		}
		score = IncrementMateDistance(score).Negate()

		r.b.PopMove()
		moveIndex++

		if alpha.Less(score) {
			alpha = score
			pv = append([]board.Move{move}, rem...)
		}

		if alpha >= beta {
			if quiet {
				if r.killers != nil {
					r.killers.Record(ply, move)
				}
				if r.history != nil {
					r.history.Record(turn, move, depth)
				}
			}
			if r.stats != nil {
				r.stats.BetaCutoffs++
			}
			break
		}
	}

	if !hasLegalMove {
		if result := r.b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return Mated(), nil
		}
		return ZeroScore, nil
	}

	var bound Bound
	switch {
	case alpha >= beta:
		bound = LowerBound
	case alpha > origAlpha:
		bound = ExactBound
	default:
		bound = UpperBound
	}
	r.tt.Write(r.b.Hash(), bound, ply, depth, AdjustMateScoreForWrite(alpha, ply, 0), firstOrNone(pv))

	return alpha, pv
}

func (r *runNegamax) quiesce(ctx context.Context, alpha, beta Score) (uint64, Score) {
	qctx := &Context{Alpha: alpha, Beta: beta, TT: r.tt, Noise: r.noise, Stats: r.stats}
	nodes, score := r.eval.QuietSearch(ctx, qctx, r.b)
	r.nodes += nodes
	if r.stats != nil {
		r.stats.QNodes += nodes
	}
	return nodes, score
}

// lmrReduction is a simple table-driven late-move-reduction schedule: deeper nodes and
// later move indices reduce more, capped at 2 plies to keep the re-search cost bounded.
func lmrReduction(depth, moveIndex int) int {
	switch {
	case depth >= 6 && moveIndex >= 9:
		return 2
	default:
		return 1
	}
}

func fullIfNotSet(e Exploration) Exploration {
	if e == nil {
		return FullExploration
	}
	return e
}
