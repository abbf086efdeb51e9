package search

import (
	"context"

	"github.com/TayDa64/liku-ai/pkg/board"
	"github.com/TayDa64/liku-ai/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Quiescence implements a capture/check-extended alpha-beta search run at the leaves of
// full-width Search, so the static evaluator is never sampled mid-exchange. Grounded on
// the teacher's pkg/search/quiescence.go.
//
// SEE is approximated as a sign test (victim value minus attacker value >= 0 admits the
// capture) rather than a full static-exchange walk of the capture chain on a square -- a
// documented simplification, not a full SEE implementation.
type Quiescence struct {
	Eval  eval.Evaluator
	Noise eval.Random
}

func (q Quiescence) QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, Score) {
	run := &runQuiescence{eval: q.Eval, noise: q.Noise, b: b}

	low, high := NegInfScore, InfScore
	rootPly := b.Ply()
	if sctx != nil {
		if !sctx.Alpha.IsInvalid() {
			low = sctx.Alpha
		}
		if !sctx.Beta.IsInvalid() {
			high = sctx.Beta
		}
		run.stats = sctx.Stats
	}
	run.rootPly = rootPly

	score := run.search(ctx, low, high)
	return run.nodes, score
}

type runQuiescence struct {
	eval    eval.Evaluator
	noise   eval.Random
	b       *board.Board
	nodes   uint64
	stats   *Stats
	rootPly int
}

func (r *runQuiescence) search(ctx context.Context, alpha, beta Score) Score {
	if contextx.IsCancelled(ctx) {
		return ZeroScore
	}
	if r.b.Result().Outcome == board.Draw {
		return ZeroScore
	}

	r.nodes++
	if r.stats != nil {
		r.stats.QNodes++
		r.stats.observePly(r.b.Ply() - r.rootPly)
	}

	turn := r.b.Turn()
	standPat := HeuristicScore(r.eval.Evaluate(ctx, r.b) + r.noise.Evaluate(ctx, r.b))
	alpha = Max(alpha, standPat)
	if alpha >= beta {
		return alpha // stand-pat cutoff: side to move need not capture
	}

	inCheck := r.b.Position().IsChecked(turn)

	priority, explore := QuiescentExploration(ctx, r.b)

	hasLegalMove := false
	moves := board.NewMoveList(r.b.Position().PseudoLegalMoves(turn), priority)
	for {
		m, ok := moves.Next()
		if !ok {
			break
		}
		if !explore(m) {
			continue // quiescence explores only captures/promotions unless in check
		}
		if !inCheck && m.IsCapture() && !seeAdmits(m) {
			continue // losing capture, sign-test SEE approximation
		}
		if !r.b.PushMove(m) {
			continue
		}

		score := IncrementMateDistance(r.search(ctx, beta.Negate(), alpha.Negate())).Negate()
		alpha = Max(alpha, score)

		r.b.PopMove()
		hasLegalMove = true

		if alpha >= beta {
			break
		}
	}

	if !hasLegalMove && inCheck {
		// In check every pseudo-legal move is explored above, so no legal move was found;
		// LegalMoves confirms checkmate before scoring it.
		if len(r.b.Position().LegalMoves(turn)) == 0 {
			return Mated()
		}
	}
	return alpha
}

// seeAdmits is the SEE sign-test approximation: a capture is worth exploring in quiescence
// iff the captured piece is worth at least as much as the capturing piece.
func seeAdmits(m board.Move) bool {
	return eval.NominalValueGain(m)-eval.NominalValue(m.Piece) >= 0
}
