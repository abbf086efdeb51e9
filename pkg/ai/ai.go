// Package ai orchestrates opening-book lookups, search dispatch, strength-limited move
// selection and pondering into the single entry point a host application calls, generalizing
// the teacher's pkg/engine.Engine (see SPEC_FULL.md §4.6).
package ai

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/TayDa64/liku-ai/pkg/board"
	"github.com/TayDa64/liku-ai/pkg/board/fen"
	"github.com/TayDa64/liku-ai/pkg/book"
	"github.com/TayDa64/liku-ai/pkg/eval"
	"github.com/TayDa64/liku-ai/pkg/search"
	"github.com/TayDa64/liku-ai/pkg/search/searchctl"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Options are the dynamic, user-adjustable settings SetConfig/GetConfig expose.
type Options struct {
	// DepthLimit caps iterative deepening at a fixed ply depth. Zero means no limit.
	DepthLimit uint
	// Hash is the transposition table size in MB. Zero disables the transposition table.
	Hash uint
	// Noise adds centipawn randomness to leaf evaluations, same knob as the teacher's
	// engine.Options.Noise.
	Noise uint
	// MaxTime is the per-move wall-clock budget, if set (spec.md §4.5/§6's maxTimeMs).
	MaxTime lang.Optional[time.Duration]
	// EloTarget, if set, scales root-move selection noise to approximate the given playing
	// strength (spec.md §4.6 step 4). Unset means full strength.
	EloTarget lang.Optional[uint]
	// Ponder enables speculative background search on the opponent's predicted reply.
	Ponder bool
	// UseBook enables opening-book probing before search dispatch.
	UseBook bool
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v, noise=%v, elo=%v, ponder=%v, book=%v}",
		o.DepthLimit, o.Hash, o.Noise, o.EloTarget, o.Ponder, o.UseBook)
}

func DefaultOptions() Options {
	return Options{Hash: 64, UseBook: true, Ponder: true}
}

// AI encapsulates game-playing logic: opening book, search dispatch, strength limiting and
// pondering. Generalizes the teacher's engine.Engine, which held only a board, a
// transposition table and a launcher; AI additionally owns killer/history tables, an
// evaluator, an opening book and a ponder handle.
type AI struct {
	launcher  searchctl.Launcher
	factory   search.TranspositionTableFactory
	evaluator eval.Evaluator
	explore   search.Exploration
	book      book.Book
	zt        *board.ZobristTable
	seed      int64
	pawnBits  uint
	customEvaluator bool
	opts      Options

	b       *board.Board
	tt      search.TranspositionTable
	noise   eval.Random
	killers *search.KillerTable
	history *search.HistoryTable
	rng     *rand.Rand

	active searchctl.Handle
	ponder *ponderState

	mu sync.Mutex
}

// Option configures an AI at construction time.
type Option func(*AI)

// WithTable configures the transposition table factory used on Reset.
func WithTable(factory search.TranspositionTableFactory) Option {
	return func(a *AI) { a.factory = factory }
}

// WithOptions sets the initial dynamic Options.
func WithOptions(opts Options) Option {
	return func(a *AI) { a.opts = opts }
}

// WithZobrist configures the random seed used to build the Zobrist table, instead of the
// default seed of zero.
func WithZobrist(seed int64) Option {
	return func(a *AI) { a.seed = seed }
}

// WithBook configures the opening book consulted by GetBestMove. Defaults to book.Standard.
func WithBook(b book.Book) Option {
	return func(a *AI) { a.book = b }
}

// WithEvaluator overrides the default evaluator (eval.Standard). Mainly useful for tests
// that want a cheap, deterministic evaluator instead of the full component stack. ClearCache
// no longer rebuilds the evaluator's pawn hash automatically once this option is used.
func WithEvaluator(e eval.Evaluator) Option {
	return func(a *AI) {
		a.evaluator = e
		a.customEvaluator = true
	}
}

// New creates an AI at the standard starting position.
func New(ctx context.Context, opts ...Option) *AI {
	a := &AI{
		factory:  search.NewTranspositionTable,
		book:     book.Standard,
		pawnBits: 16,
		opts:     DefaultOptions(),
	}
	for _, fn := range opts {
		fn(a)
	}
	if a.evaluator == nil {
		a.evaluator = eval.Standard(a.pawnBits)
	}
	if a.explore == nil {
		a.explore = search.FullExploration
	}
	a.rebuildLauncher()
	a.zt = board.NewZobristTable(a.seed)
	a.rng = rand.New(rand.NewSource(a.seed))

	if err := a.Reset(ctx, fen.Initial); err != nil {
		logw.Exitf(ctx, "invalid initial position: %v", err)
	}

	logw.Infof(ctx, "Initialized AI %v, options=%v", version, a.opts)
	return a
}

// Name returns the engine name and version, matching the teacher's Engine.Name shape.
func (a *AI) Name() string {
	return fmt.Sprintf("liku-ai %v", version)
}

// Reset resets the engine to the position described by a FEN record, clearing all per-game
// caches (transposition table, killer/history tables, pawn hash inside the evaluator).
func (a *AI) Reset(ctx context.Context, position string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	logw.Infof(ctx, "Reset %v, opts=%v", position, a.opts)

	a.haltAllLocked(ctx)

	pos, turn, noprogress, fullmoves, err := fen.Decode(position)
	if err != nil {
		return err
	}
	a.b = board.NewBoard(a.zt, pos, turn, noprogress, fullmoves)

	a.clearCacheLocked(ctx)
	return nil
}

// Board returns a forked, independently mutable copy of the current board.
func (a *AI) Board() *board.Board {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.b.Fork()
}

// Position returns the current position in FEN format.
func (a *AI) Position() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.positionLocked()
}

func (a *AI) positionLocked() string {
	return fen.Encode(a.b.Position(), a.b.Turn(), a.b.NoProgress(), a.b.FullMoves())
}

// Play applies move (coordinate notation, e.g. "e2e4" or "a7a8q"), usually a move made by
// the human opponent. Halts any active foreground search, but leaves a running ponder search
// untouched as long as the resulting position still matches its prediction (spec.md §4.6
// step 6); a non-matching ponder is discarded.
func (a *AI) Play(ctx context.Context, move string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}

	a.haltActiveLocked(ctx)

	for _, m := range a.b.Position().PseudoLegalMoves(a.b.Turn()) {
		if !candidate.Equals(m) {
			continue
		}
		if !a.b.PushMove(m) {
			return ErrIllegalMove
		}
		logw.Infof(ctx, "Play %v: %v", m, a.b)
		a.invalidatePonderIfMismatchLocked()
		return nil
	}
	return ErrIllegalMove
}

// TakeBack undoes the latest move.
func (a *AI) TakeBack(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.haltAllLocked(ctx)

	m, ok := a.b.PopMove()
	if !ok {
		return fmt.Errorf("no move to take back")
	}
	logw.Infof(ctx, "Takeback %v", m)
	return nil
}

// SetConfig updates the dynamic options; they take effect on the next search.
func (a *AI) SetConfig(opts Options) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.opts = opts
}

// GetConfig returns the current dynamic options.
func (a *AI) GetConfig() Options {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.opts
}

// Stop halts any active or pondering search and discards their results.
func (a *AI) Stop(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.haltAllLocked(ctx)
}

// ClearCache discards the transposition table, killer/history tables and the evaluator's
// pawn hash, per spec.md §7's ErrInternalInvariant recovery path. Safe to call at any time;
// does not affect the current position.
func (a *AI) ClearCache(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.clearCacheLocked(ctx)
}

func (a *AI) clearCacheLocked(ctx context.Context) {
	a.tt = search.NoTranspositionTable{}
	if a.opts.Hash > 0 {
		a.tt = a.factory(ctx, uint64(a.opts.Hash)<<20)
	}
	a.noise = eval.Random{}
	if a.opts.Noise > 0 {
		a.noise = eval.NewRandom(int(a.opts.Noise), a.seed)
	}
	a.killers = search.NewKillerTable()
	a.history = search.NewHistoryTable()
	if !a.customEvaluator {
		a.evaluator = eval.Standard(a.pawnBits)
		a.rebuildLauncher()
	}
}

// rebuildLauncher (re)constructs the search launcher around the current evaluator. Must be
// called whenever a.evaluator is replaced, since Negamax holds the evaluator by value rather
// than through a level of indirection -- otherwise an already-built launcher would keep
// searching with a stale evaluator (and a stale pawn hash) after ClearCache.
func (a *AI) rebuildLauncher() {
	a.launcher = &searchctl.Iterative{Root: search.Negamax{
		Explore:   a.explore,
		Evaluator: a.evaluator,
		Eval:      search.Quiescence{Eval: a.evaluator},
		Opt:       search.DefaultOptions(),
	}}
}

// haltAllLocked unconditionally halts both the active search and any ponder, for operations
// (Reset, TakeBack, Stop) after which a previously predicted position can never again be
// reached going forward.
func (a *AI) haltAllLocked(ctx context.Context) {
	a.haltActiveLocked(ctx)
	if a.ponder != nil {
		a.ponder.handle.Halt()
		a.ponder = nil
	}
}

func (a *AI) haltActiveLocked(ctx context.Context) {
	if a.active != nil {
		pv := a.active.Halt()
		logw.Infof(ctx, "Search halted: %v", pv)
		a.active = nil
	}
}

// invalidatePonderIfMismatchLocked discards the active ponder if the position it predicted
// no longer matches the current one. A match leaves it running so GetBestMove can consume it.
func (a *AI) invalidatePonderIfMismatchLocked() {
	if a.ponder == nil || a.ponder.fen == a.positionLocked() {
		return
	}
	a.ponder.handle.Halt()
	a.ponder = nil
}
