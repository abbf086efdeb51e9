// Package oracle exposes legal-move generation and game-state queries behind a narrow
// capability interface, for hosts that want move-oracle semantics (load/moves/move/undo,
// terminal-state queries) without depending on pkg/board's bitboard internals directly.
// pkg/search's hot recursive loop talks to pkg/board.Position directly instead of through
// this interface-dispatch boundary (see SPEC_FULL.md §6); Oracle targets embedding call
// sites -- a UCI/console front end or a test harness -- that want the coarser, single-line-
// of-play API and don't run inside the search loop.
package oracle

import "github.com/TayDa64/liku-ai/pkg/board"

// Oracle is the legal-move and game-state authority an embedding host consults. It
// owns exactly one line of play: Move/Undo mutate it in place, mirroring how the teacher's
// own search walks a single shared board up and down the tree.
type Oracle interface {
	// Load resets the oracle to the position described by a FEN record.
	Load(fenStr string) error

	// FEN renders the current position as a FEN record.
	FEN() string

	// Turn returns the side to move.
	Turn() board.Color

	// Moves returns every legal move for the side to move, potentially empty.
	Moves() []board.Move

	// Move plays m, which must be one of the moves returned by Moves. Returns
	// ErrIllegalMove if m is not legal in the current position.
	Move(m board.Move) error

	// Undo takes back the last move played via Move, if any.
	Undo() (board.Move, bool)

	// InCheck reports whether the side to move is in check.
	InCheck() bool

	// IsCheckmate reports whether the side to move has no legal moves and is in check.
	IsCheckmate() bool

	// IsStalemate reports whether the side to move has no legal moves and is not in check.
	IsStalemate() bool

	// IsDraw reports whether the game is adjudicated a draw by any rule (repetition,
	// fifty-move, insufficient material, or stalemate).
	IsDraw() bool

	// IsInsufficientMaterial reports whether neither side has enough material to mate.
	IsInsufficientMaterial() bool

	// IsThreefoldRepetition reports whether the current position has occurred at least
	// three times with the same side to move, castling rights and en passant target.
	IsThreefoldRepetition() bool

	// Board exposes the underlying game-history-aware board, for callers that need the
	// zobrist hash or ply count directly rather than re-deriving it from FEN.
	Board() *board.Board

	// History returns every move played since Load, oldest first.
	History() []board.Move
}
