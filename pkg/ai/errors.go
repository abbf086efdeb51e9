package ai

import "errors"

// Sentinel errors returned by AI, checked with errors.Is, generalizing the teacher's single
// search.ErrHalted sentinel into the full error-kind set spec.md §7 names.
var (
	// ErrNoLegalMoves is returned by GetBestMove/GetHint when the side to move has no legal
	// move (checkmate or stalemate): there is nothing for the caller to play.
	ErrNoLegalMoves = errors.New("ai: no legal moves")

	// ErrIllegalMove is returned by Play when the requested move is not legal in the
	// current position.
	ErrIllegalMove = errors.New("ai: illegal move")

	// ErrSearchTimeout is returned when the absolute per-call watchdog (watchdogTimeout)
	// expired before the search produced even a depth-1 result.
	ErrSearchTimeout = errors.New("ai: search timed out before any result")

	// ErrCancelledSearch is returned when the caller's context was cancelled before the
	// search produced a result.
	ErrCancelledSearch = errors.New("ai: search cancelled")

	// ErrInternalInvariant signals a violated internal invariant (e.g. the search reported
	// success with an empty principal variation). ClearCache is called before this error is
	// returned, per spec.md §7.
	ErrInternalInvariant = errors.New("ai: internal invariant violated")
)
