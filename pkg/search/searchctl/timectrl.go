package searchctl

import (
	"context"
	"fmt"
	"time"

	"github.com/TayDa64/liku-ai/pkg/board"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// TimeControl represents time control information for one side of a game.
type TimeControl struct {
	White, Black time.Duration
	Moves        int // 0 == rest of game

	// Fixed marks a single maxTimeMs-style budget for the upcoming move (spec.md §4.5/§6)
	// rather than a clock-remaining model: White/Black both hold the flat per-move budget,
	// and Limits returns a fraction of it directly instead of amortizing over an assumed
	// move count. Set via FixedTimeControl.
	Fixed bool
}

// FixedTimeControl returns a TimeControl that budgets exactly max for the upcoming move,
// independent of any clock-remaining model, for callers (pkg/ai) that take a single
// maxTimeMs parameter rather than White/Black clocks.
func FixedTimeControl(max time.Duration) TimeControl {
	return TimeControl{White: max, Black: max, Fixed: true}
}

// Limits returns a soft and hard limit for making a move with the given color. After the
// soft limit, no new iteration should be started; the hard limit is an absolute cutoff
// enforced by a watchdog regardless of what the search is doing.
func (t TimeControl) Limits(c board.Color) (time.Duration, time.Duration) {
	remainder := t.White
	if c == board.Black {
		remainder = t.Black
	}

	if t.Fixed {
		return remainder * 3 / 4, remainder
	}

	// Assume 40 moves left in the game if nothing else is known. Let B = T/80 be the soft
	// timeout and the hard timeout be 3B.
	moves := time.Duration(40)
	if t.Moves > 0 {
		moves = time.Duration(t.Moves) + 1
	}

	soft := remainder / (2 * moves)
	hard := 3 * soft
	return soft, hard
}

func (t TimeControl) String() string {
	if t.Fixed {
		return fmt.Sprintf("%.1fs fixed", t.White.Seconds())
	}
	if t.Moves == 0 {
		return fmt.Sprintf("%.1f<>%.1f", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.Moves)
}

// EnforceTimeControl arms a hard-limit watchdog that halts h once the time control's hard
// limit elapses, and returns the soft limit the caller should itself observe between
// iterations. Returns ok=false if no time control was set, in which case the search runs
// to its depth limit (or is halted externally) with no time-based cutoff.
func EnforceTimeControl(ctx context.Context, h Handle, tc lang.Optional[TimeControl], turn board.Color) (time.Duration, bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	soft, hard := c.Limits(turn)
	time.AfterFunc(hard, func() {
		h.Halt()
	})

	logw.Debugf(ctx, "Time control limits for %v: [%v; %v]", c, soft, hard)
	return soft, true
}
