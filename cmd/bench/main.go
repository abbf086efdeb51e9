// bench runs the engine against a fixed battery of known positions and reports whether each
// one's documented contract holds, alongside nodes/nps/score. Grounded on cmd/perft's
// flag-driven CLI shape, extended to drive pkg/ai.AI instead of raw perft.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/TayDa64/liku-ai/pkg/ai"
	"github.com/TayDa64/liku-ai/pkg/board"
	"github.com/TayDa64/liku-ai/pkg/board/fen"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var (
	depth   = flag.Uint("depth", 8, "Search depth limit applied to every scenario")
	maxTime = flag.Duration("time", 5*time.Second, "Per-scenario time budget")
)

// scenario is one row of the literal end-to-end table.
type scenario struct {
	name    string
	fenStr  string
	minPly  int
	want    []string // any SAN in this set satisfies the scenario; empty means "don't check the move"
	perft   bool     // scenario 6: a pure movegen count check instead of a search
	nodes   int64    // expected perft node count at perftDepth
	perftPl int
}

var scenarios = []scenario{
	{
		name:   "Qxf7# mate-in-1",
		fenStr: "r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 0 1",
		minPly: 2,
		want:   []string{"Qxf7#"},
	},
	{
		name:   "opening book / top root moves",
		fenStr: fen.Initial,
		minPly: 0, // a book hit reports Depth=0; only the move membership is checked here
		want:   []string{"e4", "d4", "c4", "Nf3"},
	},
	{
		name:   "king and pawn opposition",
		fenStr: "8/8/8/3k4/8/3K4/3P4/8 w - - 0 1",
		minPly: 6,
		want:   []string{"Ke3"},
	},
	{
		name:   "tactical queen swing",
		fenStr: "2rr3k/pp3pp1/1nnqbN1p/3pN3/2pP4/2P3Q1/PPB4P/R4RK1 w - - 0 1",
		minPly: 6,
		want:   []string{"Qg6"},
	},
	{
		name:   "promotion-to-queen race",
		fenStr: "8/1P6/8/8/8/5K2/6q1/3k4 w - - 0 1",
		minPly: 4,
		want:   []string{"b8=Q"},
	},
	{
		name:    "perft depth 4 from the start position",
		fenStr:  fen.Initial,
		perft:   true,
		nodes:   197281,
		perftPl: 4,
	},
}

func main() {
	flag.Parse()
	ctx := context.Background()

	failures := 0
	for _, s := range scenarios {
		if s.perft {
			if !runPerft(ctx, s) {
				failures++
			}
			continue
		}
		if !runSearch(ctx, s) {
			failures++
		}
	}

	if failures > 0 {
		logw.Exitf(ctx, "%v/%v scenarios failed", failures, len(scenarios))
	}
	fmt.Printf("all %v scenarios passed\n", len(scenarios))
}

func runSearch(ctx context.Context, s scenario) bool {
	opts := ai.DefaultOptions()
	opts.DepthLimit = *depth
	opts.MaxTime = lang.Some(*maxTime)
	opts.Ponder = false

	a := ai.New(ctx, ai.WithOptions(opts))
	if err := a.Reset(ctx, s.fenStr); err != nil {
		fmt.Printf("FAIL %v: invalid fen %v: %v\n", s.name, s.fenStr, err)
		return false
	}

	res, err := a.GetBestMove(ctx)
	if err != nil {
		fmt.Printf("FAIL %v: %v\n", s.name, err)
		return false
	}

	ok := res.Depth >= s.minPly && matches(res.BestMove, s.want)

	status := "ok"
	if !ok {
		status = "FAIL"
	}
	fmt.Printf("%v %-32v move=%v depth=%v nodes=%v nps=%v score=%v\n",
		status, s.name, res.BestMove, res.Depth, res.Nodes, res.NPS, res.Score)
	return ok
}

func matches(got string, want []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		if got == w {
			return true
		}
	}
	return false
}

func runPerft(ctx context.Context, s scenario) bool {
	pos, turn, _, _, err := fen.Decode(s.fenStr)
	if err != nil {
		fmt.Printf("FAIL %v: invalid fen: %v\n", s.name, err)
		return false
	}

	start := time.Now()
	got := perft(pos, turn, s.perftPl)
	elapsed := time.Since(start)

	ok := got == s.nodes
	status := "ok"
	if !ok {
		status = "FAIL"
	}
	fmt.Printf("%v %-32v depth=%v nodes=%v want=%v time=%v\n",
		status, s.name, s.perftPl, got, s.nodes, elapsed)
	return ok
}

func perft(pos *board.Position, turn board.Color, depth int) int64 {
	if depth == 0 {
		return 1
	}
	var nodes int64
	for _, m := range pos.PseudoLegalMoves(turn) {
		if next, ok := pos.Move(m); ok {
			nodes += perft(next, turn.Opponent(), depth-1)
		}
	}
	return nodes
}
