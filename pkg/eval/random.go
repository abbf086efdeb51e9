package eval

import (
	"context"
	"math"
	"math/rand"

	"github.com/TayDa64/liku-ai/pkg/board"
)

// Random is a randomized noise generator, grounded directly on the teacher's eval.Random:
// it adds a small amount of jitter to the static evaluation so that two engines at
// identical strength settings don't play the exact same game twice. limit specifies how
// many centipawns to add/remove in the range [-limit/2, limit-1-limit/2]. The zero value always
// returns zero.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{limit: limit, rand: rand.New(rand.NewSource(seed))}
}

func (n Random) Evaluate(_ context.Context, _ *board.Board) Centipawns {
	if n.limit <= 0 {
		return 0
	}
	return Centipawns(n.rand.Intn(n.limit) - n.limit/2)
}

// GaussianNoise draws a standard-normal sample via the Box-Muller transform, driven by r.
// Used by pkg/ai to scale root-move selection noise to a target Elo strength (SPEC_FULL.md
// §4.5): unlike Random's uniform leaf-eval jitter, this is applied once per search to pick
// among top candidate root moves, so it needs a proper normal distribution rather than a
// uniform one.
func GaussianNoise(r *rand.Rand) float64 {
	var u1, u2 float64
	for u1 == 0 {
		u1 = r.Float64()
	}
	u2 = r.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
