package search

import (
	"fmt"

	"github.com/TayDa64/liku-ai/pkg/eval"
)

// Centipawns aliases eval.Centipawns so search code can refer to static evaluation values
// without importing pkg/eval everywhere a signature mentions one.
type Centipawns = eval.Centipawns

// Score is a signed search score in centipawns, positive favoring the side to move at the
// node it was computed for. Grounded on the teacher's eval.Score (Unit/Crop/Max/Min) and on
// the mate-aware Score methods its newer alphabeta.go/quiescence.go call
// (IsInvalid/Negate/Less/IncrementMateDistance/MateDistance) -- this snapshot's retrieval
// pack never carries the definition backing those calls, so Score below is a from-scratch,
// internally consistent reconstruction of that contract rather than a copy.
type Score int32

const (
	ZeroScore Score = 0

	// InfScore/NegInfScore bound the representable range; MateScore sits just inside it so
	// mate distances can be encoded as an offset from the bound without overflowing.
	InfScore    Score = 1 << 20
	NegInfScore Score = -InfScore

	// InvalidScore is returned by a cancelled search and must never be written to the
	// transposition table or compared against a real score except via IsInvalid.
	InvalidScore Score = InfScore + 1

	// MateScore is the score of delivering checkmate on the current move (mate distance 1).
	// Scores with magnitude strictly greater than mateThreshold encode "mate in N plies".
	MateScore     Score = InfScore - 1
	mateThreshold Score = MateScore - 1000
)

func (s Score) String() string {
	if d, ok := s.MateDistance(); ok {
		if s > 0 {
			return fmt.Sprintf("#%d", (d+1)/2)
		}
		return fmt.Sprintf("#-%d", (d+1)/2)
	}
	return fmt.Sprintf("%d", int32(s))
}

func (s Score) IsInvalid() bool {
	return s == InvalidScore
}

// Negate flips the score to the opponent's perspective.
func (s Score) Negate() Score {
	return -s
}

// Less reports whether s is strictly worse than o for the side it was computed for.
func (s Score) Less(o Score) bool {
	return s < o
}

// MateDistance returns the number of plies to mate if s encodes a forced mate. The distance
// is never negative; the sign of s says who mates (positive: this side mates, negative: this
// side gets mated).
func (s Score) MateDistance() (int, bool) {
	switch {
	case s > mateThreshold:
		return int(InfScore - s), true
	case s < -mateThreshold:
		return int(InfScore + s), true
	default:
		return 0, false
	}
}

// IncrementMateDistance ages a mate score by one ply as it propagates up the tree, so a
// mate found deeper in the search is valued less than an equivalent, shallower mate. Plain
// (non-mate) scores pass through unchanged.
func IncrementMateDistance(s Score) Score {
	switch {
	case s > mateThreshold:
		return s - 1
	case s < -mateThreshold:
		return s + 1
	default:
		return s
	}
}

// Mated returns the score for the side to move having just been checkmated: the worst
// possible outcome, mate distance zero.
func Mated() Score {
	return NegInfScore
}

func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}

// Crop clamps s into the representable, non-invalid range.
func Crop(s Score) Score {
	switch {
	case s > InfScore:
		return InfScore
	case s < NegInfScore:
		return NegInfScore
	default:
		return s
	}
}

// HeuristicScore converts a static position evaluation into a Score, clamped away from the
// mate-encoding range so a large static evaluation is never mistaken for a forced mate.
func HeuristicScore(c Centipawns) Score {
	s := Score(c)
	switch {
	case s > mateThreshold-1:
		return mateThreshold - 1
	case s < -(mateThreshold - 1):
		return -(mateThreshold - 1)
	default:
		return s
	}
}
