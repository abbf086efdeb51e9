package board

import "fmt"

// Score is a signed move-ordering priority or position score in centipawns. Positive
// favors white. Used as a move-ordering hint (see Move.Score); position and search
// scores proper live in pkg/eval and pkg/search, which convert to/from centipawns.
type Score int32

const (
	MinScore Score = -30000
	MaxScore Score = 30000
)

func (s Score) String() string {
	return fmt.Sprintf("%.2f", float64(s)/100)
}
