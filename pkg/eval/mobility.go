package eval

import (
	"context"

	"github.com/TayDa64/liku-ai/pkg/board"
)

// mobilityWeight is the centipawn value of each additional legal-ish destination square a
// piece type can reach, not counting squares occupied by its own side.
var mobilityWeight = map[board.Piece]Centipawns{
	board.Knight: 4,
	board.Bishop: 5,
	board.Rook:   2,
	board.Queen:  1,
}

// Mobility rewards pieces with more available squares, counted as pseudo-mobility (attack
// squares not occupied by the piece's own side) rather than strictly-legal moves: cheaper
// to compute and a good enough proxy, the same tradeoff the teacher's search makes when
// ordering moves by attack boards instead of full legality.
type Mobility struct{}

func (Mobility) Evaluate(_ context.Context, b *board.Board) Centipawns {
	pos := b.Position()
	occ := pos.Occupied()

	white := mobilityFor(pos, occ, board.White)
	black := mobilityFor(pos, occ, board.Black)

	return relative(b.Turn(), white-black)
}

func mobilityFor(pos *board.Position, occ board.Bitboard, c board.Color) Centipawns {
	own := pos.Color(c)
	var score Centipawns
	for p, w := range mobilityWeight {
		for _, sq := range pos.Piece(c, p).ToSquares() {
			n := (board.Attackboard(occ, sq, p) &^ own).PopCount()
			score += w * Centipawns(n)
		}
	}
	return score
}
