package eval

import (
	"context"

	"github.com/TayDa64/liku-ai/pkg/board"
)

// pstTable holds a midgame and endgame bonus per square, indexed white-relative (a1..h8,
// i.e. Square itself). Black's bonus is read by mirroring the rank (White's table flipped
// vertically), matching the usual convention of tabulating from White's point of view.
type pstTable struct {
	mg [64]Centipawns
	eg [64]Centipawns
}

func (t *pstTable) at(c board.Color, sq board.Square) (mg, eg Centipawns) {
	s := sq
	if c == board.Black {
		s = board.NewSquare(sq.File(), board.Rank(7-sq.Rank()))
	}
	return t.mg[s], t.eg[s]
}

// PieceSquareTables scores piece placement with tapered midgame/endgame tables, the way
// most hand-tuned evaluators (including the teacher's sibling engines in the retrieval
// pack) bias pieces toward productive squares: knights into the center, rooks onto the
// seventh rank, kings toward safety in the middlegame and the center in the
// endgame.
type PieceSquareTables struct{}

func (PieceSquareTables) Evaluate(_ context.Context, b *board.Board) Centipawns {
	pos := b.Position()
	ph := phase(b)

	var white, black Centipawns
	for _, p := range []board.Piece{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen, board.King} {
		table := &pstTables[p]
		for _, sq := range pos.Piece(board.White, p).ToSquares() {
			mg, eg := table.at(board.White, sq)
			white += taper(mg, eg, ph)
		}
		for _, sq := range pos.Piece(board.Black, p).ToSquares() {
			mg, eg := table.at(board.Black, sq)
			black += taper(mg, eg, ph)
		}
	}
	return relative(b.Turn(), white-black)
}

// pstTables are indexed by board.Piece; board.NoPiece and board.NoPiece+... are unused but
// kept so the array is addressable directly by piece value.
var pstTables [board.NumPieces]pstTable

func init() {
	pstTables[board.Pawn] = pstTable{
		mg: flattenRanks(
			[8]int{0, 0, 0, 0, 0, 0, 0, 0},
			[8]int{5, 10, 10, -20, -20, 10, 10, 5},
			[8]int{5, -5, -10, 0, 0, -10, -5, 5},
			[8]int{0, 0, 0, 20, 20, 0, 0, 0},
			[8]int{5, 5, 10, 25, 25, 10, 5, 5},
			[8]int{10, 10, 20, 30, 30, 20, 10, 10},
			[8]int{50, 50, 50, 50, 50, 50, 50, 50},
			[8]int{0, 0, 0, 0, 0, 0, 0, 0},
		),
		eg: flattenRanks(
			[8]int{0, 0, 0, 0, 0, 0, 0, 0},
			[8]int{0, 0, 0, 0, 0, 0, 0, 0},
			[8]int{5, 5, 5, 5, 5, 5, 5, 5},
			[8]int{10, 10, 10, 10, 10, 10, 10, 10},
			[8]int{20, 20, 20, 20, 20, 20, 20, 20},
			[8]int{40, 40, 40, 40, 40, 40, 40, 40},
			[8]int{60, 60, 60, 60, 60, 60, 60, 60},
			[8]int{0, 0, 0, 0, 0, 0, 0, 0},
		),
	}
	pstTables[board.Knight] = pstTable{
		mg: flattenRanks(
			[8]int{-50, -40, -30, -30, -30, -30, -40, -50},
			[8]int{-40, -20, 0, 5, 5, 0, -20, -40},
			[8]int{-30, 5, 10, 15, 15, 10, 5, -30},
			[8]int{-30, 0, 15, 20, 20, 15, 0, -30},
			[8]int{-30, 5, 15, 20, 20, 15, 5, -30},
			[8]int{-30, 0, 10, 15, 15, 10, 0, -30},
			[8]int{-40, -20, 0, 0, 0, 0, -20, -40},
			[8]int{-50, -40, -30, -30, -30, -30, -40, -50},
		),
	}
	pstTables[board.Knight].eg = pstTables[board.Knight].mg

	pstTables[board.Bishop] = pstTable{
		mg: flattenRanks(
			[8]int{-20, -10, -10, -10, -10, -10, -10, -20},
			[8]int{-10, 5, 0, 0, 0, 0, 5, -10},
			[8]int{-10, 10, 10, 10, 10, 10, 10, -10},
			[8]int{-10, 0, 10, 10, 10, 10, 0, -10},
			[8]int{-10, 5, 5, 10, 10, 5, 5, -10},
			[8]int{-10, 0, 5, 10, 10, 5, 0, -10},
			[8]int{-10, 0, 0, 0, 0, 0, 0, -10},
			[8]int{-20, -10, -10, -10, -10, -10, -10, -20},
		),
	}
	pstTables[board.Bishop].eg = pstTables[board.Bishop].mg

	pstTables[board.Rook] = pstTable{
		mg: flattenRanks(
			[8]int{0, 0, 0, 5, 5, 0, 0, 0},
			[8]int{-5, 0, 0, 0, 0, 0, 0, -5},
			[8]int{-5, 0, 0, 0, 0, 0, 0, -5},
			[8]int{-5, 0, 0, 0, 0, 0, 0, -5},
			[8]int{-5, 0, 0, 0, 0, 0, 0, -5},
			[8]int{-5, 0, 0, 0, 0, 0, 0, -5},
			[8]int{5, 10, 10, 10, 10, 10, 10, 5},
			[8]int{0, 0, 0, 0, 0, 0, 0, 0},
		),
	}
	pstTables[board.Rook].eg = pstTables[board.Rook].mg

	pstTables[board.Queen] = pstTable{
		mg: flattenRanks(
			[8]int{-20, -10, -10, -5, -5, -10, -10, -20},
			[8]int{-10, 0, 5, 0, 0, 0, 0, -10},
			[8]int{-10, 5, 5, 5, 5, 5, 0, -10},
			[8]int{0, 0, 5, 5, 5, 5, 0, -5},
			[8]int{-5, 0, 5, 5, 5, 5, 0, -5},
			[8]int{-10, 0, 5, 5, 5, 5, 0, -10},
			[8]int{-10, 0, 0, 0, 0, 0, 0, -10},
			[8]int{-20, -10, -10, -5, -5, -10, -10, -20},
		),
	}
	pstTables[board.Queen].eg = pstTables[board.Queen].mg

	pstTables[board.King] = pstTable{
		mg: flattenRanks(
			[8]int{20, 30, 10, 0, 0, 10, 30, 20},
			[8]int{20, 20, 0, 0, 0, 0, 20, 20},
			[8]int{-10, -20, -20, -20, -20, -20, -20, -10},
			[8]int{-20, -30, -30, -40, -40, -30, -30, -20},
			[8]int{-30, -40, -40, -50, -50, -40, -40, -30},
			[8]int{-30, -40, -40, -50, -50, -40, -40, -30},
			[8]int{-30, -40, -40, -50, -50, -40, -40, -30},
			[8]int{-30, -40, -40, -50, -50, -40, -40, -30},
		),
		eg: flattenRanks(
			[8]int{-50, -30, -30, -30, -30, -30, -30, -50},
			[8]int{-30, -30, 0, 0, 0, 0, -30, -30},
			[8]int{-30, -10, 20, 30, 30, 20, -10, -30},
			[8]int{-30, -10, 30, 40, 40, 30, -10, -30},
			[8]int{-30, -10, 30, 40, 40, 30, -10, -30},
			[8]int{-30, -10, 20, 30, 30, 20, -10, -30},
			[8]int{-30, -20, -10, 0, 0, -10, -20, -30},
			[8]int{-50, -40, -30, -20, -20, -30, -40, -50},
		),
	}
}

// flattenRanks takes 8 rows given rank8-first (as conventionally written out) and packs
// them into a 64-element, a1-first array to match Square's numbering.
func flattenRanks(rank8, rank7, rank6, rank5, rank4, rank3, rank2, rank1 [8]int) [64]Centipawns {
	rows := [8][8]int{rank1, rank2, rank3, rank4, rank5, rank6, rank7, rank8}
	var out [64]Centipawns
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			out[board.NewSquare(board.File(f), board.Rank(r))] = Centipawns(rows[r][f])
		}
	}
	return out
}
