package eval

import (
	"context"

	"github.com/TayDa64/liku-ai/pkg/board"
)

const bishopPairBonus Centipawns = 30

// BishopPair rewards holding both bishops, which together cover both square colors -- a
// well known small but durable advantage, independent of where the bishops actually stand.
type BishopPair struct{}

func (BishopPair) Evaluate(_ context.Context, b *board.Board) Centipawns {
	pos := b.Position()
	var white, black Centipawns
	if pos.Piece(board.White, board.Bishop).PopCount() >= 2 {
		white += bishopPairBonus
	}
	if pos.Piece(board.Black, board.Bishop).PopCount() >= 2 {
		black += bishopPairBonus
	}
	return relative(b.Turn(), white-black)
}

const (
	rookOpenFileBonus Centipawns = 15
	rookHalfOpenBonus Centipawns = 8
	rookSeventhBonus  Centipawns = 20
)

// RookPlacement rewards rooks on open or half-open files and on the seventh rank (from the
// rook's own perspective), the two classic rook-activity heuristics.
type RookPlacement struct{}

func (RookPlacement) Evaluate(_ context.Context, b *board.Board) Centipawns {
	pos := b.Position()

	white := rookPlacement(pos, board.White)
	black := rookPlacement(pos, board.Black)

	return relative(b.Turn(), white-black)
}

func rookPlacement(pos *board.Position, c board.Color) Centipawns {
	own := pos.Piece(c, board.Pawn)
	opp := pos.Piece(c.Opponent(), board.Pawn)

	var score Centipawns
	for _, sq := range pos.Piece(c, board.Rook).ToSquares() {
		fileMask := board.BitFile(sq.File())
		switch {
		case own&fileMask == 0 && opp&fileMask == 0:
			score += rookOpenFileBonus
		case own&fileMask == 0:
			score += rookHalfOpenBonus
		}
		if sq.Relative(c) == board.Rank7 {
			score += rookSeventhBonus
		}
	}
	return score
}
