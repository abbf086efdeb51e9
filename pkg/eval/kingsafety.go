package eval

import (
	"context"

	"github.com/TayDa64/liku-ai/pkg/board"
)

const (
	kingShieldBonus     Centipawns = 10
	kingOpenFilePenalty Centipawns = -20
	kingAttackerPenalty Centipawns = -8
)

// KingSafety penalizes an exposed king during the middlegame: missing pawn shield,
// open/half-open files next to the king, and the number of enemy pieces bearing on the
// squares around it. Scaled down by phase() so it fades out in the endgame, where king
// activity (handled by the endgame piece-square tables) matters more than shelter.
type KingSafety struct{}

func (KingSafety) Evaluate(_ context.Context, b *board.Board) Centipawns {
	pos := b.Position()
	ph := phase(b)

	white := kingSafety(pos, board.White)
	black := kingSafety(pos, board.Black)

	return relative(b.Turn(), taper(white-black, 0, ph))
}

func kingSafety(pos *board.Position, c board.Color) Centipawns {
	kingSq := pos.Piece(c, board.King).LastPopSquare()
	if kingSq >= board.NumSquares {
		return 0
	}
	f := kingSq.File()

	var score Centipawns

	ownPawns := pos.Piece(c, board.Pawn)
	oppPawns := pos.Piece(c.Opponent(), board.Pawn)

	lo, hi := f, f
	if f > board.FileA {
		lo = f - 1
	}
	if f < board.FileH {
		hi = f + 1
	}
	for file := lo; file <= hi; file++ {
		fileMask := board.BitFile(file)
		switch {
		case ownPawns&fileMask == 0 && oppPawns&fileMask == 0:
			score += kingOpenFilePenalty
		case ownPawns&fileMask == 0:
			score += kingOpenFilePenalty / 2
		default:
			score += kingShieldBonus
		}
	}

	shield := board.KingAttackboard(kingSq) & ownPawns
	score += kingShieldBonus * Centipawns(shield.PopCount())

	attackers := 0
	zone := board.KingAttackboard(kingSq)
	occ := pos.Occupied()
	for _, p := range []board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
		for _, sq := range pos.Piece(c.Opponent(), p).ToSquares() {
			if board.Attackboard(occ, sq, p)&zone != 0 {
				attackers++
			}
		}
	}
	score += kingAttackerPenalty * Centipawns(attackers)

	return score
}
