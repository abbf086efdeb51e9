package eval

import (
	"context"

	"github.com/TayDa64/liku-ai/pkg/board"
)

// NominalValue is the conventional centipawn value of a piece type, used both for static
// material counting and as a cheap capture-ordering/SEE approximation in pkg/search.
func NominalValue(p board.Piece) Centipawns {
	switch p {
	case board.Pawn:
		return 100
	case board.Knight:
		return 320
	case board.Bishop:
		return 330
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 20000
	default:
		return 0
	}
}

// Material counts the nominal value of each side's pieces. Grounded on the teacher's
// eval.Material evaluator, generalized here to sit alongside the other component
// evaluators in a Sum rather than being the sole evaluator.
type Material struct{}

// countedPieces lists the piece types whose nominal value contributes to material (kings
// excluded: both sides always have exactly one, so it would be a wash).
var countedPieces = []board.Piece{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen}

func (Material) Evaluate(_ context.Context, b *board.Board) Centipawns {
	pos := b.Position()

	var white, black Centipawns
	for _, p := range countedPieces {
		white += NominalValue(p) * Centipawns(pos.Piece(board.White, p).PopCount())
		black += NominalValue(p) * Centipawns(pos.Piece(board.Black, p).PopCount())
	}

	return relative(b.Turn(), white-black)
}

// NominalValueGain is the nominal material gain of playing move m, used by pkg/search for
// capture ordering (MVV-LVA) and the SEE sign-test quiescence filter.
func NominalValueGain(m board.Move) Centipawns {
	switch m.Type {
	case board.CapturePromotion:
		return NominalValue(m.Capture) + NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Promotion:
		return NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Capture:
		return NominalValue(m.Capture)
	case board.EnPassant:
		return NominalValue(board.Pawn)
	default:
		return 0
	}
}
