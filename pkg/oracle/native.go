package oracle

import (
	"github.com/TayDa64/liku-ai/pkg/board"
	"github.com/TayDa64/liku-ai/pkg/board/fen"
)

// native adapts pkg/board's bitboard position representation and pseudo-legal move
// generator into the Oracle contract for hosts that use Oracle; pkg/search, pkg/eval and
// pkg/ai work on board.Position directly instead.
type native struct {
	zt      *board.ZobristTable
	b       *board.Board
	history []board.Move
}

// NewNative creates an Oracle backed by the native bitboard move generator, seeded with a
// fixed zobrist table so that repeated games started from the same position hash
// identically across runs (important for transposition-table warm starts in analysis
// mode).
func NewNative(seed int64) Oracle {
	return &native{zt: board.NewZobristTable(seed)}
}

func (n *native) Load(fenStr string) error {
	pos, turn, noprogress, fullmoves, err := fen.Decode(fenStr)
	if err != nil {
		return err
	}
	n.b = board.NewBoard(n.zt, pos, turn, noprogress, fullmoves)
	n.history = nil
	return nil
}

func (n *native) FEN() string {
	pos := n.b.Position()
	return fen.Encode(pos, n.b.Turn(), n.b.NoProgress(), n.b.FullMoves())
}

func (n *native) Turn() board.Color { return n.b.Turn() }

func (n *native) Moves() []board.Move {
	return n.b.Position().LegalMoves(n.b.Turn())
}

func (n *native) Move(m board.Move) error {
	for _, legal := range n.Moves() {
		if legal.Equals(m) {
			if !n.b.PushMove(legal) {
				return ErrIllegalMove
			}
			n.history = append(n.history, legal)
			return nil
		}
	}
	return ErrIllegalMove
}

func (n *native) Undo() (board.Move, bool) {
	m, ok := n.b.PopMove()
	if ok {
		n.history = n.history[:len(n.history)-1]
	}
	return m, ok
}

func (n *native) InCheck() bool {
	return n.b.Position().IsChecked(n.b.Turn())
}

func (n *native) IsCheckmate() bool {
	return len(n.Moves()) == 0 && n.InCheck()
}

func (n *native) IsStalemate() bool {
	return len(n.Moves()) == 0 && !n.InCheck()
}

func (n *native) IsDraw() bool {
	if len(n.Moves()) == 0 && !n.InCheck() {
		return true
	}
	result := n.b.Result()
	return result.Outcome == board.Draw
}

func (n *native) IsInsufficientMaterial() bool {
	return n.b.Position().HasInsufficientMaterial()
}

func (n *native) IsThreefoldRepetition() bool {
	return n.b.Result().Reason == board.Repetition3 || n.b.Result().Reason == board.Repetition5
}

func (n *native) Board() *board.Board { return n.b }

func (n *native) History() []board.Move {
	out := make([]board.Move, len(n.history))
	copy(out, n.history)
	return out
}
