package san_test

import (
	"testing"

	"github.com/TayDa64/liku-ai/pkg/board"
	"github.com/TayDa64/liku-ai/pkg/board/fen"
	"github.com/TayDa64/liku-ai/pkg/board/san"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMove(t *testing.T, fenStr, coord string) (*board.Position, board.Color, []board.Move, board.Move) {
	t.Helper()
	pos, turn, _, _, err := fen.Decode(fenStr)
	require.NoError(t, err)

	candidate, err := board.ParseMove(coord)
	require.NoError(t, err)

	legal := pos.LegalMoves(turn)
	for _, m := range legal {
		if candidate.Equals(m) {
			return pos, turn, legal, m
		}
	}
	t.Fatalf("%v not legal in %v", coord, fenStr)
	return nil, 0, nil, board.Move{}
}

func TestFormatPawnPushAndCapture(t *testing.T) {
	pos, turn, legal, m := mustMove(t, fen.Initial, "e2e4")
	assert.Equal(t, "e4", san.Format(pos, turn, legal, m))

	const withCapture = "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2"
	pos, turn, legal, m = mustMove(t, withCapture, "e4d5")
	assert.Equal(t, "exd5", san.Format(pos, turn, legal, m))
}

func TestFormatPieceMoveAndDisambiguation(t *testing.T) {
	// Knights on a1 and d2 can both reach b3: disambiguate by file.
	pos, turn, legal, m := mustMove(t, "4k3/8/8/8/8/8/3N4/N3K3 w - - 0 1", "a1b3")
	assert.Equal(t, "Nab3", san.Format(pos, turn, legal, m))

	pos, turn, legal, m = mustMove(t, "4k3/8/8/8/8/8/3N4/N3K3 w - - 0 1", "d2b3")
	assert.Equal(t, "Ndb3", san.Format(pos, turn, legal, m))
}

func TestFormatCastling(t *testing.T) {
	pos, turn, legal, m := mustMove(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1")
	assert.Equal(t, "O-O", san.Format(pos, turn, legal, m))

	pos, turn, legal, m = mustMove(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1")
	assert.Equal(t, "O-O-O", san.Format(pos, turn, legal, m))
}

func TestFormatPromotion(t *testing.T) {
	pos, turn, legal, m := mustMove(t, "8/1P6/8/8/8/5K2/8/3k4 w - - 0 1", "b7b8q")
	assert.Equal(t, "b8=Q", san.Format(pos, turn, legal, m))
}

func TestFormatMateSuffix(t *testing.T) {
	pos, turn, legal, m := mustMove(t, "r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 0 1", "h5f7")
	assert.Equal(t, "Qxf7#", san.Format(pos, turn, legal, m))
}
