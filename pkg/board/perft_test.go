package board_test

import (
	"testing"

	"github.com/TayDa64/liku-ai/pkg/board"
	"github.com/TayDa64/liku-ai/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// perft counts leaf nodes depth plies below pos, the standard movegen soundness check:
// https://www.chessprogramming.org/Perft_Results.
func perft(pos *board.Position, turn board.Color, depth int) int64 {
	if depth == 0 {
		return 1
	}
	var nodes int64
	for _, m := range pos.PseudoLegalMoves(turn) {
		if next, ok := pos.Move(m); ok {
			nodes += perft(next, turn.Opponent(), depth-1)
		}
	}
	return nodes
}

func TestPerftStandardPosition(t *testing.T) {
	tests := []struct {
		depth int
		nodes int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}

	pos, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	for _, tt := range tests {
		assert.Equal(t, tt.nodes, perft(pos, turn, tt.depth), "depth %v", tt.depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	// A well-known perft stress position exercising castling, en passant and promotions.
	pos, turn, _, _, err := fen.Decode("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	assert.Equal(t, int64(48), perft(pos, turn, 1))
	assert.Equal(t, int64(2039), perft(pos, turn, 2))
}
