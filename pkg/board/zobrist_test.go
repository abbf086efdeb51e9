package board_test

import (
	"testing"

	"github.com/TayDa64/liku-ai/pkg/board"
	"github.com/TayDa64/liku-ai/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestZobristIncrementalMatchesFromScratch walks a handful of games and checks, after every
// move, that the incrementally maintained hash (board.Board.Hash) agrees with a from-scratch
// ZobristTable.Hash of the resulting position -- the core soundness property a transposition
// table depends on.
func TestZobristIncrementalMatchesFromScratch(t *testing.T) {
	games := [][]string{
		{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "a7a6"},
		{"d2d4", "d7d5", "c2c4", "e7e6", "b1c3", "g8f6"},
		{"e2e4", "c7c5", "g1f3", "d7d6", "d2d4", "c5d4", "f3d4", "g8f6"},
	}

	for _, moves := range games {
		zt := board.NewZobristTable(1)
		pos, turn, noprogress, fullmoves, err := fen.Decode(fen.Initial)
		require.NoError(t, err)

		b := board.NewBoard(zt, pos, turn, noprogress, fullmoves)
		for _, mv := range moves {
			candidate, err := board.ParseMove(mv)
			require.NoError(t, err)

			var found board.Move
			var ok bool
			for _, m := range b.Position().PseudoLegalMoves(b.Turn()) {
				if candidate.Equals(m) {
					found, ok = m, true
					break
				}
			}
			require.True(t, ok, "move %v not pseudo-legal in %v", mv, b)
			require.True(t, b.PushMove(found))

			want := zt.Hash(b.Position(), b.Turn())
			assert.Equal(t, want, b.Hash(), "after %v: incremental hash diverged", mv)
		}
	}
}

// TestZobristMoveOrderIndependence checks that two different move orders reaching the same
// position produce the same incremental hash, i.e. the hash depends only on piece placement,
// side to move, castling rights and en passant target -- never on move history.
func TestZobristMoveOrderIndependence(t *testing.T) {
	zt := board.NewZobristTable(7)

	play := func(moves ...string) *board.Board {
		pos, turn, noprogress, fullmoves, err := fen.Decode(fen.Initial)
		require.NoError(t, err)
		b := board.NewBoard(zt, pos, turn, noprogress, fullmoves)
		for _, mv := range moves {
			candidate, err := board.ParseMove(mv)
			require.NoError(t, err)
			for _, m := range b.Position().PseudoLegalMoves(b.Turn()) {
				if candidate.Equals(m) {
					require.True(t, b.PushMove(m))
					break
				}
			}
		}
		return b
	}

	a := play("e2e4", "e7e5", "g1f3", "b8c6", "b1c3", "g8f6")
	c := play("e2e4", "e7e5", "b1c3", "g8f6", "g1f3", "b8c6")

	assert.Equal(t, a.Hash(), c.Hash())
	assert.Equal(t, fen.Encode(a.Position(), a.Turn(), a.NoProgress(), a.FullMoves()),
		fen.Encode(c.Position(), c.Turn(), c.NoProgress(), c.FullMoves()))
}

// TestZobristNullMoveRoundTrip checks that NullMove toggles the turn key and that pushing,
// then popping, a null move restores the original hash exactly.
func TestZobristNullMoveRoundTrip(t *testing.T) {
	zt := board.NewZobristTable(3)
	pos, turn, noprogress, fullmoves, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	b := board.NewBoard(zt, pos, turn, noprogress, fullmoves)
	before := b.Hash()

	require.True(t, b.PushNullMove())
	assert.NotEqual(t, before, b.Hash())
	assert.Equal(t, zt.Hash(b.Position(), b.Turn()), b.Hash())

	b.PopNullMove()
	assert.Equal(t, before, b.Hash())
}
