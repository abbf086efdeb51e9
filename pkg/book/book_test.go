package book_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/TayDa64/liku-ai/pkg/board"
	"github.com/TayDa64/liku-ai/pkg/board/fen"
	"github.com/TayDa64/liku-ai/pkg/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookRejectsIllegalLine(t *testing.T) {
	_, err := book.NewBook([]book.Line{
		{Opening: "bogus", Weight: 1, Moves: []string{"e2e5"}},
	})
	assert.Error(t, err)
}

func TestNewBookMergesTranspositionsByTakingMaxWeight(t *testing.T) {
	b, err := book.NewBook([]book.Line{
		{Opening: "A", Weight: 3, Moves: []string{"e2e4", "e7e5"}},
		{Opening: "B", Weight: 9, Moves: []string{"e2e4", "e7e5"}},
	})
	require.NoError(t, err)

	entries, err := b.Find(context.Background(), fen.Initial)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 9, entries[0].Weight)
}

func TestNoBookNeverPicksAMove(t *testing.T) {
	_, ok, err := book.NoBook.Pick(context.Background(), fen.Initial, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStandardBookOnlyPlaysFourMainlineFirstMoves(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	want := map[string]bool{"e2e4": true, "d2d4": true, "c2c4": true, "g1f3": true}

	pos, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	legal := pos.LegalMoves(turn)

	for i := 0; i < 50; i++ {
		m, ok, err := book.Standard.Pick(context.Background(), fen.Initial, r)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, containsMove(legal, m))
		assert.True(t, want[m.From.String()+m.To.String()], "unexpected book move %v", m)
	}
}

func containsMove(moves []board.Move, m board.Move) bool {
	for _, c := range moves {
		if c.Equals(m) {
			return true
		}
	}
	return false
}

func TestStandardBookStopsAfterLeavingTheory(t *testing.T) {
	entries, err := book.Standard.Find(context.Background(), "8/8/8/3k4/8/3K4/3P4/8 w - - 0 1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
