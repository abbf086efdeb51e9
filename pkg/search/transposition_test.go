package search_test

import (
	"context"
	"testing"

	"github.com/TayDa64/liku-ai/pkg/board"
	"github.com/TayDa64/liku-ai/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspositionTableWriteReadRoundTrip(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1<<20)

	hash := board.ZobristHash(12345)
	move := board.Move{Type: board.Normal, Piece: board.Knight, From: board.G1, To: board.F3}

	ok := tt.Write(hash, search.ExactBound, 0, 6, search.Score(42), move)
	require.True(t, ok)

	bound, depth, score, m, found := tt.Read(hash)
	require.True(t, found)
	assert.Equal(t, search.ExactBound, bound)
	assert.Equal(t, 6, depth)
	assert.Equal(t, search.Score(42), score)
	assert.Equal(t, move.From, m.From)
	assert.Equal(t, move.To, m.To)
}

func TestTranspositionTableMissReportsNotFound(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1<<16)

	_, _, _, _, found := tt.Read(board.ZobristHash(999))
	assert.False(t, found)
}

// TestTranspositionTableBucketCollisionDoesNotImmediatelyEvict checks the bucketed
// replacement policy: several distinct hashes that collide on the same bucket index (forced
// by a tiny table) should all remain readable as long as there are fewer of them than the
// bucket's slot count, even though a single-slot table would have evicted all but the last.
func TestTranspositionTableBucketCollisionDoesNotImmediatelyEvict(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1) // smallest possible: one bucket

	hashes := []board.ZobristHash{1, 2, 3, 4}
	for i, h := range hashes {
		tt.Write(h, search.ExactBound, 0, i+1, search.Score(i), board.Move{})
	}

	for i, h := range hashes {
		_, depth, score, _, found := tt.Read(h)
		require.True(t, found, "hash %v should still be present", h)
		assert.Equal(t, i+1, depth)
		assert.Equal(t, search.Score(i), score)
	}
}

func TestTranspositionTableWriteRefreshesSameHashInPlace(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1<<20)
	hash := board.ZobristHash(55)

	tt.Write(hash, search.LowerBound, 0, 3, search.Score(10), board.Move{})
	tt.Write(hash, search.ExactBound, 0, 9, search.Score(77), board.Move{})

	bound, depth, score, _, found := tt.Read(hash)
	require.True(t, found)
	assert.Equal(t, search.ExactBound, bound)
	assert.Equal(t, 9, depth)
	assert.Equal(t, search.Score(77), score)
}

func TestNoTranspositionTableNeverStoresAnything(t *testing.T) {
	var tt search.NoTranspositionTable

	ok := tt.Write(board.ZobristHash(1), search.ExactBound, 0, 5, search.Score(1), board.Move{})
	assert.False(t, ok)

	_, _, _, _, found := tt.Read(board.ZobristHash(1))
	assert.False(t, found)
}

func TestMinDepthTranspositionTableDiscardsShallowWrites(t *testing.T) {
	factory := search.NewMinDepthTranspositionTable(4)
	tt := factory(context.Background(), 1<<20)

	hash := board.ZobristHash(9)
	ok := tt.Write(hash, search.ExactBound, 0, 2, search.Score(5), board.Move{})
	assert.False(t, ok, "depth below the minimum must be discarded")

	_, _, _, _, found := tt.Read(hash)
	assert.False(t, found)

	ok = tt.Write(hash, search.ExactBound, 0, 4, search.Score(5), board.Move{})
	assert.True(t, ok)
	_, _, _, _, found = tt.Read(hash)
	assert.True(t, found)
}

// TestAdjustMateScoreRoundTripSamePly mirrors negamax.go's own write-then-read calling
// convention (Write(..., ply, 0), Read(..., 0, ply)): a mate score read back at the exact
// ply it was written at must come back unchanged.
func TestAdjustMateScoreRoundTripSamePly(t *testing.T) {
	raw := search.MateScore - 2
	const ply = 5

	stored := search.AdjustMateScoreForWrite(raw, ply, 0)
	back := search.AdjustMateScoreForRead(stored, 0, ply)

	assert.Equal(t, raw, back)
}

// TestAdjustMateScoreAgesAcrossDifferingPly checks that a mate score written at one ply and
// read back at a deeper ply (the position was reached by transposition along a longer path)
// has its encoded mate distance grow by exactly the ply difference.
func TestAdjustMateScoreAgesAcrossDifferingPly(t *testing.T) {
	raw := search.MateScore - 2
	const writePly, readPly = 2, 6

	stored := search.AdjustMateScoreForWrite(raw, writePly, 0)
	back := search.AdjustMateScoreForRead(stored, 0, readPly)

	wantDist, _ := raw.MateDistance()
	gotDist, ok := back.MateDistance()
	require.True(t, ok)
	assert.Equal(t, wantDist+(readPly-writePly), gotDist)
}

func TestAdjustMateScoreLeavesPlainScoresUnchanged(t *testing.T) {
	plain := search.Score(250)
	assert.Equal(t, plain, search.AdjustMateScoreForWrite(plain, 5, 0))
	assert.Equal(t, plain, search.AdjustMateScoreForRead(plain, 0, 5))
}
