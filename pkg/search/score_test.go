package search_test

import (
	"testing"

	"github.com/TayDa64/liku-ai/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestMateDistance(t *testing.T) {
	tests := []struct {
		name     string
		score    search.Score
		wantDist int
		wantOK   bool
	}{
		{"plain score", search.Score(120), 0, false},
		{"mate just delivered", search.MateScore, 1, true},
		{"mate two plies further out", search.MateScore - 2, 3, true},
		{"getting mated", -search.MateScore, 1, true},
		{"not near threshold", search.Score(900), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, ok := tt.score.MateDistance()
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantDist, dist)
			}
		})
	}
}

func TestIncrementMateDistanceAgesByOnePly(t *testing.T) {
	mate := search.MateScore
	aged := search.IncrementMateDistance(mate)
	d0, _ := mate.MateDistance()
	d1, ok := aged.MateDistance()
	assert.True(t, ok)
	assert.Equal(t, d0+1, d1)

	// Non-mate scores pass through unchanged.
	assert.Equal(t, search.Score(500), search.IncrementMateDistance(search.Score(500)))
}

func TestMatedIsWorseThanAnyHeuristicScore(t *testing.T) {
	assert.True(t, search.Mated().Less(search.HeuristicScore(-20000)))
}

func TestCropClampsIntoRepresentableRange(t *testing.T) {
	assert.Equal(t, search.InfScore, search.Crop(search.InfScore+500))
	assert.Equal(t, search.NegInfScore, search.Crop(search.NegInfScore-500))
	assert.Equal(t, search.Score(17), search.Crop(search.Score(17)))
}

func TestHeuristicScoreNeverEntersMateEncodingRange(t *testing.T) {
	s := search.HeuristicScore(30000)
	_, ok := s.MateDistance()
	assert.False(t, ok, "a large static eval must never be mistaken for a forced mate")
}
