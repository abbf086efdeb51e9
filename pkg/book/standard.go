package book

import (
	"context"

	"github.com/seekerror/logw"
)

// Standard is the built-in opening book covering mainline replies to the four most common
// first moves, generalized from the teacher's single-line sargon.Book (1.e4 e5, 1.d4 d5)
// into a small weighted repertoire with named openings.
var Standard Book

func init() {
	var err error
	Standard, err = NewBook(standardLines)
	if err != nil {
		logw.Exitf(context.Background(), "invalid standard book: %v", err)
	}
}

var standardLines = []Line{
	{Opening: "Open Game", Weight: 10, Moves: []string{"e2e4", "e7e5"}},
	{Opening: "Sicilian Defense", Weight: 9, Moves: []string{"e2e4", "c7c5"}},
	{Opening: "French Defense", Weight: 5, Moves: []string{"e2e4", "e7e6"}},
	{Opening: "Caro-Kann Defense", Weight: 5, Moves: []string{"e2e4", "c7c6"}},
	{Opening: "Pirc Defense", Weight: 2, Moves: []string{"e2e4", "d7d6"}},

	{Opening: "Ruy Lopez", Weight: 8, Moves: []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5"}},
	{Opening: "Italian Game", Weight: 7, Moves: []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4"}},
	{Opening: "Scotch Game", Weight: 3, Moves: []string{"e2e4", "e7e5", "g1f3", "b8c6", "d2d4"}},
	{Opening: "Petrov's Defense", Weight: 3, Moves: []string{"e2e4", "e7e5", "g1f3", "g8f6"}},
	{Opening: "Philidor Defense", Weight: 2, Moves: []string{"e2e4", "e7e5", "g1f3", "d7d6"}},

	{Opening: "Open Sicilian", Weight: 6, Moves: []string{"e2e4", "c7c5", "g1f3", "d7d6"}},
	{Opening: "Sicilian Najdorf", Weight: 5, Moves: []string{"e2e4", "c7c5", "g1f3", "d7d6", "d2d4", "c5d4", "f3d4", "g8f6", "b1c3", "a7a6"}},

	{Opening: "Queen's Gambit", Weight: 10, Moves: []string{"d2d4", "d7d5", "c2c4"}},
	{Opening: "Queen's Gambit Declined", Weight: 8, Moves: []string{"d2d4", "d7d5", "c2c4", "e7e6"}},
	{Opening: "Queen's Gambit Accepted", Weight: 4, Moves: []string{"d2d4", "d7d5", "c2c4", "d5c4"}},
	{Opening: "Slav Defense", Weight: 6, Moves: []string{"d2d4", "d7d5", "c2c4", "c7c6"}},

	{Opening: "King's Indian Defense", Weight: 6, Moves: []string{"d2d4", "g8f6", "c2c4", "g7g6"}},
	{Opening: "Nimzo-Indian Defense", Weight: 6, Moves: []string{"d2d4", "g8f6", "c2c4", "e7e6", "b1c3", "f8b4"}},
	{Opening: "Grunfeld Defense", Weight: 4, Moves: []string{"d2d4", "g8f6", "c2c4", "g7g6", "b1c3", "d7d5"}},
	{Opening: "Dutch Defense", Weight: 2, Moves: []string{"d2d4", "f7f5"}},

	{Opening: "English Opening", Weight: 7, Moves: []string{"c2c4", "e7e5"}},
	{Opening: "English, Symmetrical", Weight: 5, Moves: []string{"c2c4", "c7c5"}},

	{Opening: "Reti Opening", Weight: 5, Moves: []string{"g1f3", "d7d5"}},
	{Opening: "King's Indian Attack", Weight: 3, Moves: []string{"g1f3", "d7d5", "g2g3"}},
}
