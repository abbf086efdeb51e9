// Package book implements opening book lookups: a FEN-keyed table of known good replies,
// consulted before search runs at all.
package book

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/TayDa64/liku-ai/pkg/board"
	"github.com/TayDa64/liku-ai/pkg/board/fen"
)

// Entry is one candidate reply in an opening line, grounded on the teacher's bare
// engine.Book move list but generalized with a relative popularity Weight and the Opening
// name it belongs to, so the book can do weighted-random selection and report provenance.
type Entry struct {
	Move    board.Move
	Weight  int
	Opening string
}

// Book represents an opening book: a lookup from position to known replies. Once Find
// returns an empty list for a position, the book should not be consulted again for the
// rest of that game (a line once left is not rejoined).
type Book interface {
	// Find returns the candidate replies for the position identified by a full FEN string,
	// potentially empty.
	Find(ctx context.Context, fenStr string) ([]Entry, error)

	// Pick selects one reply by weighted-random choice among entries at or above
	// MinWeight, or returns ok=false if Find returns nothing playable.
	Pick(ctx context.Context, fenStr string, r *rand.Rand) (board.Move, bool, error)
}

// MinWeight is the lowest weight an entry may have and still be eligible for Pick; entries
// below this threshold are kept in Find's result (for inspection/analysis) but never
// chosen, matching how the teacher treats book lines as immutable reference data while the
// engine layer decides what to play.
const MinWeight = 1

// Line is a named, weighted opening line: a sequence of moves in long algebraic notation
// (e2e4 e7e5 ...) together with a relative popularity Weight. NewBook gives every move of
// the line that weight; a move shared by several lines keeps the highest of their weights.
type Line struct {
	Opening string
	Weight  int
	Moves   []string
}

// NoBook is an empty opening book, used once a game has left all known theory.
var NoBook Book = &book{entries: map[string][]Entry{}}

// NewBook builds a book from a set of opening lines, validating each move against actual
// legal move generation the way the teacher's engine.NewBook does -- an invalid line is a
// programming error, not a runtime condition, so construction fails loudly.
func NewBook(lines []Line) (Book, error) {
	type key struct {
		fen  string
		move board.Move
	}
	merged := map[key]*Entry{}

	for _, line := range lines {
		fenStr := fen.Initial
		var turn board.Color

		for _, str := range line.Moves {
			next, perr := board.ParseMove(str)
			if perr != nil {
				return nil, fmt.Errorf("invalid line %q: %w", line.Moves, perr)
			}

			p, active, _, _, derr := fen.Decode(fenStr)
			if derr != nil {
				return nil, fmt.Errorf("invalid line %q: %w", line.Moves, derr)
			}
			turn = active

			var matched *board.Move
			for _, candidate := range p.PseudoLegalMoves(turn) {
				if candidate.Equals(next) {
					c := candidate
					matched = &c
					break
				}
			}
			if matched == nil {
				return nil, fmt.Errorf("invalid line %q: move %v not found", line.Moves, next)
			}

			np, ok := p.Move(*matched)
			if !ok {
				return nil, fmt.Errorf("invalid line %q: move %v not legal", line.Moves, next)
			}

			k := key{fen: fenKey(fenStr), move: *matched}
			if e, found := merged[k]; found {
				if e.Weight < line.Weight {
					e.Weight = line.Weight
				}
			} else {
				merged[k] = &Entry{Move: *matched, Weight: line.Weight, Opening: line.Opening}
			}

			fenStr = fen.Encode(np, turn.Opponent(), 0, 1)
		}
	}

	byPos := map[string][]Entry{}
	for k, e := range merged {
		byPos[k.fen] = append(byPos[k.fen], *e)
	}
	for k := range byPos {
		sort.Slice(byPos[k], func(i, j int) bool {
			if byPos[k][i].Weight != byPos[k][j].Weight {
				return byPos[k][i].Weight > byPos[k][j].Weight
			}
			return byPos[k][i].Move.String() < byPos[k][j].Move.String()
		})
	}
	return &book{entries: byPos}, nil
}

type book struct {
	entries map[string][]Entry // cropped FEN (first 4 fields) -> entries
}

func (b *book) Find(_ context.Context, fenStr string) ([]Entry, error) {
	return b.entries[fenKey(fenStr)], nil
}

func (b *book) Pick(ctx context.Context, fenStr string, r *rand.Rand) (board.Move, bool, error) {
	entries, err := b.Find(ctx, fenStr)
	if err != nil {
		return board.Move{}, false, err
	}

	var total int
	for _, e := range entries {
		if e.Weight >= MinWeight {
			total += e.Weight
		}
	}
	if total <= 0 {
		return board.Move{}, false, nil
	}

	pick := r.Intn(total)
	for _, e := range entries {
		if e.Weight < MinWeight {
			continue
		}
		if pick < e.Weight {
			return e.Move, true, nil
		}
		pick -= e.Weight
	}
	return board.Move{}, false, nil
}

// fenKey crops a full FEN record to its first four fields (placement, active color,
// castling, en passant), ignoring the halfmove/fullmove counters, so transposed move
// orders that reach the same book position still hit the same entry.
func fenKey(s string) string {
	parts := strings.Fields(s)
	if len(parts) < 4 {
		return s
	}
	return strings.Join(parts[:4], " ")
}
