// Package fen contains utilities for reading and writing positions in Forsyth-Edwards
// Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/TayDa64/liku-ai/pkg/board"
)

// Initial is the FEN of the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN record into a position, side to move, halfmove (no-progress) clock
// and fullmove number. Example:
//
//	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(s string) (*board.Position, board.Color, int, int, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 6 {
		return nil, 0, 0, 0, fmt.Errorf("invalid number of fields in FEN: %q", s)
	}

	// (1) Piece placement, rank 8 down to rank 1, file a to file h within a rank.

	var pieces []board.Placement

	rank := int(board.NumRanks) - 1
	file := 0
	for _, r := range parts[0] {
		switch {
		case r == '/':
			if file != int(board.NumFiles) {
				return nil, 0, 0, 0, fmt.Errorf("invalid rank length in FEN: %q", s)
			}
			rank--
			file = 0

		case unicode.IsDigit(r):
			file += int(r - '0')

		case unicode.IsLetter(r):
			color, piece, ok := parsePiece(r)
			if !ok {
				return nil, 0, 0, 0, fmt.Errorf("invalid piece %q in FEN: %q", r, s)
			}
			if file >= int(board.NumFiles) || rank < 0 {
				return nil, 0, 0, 0, fmt.Errorf("invalid placement in FEN: %q", s)
			}
			pieces = append(pieces, board.Placement{Square: board.NewSquare(board.File(file), board.Rank(rank)), Color: color, Piece: piece})
			file++

		default:
			return nil, 0, 0, 0, fmt.Errorf("invalid character %q in FEN: %q", r, s)
		}
	}
	if rank != 0 || file != int(board.NumFiles) {
		return nil, 0, 0, 0, fmt.Errorf("invalid number of squares in FEN: %q", s)
	}

	// (2) Active color.

	active, ok := board.ParseColor(parts[1])
	if !ok {
		return nil, 0, 0, 0, fmt.Errorf("invalid active color in FEN: %q", s)
	}

	// (3) Castling availability.

	castling, ok := board.ParseCastling(parts[2])
	if !ok {
		return nil, 0, 0, 0, fmt.Errorf("invalid castling rights in FEN: %q", s)
	}

	// (4) En passant target square.

	var ep board.Square
	hasEP := parts[3] != "-"
	if hasEP {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, 0, 0, 0, fmt.Errorf("invalid en passant in FEN: %q: %w", s, err)
		}
		ep = sq
	}

	// (5) Halfmove clock. Ignored for hashing purposes (see SPEC_FULL.md §4.1).

	np, err := strconv.Atoi(parts[4])
	if err != nil || np < 0 {
		return nil, 0, 0, 0, fmt.Errorf("invalid halfmove clock in FEN: %q", s)
	}

	// (6) Fullmove number.

	fm, err := strconv.Atoi(parts[5])
	if err != nil || fm < 1 {
		return nil, 0, 0, 0, fmt.Errorf("invalid fullmove number in FEN: %q", s)
	}

	pos, err := board.NewPosition(pieces, castling, ep, hasEP)
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("invalid position in FEN: %q: %w", s, err)
	}
	return pos, active, np, fm, nil
}

// Encode renders a position, side to move, halfmove clock and fullmove number as a FEN
// record.
func Encode(pos *board.Position, turn board.Color, noprogress, fullmoves int) string {
	var sb strings.Builder

	for rank := int(board.NumRanks) - 1; rank >= 0; rank-- {
		blanks := 0
		for file := 0; file < int(board.NumFiles); file++ {
			color, piece, ok := pos.Square(board.NewSquare(board.File(file), board.Rank(rank)))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(color, piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if rank > 0 {
			sb.WriteRune('/')
		}
	}

	ep := "-"
	if sq, ok := pos.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), turn, pos.Castling(), ep, noprogress, fullmoves)
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	p, ok := board.ParsePiece(r)
	if !ok {
		return 0, 0, false
	}
	if unicode.IsUpper(r) {
		return board.White, p, true
	}
	return board.Black, p, true
}

func printPiece(c board.Color, p board.Piece) rune {
	r := []rune(p.String())[0]
	if c == board.White {
		return unicode.ToUpper(r)
	}
	return r
}
