// Package san renders board.Move values in Standard Algebraic Notation, the format the
// external API (pkg/ai's GetBestMove/GetHint/AnalyzePosition, SPEC_FULL.md §6) reports
// moves in. No teacher file covers this: the teacher's own cmd/console and cmd/livechess-uci
// front ends only ever print coordinate notation, so this package is grounded on
// pkg/board's existing Square/Piece/Move helpers (String/ParsePiece) rather than on an
// existing SAN implementation.
package san

import (
	"strings"

	"github.com/TayDa64/liku-ai/pkg/board"
)

// Format renders m, played from pos by turn, in Standard Algebraic Notation. legal must be
// every legal move available to turn in pos, used to resolve disambiguation (two rooks that
// can both reach the same square, etc.); passing an incomplete list can under-disambiguate.
func Format(pos *board.Position, turn board.Color, legal []board.Move, m board.Move) string {
	if m.IsCastle() {
		s := "O-O"
		if m.Type == board.QueenSideCastle {
			s = "O-O-O"
		}
		return s + suffix(pos, turn, m)
	}

	var sb strings.Builder
	if m.Piece != board.Pawn {
		sb.WriteString(pieceLetter(m.Piece))
		sb.WriteString(disambiguation(legal, m))
	} else if m.IsCapture() {
		sb.WriteString(m.From.File().String())
	}

	if m.IsCapture() {
		sb.WriteString("x")
	}
	sb.WriteString(m.To.String())

	if m.IsPromotion() {
		sb.WriteString("=")
		sb.WriteString(pieceLetter(m.Promotion))
	}

	sb.WriteString(suffix(pos, turn, m))
	return sb.String()
}

// disambiguation returns the file, rank, or full square of m.From needed to distinguish m
// from other legal moves of the same piece type to the same destination, empty if m is
// already unambiguous.
func disambiguation(legal []board.Move, m board.Move) string {
	sameFile, sameRank, ambiguous := false, false, false
	for _, o := range legal {
		if o.Piece != m.Piece || o.To != m.To || o.From == m.From {
			continue
		}
		ambiguous = true
		if o.From.File() == m.From.File() {
			sameFile = true
		}
		if o.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}
	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return m.From.File().String()
	case !sameRank:
		return m.From.Rank().String()
	default:
		return m.From.String()
	}
}

// suffix applies m to pos and reports the resulting check/mate annotation: "#" if the
// opponent has no legal reply and is in check, "+" if merely in check, "" otherwise.
func suffix(pos *board.Position, turn board.Color, m board.Move) string {
	next, ok := pos.Move(m)
	if !ok {
		return ""
	}
	opponent := turn.Opponent()
	if !next.IsChecked(opponent) {
		return ""
	}
	if len(next.LegalMoves(opponent)) == 0 {
		return "#"
	}
	return "+"
}

func pieceLetter(p board.Piece) string {
	return strings.ToUpper(p.String())
}
