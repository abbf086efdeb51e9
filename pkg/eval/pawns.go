package eval

import (
	"context"
	"sync"

	"github.com/TayDa64/liku-ai/pkg/board"
)

const (
	doubledPawnPenalty  Centipawns = -15
	isolatedPawnPenalty Centipawns = -15
	backwardPawnPenalty Centipawns = -8
)

// passedPawnBonus is indexed by rank relative to the owning side (Relative(c)).
var passedPawnBonus = [8]Centipawns{0, 5, 10, 20, 35, 60, 100, 0}

// pawnEntry caches one side-to-move-independent pawn evaluation, keyed by a hash of the
// pawn bitboards alone, the way the teacher caches the more expensive Material/PST lookups
// via sync.Map-guarded tables elsewhere in pkg/engine.
type pawnEntry struct {
	key   uint64
	score Centipawns // white-relative
}

// PawnHashTable caches pawn-structure evaluation across calls, since pawn structure rarely
// changes between plies of a search and is the most expensive component to recompute pawn
// by pawn. Fixed-size, direct-mapped, no replacement scheme beyond "last write wins" --
// pawn structure collisions are rare and self-correct on the next probe.
type PawnHashTable struct {
	mu      sync.Mutex
	entries []pawnEntry
	mask    uint64
}

// NewPawnHashTable creates a table with 2^bits entries; bits of zero selects 2^14 entries.
func NewPawnHashTable(bits uint) *PawnHashTable {
	if bits == 0 {
		bits = 14
	}
	size := uint64(1) << bits
	return &PawnHashTable{entries: make([]pawnEntry, size), mask: size - 1}
}

func (t *PawnHashTable) probe(key uint64) (Centipawns, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.entries[key&t.mask]
	return e.score, e.key == key
}

func (t *PawnHashTable) store(key uint64, score Centipawns) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[key&t.mask] = pawnEntry{key: key, score: score}
}

func pawnKey(pos *board.Position) uint64 {
	return uint64(pos.Piece(board.White, board.Pawn))*0x9E3779B97F4A7C15 ^
		uint64(pos.Piece(board.Black, board.Pawn))*0xC2B2AE3D27D4EB4F
}

// PawnStructure scores doubled, isolated and backward pawns as penalties and passed pawns
// as a rank-scaled bonus, cached via Cache so repeated positions in a search tree (common
// since most moves don't touch pawns) skip recomputation.
type PawnStructure struct {
	Cache *PawnHashTable
}

func (s PawnStructure) Evaluate(_ context.Context, b *board.Board) Centipawns {
	pos := b.Position()
	key := pawnKey(pos)

	if s.Cache != nil {
		if v, ok := s.Cache.probe(key); ok {
			return relative(b.Turn(), v)
		}
	}

	white := evaluatePawns(pos, board.White)
	black := evaluatePawns(pos, board.Black)
	total := white - black

	if s.Cache != nil {
		s.Cache.store(key, total)
	}
	return relative(b.Turn(), total)
}

func evaluatePawns(pos *board.Position, c board.Color) Centipawns {
	own := pos.Piece(c, board.Pawn)
	opp := pos.Piece(c.Opponent(), board.Pawn)

	var score Centipawns
	for f := board.ZeroFile; f < board.NumFiles; f++ {
		count := (own & board.BitFile(f)).PopCount()
		if count > 1 {
			score += doubledPawnPenalty * Centipawns(count-1)
		}
		if count == 0 {
			continue
		}

		isolated := true
		if f > board.FileA && own&board.BitFile(f-1) != 0 {
			isolated = false
		}
		if f < board.FileH && own&board.BitFile(f+1) != 0 {
			isolated = false
		}
		if isolated {
			score += isolatedPawnPenalty * Centipawns(count)
		}
	}

	for _, sq := range own.ToSquares() {
		if isPassedPawn(sq, c, opp) {
			score += passedPawnBonus[sq.Relative(c)]
		} else if isBackwardPawn(sq, c, own, opp) {
			score += backwardPawnPenalty
		}
	}
	return score
}

// isPassedPawn returns true iff no opposing pawn can stop sq's pawn from promoting: no
// opposing pawn on its file or either adjacent file strictly ahead of its rank (from c's
// perspective).
func isPassedPawn(sq board.Square, c board.Color, oppPawns board.Bitboard) bool {
	f := sq.File()
	lo, hi := f, f
	if f > board.FileA {
		lo = f - 1
	}
	if f < board.FileH {
		hi = f + 1
	}

	for file := lo; file <= hi; file++ {
		for _, osq := range (oppPawns & board.BitFile(file)).ToSquares() {
			if aheadOf(osq, sq, c) {
				return false
			}
		}
	}
	return true
}

// isBackwardPawn returns true iff sq's pawn has no pawn of its own color able to support
// it on an adjacent file from behind or level, and cannot safely advance.
func isBackwardPawn(sq board.Square, c board.Color, ownPawns, oppPawns board.Bitboard) bool {
	f := sq.File()
	var supportFiles board.Bitboard
	if f > board.FileA {
		supportFiles |= board.BitFile(f - 1)
	}
	if f < board.FileH {
		supportFiles |= board.BitFile(f + 1)
	}

	for _, osq := range (ownPawns & supportFiles).ToSquares() {
		if !aheadOf(osq, sq, c) {
			return false
		}
	}
	return isPassedPawn(sq, c, oppPawns) == false && canBeAttackedOnAdvance(sq, c, oppPawns)
}

// aheadOf returns true iff a is strictly ahead of b from c's perspective.
func aheadOf(a, b board.Square, c board.Color) bool {
	if c == board.White {
		return a.Rank() > b.Rank()
	}
	return a.Rank() < b.Rank()
}

func canBeAttackedOnAdvance(sq board.Square, c board.Color, oppPawns board.Bitboard) bool {
	advance := sq
	if c == board.White {
		if sq.Rank() == board.Rank8 {
			return false
		}
		advance = board.NewSquare(sq.File(), sq.Rank()+1)
	} else {
		if sq.Rank() == board.Rank1 {
			return false
		}
		advance = board.NewSquare(sq.File(), sq.Rank()-1)
	}
	return board.PawnCaptureboard(c.Opponent(), oppPawns)&board.BitMask(advance) != 0
}
