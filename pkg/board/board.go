// Package board contains chess board representation, move generation and utilities.
package board

import "fmt"

const (
	repetition3Limit  = 3
	repetition5Limit  = 5
	noProgressPlyLimit = 100
)

type node struct {
	pos        *Position
	hash       ZobristHash
	noprogress int

	next Move // move played from this node, if any (i.e. if not current)
	prev *node
}

// Board represents a chess position together with the game history needed to adjudicate
// draws: repetition, the fifty-move rule, and insufficient material. Not thread-safe; a
// single search owns one Board for its duration (see SPEC_FULL.md §5).
type Board struct {
	zt          *ZobristTable
	repetitions map[ZobristHash]int

	fullmoves int
	ply       int // plies played since this Board (or its root ancestor) was created
	turn      Color
	result    Result
	current   *node
}

// NewBoard creates a board rooted at the given position.
func NewBoard(zt *ZobristTable, pos *Position, turn Color, noprogress, fullmoves int) *Board {
	current := &node{
		pos:        pos,
		noprogress: noprogress,
		hash:       zt.Hash(pos, turn),
	}
	return &Board{
		zt:          zt,
		repetitions: map[ZobristHash]int{current.hash: 1},
		fullmoves:   fullmoves,
		turn:        turn,
		current:     current,
	}
}

// Fork branches off an independent board sharing the node history for past positions. The
// shared history must not be mutated via PopMove past the fork point.
func (b *Board) Fork() *Board {
	fork := &Board{
		zt:          b.zt,
		repetitions: make(map[ZobristHash]int, len(b.repetitions)),
		fullmoves:   b.fullmoves,
		turn:        b.turn,
		result:      b.result,
		current:     b.current,
	}
	for k, v := range b.repetitions {
		fork.repetitions[k] = v
	}
	return fork
}

func (b *Board) Position() *Position    { return b.current.pos }
func (b *Board) Turn() Color            { return b.turn }
func (b *Board) Hash() ZobristHash      { return b.current.hash }
func (b *Board) NoProgress() int        { return b.current.noprogress }
func (b *Board) FullMoves() int         { return b.fullmoves }
func (b *Board) Result() Result         { return b.result }
func (b *Board) Ply() int               { return b.ply }

// PushMove attempts to make a pseudo-legal move. Returns false iff illegal (leaves the
// mover's own king in check) or the position is already adjudicated checkmate or stalemate;
// a draw by repetition, no progress or insufficient material does not block further moves.
func (b *Board) PushMove(m Move) bool {
	if b.result.Reason == Checkmate || b.result.Reason == Stalemate {
		return false
	}

	next, ok := b.current.pos.Move(m)
	if !ok {
		return false
	}

	n := &node{
		pos:        next,
		hash:       b.zt.Move(b.current.hash, b.current.pos, m),
		noprogress: updateNoProgress(b.current.noprogress, m),
		prev:       b.current,
	}

	b.current.next = m
	b.current = n

	b.turn = b.turn.Opponent()
	b.ply++
	b.repetitions[b.current.hash]++
	if b.turn == White {
		b.fullmoves++
	}

	if b.repetitions[b.current.hash] >= repetition3Limit {
		actual := b.identicalPositionCount(b.current, b.current.noprogress)
		switch {
		case actual >= repetition5Limit:
			b.result = Result{Outcome: Draw, Reason: Repetition5}
		case actual >= repetition3Limit:
			b.result = Result{Outcome: Draw, Reason: Repetition3}
		}
	}

	if b.current.noprogress >= noProgressPlyLimit {
		b.result = Result{Outcome: Draw, Reason: NoProgress}
	}

	if b.current.pos.HasInsufficientMaterial() {
		b.result = Result{Outcome: Draw, Reason: InsufficientMaterial}
	}

	return true
}

// PushNullMove passes the turn without making a move, used by null-move pruning search
// (SPEC_FULL.md §4.5 step 6). It forfeits any en-passant target, exactly as a real move
// would. Returns false iff the side to move is in check, where passing is unsound and the
// caller must not attempt it.
func (b *Board) PushNullMove() bool {
	if b.current.pos.IsChecked(b.turn) {
		return false
	}

	next := *b.current.pos
	next.enpassant, next.hasEP = 0, false

	n := &node{
		pos:        &next,
		hash:       b.zt.NullMove(b.current.hash, b.current.pos, b.turn),
		noprogress: b.current.noprogress,
		prev:       b.current,
	}

	b.current.next = Move{}
	b.current = n
	b.turn = b.turn.Opponent()
	b.ply++
	if b.turn == White {
		b.fullmoves++
	}
	return true
}

// PopNullMove undoes the last PushNullMove.
func (b *Board) PopNullMove() {
	b.turn = b.turn.Opponent()
	b.ply--
	if b.turn == Black {
		b.fullmoves--
	}
	b.current = b.current.prev
}

// PopMove undoes the last move, if any.
func (b *Board) PopMove() (Move, bool) {
	if b.current.prev == nil {
		return Move{}, false
	}

	b.turn = b.turn.Opponent()
	b.ply--
	b.repetitions[b.current.hash]--
	b.result = Result{Outcome: Undecided}
	if b.turn == Black {
		b.fullmoves--
	}

	b.current = b.current.prev
	m := b.current.next
	b.current.next = Move{}
	return m, true
}

// AdjudicateNoLegalMoves adjudicates the position assuming the side to move has no legal
// moves: Checkmate if in check, Stalemate otherwise.
func (b *Board) AdjudicateNoLegalMoves() Result {
	result := Result{Outcome: Draw, Reason: Stalemate}
	if b.current.pos.IsChecked(b.turn) {
		result = Result{Outcome: Loss(b.turn), Reason: Checkmate}
	}
	b.result = result
	return result
}

func (b *Board) identicalPositionCount(n *node, limit int) int {
	ret := 1
	tmp := n.prev
	for i := 1; i < limit && tmp != nil && tmp.noprogress >= n.noprogress-i; i++ {
		if tmp.hash == n.hash {
			ret++
		}
		tmp = tmp.prev
	}
	return ret
}

// LastMove returns the most recently played move, if any.
func (b *Board) LastMove() (Move, bool) {
	if b.current.prev != nil {
		return b.current.prev.next, true
	}
	return Move{}, false
}

func (b *Board) String() string {
	return fmt.Sprintf("board{pos=%v, turn=%v, hash=%x, noprogress=%v, fullmoves=%v, ply=%v, result=%v}",
		b.current.pos, b.turn, b.current.hash, b.current.noprogress, b.fullmoves, b.ply, b.result)
}

func updateNoProgress(old int, m Move) int {
	if m.Type != Normal {
		return 0
	}
	return old + 1
}
