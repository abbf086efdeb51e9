package board

import (
	"container/heap"
	"fmt"
	"math"
)

// MovePriority is a move ordering priority: higher is searched first.
type MovePriority int32

// MovePriorityFn assigns a priority to a move.
type MovePriorityFn func(move Move) MovePriority

// MovePredicateFn decides whether a move should be explored at all. Used by quiescence
// and other forward-pruning to restrict the move set without materializing a sublist.
type MovePredicateFn func(move Move) bool

// First gives the given move the highest possible priority and defers to fn otherwise.
// Used to place a transposition-table or ponder move first in the search order.
func First(first Move, fn MovePriorityFn) MovePriorityFn {
	return func(m Move) MovePriority {
		if first.Equals(m) {
			return math.MaxInt32
		}
		return fn(m)
	}
}

// IsAnyMove selects all moves.
func IsAnyMove(Move) bool {
	return true
}

// IsNoMove selects no moves.
func IsNoMove(Move) bool {
	return false
}

// MoveList is a move priority queue for move ordering. Moves are produced highest
// priority first via Next, without needing to sort the full list up front.
type MoveList struct {
	h moveHeap
}

// NewMoveList returns a new move list ordered by fn.
func NewMoveList(moves []Move, fn MovePriorityFn) *MoveList {
	h := make(moveHeap, len(moves))
	for i, m := range moves {
		h[i] = elm{m: m, val: fn(m)}
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

// Next returns the next highest-priority move, if any.
func (ml *MoveList) Next() (Move, bool) {
	if ml.Size() == 0 {
		return Move{}, false
	}
	ret := heap.Pop(&ml.h).(elm)
	return ret.m, true
}

func (ml *MoveList) Size() int {
	return ml.h.Len()
}

func (ml *MoveList) String() string {
	if ml.Size() == 0 {
		return "[size=0]"
	}
	return fmt.Sprintf("[top=%v, size=%v]", ml.h[0].m, ml.Size())
}

type elm struct {
	m   Move
	val MovePriority
}

type moveHeap []elm

func (h moveHeap) Len() int            { return len(h) }
func (h moveHeap) Less(i, j int) bool  { return h[i].val > h[j].val }
func (h moveHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *moveHeap) Push(x interface{}) { *h = append(*h, x.(elm)) }

func (h *moveHeap) Pop() interface{} {
	old := *h
	n := len(old)
	ret := old[n-1]
	*h = old[:n-1]
	return ret
}
