package search

import "fmt"

// Stats aggregates search diagnostics accumulated over every Search call that shares it
// (searchctl shares one across all depths of a launch), generalizing the
// teacher's bare PV{Nodes} counter into the full counter set spec.md §4.5 asks for:
// total/quiescence nodes, TT hit and cutoff counts, beta cutoffs, null-move cutoffs,
// futility prunes, LMR reductions, and the deepest ply actually visited (selective depth).
type Stats struct {
	Nodes           uint64
	QNodes          uint64
	TTHits          uint64
	TTCutoffs       uint64
	BetaCutoffs     uint64
	NullMoveCutoffs uint64
	FutilityPrunes  uint64
	RazorCutoffs    uint64
	LMRReductions   uint64
	SelDepth        int
}

func (s *Stats) String() string {
	if s == nil {
		return "{}"
	}
	return fmt.Sprintf("{nodes=%v qnodes=%v seldepth=%v tt=%v/%v beta=%v null=%v futility=%v razor=%v lmr=%v}",
		s.Nodes, s.QNodes, s.SelDepth, s.TTCutoffs, s.TTHits, s.BetaCutoffs, s.NullMoveCutoffs,
		s.FutilityPrunes, s.RazorCutoffs, s.LMRReductions)
}

// observePly records ply as the new selective depth if it is deeper than anything seen so
// far. Safe to call with a nil receiver so callers need not guard every call site.
func (s *Stats) observePly(ply int) {
	if s != nil && ply > s.SelDepth {
		s.SelDepth = ply
	}
}
