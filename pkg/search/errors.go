package search

import "errors"

// ErrHalted is returned by Search when the context was cancelled (or a time control expired)
// before a result could be produced. Callers distinguish this from a completed search with no
// improving move via errors.Is, mirroring how the teacher's searchctl layer reports a
// cancelled Launch.
var ErrHalted = errors.New("search: halted before completion")
