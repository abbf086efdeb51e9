package oracle

import "errors"

// ErrIllegalMove is returned by Oracle.Move when the given move is not legal in the
// current position. pkg/ai does not use it; its Play reports its own ai.ErrIllegalMove.
var ErrIllegalMove = errors.New("oracle: illegal move")
