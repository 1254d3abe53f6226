package reactive

import "errors"

// ErrIndexOutOfRange is returned by positional list operations when the index
// falls outside the valid bounds of the live collection. The notification for
// the failed call has already been emitted by the time the error is returned.
var ErrIndexOutOfRange = errors.New("reactive: index out of range")

// ErrNoEvaluator is returned when expression evaluation is requested but no
// evaluator could be resolved.
var ErrNoEvaluator = errors.New("reactive: evaluator not configured")
