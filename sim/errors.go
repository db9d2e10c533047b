package sim

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the loader, the engine initializer, and the
// emitter. Callers should compare with errors.Is rather than string
// matching, since every occurrence is wrapped with context (row/column,
// path, token or state name).
var (
	ErrFileUnopenable        = errors.New("file unopenable")
	ErrMalformedHeader       = errors.New("malformed header")
	ErrMalformedRow          = errors.New("malformed row")
	ErrUnknownDurationType   = errors.New("unknown duration type")
	ErrNonNumericProbability = errors.New("non-numeric probability")
	ErrUnknownState          = errors.New("unknown state")
	ErrMixedDurationTypes    = errors.New("mixed duration types")
	ErrOutputOpenFailed      = errors.New("output open failed")
	ErrReservedStateName     = errors.New("reserved state name")
)

// makeErr wraps a sentinel with formatted context, keeping errors.Is
// working for callers that only care about the error kind.
func makeErr(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
