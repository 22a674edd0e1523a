package maze

import "errors"

var (
	ErrInvalidSize              = errors.New("maze size must be between 5 and 20")
	ErrMalformedGrid            = errors.New("malformed maze grid")
	ErrGenerationRetryExhausted = errors.New("could not generate a connected maze")
	ErrUnknownStrategy          = errors.New("unknown path strategy")

	// ErrNoPathFound is not returned by the solvers; they report an
	// unreachable end through Solution.Reached and a partial path.
	ErrNoPathFound = errors.New("no path to the end cell")
)
