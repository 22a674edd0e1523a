package brackets

import "errors"

var (
	ErrInsufficientPlayers  = errors.New("at least 2 players are required")
	ErrDuplicateOrEmptyName = errors.New("player names must be unique and non-empty")
	ErrUnknownFormat        = errors.New("unknown bracket format")
	ErrInvalidMatchPath     = errors.New("invalid match path")
	ErrWinnerNotInMatch     = errors.New("winner is not a player of the match")
	ErrEmptyBracket         = errors.New("bracket has no matches")
)
