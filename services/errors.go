package services

import (
	"errors"

	"github.com/Dosada05/maze-tournament/brackets"
	"github.com/Dosada05/maze-tournament/maze"
	"github.com/Dosada05/maze-tournament/repositories"
)

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrUnknownMode      = errors.New("unknown tournament mode")

	ErrSnapshotNotFound = repositories.ErrSnapshotNotFound
	ErrBracketNotFound  = errors.New("no bracket has been built yet")

	ErrUnknownStrategy = maze.ErrUnknownStrategy
	ErrUnknownFormat   = brackets.ErrUnknownFormat
)
