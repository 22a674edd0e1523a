package services

import (
	"fmt"
	"strings"

	"github.com/Dosada05/maze-tournament/brackets"
)

// validatePlayerNames trims names and rejects short, empty or duplicate
// lists with the bracket engine's errors, so a tournament fails before any
// maze is generated.
func validatePlayerNames(players []string) ([]string, error) {
	if len(players) < 2 {
		return nil, fmt.Errorf("%w: got %d", brackets.ErrInsufficientPlayers, len(players))
	}
	seen := make(map[string]struct{}, len(players))
	out := make([]string, 0, len(players))
	for i, p := range players {
		name := strings.TrimSpace(p)
		if name == "" {
			return nil, fmt.Errorf("%w: name at position %d is empty", brackets.ErrDuplicateOrEmptyName, i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q appears more than once", brackets.ErrDuplicateOrEmptyName, name)
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}
