package brackets

import (
	"context"
	"fmt"
	"math/bits"
	"strings"

	"github.com/Dosada05/maze-tournament/models"
)

type GenerateBracketParams struct {
	// RankedNames is ordered best to worst; index 0 becomes seed 1.
	RankedNames []string
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) (*models.Bracket, error)

	GetName() string
}

// NewGenerator returns the generator registered for format. An empty format
// selects single elimination.
func NewGenerator(format models.BracketFormat) (BracketGenerator, error) {
	switch format {
	case "", models.FormatSingleElimination:
		return NewSingleEliminationGenerator(), nil
	case models.FormatFixedSeeding:
		return NewFixedSeedingGenerator(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// seedPlayers trims and validates names and assigns seeds by position.
func seedPlayers(names []string) ([]models.Seed, error) {
	if len(names) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientPlayers, len(names))
	}
	seen := make(map[string]struct{}, len(names))
	players := make([]models.Seed, 0, len(names))
	for i, raw := range names {
		// surrounding spaces are not part of a name
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, fmt.Errorf("%w: name at position %d is empty", ErrDuplicateOrEmptyName, i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q appears more than once", ErrDuplicateOrEmptyName, name)
		}
		seen[name] = struct{}{}
		players = append(players, models.Seed{Name: name, Seed: i + 1})
	}
	return players, nil
}

// roundsFor returns ceil(log2(n)) for n >= 1.
func roundsFor(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

func newSeed(s models.Seed) *models.Seed {
	return &s
}

func byeMatch(s *models.Seed, round int) *models.Match {
	return &models.Match{Player1: s, Winner: s, Round: round}
}

// playMatch builds a match won by the lower seed number.
func playMatch(a, b *models.Seed, round int) *models.Match {
	m := &models.Match{Player1: a, Player2: b, Winner: a, Round: round}
	if b.Seed < a.Seed {
		m.Winner = b
	}
	return m
}

func winners(matches []*models.Match) []*models.Seed {
	out := make([]*models.Seed, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Winner)
	}
	return out
}
