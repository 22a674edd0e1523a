package brackets

import (
	"context"

	"github.com/Dosada05/maze-tournament/models"
)

// FixedSeedingGenerator lays seeds out in the standard bracket order
// (1, 8, 4, 5, 2, 7, 3, 6 for eight slots) and keeps that tree for the whole
// tournament: the winners of adjacent slots meet in the next round.
type FixedSeedingGenerator struct {
}

func NewFixedSeedingGenerator() BracketGenerator {
	return &FixedSeedingGenerator{}
}

func (g *FixedSeedingGenerator) GetName() string {
	return string(models.FormatFixedSeeding)
}

func (g *FixedSeedingGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (*models.Bracket, error) {
	players, err := seedPlayers(params.RankedNames)
	if err != nil {
		return nil, err
	}

	size := 1 << uint(roundsFor(len(players)))
	bracket := &models.Bracket{Players: players}

	var round1 []*models.Match
	order := seedingOrder(size)
	for i := 0; i < size; i += 2 {
		// order[i] is always the better seed of the pair and always exists.
		top, bottom := order[i], order[i+1]
		p1 := newSeed(players[top-1])
		if bottom > len(players) {
			round1 = append(round1, byeMatch(p1, 1))
			continue
		}
		round1 = append(round1, playMatch(p1, newSeed(players[bottom-1]), 1))
	}
	bracket.Rounds = append(bracket.Rounds, round1)

	current := winners(round1)
	for round := 2; len(current) > 1; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		matches := make([]*models.Match, 0, len(current)/2)
		for i := 0; i+1 < len(current); i += 2 {
			matches = append(matches, playMatch(current[i], current[i+1], round))
		}
		bracket.Rounds = append(bracket.Rounds, matches)
		current = winners(matches)
	}

	bracket.Winner = current[0].Name
	return bracket, nil
}

// seedingOrder returns the slot order for a bracket of size slots, size a
// power of two. Seeds s and size+1-s always share a first-round match.
func seedingOrder(size int) []int {
	order := []int{1}
	for len(order) < size {
		next := make([]int, 0, len(order)*2)
		sum := len(order)*2 + 1
		for _, s := range order {
			next = append(next, s, sum-s)
		}
		order = next
	}
	return order
}
