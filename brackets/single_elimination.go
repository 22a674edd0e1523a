package brackets

import (
	"context"
	"sort"

	"github.com/Dosada05/maze-tournament/models"
)

// SingleEliminationGenerator seeds players by position, gives the top seeds
// round-one byes and re-seeds the survivors after every round, so the
// pairings of round k depend only on who is left.
type SingleEliminationGenerator struct {
}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return string(models.FormatSingleElimination)
}

func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (*models.Bracket, error) {
	players, err := seedPlayers(params.RankedNames)
	if err != nil {
		return nil, err
	}

	n := len(players)
	numByes := 1<<uint(roundsFor(n)) - n

	current := make([]*models.Seed, n)
	for i := range players {
		current[i] = newSeed(players[i])
	}

	bracket := &models.Bracket{Players: players}
	for round := 1; len(current) > 1; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var matches []*models.Match
		contenders := current
		if round == 1 {
			// top seeds skip the first round
			for _, s := range current[:numByes] {
				matches = append(matches, byeMatch(s, round))
			}
			contenders = current[numByes:]
		} else {
			// re-seed survivors by their original seed
			sort.SliceStable(contenders, func(i, j int) bool { return contenders[i].Seed < contenders[j].Seed })
		}
		matches = append(matches, pairMirrored(contenders, round)...)

		bracket.Rounds = append(bracket.Rounds, matches)
		current = winners(matches)
	}

	bracket.Winner = current[0].Name
	return bracket, nil
}

// pairMirrored pairs the first seed with the last, the second with the
// second to last and so on. An unpaired middle seed gets a bye.
func pairMirrored(seeds []*models.Seed, round int) []*models.Match {
	matches := make([]*models.Match, 0, (len(seeds)+1)/2)
	i, j := 0, len(seeds)-1
	for ; i < j; i, j = i+1, j-1 {
		matches = append(matches, playMatch(seeds[i], seeds[j], round))
	}
	if i == j {
		matches = append(matches, byeMatch(seeds[i], round))
	}
	return matches
}
