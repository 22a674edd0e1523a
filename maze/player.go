package maze

import (
	"fmt"
	"sort"

	"github.com/Dosada05/maze-tournament/models"
)

// ParseStrategy maps a strategy name to a PathStrategy. Empty means DFS.
func ParseStrategy(name string) (models.PathStrategy, error) {
	switch s := models.PathStrategy(name); s {
	case "":
		return models.StrategyDFS, nil
	case models.StrategyDFS, models.StrategyBFS, models.StrategyAStar:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// RunPlayer plays one player through grid. seed only affects the DFS strategy.
func RunPlayer(grid models.Grid, name, seed string, strategy models.PathStrategy) (models.PlayerResult, error) {
	var (
		sol Solution
		err error
	)
	switch strategy {
	case "", models.StrategyDFS:
		sol, err = SolveRandomized(grid, seed)
	case models.StrategyBFS:
		sol, err = Solve(grid)
	case models.StrategyAStar:
		sol, err = RunAStar(grid)
	default:
		return models.PlayerResult{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
	if err != nil {
		return models.PlayerResult{}, err
	}

	return models.PlayerResult{
		Name:        name,
		TotalReward: sol.Score,
		Path:        sol.Path,
		PathLength:  len(sol.Path) - 1,
		ReachedEnd:  sol.Reached,
		Seed:        seed,
	}, nil
}

// Rank orders results in place and assigns ranks starting at 1. Players who
// reached the end come first, then higher reward, shorter path, and name.
func Rank(results []models.PlayerResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.ReachedEnd != b.ReachedEnd {
			return a.ReachedEnd
		}
		if a.TotalReward != b.TotalReward {
			return a.TotalReward > b.TotalReward
		}
		if a.PathLength != b.PathLength {
			return a.PathLength < b.PathLength
		}
		return a.Name < b.Name
	})
	for i := range results {
		results[i].Rank = i + 1
	}
}
