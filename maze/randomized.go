package maze

import (
	"github.com/Dosada05/maze-tournament/models"
	"github.com/Dosada05/maze-tournament/rng"
)

// SolveRandomized walks the grid depth-first, trying neighbours in an order
// shuffled by seed, and returns the first complete route. Cells are never
// re-entered once visited. The route is valid but usually not shortest.
func SolveRandomized(grid models.Grid, seed string) (Solution, error) {
	if err := Validate(grid); err != nil {
		return Solution{}, err
	}
	return dfs(grid, rng.FromOptional(seed)), nil
}

func dfs(grid models.Grid, src rng.Source) Solution {
	start, end := grid.Start(), grid.End()
	visited := newVisited(grid.Size())
	visited[start.X][start.Y] = true
	path := []models.Position{start}

	var walk func(cur models.Position) bool
	walk = func(cur models.Position) bool {
		if cur == end {
			return true
		}
		order := directions
		src.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		for _, d := range order {
			next := step(cur, d)
			if !grid.IsOpen(next) || visited[next.X][next.Y] {
				continue
			}
			visited[next.X][next.Y] = true
			path = append(path, next)
			if walk(next) {
				return true
			}
			path = path[:len(path)-1]
		}
		return false
	}

	if !walk(start) {
		return unreached(grid)
	}
	return Solution{Path: path, Score: PathScore(grid, path), Reached: true}
}
