package maze

import (
	"github.com/Dosada05/maze-tournament/models"
)

// Solution is a route through a grid. Reached is false when the end cell
// could not be reached; Path then holds the best partial route.
type Solution struct {
	Path    []models.Position `json:"path"`
	Score   int               `json:"score"`
	Reached bool              `json:"reachedEnd"`
}

// Solve finds a shortest route from start to end with breadth-first search.
// Among equal-length routes the one discovered first in up, down, left,
// right order wins.
func Solve(grid models.Grid) (Solution, error) {
	if err := Validate(grid); err != nil {
		return Solution{}, err
	}
	return bfs(grid), nil
}

// Reachable reports whether end can be reached from start. grid must be valid.
func Reachable(grid models.Grid) bool {
	return bfs(grid).Reached
}

func bfs(grid models.Grid) Solution {
	n := grid.Size()
	start, end := grid.Start(), grid.End()

	visited := newVisited(n)
	prev := make(map[models.Position]models.Position, n*n)
	visited[start.X][start.Y] = true
	queue := []models.Position{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == end {
			path := backtrack(prev, start, end)
			return Solution{Path: path, Score: PathScore(grid, path), Reached: true}
		}

		for _, d := range directions {
			next := step(cur, d)
			if !grid.IsOpen(next) || visited[next.X][next.Y] {
				continue
			}
			visited[next.X][next.Y] = true
			prev[next] = cur
			queue = append(queue, next)
		}
	}
	return unreached(grid)
}

func backtrack(prev map[models.Position]models.Position, start, end models.Position) []models.Position {
	path := []models.Position{end}
	for cur := end; cur != start; {
		cur = prev[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func unreached(grid models.Grid) Solution {
	path := []models.Position{grid.Start()}
	return Solution{Path: path, Score: PathScore(grid, path), Reached: false}
}
