package maze

import (
	"fmt"

	"github.com/Dosada05/maze-tournament/models"
)

const (
	MinSize = 5
	MaxSize = 20
)

// up, down, left, right. BFS tie-breaking between equal-length paths depends
// on this order.
var directions = [4]models.Position{
	{X: -1, Y: 0},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: 0, Y: 1},
}

func step(p, d models.Position) models.Position {
	return models.Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// ValidateSize checks the bounds accepted by Generate.
func ValidateSize(size int) error {
	if size < MinSize || size > MaxSize {
		return fmt.Errorf("%w, got %d", ErrInvalidSize, size)
	}
	return nil
}

// Validate checks that grid is square, holds only -1, 0 or positive values
// and has open start and end cells.
func Validate(grid models.Grid) error {
	n := len(grid)
	if n == 0 {
		return fmt.Errorf("%w: grid is empty", ErrMalformedGrid)
	}
	for x, row := range grid {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedGrid, x, len(row), n)
		}
		for y, v := range row {
			if v < models.CellWall {
				return fmt.Errorf("%w: cell (%d,%d) has invalid value %d", ErrMalformedGrid, x, y, v)
			}
		}
	}
	if grid.At(grid.Start()) == models.CellWall || grid.At(grid.End()) == models.CellWall {
		return fmt.Errorf("%w: start and end cells must be open", ErrMalformedGrid)
	}
	return nil
}

// PathScore sums the rewards of the cells on path, each cell counted once.
func PathScore(grid models.Grid, path []models.Position) int {
	seen := make(map[models.Position]bool, len(path))
	total := 0
	for _, p := range path {
		if seen[p] || !grid.InBounds(p) {
			continue
		}
		seen[p] = true
		if v := grid.At(p); v > 0 {
			total += v
		}
	}
	return total
}

func newVisited(n int) [][]bool {
	v := make([][]bool, n)
	for i := range v {
		v[i] = make([]bool, n)
	}
	return v
}
