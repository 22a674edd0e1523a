package models

// Cell values of a Grid.
const (
	CellWall  = -1
	CellEmpty = 0
)

// Grid is a square maze. Values: -1 wall, 0 open, >0 reward collected on visit.
type Grid [][]int

// Size returns the side length of the grid.
func (g Grid) Size() int {
	return len(g)
}

// Start returns the top-left cell.
func (g Grid) Start() Position {
	return Position{X: 0, Y: 0}
}

// End returns the bottom-right cell.
func (g Grid) End() Position {
	n := len(g) - 1
	return Position{X: n, Y: n}
}

// InBounds reports whether p lies inside the grid.
func (g Grid) InBounds(p Position) bool {
	n := len(g)
	return p.X >= 0 && p.X < n && p.Y >= 0 && p.Y < n
}

// IsOpen reports whether p is inside the grid and not a wall.
func (g Grid) IsOpen(p Position) bool {
	return g.InBounds(p) && g[p.X][p.Y] != CellWall
}

// At returns the value stored at p. The caller checks bounds.
func (g Grid) At(p Position) int {
	return g[p.X][p.Y]
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Position is a grid coordinate. X indexes rows and Y columns, i.e. grid[X][Y].
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Adjacent reports whether p and o share an edge.
func (p Position) Adjacent(o Position) bool {
	dx, dy := p.X-o.X, p.Y-o.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

type PathStrategy string

const (
	StrategyDFS   PathStrategy = "dfs"
	StrategyBFS   PathStrategy = "bfs"
	StrategyAStar PathStrategy = "astar"
)

type PlayerResult struct {
	Name        string     `json:"name"`
	TotalReward int        `json:"totalReward"`
	Path        []Position `json:"path"`
	PathLength  int        `json:"pathLength"`
	ReachedEnd  bool       `json:"reachedEnd"`
	Rank        int        `json:"rank"`
	Seed        string     `json:"seed,omitempty"`
	Maze        Grid       `json:"maze,omitempty"` // set only for individual-maze runs
}
