package maze

import (
	"container/heap"

	"github.com/Dosada05/maze-tournament/models"
)

type astarNode struct {
	pos    models.Position
	g      int
	h      int
	reward int
	parent *astarNode
	index  int
}

func (n *astarNode) f() int { return n.g + n.h }

// better orders nodes by lower f, then by higher collected reward.
func better(a, b *astarNode) bool {
	if a.f() != b.f() {
		return a.f() < b.f()
	}
	return a.reward > b.reward
}

type openList []*astarNode

func (ol openList) Len() int           { return len(ol) }
func (ol openList) Less(i, j int) bool { return better(ol[i], ol[j]) }
func (ol openList) Swap(i, j int) {
	ol[i], ol[j] = ol[j], ol[i]
	ol[i].index = i
	ol[j].index = j
}

func (ol *openList) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*ol)
	*ol = append(*ol, n)
}

func (ol *openList) Pop() any {
	old := *ol
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*ol = old[:n-1]
	return node
}

func manhattan(a, b models.Position) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// AStarBudget is the default expansion limit for a grid of the given size.
func AStarBudget(size int) int {
	return 2 * size * size
}

// RunAStar searches with a Manhattan heuristic and unit step cost, preferring
// higher reward among equally promising nodes. If the end is not reached
// within AStarBudget expansions, the route to the best node seen is returned
// with Reached false.
func RunAStar(grid models.Grid) (Solution, error) {
	if err := Validate(grid); err != nil {
		return Solution{}, err
	}
	return astar(grid, AStarBudget(grid.Size())), nil
}

func astar(grid models.Grid, budget int) Solution {
	start, end := grid.Start(), grid.End()

	root := &astarNode{pos: start, h: manhattan(start, end), reward: cellReward(grid, start)}
	ol := &openList{}
	heap.Push(ol, root)

	best := map[models.Position]*astarNode{start: root}
	closed := make(map[models.Position]bool)
	bestSeen := root

	for expanded := 0; ol.Len() > 0 && expanded < budget; {
		cur := heap.Pop(ol).(*astarNode)
		// stale heap entry superseded by a better push
		if closed[cur.pos] {
			continue
		}
		closed[cur.pos] = true
		expanded++

		if better(cur, bestSeen) {
			bestSeen = cur
		}
		if cur.pos == end {
			path := nodePath(cur)
			return Solution{Path: path, Score: PathScore(grid, path), Reached: true}
		}

		for _, d := range directions {
			next := step(cur.pos, d)
			if !grid.IsOpen(next) || closed[next] {
				continue
			}
			g := cur.g + 1
			reward := cur.reward + cellReward(grid, next)
			if prev, ok := best[next]; ok && (g > prev.g || (g == prev.g && reward <= prev.reward)) {
				continue
			}
			node := &astarNode{pos: next, g: g, h: manhattan(next, end), reward: reward, parent: cur}
			best[next] = node
			heap.Push(ol, node)
		}
	}

	// budget spent or open list empty
	path := nodePath(bestSeen)
	return Solution{Path: path, Score: PathScore(grid, path), Reached: false}
}

func cellReward(grid models.Grid, p models.Position) int {
	if v := grid.At(p); v > 0 {
		return v
	}
	return 0
}

func nodePath(n *astarNode) []models.Position {
	var path []models.Position
	for ; n != nil; n = n.parent {
		path = append(path, n.pos)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
