package models

import "time"

// RunRecord is one entry of the maze run history.
type RunRecord struct {
	ID          string    `json:"id"`
	PlayerName  string    `json:"playerName"`
	MazeSize    int       `json:"mazeSize"`
	TotalReward int       `json:"totalReward"`
	StepsTaken  int       `json:"stepsTaken"`
	Completed   bool      `json:"completed"`
	Timestamp   time.Time `json:"timestamp"`
	Rank        int       `json:"rank,omitempty"`
}

// Snapshot is the most recent maze and bracket output written to disk.
type Snapshot struct {
	Maze      Grid           `json:"maze,omitempty"`
	Seed      string         `json:"seed,omitempty"`
	Results   []PlayerResult `json:"results,omitempty"`
	Bracket   *Bracket       `json:"bracket,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
