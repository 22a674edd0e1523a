package models

import "encoding/json"

// NoWinner is reported when a bracket has no champion.
const NoWinner = "no winner"

type BracketFormat string

const (
	FormatSingleElimination BracketFormat = "SingleElimination"
	FormatFixedSeeding      BracketFormat = "FixedSeeding"
)

// Seed is a player's tournament position; 1 is the top-ranked player.
type Seed struct {
	Name string `json:"name"`
	Seed int    `json:"seed"`
}

// Match pairs two seeds. Player2 == nil is a bye and Winner is then Player1.
type Match struct {
	Player1 *Seed `json:"player1"`
	Player2 *Seed `json:"player2"`
	Winner  *Seed `json:"winner"`
	Round   int   `json:"round"`
}

// IsBye reports whether the match has no second player.
func (m *Match) IsBye() bool {
	return m.Player2 == nil
}

type Bracket struct {
	Players []Seed     `json:"players"`
	Rounds  [][]*Match `json:"rounds"`
	Winner  string     `json:"winner"`
}

// MatchNode is the binary-tree view of a bracket. Each node wraps a match
// owned by Bracket.Rounds, so edits through the tree land in the rounds.
type MatchNode struct {
	Match *Match     `json:"-"`
	Left  *MatchNode `json:"-"`
	Right *MatchNode `json:"-"`
}

type matchNodeJSON struct {
	Player1 *string    `json:"player1"`
	Player2 *string    `json:"player2"`
	Winner  *string    `json:"winner"`
	Round   int        `json:"round"`
	Left    *MatchNode `json:"left"`
	Right   *MatchNode `json:"right"`
}

func (n *MatchNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(matchNodeJSON{
		Player1: seedName(n.Match.Player1),
		Player2: seedName(n.Match.Player2),
		Winner:  seedName(n.Match.Winner),
		Round:   n.Match.Round,
		Left:    n.Left,
		Right:   n.Right,
	})
}

func seedName(s *Seed) *string {
	if s == nil {
		return nil
	}
	name := s.Name
	return &name
}
