package brackets

import (
	"fmt"
	"strings"

	"github.com/Dosada05/maze-tournament/models"
)

const rootSegment = "root"

// BuildTree derives the binary-tree view of b. The root is the final match;
// the children of a match are the previous-round matches its two players
// came from. Nodes share the *Match values of b.Rounds.
func BuildTree(b *models.Bracket) (*models.MatchNode, error) {
	if b == nil || len(b.Rounds) == 0 {
		return nil, ErrEmptyBracket
	}
	final := b.Rounds[len(b.Rounds)-1]
	if len(final) != 1 {
		return nil, fmt.Errorf("%w: final round has %d matches", ErrEmptyBracket, len(final))
	}
	return buildNode(b.Rounds, len(b.Rounds)-1, final[0]), nil
}

func buildNode(rounds [][]*models.Match, idx int, m *models.Match) *models.MatchNode {
	node := &models.MatchNode{Match: m}
	if idx == 0 {
		return node
	}
	prev := rounds[idx-1]
	if m.Player1 != nil {
		if child := matchWithPlayer(prev, m.Player1.Name); child != nil {
			node.Left = buildNode(rounds, idx-1, child)
		}
	}
	if m.Player2 != nil {
		if child := matchWithPlayer(prev, m.Player2.Name); child != nil {
			node.Right = buildNode(rounds, idx-1, child)
		}
	}
	return node
}

func matchWithPlayer(matches []*models.Match, name string) *models.Match {
	for _, m := range matches {
		if (m.Player1 != nil && m.Player1.Name == name) || (m.Player2 != nil && m.Player2.Name == name) {
			return m
		}
	}
	return nil
}

// FindMatch resolves a dotted path such as "root.left.right".
func FindMatch(b *models.Bracket, path string) (*models.Match, error) {
	root, err := BuildTree(b)
	if err != nil {
		return nil, err
	}

	segments := strings.Split(path, ".")
	if segments[0] != rootSegment {
		return nil, fmt.Errorf("%w: %q must start with %q", ErrInvalidMatchPath, path, rootSegment)
	}
	node := root
	for _, seg := range segments[1:] {
		switch seg {
		case "left":
			node = node.Left
		case "right":
			node = node.Right
		default:
			return nil, fmt.Errorf("%w: unknown segment %q", ErrInvalidMatchPath, seg)
		}
		if node == nil {
			return nil, fmt.Errorf("%w: %q has no match", ErrInvalidMatchPath, path)
		}
	}
	return node.Match, nil
}

// SetWinnerAtPath overwrites the winner of the match addressed by path.
// Later rounds are left untouched; only b.Winner is recomputed from the
// final match.
func SetWinnerAtPath(b *models.Bracket, path, winner string) (*models.Match, error) {
	m, err := FindMatch(b, path)
	if err != nil {
		return nil, err
	}

	switch {
	case m.Player1 != nil && m.Player1.Name == winner:
		m.Winner = m.Player1
	case m.Player2 != nil && m.Player2.Name == winner:
		m.Winner = m.Player2
	default:
		return nil, fmt.Errorf("%w: %q at %s", ErrWinnerNotInMatch, winner, path)
	}

	b.Winner = Champion(b)
	return m, nil
}

// Champion returns the winner of the final match or models.NoWinner.
func Champion(b *models.Bracket) string {
	if b == nil || len(b.Rounds) == 0 {
		return models.NoWinner
	}
	final := b.Rounds[len(b.Rounds)-1]
	if len(final) != 1 || final[0].Winner == nil {
		return models.NoWinner
	}
	return final[0].Winner.Name
}
