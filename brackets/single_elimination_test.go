package brackets

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/maze-tournament/models"
)

func names(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('A' + i))
	}
	return out
}

// describeRound renders each match as "P1-P2>W", or "P1>W" for a bye.
func describeRound(matches []*models.Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.IsBye() {
			out = append(out, fmt.Sprintf("%s>%s", m.Player1.Name, m.Winner.Name))
			continue
		}
		out = append(out, fmt.Sprintf("%s-%s>%s", m.Player1.Name, m.Player2.Name, m.Winner.Name))
	}
	return out
}

func generate(t *testing.T, g BracketGenerator, n int) *models.Bracket {
	t.Helper()
	b, err := g.GenerateBracket(context.Background(), GenerateBracketParams{RankedNames: names(n)})
	require.NoError(t, err)
	return b
}

func TestSingleElimination_TwoPlayers(t *testing.T) {
	b := generate(t, NewSingleEliminationGenerator(), 2)

	require.Len(t, b.Rounds, 1)
	assert.Equal(t, []string{"A-B>A"}, describeRound(b.Rounds[0]))
	assert.Equal(t, "A", b.Winner)
	assert.Equal(t, []models.Seed{{Name: "A", Seed: 1}, {Name: "B", Seed: 2}}, b.Players)
}

func TestSingleElimination_ThreePlayers(t *testing.T) {
	b := generate(t, NewSingleEliminationGenerator(), 3)

	require.Len(t, b.Rounds, 2)
	assert.Equal(t, []string{"A>A", "B-C>B"}, describeRound(b.Rounds[0]))
	assert.Equal(t, []string{"A-B>A"}, describeRound(b.Rounds[1]))
	assert.Equal(t, "A", b.Winner)
}

func TestSingleElimination_FivePlayers(t *testing.T) {
	b := generate(t, NewSingleEliminationGenerator(), 5)

	require.Len(t, b.Rounds, 3)
	assert.Equal(t, []string{"A>A", "B>B", "C>C", "D-E>D"}, describeRound(b.Rounds[0]))
	assert.Equal(t, []string{"A-D>A", "B-C>B"}, describeRound(b.Rounds[1]))
	assert.Equal(t, []string{"A-B>A"}, describeRound(b.Rounds[2]))
	assert.Equal(t, "A", b.Winner)
}

func TestSingleElimination_SixPlayers(t *testing.T) {
	b := generate(t, NewSingleEliminationGenerator(), 6)

	require.Len(t, b.Rounds, 3)
	assert.Equal(t, []string{"A>A", "B>B", "C-F>C", "D-E>D"}, describeRound(b.Rounds[0]))
	assert.Equal(t, []string{"A-D>A", "B-C>B"}, describeRound(b.Rounds[1]))
}

func TestSingleElimination_Properties(t *testing.T) {
	g := NewSingleEliminationGenerator()
	for n := 2; n <= 40; n++ {
		b := generate(t, g, n)

		wantRounds := int(math.Ceil(math.Log2(float64(n))))
		assert.Len(t, b.Rounds, wantRounds, "n=%d", n)

		byes := 0
		for _, m := range b.Rounds[0] {
			if m.IsBye() {
				byes++
			}
		}
		assert.Equal(t, 1<<uint(wantRounds)-n, byes, "n=%d", n)

		for k := 1; k < len(b.Rounds); k++ {
			assert.Equal(t, (len(b.Rounds[k-1])+1)/2, len(b.Rounds[k]), "n=%d round=%d", n, k+1)
			for _, m := range b.Rounds[k] {
				assert.Equal(t, k+1, m.Round)
			}
		}
		require.Len(t, b.Rounds[len(b.Rounds)-1], 1)
		assert.Equal(t, "A", b.Winner)

		again := generate(t, g, n)
		assert.Equal(t, b, again, "n=%d must be deterministic", n)
	}
}

func TestSingleElimination_Errors(t *testing.T) {
	g := NewSingleEliminationGenerator()
	ctx := context.Background()

	tests := []struct {
		name  string
		input []string
		want  error
	}{
		{"nil", nil, ErrInsufficientPlayers},
		{"empty", []string{}, ErrInsufficientPlayers},
		{"one", []string{"OnlyOne"}, ErrInsufficientPlayers},
		{"blank name", []string{"A", " "}, ErrDuplicateOrEmptyName},
		{"duplicate", []string{"A", "B", "A"}, ErrDuplicateOrEmptyName},
		{"duplicate after trimming", []string{" A", "A"}, ErrDuplicateOrEmptyName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := g.GenerateBracket(ctx, GenerateBracketParams{RankedNames: tt.input})
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, b)
		})
	}

	_, err := g.GenerateBracket(ctx, GenerateBracketParams{RankedNames: []string{"alice", "Alice"}})
	assert.NoError(t, err, "names are case-sensitive")
}

func TestSingleElimination_TrimsNames(t *testing.T) {
	b, err := NewSingleEliminationGenerator().GenerateBracket(context.Background(),
		GenerateBracketParams{RankedNames: []string{" A ", "B\t"}})
	require.NoError(t, err)

	assert.Equal(t, []models.Seed{{Name: "A", Seed: 1}, {Name: "B", Seed: 2}}, b.Players)
	assert.Equal(t, "A", b.Winner)
}

func TestSingleElimination_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSingleEliminationGenerator().GenerateBracket(ctx, GenerateBracketParams{RankedNames: names(4)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPairMirrored_OddMiddleGetsBye(t *testing.T) {
	seeds := []*models.Seed{{Name: "A", Seed: 1}, {Name: "B", Seed: 2}, {Name: "C", Seed: 3}}
	assert.Equal(t, []string{"A-C>A", "B>B"}, describeRound(pairMirrored(seeds, 1)))
}

func TestNewGenerator(t *testing.T) {
	g, err := NewGenerator("")
	require.NoError(t, err)
	assert.Equal(t, "SingleElimination", g.GetName())

	g, err = NewGenerator(models.FormatFixedSeeding)
	require.NoError(t, err)
	assert.Equal(t, "FixedSeeding", g.GetName())

	_, err = NewGenerator("RoundRobin")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
