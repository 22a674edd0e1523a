package maze

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/maze-tournament/models"
)

func TestGenerate_Deterministic(t *testing.T) {
	for size := MinSize; size <= MaxSize; size++ {
		seed := fmt.Sprintf("seed-%d", size)
		a, err := Generate(size, seed)
		require.NoError(t, err)
		b, err := Generate(size, seed)
		require.NoError(t, err)
		assert.Equal(t, a, b, "size %d", size)
	}
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	a, err := Generate(12, "alpha")
	require.NoError(t, err)
	b, err := Generate(12, "beta")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGenerate_Invariants(t *testing.T) {
	opts := DefaultOptions()
	for size := MinSize; size <= MaxSize; size++ {
		for i := 0; i < 5; i++ {
			grid, err := Generate(size, fmt.Sprintf("inv-%d-%d", size, i))
			require.NoError(t, err)

			require.Len(t, grid, size)
			assert.Equal(t, opts.StartBonus, grid[0][0])
			assert.Equal(t, opts.EndBonus, grid[size-1][size-1])
			require.NoError(t, Validate(grid))

			rewards := 0
			for x, row := range grid {
				require.Len(t, row, size)
				for y, v := range row {
					if (x == 0 && y == 0) || (x == size-1 && y == size-1) {
						continue
					}
					assert.True(t, v == models.CellWall || (v >= opts.MinReward-1 && v <= opts.MaxReward),
						"cell (%d,%d) = %d", x, y, v)
					if v > 0 {
						rewards++
					}
				}
			}
			assert.LessOrEqual(t, rewards, size*size/5)

			sol, err := Solve(grid)
			require.NoError(t, err)
			assert.True(t, sol.Reached, "generated grid must be connected")
		}
	}
}

func TestGenerate_InvalidSize(t *testing.T) {
	for _, size := range []int{-1, 0, 4, 21, 100} {
		_, err := Generate(size, "x")
		assert.ErrorIs(t, err, ErrInvalidSize, "size %d", size)
	}
}

func TestGenerateWithOptions_ReturnsSeed(t *testing.T) {
	grid, seed, err := GenerateWithOptions(context.Background(), 8, "", DefaultOptions())
	require.NoError(t, err)
	require.NotEmpty(t, seed)

	replay, err := Generate(8, seed)
	require.NoError(t, err)
	assert.Equal(t, grid, replay)
}

func TestGenerateWithOptions_RetryExhausted(t *testing.T) {
	opts := DefaultOptions()
	opts.WallProbability = 1
	opts.MaxAttempts = 3

	_, _, err := GenerateWithOptions(context.Background(), 5, "walls", opts)
	assert.ErrorIs(t, err, ErrGenerationRetryExhausted)
}

func TestGenerateWithOptions_NoWalls(t *testing.T) {
	opts := DefaultOptions()
	opts.WallProbability = 0
	opts.RewardProbability = 0

	grid, _, err := GenerateWithOptions(context.Background(), 5, "open", opts)
	require.NoError(t, err)
	for x, row := range grid {
		for y, v := range row {
			if (x == 0 && y == 0) || (x == 4 && y == 4) {
				continue
			}
			assert.Equal(t, models.CellEmpty, v)
		}
	}
}
