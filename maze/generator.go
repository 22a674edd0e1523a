package maze

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/Dosada05/maze-tournament/models"
	"github.com/Dosada05/maze-tournament/rng"
)

// Options controls how Generate fills a grid.
type Options struct {
	WallProbability   float64
	RewardProbability float64
	// MaxRewardPercent caps reward cells as a percentage of the grid area.
	MaxRewardPercent int
	MinReward        int
	MaxReward        int
	StartBonus       int
	EndBonus         int
	MaxAttempts      int
}

func DefaultOptions() Options {
	return Options{
		WallProbability:   0.18,
		RewardProbability: 0.25,
		MaxRewardPercent:  20,
		MinReward:         1,
		MaxReward:         5,
		StartBonus:        10,
		EndBonus:          50,
		MaxAttempts:       50,
	}
}

var errUnreachable = errors.New("end cell unreachable")

// Generate builds a size×size grid with an open route from start to end.
// Generation is a pure function of (size, seed); an empty seed draws one
// from entropy.
func Generate(size int, seed string) (models.Grid, error) {
	grid, _, err := GenerateWithOptions(context.Background(), size, seed, DefaultOptions())
	return grid, err
}

// GenerateWithOptions is Generate with explicit options. It returns the base
// seed actually used, so an unseeded grid can be regenerated later. Attempt
// k>0 draws from the derived seed "<seed>#<k>".
func GenerateWithOptions(ctx context.Context, size int, seed string, opts Options) (models.Grid, string, error) {
	if err := ValidateSize(size); err != nil {
		return nil, "", err
	}
	if seed == "" {
		seed = rng.EntropySeed()
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}

	var (
		grid    models.Grid
		attempt int
	)
	noWait := retry.BackoffFunc(func() (time.Duration, bool) { return 0, false })
	backoff := retry.WithMaxRetries(uint64(opts.MaxAttempts-1), noWait)

	// every attempt is a fresh grid from its own derived seed
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		candidate := fill(size, rng.New(rng.DeriveAttempt(seed, attempt)), opts)
		attempt++
		if !Reachable(candidate) {
			return retry.RetryableError(errUnreachable)
		}
		grid = candidate
		return nil
	})
	if err != nil {
		if errors.Is(err, errUnreachable) {
			return nil, seed, fmt.Errorf("%w: size %d after %d attempts", ErrGenerationRetryExhausted, size, attempt)
		}
		return nil, seed, err
	}
	return grid, seed, nil
}

func fill(size int, src rng.Source, opts Options) models.Grid {
	grid := make(models.Grid, size)
	for x := range grid {
		grid[x] = make([]int, size)
	}

	start, end := grid.Start(), grid.End()
	maxRewards := size * size * opts.MaxRewardPercent / 100
	spread := opts.MaxReward - opts.MinReward + 1
	rewards := 0

	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			p := models.Position{X: x, Y: y}
			if p == start || p == end {
				continue
			}
			if src.Float64() < opts.WallProbability {
				grid[x][y] = models.CellWall
				continue
			}
			if rewards < maxRewards && src.Float64() < opts.RewardProbability {
				grid[x][y] = opts.MinReward + src.Intn(spread)
				rewards++
			}
		}
	}

	// start and end are never walls
	grid[start.X][start.Y] = opts.StartBonus
	grid[end.X][end.Y] = opts.EndBonus
	return grid
}
