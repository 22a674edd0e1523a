package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/maze-tournament/maze"
	"github.com/Dosada05/maze-tournament/models"
	"github.com/Dosada05/maze-tournament/repositories"
	"github.com/Dosada05/maze-tournament/rng"
)

type TournamentMode string

const (
	// ModeShared runs every player through one grid.
	ModeShared TournamentMode = "shared"
	// ModeIndividual gives every player a grid derived from the tournament seed.
	ModeIndividual TournamentMode = "individual"
)

type GeneratedMaze struct {
	Maze models.Grid `json:"maze"`
	Seed string      `json:"seed"`
}

type RunPlayerInput struct {
	PlayerName string
	Maze       models.Grid
	Seed       string
	Strategy   string
}

type RunPlayerOutput struct {
	Record models.RunRecord    `json:"record"`
	Result models.PlayerResult `json:"result"`
}

type RunTournamentInput struct {
	Players  []string
	Size     int
	Seed     string
	Strategy string
	Mode     string
}

type TournamentResult struct {
	Maze    models.Grid           `json:"maze,omitempty"`
	Seed    string                `json:"seed"`
	Mode    TournamentMode        `json:"mode"`
	Results []models.PlayerResult `json:"results"`
}

type MazeService interface {
	GenerateMaze(ctx context.Context, size int, seed string) (*GeneratedMaze, error)
	SolveMaze(ctx context.Context, grid models.Grid) (*maze.Solution, error)
	RunPlayer(ctx context.Context, input RunPlayerInput) (*RunPlayerOutput, error)
	RunTournament(ctx context.Context, input RunTournamentInput) (*TournamentResult, error)
	History(ctx context.Context, limit int) ([]models.RunRecord, error)
	Runs(ctx context.Context) ([]models.RunRecord, error)
	Rankings(ctx context.Context) ([]models.RunRecord, error)
	PruneHistory(ctx context.Context, maxAge time.Duration) (int, error)
}

type MazeServiceConfig struct {
	DefaultSize     int
	DefaultStrategy models.PathStrategy
	Generation      maze.Options
}

type mazeService struct {
	history   repositories.RunHistoryRepository
	snapshots repositories.SnapshotRepository
	cfg       MazeServiceConfig
	logger    *slog.Logger
	now       func() time.Time
}

func NewMazeService(
	history repositories.RunHistoryRepository,
	snapshots repositories.SnapshotRepository,
	cfg MazeServiceConfig,
	logger *slog.Logger,
) MazeService {
	if cfg.DefaultSize == 0 {
		cfg.DefaultSize = 10
	}
	if cfg.DefaultStrategy == "" {
		cfg.DefaultStrategy = models.StrategyDFS
	}
	if cfg.Generation.MaxAttempts == 0 {
		cfg.Generation = maze.DefaultOptions()
	}
	return &mazeService{
		history:   history,
		snapshots: snapshots,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *mazeService) GenerateMaze(ctx context.Context, size int, seed string) (*GeneratedMaze, error) {
	if size == 0 {
		size = s.cfg.DefaultSize
	}
	grid, usedSeed, err := maze.GenerateWithOptions(ctx, size, seed, s.cfg.Generation)
	if err != nil {
		return nil, fmt.Errorf("generate maze: %w", err)
	}
	return &GeneratedMaze{Maze: grid, Seed: usedSeed}, nil
}

func (s *mazeService) SolveMaze(ctx context.Context, grid models.Grid) (*maze.Solution, error) {
	sol, err := maze.Solve(grid)
	if err != nil {
		return nil, fmt.Errorf("solve maze: %w", err)
	}
	return &sol, nil
}

func (s *mazeService) RunPlayer(ctx context.Context, input RunPlayerInput) (*RunPlayerOutput, error) {
	name := strings.TrimSpace(input.PlayerName)
	if name == "" {
		return nil, fmt.Errorf("%w: playerName is required", ErrValidationFailed)
	}
	if err := maze.ValidateSize(len(input.Maze)); err != nil {
		return nil, err
	}
	strategy, err := s.strategy(input.Strategy)
	if err != nil {
		return nil, err
	}

	seed := input.Seed
	if seed == "" {
		seed = rng.EntropySeed()
	}
	result, err := maze.RunPlayer(input.Maze, name, seed, strategy)
	if err != nil {
		return nil, fmt.Errorf("run player %q: %w", name, err)
	}

	record := s.newRecord(result, len(input.Maze))
	s.recordRuns(ctx, record)
	return &RunPlayerOutput{Record: record, Result: result}, nil
}

func (s *mazeService) RunTournament(ctx context.Context, input RunTournamentInput) (*TournamentResult, error) {
	players, err := validatePlayerNames(input.Players)
	if err != nil {
		return nil, err
	}
	strategy, err := s.strategy(input.Strategy)
	if err != nil {
		return nil, err
	}
	mode, err := parseMode(input.Mode)
	if err != nil {
		return nil, err
	}

	size := input.Size
	if size == 0 {
		size = s.cfg.DefaultSize
	}
	if err := maze.ValidateSize(size); err != nil {
		return nil, err
	}
	seed := input.Seed
	if seed == "" {
		seed = rng.EntropySeed()
	}

	out := &TournamentResult{Seed: seed, Mode: mode}
	// shared mode: every player walks the same grid
	if mode == ModeShared {
		grid, _, err := maze.GenerateWithOptions(ctx, size, seed, s.cfg.Generation)
		if err != nil {
			return nil, fmt.Errorf("generate tournament maze: %w", err)
		}
		out.Maze = grid
	}

	// each goroutine writes only its own slot
	results := make([]models.PlayerResult, len(players))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range players {
		i, name := i, name
		g.Go(func() error {
			grid := out.Maze
			if mode == ModeIndividual {
				var err error
				grid, _, err = maze.GenerateWithOptions(gctx, size, rng.Derive(seed, "maze:"+name), s.cfg.Generation)
				if err != nil {
					return fmt.Errorf("generate maze for %q: %w", name, err)
				}
			}
			res, err := maze.RunPlayer(grid, name, rng.Derive(seed, name), strategy)
			if err != nil {
				return fmt.Errorf("run player %q: %w", name, err)
			}
			if mode == ModeIndividual {
				res.Maze = grid
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Ranking and persistence
	maze.Rank(results)
	out.Results = results

	records := make([]models.RunRecord, 0, len(results))
	for _, res := range results {
		records = append(records, s.newRecord(res, size))
	}
	s.recordRuns(ctx, records...)

	s.saveSnapshot(ctx, out)

	s.logger.Info("tournament run completed",
		slog.Int("players", len(players)),
		slog.Int("size", size),
		slog.String("mode", string(mode)),
		slog.String("strategy", string(strategy)),
		slog.String("seed", seed))
	return out, nil
}

// saveSnapshot replaces the maze part of the snapshot and keeps any bracket
// already stored there.
func (s *mazeService) saveSnapshot(ctx context.Context, out *TournamentResult) {
	_, err := s.snapshots.Update(ctx, func(current *models.Snapshot) (*models.Snapshot, error) {
		if current == nil {
			current = &models.Snapshot{}
		}
		current.Maze = out.Maze
		current.Seed = out.Seed
		current.Results = out.Results
		current.UpdatedAt = s.now().UTC()
		return current, nil
	})
	if err != nil {
		s.logger.Warn("failed to save tournament snapshot", slog.Any("error", err))
	}
}

func (s *mazeService) History(ctx context.Context, limit int) ([]models.RunRecord, error) {
	return s.history.List(ctx, limit)
}

func (s *mazeService) Runs(ctx context.Context) ([]models.RunRecord, error) {
	return s.history.All(ctx)
}

// Rankings orders every stored run: completed runs first, then higher
// reward, then fewer steps.
func (s *mazeService) Rankings(ctx context.Context) ([]models.RunRecord, error) {
	runs, err := s.history.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(runs, func(i, j int) bool {
		a, b := runs[i], runs[j]
		if a.Completed != b.Completed {
			return a.Completed
		}
		if a.TotalReward != b.TotalReward {
			return a.TotalReward > b.TotalReward
		}
		return a.StepsTaken < b.StepsTaken
	})
	for i := range runs {
		runs[i].Rank = i + 1
	}
	return runs, nil
}

func (s *mazeService) PruneHistory(ctx context.Context, maxAge time.Duration) (int, error) {
	removed, err := s.history.PruneOlderThan(ctx, s.now().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	return removed, nil
}

func (s *mazeService) strategy(name string) (models.PathStrategy, error) {
	if name == "" {
		return s.cfg.DefaultStrategy, nil
	}
	return maze.ParseStrategy(name)
}

func (s *mazeService) newRecord(res models.PlayerResult, size int) models.RunRecord {
	return models.RunRecord{
		ID:          uuid.NewString(),
		PlayerName:  res.Name,
		MazeSize:    size,
		TotalReward: res.TotalReward,
		StepsTaken:  res.PathLength,
		Completed:   res.ReachedEnd,
		Timestamp:   s.now().UTC(),
	}
}

// recordRuns stores history best effort; a failing store never fails a run.
func (s *mazeService) recordRuns(ctx context.Context, records ...models.RunRecord) {
	for _, rec := range records {
		if err := s.history.Add(ctx, rec); err != nil {
			s.logger.Warn("failed to record run", slog.String("player", rec.PlayerName), slog.Any("error", err))
		}
	}
}

func parseMode(mode string) (TournamentMode, error) {
	switch m := TournamentMode(mode); m {
	case "":
		return ModeShared, nil
	case ModeShared, ModeIndividual:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
