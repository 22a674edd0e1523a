package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/maze-tournament/brackets"
	"github.com/Dosada05/maze-tournament/models"
	"github.com/Dosada05/maze-tournament/repositories"
	"github.com/Dosada05/maze-tournament/storage"
)

// Broadcaster pushes live updates to connected viewers. *brackets.Hub
// implements it.
type Broadcaster interface {
	Publish(roomID, messageType string, payload interface{})
}

// SnapshotMirror copies a saved snapshot elsewhere. *storage.SnapshotMirror
// implements it.
type SnapshotMirror interface {
	Mirror(ctx context.Context, snapshot *models.Snapshot) (*storage.UploadResult, error)
}

type BuildBracketInput struct {
	Players []string
	Format  string
}

type MatchUpdatedPayload struct {
	MatchPath string        `json:"matchPath"`
	Winner    string        `json:"winner"`
	Match     *models.Match `json:"match"`
	Champion  string        `json:"champion"`
}

type BracketService interface {
	BuildBracket(ctx context.Context, input BuildBracketInput) (*models.Bracket, error)
	GetBracket(ctx context.Context) (*models.Bracket, error)
	GetBracketTree(ctx context.Context) (*models.MatchNode, error)
	SetMatchWinner(ctx context.Context, matchPath, winner string) (*models.Match, error)
}

type bracketService struct {
	snapshots   repositories.SnapshotRepository
	mirror      SnapshotMirror
	broadcaster Broadcaster
	logger      *slog.Logger
	now         func() time.Time
}

// NewBracketService wires the bracket use cases. mirror and broadcaster may
// be nil.
func NewBracketService(
	snapshots repositories.SnapshotRepository,
	mirror SnapshotMirror,
	broadcaster Broadcaster,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		snapshots:   snapshots,
		mirror:      mirror,
		broadcaster: broadcaster,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *bracketService) BuildBracket(ctx context.Context, input BuildBracketInput) (*models.Bracket, error) {
	generator, err := brackets.NewGenerator(models.BracketFormat(input.Format))
	if err != nil {
		return nil, err
	}

	bracket, err := generator.GenerateBracket(ctx, brackets.GenerateBracketParams{RankedNames: input.Players})
	if err != nil {
		return nil, fmt.Errorf("generate %s bracket: %w", generator.GetName(), err)
	}

	snapshot, err := s.snapshots.Update(ctx, func(current *models.Snapshot) (*models.Snapshot, error) {
		if current == nil {
			current = &models.Snapshot{}
		}
		current.Bracket = bracket
		current.UpdatedAt = s.now().UTC()
		return current, nil
	})
	if err != nil {
		// the bracket is still returned; only persistence failed
		s.logger.Warn("failed to save bracket snapshot", slog.Any("error", err))
	} else {
		s.mirrorSnapshot(ctx, snapshot)
	}
	s.publish(brackets.MessageBracketUpdated, bracket)

	s.logger.Info("bracket built",
		slog.String("format", generator.GetName()),
		slog.Int("players", len(bracket.Players)),
		slog.Int("rounds", len(bracket.Rounds)),
		slog.String("winner", bracket.Winner))
	return bracket, nil
}

func (s *bracketService) GetBracket(ctx context.Context) (*models.Bracket, error) {
	snapshot, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bracket: %w", err)
	}
	if snapshot.Bracket == nil {
		return nil, ErrBracketNotFound
	}
	return snapshot.Bracket, nil
}

func (s *bracketService) GetBracketTree(ctx context.Context) (*models.MatchNode, error) {
	bracket, err := s.GetBracket(ctx)
	if err != nil {
		return nil, err
	}
	return brackets.BuildTree(bracket)
}

func (s *bracketService) SetMatchWinner(ctx context.Context, matchPath, winner string) (*models.Match, error) {
	if matchPath == "" || winner == "" {
		return nil, fmt.Errorf("%w: matchPath and winner are required", ErrValidationFailed)
	}

	var match *models.Match
	snapshot, err := s.snapshots.Update(ctx, func(current *models.Snapshot) (*models.Snapshot, error) {
		if current == nil {
			return nil, ErrSnapshotNotFound
		}
		if current.Bracket == nil {
			return nil, ErrBracketNotFound
		}
		m, err := brackets.SetWinnerAtPath(current.Bracket, matchPath, winner)
		if err != nil {
			return nil, err
		}
		match = m
		current.UpdatedAt = s.now().UTC()
		return current, nil
	})
	if err != nil {
		return nil, fmt.Errorf("update bracket: %w", err)
	}

	s.mirrorSnapshot(ctx, snapshot)
	s.publish(brackets.MessageMatchUpdated, MatchUpdatedPayload{
		MatchPath: matchPath,
		Winner:    winner,
		Match:     match,
		Champion:  snapshot.Bracket.Winner,
	})
	return match, nil
}

func (s *bracketService) mirrorSnapshot(ctx context.Context, snapshot *models.Snapshot) {
	if s.mirror == nil {
		return
	}
	res, err := s.mirror.Mirror(ctx, snapshot)
	if err != nil {
		s.logger.Warn("failed to mirror snapshot", slog.Any("error", err))
		return
	}
	s.logger.Debug("snapshot mirrored", slog.String("location", res.Location))
}

func (s *bracketService) publish(messageType string, payload interface{}) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.Publish(brackets.BracketRoom, messageType, payload)
}
