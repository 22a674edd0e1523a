package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Dosada05/maze-tournament/models"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// UpdateFunc receives the stored snapshot, or nil when none exists yet, and
// returns the snapshot to store. An error aborts the update.
type UpdateFunc func(current *models.Snapshot) (*models.Snapshot, error)

type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *models.Snapshot) error
	Load(ctx context.Context) (*models.Snapshot, error)
	// Update runs a load-modify-save cycle that no other Save or Update
	// can interleave with.
	Update(ctx context.Context, fn UpdateFunc) (*models.Snapshot, error)
}

// fileSnapshotRepository keeps the latest snapshot in a single JSON file
// that is replaced on every save.
type fileSnapshotRepository struct {
	path string
	mu   sync.Mutex
}

func NewFileSnapshotRepository(path string) SnapshotRepository {
	return &fileSnapshotRepository{path: path}
}

func (r *fileSnapshotRepository) Save(ctx context.Context, snapshot *models.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(snapshot)
}

func (r *fileSnapshotRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

func (r *fileSnapshotRepository) Update(ctx context.Context, fn UpdateFunc) (*models.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.read()
	switch {
	case errors.Is(err, ErrSnapshotNotFound):
		current = nil
	case err != nil:
		return nil, err
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.write(next); err != nil {
		return nil, err
	}
	return next, nil
}

// write replaces the file through a temp file and rename. The caller holds mu.
func (r *fileSnapshotRepository) write(snapshot *models.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// read decodes the file. The caller holds mu.
func (r *fileSnapshotRepository) read() (*models.Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", r.path, err)
	}
	return &snapshot, nil
}
