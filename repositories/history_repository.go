package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/Dosada05/maze-tournament/models"
)

const (
	DefaultHistoryCapacity = 100
	DefaultHistoryLimit    = 50
)

type RunHistoryRepository interface {
	Add(ctx context.Context, record models.RunRecord) error
	// List returns up to limit of the most recent records, oldest first.
	// limit <= 0 means DefaultHistoryLimit.
	List(ctx context.Context, limit int) ([]models.RunRecord, error)
	All(ctx context.Context) ([]models.RunRecord, error)
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// memoryRunHistoryRepository is a bounded buffer; when full, Add evicts the
// oldest record.
type memoryRunHistoryRepository struct {
	mu       sync.RWMutex
	records  []models.RunRecord
	capacity int
}

func NewMemoryRunHistoryRepository(capacity int) RunHistoryRepository {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &memoryRunHistoryRepository{
		records:  make([]models.RunRecord, 0, capacity),
		capacity: capacity,
	}
}

func (r *memoryRunHistoryRepository) Add(ctx context.Context, record models.RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.records) == r.capacity {
		copy(r.records, r.records[1:])
		r.records[len(r.records)-1] = record
		return nil
	}
	r.records = append(r.records, record)
	return nil
}

func (r *memoryRunHistoryRepository) List(ctx context.Context, limit int) ([]models.RunRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	start := len(r.records) - limit
	if start < 0 {
		start = 0
	}
	return append([]models.RunRecord(nil), r.records[start:]...), nil
}

func (r *memoryRunHistoryRepository) All(ctx context.Context) ([]models.RunRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.RunRecord(nil), r.records...), nil
}

func (r *memoryRunHistoryRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.records[:0]
	for _, rec := range r.records {
		if !rec.Timestamp.Before(cutoff) {
			kept = append(kept, rec)
		}
	}
	removed := len(r.records) - len(kept)
	for i := len(kept); i < len(r.records); i++ {
		r.records[i] = models.RunRecord{}
	}
	r.records = kept
	return removed, nil
}
