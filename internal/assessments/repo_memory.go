package assessments

import (
	"context"
	"sync"
)

// MemoryRepo keeps assessment records in memory, per project in insertion
// order. Listing returns newest first.
type MemoryRepo struct {
	mu        sync.RWMutex
	byProject map[string][]Record
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byProject: make(map[string][]Record)}
}

func (r *MemoryRepo) Create(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byProject[record.ProjectID] = append(r.byProject[record.ProjectID], record)
	return nil
}

func (r *MemoryRepo) LatestForProject(ctx context.Context, projectID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	history := r.byProject[projectID]
	if len(history) == 0 {
		return Record{}, ErrNotFound
	}
	return history[len(history)-1], nil
}

func (r *MemoryRepo) ListForProject(ctx context.Context, projectID string, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit = normalizeLimit(limit)

	r.mu.RLock()
	defer r.mu.RUnlock()
	history := r.byProject[projectID]
	out := make([]Record, 0, limit)
	for i := len(history) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, history[i])
	}
	return out, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}

var _ Repo = (*MemoryRepo)(nil)
