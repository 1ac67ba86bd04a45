package audit

import (
	"context"
	"sync"
)

// MemoryRepo keeps events in memory, newest first on listing.
type MemoryRepo struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Append(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, filter Filter) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, offset := normalizeWindow(filter.Limit, filter.Offset)

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Event, 0, len(r.events))
	for i := len(r.events) - 1; i >= 0; i-- {
		event := r.events[i]
		if filter.EntityType != "" && event.EntityType != filter.EntityType {
			continue
		}
		if filter.EntityID != "" && event.EntityID != filter.EntityID {
			continue
		}
		matched = append(matched, event)
	}

	if offset >= len(matched) {
		return []Event{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	out := make([]Event, end-offset)
	copy(out, matched[offset:end])
	return out, nil
}

func normalizeWindow(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

var _ Repo = (*MemoryRepo)(nil)
