package projects

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo keeps projects in memory. Used in dev mode and tests.
type MemoryRepo struct {
	mu       sync.RWMutex
	projects map[string]Project
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{projects: make(map[string]Project)}
}

func (r *MemoryRepo) Create(ctx context.Context, project Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[project.ID] = project
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Project, error) {
	if err := ctx.Err(); err != nil {
		return Project{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	project, ok := r.projects[id]
	if !ok {
		return Project{}, ErrNotFound
	}
	return project, nil
}

func (r *MemoryRepo) List(ctx context.Context, filter Filter) ([]Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, offset := normalizeWindow(filter.Limit, filter.Offset)

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Project, 0, len(r.projects))
	for _, project := range r.projects {
		if filter.Status != "" && project.Status != filter.Status {
			continue
		}
		if filter.RiskLevel != "" && string(project.RiskLevel) != filter.RiskLevel {
			continue
		}
		matched = append(matched, project)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if offset >= len(matched) {
		return []Project{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	out := make([]Project, end-offset)
	copy(out, matched[offset:end])
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, project Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[project.ID]; !ok {
		return ErrNotFound
	}
	r.projects[project.ID] = project
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *MemoryRepo) Metrics(ctx context.Context) (Metrics, error) {
	if err := ctx.Err(); err != nil {
		return Metrics{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	m := Metrics{RiskDistribution: []RiskBucket{}}
	byLevel := map[string]int{}
	for _, project := range r.projects {
		m.TotalProjects++
		switch project.Status {
		case StatusApproved:
			m.ActiveProjects++
		case StatusPending:
			m.PendingApproval++
		}
		byLevel[string(project.RiskLevel)]++
	}
	for _, level := range []string{"low", "medium", "high"} {
		if count, ok := byLevel[level]; ok {
			m.RiskDistribution = append(m.RiskDistribution, RiskBucket{RiskLevel: level, Count: count})
		}
	}
	return m, nil
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
