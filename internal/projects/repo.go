package projects

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "project not found" }

// Filter narrows project listings; zero values match everything.
type Filter struct {
	Status    string
	RiskLevel string
	Limit     int
	Offset    int
}

// Repo defines persistence for projects. Delete is a soft delete; deleted
// projects disappear from every read path including Metrics.
type Repo interface {
	Create(ctx context.Context, project Project) error
	GetByID(ctx context.Context, id string) (Project, error)
	List(ctx context.Context, filter Filter) ([]Project, error)
	Update(ctx context.Context, project Project) error
	Delete(ctx context.Context, id string) error
	Metrics(ctx context.Context) (Metrics, error)
}
