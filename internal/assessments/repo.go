package assessments

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "assessment not found" }

// Repo defines persistence for assessment records.
type Repo interface {
	Create(ctx context.Context, record Record) error
	LatestForProject(ctx context.Context, projectID string) (Record, error)
	ListForProject(ctx context.Context, projectID string, limit int) ([]Record, error)
}
