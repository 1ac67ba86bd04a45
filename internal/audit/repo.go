package audit

import "context"

// Filter narrows event listings; zero values match everything.
type Filter struct {
	EntityType string
	EntityID   string
	Limit      int
	Offset     int
}

// Repo defines append-only persistence for audit events.
type Repo interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context, filter Filter) ([]Event, error)
}
