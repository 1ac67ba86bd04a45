package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"governance-backend/internal/shared/metrics"
	"governance-backend/internal/shared/telemetry"
)

// Recorder appends audit events. Recording is best-effort: a failed
// append never fails the operation that produced it.
type Recorder struct {
	repo Repo
}

func NewRecorder(repo Repo) *Recorder {
	return &Recorder{repo: repo}
}

// Record fills in the event identity and timestamp, then appends it.
func (s *Recorder) Record(ctx context.Context, event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Actor == "" {
		event.Actor = "System"
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.Append(ctx, event); err != nil {
		telemetry.Error("audit.append.failed", map[string]any{
			"error":       err.Error(),
			"entity_type": event.EntityType,
			"entity_id":   event.EntityID,
			"action":      event.Action,
		})
		return
	}
	metrics.IncAuditEvents()
}

// List returns events newest first, filtered by entity type and id.
func (s *Recorder) List(ctx context.Context, filter Filter) ([]Event, error) {
	return s.repo.List(ctx, filter)
}
