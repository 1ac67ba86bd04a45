package audit

import (
	"context"
	"testing"
	"time"
)

func TestRecorderFillsDefaults(t *testing.T) {
	repo := NewMemoryRepo()
	rec := NewRecorder(repo)

	rec.Record(context.Background(), Event{
		EntityType: EntityProject,
		EntityID:   "proj-1",
		Action:     ActionCreate,
	})

	events, err := rec.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	got := events[0]
	if got.ID == "" {
		t.Fatalf("expected generated id")
	}
	if got.Actor != "System" {
		t.Fatalf("expected default actor System, got %q", got.Actor)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("expected timestamp to be stamped")
	}
}

func TestMemoryRepoListNewestFirstWithFilters(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seed := []Event{
		{ID: "evt-1", EntityType: EntityProject, EntityID: "proj-1", Action: ActionCreate, Actor: "System", CreatedAt: base},
		{ID: "evt-2", EntityType: EntityAssessment, EntityID: "proj-1", Action: ActionReassess, Actor: "System", CreatedAt: base.Add(time.Minute)},
		{ID: "evt-3", EntityType: EntityProject, EntityID: "proj-2", Action: ActionDelete, Actor: "alice@example.com", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, event := range seed {
		if err := repo.Append(context.Background(), event); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	all, err := repo.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].ID != "evt-3" || all[2].ID != "evt-1" {
		t.Fatalf("expected newest-first ordering, got %+v", all)
	}

	projects, err := repo.List(context.Background(), Filter{EntityType: EntityProject})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 project events, got %d", len(projects))
	}

	byEntity, err := repo.List(context.Background(), Filter{EntityID: "proj-1"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(byEntity) != 2 {
		t.Fatalf("expected 2 events for proj-1, got %d", len(byEntity))
	}

	paged, err := repo.List(context.Background(), Filter{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paged) != 1 || paged[0].ID != "evt-2" {
		t.Fatalf("expected second-newest event, got %+v", paged)
	}
}
