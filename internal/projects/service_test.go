package projects

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"governance-backend/internal/assessments"
	"governance-backend/internal/assessments/risk"
	"governance-backend/internal/audit"
	"governance-backend/internal/shared/storage/cache"
)

func newTestService(t *testing.T, metricsCache *cache.Cache) (*Service, *audit.Recorder, *assessments.Service) {
	t.Helper()
	assessSvc := assessments.NewService(risk.NewEngine(), assessments.NewMemoryRepo())
	recorder := audit.NewRecorder(audit.NewMemoryRepo())
	svc := NewService(NewMemoryRepo(), assessSvc, recorder, metricsCache)
	return svc, recorder, assessSvc
}

func TestCreateRunsAssessmentAndCopiesPosture(t *testing.T) {
	svc, recorder, assessSvc := newTestService(t, nil)

	project, err := svc.Create(context.Background(), Input{
		Name:        "Churn Predictor",
		Description: "Stores customer personal data for scoring",
		UseCase:     "retention",
	}, "alice@example.com")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if project.ID == "" {
		t.Fatalf("expected generated id")
	}
	if project.Status != StatusPending {
		t.Fatalf("expected pending status, got %s", project.Status)
	}
	if project.RiskScore != 5.0 {
		t.Fatalf("expected risk score 5.0, got %v", project.RiskScore)
	}
	if project.RiskLevel != risk.SeverityMedium {
		t.Fatalf("expected medium risk, got %s", project.RiskLevel)
	}
	if !project.ApprovalRequired {
		t.Fatalf("expected approval required at score >= 4")
	}

	record, err := assessSvc.LatestForProject(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("LatestForProject: %v", err)
	}
	if record.AssessedBy != "alice@example.com" {
		t.Fatalf("expected assessment attributed to actor, got %s", record.AssessedBy)
	}

	events, err := recorder.List(context.Background(), audit.Filter{EntityID: project.ID})
	if err != nil {
		t.Fatalf("audit List: %v", err)
	}
	if len(events) != 1 || events[0].Action != audit.ActionCreate {
		t.Fatalf("expected one create audit event, got %+v", events)
	}
}

func TestCreateLowRiskNeedsNoApproval(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	project, err := svc.Create(context.Background(), Input{Name: "Internal Tool"}, risk.SystemAssessor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if project.RiskScore != 3.8 {
		t.Fatalf("expected baseline score 3.8, got %v", project.RiskScore)
	}
	if project.RiskLevel != risk.SeverityLow {
		t.Fatalf("expected low risk, got %s", project.RiskLevel)
	}
	if project.ApprovalRequired {
		t.Fatalf("expected no approval at score < 4")
	}
}

func TestUpdateReassessesAndResetsStatus(t *testing.T) {
	svc, recorder, _ := newTestService(t, nil)

	project, err := svc.Create(context.Background(), Input{Name: "Internal Tool"}, risk.SystemAssessor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Approve(context.Background(), project.ID, "alice@example.com"); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	updated, err := svc.Update(context.Background(), project.ID, Input{
		Name:        "Internal Tool",
		Description: "Now reads patient health records",
		UseCase:     "healthcare triage",
	}, "alice@example.com")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != StatusPending {
		t.Fatalf("edits must send the project back to pending, got %s", updated.Status)
	}
	if updated.RiskScore <= project.RiskScore {
		t.Fatalf("expected risk to increase after adding health data, got %v", updated.RiskScore)
	}

	events, err := recorder.List(context.Background(), audit.Filter{EntityID: project.ID})
	if err != nil {
		t.Fatalf("audit List: %v", err)
	}
	actions := map[string]bool{}
	for _, event := range events {
		actions[event.Action] = true
	}
	for _, want := range []string{audit.ActionCreate, audit.ActionApprove, audit.ActionUpdate} {
		if !actions[want] {
			t.Fatalf("missing audit action %s in %+v", want, events)
		}
	}
}

func TestApproveOnlyPending(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	project, err := svc.Create(context.Background(), Input{Name: "Tool"}, risk.SystemAssessor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Approve(context.Background(), project.ID, "alice@example.com"); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if _, err := svc.Approve(context.Background(), project.ID, "alice@example.com"); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending on second approval, got %v", err)
	}
	if _, err := svc.Approve(context.Background(), "missing", "alice@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteHidesProject(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	project, err := svc.Create(context.Background(), Input{Name: "Tool"}, risk.SystemAssessor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(context.Background(), project.ID, risk.SystemAssessor); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), project.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), project.ID, risk.SystemAssessor); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestMetricsCountsAndDistribution(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	low, err := svc.Create(context.Background(), Input{Name: "Low"}, risk.SystemAssessor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), Input{
		Name:        "Medium",
		Description: "customer analytics",
	}, risk.SystemAssessor); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Approve(context.Background(), low.ID, "alice@example.com"); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	m, err := svc.Metrics(context.Background())
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if m.TotalProjects != 2 || m.ActiveProjects != 1 || m.PendingApproval != 1 {
		t.Fatalf("unexpected counts: %+v", m)
	}
	if len(m.RiskDistribution) != 2 {
		t.Fatalf("expected two risk buckets, got %+v", m.RiskDistribution)
	}
}

func TestMetricsServedFromCacheUntilInvalidated(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc, _, _ := newTestService(t, cache.NewWithClient(client))

	if _, err := svc.Create(context.Background(), Input{Name: "One"}, risk.SystemAssessor); err != nil {
		t.Fatalf("Create: %v", err)
	}
	first, err := svc.Metrics(context.Background())
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if first.TotalProjects != 1 {
		t.Fatalf("expected 1 project, got %d", first.TotalProjects)
	}
	if !mr.Exists("projects:metrics") {
		t.Fatalf("expected metrics to be cached")
	}

	// Mutations drop the cached rollup so the next read recomputes.
	if _, err := svc.Create(context.Background(), Input{Name: "Two"}, risk.SystemAssessor); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if mr.Exists("projects:metrics") {
		t.Fatalf("expected cache invalidation on create")
	}

	second, err := svc.Metrics(context.Background())
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if second.TotalProjects != 2 {
		t.Fatalf("expected 2 projects after invalidation, got %d", second.TotalProjects)
	}

	// Stale entries expire on their own.
	mr.FastForward(time.Minute)
	if mr.Exists("projects:metrics") {
		t.Fatalf("expected cache entry to expire")
	}
}
