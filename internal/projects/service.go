package projects

import (
	"context"
	"time"

	"github.com/google/uuid"

	"governance-backend/internal/assessments"
	"governance-backend/internal/audit"
	"governance-backend/internal/shared/metrics"
	"governance-backend/internal/shared/storage/cache"
	"governance-backend/internal/shared/telemetry"
)

var ErrNotPending = errNotPending{}

type errNotPending struct{}

func (errNotPending) Error() string { return "project is not pending approval" }

const (
	metricsCacheKey = "projects:metrics"
	metricsCacheTTL = 30 * time.Second
)

// Service owns the project lifecycle. Every registration and edit runs the
// risk engine and copies the derived posture onto the project before it is
// stored, so a project is never visible without a risk score.
type Service struct {
	repo        Repo
	assessments *assessments.Service
	audit       *audit.Recorder
	cache       *cache.Cache
	now         func() time.Time
}

func NewService(repo Repo, assessSvc *assessments.Service, recorder *audit.Recorder, metricsCache *cache.Cache) *Service {
	return &Service{
		repo:        repo,
		assessments: assessSvc,
		audit:       recorder,
		cache:       metricsCache,
		now:         time.Now,
	}
}

// Input carries the caller-editable project fields.
type Input struct {
	Name         string
	Description  string
	UseCase      string
	DataSources  []string
	Stakeholders []string
}

// Create registers a project, assesses it, and stores both records. The
// assessment save is best-effort: the risk posture is already copied onto
// the project, so a failed history write only loses the audit copy.
func (s *Service) Create(ctx context.Context, input Input, actor string) (Project, error) {
	now := s.now().UTC()
	project := Project{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Description:  input.Description,
		UseCase:      input.UseCase,
		DataSources:  input.DataSources,
		Stakeholders: input.Stakeholders,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	project = s.applyAssessment(ctx, project, actor)

	if err := s.repo.Create(ctx, project); err != nil {
		return Project{}, err
	}
	metrics.IncProjectsCreated()
	s.audit.Record(ctx, audit.Event{
		EntityType: audit.EntityProject,
		EntityID:   project.ID,
		Action:     audit.ActionCreate,
		Detail:     project.Name,
		Actor:      actor,
	})
	s.invalidateMetrics(ctx)
	return project, nil
}

// Get returns one project by id.
func (s *Service) Get(ctx context.Context, id string) (Project, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns projects newest first, honoring status/risk filters.
func (s *Service) List(ctx context.Context, filter Filter) ([]Project, error) {
	return s.repo.List(ctx, filter)
}

// Update replaces the editable fields, re-assesses, and sends the project
// back to pending since its risk posture may have changed.
func (s *Service) Update(ctx context.Context, id string, input Input, actor string) (Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Project{}, err
	}

	project.Name = input.Name
	project.Description = input.Description
	project.UseCase = input.UseCase
	project.DataSources = input.DataSources
	project.Stakeholders = input.Stakeholders
	project.Status = StatusPending
	project.UpdatedAt = s.now().UTC()
	project = s.applyAssessment(ctx, project, actor)

	if err := s.repo.Update(ctx, project); err != nil {
		return Project{}, err
	}
	s.audit.Record(ctx, audit.Event{
		EntityType: audit.EntityProject,
		EntityID:   project.ID,
		Action:     audit.ActionUpdate,
		Detail:     project.Name,
		Actor:      actor,
	})
	s.invalidateMetrics(ctx)
	return project, nil
}

// Delete soft-deletes the project.
func (s *Service) Delete(ctx context.Context, id string, actor string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Event{
		EntityType: audit.EntityProject,
		EntityID:   id,
		Action:     audit.ActionDelete,
		Actor:      actor,
	})
	s.invalidateMetrics(ctx)
	return nil
}

// Approve flips a pending project to approved.
func (s *Service) Approve(ctx context.Context, id string, actor string) (Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Project{}, err
	}
	if project.Status != StatusPending {
		return Project{}, ErrNotPending
	}

	project.Status = StatusApproved
	project.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, project); err != nil {
		return Project{}, err
	}
	s.audit.Record(ctx, audit.Event{
		EntityType: audit.EntityProject,
		EntityID:   project.ID,
		Action:     audit.ActionApprove,
		Detail:     project.Name,
		Actor:      actor,
	})
	s.invalidateMetrics(ctx)
	return project, nil
}

// Reassess re-runs the engine over the stored project fields and refreshes
// its risk posture without touching the editable fields or status.
func (s *Service) Reassess(ctx context.Context, id string, actor string) (Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Project{}, err
	}

	project.UpdatedAt = s.now().UTC()
	project = s.applyAssessment(ctx, project, actor)
	if err := s.repo.Update(ctx, project); err != nil {
		return Project{}, err
	}
	s.audit.Record(ctx, audit.Event{
		EntityType: audit.EntityAssessment,
		EntityID:   project.ID,
		Action:     audit.ActionReassess,
		Detail:     project.Name,
		Actor:      actor,
	})
	s.invalidateMetrics(ctx)
	return project, nil
}

// Metrics returns the dashboard rollup, served from cache when fresh.
func (s *Service) Metrics(ctx context.Context) (Metrics, error) {
	var cached Metrics
	hit, err := s.cache.GetJSON(ctx, metricsCacheKey, &cached)
	if err != nil {
		telemetry.Warn("projects.metrics.cache_read_failed", map[string]any{"error": err.Error()})
	} else if hit {
		return cached, nil
	}

	m, err := s.repo.Metrics(ctx)
	if err != nil {
		return Metrics{}, err
	}
	if err := s.cache.SetJSON(ctx, metricsCacheKey, m, metricsCacheTTL); err != nil {
		telemetry.Warn("projects.metrics.cache_write_failed", map[string]any{"error": err.Error()})
	}
	return m, nil
}

func (s *Service) applyAssessment(ctx context.Context, project Project, actor string) Project {
	assessment := s.assessments.Evaluate(project.ID, project.RiskProfile(), actor)
	project.RiskScore = assessment.OverallRiskScore
	project.RiskLevel = assessment.RiskLevel
	project.ApprovalRequired = assessment.ApprovalRequired()

	if _, err := s.assessments.Record(ctx, assessment); err != nil {
		telemetry.Warn("projects.assessment_save_failed", map[string]any{
			"project_id": project.ID,
			"error":      err.Error(),
		})
	}
	return project
}

func (s *Service) invalidateMetrics(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, metricsCacheKey); err != nil {
		telemetry.Warn("projects.metrics.cache_invalidate_failed", map[string]any{"error": err.Error()})
	}
}
