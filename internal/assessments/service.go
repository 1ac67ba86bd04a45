package assessments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"governance-backend/internal/assessments/risk"
	"governance-backend/internal/shared/metrics"
	"governance-backend/internal/shared/telemetry"
)

// Service runs the risk engine and persists its results.
type Service struct {
	engine *risk.Engine
	repo   Repo
}

func NewService(engine *risk.Engine, repo Repo) *Service {
	return &Service{engine: engine, repo: repo}
}

// Evaluate runs the engine against the given project snapshot. It never
// touches storage, so callers can preview a risk profile without recording it.
func (s *Service) Evaluate(projectID string, project risk.Project, assessedBy string) risk.Assessment {
	start := time.Now()
	assessment := s.engine.Assess(projectID, project, assessedBy)
	metrics.ObserveAssessmentDuration(time.Since(start).Seconds())
	return assessment
}

// Record persists an engine result as a new assessment record. The
// returned record carries the generated id even when the save fails, so
// callers can report what was computed.
func (s *Service) Record(ctx context.Context, assessment risk.Assessment) (Record, error) {
	record := FromAssessment(assessment)
	record.ID = uuid.NewString()
	record.CreatedAt = time.Now().UTC()

	if err := s.repo.Create(ctx, record); err != nil {
		return record, fmt.Errorf("assessment computed but not saved: %w", err)
	}
	metrics.IncAssessmentsRun(string(record.RiskLevel))
	telemetry.Info("assessment.recorded", map[string]any{
		"assessment_id": record.ID,
		"project_id":    record.ProjectID,
		"risk_score":    record.OverallRiskScore,
		"risk_level":    string(record.RiskLevel),
		"assessed_by":   record.AssessedBy,
	})
	return record, nil
}

// LatestForProject returns the newest assessment for the given project.
func (s *Service) LatestForProject(ctx context.Context, projectID string) (Record, error) {
	return s.repo.LatestForProject(ctx, projectID)
}

// ListForProject returns assessment history for the given project, newest
// first.
func (s *Service) ListForProject(ctx context.Context, projectID string, limit int) ([]Record, error) {
	return s.repo.ListForProject(ctx, projectID, limit)
}
