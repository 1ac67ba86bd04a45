package assessments

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"governance-backend/internal/assessments/risk"
)

func TestPGRepoCreateMarshalsJSONColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	record := Record{
		ID:               "assess-1",
		ProjectID:        "proj-1",
		OverallRiskScore: 5.4,
		RiskLevel:        risk.SeverityMedium,
		RiskDimensions: []risk.Dimension{
			{Name: "Data Privacy & Security", Score: 7.0, Severity: risk.SeverityHigh, Explanation: "PII detected", MitigationRecommendations: []string{"Implement data anonymization"}},
		},
		ComplianceRequirements: []string{"AI Ethics Board review", "Security assessment"},
		AssessedBy:             risk.SystemAssessor,
		AssessmentDate:         time.Now().UTC(),
		CreatedAt:              time.Now().UTC(),
	}

	dimensions, _ := json.Marshal(record.RiskDimensions)
	requirements, _ := json.Marshal(record.ComplianceRequirements)

	mock.ExpectExec("INSERT INTO assessments").
		WithArgs(
			record.ID,
			record.ProjectID,
			record.OverallRiskScore,
			string(record.RiskLevel),
			dimensions,
			requirements,
			record.AssessedBy,
			record.AssessmentDate,
			record.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), record); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoLatestForProjectScansJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	dimensions := `[{"name":"Operational Risk","score":4,"severity":"medium","explanation":"Standard operational risks apply","mitigationRecommendations":["Implement monitoring"]}]`
	requirements := `["AI Ethics Board review"]`

	rows := sqlmock.NewRows([]string{
		"id", "project_id", "overall_risk_score", "risk_level", "dimensions",
		"compliance_requirements", "assessed_by", "assessment_date", "created_at",
	}).AddRow("assess-1", "proj-1", 3.8, "low", []byte(dimensions), []byte(requirements), "System", now, now)

	mock.ExpectQuery("SELECT id, project_id, overall_risk_score").
		WithArgs("proj-1").
		WillReturnRows(rows)

	record, err := repo.LatestForProject(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("LatestForProject: %v", err)
	}
	if record.RiskLevel != risk.SeverityLow {
		t.Fatalf("expected low risk level, got %s", record.RiskLevel)
	}
	if len(record.RiskDimensions) != 1 || record.RiskDimensions[0].Name != "Operational Risk" {
		t.Fatalf("unexpected dimensions: %+v", record.RiskDimensions)
	}
	if len(record.ComplianceRequirements) != 1 {
		t.Fatalf("unexpected requirements: %+v", record.ComplianceRequirements)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoLatestForProjectNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT id, project_id, overall_risk_score").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "project_id", "overall_risk_score", "risk_level", "dimensions",
			"compliance_requirements", "assessed_by", "assessment_date", "created_at",
		}))

	if _, err := repo.LatestForProject(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
