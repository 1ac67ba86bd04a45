package assessments

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"governance-backend/internal/assessments/risk"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, record Record) error {
	const query = `
INSERT INTO assessments (
	id, project_id, overall_risk_score, risk_level, dimensions, compliance_requirements,
	assessed_by, assessment_date, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	dimensions, err := json.Marshal(record.RiskDimensions)
	if err != nil {
		return err
	}
	requirements, err := json.Marshal(record.ComplianceRequirements)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		record.ID,
		record.ProjectID,
		record.OverallRiskScore,
		string(record.RiskLevel),
		dimensions,
		requirements,
		record.AssessedBy,
		record.AssessmentDate,
		record.CreatedAt,
	)
	return err
}

func (r *PGRepo) LatestForProject(ctx context.Context, projectID string) (Record, error) {
	const query = selectColumns + `
WHERE project_id = $1
ORDER BY created_at DESC
LIMIT 1`

	record, err := scanRecord(r.DB.QueryRowContext(ctx, query, projectID))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return record, err
}

func (r *PGRepo) ListForProject(ctx context.Context, projectID string, limit int) ([]Record, error) {
	const query = selectColumns + `
WHERE project_id = $1
ORDER BY created_at DESC
LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, projectID, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

const selectColumns = `
SELECT id, project_id, overall_risk_score, risk_level, dimensions, compliance_requirements,
       assessed_by, assessment_date, created_at
FROM assessments`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var record Record
	var level string
	var dimensions, requirements []byte
	if err := row.Scan(
		&record.ID,
		&record.ProjectID,
		&record.OverallRiskScore,
		&level,
		&dimensions,
		&requirements,
		&record.AssessedBy,
		&record.AssessmentDate,
		&record.CreatedAt,
	); err != nil {
		return Record{}, err
	}
	record.RiskLevel = risk.Severity(level)
	if len(dimensions) > 0 {
		if err := json.Unmarshal(dimensions, &record.RiskDimensions); err != nil {
			return Record{}, err
		}
	}
	if len(requirements) > 0 {
		if err := json.Unmarshal(requirements, &record.ComplianceRequirements); err != nil {
			return Record{}, err
		}
	}
	return record, nil
}

var _ Repo = (*PGRepo)(nil)
