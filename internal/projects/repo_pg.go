package projects

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"

	"governance-backend/internal/assessments/risk"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, project Project) error {
	const query = `
INSERT INTO projects (
	id, name, description, use_case, data_sources, stakeholders, status,
	risk_score, risk_level, approval_required, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	dataSources, err := marshalStringList(project.DataSources)
	if err != nil {
		return err
	}
	stakeholders, err := marshalStringList(project.Stakeholders)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		project.UseCase,
		dataSources,
		stakeholders,
		project.Status,
		project.RiskScore,
		string(project.RiskLevel),
		project.ApprovalRequired,
		project.CreatedAt,
		project.UpdatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Project, error) {
	const query = selectColumns + `
WHERE id = $1 AND deleted_at IS NULL`

	project, err := scanProject(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	return project, err
}

func (r *PGRepo) List(ctx context.Context, filter Filter) ([]Project, error) {
	limit, offset := normalizeWindow(filter.Limit, filter.Offset)

	query := selectColumns + `
WHERE deleted_at IS NULL`
	args := make([]any, 0, 4)
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += " AND status = $" + strconv.Itoa(len(args))
	}
	if filter.RiskLevel != "" {
		args = append(args, filter.RiskLevel)
		query += " AND risk_level = $" + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += "\nORDER BY created_at DESC\nLIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, project)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, project Project) error {
	const query = `
UPDATE projects
SET name = $1, description = $2, use_case = $3, data_sources = $4, stakeholders = $5,
    status = $6, risk_score = $7, risk_level = $8, approval_required = $9, updated_at = $10
WHERE id = $11 AND deleted_at IS NULL`

	dataSources, err := marshalStringList(project.DataSources)
	if err != nil {
		return err
	}
	stakeholders, err := marshalStringList(project.Stakeholders)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		project.Name,
		project.Description,
		project.UseCase,
		dataSources,
		stakeholders,
		project.Status,
		project.RiskScore,
		string(project.RiskLevel),
		project.ApprovalRequired,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	const query = `
UPDATE projects
SET deleted_at = NOW(), updated_at = NOW()
WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Metrics(ctx context.Context) (Metrics, error) {
	const totalsQuery = `
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE status = 'approved'),
       COUNT(*) FILTER (WHERE status = 'pending')
FROM projects
WHERE deleted_at IS NULL`

	var m Metrics
	if err := r.DB.QueryRowContext(ctx, totalsQuery).Scan(&m.TotalProjects, &m.ActiveProjects, &m.PendingApproval); err != nil {
		return Metrics{}, err
	}

	const distributionQuery = `
SELECT risk_level, COUNT(*)
FROM projects
WHERE deleted_at IS NULL
GROUP BY risk_level
ORDER BY CASE risk_level WHEN 'low' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END`

	rows, err := r.DB.QueryContext(ctx, distributionQuery)
	if err != nil {
		return Metrics{}, err
	}
	defer rows.Close()

	m.RiskDistribution = []RiskBucket{}
	for rows.Next() {
		var bucket RiskBucket
		if err := rows.Scan(&bucket.RiskLevel, &bucket.Count); err != nil {
			return Metrics{}, err
		}
		m.RiskDistribution = append(m.RiskDistribution, bucket)
	}
	return m, rows.Err()
}

const selectColumns = `
SELECT id, name, description, use_case, data_sources, stakeholders, status,
       risk_score, risk_level, approval_required, created_at, updated_at
FROM projects`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (Project, error) {
	var project Project
	var level string
	var dataSources, stakeholders []byte
	if err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.UseCase,
		&dataSources,
		&stakeholders,
		&project.Status,
		&project.RiskScore,
		&level,
		&project.ApprovalRequired,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return Project{}, err
	}
	project.RiskLevel = risk.Severity(level)
	if len(dataSources) > 0 {
		if err := json.Unmarshal(dataSources, &project.DataSources); err != nil {
			return Project{}, err
		}
	}
	if len(stakeholders) > 0 {
		if err := json.Unmarshal(stakeholders, &project.Stakeholders); err != nil {
			return Project{}, err
		}
	}
	return project, nil
}

func marshalStringList(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

var _ Repo = (*PGRepo)(nil)
