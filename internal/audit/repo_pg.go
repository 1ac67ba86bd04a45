package audit

import (
	"context"
	"database/sql"
	"strconv"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Append(ctx context.Context, event Event) error {
	const query = `
INSERT INTO audit_events (id, entity_type, entity_id, action, detail, actor, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		event.ID, event.EntityType, event.EntityID, event.Action, event.Detail, event.Actor, event.CreatedAt)
	return err
}

func (r *PGRepo) List(ctx context.Context, filter Filter) ([]Event, error) {
	limit, offset := normalizeWindow(filter.Limit, filter.Offset)

	query := `
SELECT id, entity_type, entity_id, action, detail, actor, created_at
FROM audit_events`
	args := make([]any, 0, 4)
	where := ""
	if filter.EntityType != "" {
		args = append(args, filter.EntityType)
		where = appendCondition(where, "entity_type = $", len(args))
	}
	if filter.EntityID != "" {
		args = append(args, filter.EntityID)
		where = appendCondition(where, "entity_id = $", len(args))
	}
	query += where
	args = append(args, limit)
	query += "\nORDER BY created_at DESC\nLIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var event Event
		if err := rows.Scan(&event.ID, &event.EntityType, &event.EntityID, &event.Action, &event.Detail, &event.Actor, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func appendCondition(where, column string, n int) string {
	if where == "" {
		return "\nWHERE " + column + strconv.Itoa(n)
	}
	return where + " AND " + column + strconv.Itoa(n)
}

var _ Repo = (*PGRepo)(nil)
