package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"orchestra-platform/internal/models"
)

// Activity is the audit trail of state-changing actions.
type Activity struct {
	ext sqlx.ExtContext
}

func (r *Activity) Record(ctx context.Context, actorID *int, action, details string) error {
	_, err := qExec(ctx, r.ext, psql.Insert("activity_log").
		Columns("actor_id", "action", "details").
		Values(actorID, action, details))
	return err
}

func (r *Activity) List(ctx context.Context, limit uint64) ([]models.Activity, error) {
	var out []models.Activity
	err := qSelect(ctx, r.ext, &out, psql.Select(
		"l.id", "l.actor_id", "COALESCE(u.username, '(deleted)') AS actor", "l.action", "l.details", "l.created_at",
	).
		From("activity_log l").
		LeftJoin("users u ON u.id = l.actor_id").
		OrderBy("l.id DESC").
		Limit(limit))
	return out, err
}
