package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"orchestra-platform/internal/models"
)

type Conductors struct {
	ext sqlx.ExtContext
}

func conductorQuery() sq.SelectBuilder {
	return psql.Select("c.id", "c.user_id", "c.name", "o.id AS orchestra_id", "o.name AS orchestra_name").
		From("conductors c").
		LeftJoin("orchestras o ON o.conductor_id = c.id")
}

func (r *Conductors) List(ctx context.Context) ([]models.Conductor, error) {
	var out []models.Conductor
	err := qSelect(ctx, r.ext, &out, conductorQuery().OrderBy("c.id"))
	return out, err
}

func (r *Conductors) GetByID(ctx context.Context, id int) (*models.Conductor, error) {
	return r.getBy(ctx, sq.Eq{"c.id": id})
}

func (r *Conductors) GetByName(ctx context.Context, name string) (*models.Conductor, error) {
	return r.getBy(ctx, sq.Eq{"c.name": name})
}

func (r *Conductors) GetByUserID(ctx context.Context, userID int) (*models.Conductor, error) {
	return r.getBy(ctx, sq.Eq{"c.user_id": userID})
}

func (r *Conductors) getBy(ctx context.Context, where sq.Eq) (*models.Conductor, error) {
	var c models.Conductor
	if err := qGet(ctx, r.ext, &c, conductorQuery().Where(where).Limit(1)); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Conductors) Create(ctx context.Context, c models.Conductor) (int, error) {
	return qInsert(ctx, r.ext, psql.Insert("conductors").Columns("user_id", "name").Values(c.UserID, c.Name))
}

func (r *Conductors) Update(ctx context.Context, c models.Conductor) (bool, error) {
	return qExec(ctx, r.ext, psql.Update("conductors").Set("name", c.Name).Where(sq.Eq{"id": c.ID}))
}

func (r *Conductors) Delete(ctx context.Context, id int) (bool, error) {
	return qExec(ctx, r.ext, psql.Delete("conductors").Where(sq.Eq{"id": id}))
}
