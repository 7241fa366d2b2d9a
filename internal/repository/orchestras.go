package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"orchestra-platform/internal/models"
)

type Orchestras struct {
	ext sqlx.ExtContext
}

func orchestraQuery() sq.SelectBuilder {
	return psql.Select(
		"o.id", "o.name", "o.image", "o.description", "o.date", "o.conductor_id", "c.name AS conductor_name",
	).
		From("orchestras o").
		Join("conductors c ON c.id = o.conductor_id")
}

func (r *Orchestras) List(ctx context.Context) ([]models.Orchestra, error) {
	var out []models.Orchestra
	err := qSelect(ctx, r.ext, &out, orchestraQuery().OrderBy("o.id"))
	return out, err
}

func (r *Orchestras) GetByID(ctx context.Context, id int) (*models.Orchestra, error) {
	return r.getBy(ctx, sq.Eq{"o.id": id})
}

func (r *Orchestras) GetByName(ctx context.Context, name string) (*models.Orchestra, error) {
	return r.getBy(ctx, sq.Eq{"o.name": name})
}

func (r *Orchestras) GetByConductorID(ctx context.Context, conductorID int) (*models.Orchestra, error) {
	return r.getBy(ctx, sq.Eq{"o.conductor_id": conductorID})
}

func (r *Orchestras) getBy(ctx context.Context, where sq.Eq) (*models.Orchestra, error) {
	var o models.Orchestra
	if err := qGet(ctx, r.ext, &o, orchestraQuery().Where(where)); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Orchestras) Create(ctx context.Context, o models.Orchestra) (int, error) {
	return qInsert(ctx, r.ext, psql.Insert("orchestras").
		Columns("name", "image", "description", "date", "conductor_id").
		Values(o.Name, o.Image, o.Description, o.Date, o.ConductorID))
}

func (r *Orchestras) Update(ctx context.Context, o models.Orchestra) (bool, error) {
	return qExec(ctx, r.ext, psql.Update("orchestras").
		Set("name", o.Name).
		Set("image", o.Image).
		Set("description", o.Description).
		Set("date", o.Date).
		Set("conductor_id", o.ConductorID).
		Where(sq.Eq{"id": o.ID}))
}

func (r *Orchestras) Delete(ctx context.Context, id int) (bool, error) {
	return qExec(ctx, r.ext, psql.Delete("orchestras").Where(sq.Eq{"id": id}))
}
