package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"orchestra-platform/internal/models"
)

// Lookups serves a two-column reference table (sections, instruments).
type Lookups struct {
	ext   sqlx.ExtContext
	table string
}

func (r *Lookups) List(ctx context.Context) ([]models.Lookup, error) {
	var out []models.Lookup
	err := qSelect(ctx, r.ext, &out, psql.Select("id", "name").From(r.table).OrderBy("id"))
	return out, err
}

func (r *Lookups) GetByID(ctx context.Context, id int) (*models.Lookup, error) {
	var l models.Lookup
	if err := qGet(ctx, r.ext, &l, psql.Select("id", "name").From(r.table).Where(sq.Eq{"id": id})); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Lookups) GetByName(ctx context.Context, name string) (*models.Lookup, error) {
	var l models.Lookup
	if err := qGet(ctx, r.ext, &l, psql.Select("id", "name").From(r.table).Where(sq.Eq{"name": name})); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Lookups) Create(ctx context.Context, name string) (int, error) {
	return qInsert(ctx, r.ext, psql.Insert(r.table).Columns("name").Values(name))
}

func (r *Lookups) Update(ctx context.Context, l models.Lookup) (bool, error) {
	return qExec(ctx, r.ext, psql.Update(r.table).Set("name", l.Name).Where(sq.Eq{"id": l.ID}))
}

func (r *Lookups) Delete(ctx context.Context, id int) (bool, error) {
	return qExec(ctx, r.ext, psql.Delete(r.table).Where(sq.Eq{"id": id}))
}
