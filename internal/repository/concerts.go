package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"orchestra-platform/internal/models"
)

type Concerts struct {
	ext sqlx.ExtContext
}

func concertQuery() sq.SelectBuilder {
	return psql.Select(
		"c.id", "c.name", "c.description", "c.performance_date", "c.image", "c.orchestra_id", "o.name AS orchestra_name",
	).
		From("concerts c").
		LeftJoin("orchestras o ON o.id = c.orchestra_id")
}

func (r *Concerts) List(ctx context.Context) ([]models.Concert, error) {
	var out []models.Concert
	err := qSelect(ctx, r.ext, &out, concertQuery().OrderBy("c.performance_date", "c.id"))
	return out, err
}

func (r *Concerts) ListByOrchestra(ctx context.Context, orchestraID int) ([]models.Concert, error) {
	var out []models.Concert
	err := qSelect(ctx, r.ext, &out, concertQuery().
		Where(sq.Eq{"c.orchestra_id": orchestraID}).
		OrderBy("c.performance_date", "c.id"))
	return out, err
}

func (r *Concerts) GetByID(ctx context.Context, id int) (*models.Concert, error) {
	return r.getBy(ctx, concertQuery().Where(sq.Eq{"c.id": id}))
}

func (r *Concerts) GetByName(ctx context.Context, name string) (*models.Concert, error) {
	return r.getBy(ctx, concertQuery().Where(sq.Eq{"c.name": name}).OrderBy("c.id").Limit(1))
}

// NextForOrchestra returns the orchestra's earliest concert at or after now.
func (r *Concerts) NextForOrchestra(ctx context.Context, orchestraID int, now time.Time) (*models.Concert, error) {
	return r.getBy(ctx, concertQuery().
		Where(sq.Eq{"c.orchestra_id": orchestraID}).
		Where(sq.GtOrEq{"c.performance_date": now}).
		OrderBy("c.performance_date", "c.id").
		Limit(1))
}

func (r *Concerts) getBy(ctx context.Context, q sq.SelectBuilder) (*models.Concert, error) {
	var c models.Concert
	if err := qGet(ctx, r.ext, &c, q); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Concerts) Create(ctx context.Context, c models.Concert) (int, error) {
	return qInsert(ctx, r.ext, psql.Insert("concerts").
		Columns("name", "description", "performance_date", "image", "orchestra_id").
		Values(c.Name, c.Description, c.PerformanceDate, c.Image, c.OrchestraID))
}

func (r *Concerts) Update(ctx context.Context, c models.Concert) (bool, error) {
	return qExec(ctx, r.ext, psql.Update("concerts").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("performance_date", c.PerformanceDate).
		Set("image", c.Image).
		Set("orchestra_id", c.OrchestraID).
		Where(sq.Eq{"id": c.ID}))
}

func (r *Concerts) AttachOrchestra(ctx context.Context, id, orchestraID int) (bool, error) {
	return qExec(ctx, r.ext, psql.Update("concerts").Set("orchestra_id", orchestraID).Where(sq.Eq{"id": id}))
}

func (r *Concerts) Delete(ctx context.Context, id int) (bool, error) {
	return qExec(ctx, r.ext, psql.Delete("concerts").Where(sq.Eq{"id": id}))
}
