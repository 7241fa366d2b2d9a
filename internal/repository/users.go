package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"orchestra-platform/internal/models"
)

type Users struct {
	ext sqlx.ExtContext
}

var userColumns = []string{"id", "username", "email", "password", "role", "image", "created_at"}

func (r *Users) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := qSelect(ctx, r.ext, &out, psql.Select(userColumns...).From("users").OrderBy("id"))
	return out, err
}

func (r *Users) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.getBy(ctx, sq.Eq{"id": id})
}

func (r *Users) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getBy(ctx, sq.Eq{"username": username})
}

func (r *Users) getBy(ctx context.Context, where sq.Eq) (*models.User, error) {
	var u models.User
	if err := qGet(ctx, r.ext, &u, psql.Select(userColumns...).From("users").Where(where)); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Users) Create(ctx context.Context, u models.User) (int, error) {
	return qInsert(ctx, r.ext, psql.Insert("users").
		Columns("username", "email", "password", "role", "image").
		Values(u.Username, u.Email, u.Password, u.Role, u.Image))
}

// Update writes profile fields and the (already hashed) password.
func (r *Users) Update(ctx context.Context, u models.User) (bool, error) {
	return qExec(ctx, r.ext, psql.Update("users").
		Set("username", u.Username).
		Set("email", u.Email).
		Set("password", u.Password).
		Set("role", u.Role).
		Where(sq.Eq{"id": u.ID}))
}

func (r *Users) UpdateImage(ctx context.Context, id int, image string) (bool, error) {
	return qExec(ctx, r.ext, psql.Update("users").Set("image", image).Where(sq.Eq{"id": id}))
}

func (r *Users) Delete(ctx context.Context, id int) (bool, error) {
	return qExec(ctx, r.ext, psql.Delete("users").Where(sq.Eq{"id": id}))
}
