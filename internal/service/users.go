package service

import (
	"context"
	"errors"
	"fmt"

	"orchestra-platform/internal/apperr"
	"orchestra-platform/internal/dto"
	"orchestra-platform/internal/repository"
)

const userLabel = "User"

type Users struct {
	store    *repository.Store
	hasher   Hasher
	activity *Activity
}

func (s *Users) List(ctx context.Context) ([]dto.User, error) {
	rows, err := s.store.Users.List(ctx)
	if err != nil {
		return nil, wrap(userLabel, "list", err)
	}
	return dto.ToUsers(rows), nil
}

func (s *Users) Get(ctx context.Context, id int) (*dto.User, error) {
	if !ValidID(id) {
		return nil, invalidID(userLabel, id)
	}
	row, err := s.store.Users.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, userLabel, id)
	}
	return dto.ToUser(row), nil
}

func (s *Users) GetByName(ctx context.Context, username string) (*dto.User, error) {
	row, err := s.store.Users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, missingName(userLabel, username)
	}
	if err != nil {
		return nil, wrap(userLabel, "get", err)
	}
	return dto.ToUser(row), nil
}

func (s *Users) Create(ctx context.Context, in dto.CreateUser) (*dto.User, error) {
	row := in.Record()
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Unexpected("hash password", err)
	}
	row.Password = hash

	id, err := s.store.Users.Create(ctx, row)
	if err != nil {
		return nil, wrap(userLabel, "create", err)
	}
	s.activity.Record(ctx, &id, "signup", fmt.Sprintf("user %s registered as %s", row.Username, dto.RoleName(row.Role)))

	created, err := s.store.Users.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, userLabel, id)
	}
	return dto.ToUser(created), nil
}

// Update rewrites the profile. An empty password keeps the stored hash.
func (s *Users) Update(ctx context.Context, id int, in dto.UpdateUser) error {
	if !ValidID(id) {
		return invalidID(userLabel, id)
	}
	row, err := s.store.Users.GetByID(ctx, id)
	if err != nil {
		return lookupErr(err, userLabel, id)
	}
	in.Apply(row)
	if in.Password != "" {
		if row.Password, err = s.hasher.Hash(in.Password); err != nil {
			return apperr.Unexpected("hash password", err)
		}
	}

	ok, err := s.store.Users.Update(ctx, *row)
	if err != nil {
		return wrap(userLabel, "update", err)
	}
	if !ok {
		return missing(userLabel, id)
	}
	return nil
}

func (s *Users) UpdateImage(ctx context.Context, id int, image string) error {
	if !ValidID(id) {
		return invalidID(userLabel, id)
	}
	ok, err := s.store.Users.UpdateImage(ctx, id, image)
	if err != nil {
		return wrap(userLabel, "update", err)
	}
	if !ok {
		return missing(userLabel, id)
	}
	return nil
}

func (s *Users) Delete(ctx context.Context, id int, actor *int) error {
	if !ValidID(id) {
		return invalidID(userLabel, id)
	}
	ok, err := s.store.Users.Delete(ctx, id)
	if err != nil {
		return wrap(userLabel, "delete", err)
	}
	if !ok {
		return missing(userLabel, id)
	}
	s.activity.Record(ctx, actor, "delete_user", fmt.Sprintf("user %d deleted", id))
	return nil
}

// Authenticate returns the user whose stored hash verifies against password.
// An unknown username and a wrong password give the same NotFound error.
func (s *Users) Authenticate(ctx context.Context, username, password string) (*dto.User, error) {
	row, err := s.store.Users.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, wrap(userLabel, "get", err)
	}
	if row == nil || !s.hasher.Verify(row.Password, password) {
		return nil, apperr.NotFound("no user matches that username and password")
	}
	return dto.ToUser(row), nil
}

func (s *Users) Role(code int) (string, error) {
	if !dto.ValidRole(code) {
		return "", apperr.NotFound("Role with id %d does not exist", code)
	}
	return dto.RoleName(code), nil
}
