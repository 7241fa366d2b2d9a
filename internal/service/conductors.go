package service

import (
	"context"
	"errors"

	"orchestra-platform/internal/apperr"
	"orchestra-platform/internal/dto"
	"orchestra-platform/internal/models"
	"orchestra-platform/internal/repository"
)

const conductorLabel = "Conductor"

type Conductors struct {
	store *repository.Store
}

func (s *Conductors) List(ctx context.Context) ([]dto.Conductor, error) {
	rows, err := s.store.Conductors.List(ctx)
	if err != nil {
		return nil, wrap(conductorLabel, "list", err)
	}
	return dto.ToConductors(rows), nil
}

func (s *Conductors) Get(ctx context.Context, id int) (*dto.Conductor, error) {
	if !ValidID(id) {
		return nil, invalidID(conductorLabel, id)
	}
	row, err := s.store.Conductors.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, conductorLabel, id)
	}
	return dto.ToConductor(row), nil
}

func (s *Conductors) GetByName(ctx context.Context, name string) (*dto.Conductor, error) {
	row, err := s.store.Conductors.GetByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, missingName(conductorLabel, name)
	}
	if err != nil {
		return nil, wrap(conductorLabel, "get", err)
	}
	return dto.ToConductor(row), nil
}

func (s *Conductors) GetByUserID(ctx context.Context, userID int) (*dto.Conductor, error) {
	if !ValidID(userID) {
		return nil, invalidID(userLabel, userID)
	}
	row, err := s.store.Conductors.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Conductor for user with id %d does not exist", userID)
	}
	if err != nil {
		return nil, wrap(conductorLabel, "get", err)
	}
	return dto.ToConductor(row), nil
}

func (s *Conductors) Create(ctx context.Context, in dto.CreateConductor) (*dto.Conductor, error) {
	if err := requireRole(ctx, s.store, in.UserID, models.RoleConductor); err != nil {
		return nil, err
	}
	id, err := s.store.Conductors.Create(ctx, in.Record())
	if err != nil {
		return nil, wrap(conductorLabel, "create", err)
	}
	return s.Get(ctx, id)
}

func (s *Conductors) Update(ctx context.Context, id int, in dto.UpdateConductor) error {
	if !ValidID(id) {
		return invalidID(conductorLabel, id)
	}
	row, err := s.store.Conductors.GetByID(ctx, id)
	if err != nil {
		return lookupErr(err, conductorLabel, id)
	}
	in.Apply(row)
	ok, err := s.store.Conductors.Update(ctx, *row)
	if err != nil {
		return wrap(conductorLabel, "update", err)
	}
	if !ok {
		return missing(conductorLabel, id)
	}
	return nil
}

func (s *Conductors) Delete(ctx context.Context, id int) error {
	if !ValidID(id) {
		return invalidID(conductorLabel, id)
	}
	ok, err := s.store.Conductors.Delete(ctx, id)
	if err != nil {
		return wrap(conductorLabel, "delete", err)
	}
	if !ok {
		return missing(conductorLabel, id)
	}
	return nil
}
