package service

import (
	"context"
	"errors"

	"orchestra-platform/internal/dto"
	"orchestra-platform/internal/models"
	"orchestra-platform/internal/repository"
)

const (
	sectionLabel    = "Section"
	instrumentLabel = "Instrument"
)

// Lookups manages one reference table; label names it in messages ("Section", "Instrument").
type Lookups struct {
	repo  *repository.Lookups
	label string
}

func (s *Lookups) List(ctx context.Context) ([]dto.Lookup, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, wrap(s.label, "list", err)
	}
	return dto.ToLookups(rows), nil
}

func (s *Lookups) Get(ctx context.Context, id int) (*dto.Lookup, error) {
	if !ValidID(id) {
		return nil, invalidID(s.label, id)
	}
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, s.label, id)
	}
	return dto.ToLookup(row), nil
}

func (s *Lookups) GetByName(ctx context.Context, name string) (*dto.Lookup, error) {
	row, err := s.repo.GetByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, missingName(s.label, name)
	}
	if err != nil {
		return nil, wrap(s.label, "get", err)
	}
	return dto.ToLookup(row), nil
}

func (s *Lookups) Create(ctx context.Context, in dto.SaveLookup) (*dto.Lookup, error) {
	id, err := s.repo.Create(ctx, in.Name)
	if err != nil {
		return nil, wrap(s.label, "create", err)
	}
	return &dto.Lookup{ID: id, Name: in.Name}, nil
}

func (s *Lookups) Update(ctx context.Context, id int, in dto.SaveLookup) error {
	if !ValidID(id) {
		return invalidID(s.label, id)
	}
	ok, err := s.repo.Update(ctx, models.Lookup{ID: id, Name: in.Name})
	if err != nil {
		return wrap(s.label, "update", err)
	}
	if !ok {
		return missing(s.label, id)
	}
	return nil
}

func (s *Lookups) Delete(ctx context.Context, id int) error {
	if !ValidID(id) {
		return invalidID(s.label, id)
	}
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return wrap(s.label, "delete", err)
	}
	if !ok {
		return missing(s.label, id)
	}
	return nil
}
