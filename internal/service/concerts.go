package service

import (
	"context"
	"errors"

	"orchestra-platform/internal/dto"
	"orchestra-platform/internal/repository"
)

const concertLabel = "Concert"

type Concerts struct {
	store *repository.Store
}

func (s *Concerts) List(ctx context.Context) ([]dto.Concert, error) {
	rows, err := s.store.Concerts.List(ctx)
	if err != nil {
		return nil, wrap(concertLabel, "list", err)
	}
	return dto.ToConcerts(rows), nil
}

func (s *Concerts) Get(ctx context.Context, id int) (*dto.Concert, error) {
	if !ValidID(id) {
		return nil, invalidID(concertLabel, id)
	}
	row, err := s.store.Concerts.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, concertLabel, id)
	}
	return dto.ToConcert(row), nil
}

func (s *Concerts) GetByName(ctx context.Context, name string) (*dto.Concert, error) {
	row, err := s.store.Concerts.GetByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, missingName(concertLabel, name)
	}
	if err != nil {
		return nil, wrap(concertLabel, "get", err)
	}
	return dto.ToConcert(row), nil
}

func (s *Concerts) Create(ctx context.Context, in dto.SaveConcert) (*dto.Concert, error) {
	if err := s.orchestraExists(ctx, in.OrchestraID); err != nil {
		return nil, err
	}
	id, err := s.store.Concerts.Create(ctx, in.Record())
	if err != nil {
		return nil, wrap(concertLabel, "create", err)
	}
	return s.Get(ctx, id)
}

func (s *Concerts) Update(ctx context.Context, id int, in dto.SaveConcert) error {
	if !ValidID(id) {
		return invalidID(concertLabel, id)
	}
	row, err := s.store.Concerts.GetByID(ctx, id)
	if err != nil {
		return lookupErr(err, concertLabel, id)
	}
	if err := s.orchestraExists(ctx, in.OrchestraID); err != nil {
		return err
	}
	in.Apply(row)
	ok, err := s.store.Concerts.Update(ctx, *row)
	if err != nil {
		return wrap(concertLabel, "update", err)
	}
	if !ok {
		return missing(concertLabel, id)
	}
	return nil
}

// AttachOrchestra assigns the concert to an orchestra; both must exist.
func (s *Concerts) AttachOrchestra(ctx context.Context, id, orchestraID int) error {
	if !ValidID(id) {
		return invalidID(concertLabel, id)
	}
	if !ValidID(orchestraID) {
		return invalidID(orchestraLabel, orchestraID)
	}
	if _, err := s.store.Concerts.GetByID(ctx, id); err != nil {
		return lookupErr(err, concertLabel, id)
	}
	if err := s.orchestraExists(ctx, &orchestraID); err != nil {
		return err
	}
	ok, err := s.store.Concerts.AttachOrchestra(ctx, id, orchestraID)
	if err != nil {
		return wrap(concertLabel, "update", err)
	}
	if !ok {
		return missing(concertLabel, id)
	}
	return nil
}

func (s *Concerts) Delete(ctx context.Context, id int) error {
	if !ValidID(id) {
		return invalidID(concertLabel, id)
	}
	ok, err := s.store.Concerts.Delete(ctx, id)
	if err != nil {
		return wrap(concertLabel, "delete", err)
	}
	if !ok {
		return missing(concertLabel, id)
	}
	return nil
}

// orchestraExists accepts a nil id; a concert may exist without an orchestra.
func (s *Concerts) orchestraExists(ctx context.Context, id *int) error {
	if id == nil {
		return nil
	}
	if _, err := s.store.Orchestras.GetByID(ctx, *id); err != nil {
		return lookupErr(err, orchestraLabel, *id)
	}
	return nil
}
