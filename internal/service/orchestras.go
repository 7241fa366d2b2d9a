package service

import (
	"context"
	"errors"

	"orchestra-platform/internal/apperr"
	"orchestra-platform/internal/dto"
	"orchestra-platform/internal/repository"
)

const orchestraLabel = "Orchestra"

type Orchestras struct {
	store *repository.Store
}

func (s *Orchestras) List(ctx context.Context) ([]dto.Orchestra, error) {
	rows, err := s.store.Orchestras.List(ctx)
	if err != nil {
		return nil, wrap(orchestraLabel, "list", err)
	}
	return dto.ToOrchestras(rows), nil
}

func (s *Orchestras) Get(ctx context.Context, id int) (*dto.Orchestra, error) {
	if !ValidID(id) {
		return nil, invalidID(orchestraLabel, id)
	}
	row, err := s.store.Orchestras.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, orchestraLabel, id)
	}
	return dto.ToOrchestra(row), nil
}

func (s *Orchestras) GetByName(ctx context.Context, name string) (*dto.Orchestra, error) {
	row, err := s.store.Orchestras.GetByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, missingName(orchestraLabel, name)
	}
	if err != nil {
		return nil, wrap(orchestraLabel, "get", err)
	}
	return dto.ToOrchestra(row), nil
}

func (s *Orchestras) Create(ctx context.Context, in dto.SaveOrchestra) (*dto.Orchestra, error) {
	if err := s.conductorExists(ctx, in.ConductorID); err != nil {
		return nil, err
	}
	id, err := s.store.Orchestras.Create(ctx, in.Record())
	if err != nil {
		return nil, saveErr("create", in.ConductorID, err)
	}
	return s.Get(ctx, id)
}

func (s *Orchestras) Update(ctx context.Context, id int, in dto.SaveOrchestra) error {
	if !ValidID(id) {
		return invalidID(orchestraLabel, id)
	}
	row, err := s.store.Orchestras.GetByID(ctx, id)
	if err != nil {
		return lookupErr(err, orchestraLabel, id)
	}
	if err := s.conductorExists(ctx, in.ConductorID); err != nil {
		return err
	}
	in.Apply(row)
	ok, err := s.store.Orchestras.Update(ctx, *row)
	if err != nil {
		return saveErr("update", in.ConductorID, err)
	}
	if !ok {
		return missing(orchestraLabel, id)
	}
	return nil
}

func (s *Orchestras) Delete(ctx context.Context, id int) error {
	if !ValidID(id) {
		return invalidID(orchestraLabel, id)
	}
	ok, err := s.store.Orchestras.Delete(ctx, id)
	if err != nil {
		return wrap(orchestraLabel, "delete", err)
	}
	if !ok {
		return missing(orchestraLabel, id)
	}
	return nil
}

// Enrollees lists every enrollment request made to the orchestra, whatever its status.
func (s *Orchestras) Enrollees(ctx context.Context, id int) ([]dto.Enrollment, error) {
	if err := s.exists(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.store.Enrollments.ListByOrchestra(ctx, id)
	if err != nil {
		return nil, wrap(enrollmentLabel, "list", err)
	}
	return dto.ToEnrollments(rows), nil
}

// Members lists the players approved into the orchestra.
func (s *Orchestras) Members(ctx context.Context, id int) ([]dto.Player, error) {
	if err := s.exists(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.store.Players.ListByOrchestra(ctx, id)
	if err != nil {
		return nil, wrap(playerLabel, "list", err)
	}
	return dto.ToPlayers(rows), nil
}

func (s *Orchestras) Concerts(ctx context.Context, id int) ([]dto.Concert, error) {
	if err := s.exists(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.store.Concerts.ListByOrchestra(ctx, id)
	if err != nil {
		return nil, wrap(concertLabel, "list", err)
	}
	return dto.ToConcerts(rows), nil
}

func (s *Orchestras) exists(ctx context.Context, id int) error {
	if !ValidID(id) {
		return invalidID(orchestraLabel, id)
	}
	if _, err := s.store.Orchestras.GetByID(ctx, id); err != nil {
		return lookupErr(err, orchestraLabel, id)
	}
	return nil
}

func (s *Orchestras) conductorExists(ctx context.Context, id int) error {
	if !ValidID(id) {
		return invalidID(conductorLabel, id)
	}
	if _, err := s.store.Conductors.GetByID(ctx, id); err != nil {
		return lookupErr(err, conductorLabel, id)
	}
	return nil
}

func saveErr(op string, conductorID int, err error) error {
	if repository.Violates(err, repository.OrchestraConductorKey) {
		return apperr.Conflict("Conductor with id %d already leads an orchestra", conductorID)
	}
	return wrap(orchestraLabel, op, err)
}
