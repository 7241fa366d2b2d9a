package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orchestra-platform/internal/apperr"
	"orchestra-platform/internal/dto"
	"orchestra-platform/internal/models"
	"orchestra-platform/internal/repository"
)

const enrollmentLabel = "Enrollment"

// EnrollTarget names the orchestra seat a player applies for.
type EnrollTarget struct {
	PlayerID     int
	OrchestraID  int
	SectionID    int
	InstrumentID int
	Experience   int
}

// Enrollments runs the request/decision workflow between players and conductors.
type Enrollments struct {
	store    *repository.Store
	activity *Activity
	now      func() time.Time
}

// Enroll files a request on behalf of the player owned by actorUserID. Player,
// orchestra, section and instrument are checked in that order and nothing is
// written unless all four exist.
func (s *Enrollments) Enroll(ctx context.Context, actorUserID int, t EnrollTarget) (*dto.Enrollment, error) {
	for _, c := range []struct {
		label string
		id    int
	}{
		{playerLabel, t.PlayerID},
		{orchestraLabel, t.OrchestraID},
		{sectionLabel, t.SectionID},
		{instrumentLabel, t.InstrumentID},
	} {
		if !ValidID(c.id) {
			return nil, invalidID(c.label, c.id)
		}
	}
	if t.Experience < 0 {
		return nil, apperr.Invalid("experience must not be negative")
	}

	player, err := s.store.Players.GetByID(ctx, t.PlayerID)
	if err != nil {
		return nil, lookupErr(err, playerLabel, t.PlayerID)
	}
	if _, err := s.store.Orchestras.GetByID(ctx, t.OrchestraID); err != nil {
		return nil, lookupErr(err, orchestraLabel, t.OrchestraID)
	}
	if _, err := s.store.Sections.GetByID(ctx, t.SectionID); err != nil {
		return nil, lookupErr(err, sectionLabel, t.SectionID)
	}
	if _, err := s.store.Instruments.GetByID(ctx, t.InstrumentID); err != nil {
		return nil, lookupErr(err, instrumentLabel, t.InstrumentID)
	}
	if player.UserID != actorUserID {
		return nil, apperr.Forbidden("players may only enroll themselves")
	}

	err = s.store.Enrollments.Create(ctx, models.Enrollment{
		PlayerID:     t.PlayerID,
		OrchestraID:  t.OrchestraID,
		SectionID:    t.SectionID,
		InstrumentID: t.InstrumentID,
		Experience:   t.Experience,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperr.Conflict("Player with id %d already applied to Orchestra with id %d", t.PlayerID, t.OrchestraID)
	}
	if err != nil {
		return nil, wrap(enrollmentLabel, "create", err)
	}
	s.activity.Record(ctx, &actorUserID, "enroll",
		fmt.Sprintf("player %d applied to orchestra %d", t.PlayerID, t.OrchestraID))

	return s.get(ctx, t.PlayerID, t.OrchestraID)
}

// Accept approves a pending request and seats the player: section, instrument
// and the orchestra's next upcoming concert, if it has one.
func (s *Enrollments) Accept(ctx context.Context, actorUserID, playerID, orchestraID int) (*dto.Enrollment, error) {
	e, err := s.decide(ctx, actorUserID, playerID, orchestraID, models.EnrollmentApproved)
	if err != nil {
		return nil, err
	}

	err = s.store.WithTx(ctx, func(tx *repository.Store) error {
		ok, err := tx.Enrollments.SetStatus(ctx, playerID, orchestraID, models.EnrollmentRequested, models.EnrollmentApproved)
		if err != nil {
			return wrap(enrollmentLabel, "update", err)
		}
		if !ok {
			return apperr.Conflict("enrollment of Player with id %d is no longer pending", playerID)
		}

		var concertID *int
		next, err := tx.Concerts.NextForOrchestra(ctx, orchestraID, s.now())
		switch {
		case err == nil:
			concertID = &next.ID
		case !errors.Is(err, repository.ErrNotFound):
			return wrap(concertLabel, "get", err)
		}

		if _, err := tx.Players.AssignFromEnrollment(ctx, playerID, e.SectionID, e.InstrumentID, concertID); err != nil {
			return wrap(playerLabel, "update", err)
		}
		return nil
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindUnexpected {
			return nil, apperr.Unexpected("accept enrollment", err)
		}
		return nil, err
	}
	s.activity.Record(ctx, &actorUserID, "accept",
		fmt.Sprintf("player %d accepted into orchestra %d", playerID, orchestraID))

	return s.get(ctx, playerID, orchestraID)
}

// Reject closes a pending request without seating the player.
func (s *Enrollments) Reject(ctx context.Context, actorUserID, playerID, orchestraID int) (*dto.Enrollment, error) {
	if _, err := s.decide(ctx, actorUserID, playerID, orchestraID, models.EnrollmentRejected); err != nil {
		return nil, err
	}
	ok, err := s.store.Enrollments.SetStatus(ctx, playerID, orchestraID, models.EnrollmentRequested, models.EnrollmentRejected)
	if err != nil {
		return nil, wrap(enrollmentLabel, "update", err)
	}
	if !ok {
		return nil, apperr.Conflict("enrollment of Player with id %d is no longer pending", playerID)
	}
	s.activity.Record(ctx, &actorUserID, "reject",
		fmt.Sprintf("player %d rejected by orchestra %d", playerID, orchestraID))

	return s.get(ctx, playerID, orchestraID)
}

func (s *Enrollments) ListByPlayer(ctx context.Context, playerID int) ([]dto.Enrollment, error) {
	if !ValidID(playerID) {
		return nil, invalidID(playerLabel, playerID)
	}
	if _, err := s.store.Players.GetByID(ctx, playerID); err != nil {
		return nil, lookupErr(err, playerLabel, playerID)
	}
	rows, err := s.store.Enrollments.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, wrap(enrollmentLabel, "list", err)
	}
	return dto.ToEnrollments(rows), nil
}

// decide runs the checks shared by accept and reject: player and orchestra
// exist, the actor conducts that orchestra and the request may move to next.
func (s *Enrollments) decide(ctx context.Context, actorUserID, playerID, orchestraID int, next models.EnrollmentStatus) (*models.Enrollment, error) {
	if !ValidID(playerID) {
		return nil, invalidID(playerLabel, playerID)
	}
	if !ValidID(orchestraID) {
		return nil, invalidID(orchestraLabel, orchestraID)
	}
	if _, err := s.store.Players.GetByID(ctx, playerID); err != nil {
		return nil, lookupErr(err, playerLabel, playerID)
	}
	orchestra, err := s.store.Orchestras.GetByID(ctx, orchestraID)
	if err != nil {
		return nil, lookupErr(err, orchestraLabel, orchestraID)
	}

	conductor, err := s.store.Conductors.GetByUserID(ctx, actorUserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, wrap(conductorLabel, "get", err)
	}
	if conductor == nil || conductor.ID != orchestra.ConductorID {
		return nil, apperr.Forbidden("only the conductor of Orchestra with id %d may decide its enrollments", orchestraID)
	}

	e, err := s.store.Enrollments.Get(ctx, playerID, orchestraID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Player with id %d has not applied to Orchestra with id %d", playerID, orchestraID)
	}
	if err != nil {
		return nil, wrap(enrollmentLabel, "get", err)
	}
	if !e.Status.CanBecome(next) {
		return nil, apperr.Conflict("enrollment is already %s", e.Status)
	}
	return e, nil
}

func (s *Enrollments) get(ctx context.Context, playerID, orchestraID int) (*dto.Enrollment, error) {
	e, err := s.store.Enrollments.Get(ctx, playerID, orchestraID)
	if err != nil {
		return nil, wrap(enrollmentLabel, "get", err)
	}
	return dto.ToEnrollment(e), nil
}
