package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"orchestra-platform/internal/models"
)

type Enrollments struct {
	ext sqlx.ExtContext
}

func enrollmentQuery() sq.SelectBuilder {
	return psql.Select(
		"e.player_id", "e.orchestra_id", "e.section_id", "e.instrument_id", "e.experience", "e.status", "e.created_at",
		"p.name AS player_name", "o.name AS orchestra_name", "s.name AS section_name", "i.name AS instrument_name",
	).
		From("enrollments e").
		Join("players p ON p.id = e.player_id").
		Join("orchestras o ON o.id = e.orchestra_id").
		Join("sections s ON s.id = e.section_id").
		Join("instruments i ON i.id = e.instrument_id")
}

func (r *Enrollments) Get(ctx context.Context, playerID, orchestraID int) (*models.Enrollment, error) {
	var e models.Enrollment
	err := qGet(ctx, r.ext, &e, enrollmentQuery().
		Where(sq.Eq{"e.player_id": playerID, "e.orchestra_id": orchestraID}))
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByOrchestra returns every enrollment for the orchestra, oldest request first.
func (r *Enrollments) ListByOrchestra(ctx context.Context, orchestraID int) ([]models.Enrollment, error) {
	var out []models.Enrollment
	err := qSelect(ctx, r.ext, &out, enrollmentQuery().
		Where(sq.Eq{"e.orchestra_id": orchestraID}).
		OrderBy("e.created_at", "e.player_id"))
	return out, err
}

func (r *Enrollments) ListByPlayer(ctx context.Context, playerID int) ([]models.Enrollment, error) {
	var out []models.Enrollment
	err := qSelect(ctx, r.ext, &out, enrollmentQuery().
		Where(sq.Eq{"e.player_id": playerID}).
		OrderBy("e.created_at", "e.orchestra_id"))
	return out, err
}

// Create stores a new request. A second request for the same player and orchestra is ErrDuplicate.
func (r *Enrollments) Create(ctx context.Context, e models.Enrollment) error {
	_, err := qExec(ctx, r.ext, psql.Insert("enrollments").
		Columns("player_id", "orchestra_id", "section_id", "instrument_id", "experience", "status").
		Values(e.PlayerID, e.OrchestraID, e.SectionID, e.InstrumentID, e.Experience, models.EnrollmentRequested))
	return err
}

// SetStatus moves an enrollment from one status to another. It reports false when the
// enrollment does not exist or is no longer in the from status.
func (r *Enrollments) SetStatus(ctx context.Context, playerID, orchestraID int, from, to models.EnrollmentStatus) (bool, error) {
	return qExec(ctx, r.ext, psql.Update("enrollments").
		Set("status", to).
		Where(sq.Eq{"player_id": playerID, "orchestra_id": orchestraID, "status": from}))
}
