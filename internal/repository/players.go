package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"orchestra-platform/internal/models"
)

type Players struct {
	ext sqlx.ExtContext
}

// playerRow is one row of the player join: a player repeated once per approved orchestra.
type playerRow struct {
	models.Player
	OrchestraName *string `db:"orchestra_name"`
}

func playerQuery() sq.SelectBuilder {
	return psql.Select(
		"p.id", "p.user_id", "p.name", "p.section_id", "p.instrument_id", "p.concert_id", "p.score",
		"s.name AS section_name", "i.name AS instrument_name", "c.name AS concert_name", "o.name AS orchestra_name",
	).
		From("players p").
		LeftJoin("sections s ON s.id = p.section_id").
		LeftJoin("instruments i ON i.id = p.instrument_id").
		LeftJoin("concerts c ON c.id = p.concert_id").
		LeftJoin("enrollments e ON e.player_id = p.id AND e.status = 'approved'").
		LeftJoin("orchestras o ON o.id = e.orchestra_id")
}

// collectPlayers folds joined rows into one Player per id, keeping first-seen order.
func collectPlayers(rows []playerRow) []models.Player {
	byID := map[int]int{}
	var out []models.Player
	for _, row := range rows {
		idx, ok := byID[row.ID]
		if !ok {
			idx = len(out)
			byID[row.ID] = idx
			p := row.Player
			p.Orchestras = []string{}
			out = append(out, p)
		}
		if row.OrchestraName != nil {
			out[idx].Orchestras = append(out[idx].Orchestras, *row.OrchestraName)
		}
	}
	return out
}

func (r *Players) selectPlayers(ctx context.Context, q sq.SelectBuilder) ([]models.Player, error) {
	var rows []playerRow
	if err := qSelect(ctx, r.ext, &rows, q); err != nil {
		return nil, err
	}
	return collectPlayers(rows), nil
}

func (r *Players) getOne(ctx context.Context, where sq.Sqlizer) (*models.Player, error) {
	players, err := r.selectPlayers(ctx, playerQuery().Where(where).OrderBy("o.name"))
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, ErrNotFound
	}
	return &players[0], nil
}

func (r *Players) List(ctx context.Context) ([]models.Player, error) {
	return r.selectPlayers(ctx, playerQuery().OrderBy("p.id", "o.name"))
}

func (r *Players) GetByID(ctx context.Context, id int) (*models.Player, error) {
	return r.getOne(ctx, sq.Eq{"p.id": id})
}

func (r *Players) GetByName(ctx context.Context, name string) (*models.Player, error) {
	return r.getOne(ctx, sq.Eq{"p.name": name})
}

func (r *Players) GetByUserID(ctx context.Context, userID int) (*models.Player, error) {
	return r.getOne(ctx, sq.Eq{"p.user_id": userID})
}

// ListBySection is the section leaderboard: highest score first, ties by id.
func (r *Players) ListBySection(ctx context.Context, sectionID int) ([]models.Player, error) {
	return r.selectPlayers(ctx, playerQuery().
		Where(sq.Eq{"p.section_id": sectionID}).
		OrderBy("p.score DESC", "p.id ASC", "o.name"))
}

// ListByOrchestra returns the players approved into the orchestra. Membership is
// filtered by subquery so each player still carries every orchestra they play in.
func (r *Players) ListByOrchestra(ctx context.Context, orchestraID int) ([]models.Player, error) {
	return r.selectPlayers(ctx, playerQuery().
		Where(sq.Expr("p.id IN (SELECT player_id FROM enrollments WHERE orchestra_id = ? AND status = 'approved')", orchestraID)).
		OrderBy("p.name", "p.id", "o.name"))
}

func (r *Players) Create(ctx context.Context, p models.Player) (int, error) {
	return qInsert(ctx, r.ext, psql.Insert("players").
		Columns("user_id", "name").
		Values(p.UserID, p.Name))
}

func (r *Players) Update(ctx context.Context, p models.Player) (bool, error) {
	return qExec(ctx, r.ext, psql.Update("players").Set("name", p.Name).Where(sq.Eq{"id": p.ID}))
}

func (r *Players) UpdateScore(ctx context.Context, id, score int) (bool, error) {
	return qExec(ctx, r.ext, psql.Update("players").Set("score", score).Where(sq.Eq{"id": id}))
}

// AssignFromEnrollment sets the section, instrument and (optional) concert a player
// was accepted with.
func (r *Players) AssignFromEnrollment(ctx context.Context, id, sectionID, instrumentID int, concertID *int) (bool, error) {
	return qExec(ctx, r.ext, psql.Update("players").
		Set("section_id", sectionID).
		Set("instrument_id", instrumentID).
		Set("concert_id", concertID).
		Where(sq.Eq{"id": id}))
}

func (r *Players) Delete(ctx context.Context, id int) (bool, error) {
	return qExec(ctx, r.ext, psql.Delete("players").Where(sq.Eq{"id": id}))
}
