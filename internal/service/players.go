package service

import (
	"context"
	"errors"

	"orchestra-platform/internal/apperr"
	"orchestra-platform/internal/dto"
	"orchestra-platform/internal/models"
	"orchestra-platform/internal/repository"
)

const playerLabel = "Player"

type Players struct {
	store *repository.Store
}

func (s *Players) List(ctx context.Context) ([]dto.Player, error) {
	rows, err := s.store.Players.List(ctx)
	if err != nil {
		return nil, wrap(playerLabel, "list", err)
	}
	return dto.ToPlayers(rows), nil
}

func (s *Players) Get(ctx context.Context, id int) (*dto.Player, error) {
	if !ValidID(id) {
		return nil, invalidID(playerLabel, id)
	}
	row, err := s.store.Players.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, playerLabel, id)
	}
	return dto.ToPlayer(row), nil
}

func (s *Players) GetByName(ctx context.Context, name string) (*dto.Player, error) {
	row, err := s.store.Players.GetByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, missingName(playerLabel, name)
	}
	if err != nil {
		return nil, wrap(playerLabel, "get", err)
	}
	return dto.ToPlayer(row), nil
}

func (s *Players) GetByUserID(ctx context.Context, userID int) (*dto.Player, error) {
	if !ValidID(userID) {
		return nil, invalidID(userLabel, userID)
	}
	row, err := s.store.Players.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Player for user with id %d does not exist", userID)
	}
	if err != nil {
		return nil, wrap(playerLabel, "get", err)
	}
	return dto.ToPlayer(row), nil
}

// Create registers the player profile of an existing user with the Player role.
func (s *Players) Create(ctx context.Context, in dto.CreatePlayer) (*dto.Player, error) {
	if err := requireRole(ctx, s.store, in.UserID, models.RolePlayer); err != nil {
		return nil, err
	}
	id, err := s.store.Players.Create(ctx, in.Record())
	if err != nil {
		return nil, wrap(playerLabel, "create", err)
	}
	return s.Get(ctx, id)
}

func (s *Players) Update(ctx context.Context, id int, in dto.UpdatePlayer) error {
	if !ValidID(id) {
		return invalidID(playerLabel, id)
	}
	row, err := s.store.Players.GetByID(ctx, id)
	if err != nil {
		return lookupErr(err, playerLabel, id)
	}
	in.Apply(row)
	ok, err := s.store.Players.Update(ctx, *row)
	if err != nil {
		return wrap(playerLabel, "update", err)
	}
	if !ok {
		return missing(playerLabel, id)
	}
	return nil
}

func (s *Players) UpdateScore(ctx context.Context, id, score int) error {
	if !ValidID(id) {
		return invalidID(playerLabel, id)
	}
	if score < 0 {
		return apperr.Invalid("score must not be negative")
	}
	ok, err := s.store.Players.UpdateScore(ctx, id, score)
	if err != nil {
		return wrap(playerLabel, "update", err)
	}
	if !ok {
		return missing(playerLabel, id)
	}
	return nil
}

func (s *Players) Delete(ctx context.Context, id int) error {
	if !ValidID(id) {
		return invalidID(playerLabel, id)
	}
	ok, err := s.store.Players.Delete(ctx, id)
	if err != nil {
		return wrap(playerLabel, "delete", err)
	}
	if !ok {
		return missing(playerLabel, id)
	}
	return nil
}

// Leaderboard ranks the players of a section by score.
func (s *Players) Leaderboard(ctx context.Context, sectionID int) ([]dto.LeaderboardEntry, error) {
	if !ValidID(sectionID) {
		return nil, invalidID(sectionLabel, sectionID)
	}
	if _, err := s.store.Sections.GetByID(ctx, sectionID); err != nil {
		return nil, lookupErr(err, sectionLabel, sectionID)
	}
	rows, err := s.store.Players.ListBySection(ctx, sectionID)
	if err != nil {
		return nil, wrap(playerLabel, "list", err)
	}
	return dto.ToLeaderboard(rows), nil
}

// requireRole checks that userID names an existing user holding role.
func requireRole(ctx context.Context, store *repository.Store, userID, role int) error {
	u, err := store.Users.GetByID(ctx, userID)
	if err != nil {
		return lookupErr(err, userLabel, userID)
	}
	if u.Role != role {
		return apperr.Invalid("User with id %d is not a %s", userID, dto.RoleName(role))
	}
	return nil
}
