package api

import (
	"context"

	"orchestra-platform/internal/dto"
	"orchestra-platform/internal/service"
)

// Entity is the read/create/update surface every resource shares.
// T is the wire shape, C the create body and U the update body.
type Entity[T, C, U any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int) (*T, error)
	GetByName(ctx context.Context, name string) (*T, error)
	Create(ctx context.Context, in C) (*T, error)
	Update(ctx context.Context, id int, in U) error
}

type UserService interface {
	Entity[dto.User, dto.CreateUser, dto.UpdateUser]
	UpdateImage(ctx context.Context, id int, image string) error
	Delete(ctx context.Context, id int, actor *int) error
	Authenticate(ctx context.Context, username, password string) (*dto.User, error)
	Role(code int) (string, error)
}

type PlayerService interface {
	Entity[dto.Player, dto.CreatePlayer, dto.UpdatePlayer]
	Delete(ctx context.Context, id int) error
	GetByUserID(ctx context.Context, userID int) (*dto.Player, error)
	UpdateScore(ctx context.Context, id, score int) error
	Leaderboard(ctx context.Context, sectionID int) ([]dto.LeaderboardEntry, error)
}

type ConductorService interface {
	Entity[dto.Conductor, dto.CreateConductor, dto.UpdateConductor]
	Delete(ctx context.Context, id int) error
	GetByUserID(ctx context.Context, userID int) (*dto.Conductor, error)
}

type OrchestraService interface {
	Entity[dto.Orchestra, dto.SaveOrchestra, dto.SaveOrchestra]
	Delete(ctx context.Context, id int) error
	Enrollees(ctx context.Context, id int) ([]dto.Enrollment, error)
	Members(ctx context.Context, id int) ([]dto.Player, error)
	Concerts(ctx context.Context, id int) ([]dto.Concert, error)
}

type ConcertService interface {
	Entity[dto.Concert, dto.SaveConcert, dto.SaveConcert]
	Delete(ctx context.Context, id int) error
	AttachOrchestra(ctx context.Context, id, orchestraID int) error
}

type LookupService interface {
	Entity[dto.Lookup, dto.SaveLookup, dto.SaveLookup]
	Delete(ctx context.Context, id int) error
}

type EnrollmentService interface {
	Enroll(ctx context.Context, actorUserID int, t service.EnrollTarget) (*dto.Enrollment, error)
	Accept(ctx context.Context, actorUserID, playerID, orchestraID int) (*dto.Enrollment, error)
	Reject(ctx context.Context, actorUserID, playerID, orchestraID int) (*dto.Enrollment, error)
	ListByPlayer(ctx context.Context, playerID int) ([]dto.Enrollment, error)
}

type ActivityService interface {
	List(ctx context.Context) ([]dto.Activity, error)
}

// Pinger reports database liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps is everything the router serves from.
type Deps struct {
	Users       UserService
	Players     PlayerService
	Conductors  ConductorService
	Orchestras  OrchestraService
	Concerts    ConcertService
	Sections    LookupService
	Instruments LookupService
	Enrollments EnrollmentService
	Activity    ActivityService
	Tokens      *service.Tokens
	DB          Pinger
}
