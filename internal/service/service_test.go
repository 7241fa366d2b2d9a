package service

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"orchestra-platform/internal/apperr"
	"orchestra-platform/internal/dto"
	"orchestra-platform/internal/models"
	"orchestra-platform/internal/repository"
)

var (
	userCols       = []string{"id", "username", "email", "password", "role", "image", "created_at"}
	playerCols     = []string{"id", "user_id", "name", "section_id", "instrument_id", "concert_id", "score", "section_name", "instrument_name", "concert_name", "orchestra_name"}
	orchestraCols  = []string{"id", "name", "image", "description", "date", "conductor_id", "conductor_name"}
	conductorCols  = []string{"id", "user_id", "name", "orchestra_id", "orchestra_name"}
	concertCols    = []string{"id", "name", "description", "performance_date", "image", "orchestra_id", "orchestra_name"}
	lookupCols     = []string{"id", "name"}
	enrollmentCols = []string{"player_id", "orchestra_id", "section_id", "instrument_id", "experience", "status", "created_at", "player_name", "orchestra_name", "section_name", "instrument_name"}
)

const (
	selectPlayer     = `FROM players p .* WHERE p.id = \$1`
	selectOrchestra  = `FROM orchestras o JOIN conductors c ON c.id = o.conductor_id WHERE o.id = \$1`
	selectSection    = `SELECT id, name FROM sections WHERE id = \$1`
	selectInstrument = `SELECT id, name FROM instruments WHERE id = \$1`
	selectEnrollment = `FROM enrollments e .* WHERE \(?e.orchestra_id = \$1 AND e.player_id = \$2\)?`
	insertActivity   = `INSERT INTO activity_log`
)

type fixture struct {
	svc  *Services
	mock sqlmock.Sqlmock
	logs *test.Hook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	log, hook := test.NewNullLogger()
	store := repository.New(sqlx.NewDb(db, "sqlmock"))
	svc := New(store, NewHasher(bcrypt.MinCost), NewTokens("secret", time.Hour), log)
	return &fixture{svc: svc, mock: mock, logs: hook}
}

func (f *fixture) player(id, userID int) {
	f.mock.ExpectQuery(selectPlayer).WithArgs(id).
		WillReturnRows(sqlmock.NewRows(playerCols).AddRow(id, userID, "Clara", nil, nil, nil, 0, nil, nil, nil, nil))
}

func (f *fixture) orchestra(id, conductorID int) {
	f.mock.ExpectQuery(selectOrchestra).WithArgs(id).
		WillReturnRows(sqlmock.NewRows(orchestraCols).AddRow(id, "Berlin Phil", "", "", time.Now(), conductorID, "Karajan"))
}

func (f *fixture) enrollment(playerID, orchestraID int, status models.EnrollmentStatus) {
	f.mock.ExpectQuery(selectEnrollment).WithArgs(orchestraID, playerID).
		WillReturnRows(sqlmock.NewRows(enrollmentCols).
			AddRow(playerID, orchestraID, 3, 4, 5, string(status), time.Now(), "Clara", "Berlin Phil", "Strings", "Viola"))
}

func none(cols []string) *sqlmock.Rows { return sqlmock.NewRows(cols) }

// bcryptOf matches a hash that verifies against plain.
type bcryptOf string

func (p bcryptOf) Match(v driver.Value) bool {
	hash, ok := v.(string)
	return ok && bcrypt.CompareHashAndPassword([]byte(hash), []byte(p)) == nil
}

func hashOf(t *testing.T, plain string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID(1))
	assert.False(t, ValidID(0))
	assert.False(t, ValidID(-3))
}

func TestGetRejectsBadIDBeforeQuerying(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Instruments.Get(ctx, 0)
	assert.True(t, apperr.Is(err, apperr.KindInvalid))
	_, err = f.svc.Players.Get(ctx, -1)
	assert.True(t, apperr.Is(err, apperr.KindInvalid))
	assert.True(t, apperr.Is(f.svc.Users.Delete(ctx, 0, nil), apperr.KindInvalid))
}

func TestGetMissingNamesTheID(t *testing.T) {
	f := newFixture(t)
	f.mock.ExpectQuery(selectInstrument).WithArgs(77).WillReturnRows(none(lookupCols))

	_, err := f.svc.Instruments.Get(context.Background(), 77)
	require.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "Instrument with id 77 does not exist", apperr.Message(err))
}

func TestEnrollStopsAtFirstMissingEntity(t *testing.T) {
	target := EnrollTarget{PlayerID: 1, OrchestraID: 2, SectionID: 3, InstrumentID: 4, Experience: 5}

	cases := []struct {
		name   string
		expect func(f *fixture)
		msg    string
	}{
		{
			name: "player",
			expect: func(f *fixture) {
				f.mock.ExpectQuery(selectPlayer).WithArgs(1).WillReturnRows(none(playerCols))
			},
			msg: "Player with id 1 does not exist",
		},
		{
			name: "orchestra",
			expect: func(f *fixture) {
				f.player(1, 10)
				f.mock.ExpectQuery(selectOrchestra).WithArgs(2).WillReturnRows(none(orchestraCols))
			},
			msg: "Orchestra with id 2 does not exist",
		},
		{
			name: "section",
			expect: func(f *fixture) {
				f.player(1, 10)
				f.orchestra(2, 6)
				f.mock.ExpectQuery(selectSection).WithArgs(3).WillReturnRows(none(lookupCols))
			},
			msg: "Section with id 3 does not exist",
		},
		{
			name: "instrument",
			expect: func(f *fixture) {
				f.player(1, 10)
				f.orchestra(2, 6)
				f.mock.ExpectQuery(selectSection).WithArgs(3).WillReturnRows(sqlmock.NewRows(lookupCols).AddRow(3, "Strings"))
				f.mock.ExpectQuery(selectInstrument).WithArgs(4).WillReturnRows(none(lookupCols))
			},
			msg: "Instrument with id 4 does not exist",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			tc.expect(f)

			got, err := f.svc.Enrollments.Enroll(context.Background(), 10, target)
			assert.Nil(t, got)
			require.True(t, apperr.Is(err, apperr.KindNotFound))
			assert.Equal(t, tc.msg, apperr.Message(err))
		})
	}
}

func expectEnrollChecks(f *fixture, playerUserID int) {
	f.player(1, playerUserID)
	f.orchestra(2, 6)
	f.mock.ExpectQuery(selectSection).WithArgs(3).WillReturnRows(sqlmock.NewRows(lookupCols).AddRow(3, "Strings"))
	f.mock.ExpectQuery(selectInstrument).WithArgs(4).WillReturnRows(sqlmock.NewRows(lookupCols).AddRow(4, "Viola"))
}

func TestEnrollWritesRequest(t *testing.T) {
	f := newFixture(t)
	expectEnrollChecks(f, 10)
	f.mock.ExpectExec(`INSERT INTO enrollments`).
		WithArgs(1, 2, 3, 4, 5, "requested").
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectExec(insertActivity).WithArgs(10, "enroll", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
	f.enrollment(1, 2, models.EnrollmentRequested)

	got, err := f.svc.Enrollments.Enroll(context.Background(), 10, EnrollTarget{PlayerID: 1, OrchestraID: 2, SectionID: 3, InstrumentID: 4, Experience: 5})
	require.NoError(t, err)
	assert.Equal(t, "requested", got.Status)
	assert.False(t, got.IsApproved)
	assert.Equal(t, "Viola", got.InstrumentName)
}

func TestEnrollForOtherPlayerIsForbidden(t *testing.T) {
	f := newFixture(t)
	expectEnrollChecks(f, 99)

	_, err := f.svc.Enrollments.Enroll(context.Background(), 10, EnrollTarget{PlayerID: 1, OrchestraID: 2, SectionID: 3, InstrumentID: 4})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestEnrollTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	expectEnrollChecks(f, 10)
	f.mock.ExpectExec(`INSERT INTO enrollments`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "enrollments_pkey"})

	_, err := f.svc.Enrollments.Enroll(context.Background(), 10, EnrollTarget{PlayerID: 1, OrchestraID: 2, SectionID: 3, InstrumentID: 4})
	require.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Contains(t, apperr.Message(err), "already applied")
}

func expectDecision(f *fixture, status models.EnrollmentStatus) {
	f.player(1, 10)
	f.orchestra(2, 6)
	f.mock.ExpectQuery(`FROM conductors c .* WHERE c.user_id = \$1`).WithArgs(20).
		WillReturnRows(sqlmock.NewRows(conductorCols).AddRow(6, 20, "Karajan", 2, "Berlin Phil"))
	f.enrollment(1, 2, status)
}

func TestAcceptSeatsPlayerInOneTransaction(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	f.svc.Enrollments.now = func() time.Time { return now }

	expectDecision(f, models.EnrollmentRequested)
	f.mock.ExpectBegin()
	f.mock.ExpectExec(`UPDATE enrollments SET status = \$1`).
		WithArgs("approved", 2, 1, "requested").
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectQuery(`FROM concerts c .* c.performance_date >= \$2`).WithArgs(2, now).
		WillReturnRows(sqlmock.NewRows(concertCols).AddRow(11, "Spring Gala", "", now.Add(48*time.Hour), "", 2, "Berlin Phil"))
	f.mock.ExpectExec(`UPDATE players SET section_id = \$1, instrument_id = \$2, concert_id = \$3 WHERE id = \$4`).
		WithArgs(3, 4, 11, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()
	f.mock.ExpectExec(insertActivity).WithArgs(20, "accept", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
	f.enrollment(1, 2, models.EnrollmentApproved)

	got, err := f.svc.Enrollments.Accept(context.Background(), 20, 1, 2)
	require.NoError(t, err)
	assert.True(t, got.IsApproved)
}

func TestAcceptWithoutUpcomingConcert(t *testing.T) {
	f := newFixture(t)

	expectDecision(f, models.EnrollmentRequested)
	f.mock.ExpectBegin()
	f.mock.ExpectExec(`UPDATE enrollments SET status = \$1`).WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectQuery(`FROM concerts c`).WillReturnRows(none(concertCols))
	f.mock.ExpectExec(`UPDATE players SET`).WithArgs(3, 4, nil, 1).WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()
	f.mock.ExpectExec(insertActivity).WillReturnResult(sqlmock.NewResult(1, 1))
	f.enrollment(1, 2, models.EnrollmentApproved)

	_, err := f.svc.Enrollments.Accept(context.Background(), 20, 1, 2)
	require.NoError(t, err)
}

func TestAcceptRollsBackOnFailedAssignment(t *testing.T) {
	f := newFixture(t)

	expectDecision(f, models.EnrollmentRequested)
	f.mock.ExpectBegin()
	f.mock.ExpectExec(`UPDATE enrollments SET status = \$1`).WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectQuery(`FROM concerts c`).WillReturnRows(none(concertCols))
	f.mock.ExpectExec(`UPDATE players SET`).WillReturnError(assert.AnError)
	f.mock.ExpectRollback()

	_, err := f.svc.Enrollments.Accept(context.Background(), 20, 1, 2)
	assert.True(t, apperr.Is(err, apperr.KindUnexpected))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestDecidingTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	expectDecision(f, models.EnrollmentApproved)

	_, err := f.svc.Enrollments.Reject(context.Background(), 20, 1, 2)
	require.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, "enrollment is already approved", apperr.Message(err))
}

func TestOnlyTheOrchestrasConductorDecides(t *testing.T) {
	f := newFixture(t)
	f.player(1, 10)
	f.orchestra(2, 6)
	f.mock.ExpectQuery(`FROM conductors c`).WithArgs(21).
		WillReturnRows(sqlmock.NewRows(conductorCols).AddRow(7, 21, "Abbado", nil, nil))

	_, err := f.svc.Enrollments.Accept(context.Background(), 21, 1, 2)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestRejectLeavesPlayerUnseated(t *testing.T) {
	f := newFixture(t)
	expectDecision(f, models.EnrollmentRequested)
	f.mock.ExpectExec(`UPDATE enrollments SET status = \$1`).
		WithArgs("rejected", 2, 1, "requested").
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectExec(insertActivity).WillReturnError(assert.AnError)
	f.enrollment(1, 2, models.EnrollmentRejected)

	got, err := f.svc.Enrollments.Reject(context.Background(), 20, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "rejected", got.Status)

	entry := f.logs.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "reject", entry.Data["action"])
}

func TestCreateUserStoresHash(t *testing.T) {
	f := newFixture(t)
	created := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	f.mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Tester", "t@example.com", bcryptOf("admin"), models.RolePlayer, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	f.mock.ExpectExec(insertActivity).WithArgs(1, "signup", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
	f.mock.ExpectQuery(`FROM users WHERE id = \$1`).WithArgs(1).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "Tester", "t@example.com", "x", models.RolePlayer, nil, created))

	got, err := f.svc.Users.Create(context.Background(), dto.CreateUser{Username: "Tester", Email: "t@example.com", Password: "admin", Role: models.RolePlayer})
	require.NoError(t, err)
	assert.Equal(t, 1, got.ID)
	assert.Equal(t, "Player", got.Role)
}

func TestCreateUserDuplicateConflicts(t *testing.T) {
	f := newFixture(t)
	f.mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := f.svc.Users.Create(context.Background(), dto.CreateUser{Username: "Tester", Email: "t@example.com", Password: "admin", Role: models.RolePlayer})
	require.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, "User already exists", apperr.Message(err))
}

func TestUpdateUserKeepsHashWhenPasswordEmpty(t *testing.T) {
	f := newFixture(t)
	stored := hashOf(t, "admin")

	f.mock.ExpectQuery(`FROM users WHERE id = \$1`).WithArgs(1).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "Tester", "t@example.com", stored, models.RolePlayer, nil, time.Now()))
	f.mock.ExpectExec(`UPDATE users SET username = \$1, email = \$2, password = \$3, role = \$4 WHERE id = \$5`).
		WithArgs("Renamed", "t@example.com", stored, models.RolePlayer, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := f.svc.Users.Update(context.Background(), 1, dto.UpdateUser{Username: "Renamed", Email: "t@example.com", Role: models.RolePlayer})
	assert.NoError(t, err)
}

func TestUpdateUserRehashesNewPassword(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectQuery(`FROM users WHERE id = \$1`).WithArgs(1).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "Tester", "t@example.com", hashOf(t, "admin"), models.RolePlayer, nil, time.Now()))
	f.mock.ExpectExec(`UPDATE users SET`).
		WithArgs("Tester", "t@example.com", bcryptOf("s3cret!"), models.RolePlayer, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := f.svc.Users.Update(context.Background(), 1, dto.UpdateUser{Username: "Tester", Email: "t@example.com", Password: "s3cret!", Role: models.RolePlayer})
	assert.NoError(t, err)
}

func TestAuthenticate(t *testing.T) {
	stored := hashOf(t, "admin")
	userRow := func() *sqlmock.Rows {
		return sqlmock.NewRows(userCols).AddRow(1, "Tester", "t@example.com", stored, models.RoleConductor, nil, time.Now())
	}

	t.Run("match", func(t *testing.T) {
		f := newFixture(t)
		f.mock.ExpectQuery(`FROM users WHERE username = \$1`).WithArgs("Tester").WillReturnRows(userRow())

		u, err := f.svc.Users.Authenticate(context.Background(), "Tester", "admin")
		require.NoError(t, err)
		assert.Equal(t, "Conductor", u.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newFixture(t)
		f.mock.ExpectQuery(`FROM users WHERE username = \$1`).WithArgs("Tester").WillReturnRows(userRow())

		_, err := f.svc.Users.Authenticate(context.Background(), "Tester", "nope")
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)
		f.mock.ExpectQuery(`FROM users WHERE username = \$1`).WithArgs("Ghost").WillReturnRows(none(userCols))

		_, err := f.svc.Users.Authenticate(context.Background(), "Ghost", "admin")
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})
}

func TestRoleLookup(t *testing.T) {
	f := newFixture(t)

	name, err := f.svc.Users.Role(models.RolePlayer)
	require.NoError(t, err)
	assert.Equal(t, "Player", name)

	_, err = f.svc.Users.Role(9)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCreatePlayerRequiresPlayerRole(t *testing.T) {
	f := newFixture(t)
	f.mock.ExpectQuery(`FROM users WHERE id = \$1`).WithArgs(4).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(4, "Karajan", "k@example.com", "x", models.RoleConductor, nil, time.Now()))

	_, err := f.svc.Players.Create(context.Background(), dto.CreatePlayer{UserID: 4, Name: "Karajan"})
	assert.True(t, apperr.Is(err, apperr.KindInvalid))
}

func TestLeaderboardRequiresSection(t *testing.T) {
	f := newFixture(t)
	f.mock.ExpectQuery(selectSection).WithArgs(8).WillReturnRows(none(lookupCols))

	_, err := f.svc.Players.Leaderboard(context.Background(), 8)
	require.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "Section with id 8 does not exist", apperr.Message(err))
}

func TestAttachOrchestraChecksBothSides(t *testing.T) {
	f := newFixture(t)
	f.mock.ExpectQuery(`FROM concerts c .* WHERE c.id = \$1`).WithArgs(5).
		WillReturnRows(sqlmock.NewRows(concertCols).AddRow(5, "Spring Gala", "", time.Now(), "", nil, nil))
	f.mock.ExpectQuery(selectOrchestra).WithArgs(2).WillReturnRows(none(orchestraCols))

	err := f.svc.Concerts.AttachOrchestra(context.Background(), 5, 2)
	require.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "Orchestra with id 2 does not exist", apperr.Message(err))
}

func TestCreateOrchestraForBusyConductorConflicts(t *testing.T) {
	f := newFixture(t)
	f.mock.ExpectQuery(`FROM conductors c .* WHERE c.id = \$1`).WithArgs(6).
		WillReturnRows(sqlmock.NewRows(conductorCols).AddRow(6, 20, "Karajan", 2, "Berlin Phil"))
	f.mock.ExpectQuery(`INSERT INTO orchestras`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: repository.OrchestraConductorKey})

	_, err := f.svc.Orchestras.Create(context.Background(), dto.SaveOrchestra{Name: "Vienna Phil", Date: time.Now(), ConductorID: 6})
	require.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, "Conductor with id 6 already leads an orchestra", apperr.Message(err))
}

func TestMembersListsApprovedPlayersWithAllOrchestras(t *testing.T) {
	f := newFixture(t)
	f.orchestra(2, 6)
	f.mock.ExpectQuery(`FROM players p .* WHERE p.id IN \(SELECT player_id FROM enrollments WHERE orchestra_id = \$1 AND status = 'approved'\)`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(playerCols).
			AddRow(7, 3, "Clara", 1, 2, nil, 40, "Strings", "Violin", nil, "Berlin Phil").
			AddRow(7, 3, "Clara", 1, 2, nil, 40, "Strings", "Violin", nil, "Vienna Phil"))

	got, err := f.svc.Orchestras.Members(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Berlin Phil", "Vienna Phil"}, got[0].Orchestras)
}
