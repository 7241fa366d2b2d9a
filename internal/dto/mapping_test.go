package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orchestra-platform/internal/models"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func TestNilRecordsMapToNil(t *testing.T) {
	assert.Nil(t, ToUser(nil))
	assert.Nil(t, ToPlayer(nil))
	assert.Nil(t, ToConductor(nil))
	assert.Nil(t, ToOrchestra(nil))
	assert.Nil(t, ToConcert(nil))
	assert.Nil(t, ToLookup(nil))
	assert.Nil(t, ToEnrollment(nil))
}

func TestLookupMapping(t *testing.T) {
	got := ToLookup(&models.Lookup{ID: 1, Name: "Violin"})
	require.NotNil(t, got)

	body, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Violin"}`, string(body))
}

func TestPlayerMappingKeepsJoinedNames(t *testing.T) {
	p := &models.Player{
		ID: 3, UserID: 8, Name: "Clara", Score: 12,
		SectionID: intp(1), SectionName: strp("Strings"),
		InstrumentID: intp(2), InstrumentName: strp("Viola"),
		ConcertID: intp(5), ConcertName: strp("Spring Gala"),
		Orchestras: []string{"Berlin Phil"},
	}

	got := ToPlayer(p)
	assert.Equal(t, 3, got.ID)
	assert.Equal(t, 8, got.UserID)
	assert.Equal(t, "Clara", got.Name)
	assert.Equal(t, 12, got.Score)
	assert.Equal(t, "Strings", *got.SectionName)
	assert.Equal(t, "Viola", *got.InstrumentName)
	assert.Equal(t, "Spring Gala", *got.ConcertName)
	assert.Equal(t, []string{"Berlin Phil"}, got.Orchestras)

	bare := ToPlayer(&models.Player{ID: 4})
	assert.NotNil(t, bare.Orchestras)
}

func TestUserMappingResolvesRoleAndHidesPassword(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	u := &models.User{ID: 1, Username: "Tester", Email: "t@example.com", Password: "$2a$10$hash", Role: models.RoleConductor, CreatedAt: created}

	got := ToUser(u)
	assert.Equal(t, "Conductor", got.Role)
	assert.Equal(t, models.RoleConductor, got.RoleID)
	assert.Equal(t, created, got.CreatedAt)

	body, err := json.Marshal(got)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "hash")
	assert.NotContains(t, string(body), "password")
}

func TestRoleNames(t *testing.T) {
	assert.Equal(t, "Player", RoleName(models.RolePlayer))
	assert.Equal(t, "Conductor", RoleName(models.RoleConductor))
	assert.Equal(t, "Unknown", RoleName(7))
	assert.True(t, ValidRole(models.RolePlayer))
	assert.False(t, ValidRole(0))
}

func TestConductorMappingBuildsOrchestraRef(t *testing.T) {
	got := ToConductor(&models.Conductor{ID: 2, UserID: 9, Name: "Karajan", OrchestraID: intp(4), OrchestraName: strp("Berlin Phil")})
	require.NotNil(t, got.Orchestra)
	assert.Equal(t, Ref{ID: 4, Name: "Berlin Phil"}, *got.Orchestra)

	assert.Nil(t, ToConductor(&models.Conductor{ID: 3}).Orchestra)
}

func TestEnrollmentMappingDerivesApproval(t *testing.T) {
	e := &models.Enrollment{PlayerID: 1, OrchestraID: 2, SectionID: 3, InstrumentID: 4, Experience: 6, Status: models.EnrollmentApproved}
	got := ToEnrollment(e)
	assert.True(t, got.IsApproved)
	assert.Equal(t, "approved", got.Status)

	e.Status = models.EnrollmentRequested
	assert.False(t, ToEnrollment(e).IsApproved)
}

func TestLeaderboardPlaces(t *testing.T) {
	got := ToLeaderboard([]models.Player{{ID: 9, Name: "Dora", Score: 90}, {ID: 2, Name: "Emil", Score: 50}})
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Place)
	assert.Equal(t, 9, got[0].PlayerID)
	assert.Equal(t, 2, got[1].Place)
}

func TestSaveOrchestraAppliesOntoRecord(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	o := models.Orchestra{ID: 5, ConductorName: "Karajan"}
	SaveOrchestra{Name: "Berlin Phil", Description: "d", Date: date, ConductorID: 2}.Apply(&o)

	assert.Equal(t, 5, o.ID)
	assert.Equal(t, "Berlin Phil", o.Name)
	assert.Equal(t, date, o.Date)
	assert.Equal(t, 2, o.ConductorID)
}
