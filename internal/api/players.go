package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"orchestra-platform/internal/dto"
	"orchestra-platform/internal/service"
)

func playerResource(players PlayerService) resource[dto.Player, dto.CreatePlayer, dto.UpdatePlayer] {
	return resource[dto.Player, dto.CreatePlayer, dto.UpdatePlayer]{
		label: "Player",
		path:  "players",
		svc:   players,
		idOf:  func(p *dto.Player) int { return p.ID },
		del: func(c *gin.Context, id int) error {
			return players.Delete(c.Request.Context(), id)
		},
	}
}

func GetPlayerByUser(players PlayerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := paramID(c, "userId", "User")
		if !ok {
			return
		}
		p, err := players.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func UpdatePlayerScore(players PlayerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id", "Player")
		if !ok {
			return
		}
		var in dto.UpdateScore
		if !bind(c, &in) {
			return
		}
		if err := players.UpdateScore(c.Request.Context(), id, *in.Score); err != nil {
			fail(c, err)
			return
		}
		updated(c, "Player", id)
	}
}

func PlayerEnrollments(enrollments EnrollmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id", "Player")
		if !ok {
			return
		}
		items, err := enrollments.ListByPlayer(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		list(c, items)
	}
}

// Enroll files the caller's request to join an orchestra in a section and on an instrument.
func Enroll(enrollments EnrollmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var t service.EnrollTarget
		var ok bool
		if t.PlayerID, ok = paramID(c, "id", "Player"); !ok {
			return
		}
		if t.OrchestraID, ok = paramID(c, "orchestraId", "Orchestra"); !ok {
			return
		}
		if t.SectionID, ok = paramID(c, "sectionId", "Section"); !ok {
			return
		}
		if t.InstrumentID, ok = paramID(c, "instrumentId", "Instrument"); !ok {
			return
		}
		var in dto.EnrollRequest
		if !bindOptional(c, &in) {
			return
		}
		t.Experience = in.Experience

		e, err := enrollments.Enroll(c.Request.Context(), uid(c), t)
		if err != nil {
			fail(c, err)
			return
		}
		c.Header("Location", "/api/players/"+c.Param("id")+"/enrollments")
		c.JSON(http.StatusCreated, e)
	}
}

// AcceptEnrollee approves a pending request. Only the orchestra's conductor may call it.
func AcceptEnrollee(enrollments EnrollmentService) gin.HandlerFunc {
	return decideEnrollment(func(ctx context.Context, actorUserID, playerID, orchestraID int) (*dto.Enrollment, error) {
		return enrollments.Accept(ctx, actorUserID, playerID, orchestraID)
	})
}

func RejectEnrollee(enrollments EnrollmentService) gin.HandlerFunc {
	return decideEnrollment(func(ctx context.Context, actorUserID, playerID, orchestraID int) (*dto.Enrollment, error) {
		return enrollments.Reject(ctx, actorUserID, playerID, orchestraID)
	})
}

type decision func(ctx context.Context, actorUserID, playerID, orchestraID int) (*dto.Enrollment, error)

func decideEnrollment(decide decision) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := paramID(c, "id", "Player")
		if !ok {
			return
		}
		orchestraID, ok := paramID(c, "orchestraId", "Orchestra")
		if !ok {
			return
		}
		e, err := decide(c.Request.Context(), uid(c), playerID, orchestraID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, e)
	}
}
