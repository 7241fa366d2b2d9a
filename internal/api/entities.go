package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"orchestra-platform/internal/dto"
)

func conductorResource(conductors ConductorService) resource[dto.Conductor, dto.CreateConductor, dto.UpdateConductor] {
	return resource[dto.Conductor, dto.CreateConductor, dto.UpdateConductor]{
		label: "Conductor",
		path:  "conductors",
		svc:   conductors,
		idOf:  func(c *dto.Conductor) int { return c.ID },
		del: func(c *gin.Context, id int) error {
			return conductors.Delete(c.Request.Context(), id)
		},
	}
}

func GetConductorByUser(conductors ConductorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := paramID(c, "userId", "User")
		if !ok {
			return
		}
		cd, err := conductors.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, cd)
	}
}

func orchestraResource(orchestras OrchestraService) resource[dto.Orchestra, dto.SaveOrchestra, dto.SaveOrchestra] {
	return resource[dto.Orchestra, dto.SaveOrchestra, dto.SaveOrchestra]{
		label: "Orchestra",
		path:  "orchestras",
		svc:   orchestras,
		idOf:  func(o *dto.Orchestra) int { return o.ID },
		del: func(c *gin.Context, id int) error {
			return orchestras.Delete(c.Request.Context(), id)
		},
	}
}

// listOf serves a collection scoped to the entity named by the :id parameter.
func listOf[T any](label string, fetch func(ctx context.Context, id int) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id", label)
		if !ok {
			return
		}
		items, err := fetch(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		list(c, items)
	}
}

func OrchestraEnrollees(orchestras OrchestraService) gin.HandlerFunc {
	return listOf("Orchestra", func(ctx context.Context, id int) ([]dto.Enrollment, error) {
		return orchestras.Enrollees(ctx, id)
	})
}

func OrchestraPlayers(orchestras OrchestraService) gin.HandlerFunc {
	return listOf("Orchestra", func(ctx context.Context, id int) ([]dto.Player, error) {
		return orchestras.Members(ctx, id)
	})
}

func OrchestraConcerts(orchestras OrchestraService) gin.HandlerFunc {
	return listOf("Orchestra", func(ctx context.Context, id int) ([]dto.Concert, error) {
		return orchestras.Concerts(ctx, id)
	})
}

func SectionLeaderboard(players PlayerService) gin.HandlerFunc {
	return listOf("Section", func(ctx context.Context, id int) ([]dto.LeaderboardEntry, error) {
		return players.Leaderboard(ctx, id)
	})
}

func concertResource(concerts ConcertService) resource[dto.Concert, dto.SaveConcert, dto.SaveConcert] {
	return resource[dto.Concert, dto.SaveConcert, dto.SaveConcert]{
		label: "Concert",
		path:  "concerts",
		svc:   concerts,
		idOf:  func(c *dto.Concert) int { return c.ID },
		del: func(c *gin.Context, id int) error {
			return concerts.Delete(c.Request.Context(), id)
		},
	}
}

func AttachConcertOrchestra(concerts ConcertService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id", "Concert")
		if !ok {
			return
		}
		orchestraID, ok := paramID(c, "orchestraId", "Orchestra")
		if !ok {
			return
		}
		if err := concerts.AttachOrchestra(c.Request.Context(), id, orchestraID); err != nil {
			fail(c, err)
			return
		}
		updated(c, "Concert", id)
	}
}

func lookupResource(label, path string, svc LookupService) resource[dto.Lookup, dto.SaveLookup, dto.SaveLookup] {
	return resource[dto.Lookup, dto.SaveLookup, dto.SaveLookup]{
		label: label,
		path:  path,
		svc:   svc,
		idOf:  func(l *dto.Lookup) int { return l.ID },
		del: func(c *gin.Context, id int) error {
			return svc.Delete(c.Request.Context(), id)
		},
	}
}

func ListActivity(activity ActivityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := activity.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		list(c, items)
	}
}

// Health pings the database with a short deadline.
func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			logger(c).WithError(err).Warn("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
