// Package api is the HTTP surface: gin routes, request binding, auth and the
// translation of service errors into status codes.
package api

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"orchestra-platform/internal/dto"
	"orchestra-platform/internal/models"
)

type Options struct {
	Log          logrus.FieldLogger
	Limiter      *RateLimiter // nil disables rate limiting
	Metrics      *Metrics     // nil disables /metrics
	SecureCookie bool
}

var (
	rolePlayer    = dto.RoleName(models.RolePlayer)
	roleConductor = dto.RoleName(models.RoleConductor)
)

func NewRouter(d Deps, o Options) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(o.Log))
	if o.Metrics != nil {
		r.Use(o.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(o.Metrics.Handler()))
	}
	r.GET("/healthz", Health(d.DB))

	if o.Limiter != nil {
		r.Use(o.Limiter.Middleware())
	}

	// legacy top-level routes
	r.POST("/users/username-and-password", Login(d.Users, d.Tokens, o.SecureCookie))
	r.GET("/roles/:roleId", GetRole(d.Users))

	public := r.Group("/api")
	{
		public.POST("/login", Login(d.Users, d.Tokens, o.SecureCookie))
		public.POST("/logout", Logout(o.SecureCookie))
	}

	api := r.Group("/api", Auth(d.Tokens))
	{
		api.GET("/me", RequireRole(), Me(d.Users))
		api.GET("/activity", RequireRole(roleConductor), ListActivity(d.Activity))

		users := api.Group("/users")
		userResource(d.Users).mount(users)
		users.PUT("/:id/image", UpdateUserImage(d.Users))

		players := api.Group("/players")
		playerResource(d.Players).mount(players)
		players.GET("/users/:userId", GetPlayerByUser(d.Players))
		players.PUT("/:id/score", UpdatePlayerScore(d.Players))
		players.GET("/:id/enrollments", PlayerEnrollments(d.Enrollments))
		players.POST("/:id/orchestras/:orchestraId/sections/:sectionId/instruments/:instrumentId/enroll",
			RequireRole(rolePlayer), Enroll(d.Enrollments))
		players.PUT("/:id/orchestras/:orchestraId/accept", RequireRole(roleConductor), AcceptEnrollee(d.Enrollments))
		players.PUT("/:id/orchestras/:orchestraId/reject", RequireRole(roleConductor), RejectEnrollee(d.Enrollments))

		conductors := api.Group("/conductors")
		conductorResource(d.Conductors).mount(conductors)
		conductors.GET("/users/:userId", GetConductorByUser(d.Conductors))

		orchestras := api.Group("/orchestras")
		orchestraResource(d.Orchestras).mount(orchestras)
		orchestras.GET("/:id/enrollees", OrchestraEnrollees(d.Orchestras))
		orchestras.GET("/:id/players", OrchestraPlayers(d.Orchestras))
		orchestras.GET("/:id/concerts", OrchestraConcerts(d.Orchestras))

		concerts := api.Group("/concerts")
		concertResource(d.Concerts).mount(concerts)
		concerts.PUT("/:id/orchestras/:orchestraId", AttachConcertOrchestra(d.Concerts))

		sections := api.Group("/sections")
		lookupResource("Section", "sections", d.Sections).mount(sections)
		sections.GET("/:id/leaderboards", SectionLeaderboard(d.Players))

		instruments := api.Group("/instruments")
		lookupResource("Instrument", "instruments", d.Instruments).mount(instruments)
	}
	return r
}

// WithCORS lets the single-page frontend at origins call the API with credentials.
func WithCORS(h http.Handler, origins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{"Location", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})(h)
}

var validatorsOnce sync.Once

// registerValidators adds the role tag and reports fields by their JSON names.
func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return dto.ValidRole(int(fl.Field().Int()))
		})
	})
}
