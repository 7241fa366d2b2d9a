package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"orchestra-platform/internal/api"
	"orchestra-platform/internal/config"
	"orchestra-platform/internal/db"
	"orchestra-platform/internal/repository"
	"orchestra-platform/internal/seed"
	"orchestra-platform/internal/service"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
	log := cfg.Logger()

	pool := db.MustDB(cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBConnectWait, log)
	defer pool.Close()

	if !cfg.SkipMigrations {
		version, err := db.Migrate(cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("migrations failed")
		}
		log.WithField("version", version).Info("schema up to date")
	}

	store := repository.New(db.Open(pool))

	if cfg.SeedFile != "" {
		f, err := seed.Load(cfg.SeedFile)
		if err != nil {
			log.WithError(err).Fatal("seed")
		}
		added, err := seed.Apply(context.Background(), store, f)
		if err != nil {
			log.WithError(err).Fatal("seed")
		}
		log.WithField("added", added).Info("reference data seeded")
	}

	tokens := service.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	svc := service.New(store, service.NewHasher(0), tokens, log)

	stop := make(chan struct{})
	limiter := api.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiter.StartSweeper(time.Minute, stop)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.Deps{
		Users:       svc.Users,
		Players:     svc.Players,
		Conductors:  svc.Conductors,
		Orchestras:  svc.Orchestras,
		Concerts:    svc.Concerts,
		Sections:    svc.Sections,
		Instruments: svc.Instruments,
		Enrollments: svc.Enrollments,
		Activity:    svc.Activity,
		Tokens:      tokens,
		DB:          store,
	}, api.Options{
		Log:          log,
		Limiter:      limiter,
		Metrics:      api.NewMetrics(),
		SecureCookie: cfg.CookieSecure,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.WithCORS(router, cfg.Origins()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	close(stop)

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
