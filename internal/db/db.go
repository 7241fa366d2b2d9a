package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

/* ===================== CONNECT ===================== */

// MustDB dials the pool, retrying until the database answers a ping or wait elapses.
func MustDB(url string, maxConns int32, wait time.Duration, log logrus.FieldLogger) *pgxpool.Pool {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		log.WithError(err).Fatal("parse DATABASE_URL")
	}
	cfg.MaxConns = maxConns

	var pool *pgxpool.Pool

	deadline := time.Now().Add(wait)
	for attempt := 1; ; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		pool, err = pgxpool.NewWithConfig(ctx, cfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				cancel()
				break
			}
			pool.Close()
		}
		cancel()

		if time.Now().After(deadline) {
			log.WithError(err).Fatalf("failed to connect DB after %d attempts", attempt)
		}
		log.WithError(err).WithField("attempt", attempt).Warn("database not ready, retrying")
		time.Sleep(1 * time.Second)
	}

	return pool
}

// Open exposes the pool through database/sql so sqlx can map rows onto structs.
func Open(pool *pgxpool.Pool) *sqlx.DB {
	return sqlx.NewDb(stdlib.OpenDBFromPool(pool), "pgx")
}
