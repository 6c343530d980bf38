package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const (
	connectMaxAttempts  = 30
	connectRetryBackoff = 3 * time.Second
)

// Connect открывает пул соединений к postgres и применяет миграции схемы. БД может подняться
// позже движка, поэтому подключение повторяется с паузой, до connectMaxAttempts раз.
func Connect(ctx context.Context, migrationsDir, dsn string, l *logrus.Logger) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool

	for attempt := 1; ; attempt++ {
		var connErr error
		pool, connErr = openPool(ctx, dsn)
		if connErr == nil {
			break
		}
		if attempt >= connectMaxAttempts {
			return nil, fmt.Errorf("connect postgres after %d attempts: %w", attempt, connErr)
		}
		l.WithError(connErr).
			WithField("attempt", fmt.Sprintf("%d/%d", attempt, connectMaxAttempts)).
			Warnf("postgres is not ready, retrying in %.f seconds", connectRetryBackoff.Seconds())

		select {
		case <-ctx.Done():
			return nil, ctx.Err() //nolint:wrapcheck
		case <-time.After(connectRetryBackoff):
		}
	}

	if migrateErr := migrateSchema(migrationsDir, dsn); migrateErr != nil {
		pool.Close()
		return nil, migrateErr
	}
	return pool, nil
}

func openPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, confErr := pgxpool.ParseConfig(dsn)
	if confErr != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", confErr)
	}
	pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
	if poolErr != nil {
		return nil, fmt.Errorf("create pool: %w", poolErr)
	}
	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", pingErr)
	}
	return pool, nil
}

func migrateSchema(dir string, dsn string) error {
	m, mErr := migrate.New("file://"+dir, dsn)
	if mErr != nil {
		return fmt.Errorf("create migrate instance: %w", mErr)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
