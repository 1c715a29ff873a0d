package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrateDB подключается к базе и выполняет встроенные миграции из каталога migrations.
// Повторный и конкурентный вызов безопасен: golang-migrate держит advisory lock,
// а отсутствие новых миграций (migrate.ErrNoChange) не считается ошибкой.
// timeout ограничивает подключение, ожидание блокировки и каждый SQL-запрос;
// отмена ctx останавливает миграцию после текущего шага.
func MigrateDB(ctx context.Context, ps string, timeout time.Duration, logger *zap.SugaredLogger) error {
	db, err := sql.Open("pgx", ps)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to connect for migrations: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{StatementTimeout: timeout})
	if err != nil {
		return fmt.Errorf("failed to create migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.LockTimeout = timeout

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			m.GracefulStop <- true
		case <-done:
		}
	}()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err = ctx.Err(); err != nil {
		return fmt.Errorf("migrations interrupted: %w", err)
	}

	logger.Infof("Migration executed successfully")
	return nil
}
