package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aseptimu/linktable/internal/app/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Database struct {
	dbpool  *pgxpool.Pool
	dsn     string
	timeout time.Duration
	now     func() time.Time
	logger  *zap.SugaredLogger
}

func NewDB(ctx context.Context, ps string, timeout time.Duration, logger *zap.SugaredLogger) (*Database, error) {
	dbpool, err := pgxpool.New(ctx, ps)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{
		dbpool:  dbpool,
		dsn:     ps,
		timeout: timeout,
		now:     time.Now,
		logger:  logger,
	}, nil
}

// EnsureSchema сначала проверяет доступность базы под таймаутом хранилища,
// чтобы зависший сервер не блокировал старт, затем применяет миграции.
func (db *Database) EnsureSchema(ctx context.Context) error {
	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("database is unreachable: %w", err)
	}
	return MigrateDB(ctx, db.dsn, db.timeout, db.logger)
}

func (db *Database) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()
	return db.dbpool.Ping(ctx)
}

const CreateURLQuery = `INSERT INTO urlshortener (partition_key, row_key, original_url, created_at, clicks)
         VALUES ($1, $2, $3, $4, 0)
         ON CONFLICT (partition_key, row_key) DO NOTHING`

func (db *Database) Create(ctx context.Context, code, originalURL string) error {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()

	db.logger.Debugw("Attempting to insert URL", "code", code, "originalURL", originalURL)

	cmdTag, err := db.dbpool.Exec(ctx, CreateURLQuery, service.PartitionKey, code, originalURL, db.now().UTC())
	if err != nil {
		db.logger.Errorw("Failed to insert URL", "code", code, "originalURL", originalURL, "err", err)
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return service.ErrCodeExists
	}
	return nil
}

const IncrementClicksQuery = `UPDATE urlshortener SET clicks = clicks + 1
         WHERE partition_key = $1 AND row_key = $2
         RETURNING original_url, created_at, clicks`

// GetAndIncrement увеличивает счётчик одним UPDATE, поэтому параллельные переходы не теряются.
func (db *Database) GetAndIncrement(ctx context.Context, code string) (service.URLMapping, error) {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()

	mapping := service.URLMapping{Code: code}
	err := db.dbpool.QueryRow(ctx, IncrementClicksQuery, service.PartitionKey, code).
		Scan(&mapping.OriginalURL, &mapping.CreatedAt, &mapping.Clicks)
	if errors.Is(err, pgx.ErrNoRows) {
		return service.URLMapping{}, service.ErrURLNotFound
	}
	if err != nil {
		db.logger.Errorw("Failed to increment clicks", "code", code, "err", err)
		return service.URLMapping{}, err
	}

	mapping.CreatedAt = mapping.CreatedAt.UTC()
	return mapping, nil
}

func (db *Database) Close() error {
	db.dbpool.Close()
	return nil
}
