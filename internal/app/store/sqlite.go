package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aseptimu/linktable/internal/app/service"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteStore работает с локальной SQLite (modernc) или с удалённой libsql/Turso.
type SQLiteStore struct {
	db      *sql.DB
	timeout time.Duration
	now     func() time.Time
	logger  *zap.SugaredLogger
}

func sqliteDriver(dsn string) string {
	if strings.HasPrefix(dsn, "libsql://") || strings.HasPrefix(dsn, "wss://") || strings.HasPrefix(dsn, "ws://") {
		return "libsql"
	}
	return "sqlite"
}

func NewSQLiteStore(dsn string, timeout time.Duration, logger *zap.SugaredLogger) (*SQLiteStore, error) {
	driverName := sqliteDriver(dsn)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driverName, err)
	}
	if driverName == "sqlite" {
		// SQLite допускает одного писателя, общий пул лишь порождает SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}

	return &SQLiteStore{db: db, timeout: timeout, now: time.Now, logger: logger}, nil
}

const createTableSQLite = `CREATE TABLE IF NOT EXISTS urlshortener (
	partition_key TEXT    NOT NULL,
	row_key       TEXT    NOT NULL,
	original_url  TEXT    NOT NULL,
	created_at    TEXT    NOT NULL,
	clicks        INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (partition_key, row_key)
)`

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, createTableSQLite); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

const createURLSQLite = `INSERT INTO urlshortener (partition_key, row_key, original_url, created_at, clicks)
	VALUES (?, ?, ?, ?, 0)
	ON CONFLICT (partition_key, row_key) DO NOTHING`

func (s *SQLiteStore) Create(ctx context.Context, code, originalURL string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, createURLSQLite, service.PartitionKey, code, originalURL, formatTime(s.now()))
	if err != nil {
		s.logger.Errorw("Failed to insert URL", "code", code, "err", err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return service.ErrCodeExists
	}
	return nil
}

const incrementClicksSQLite = `UPDATE urlshortener SET clicks = clicks + 1
	WHERE partition_key = ? AND row_key = ?
	RETURNING original_url, created_at, clicks`

func (s *SQLiteStore) GetAndIncrement(ctx context.Context, code string) (service.URLMapping, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	row := tableRow{PartitionKey: service.PartitionKey, RowKey: code}
	err := s.db.QueryRowContext(ctx, incrementClicksSQLite, service.PartitionKey, code).
		Scan(&row.OriginalURL, &row.CreatedAt, &row.Clicks)
	if errors.Is(err, sql.ErrNoRows) {
		return service.URLMapping{}, service.ErrURLNotFound
	}
	if err != nil {
		s.logger.Errorw("Failed to increment clicks", "code", code, "err", err)
		return service.URLMapping{}, err
	}
	return row.mapping()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
