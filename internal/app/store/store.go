// Package store реализует таблицу коротких ссылок поверх разных бэкендов:
// PostgreSQL, SQLite/libsql, Redis, JSON-файл и память.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aseptimu/linktable/internal/app/config"
	"github.com/aseptimu/linktable/internal/app/service"
	"go.uber.org/zap"
)

// TableName — имя логической таблицы во всех бэкендах.
const TableName = "urlshortener"

// tableRow — строка таблицы в том виде, в котором её видит хранилище.
type tableRow struct {
	PartitionKey string `json:"PartitionKey"`
	RowKey       string `json:"RowKey"`
	OriginalURL  string `json:"OriginalUrl"`
	CreatedAt    string `json:"CreatedAt"`
	Clicks       int64  `json:"Clicks"`
}

func newRow(code, originalURL string, now time.Time) tableRow {
	return tableRow{
		PartitionKey: service.PartitionKey,
		RowKey:       code,
		OriginalURL:  originalURL,
		CreatedAt:    formatTime(now),
		Clicks:       0,
	}
}

func (r tableRow) mapping() (service.URLMapping, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return service.URLMapping{}, fmt.Errorf("row %q: bad CreatedAt: %w", r.RowKey, err)
	}
	return service.URLMapping{
		Code:        r.RowKey,
		OriginalURL: r.OriginalURL,
		CreatedAt:   created,
		Clicks:      r.Clicks,
	}, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// New выбирает бэкенд по конфигурации: DSN базы данных, адрес Redis,
// путь к файлу, иначе память.
func New(ctx context.Context, cfg *config.ConfigType, logger *zap.SugaredLogger) (service.Store, error) {
	switch {
	case cfg.DSN != "" && IsSQLiteDSN(cfg.DSN):
		logger.Infow("Using SQLite storage", "dsn", redactDSN(cfg.DSN))
		return NewSQLiteStore(cfg.DSN, cfg.StoreTimeout, logger)
	case cfg.DSN != "":
		logger.Infow("Using PostgreSQL storage", "dsn", redactDSN(cfg.DSN))
		return NewDB(ctx, cfg.DSN, cfg.StoreTimeout, logger)
	case cfg.RedisAddr != "":
		logger.Infow("Using Redis storage", "addr", cfg.RedisAddr)
		return NewRedisStore(cfg.RedisAddr, cfg.StoreTimeout, cfg.StoreRetries, logger)
	case cfg.FileStoragePath != "":
		logger.Infow("Using file storage", "path", cfg.FileStoragePath)
		return NewFileStore(cfg.FileStoragePath, logger)
	default:
		logger.Warn("No storage configured, using in-memory store (data is lost on restart)")
		return NewInMemoryStore(), nil
	}
}

// IsSQLiteDSN сообщает, относится ли DSN к SQLite или libsql.
func IsSQLiteDSN(dsn string) bool {
	for _, prefix := range []string{"file:", "libsql://", "wss://", "ws://", ":memory:"} {
		if strings.HasPrefix(dsn, prefix) {
			return true
		}
	}
	return strings.HasSuffix(dsn, ".db") || strings.HasSuffix(dsn, ".sqlite")
}

// redactDSN убирает пароль и токены из DSN перед логированием.
func redactDSN(dsn string) string {
	if i := strings.Index(dsn, "?"); i >= 0 {
		dsn = dsn[:i]
	}
	if at := strings.LastIndex(dsn, "@"); at >= 0 {
		if scheme := strings.Index(dsn, "://"); scheme >= 0 && scheme < at {
			return dsn[:scheme+3] + "***" + dsn[at:]
		}
	}
	if strings.Contains(dsn, "password=") {
		return "***"
	}
	return dsn
}
