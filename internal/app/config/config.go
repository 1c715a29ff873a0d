// Package config собирает настройки сервиса из флагов, .env-файла и переменных окружения.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DefaultServerAddress  = "localhost:8080"
	DefaultBaseAddress    = "http://localhost:8080"
	DefaultStoreTimeout   = 5 * time.Second
	DefaultStoreRetries   = 5
	DefaultCreateAttempts = 3
	DefaultLogLevel       = "info"
)

// ConfigType хранит все параметры запуска сервиса.
type ConfigType struct {
	ServerAddress   string        `env:"SERVER_ADDRESS"`
	BaseAddress     string        `env:"BASE_URL"`
	FileStoragePath string        `env:"FILE_STORAGE_PATH"`
	DSN             string        `env:"DATABASE_DSN"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	StoreTimeout    time.Duration `env:"STORE_TIMEOUT"`
	StoreRetries    int           `env:"STORE_RETRIES"`
	CreateAttempts  int           `env:"CREATE_ATTEMPTS"`
	LogLevel        string        `env:"LOG_LEVEL"`
}

// NewConfig разбирает флаги командной строки, затем .env и переменные окружения.
// Значения из окружения перекрывают флаги.
func NewConfig() (*ConfigType, error) {
	return parse(flag.CommandLine, os.Args[1:])
}

func parse(fs *flag.FlagSet, args []string) (*ConfigType, error) {
	config := ConfigType{
		StoreTimeout:   DefaultStoreTimeout,
		StoreRetries:   DefaultStoreRetries,
		CreateAttempts: DefaultCreateAttempts,
	}

	fs.StringVar(&config.ServerAddress, "a", DefaultServerAddress, "HTTP server address")
	fs.StringVar(&config.BaseAddress, "b", DefaultBaseAddress, "short URL base address")
	fs.StringVar(&config.FileStoragePath, "f", "", "file storage path")
	fs.StringVar(&config.DSN, "d", "", "database DSN (postgres or sqlite/libsql)")
	fs.StringVar(&config.RedisAddr, "r", "", "redis address")
	fs.StringVar(&config.LogLevel, "l", DefaultLogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	// FUNCTION_APP_URL оставлен для совместимости со старым деплоем.
	if _, ok := os.LookupEnv("BASE_URL"); !ok {
		if fnURL := os.Getenv("FUNCTION_APP_URL"); fnURL != "" {
			config.BaseAddress = fnURL
		}
	}
	config.BaseAddress = strings.TrimRight(config.BaseAddress, "/")

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate проверяет, что таймаут и счётчики попыток положительны.
func (c *ConfigType) Validate() error {
	var errs []error
	if c.StoreTimeout <= 0 {
		errs = append(errs, fmt.Errorf("store timeout must be positive, got %s", c.StoreTimeout))
	}
	if c.StoreRetries < 1 {
		errs = append(errs, fmt.Errorf("store retries must be at least 1, got %d", c.StoreRetries))
	}
	if c.CreateAttempts < 1 {
		errs = append(errs, fmt.Errorf("create attempts must be at least 1, got %d", c.CreateAttempts))
	}
	return errors.Join(errs...)
}
