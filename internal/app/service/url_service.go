// Package service содержит бизнес-логику сокращения ссылок и перехода по ним.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CodeLength — длина короткого кода.
const CodeLength = 6

// DefaultCreateAttempts — сколько раз пробуем сохранить ссылку при коллизии кода.
const DefaultCreateAttempts = 3

// CodeGenerator возвращает новый короткий код.
type CodeGenerator func() (string, error)

// UUIDCode берёт первые CodeLength символов случайного UUIDv4.
func UUIDCode() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String()[:CodeLength], nil
}

// URLShortener создаёт короткие коды для URL.
type URLShortener interface {
	ShortenURL(ctx context.Context, input string) (string, error)
}

// URLService реализует URLShortener поверх StoreURLSetter.
type URLService struct {
	store    StoreURLSetter
	generate CodeGenerator
	attempts int
	logger   *zap.SugaredLogger
}

// Option настраивает URLService.
type Option func(*URLService)

// WithCodeGenerator подменяет генератор кодов.
func WithCodeGenerator(gen CodeGenerator) Option {
	return func(s *URLService) {
		s.generate = gen
	}
}

// WithCreateAttempts задаёт число попыток сохранения при коллизиях.
func WithCreateAttempts(n int) Option {
	return func(s *URLService) {
		if n > 0 {
			s.attempts = n
		}
	}
}

// WithLogger подключает логгер.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *URLService) {
		s.logger = logger
	}
}

// NewURLService создаёт URLService.
func NewURLService(store StoreURLSetter, opts ...Option) *URLService {
	s := &URLService{
		store:    store,
		generate: UUIDCode,
		attempts: DefaultCreateAttempts,
		logger:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ShortenURL нормализует и проверяет input, затем сохраняет его под новым кодом.
// Ошибки валидации возвращаются как ErrURLRequired или ErrInvalidURL,
// всё остальное заворачивается в ErrInternal.
func (s *URLService) ShortenURL(ctx context.Context, input string) (string, error) {
	if input == "" {
		return "", ErrURLRequired
	}

	normalized := NormalizeURL(input)
	if !IsValidURL(normalized) {
		return "", ErrInvalidURL
	}

	var lastErr error
	for attempt := 1; attempt <= s.attempts; attempt++ {
		code, err := s.generate()
		if err != nil {
			return "", fmt.Errorf("%w: generate code: %w", ErrInternal, err)
		}

		err = s.store.Create(ctx, code, normalized)
		if err == nil {
			s.logger.Debugw("Short URL created", "code", code, "originalURL", normalized, "attempt", attempt)
			return code, nil
		}
		if !errors.Is(err, ErrCodeExists) {
			return "", fmt.Errorf("%w: create %q: %w", ErrInternal, code, err)
		}

		s.logger.Warnw("Short code collision, regenerating", "code", code, "attempt", attempt)
		lastErr = err
	}

	return "", fmt.Errorf("%w: no free code after %d attempts: %w", ErrInternal, s.attempts, lastErr)
}
