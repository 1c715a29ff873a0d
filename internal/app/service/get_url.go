package service

import (
	"context"
	"errors"
	"fmt"
)

// URLResolver возвращает исходный URL по коду и засчитывает переход.
type URLResolver interface {
	Resolve(ctx context.Context, code string) (URLMapping, error)
}

// GetURLService реализует URLResolver через StoreURLGetter.
type GetURLService struct {
	store StoreURLGetter
}

// NewGetURLService создаёт новый GetURLService на основе переданного хранилища.
func NewGetURLService(store StoreURLGetter) *GetURLService {
	return &GetURLService{store: store}
}

// Resolve возвращает запись с уже увеличенным счётчиком.
// Неизвестный код — ErrURLNotFound, сбой хранилища — ErrInternal.
func (s *GetURLService) Resolve(ctx context.Context, code string) (URLMapping, error) {
	if code == "" {
		return URLMapping{}, ErrURLNotFound
	}

	mapping, err := s.store.GetAndIncrement(ctx, code)
	switch {
	case err == nil:
		return mapping, nil
	case errors.Is(err, ErrURLNotFound):
		return URLMapping{}, ErrURLNotFound
	default:
		return URLMapping{}, fmt.Errorf("%w: resolve %q: %w", ErrInternal, code, err)
	}
}
