package store

import (
	"context"
	"sync"
	"time"

	"github.com/aseptimu/linktable/internal/app/service"
)

type InMemoryStore struct {
	mu   sync.Mutex
	data map[string]tableRow
	now  func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		data: make(map[string]tableRow),
		now:  time.Now,
	}
}

func (m *InMemoryStore) EnsureSchema(ctx context.Context) error {
	return ctx.Err()
}

func (m *InMemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *InMemoryStore) Create(ctx context.Context, code, originalURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[code]; exists {
		return service.ErrCodeExists
	}
	m.data[code] = newRow(code, originalURL, m.now())
	return nil
}

func (m *InMemoryStore) GetAndIncrement(ctx context.Context, code string) (service.URLMapping, error) {
	if err := ctx.Err(); err != nil {
		return service.URLMapping{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	row, exists := m.data[code]
	if !exists {
		return service.URLMapping{}, service.ErrURLNotFound
	}
	row.Clicks++
	m.data[code] = row
	return row.mapping()
}

func (m *InMemoryStore) Close() error {
	return nil
}
