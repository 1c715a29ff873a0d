package service

import (
	"context"
	"time"
)

// PartitionKey — единственная партиция таблицы, в которой лежат все ссылки.
const PartitionKey = "urls"

// URLMapping — строка таблицы: короткий код и исходный URL со счётчиком переходов.
type URLMapping struct {
	Code        string
	OriginalURL string
	CreatedAt   time.Time
	Clicks      int64
}

// StoreURLSetter создаёт новую строку. Если код уже занят, возвращает ErrCodeExists.
type StoreURLSetter interface {
	Create(ctx context.Context, code, originalURL string) error
}

// StoreURLGetter находит строку по коду и атомарно увеличивает Clicks на единицу.
// Для отсутствующего кода возвращает ErrURLNotFound.
type StoreURLGetter interface {
	GetAndIncrement(ctx context.Context, code string) (URLMapping, error)
}

// Store — полный набор операций хранилища.
type Store interface {
	StoreURLSetter
	StoreURLGetter
	EnsureSchema(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
