// example_test.go демонстрирует, как пользоваться URLService и GetURLService.
package service_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/aseptimu/linktable/internal/app/service"
	"github.com/aseptimu/linktable/internal/app/store"
)

// ExampleURLService показывает полный цикл: сокращение, переход и неизвестный код.
func ExampleURLService() {
	st := store.NewInMemoryStore()
	ctx := context.Background()

	// фиксированный генератор, чтобы вывод был детерминированным
	shortener := service.NewURLService(st, service.WithCodeGenerator(func() (string, error) {
		return "3f9a1c", nil
	}))
	resolver := service.NewGetURLService(st)

	code, err := shortener.ShortenURL(ctx, "example.com/docs")
	fmt.Println("code:", code, "err:", err)

	mapping, err := resolver.Resolve(ctx, code)
	fmt.Println("url:", mapping.OriginalURL, "clicks:", mapping.Clicks, "err:", err)

	_, err = shortener.ShortenURL(ctx, "not a url")
	fmt.Println("invalid:", errors.Is(err, service.ErrInvalidURL))

	_, err = resolver.Resolve(ctx, "zzzzzz")
	fmt.Println("missing:", errors.Is(err, service.ErrURLNotFound))

	// Output:
	// code: 3f9a1c err: <nil>
	// url: https://example.com/docs clicks: 1 err: <nil>
	// invalid: true
	// missing: true
}
