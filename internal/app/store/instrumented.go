package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aseptimu/linktable/internal/app/service"
	"github.com/prometheus/client_golang/prometheus"
)

// Instrumented оборачивает Store и считает длительность и результат каждой операции.
type Instrumented struct {
	next     service.Store
	duration *prometheus.HistogramVec
}

// NewInstrumented регистрирует метрику shortener_store_operation_duration_seconds в reg.
func NewInstrumented(next service.Store, reg prometheus.Registerer) (*Instrumented, error) {
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "shortener",
		Subsystem: "store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of store operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "result"})

	if err := reg.Register(duration); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, err
		}
		existing, ok := already.ExistingCollector.(*prometheus.HistogramVec)
		if !ok {
			return nil, fmt.Errorf("collector %T is already registered under the store metric name", already.ExistingCollector)
		}
		duration = existing
	}
	return &Instrumented{next: next, duration: duration}, nil
}

func (s *Instrumented) observe(op string, begin time.Time, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, service.ErrURLNotFound):
		result = "not_found"
	case errors.Is(err, service.ErrCodeExists):
		result = "exists"
	default:
		result = "error"
	}
	s.duration.WithLabelValues(op, result).Observe(time.Since(begin).Seconds())
}

func (s *Instrumented) EnsureSchema(ctx context.Context) (err error) {
	defer func(begin time.Time) { s.observe("ensure_schema", begin, err) }(time.Now())
	return s.next.EnsureSchema(ctx)
}

func (s *Instrumented) Create(ctx context.Context, code, originalURL string) (err error) {
	defer func(begin time.Time) { s.observe("create", begin, err) }(time.Now())
	return s.next.Create(ctx, code, originalURL)
}

func (s *Instrumented) GetAndIncrement(ctx context.Context, code string) (m service.URLMapping, err error) {
	defer func(begin time.Time) { s.observe("get_and_increment", begin, err) }(time.Now())
	return s.next.GetAndIncrement(ctx, code)
}

func (s *Instrumented) Ping(ctx context.Context) (err error) {
	defer func(begin time.Time) { s.observe("ping", begin, err) }(time.Now())
	return s.next.Ping(ctx)
}

func (s *Instrumented) Close() error {
	return s.next.Close()
}
