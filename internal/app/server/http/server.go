// Package http настраивает middleware, маршруты и запускает HTTP-сервер.
package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	handlers "github.com/aseptimu/linktable/internal/app/handlers/http"
	"github.com/aseptimu/linktable/internal/app/middleware"
	"github.com/gin-gonic/gin"
	gorillahandlers "github.com/gorilla/handlers"
	"go.uber.org/zap"
)

// ShutdownTimeout — сколько ждём завершения активных запросов при остановке.
const ShutdownTimeout = 30 * time.Second

type Server struct {
	srv    *http.Server
	logger *zap.SugaredLogger
}

// NewServer собирает gin-роутер. metrics может быть nil.
// X-Forwarded-For и X-Real-IP разбирает gorilla ProxyHeaders и подставляет в RemoteAddr,
// сам gin заголовкам прокси не доверяет.
func NewServer(addr string, logger *zap.SugaredLogger, h handlers.Handlers, metrics *middleware.HTTPMetrics) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Warnw("Failed to reset trusted proxies", "error", err)
	}

	logger.Debug("Setting up middleware")
	r.Use(middleware.RecoveryMiddleware(logger), middleware.MiddlewareLogger(logger))
	if metrics != nil {
		r.Use(metrics.Middleware())
	}
	r.Use(middleware.CORSMiddleware(), middleware.GzipMiddleware())
	h.RegisterRoutes(r)

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           gorillahandlers.ProxyHeaders(r),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Handler возвращает корневой http.Handler сервера.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run запускает сервер и блокируется до отмены ctx, после чего
// дожидается завершения активных запросов.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Infow("Initializing server", "address", s.srv.Addr)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		s.logger.Infow("Shutting down server", "reason", context.Cause(ctx))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Errorw("Error shutting down server", "error", err)
		}
	}()

	s.logger.Infow("Запуск HTTP сервера", "addr", s.srv.Addr)
	err := s.srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	wg.Wait()

	return nil
}
