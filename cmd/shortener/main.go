package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/aseptimu/linktable/internal/app/config"
	handlers "github.com/aseptimu/linktable/internal/app/handlers/http"
	"github.com/aseptimu/linktable/internal/app/logger"
	"github.com/aseptimu/linktable/internal/app/middleware"
	server "github.com/aseptimu/linktable/internal/app/server/http"
	"github.com/aseptimu/linktable/internal/app/service"
	"github.com/aseptimu/linktable/internal/app/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	sugar, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer sugar.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	backend, err := store.New(ctx, cfg, sugar)
	if err != nil {
		sugar.Errorw("Failed to open storage", "error", err)
		return err
	}
	defer func() {
		if cerr := backend.Close(); cerr != nil {
			sugar.Errorw("Failed to close storage", "error", cerr)
		}
	}()

	st, err := store.NewInstrumented(backend, reg)
	if err != nil {
		return err
	}
	if err = st.EnsureSchema(ctx); err != nil {
		sugar.Errorw("Failed to prepare storage schema", "error", err)
		return err
	}

	metrics, err := middleware.NewHTTPMetrics(reg)
	if err != nil {
		return err
	}

	urlService := service.NewURLService(st,
		service.WithCreateAttempts(cfg.CreateAttempts),
		service.WithLogger(sugar),
	)
	resolver := service.NewGetURLService(st)

	h := handlers.New(cfg, urlService, resolver, st, reg, sugar)
	srv := server.NewServer(cfg.ServerAddress, sugar, h, metrics)

	return srv.Run(ctx)
}
