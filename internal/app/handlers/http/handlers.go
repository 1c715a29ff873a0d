// Package http регистрирует HTTP-маршруты сервиса.
package http

import (
	"github.com/aseptimu/linktable/internal/app/config"
	"github.com/aseptimu/linktable/internal/app/handlers/http/dbhandlers"
	"github.com/aseptimu/linktable/internal/app/handlers/http/shortenurlhandlers"
	"github.com/aseptimu/linktable/internal/app/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handlers interface {
	RegisterRoutes(r *gin.Engine)
}

type handlersImpl struct {
	cfg      *config.ConfigType
	urlSvc   service.URLShortener
	resolver service.URLResolver
	pinger   dbhandlers.Pinger
	gatherer prometheus.Gatherer
	logger   *zap.SugaredLogger
}

// New собирает хендлеры. gatherer может быть nil, тогда /metrics не регистрируется.
func New(
	cfg *config.ConfigType,
	urlSvc service.URLShortener,
	resolver service.URLResolver,
	pinger dbhandlers.Pinger,
	gatherer prometheus.Gatherer,
	logger *zap.SugaredLogger,
) Handlers {
	return &handlersImpl{
		cfg:      cfg,
		urlSvc:   urlSvc,
		resolver: resolver,
		pinger:   pinger,
		gatherer: gatherer,
		logger:   logger,
	}
}

func (h *handlersImpl) RegisterRoutes(r *gin.Engine) {
	shorten := shortenurlhandlers.NewShortenHandler(h.cfg, h.urlSvc, h.logger)

	r.POST("/api/create_short_url", shorten.CreateShortURL)
	r.OPTIONS("/api/create_short_url", shorten.Preflight)
	r.GET(shortenurlhandlers.ShortURLPath+":code", shortenurlhandlers.NewGetURLHandler(h.resolver, h.logger).Redirect)
	r.GET("/ping", dbhandlers.NewPingHandler(h.pinger, h.logger).Ping)
	if h.gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	}
}
