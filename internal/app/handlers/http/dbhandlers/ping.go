// Package dbhandlers содержит HTTP-хендлеры для проверки доступности хранилища.
package dbhandlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger описывает ресурс, который умеет отвечать на проверку доступности (например, хранилище).
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingHandler обрабатывает HTTP-запросы /ping, проверяя Pinger.
type PingHandler struct {
	db     Pinger
	logger *zap.SugaredLogger
}

// NewPingHandler создаёт новый PingHandler с переданным Pinger.
func NewPingHandler(db Pinger, logger *zap.SugaredLogger) *PingHandler {
	return &PingHandler{db: db, logger: logger}
}

// Ping обрабатывает GET /ping.
// Если h.db равен nil — возвращает 503 Service Unavailable.
// Ошибка h.db.Ping пишется в лог, клиент получает 500 с общим текстом
// без подробностей подключения. Иначе отдаёт 200 OK.
func (h *PingHandler) Ping(c *gin.Context) {
	if h.db == nil {
		c.String(http.StatusServiceUnavailable, "Server doesn't use storage")
		return
	}

	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.logger.Errorw("Storage ping failed", "error", err)
		c.String(http.StatusInternalServerError, "An error occurred")
		return
	}
	c.Status(http.StatusOK)
}
