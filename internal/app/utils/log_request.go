// Package utils содержит вспомогательные функции для HTTP-хендлеров.
package utils

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LogRequest пишет в debug-лог, какой эндпоинт вызван.
func LogRequest(c *gin.Context, logger *zap.SugaredLogger) {
	logger.Debugw("Endpoint called",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"remote_addr", c.Request.RemoteAddr,
	)
}
