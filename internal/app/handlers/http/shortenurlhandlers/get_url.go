package shortenurlhandlers

import (
	"errors"
	"net/http"

	"github.com/aseptimu/linktable/internal/app/service"
	"github.com/aseptimu/linktable/internal/app/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetURLHandler перенаправляет с короткого кода на исходный URL.
type GetURLHandler struct {
	service service.URLResolver
	logger  *zap.SugaredLogger
}

// NewGetURLHandler создаёт новый экземпляр GetURLHandler.
func NewGetURLHandler(service service.URLResolver, logger *zap.SugaredLogger) *GetURLHandler {
	return &GetURLHandler{service: service, logger: logger}
}

// Redirect обрабатывает GET /api/r/:code. Каждый успешный переход
// увеличивает счётчик кликов ровно на единицу.
func (h *GetURLHandler) Redirect(c *gin.Context) {
	utils.LogRequest(c, h.logger)

	code := c.Param("code")
	mapping, err := h.service.Resolve(c.Request.Context(), code)
	switch {
	case err == nil:
		h.logger.Debugw("Redirecting", "code", code, "clicks", mapping.Clicks)
		c.Redirect(http.StatusFound, mapping.OriginalURL)
	case errors.Is(err, service.ErrURLNotFound):
		c.String(http.StatusNotFound, MsgURLNotFound)
	default:
		h.logger.Errorw("Failed to resolve short URL", "code", code, "error", err)
		c.String(http.StatusInternalServerError, MsgInternal)
	}
}
