// Package shortenurlhandlers содержит HTTP-хендлеры для операций с короткими URL.
package shortenurlhandlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/aseptimu/linktable/internal/app/config"
	"github.com/aseptimu/linktable/internal/app/service"
	"github.com/aseptimu/linktable/internal/app/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Тексты ответов об ошибках.
const (
	MsgURLRequired = "URL is required"
	MsgInvalidURL  = "Invalid URL format"
	MsgInvalidJSON = "Invalid JSON format"
	MsgURLNotFound = "URL not found"
	MsgInternal    = "An error occurred"
	MsgBodyTooBig  = "Request body too large"
)

// MaxBodySize ограничивает тело запроса на создание ссылки (после распаковки gzip).
const MaxBodySize = 64 << 10

// ShortURLPath — префикс пути, по которому короткая ссылка раскрывается.
const ShortURLPath = "/api/r/"

// ShortenRequest — тело запроса POST /api/create_short_url.
type ShortenRequest struct {
	URL string `json:"url"`
}

// ShortenHandler обрабатывает создание коротких ссылок.
type ShortenHandler struct {
	cfg     *config.ConfigType
	Service service.URLShortener
	logger  *zap.SugaredLogger
}

// NewShortenHandler создаёт новый ShortenHandler,
// принимая конфиг, URLShortener и SugaredLogger.
func NewShortenHandler(cfg *config.ConfigType, service service.URLShortener, logger *zap.SugaredLogger) *ShortenHandler {
	return &ShortenHandler{cfg: cfg, Service: service, logger: logger}
}

// CreateShortURL обрабатывает POST /api/create_short_url.
// Принимает JSON {"url": "..."} и возвращает полный короткий URL в виде text/plain.
// Пустое тело трактуется так же, как отсутствующий url.
func (h *ShortenHandler) CreateShortURL(c *gin.Context) {
	utils.LogRequest(c, h.logger)

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodySize))
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		c.String(http.StatusBadRequest, MsgBodyTooBig)
		return
	}
	if err != nil {
		h.logger.Errorw("Failed to read request body", "error", err)
		c.String(http.StatusInternalServerError, MsgInternal)
		return
	}

	var req ShortenRequest
	if len(bytes.TrimSpace(body)) > 0 {
		if err = json.Unmarshal(body, &req); err != nil {
			c.String(http.StatusBadRequest, MsgInvalidJSON)
			return
		}
	}

	code, err := h.Service.ShortenURL(c.Request.Context(), req.URL)
	switch {
	case err == nil:
		c.String(http.StatusOK, h.cfg.BaseAddress+ShortURLPath+code)
	case errors.Is(err, service.ErrURLRequired):
		c.String(http.StatusBadRequest, MsgURLRequired)
	case errors.Is(err, service.ErrInvalidURL):
		c.String(http.StatusBadRequest, MsgInvalidURL)
	default:
		h.logger.Errorw("Failed to create short URL", "url", req.URL, "error", err)
		c.String(http.StatusInternalServerError, MsgInternal)
	}
}

// Preflight отвечает на OPTIONS /api/create_short_url. CORS-заголовки выставляет middleware.
func (h *ShortenHandler) Preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}
