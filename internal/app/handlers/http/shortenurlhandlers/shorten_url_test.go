package shortenurlhandlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aseptimu/linktable/internal/app/config"
	"github.com/aseptimu/linktable/internal/app/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type mockShortener struct {
	gotURL string
	code   string
	err    error
}

func (m *mockShortener) ShortenURL(_ context.Context, input string) (string, error) {
	m.gotURL = input
	return m.code, m.err
}

func newShortenRouter(svc service.URLShortener, logger *zap.SugaredLogger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.ConfigType{BaseAddress: "http://localhost:8080"}
	h := NewShortenHandler(cfg, svc, logger)

	router := gin.New()
	router.POST("/api/create_short_url", h.CreateShortURL)
	router.OPTIONS("/api/create_short_url", h.Preflight)
	return router
}

func TestCreateShortURL(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		svc         *mockShortener
		wantStatus  int
		wantBody    string
		wantSvcURL  string
		skipSvcCall bool
	}{
		{
			name:       "success",
			body:       `{"url":"https://example.com/page"}`,
			svc:        &mockShortener{code: "abc123"},
			wantStatus: http.StatusOK,
			wantBody:   "http://localhost:8080/api/r/abc123",
			wantSvcURL: "https://example.com/page",
		},
		{
			name:       "empty url",
			body:       `{"url":""}`,
			svc:        &mockShortener{err: service.ErrURLRequired},
			wantStatus: http.StatusBadRequest,
			wantBody:   MsgURLRequired,
		},
		{
			name:       "missing field",
			body:       `{}`,
			svc:        &mockShortener{err: service.ErrURLRequired},
			wantStatus: http.StatusBadRequest,
			wantBody:   MsgURLRequired,
		},
		{
			name:       "empty body",
			body:       ``,
			svc:        &mockShortener{err: service.ErrURLRequired},
			wantStatus: http.StatusBadRequest,
			wantBody:   MsgURLRequired,
		},
		{
			name:       "invalid url",
			body:       `{"url":"not a url"}`,
			svc:        &mockShortener{err: service.ErrInvalidURL},
			wantStatus: http.StatusBadRequest,
			wantBody:   MsgInvalidURL,
			wantSvcURL: "not a url",
		},
		{
			name:        "invalid json",
			body:        `{"url":`,
			svc:         &mockShortener{},
			wantStatus:  http.StatusBadRequest,
			wantBody:    MsgInvalidJSON,
			skipSvcCall: true,
		},
		{
			name:       "internal error",
			body:       `{"url":"https://example.com"}`,
			svc:        &mockShortener{err: fmt.Errorf("%w: db is down", service.ErrInternal)},
			wantStatus: http.StatusInternalServerError,
			wantBody:   MsgInternal,
			wantSvcURL: "https://example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newShortenRouter(tt.svc, zap.NewNop().Sugar())

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/create_short_url", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()
			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, res.StatusCode)
			assert.Equal(t, tt.wantBody, string(body))
			assert.True(t, strings.HasPrefix(res.Header.Get("Content-Type"), "text/plain"))
			if tt.wantSvcURL != "" {
				assert.Equal(t, tt.wantSvcURL, tt.svc.gotURL)
			}
			if tt.skipSvcCall {
				assert.Empty(t, tt.svc.gotURL)
			}
		})
	}
}

func TestCreateShortURL_InternalErrorIsLoggedNotLeaked(t *testing.T) {
	core, obs := observer.New(zap.ErrorLevel)
	svc := &mockShortener{err: fmt.Errorf("%w: %w", service.ErrInternal, errors.New("secret connection string"))}
	router := newShortenRouter(svc, zap.New(core).Sugar())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/create_short_url", strings.NewReader(`{"url":"example.com"}`)))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
	require.Equal(t, 1, obs.FilterMessage("Failed to create short URL").Len())
}

func TestPreflight(t *testing.T) {
	router := newShortenRouter(&mockShortener{}, zap.NewNop().Sugar())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/create_short_url", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestCreateShortURL_BodyTooLarge(t *testing.T) {
	svc := &mockShortener{code: "abc123"}
	router := newShortenRouter(svc, zap.NewNop().Sugar())

	body := `{"url":"https://example.com/` + strings.Repeat("a", MaxBodySize) + `"}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/create_short_url", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, MsgBodyTooBig, w.Body.String())
	assert.Empty(t, svc.gotURL)
}
