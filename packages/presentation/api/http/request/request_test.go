package request

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"warehouse/packages/common/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const firefox = "Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0"

func TestMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/warehouses/", nil)
	req.Header.Set("User-Agent", firefox)
	rec := httptest.NewRecorder()
	rec.Header().Set(echo.HeaderXRequestID, "req-1")

	ctx := echo.New().NewContext(req, rec)

	var meta logger.Meta
	handler := Middleware(func(ctx echo.Context) error {
		meta = GetMetadata(ctx)
		return nil
	})

	require.NoError(t, handler(ctx))

	assert.Equal(t, http.MethodGet, meta["method"])
	assert.Equal(t, "/warehouses/", meta["path"])
	assert.Equal(t, "req-1", meta["request_id"])
	assert.Equal(t, "Firefox", meta["browser"])
	assert.Equal(t, "Linux", meta["os"])
	assert.Equal(t, "desktop", meta["device"])
}

func TestMiddlewareWithoutUserAgent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Del("User-Agent")
	ctx := echo.New().NewContext(req, httptest.NewRecorder())

	var meta logger.Meta
	handler := Middleware(func(ctx echo.Context) error {
		meta = GetMetadata(ctx)
		return nil
	})

	require.NoError(t, handler(ctx))

	assert.NotContains(t, meta, "request_id")
	assert.NotContains(t, meta, "device")
}
