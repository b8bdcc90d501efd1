package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	Init(Config{Level: level, Format: "json", Output: buf})
	t.Cleanup(func() { Init(Config{Level: "info", Format: "json"}) })
	return buf
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("WARNING"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}

func TestLevelFiltering(t *testing.T) {
	buf := captureLogs(t, "warn")

	Info().Msg("hidden")
	Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestCtx_AddsRequestID(t *testing.T) {
	buf := captureLogs(t, "debug")

	ctx := ContextWithRequestID(context.Background(), "req-42")
	Ctx(ctx).Info().Msg("with id")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-42", line["request_id"])
	assert.Equal(t, "req-42", RequestIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogs(t, "debug")

	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		assert.NotEmpty(t, RequestIDFromContext(c.Request.Context()))
		c.String(http.StatusTeapot, "pong")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	r.ServeHTTP(w, req)

	assert.Equal(t, "fixed-id", w.Header().Get(RequestIDHeader))
	out := buf.String()
	assert.True(t, strings.Contains(out, `"status":418`))
	assert.True(t, strings.Contains(out, `"path":"/ping"`))
	assert.True(t, strings.Contains(out, `"request_id":"fixed-id"`))
}
