package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAccessLogLevelFollowsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := AccessLog(zap.New(core))(func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	})

	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/api/tasks/missing/")
	handler(&ctx)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "/api/tasks/missing/", entry.ContextMap()["path"])
	assert.EqualValues(t, fasthttp.StatusNotFound, entry.ContextMap()["status"])
}

func TestRecoverReturnsInternalError(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	handler := Recover(zap.New(core))(func(ctx *fasthttp.RequestCtx) {
		panic("boom")
	})

	var ctx fasthttp.RequestCtx
	assert.NotPanics(t, func() { handler(&ctx) })
	assert.Equal(t, fasthttp.StatusInternalServerError, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "INTERNAL")
	assert.Equal(t, 1, logs.Len())
}
