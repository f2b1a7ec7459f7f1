package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/taskboard/internal/infrastructure/monitor"
)

type staticStatus monitor.Status

func (s staticStatus) GetStatus() monitor.Status { return monitor.Status(s) }

func TestHealthCheck(t *testing.T) {
	cases := []struct {
		name   string
		status monitor.Status
		code   int
		want   string
	}{
		{"healthy", monitor.Status{Healthy: true, PostgreSQL: true}, http.StatusOK, "success"},
		{"degraded", monitor.Status{Healthy: false}, http.StatusServiceUnavailable, "error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHealthHandler(staticStatus(tc.status), nil, nil)

			var ctx fasthttp.RequestCtx
			h.Check(&ctx)

			assert.Equal(t, tc.code, ctx.Response.StatusCode())
			var env envelope
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &env))
			assert.Equal(t, tc.want, env.Status)
		})
	}
}

func TestPageIndex(t *testing.T) {
	var ctx fasthttp.RequestCtx
	NewPageHandler([]byte("<html></html>"), nil).Index(&ctx)
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "<html></html>", string(ctx.Response.Body()))

	var missing fasthttp.RequestCtx
	NewPageHandler(nil, nil).Index(&missing)
	assert.Equal(t, http.StatusNotFound, missing.Response.StatusCode())
}
