package handler

import (
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// PageHandler serves the dashboard HTML page.
type PageHandler struct {
	page   []byte
	logger *zap.Logger
}

func NewPageHandler(page []byte, logger *zap.Logger) *PageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageHandler{page: page, logger: logger}
}

// @Summary Dashboard page
// @Tags dashboard
// @Router / [get]
func (h *PageHandler) Index(ctx *fasthttp.RequestCtx) {
	if len(h.page) == 0 {
		ctx.Error("dashboard page unavailable", fasthttp.StatusNotFound)
		return
	}
	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(h.page)
}
