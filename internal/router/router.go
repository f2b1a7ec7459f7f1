package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/taskboard/api/handler"
)

type Handlers struct {
	Task      *apiHandler.TaskHandler
	Dashboard *apiHandler.DashboardHandler
	Health    *apiHandler.HealthHandler
	Page      *apiHandler.PageHandler
}

// Middleware wraps every route handler.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

func New(handlers Handlers, middlewares ...Middleware) *router.Router {
	r := router.New()

	wrap := func(h fasthttp.RequestHandler) fasthttp.RequestHandler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			h = middlewares[i](h)
		}
		return h
	}

	r.GET("/health", wrap(handlers.Health.Check))
	r.GET("/", wrap(handlers.Page.Index))

	// Aggregates
	r.GET("/api/tasks/statistics/", wrap(handlers.Dashboard.Statistics))
	r.GET("/api/tasks/weather_summary/", wrap(handlers.Dashboard.WeatherSummary))
	r.GET("/api/tasks/dashboard/", wrap(handlers.Dashboard.Dashboard))

	// Tasks
	r.GET("/api/tasks/", wrap(handlers.Task.ListTasks))
	r.POST("/api/tasks/", wrap(handlers.Task.CreateTask))
	r.GET("/api/tasks/{id}/", wrap(handlers.Task.GetTask))
	r.PUT("/api/tasks/{id}/", wrap(handlers.Task.UpdateTask))
	r.PATCH("/api/tasks/{id}/", wrap(handlers.Task.PatchTask))
	r.DELETE("/api/tasks/{id}/", wrap(handlers.Task.DeleteTask))
	r.POST("/api/tasks/{id}/refresh_weather/", wrap(handlers.Task.RefreshWeather))

	return r
}
