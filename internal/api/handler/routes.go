package handler

import (
	"net/http"

	"github.com/vfg2006/attribution-api/internal/api/handler/router"
	"github.com/vfg2006/attribution-api/internal/usecases/attributing"
	"github.com/vfg2006/attribution-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Attribution(service attributing.Attributor) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/attribution/models",
			Method:      http.MethodGet,
			Handler:     ListModels(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/attribution/run-all",
			Method:      http.MethodPost,
			Handler:     RunAllAttribution(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.CanRunAttribution()},
		},
		{
			Path:        "/v1/attribution/models/:model/run",
			Method:      http.MethodPost,
			Handler:     RunAttribution(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.CanRunAttribution()},
		},
		{
			Path:        "/v1/attribution/models/:model/latest",
			Method:      http.MethodGet,
			Handler:     GetLatestAttribution(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/attribution/models/:model/runs",
			Method:      http.MethodGet,
			Handler:     ListAttributionRuns(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
