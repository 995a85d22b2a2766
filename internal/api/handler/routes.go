package handler

import (
	"net/http"

	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/portfolio-refresh-api/internal/api/handler/router"
	"github.com/vfg2006/portfolio-refresh-api/pkg/middleware"
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

func Metrics(gatherer prometheus.Gatherer) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		},
	}
}

func Refresh(service RefreshStarter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/refresh",
			Method:      http.MethodPost,
			Handler:     StartRefresh(service),
			Middlewares: []alice.Constructor{middleware.AdminOrSupervisor()},
		},
	}
}

// Snapshots evita rota estática e curinga no mesmo nível, por isso latest-snapshot e snapshot-diff.
func Snapshots(service SnapshotService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/snapshots",
			Method:      http.MethodGet,
			Handler:     ListSnapshotHistory(service),
			Middlewares: []alice.Constructor{middleware.AllRoles()},
		},
		{
			Path:        "/v1/snapshots/:id",
			Method:      http.MethodGet,
			Handler:     GetSnapshot(service),
			Middlewares: []alice.Constructor{middleware.AllRoles()},
		},
		{
			Path:        "/v1/snapshots/:id/status",
			Method:      http.MethodPatch,
			Handler:     SetSnapshotStatus(service),
			Middlewares: []alice.Constructor{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/snapshots/:id/metrics",
			Method:      http.MethodPost,
			Handler:     SaveSnapshotMetrics(service),
			Middlewares: []alice.Constructor{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/snapshots/:id/metrics",
			Method:      http.MethodGet,
			Handler:     GetSnapshotMetrics(service),
			Middlewares: []alice.Constructor{middleware.AllRoles()},
		},
		{
			Path:        "/v1/latest-snapshot",
			Method:      http.MethodGet,
			Handler:     GetLatestSnapshot(service),
			Middlewares: []alice.Constructor{middleware.AllRoles()},
		},
		{
			Path:        "/v1/snapshot-diff",
			Method:      http.MethodGet,
			Handler:     DiffSnapshots(service),
			Middlewares: []alice.Constructor{middleware.AllRoles()},
		},
	}
}

func CronJobs(scheduler RefreshScheduler) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(scheduler),
			Middlewares: []alice.Constructor{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(scheduler),
			Middlewares: []alice.Constructor{middleware.AdminOrSupervisor()},
		},
	}
}
