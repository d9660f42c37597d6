package handler

import (
	"net/http"

	"github.com/jpcs2004/store-performance-api/internal/api/handler/router"
	"github.com/jpcs2004/store-performance-api/infrastructure/repository"
	"github.com/jpcs2004/store-performance-api/internal/usecases/authenticating"
	"github.com/jpcs2004/store-performance-api/internal/usecases/ranking"
	"github.com/jpcs2004/store-performance-api/internal/usecases/recording"
	"github.com/jpcs2004/store-performance-api/internal/usecases/reporting"
	"github.com/jpcs2004/store-performance-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ExecutiveOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ExecutiveOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ExecutiveOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id/stores",
			Method:      http.MethodPut,
			Handler:     UpdateUserStores(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ExecutiveOnly()},
		},
	}
}

// Entries retorna as rotas de lançamento semanal. O escopo por loja é
// validado na camada de casos de uso, então todos os perfis passam pelo
// middleware de papel mais permissivo.
func Entries(service recording.Recorder) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/entries",
			Method:      http.MethodPost,
			Handler:     CreateEntry(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/entries/import",
			Method:      http.MethodPost,
			Handler:     ImportEntries(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/entries/last-week/:store",
			Method:      http.MethodGet,
			Handler:     GetLastWeek(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/entries/:id",
			Method:      http.MethodPut,
			Handler:     UpdateEntry(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/entries/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteEntry(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/summary",
			Method:      http.MethodGet,
			Handler:     GetDashboardSummary(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/time-series",
			Method:      http.MethodGet,
			Handler:     GetTimeSeries(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/time-series/by-store",
			Method:      http.MethodGet,
			Handler:     GetTimeSeriesByStore(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/store-performance",
			Method:      http.MethodGet,
			Handler:     GetStorePerformance(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/entries",
			Method:      http.MethodGet,
			Handler:     GetDetailedEntries(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/export",
			Method:      http.MethodGet,
			Handler:     ExportReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Stores(storeRepo repository.StoreRepository, rankingService ranking.RankingService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/stores",
			Method:      http.MethodGet,
			Handler:     ListStores(storeRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/stores/ranking",
			Method:      http.MethodGet,
			Handler:     GetStoreRanking(rankingService),
			Middlewares: []func(http.Handler) http.Handler{middleware.ExecutiveOrBookkeeper()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.ExecutiveOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.ExecutiveOnly()},
		},
	}
}
