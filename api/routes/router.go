package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ristorapos/backoffice-backend/api/controllers"
	"github.com/ristorapos/backoffice-backend/api/middleware"
	"github.com/ristorapos/backoffice-backend/internal/reports"
	"github.com/ristorapos/backoffice-backend/pkg/config"
	"github.com/ristorapos/backoffice-backend/pkg/enums"
	"github.com/ristorapos/backoffice-backend/pkg/logger"
	"github.com/ristorapos/backoffice-backend/pkg/redis"
)

const reportRateLimit = 60 // requests per minute per IP

// Dependencies carries everything the router wires into its handlers.
type Dependencies struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             controllers.Pinger
	Redis          *redis.Client
	ReportsService reports.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	readyDeps := map[string]controllers.Pinger{}
	if deps.DB != nil {
		readyDeps["database"] = deps.DB
	}
	if deps.Redis != nil {
		readyDeps["redis"] = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyDeps))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	limitReports := func(next http.Handler) http.Handler { return next }
	if deps.Redis != nil {
		policy := middleware.NewRateLimitPolicy("reports", time.Minute, reportRateLimit)
		limitReports = middleware.RateLimit(policy, deps.Redis, logg)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/businesses/{businessID}/reports", func(r chi.Router) {
			r.Use(middleware.BusinessScope(logg))
			r.Use(limitReports)

			r.Get("/sales", controllers.SalesReport(deps.ReportsService, logg))
			r.With(middleware.RequireRoles(logg, enums.StaffRoleOwner, enums.StaffRoleManager)).
				Get("/sales/export", controllers.SalesReportExport(deps.ReportsService, logg))
		})
	})

	return r
}
