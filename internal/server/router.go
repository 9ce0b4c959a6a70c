package server

import (
	"database/sql"
	"net/http"

	"renal-calculator/internal/auth"
	"renal-calculator/internal/calculator"
	"renal-calculator/internal/logging"
	"renal-calculator/internal/storage"

	"github.com/sirupsen/logrus"
)

type Deps struct {
	DB           *sql.DB
	Auth         *auth.Service
	Log          *logrus.Logger
	HistoryLimit int
}

// NewRouter wires every endpoint onto a ServeMux wrapped in request logging.
func NewRouter(d Deps) http.Handler {
	hist := storage.NewHistory(d.DB)
	log := d.Log
	limit := d.HistoryLimit
	if limit <= 0 {
		limit = 50
	}

	required := func(h http.Handler) http.Handler { return auth.Require(d.Auth, log, h) }
	optional := func(h http.Handler) http.Handler { return auth.Optional(d.Auth, log, h) }

	mux := http.NewServeMux()
	mux.Handle("POST /api/v1/register", auth.RegisterHandler(d.Auth, log))
	mux.Handle("POST /api/v1/login", auth.LoginHandler(d.Auth, log))
	mux.Handle("POST /api/v1/logout", required(auth.LogoutHandler(d.Auth, log)))

	mux.Handle("GET /api/v1/calculators", calculator.CatalogHandler(log))
	mux.Handle("GET /api/v1/presets", calculator.PresetsHandler(log))
	mux.Handle("POST /api/v1/crrt/fluid-planning", optional(calculator.FluidPlanningHandler(hist, log)))
	mux.Handle("POST /api/v1/crrt/hyponatremia", optional(calculator.HyponatremiaHandler(hist, log)))
	mux.Handle("POST /api/v1/hd/hyponatremia", optional(calculator.HDHyponatremiaHandler(hist, log)))
	mux.Handle("POST /api/v1/electrolyte-free-water", optional(calculator.EFWHandler(hist, log)))

	mux.Handle("POST /api/v1/calculate", required(calculator.CalculateHandler(hist, log)))
	mux.Handle("GET /api/v1/history", required(calculator.HistoryHandler(hist, log, limit)))

	return logging.Middleware(log, mux)
}
