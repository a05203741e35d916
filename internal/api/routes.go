package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgreenbaum/luach-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET /health                                 liveness + database check
//	GET /api/v1/today                           today's Hebrew date and events
//	GET /api/v1/hebrew/{date}                   civil -> Hebrew conversion
//	GET /api/v1/civil/{year}/{month}/{day}      Hebrew -> civil conversion
//	GET /api/v1/years/{year}                    year profile (leap, length, months)
//	GET /api/v1/years/{year}/events             holiday table for a Hebrew year
//	GET /api/v1/years/{year}/events.ics         the same table as an iCalendar feed
//	GET /api/v1/years/{year}/parsha             Torah reading schedule
//	GET /api/v1/grid/{year}/{month}             civil month grid with Hebrew labels
//
// Event and grid endpoints accept ?observance=diaspora|israel.
func SetupRoutes(handlers *Handlers, cfg *config.Config, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(RecoveryMiddleware(log))
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(log))
	r.Use(CORSMiddleware())

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(cfg, log))

		r.Get("/today", handlers.GetToday)
		r.Get("/hebrew/{date}", handlers.ConvertCivilDate)
		r.Get("/civil/{year}/{month}/{day}", handlers.ConvertHebrewDate)

		r.Route("/years/{year}", func(r chi.Router) {
			r.Get("/", handlers.GetYearProfile)
			r.Get("/events", handlers.GetYearEvents)
			r.Get("/events.ics", handlers.GetYearEventsICS)
			r.Get("/parsha", handlers.GetParshaSchedule)
		})

		r.Get("/grid/{year}/{month}", handlers.GetMonthGrid)
	})

	return r
}
