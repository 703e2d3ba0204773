package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/prepmate/interview-coach/internal/config"
	"github.com/prepmate/interview-coach/internal/document"
	"github.com/prepmate/interview-coach/internal/export"
	"github.com/prepmate/interview-coach/internal/interview"
	"github.com/prepmate/interview-coach/internal/logging"
)

// NewHTTPServer wires the router: health and metrics plus the v1 API surface.
func NewHTTPServer(
	cfg *config.App,
	logger zerolog.Logger,
	interviewHandlers *interview.Handlers,
	documentHandler *document.Handler,
	exportHandler *export.Handler,
) *http.Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/generate-questions", interviewHandlers.GenerateQuestions)
		r.Post("/evaluate-answer", interviewHandlers.EvaluateAnswer)
		r.Post("/extract-document", documentHandler.Extract)
		r.Post("/export-report", exportHandler.ExportReport)
	})

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}
}

// requestLogger logs completed requests and injects the logger into the
// request context for handlers.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			ctx := logging.IntoContext(r.Context(), logger)
			next.ServeHTTP(ww, r.WithContext(ctx))

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request completed")
		})
	}
}
