package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	appprobes "github.com/bryanwahyu/openai-status/internal/application/probes"
	"github.com/bryanwahyu/openai-status/internal/domain/probes"
	"github.com/bryanwahyu/openai-status/internal/middleware"
)

// Prober runs model families and summarizes their timings.
type Prober interface {
	RunAll(ctx context.Context, families, regions []string) (appprobes.Summary, error)
}

type Options struct {
	// used when the request names no model_family / region
	Families []string
	Regions  []string

	HealthCheckers map[string]middleware.HealthChecker
	Log            zerolog.Logger
}

type Router struct {
	prober Prober
	opts   Options
}

// badRequest marks a parameter validation failure
type badRequest struct{ err error }

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

func NewRouter(prober Prober, opts Options) http.Handler {
	r := &Router{prober: prober, opts: opts}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))
	mux.Use(middleware.Logging(opts.Log))
	mux.Use(middleware.MetricsMiddleware)

	mux.Get("/health", middleware.HealthHandler(opts.HealthCheckers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Method(http.MethodGet, "/metrics", middleware.MetricsHandler())

	mux.Route("/api", func(rt chi.Router) {
		rt.Get("/openai_status_run", r.wrap(r.handleRun))
		rt.Post("/openai_status_run", r.wrap(r.handleRun))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var bad badRequest
			if errors.As(err, &bad) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			r.opts.Log.Error().Err(err).Str("trigger", "http").Msg("probe run failed")
			if errors.Is(err, probes.ErrQuotaExceeded) {
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// GET|POST /api/openai_status_run?model_family=gpt-4&region=eastus
// Runs synchronously and answers with the plain-text timing summary.
func (r *Router) handleRun(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()

	families := middleware.SplitList(q["model_family"])
	for _, f := range families {
		if err := middleware.ValidateModelFamily(f); err != nil {
			return badRequest{err}
		}
	}
	if len(families) == 0 {
		families = r.opts.Families
	}

	regions := middleware.SplitList(q["region"])
	for _, reg := range regions {
		if err := middleware.ValidateRegion(reg); err != nil {
			return badRequest{err}
		}
	}
	if len(regions) == 0 {
		regions = r.opts.Regions
	}

	r.opts.Log.Info().Str("trigger", "http").Strs("model_families", families).Strs("regions", regions).Msg("probe run requested")
	sum, err := r.prober.RunAll(req.Context(), families, regions)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err = fmt.Fprint(w, sum.String())
	return err
}
