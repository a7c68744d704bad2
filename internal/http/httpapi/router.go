package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"imageprocessor/internal/http/handlers"
	"imageprocessor/internal/infra"
	"imageprocessor/internal/middleware"
)

// Options tunes the middleware stack.
type Options struct {
	Logger          infra.Logger
	RateLimitPerMin int
	AllowedOrigins  []string
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
	)

	r.Get("/v1/healthz", app.Health)

	r.Group(func(r chi.Router) {
		if opts.RateLimitPerMin > 0 {
			r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
		}
		r.Post("/v1/images/process", app.ProcessImage)

		if app.Jobs != nil {
			r.Route("/v1/jobs", func(r chi.Router) {
				r.Post("/", app.EnqueueJob)
				r.Get("/{id}", app.GetJob)
			})
		}
		if app.Uploads != nil {
			r.Post("/v1/uploads/presign", app.PresignUpload)
		}
	})

	return r
}
