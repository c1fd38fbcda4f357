package router

import (
	"net/http"

	mem "vet-clinic-records/internal/adapters/storage/memory"
	"vet-clinic-records/internal/domain/animals"
	"vet-clinic-records/internal/middleware"
	"vet-clinic-records/internal/platform/logger"

	_ "vet-clinic-records/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene nil, usa el repo in-memory con datos de referencia (modo dev).
	Repo animals.Repository

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	repo := opts.Repo
	if repo == nil {
		log.Warn("no database configured, using seeded in-memory repository", nil)
		repo = mem.NewSeededAnimalsRepo()
	}

	animalsSvc := animals.NewService(repo, log)
	animals.RegisterRoutes(r, animalsSvc, log)

	return r
}
