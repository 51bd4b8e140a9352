package app

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"worldtests/internal/app/observability"
	"worldtests/internal/events"
	"worldtests/internal/exam"
	"worldtests/internal/question"
)

// Deps are the connections built by main. Redis is optional.
type Deps struct {
	DB        *sql.DB
	Redis     *redis.Client
	Publisher events.Publisher
	Logger    *zap.Logger
}

func NewRouter(cfg Config, deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := prometheus.NewRegistry()
	collector := observability.NewCollector(registry, deps.DB, logger.Named("http"))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(collector.Middleware)

	var store question.Store = question.NewPostgresStore(deps.DB)
	if deps.Redis != nil {
		store = question.NewCachedStore(store, question.NewRedisBackend(deps.Redis), cfg.QuestionCacheTTL, logger.Named("cache"))
	}

	examSvc := exam.NewService(store, exam.ServiceConfig{
		Publisher: deps.Publisher,
		Metrics:   exam.NewMetrics(registry),
		Logger:    logger.Named("exam"),
	})
	examHandler := exam.NewHandler(examSvc)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	r.Handle("/metrics", collector.MetricsHandler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/tests/{testID}/questions", examHandler.ListQuestions)
		api.Post("/tests/{testID}/check", examHandler.Check)
	})

	return r
}
