package wire

import (
	"net/http"

	"movie-catalog/internal/adaptor"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/middleware"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router and the background pieces the server runs.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
	Store   *adaptor.SessionStore
	Limiter *middleware.RateLimiter
}

// Wiring builds services, handlers and the router.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	store := adaptor.NewSessionStore(logger)
	limiter := middleware.NewRateLimiter(config.RateLimit, logger)
	handler := adaptor.NewHandler(service, store, config, logger)

	router := setupRouter(handler, store, limiter, logger)

	return &App{
		Router:  router,
		Service: service,
		Store:   store,
		Limiter: limiter,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	store *adaptor.SessionStore,
	limiter *middleware.RateLimiter,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(limiter.Handler)

	wireMovie(r, handler.Movie)
	wireSession(r, handler.Session, store, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
