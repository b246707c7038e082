package adaptor

import (
	"errors"
	"net/http"

	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type MovieHandler struct {
	service    usecase.MovieService
	noPhotoURL string
	log        *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, noPhotoURL string, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service:    service,
		noPhotoURL: noPhotoURL,
		log:        log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListMoviesRequest{
		Page:   utils.ParseInt(query.Get("page"), 1),
		Limit:  utils.ParseInt(query.Get("limit"), 10),
		Search: query.Get("q"),
		Genre:  query.Get("genre"),
	}

	movies, err := h.service.ListMovies(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list movies")
		return
	}

	utils.ResponseSuccess(w, "success", response.MoviesToResponse(movies, h.noPhotoURL))
}

// GetGenres handles GET /api/genres
func (h *MovieHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.Genres())
}

// handleServiceError maps workflow and repository errors to responses.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	var apiErr *repository.APIError

	switch {
	case errors.Is(err, usecase.ErrInvalidForm):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrUnknownField):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, repository.ErrNotFound), errors.Is(err, usecase.ErrDisposed):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrNotReady), errors.Is(err, usecase.ErrBusy):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.As(err, &apiErr):
		log.Error(operation+" failed - movie api", zap.Error(err))
		utils.ResponseBadGateway(w, "Movie API error")

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
