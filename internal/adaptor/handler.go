package adaptor

import (
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Movie   *MovieHandler
	Session *SessionHandler
}

func NewHandler(service *usecase.Service, store *SessionStore, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Movie:   NewMovieHandler(service.Movie, config.Catalog.NoPhotoURL, log),
		Session: NewSessionHandler(service.Movie, store, config.Catalog.NoPhotoURL, log),
	}
}
