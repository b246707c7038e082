package usecase

import (
	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Movie MovieService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	genres := entity.NewGenreCatalog(config.Catalog.Genres)
	routes := NewRoutes(config.Catalog.ListRoute)

	return &Service{
		Movie: NewMovieService(repo, genres, routes, log),
	}
}
