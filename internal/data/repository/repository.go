package repository

import (
	"movie-catalog/pkg/apiclient"

	"go.uber.org/zap"
)

type Repository struct {
	Movie MovieRepository
}

func NewRepository(client *apiclient.Client, resource string, log *zap.Logger) *Repository {
	return &Repository{
		Movie: NewMovieRepository(client, resource, log),
	}
}
