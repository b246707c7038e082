package wire

import (
	"movie-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	// GET /api/genres - genre options for the editor select
	r.Get("/api/genres", movieHandler.GetGenres)

	// GET /api/movies - paged listing, newest first
	r.Get("/api/movies", movieHandler.GetMovies)
}
