package response

import "movie-catalog/internal/data/entity"

type MovieResponse struct {
	ID          *int64   `json:"id"`
	Title       string   `json:"title"`
	PhotoURL    string   `json:"photo_url"`
	HasPhoto    bool     `json:"has_photo"`
	ReleaseDate string   `json:"release_date"`
	Synopsis    string   `json:"synopsis,omitempty"`
	Score       *float64 `json:"score"`
	IMDbURL     string   `json:"imdb_url,omitempty"`
	Genre       string   `json:"genre"`
}

// MovieToResponse flattens a movie for display; a missing photo is replaced by noPhotoURL.
func MovieToResponse(movie *entity.Movie, noPhotoURL string) MovieResponse {
	resp := MovieResponse{
		ID:          movie.ID,
		Title:       value(movie.Title),
		PhotoURL:    value(movie.PhotoURL),
		ReleaseDate: value(movie.ReleaseDate),
		Synopsis:    value(movie.Synopsis),
		Score:       movie.Score,
		IMDbURL:     value(movie.IMDbURL),
		Genre:       value(movie.Genre),
	}
	resp.HasPhoto = resp.PhotoURL != ""
	if !resp.HasPhoto {
		resp.PhotoURL = noPhotoURL
	}
	return resp
}

func MoviesToResponse(movies []*entity.Movie, noPhotoURL string) []MovieResponse {
	out := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		out[i] = MovieToResponse(movie, noPhotoURL)
	}
	return out
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
