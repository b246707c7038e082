package request

// MovieForm holds the raw, still unvalidated values bound to the movie form.
// Lengths are counted in UTF-16 code units.
type MovieForm struct {
	Title       string `json:"title" form:"title" validate:"required,utf16min=2,utf16max=256"`
	PhotoURL    string `json:"photo_url" form:"photo_url" validate:"omitempty,utf16min=10"`
	ReleaseDate string `json:"release_date" form:"release_date" validate:"required"`
	Synopsis    string `json:"synopsis" form:"synopsis"`
	Score       string `json:"score" form:"score" validate:"required,numeric,score_range"`
	IMDbURL     string `json:"imdb_url" form:"imdb_url" validate:"omitempty,utf16min=10"`
	Genre       string `json:"genre" form:"genre" validate:"required,genre"`
}
