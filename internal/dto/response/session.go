package response

import "movie-catalog/internal/data/entity"

type FieldResponse struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Touched bool   `json:"touched"`
	Valid   bool   `json:"valid"`
	Error   string `json:"error,omitempty"`
}

// SessionResponse is everything the browser needs to redraw a workflow view.
type SessionResponse struct {
	ID        string                `json:"id"`
	Kind      string                `json:"kind"`
	Mode      string                `json:"mode,omitempty"`
	MovieID   *int64                `json:"movie_id,omitempty"`
	Ready     bool                  `json:"ready"`
	Busy      bool                  `json:"busy"`
	FormValid *bool                 `json:"form_valid,omitempty"`
	Form      []FieldResponse       `json:"form,omitempty"`
	Genres    []string              `json:"genres,omitempty"`
	Movie     *MovieResponse        `json:"movie,omitempty"`
	Dialog    *entity.DialogRequest `json:"dialog,omitempty"`
	Route     string                `json:"route"`
	Error     string                `json:"error,omitempty"`
}
