package entity

// Movie is a catalog record as served by the remote API.
// Every field is nullable: a blank movie (all nil) backs the create form.
type Movie struct {
	ID          *int64   `json:"id"`
	Title       *string  `json:"titulo"`
	PhotoURL    *string  `json:"urlFoto"`
	ReleaseDate *string  `json:"dtLancamento"`
	Synopsis    *string  `json:"descricao"`
	Score       *float64 `json:"nota"`
	IMDbURL     *string  `json:"urlIMDb"`
	Genre       *string  `json:"genero"`
}

// BlankMovie returns an unsaved movie with every field unset.
func BlankMovie() *Movie {
	return &Movie{}
}

// Persisted reports whether the movie already has an identifier.
func (m *Movie) Persisted() bool {
	return m != nil && m.ID != nil
}

// Clone returns a deep copy so callers can't mutate shared pointers.
func (m *Movie) Clone() *Movie {
	if m == nil {
		return nil
	}
	return &Movie{
		ID:          clonePtr(m.ID),
		Title:       clonePtr(m.Title),
		PhotoURL:    clonePtr(m.PhotoURL),
		ReleaseDate: clonePtr(m.ReleaseDate),
		Synopsis:    clonePtr(m.Synopsis),
		Score:       clonePtr(m.Score),
		IMDbURL:     clonePtr(m.IMDbURL),
		Genre:       clonePtr(m.Genre),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
