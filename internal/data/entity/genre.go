package entity

import "slices"

// DefaultGenres is used when no genre list is configured.
var DefaultGenres = []string{
	"Ação",
	"Romance",
	"Aventura",
	"Terror",
	"Ficção Científica",
	"Comédia",
	"Drama",
}

// GenreCatalog is the fixed, ordered set of genres a movie may belong to.
type GenreCatalog struct {
	names []string
}

func NewGenreCatalog(names []string) GenreCatalog {
	if len(names) == 0 {
		names = DefaultGenres
	}
	return GenreCatalog{names: slices.Clone(names)}
}

// Names returns a copy of the genre names in catalog order.
func (c GenreCatalog) Names() []string {
	return slices.Clone(c.names)
}

func (c GenreCatalog) Contains(name string) bool {
	return slices.Contains(c.names, name)
}
