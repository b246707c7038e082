package usecase

import (
	"context"
	"strconv"
	"sync"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

func ptr[T any](v T) *T { return &v }

type fakeRepo struct {
	mu      sync.Mutex
	movies  map[int64]*entity.Movie
	created []*entity.Movie
	updated []*entity.Movie
	deleted []int64

	findErr   error
	createErr error
	updateErr error
	deleteErr error

	// block, when set, holds every call until it is closed or ctx ends.
	block chan struct{}
}

func newFakeRepo(movies ...*entity.Movie) *fakeRepo {
	r := &fakeRepo{movies: make(map[int64]*entity.Movie)}
	for _, m := range movies {
		r.movies[*m.ID] = m.Clone()
	}
	return r
}

func (r *fakeRepo) wait(ctx context.Context) error {
	if r.block == nil {
		return nil
	}
	select {
	case <-r.block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *fakeRepo) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	m, ok := r.movies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return m.Clone(), nil
}

func (r *fakeRepo) Create(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, movie.Clone())
	if r.createErr != nil {
		return nil, r.createErr
	}
	saved := movie.Clone()
	saved.ID = ptr(int64(100 + len(r.created)))
	return saved, nil
}

func (r *fakeRepo) Update(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, movie.Clone())
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	return movie.Clone(), nil
}

func (r *fakeRepo) Delete(ctx context.Context, id int64) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, id)
	return r.deleteErr
}

func (r *fakeRepo) FindAll(ctx context.Context, filter repository.MovieFilter) ([]*entity.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Movie
	for _, m := range r.movies {
		out = append(out, m.Clone())
	}
	return out, nil
}

// fakeDialog answers each presentation with the next scripted answer
// (false once the script runs out) and records what it was shown.
type fakeDialog struct {
	mu       sync.Mutex
	answers  []bool
	err      error
	requests []entity.DialogRequest
}

func (d *fakeDialog) Present(ctx context.Context, req entity.DialogRequest) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.requests = append(d.requests, req)
	if d.err != nil {
		return false, d.err
	}
	if len(d.answers) == 0 {
		return false, nil
	}
	answer := d.answers[0]
	d.answers = d.answers[1:]
	return answer, nil
}

func (d *fakeDialog) shown() []entity.DialogRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]entity.DialogRequest(nil), d.requests...)
}

type fakeNav struct {
	mu     sync.Mutex
	routes []string
}

func (n *fakeNav) GoTo(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *fakeNav) visited() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.routes...)
}

func newTestService(repo *fakeRepo) MovieService {
	return NewMovieService(
		&repository.Repository{Movie: repo},
		entity.NewGenreCatalog(nil),
		NewRoutes("/movies"),
		zap.NewNop(),
	)
}

func newTestForm() *Form {
	return NewForm(utils.NewValidator(entity.NewGenreCatalog(nil).Contains), nil)
}

func validMovie() *entity.Movie {
	return &entity.Movie{
		Title:       ptr("The Matrix"),
		PhotoURL:    ptr("https://img.example.com/matrix.jpg"),
		ReleaseDate: ptr("1999-03-31"),
		Synopsis:    ptr("A hacker learns the truth."),
		Score:       ptr(8.7),
		IMDbURL:     ptr("https://www.imdb.com/title/tt0133093/"),
		Genre:       ptr("Ficção Científica"),
	}
}

func fillForm(f interface{ SetField(Field, string) error }, m *entity.Movie) error {
	values := map[Field]string{
		FieldTitle:       deref(m.Title),
		FieldPhotoURL:    deref(m.PhotoURL),
		FieldReleaseDate: deref(m.ReleaseDate),
		FieldSynopsis:    deref(m.Synopsis),
		FieldIMDbURL:     deref(m.IMDbURL),
		FieldGenre:       deref(m.Genre),
	}
	if m.Score != nil {
		values[FieldScore] = strconv.FormatFloat(*m.Score, 'f', -1, 64)
	}
	for _, name := range FormFields {
		if err := f.SetField(name, values[name]); err != nil {
			return err
		}
	}
	return nil
}
