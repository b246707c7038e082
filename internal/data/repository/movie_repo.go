package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/apiclient"

	"go.uber.org/zap"
)

// MovieFilter narrows a listing. Zero values mean "no filter".
type MovieFilter struct {
	Page   int
	Limit  int
	Search string
	Genre  string
}

type MovieRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	Create(ctx context.Context, movie *entity.Movie) (*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) (*entity.Movie, error)
	Delete(ctx context.Context, id int64) error
	FindAll(ctx context.Context, filter MovieFilter) ([]*entity.Movie, error)
}

type movieRepository struct {
	client   *apiclient.Client
	resource string
	log      *zap.Logger
}

func NewMovieRepository(client *apiclient.Client, resource string, log *zap.Logger) MovieRepository {
	if resource == "" {
		resource = "filmes"
	}
	return &movieRepository{
		client:   client,
		resource: resource,
		log:      log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	var movie entity.Movie
	target := r.client.URL(nil, r.resource, strconv.FormatInt(id, 10))
	err := r.client.Retry(ctx, func() error {
		return r.do(ctx, http.MethodGet, target, nil, &movie)
	})
	if err != nil {
		r.log.Warn("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("find movie %d: %w", id, err)
	}

	return &movie, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	if movie.Persisted() {
		return nil, fmt.Errorf("create movie: already has id %d", *movie.ID)
	}

	var created entity.Movie
	if err := r.do(ctx, http.MethodPost, r.client.URL(nil, r.resource), movie, &created); err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.Stringp("title", movie.Title),
		)
		return nil, fmt.Errorf("create movie: %w", err)
	}

	r.log.Info("Movie created", zap.Int64p("movie_id", created.ID))
	return &created, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	if !movie.Persisted() {
		return nil, fmt.Errorf("update movie: missing id")
	}

	var updated entity.Movie
	target := r.client.URL(nil, r.resource, strconv.FormatInt(*movie.ID, 10))
	if err := r.do(ctx, http.MethodPut, target, movie, &updated); err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("movie_id", *movie.ID),
		)
		return nil, fmt.Errorf("update movie %d: %w", *movie.ID, err)
	}

	r.log.Info("Movie updated", zap.Int64("movie_id", *movie.ID))
	return &updated, nil
}

func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	if err := r.do(ctx, http.MethodDelete, r.client.URL(nil, r.resource, strconv.FormatInt(id, 10)), nil, nil); err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("delete movie %d: %w", id, err)
	}

	r.log.Info("Movie deleted", zap.Int64("movie_id", id))
	return nil
}

func (r *movieRepository) FindAll(ctx context.Context, filter MovieFilter) ([]*entity.Movie, error) {
	query := url.Values{}
	query.Set("_sort", "id")
	query.Set("_order", "desc")
	if filter.Page > 0 {
		query.Set("_page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		query.Set("_limit", strconv.Itoa(filter.Limit))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		query.Set("q", s)
	}
	if g := strings.TrimSpace(filter.Genre); g != "" {
		query.Set("genero", g)
	}

	var movies []*entity.Movie
	target := r.client.URL(query, r.resource)
	err := r.client.Retry(ctx, func() error {
		movies = nil
		return r.do(ctx, http.MethodGet, target, nil, &movies)
	})
	if err != nil {
		r.log.Error("Failed to list movies",
			zap.Error(err),
			zap.Int("page", filter.Page),
			zap.Int("limit", filter.Limit),
		)
		return nil, fmt.Errorf("list movies: %w", err)
	}

	r.log.Debug("Movies found",
		zap.Int("count", len(movies)),
		zap.Int("page", filter.Page),
	)

	return movies, nil
}

// do sends body as JSON and decodes a 2xx answer into out (when non-nil).
func (r *movieRepository) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
