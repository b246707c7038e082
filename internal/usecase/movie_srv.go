package usecase

import (
	"context"
	"fmt"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/pkg/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type MovieService interface {
	Genres() []string
	Routes() Routes
	ListMovies(ctx context.Context, req *request.ListMoviesRequest) ([]*entity.Movie, error)
	// NewEditor starts an editor; a nil id means create mode.
	NewEditor(id *int64, ui UI) *EditorWorkflow
	NewViewer(id int64, ui UI) *ViewerWorkflow
}

type movieService struct {
	repo     *repository.Repository
	genres   entity.GenreCatalog
	routes   Routes
	validate *validator.Validate
	log      *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	genres entity.GenreCatalog,
	routes Routes,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:     repo,
		genres:   genres,
		routes:   routes,
		validate: utils.NewValidator(genres.Contains),
		log:      log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) Genres() []string {
	return s.genres.Names()
}

func (s *movieService) Routes() Routes {
	return s.routes
}

func (s *movieService) ListMovies(ctx context.Context, req *request.ListMoviesRequest) ([]*entity.Movie, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("List movies validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidForm, utils.FormatValidationErrors(errs))
	}

	movies, err := s.repo.Movie.FindAll(ctx, repository.MovieFilter{
		Page:   req.Page,
		Limit:  req.Limit,
		Search: req.Search,
		Genre:  req.Genre,
	})
	if err != nil {
		s.log.Error("Failed to list movies",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("limit", req.Limit),
		)
		return nil, fmt.Errorf("list movies: %w", err)
	}

	s.log.Info("Movies listed",
		zap.Int("count", len(movies)),
		zap.Int("page", req.Page),
	)
	return movies, nil
}

func (s *movieService) NewEditor(id *int64, ui UI) *EditorWorkflow {
	return newEditorWorkflow(s.repo.Movie, ui, s.routes, s.genres, s.validate, id, s.log.With(zap.String("workflow", "editor")))
}

func (s *movieService) NewViewer(id int64, ui UI) *ViewerWorkflow {
	return newViewerWorkflow(s.repo.Movie, ui, s.routes, id, s.log.With(zap.String("workflow", "viewer")))
}
