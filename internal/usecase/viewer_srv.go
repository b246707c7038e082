package usecase

import (
	"context"
	"fmt"
	"sync"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"

	"go.uber.org/zap"
)

// ViewerWorkflow shows one movie read-only and offers delete and edit.
type ViewerWorkflow struct {
	repo     repository.MovieRepository
	nav      Navigator
	routes   Routes
	log      *zap.Logger
	life     *lifecycle
	outcomes *reconciler

	id int64

	mu    sync.Mutex
	movie *entity.Movie
	busy  bool
}

func newViewerWorkflow(repo repository.MovieRepository, ui UI, routes Routes, id int64, log *zap.Logger) *ViewerWorkflow {
	w := &ViewerWorkflow{
		repo:   repo,
		nav:    ui.Navigator,
		routes: routes,
		log:    log.With(zap.Int64("movie_id", id)),
		life:   newLifecycle(),
		id:     id,
	}
	w.outcomes = &reconciler{dialog: ui.Dialog, life: w.life, log: w.log}
	return w
}

func (w *ViewerWorkflow) ID() int64 {
	return w.id
}

func (w *ViewerWorkflow) Load(ctx context.Context) error {
	ctx, done := w.life.bind(ctx)
	defer done()

	movie, err := w.repo.FindByID(ctx, w.id)
	if w.life.disposed() {
		return ErrDisposed
	}
	if err != nil {
		w.log.Warn("Failed to load movie", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	w.mu.Lock()
	w.movie = movie
	w.mu.Unlock()
	return nil
}

// Movie returns a copy of the loaded movie; false while still unloaded.
func (w *ViewerWorkflow) Movie() (*entity.Movie, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.movie == nil {
		return nil, false
	}
	return w.movie.Clone(), true
}

func (w *ViewerWorkflow) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// Delete asks for confirmation and, if given, deletes the movie and goes
// back to the listing. Cancelling or closing the dialog does nothing.
func (w *ViewerWorkflow) Delete(ctx context.Context) error {
	w.mu.Lock()
	if w.life.disposed() {
		w.mu.Unlock()
		return ErrDisposed
	}
	if w.busy {
		w.mu.Unlock()
		return ErrBusy
	}
	w.busy = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.busy = false
		w.mu.Unlock()
	}()

	ctx, done := w.life.bind(ctx)
	defer done()

	accepted, err := w.outcomes.present(ctx, entity.ConfirmDeleteDialog())
	if err != nil {
		return err
	}
	if !accepted {
		w.log.Debug("Delete cancelled")
		return nil
	}

	err = w.repo.Delete(ctx, w.id)
	return w.outcomes.handle(ctx, Outcome{Op: OpDelete, Err: err}, outcomeFlow{
		failure: func() entity.DialogRequest {
			return entity.ErrorDialog(
				"Error deleting the record!",
				"We couldn't delete your record, please try again later",
			)
		},
		resolved: func(bool) {
			w.nav.GoTo(w.routes.List)
		},
	})
}

// Edit navigates to the editor of the viewed movie.
func (w *ViewerWorkflow) Edit() {
	if w.life.disposed() {
		return
	}
	w.nav.GoTo(w.routes.Editor(w.id))
}

func (w *ViewerWorkflow) Dispose() {
	w.life.dispose()
}
