package usecase

import (
	"context"
	"fmt"
	"sync"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// EditorWorkflow drives the create/edit form of one movie.
type EditorWorkflow struct {
	repo     repository.MovieRepository
	nav      Navigator
	routes   Routes
	genres   entity.GenreCatalog
	validate *validator.Validate
	log      *zap.Logger
	life     *lifecycle
	outcomes *reconciler

	id   *int64
	mode Mode

	mu   sync.Mutex
	form *Form
	busy bool
}

func newEditorWorkflow(
	repo repository.MovieRepository,
	ui UI,
	routes Routes,
	genres entity.GenreCatalog,
	validate *validator.Validate,
	id *int64,
	log *zap.Logger,
) *EditorWorkflow {
	w := &EditorWorkflow{
		repo:     repo,
		nav:      ui.Navigator,
		routes:   routes,
		genres:   genres,
		validate: validate,
		life:     newLifecycle(),
		mode:     ModeCreate,
	}

	if id != nil {
		v := *id
		w.id = &v
		w.mode = ModeEdit
		w.log = log.With(zap.String("mode", string(w.mode)), zap.Int64("movie_id", v))
	} else {
		w.log = log.With(zap.String("mode", string(w.mode)))
		w.form = NewForm(validate, entity.BlankMovie())
	}

	w.outcomes = &reconciler{dialog: ui.Dialog, life: w.life, log: w.log}
	return w
}

func (w *EditorWorkflow) Mode() Mode {
	return w.mode
}

// ID is the identifier being edited, nil in create mode.
func (w *EditorWorkflow) ID() *int64 {
	if w.id == nil {
		return nil
	}
	v := *w.id
	return &v
}

func (w *EditorWorkflow) Genres() []string {
	return w.genres.Names()
}

// Load fetches the movie in edit mode and builds the form from it.
// Create mode is ready from the start and Load does nothing.
func (w *EditorWorkflow) Load(ctx context.Context) error {
	if w.mode == ModeCreate {
		return nil
	}

	ctx, done := w.life.bind(ctx)
	defer done()

	movie, err := w.repo.FindByID(ctx, *w.id)
	if w.life.disposed() {
		return ErrDisposed
	}
	if err != nil {
		w.log.Warn("Failed to load movie for editing", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	w.mu.Lock()
	w.form = NewForm(w.validate, movie)
	w.mu.Unlock()

	w.log.Debug("Movie loaded for editing")
	return nil
}

func (w *EditorWorkflow) Ready() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form != nil
}

func (w *EditorWorkflow) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// FormState returns the current field states, or ErrNotReady before Load.
func (w *EditorWorkflow) FormState() ([]FieldState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.form == nil {
		return nil, ErrNotReady
	}
	return w.form.State(), nil
}

func (w *EditorWorkflow) SetField(field Field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.life.disposed() {
		return ErrDisposed
	}
	if w.form == nil {
		return ErrNotReady
	}
	return w.form.Set(field, value)
}

// ResetForm empties and untouches every field. The mode is kept.
func (w *EditorWorkflow) ResetForm() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.form == nil {
		w.form = NewForm(w.validate, entity.BlankMovie())
		return
	}
	w.form.Reset()
}

// Submit runs SubmitAsync and waits for the whole flow to finish.
func (w *EditorWorkflow) Submit(ctx context.Context) error {
	done, err := w.SubmitAsync(ctx)
	if err != nil {
		return err
	}
	return <-done
}

// SubmitAsync validates synchronously: every field is marked touched and an
// invalid form returns ErrInvalidForm with no other effect. A valid form is
// persisted in the background; the returned channel yields the result once
// the persistence call and its dialog have resolved. ctx governs the
// background part, so it must outlive the caller's request.
func (w *EditorWorkflow) SubmitAsync(ctx context.Context) (<-chan error, error) {
	w.mu.Lock()
	if w.life.disposed() {
		w.mu.Unlock()
		return nil, ErrDisposed
	}
	if w.form == nil {
		w.mu.Unlock()
		return nil, ErrNotReady
	}
	if w.busy {
		w.mu.Unlock()
		return nil, ErrBusy
	}

	w.form.MarkAllAsTouched()
	if errs := w.form.Errors(); len(errs) > 0 {
		w.mu.Unlock()
		w.log.Debug("Submit blocked by validation", zap.Any("errors", errs))
		return nil, ErrInvalidForm
	}

	movie := w.form.RawValue()
	op := OpCreate
	if w.mode == ModeEdit {
		id := *w.id
		movie.ID = &id
		op = OpUpdate
	}
	w.busy = true
	w.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- w.persist(ctx, op, movie)
	}()
	return done, nil
}

func (w *EditorWorkflow) persist(ctx context.Context, op Operation, movie *entity.Movie) error {
	ctx, cancel := w.life.bind(ctx)
	defer cancel()
	defer func() {
		w.mu.Lock()
		w.busy = false
		w.mu.Unlock()
	}()

	var (
		saved *entity.Movie
		err   error
	)
	switch op {
	case OpCreate:
		saved, err = w.repo.Create(ctx, movie)
	case OpUpdate:
		saved, err = w.repo.Update(ctx, movie)
	}

	return w.outcomes.handle(ctx, Outcome{Op: op, Movie: saved, Err: err}, w.flow(op))
}

func (w *EditorWorkflow) flow(op Operation) outcomeFlow {
	switch op {
	case OpCreate:
		return outcomeFlow{
			success: entity.CreatedDialog,
			failure: func() entity.DialogRequest {
				return entity.ErrorDialog(
					"Error saving the record!",
					"We couldn't save your record, please try again later",
				)
			},
			resolved: func(accepted bool) {
				if accepted {
					w.nav.GoTo(w.routes.List)
					return
				}
				w.ResetForm()
			},
		}
	default:
		return outcomeFlow{
			success: entity.UpdatedDialog,
			failure: func() entity.DialogRequest {
				return entity.ErrorDialog(
					"Error editing the record!",
					"We couldn't edit your record, please try again later",
				)
			},
			resolved: func(bool) {
				w.nav.GoTo(w.routes.List)
			},
		}
	}
}

// Dispose ends the workflow. In-flight calls are cancelled and their
// results never reach the form, a dialog or the navigator.
func (w *EditorWorkflow) Dispose() {
	w.life.dispose()
}
