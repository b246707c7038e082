package adaptor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"github.com/charmbracelet/huh"
	"go.uber.org/zap"
)

const listPageSize = 10

type formRunner func(ctx context.Context, form *huh.Form) error

func runForm(ctx context.Context, form *huh.Form) error {
	return form.RunWithContext(ctx)
}

// TerminalDialog presents dialogs as huh prompts: a note for one button,
// a confirm for two. Ctrl+C closes the dialog.
type TerminalDialog struct {
	theme *huh.Theme
	run   formRunner
}

func NewTerminalDialog() *TerminalDialog {
	return &TerminalDialog{theme: huh.ThemeDracula(), run: runForm}
}

func (d *TerminalDialog) Present(ctx context.Context, req entity.DialogRequest) (bool, error) {
	var (
		accepted bool
		field    huh.Field
	)
	if req.SingleButton() {
		field = huh.NewNote().
			Title(req.Title).
			Description(req.Description).
			Next(true).
			NextLabel(req.AcceptLabel)
	} else {
		field = huh.NewConfirm().
			Title(req.Title).
			Description(req.Description).
			Affirmative(req.AcceptLabel).
			Negative(req.CancelLabel).
			Value(&accepted)
	}

	err := d.run(ctx, huh.NewForm(huh.NewGroup(field)).WithTheme(d.theme))
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return accepted || req.SingleButton(), nil
}

// TerminalNavigator remembers the last route a workflow asked for.
type TerminalNavigator struct {
	mu    sync.Mutex
	route string
}

func (n *TerminalNavigator) GoTo(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.route = route
}

// Take returns the pending route and clears it.
func (n *TerminalNavigator) Take() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	route := n.route
	n.route = ""
	return route, route != ""
}

// Terminal drives the editor, viewer and listing screens with huh forms.
type Terminal struct {
	service    usecase.MovieService
	dialog     usecase.Dialog
	noPhotoURL string
	out        io.Writer
	theme      *huh.Theme
	run        formRunner
	log        *zap.Logger
}

func NewTerminal(service usecase.MovieService, config *utils.Config, out io.Writer, log *zap.Logger) *Terminal {
	return &Terminal{
		service:    service,
		dialog:     NewTerminalDialog(),
		noPhotoURL: config.Catalog.NoPhotoURL,
		out:        out,
		theme:      huh.ThemeDracula(),
		run:        runForm,
		log:        log.With(zap.String("adaptor", "terminal")),
	}
}

// Run follows routes starting at route until a screen returns no route.
func (t *Terminal) Run(ctx context.Context, route string) error {
	routes := t.service.Routes()

	for route != "" {
		target, ok := routes.Parse(route)
		if !ok {
			return fmt.Errorf("unknown route %q", route)
		}
		t.log.Debug("Navigating", zap.String("route", route))

		var err error
		switch target.Screen {
		case usecase.ScreenList:
			route, err = t.List(ctx, &request.ListMoviesRequest{Page: 1, Limit: listPageSize})
		case usecase.ScreenEditor:
			route, err = t.Editor(ctx, target.ID)
		case usecase.ScreenViewer:
			route, err = t.Viewer(ctx, *target.ID)
		}
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Editor runs the register/edit screen and returns the next route.
func (t *Terminal) Editor(ctx context.Context, id *int64) (string, error) {
	nav := &TerminalNavigator{}
	editor := t.service.NewEditor(id, usecase.UI{Dialog: t.dialog, Navigator: nav})
	defer editor.Dispose()

	if err := editor.Load(ctx); err != nil {
		return "", err
	}

	for {
		if err := t.fillForm(ctx, editor); err != nil {
			return "", err
		}

		err := editor.Submit(ctx)
		switch {
		case errors.Is(err, usecase.ErrInvalidForm):
			t.printFormErrors(editor)
			continue
		case errors.Is(err, usecase.ErrPersistenceFailed):
			t.log.Warn("Save failed, form kept", zap.Error(err))
			continue
		case err != nil:
			return "", err
		}

		if route, ok := nav.Take(); ok {
			return route, nil
		}
	}
}

func (t *Terminal) fillForm(ctx context.Context, editor *usecase.EditorWorkflow) error {
	states, err := editor.FormState()
	if err != nil {
		return err
	}

	values := make(map[usecase.Field]*string, len(states))
	for _, s := range states {
		v := s.Value
		values[s.Name] = &v
	}

	validate := func(field usecase.Field) func(string) error {
		return func(s string) error {
			if err := editor.SetField(field, s); err != nil {
				return err
			}
			return fieldError(editor, field)
		}
	}

	title := "Register movie"
	if editor.Mode() == usecase.ModeEdit {
		title = "Edit movie"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description("Between 2 and 256 characters").
				Value(values[usecase.FieldTitle]).
				Validate(validate(usecase.FieldTitle)),

			huh.NewInput().
				Title("Photo URL").
				Description("Optional, at least 10 characters").
				Placeholder("https://").
				Value(values[usecase.FieldPhotoURL]).
				Validate(validate(usecase.FieldPhotoURL)),

			huh.NewInput().
				Title("Release date").
				Placeholder("e.g., 1999-03-31").
				Value(values[usecase.FieldReleaseDate]).
				Validate(validate(usecase.FieldReleaseDate)),

			huh.NewText().
				Title("Synopsis").
				Description("Optional").
				CharLimit(5000).
				Value(values[usecase.FieldSynopsis]).
				Validate(validate(usecase.FieldSynopsis)),
		).Title(title),

		huh.NewGroup(
			huh.NewInput().
				Title("Score").
				Description(fmt.Sprintf("From %d to %d", int(utils.MinScore), int(utils.MaxScore))).
				Value(values[usecase.FieldScore]).
				Validate(validate(usecase.FieldScore)),

			huh.NewInput().
				Title("IMDb URL").
				Description("Optional, at least 10 characters").
				Placeholder("https://www.imdb.com/title/").
				Value(values[usecase.FieldIMDbURL]).
				Validate(validate(usecase.FieldIMDbURL)),

			huh.NewSelect[string]().
				Title("Genre").
				Options(huh.NewOptions(editor.Genres()...)...).
				Value(values[usecase.FieldGenre]).
				Validate(validate(usecase.FieldGenre)),
		),
	).WithTheme(t.theme)

	if err := t.run(ctx, form); err != nil {
		return err
	}

	for _, field := range usecase.FormFields {
		if err := editor.SetField(field, *values[field]); err != nil {
			return err
		}
	}
	return nil
}

func fieldError(editor *usecase.EditorWorkflow, field usecase.Field) error {
	states, err := editor.FormState()
	if err != nil {
		return err
	}
	for _, s := range states {
		if s.Name == field && s.Error != "" {
			return errors.New(s.Error)
		}
	}
	return nil
}

func (t *Terminal) printFormErrors(editor *usecase.EditorWorkflow) {
	states, err := editor.FormState()
	if err != nil {
		return
	}
	for _, s := range states {
		if s.Error != "" {
			fmt.Fprintln(t.out, RenderError(fmt.Errorf("%s: %s", s.Name, s.Error)))
		}
	}
}

const (
	actionEdit   = "edit"
	actionDelete = "delete"
	actionBack   = "back"
)

// Viewer shows one movie with its actions and returns the next route.
func (t *Terminal) Viewer(ctx context.Context, id int64) (string, error) {
	nav := &TerminalNavigator{}
	viewer := t.service.NewViewer(id, usecase.UI{Dialog: t.dialog, Navigator: nav})
	defer viewer.Dispose()

	if err := viewer.Load(ctx); err != nil {
		return "", err
	}

	for {
		if movie, ok := viewer.Movie(); ok {
			fmt.Fprintln(t.out, RenderMovie(response.MovieToResponse(movie, t.noPhotoURL)))
		}

		var action string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("What next?").
					Options(
						huh.NewOption("Edit", actionEdit),
						huh.NewOption("Delete", actionDelete),
						huh.NewOption("Back to listing", actionBack),
					).
					Value(&action),
			),
		).WithTheme(t.theme)

		if err := t.run(ctx, form); err != nil {
			return "", err
		}

		switch action {
		case actionEdit:
			viewer.Edit()
		case actionDelete:
			if err := viewer.Delete(ctx); err != nil && !errors.Is(err, usecase.ErrPersistenceFailed) {
				return "", err
			}
		case actionBack:
			return t.service.Routes().List, nil
		}

		if route, ok := nav.Take(); ok {
			return route, nil
		}
	}
}

const (
	choiceNext = "next"
	choicePrev = "prev"
	choiceQuit = "quit"
)

// List pages through the catalog and returns the route the user picked.
func (t *Terminal) List(ctx context.Context, req *request.ListMoviesRequest) (string, error) {
	routes := t.service.Routes()

	for {
		movies, err := t.service.ListMovies(ctx, req)
		if err != nil {
			return "", err
		}
		fmt.Fprintln(t.out, RenderMovieTable(response.MoviesToResponse(movies, t.noPhotoURL), req.Page))

		options := make([]huh.Option[string], 0, len(movies)+4)
		for _, m := range movies {
			if m.ID == nil {
				continue
			}
			label := "#" + strconv.FormatInt(*m.ID, 10)
			if m.Title != nil {
				label += " " + *m.Title
			}
			options = append(options, huh.NewOption(label, routes.Viewer(*m.ID)))
		}
		options = append(options, huh.NewOption("Register a new movie", routes.NewEditor()))
		if len(movies) == req.Limit {
			options = append(options, huh.NewOption("Next page", choiceNext))
		}
		if req.Page > 1 {
			options = append(options, huh.NewOption("Previous page", choicePrev))
		}
		options = append(options, huh.NewOption("Quit", choiceQuit))

		var choice string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Open").
					Options(options...).
					Value(&choice),
			),
		).WithTheme(t.theme)

		if err := t.run(ctx, form); err != nil {
			return "", err
		}

		switch choice {
		case choiceNext:
			req.Page++
		case choicePrev:
			req.Page--
		case choiceQuit:
			return "", nil
		default:
			return choice, nil
		}
	}
}

var _ usecase.Dialog = (*TerminalDialog)(nil)
var _ usecase.Navigator = (*TerminalNavigator)(nil)
