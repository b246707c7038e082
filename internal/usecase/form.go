package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/request"
	"movie-catalog/pkg/utils"

	"github.com/go-playground/validator/v10"
)

type Field string

const (
	FieldTitle       Field = "title"
	FieldPhotoURL    Field = "photo_url"
	FieldReleaseDate Field = "release_date"
	FieldSynopsis    Field = "synopsis"
	FieldScore       Field = "score"
	FieldIMDbURL     Field = "imdb_url"
	FieldGenre       Field = "genre"
)

// FormFields lists the form fields in display order.
var FormFields = []Field{
	FieldTitle,
	FieldPhotoURL,
	FieldReleaseDate,
	FieldSynopsis,
	FieldScore,
	FieldIMDbURL,
	FieldGenre,
}

// FieldState is the presentation view of one field.
type FieldState struct {
	Name    Field  `json:"name"`
	Value   string `json:"value"`
	Touched bool   `json:"touched"`
	Valid   bool   `json:"valid"`
	Error   string `json:"error,omitempty"`
}

// Form binds movie fields to raw values. Validity is computed on demand,
// never cached. Not safe for concurrent use.
type Form struct {
	validate *validator.Validate
	values   request.MovieForm
	touched  map[Field]bool
	// null holds fields whose source value was absent and has not been
	// changed since, so RawValue can tell nil apart from "".
	null map[Field]bool
}

func NewForm(v *validator.Validate, movie *entity.Movie) *Form {
	f := &Form{validate: v, touched: make(map[Field]bool), null: make(map[Field]bool)}
	if movie == nil {
		movie = entity.BlankMovie()
	}
	for name, absent := range map[Field]bool{
		FieldTitle:       movie.Title == nil,
		FieldPhotoURL:    movie.PhotoURL == nil,
		FieldReleaseDate: movie.ReleaseDate == nil,
		FieldSynopsis:    movie.Synopsis == nil,
		FieldScore:       movie.Score == nil,
		FieldIMDbURL:     movie.IMDbURL == nil,
		FieldGenre:       movie.Genre == nil,
	} {
		if absent {
			f.null[name] = true
		}
	}
	f.values = request.MovieForm{
		Title:       deref(movie.Title),
		PhotoURL:    deref(movie.PhotoURL),
		ReleaseDate: deref(movie.ReleaseDate),
		Synopsis:    deref(movie.Synopsis),
		IMDbURL:     deref(movie.IMDbURL),
		Genre:       deref(movie.Genre),
	}
	if movie.Score != nil {
		f.values.Score = strconv.FormatFloat(*movie.Score, 'f', -1, 64)
	}
	return f
}

func (f *Form) slot(name Field) (*string, error) {
	switch name {
	case FieldTitle:
		return &f.values.Title, nil
	case FieldPhotoURL:
		return &f.values.PhotoURL, nil
	case FieldReleaseDate:
		return &f.values.ReleaseDate, nil
	case FieldSynopsis:
		return &f.values.Synopsis, nil
	case FieldScore:
		return &f.values.Score, nil
	case FieldIMDbURL:
		return &f.values.IMDbURL, nil
	case FieldGenre:
		return &f.values.Genre, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Set binds value to the field and marks it touched. Rebinding the
// current value keeps an absent field absent.
func (f *Form) Set(name Field, value string) error {
	slot, err := f.slot(name)
	if err != nil {
		return err
	}
	if *slot != value {
		delete(f.null, name)
	}
	*slot = value
	f.touched[name] = true
	return nil
}

func (f *Form) Value(name Field) (string, error) {
	slot, err := f.slot(name)
	if err != nil {
		return "", err
	}
	return *slot, nil
}

func (f *Form) MarkAllAsTouched() {
	for _, name := range FormFields {
		f.touched[name] = true
	}
}

// Errors validates the current values and returns one message per invalid field.
func (f *Form) Errors() map[Field]string {
	raw := utils.ValidateWith(f.validate, f.values)
	if len(raw) == 0 {
		return nil
	}
	errs := make(map[Field]string, len(raw))
	for name, msg := range raw {
		errs[Field(name)] = msg
	}
	return errs
}

func (f *Form) Valid() bool {
	return len(f.Errors()) == 0
}

// State reports every field. Error messages only surface on touched fields.
func (f *Form) State() []FieldState {
	errs := f.Errors()
	states := make([]FieldState, 0, len(FormFields))
	for _, name := range FormFields {
		value, _ := f.Value(name)
		msg, invalid := errs[name]
		state := FieldState{
			Name:    name,
			Value:   value,
			Touched: f.touched[name],
			Valid:   !invalid,
		}
		if invalid && state.Touched {
			state.Error = msg
		}
		states = append(states, state)
	}
	return states
}

// Reset empties every field and clears the touched marks.
func (f *Form) Reset() {
	f.values = request.MovieForm{}
	f.touched = make(map[Field]bool)
	f.null = make(map[Field]bool, len(FormFields))
	for _, name := range FormFields {
		f.null[name] = true
	}
}

// RawValue converts the bound values into a movie without an identifier.
// Only fields that are still absent become nil, so an untouched record
// converts back unchanged, empty strings included.
func (f *Form) RawValue() *entity.Movie {
	movie := &entity.Movie{
		Title:       f.raw(FieldTitle, f.values.Title),
		PhotoURL:    f.raw(FieldPhotoURL, f.values.PhotoURL),
		ReleaseDate: f.raw(FieldReleaseDate, f.values.ReleaseDate),
		Synopsis:    f.raw(FieldSynopsis, f.values.Synopsis),
		IMDbURL:     f.raw(FieldIMDbURL, f.values.IMDbURL),
		Genre:       f.raw(FieldGenre, f.values.Genre),
	}
	if f.null[FieldScore] {
		return movie
	}
	if score, err := strconv.ParseFloat(strings.TrimSpace(f.values.Score), 64); err == nil {
		movie.Score = &score
	}
	return movie
}

func (f *Form) raw(name Field, value string) *string {
	if f.null[name] {
		return nil
	}
	return &value
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
