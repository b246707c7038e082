package usecase

import (
	"strings"
	"testing"

	"movie-catalog/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm(t *testing.T) *Form {
	t.Helper()
	f := NewForm(newTestForm().validate, validMovie())
	require.True(t, f.Valid(), "errors: %v", f.Errors())
	return f
}

func TestForm_TitleLength(t *testing.T) {
	tests := []struct {
		name  string
		title string
		valid bool
	}{
		{"empty", "", false},
		{"one rune", "A", false},
		{"two runes", "Up", true},
		{"256 runes", strings.Repeat("x", 256), true},
		{"257 runes", strings.Repeat("x", 257), false},
		{"multibyte", "Ação", true},
		{"one emoji is two units", "😀", true},
		{"128 emoji", strings.Repeat("😀", 128), true},
		{"129 emoji", strings.Repeat("😀", 129), false},
		{"255 units plus emoji", strings.Repeat("x", 255) + "😀", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm(t)
			require.NoError(t, f.Set(FieldTitle, tt.title))
			_, invalid := f.Errors()[FieldTitle]
			assert.Equal(t, !tt.valid, invalid)
			assert.Equal(t, tt.valid, f.Valid())
		})
	}
}

func TestForm_ScoreRange(t *testing.T) {
	tests := []struct {
		score string
		valid bool
	}{
		{"0", true},
		{"10", true},
		{"5.5", true},
		{"-1", false},
		{"10.5", false},
		{"11", false},
		{"abc", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			f := validForm(t)
			require.NoError(t, f.Set(FieldScore, tt.score))
			assert.Equal(t, tt.valid, f.Valid(), "errors: %v", f.Errors())
		})
	}
}

func TestForm_OptionalURLs(t *testing.T) {
	for _, field := range []Field{FieldPhotoURL, FieldIMDbURL} {
		t.Run(string(field), func(t *testing.T) {
			f := validForm(t)

			require.NoError(t, f.Set(field, ""))
			assert.True(t, f.Valid())

			require.NoError(t, f.Set(field, "http://a"))
			assert.False(t, f.Valid())

			require.NoError(t, f.Set(field, "http://abc"))
			assert.True(t, f.Valid())
		})
	}
}

func TestForm_RequiredFields(t *testing.T) {
	for _, field := range []Field{FieldTitle, FieldReleaseDate, FieldScore, FieldGenre} {
		t.Run(string(field), func(t *testing.T) {
			f := validForm(t)
			require.NoError(t, f.Set(field, ""))
			assert.Equal(t, "This field is required", f.Errors()[field])
		})
	}

	f := validForm(t)
	require.NoError(t, f.Set(FieldSynopsis, ""))
	assert.True(t, f.Valid())
}

func TestForm_GenreMustBeInCatalog(t *testing.T) {
	f := validForm(t)

	require.NoError(t, f.Set(FieldGenre, "Polka"))
	assert.False(t, f.Valid())

	require.NoError(t, f.Set(FieldGenre, "Drama"))
	assert.True(t, f.Valid())
}

func TestForm_UnknownField(t *testing.T) {
	f := newTestForm()
	assert.ErrorIs(t, f.Set("id", "7"), ErrUnknownField)
}

func TestForm_StateShowsErrorsOnlyWhenTouched(t *testing.T) {
	f := newTestForm()

	for _, s := range f.State() {
		assert.False(t, s.Touched)
		assert.Empty(t, s.Error, s.Name)
	}

	f.MarkAllAsTouched()
	byName := map[Field]FieldState{}
	for _, s := range f.State() {
		byName[s.Name] = s
	}
	assert.Equal(t, "This field is required", byName[FieldTitle].Error)
	assert.False(t, byName[FieldTitle].Valid)
	assert.True(t, byName[FieldSynopsis].Valid)
	assert.True(t, byName[FieldSynopsis].Touched)
}

func TestForm_ResetClearsValuesAndTouched(t *testing.T) {
	f := validForm(t)
	f.MarkAllAsTouched()

	f.Reset()

	for _, s := range f.State() {
		assert.Empty(t, s.Value)
		assert.False(t, s.Touched)
	}
}

func TestForm_RawValueRoundTrip(t *testing.T) {
	movie := validMovie()
	movie.Synopsis = nil

	got := NewForm(newTestForm().validate, movie).RawValue()

	assert.Equal(t, movie, got)
	assert.Nil(t, got.ID)
}

func TestForm_RawValueKeepsEmptyApartFromAbsent(t *testing.T) {
	movie := validMovie()
	movie.Synopsis = ptr("")
	movie.PhotoURL = nil
	f := NewForm(newTestForm().validate, movie)

	require.NoError(t, f.Set(FieldPhotoURL, ""))
	require.NoError(t, f.Set(FieldSynopsis, ""))
	got := f.RawValue()

	require.NotNil(t, got.Synopsis)
	assert.Equal(t, "", *got.Synopsis)
	assert.Nil(t, got.PhotoURL)

	require.NoError(t, f.Set(FieldPhotoURL, "http://img.example/a.jpg"))
	require.NoError(t, f.Set(FieldPhotoURL, ""))
	require.NotNil(t, f.RawValue().PhotoURL)
	assert.Equal(t, "", *f.RawValue().PhotoURL)
}

func TestForm_ResetMakesEveryFieldAbsent(t *testing.T) {
	f := validForm(t)

	f.Reset()

	assert.Equal(t, &entity.Movie{}, f.RawValue())
}
