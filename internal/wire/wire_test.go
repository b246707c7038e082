package wire

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/response"
	"movie-catalog/internal/testutil"
	"movie-catalog/pkg/apiclient"
	"movie-catalog/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope[T any] struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    T                 `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func ptr[T any](v T) *T { return &v }

func newTestApp(t *testing.T) (*App, *testutil.FakeAPI) {
	t.Helper()
	api := testutil.NewFakeAPI("filmes")
	t.Cleanup(api.Close)

	client, err := apiclient.NewClient(api.Client(), api.URL)
	require.NoError(t, err)

	config := &utils.Config{
		App:     utils.AppConfig{Name: "movie-catalog", Port: "0"},
		API:     utils.APIConfig{BaseURL: api.URL, Resource: "filmes", Timeout: time.Second},
		Catalog: utils.CatalogConfig{ListRoute: "/movies", NoPhotoURL: "http://no-photo.example"},
		Session: utils.SessionConfig{IdleTimeout: time.Hour, SweepInterval: time.Hour},
	}
	repo := repository.NewRepository(client, "filmes", zap.NewNop())

	app := Wiring(repo, config, zap.NewNop())
	t.Cleanup(func() { app.Store.Sweep(-1) })
	return app, api
}

func call[T any](t *testing.T, app *App, method, path string, body any) (int, envelope[T]) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	var env envelope[T]
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func session(t *testing.T, app *App, sid string) response.SessionResponse {
	t.Helper()
	code, env := call[response.SessionResponse](t, app, http.MethodGet, "/api/sessions/"+sid, nil)
	require.Equal(t, http.StatusOK, code)
	return env.Data
}

func awaitDialog(t *testing.T, app *App, sid string) *entity.DialogRequest {
	t.Helper()
	var dialog *entity.DialogRequest
	require.Eventually(t, func() bool {
		dialog = session(t, app, sid).Dialog
		return dialog != nil
	}, 2*time.Second, 10*time.Millisecond)
	return dialog
}

func answer(t *testing.T, app *App, sid string, dialog *entity.DialogRequest, accepted bool) {
	t.Helper()
	code, _ := call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/"+sid+"/dialog", map[string]any{
		"dialog_id": dialog.ID.String(),
		"accepted":  accepted,
	})
	require.Equal(t, http.StatusOK, code)
}

func fill(t *testing.T, app *App, sid string, values map[string]string) {
	t.Helper()
	for field, value := range values {
		code, _ := call[response.SessionResponse](t, app, http.MethodPut, "/api/sessions/"+sid+"/fields/"+field, map[string]string{"value": value})
		require.Equal(t, http.StatusOK, code, field)
	}
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestGenres(t *testing.T) {
	app, _ := newTestApp(t)

	code, env := call[[]string](t, app, http.MethodGet, "/api/genres", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, entity.DefaultGenres, env.Data)
}

func TestListMovies_NewestFirst(t *testing.T) {
	app, api := newTestApp(t)
	api.Seed(&entity.Movie{Title: ptr("Alien"), Genre: ptr("Terror"), Score: ptr(8.5)})
	api.Seed(&entity.Movie{Title: ptr("Heat"), Genre: ptr("Ação"), Score: ptr(8.3), PhotoURL: ptr("http://img.example/heat.jpg")})

	code, env := call[[]response.MovieResponse](t, app, http.MethodGet, "/api/movies?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, env.Data, 2)
	assert.Equal(t, "Heat", env.Data[0].Title)
	assert.True(t, env.Data[0].HasPhoto)
	assert.False(t, env.Data[1].HasPhoto)
	assert.Equal(t, "http://no-photo.example", env.Data[1].PhotoURL)
}

func TestListMovies_InvalidPaging(t *testing.T) {
	app, _ := newTestApp(t)

	code, _ := call[any](t, app, http.MethodGet, "/api/movies?limit=500", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestEditorSession_CreateThenGoToListing(t *testing.T) {
	app, api := newTestApp(t)

	code, env := call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/editor", nil)
	require.Equal(t, http.StatusCreated, code)
	sid := env.Data.ID
	assert.Equal(t, "create", env.Data.Mode)
	assert.True(t, env.Data.Ready)
	assert.Equal(t, "/movies/register", env.Data.Route)

	fill(t, app, sid, map[string]string{
		"title":        "Alien",
		"release_date": "1979-05-25",
		"score":        "8.5",
		"genre":        "Terror",
	})

	code, _ = call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/"+sid+"/submit", nil)
	require.Equal(t, http.StatusAccepted, code)

	dialog := awaitDialog(t, app, sid)
	assert.Equal(t, "Success!", dialog.Title)
	assert.Equal(t, "Go to listing", dialog.AcceptLabel)
	assert.Equal(t, "Register another movie", dialog.CancelLabel)

	answer(t, app, sid, dialog, true)
	require.Eventually(t, func() bool {
		return session(t, app, sid).Route == "/movies"
	}, 2*time.Second, 10*time.Millisecond)

	stored, ok := api.Movie(1)
	require.True(t, ok)
	assert.Equal(t, "Alien", *stored.Title)
	assert.Nil(t, stored.PhotoURL)
}

func TestEditorSession_RegisterAnotherResetsForm(t *testing.T) {
	app, _ := newTestApp(t)

	_, env := call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/editor", nil)
	sid := env.Data.ID
	fill(t, app, sid, map[string]string{
		"title":        "Alien",
		"release_date": "1979-05-25",
		"score":        "8.5",
		"genre":        "Terror",
	})
	call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/"+sid+"/submit", nil)

	answer(t, app, sid, awaitDialog(t, app, sid), false)

	require.Eventually(t, func() bool {
		snap := session(t, app, sid)
		return !snap.Busy && snap.Dialog == nil
	}, 2*time.Second, 10*time.Millisecond)

	snap := session(t, app, sid)
	assert.Equal(t, "/movies/register", snap.Route)
	for _, f := range snap.Form {
		assert.Empty(t, f.Value, f.Name)
		assert.False(t, f.Touched, f.Name)
	}
}

func TestEditorSession_InvalidSubmit(t *testing.T) {
	app, api := newTestApp(t)

	_, env := call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/editor", nil)
	sid := env.Data.ID

	code, invalid := call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/"+sid+"/submit", nil)
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, invalid.Errors, "title")
	assert.Contains(t, invalid.Errors, "genre")
	require.NotNil(t, invalid.Data.FormValid)
	assert.False(t, *invalid.Data.FormValid)

	assert.Empty(t, api.Calls())
}

func TestEditorSession_UnknownField(t *testing.T) {
	app, _ := newTestApp(t)

	_, env := call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/editor", nil)
	code, _ := call[any](t, app, http.MethodPut, "/api/sessions/"+env.Data.ID+"/fields/director", map[string]string{"value": "x"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestEditorSession_EditLoadsAndUpdates(t *testing.T) {
	app, api := newTestApp(t)
	id := api.Seed(&entity.Movie{
		Title:       ptr("Alien"),
		ReleaseDate: ptr("1979-05-25"),
		Score:       ptr(8.5),
		Genre:       ptr("Terror"),
	})

	_, env := call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/editor", map[string]any{"id": id})
	sid := env.Data.ID
	assert.Equal(t, "edit", env.Data.Mode)

	require.Eventually(t, func() bool { return session(t, app, sid).Ready }, 2*time.Second, 10*time.Millisecond)

	fill(t, app, sid, map[string]string{"score": "9"})
	code, _ := call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/"+sid+"/submit", nil)
	require.Equal(t, http.StatusAccepted, code)

	dialog := awaitDialog(t, app, sid)
	assert.Equal(t, "Your record was updated successfully", dialog.Description)
	answer(t, app, sid, dialog, false)

	require.Eventually(t, func() bool {
		return session(t, app, sid).Route == "/movies"
	}, 2*time.Second, 10*time.Millisecond)

	stored, _ := api.Movie(id)
	assert.Equal(t, 9.0, *stored.Score)
	assert.Equal(t, "Alien", *stored.Title)
}

func TestEditorSession_SaveFailureShowsErrorDialog(t *testing.T) {
	app, api := newTestApp(t)
	api.FailNext(http.MethodPost, http.StatusInternalServerError)

	_, env := call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/editor", nil)
	sid := env.Data.ID
	fill(t, app, sid, map[string]string{
		"title":        "Alien",
		"release_date": "1979-05-25",
		"score":        "8.5",
		"genre":        "Terror",
	})
	call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/"+sid+"/submit", nil)

	dialog := awaitDialog(t, app, sid)
	assert.Equal(t, "Error saving the record!", dialog.Title)
	answer(t, app, sid, dialog, true)

	require.Eventually(t, func() bool { return session(t, app, sid).Error != "" }, 2*time.Second, 10*time.Millisecond)
	snap := session(t, app, sid)
	assert.Equal(t, "/movies/register", snap.Route)
	assert.Contains(t, snap.Error, "persistence failed")
}

func TestViewerSession_DeleteConfirmed(t *testing.T) {
	app, api := newTestApp(t)
	id := api.Seed(&entity.Movie{Title: ptr("Alien"), Genre: ptr("Terror"), Score: ptr(8.5)})

	code, env := call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/viewer", map[string]any{"id": id})
	require.Equal(t, http.StatusCreated, code)
	sid := env.Data.ID

	require.Eventually(t, func() bool { return session(t, app, sid).Ready }, 2*time.Second, 10*time.Millisecond)
	snap := session(t, app, sid)
	require.NotNil(t, snap.Movie)
	assert.Equal(t, "Alien", snap.Movie.Title)
	assert.Equal(t, "http://no-photo.example", snap.Movie.PhotoURL)

	code, _ = call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/"+sid+"/delete", nil)
	require.Equal(t, http.StatusAccepted, code)

	dialog := awaitDialog(t, app, sid)
	assert.Equal(t, "Are you sure you want to delete?", dialog.Title)
	answer(t, app, sid, dialog, true)

	require.Eventually(t, func() bool {
		return session(t, app, sid).Route == "/movies"
	}, 2*time.Second, 10*time.Millisecond)

	_, ok := api.Movie(id)
	assert.False(t, ok)
}

func TestViewerSession_DeleteCancelled(t *testing.T) {
	app, api := newTestApp(t)
	id := api.Seed(&entity.Movie{Title: ptr("Alien"), Genre: ptr("Terror"), Score: ptr(8.5)})

	_, env := call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/viewer", map[string]any{"id": id})
	sid := env.Data.ID
	require.Eventually(t, func() bool { return session(t, app, sid).Ready }, 2*time.Second, 10*time.Millisecond)

	call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/"+sid+"/delete", nil)
	answer(t, app, sid, awaitDialog(t, app, sid), false)

	require.Eventually(t, func() bool { return !session(t, app, sid).Busy }, 2*time.Second, 10*time.Millisecond)
	_, ok := api.Movie(id)
	assert.True(t, ok)
	assert.Equal(t, "/movies/1", session(t, app, sid).Route)
}

func TestViewerSession_EditNavigates(t *testing.T) {
	app, api := newTestApp(t)
	id := api.Seed(&entity.Movie{Title: ptr("Alien")})

	_, env := call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/viewer", map[string]any{"id": id})
	code, edited := call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/"+env.Data.ID+"/edit", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "/movies/register/1", edited.Data.Route)
}

func TestSession_NotFoundAndClose(t *testing.T) {
	app, _ := newTestApp(t)

	code, _ := call[any](t, app, http.MethodGet, "/api/sessions/00000000-0000-0000-0000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, code)

	_, env := call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/editor", nil)
	code, _ = call[any](t, app, http.MethodDelete, "/api/sessions/"+env.Data.ID, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = call[any](t, app, http.MethodGet, "/api/sessions/"+env.Data.ID, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, 0, app.Store.Len())
}

func TestSession_WrongKind(t *testing.T) {
	app, _ := newTestApp(t)

	_, env := call[response.SessionResponse](t, app, http.MethodPost, "/api/sessions/editor", nil)
	code, _ := call[any](t, app, http.MethodPost, "/api/sessions/"+env.Data.ID+"/delete", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
