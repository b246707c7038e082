// Package testutil holds an in-memory stand-in for the remote movie API.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"

	"movie-catalog/internal/data/entity"

	"github.com/go-chi/chi/v5"
)

// FakeAPI serves /{resource} and /{resource}/{id} the way a json-server does.
type FakeAPI struct {
	*httptest.Server

	mu     sync.Mutex
	movies map[int64]*entity.Movie
	nextID int64
	calls  []string
	fail   map[string]int
}

func NewFakeAPI(resource string) *FakeAPI {
	api := &FakeAPI{
		movies: make(map[int64]*entity.Movie),
		nextID: 1,
		fail:   make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(api.record)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Route("/"+resource, func(r chi.Router) {
		r.Get("/", api.list)
		r.Post("/", api.create)
		r.Get("/{id}", api.get)
		r.Put("/{id}", api.update)
		r.Delete("/{id}", api.delete)
	})

	api.Server = httptest.NewServer(r)
	return api
}

// Seed stores movie under its own id (or the next free one) and returns the id.
func (a *FakeAPI) Seed(movie *entity.Movie) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	m := movie.Clone()
	if m.ID == nil {
		id := a.nextID
		m.ID = &id
	}
	if *m.ID >= a.nextID {
		a.nextID = *m.ID + 1
	}
	a.movies[*m.ID] = m
	return *m.ID
}

// FailNext makes the next request with the given method answer status.
func (a *FakeAPI) FailNext(method string, status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fail[method] = status
}

func (a *FakeAPI) Movie(id int64) (*entity.Movie, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	m, ok := a.movies[id]
	return m.Clone(), ok
}

// Calls lists "METHOD /path?query" for every request seen so far.
func (a *FakeAPI) Calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.calls)
}

func (a *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		call := r.Method + " " + r.URL.Path
		if r.URL.RawQuery != "" {
			call += "?" + r.URL.RawQuery
		}
		a.calls = append(a.calls, call)
		status, failing := a.fail[r.Method]
		delete(a.fail, r.Method)
		a.mu.Unlock()

		if failing {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *FakeAPI) list(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	out := make([]*entity.Movie, 0, len(a.movies))
	for _, m := range a.movies {
		out = append(out, m.Clone())
	}
	a.mu.Unlock()

	slices.SortFunc(out, func(x, y *entity.Movie) int { return int(*y.ID - *x.ID) })

	if q := strings.ToLower(r.URL.Query().Get("q")); q != "" {
		out = slices.DeleteFunc(out, func(m *entity.Movie) bool {
			return m.Title == nil || !strings.Contains(strings.ToLower(*m.Title), q)
		})
	}
	if g := r.URL.Query().Get("genero"); g != "" {
		out = slices.DeleteFunc(out, func(m *entity.Movie) bool {
			return m.Genre == nil || *m.Genre != g
		})
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("_page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("_limit"))
	if page > 0 && limit > 0 {
		start := min((page-1)*limit, len(out))
		out = out[start:min(start+limit, len(out))]
	}

	writeJSON(w, http.StatusOK, out)
}

func (a *FakeAPI) get(w http.ResponseWriter, r *http.Request) {
	m, ok := a.Movie(pathID(r))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{})
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *FakeAPI) create(w http.ResponseWriter, r *http.Request) {
	var m entity.Movie
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m.ID = nil
	id := a.Seed(&m)
	stored, _ := a.Movie(id)
	writeJSON(w, http.StatusCreated, stored)
}

func (a *FakeAPI) update(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if _, ok := a.Movie(id); !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{})
		return
	}
	var m entity.Movie
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m.ID = &id
	a.Seed(&m)
	writeJSON(w, http.StatusOK, &m)
}

func (a *FakeAPI) delete(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	a.mu.Lock()
	_, ok := a.movies[id]
	delete(a.movies, id)
	a.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
