package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	l := NewRateLimiter(utils.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 2}, zap.NewNop())
	h := l.Handler(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "other clients keep their own budget")
}

func TestRateLimiter_Disabled(t *testing.T) {
	l := NewRateLimiter(utils.RateLimitConfig{Enabled: false, RPS: 0.001, Burst: 0}, zap.NewNop())
	h := l.Handler(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecover_ReturnsInternalError(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestCORS_Preflight(t *testing.T) {
	h := CORS()(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/sessions/editor", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSession_ResolvesFromURL(t *testing.T) {
	known := uuid.New()
	lookup := func(id uuid.UUID) (string, bool) {
		return "session-value", id == known
	}

	r := chi.NewRouter()
	r.With(Session(lookup, zap.NewNop())).Get("/s/{sid}", func(w http.ResponseWriter, r *http.Request) {
		v, ok := utils.GetSessionFromContext[string](r.Context())
		assert.True(t, ok)
		id, ok := utils.GetSessionIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, known, id)
		_, _ = w.Write([]byte(v))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/s/"+known.String(), nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "session-value", rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/s/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/s/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
