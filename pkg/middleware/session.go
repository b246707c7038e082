package middleware

import (
	"net/http"

	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session resolves the {sid} URL parameter and stores the session in the request context.
func Session[T any](lookup func(uuid.UUID) (T, bool), logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := chi.URLParam(r, "sid")
			sessionID, err := uuid.Parse(raw)
			if err != nil {
				utils.ResponseBadRequest(w, "Invalid session id", nil)
				return
			}

			session, ok := lookup(sessionID)
			if !ok {
				logger.Warn("Unknown or expired session",
					zap.String("session_id", raw),
					zap.String("path", r.URL.Path))
				utils.ResponseNotFound(w, "Session not found")
				return
			}

			ctx := utils.SetSessionContext(r.Context(), sessionID, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
