package wire

import (
	"movie-catalog/internal/adaptor"
	"movie-catalog/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSession(r chi.Router, h *adaptor.SessionHandler, store *adaptor.SessionStore, logger *zap.Logger) {
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/editor", h.OpenEditor)
		r.Post("/viewer", h.OpenViewer)

		r.Route("/{sid}", func(r chi.Router) {
			r.Use(middleware.Session(store.Get, logger))

			r.Get("/", h.GetSession)
			r.Delete("/", h.CloseSession)

			// editor
			r.Put("/fields/{field}", h.SetField)
			r.Post("/submit", h.Submit)
			r.Post("/reset", h.ResetForm)

			// viewer
			r.Post("/delete", h.Delete)
			r.Post("/edit", h.Edit)

			r.Post("/dialog", h.AnswerDialog)
		})
	})
}
