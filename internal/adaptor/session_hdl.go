package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SessionHandler struct {
	service    usecase.MovieService
	store      *SessionStore
	noPhotoURL string
	log        *zap.Logger
}

func NewSessionHandler(service usecase.MovieService, store *SessionStore, noPhotoURL string, log *zap.Logger) *SessionHandler {
	return &SessionHandler{
		service:    service,
		store:      store,
		noPhotoURL: noPhotoURL,
		log:        log.With(zap.String("handler", "session")),
	}
}

// OpenEditor handles POST /api/sessions/editor
func (h *SessionHandler) OpenEditor(w http.ResponseWriter, r *http.Request) {
	var req request.OpenEditorRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	routes := h.service.Routes()
	route := routes.NewEditor()
	if req.ID != nil {
		route = routes.Editor(*req.ID)
	}

	sess := newSession(KindEditor, route, h.log)
	sess.Editor = h.service.NewEditor(req.ID, sess.UI())
	h.store.Add(sess)

	if sess.Editor.Mode() == usecase.ModeEdit {
		sess.Go("load", sess.Editor.Load)
	}

	h.log.Info("Editor session opened",
		zap.String("session_id", sess.ID.String()),
		zap.String("mode", string(sess.Editor.Mode())),
	)
	utils.ResponseCreated(w, "Session opened", h.snapshot(sess))
}

// OpenViewer handles POST /api/sessions/viewer
func (h *SessionHandler) OpenViewer(w http.ResponseWriter, r *http.Request) {
	var req request.OpenViewerRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	sess := newSession(KindViewer, h.service.Routes().Viewer(req.ID), h.log)
	sess.Viewer = h.service.NewViewer(req.ID, sess.UI())
	h.store.Add(sess)
	sess.Go("load", sess.Viewer.Load)

	h.log.Info("Viewer session opened",
		zap.String("session_id", sess.ID.String()),
		zap.Int64("movie_id", req.ID),
	)
	utils.ResponseCreated(w, "Session opened", h.snapshot(sess))
}

// GetSession handles GET /api/sessions/{sid}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	utils.ResponseSuccess(w, "success", h.snapshot(sess))
}

// SetField handles PUT /api/sessions/{sid}/fields/{field}
func (h *SessionHandler) SetField(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.editor(w, r)
	if !ok {
		return
	}

	var req request.SetFieldRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	field := usecase.Field(chi.URLParam(r, "field"))
	if err := sess.Editor.SetField(field, req.Value); err != nil {
		handleServiceError(h.log, w, err, "set field")
		return
	}

	utils.ResponseSuccess(w, "Field updated", h.snapshot(sess))
}

// Submit handles POST /api/sessions/{sid}/submit
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.editor(w, r)
	if !ok {
		return
	}

	done, err := sess.Editor.SubmitAsync(sess.ctx)
	if errors.Is(err, usecase.ErrInvalidForm) {
		snap := h.snapshot(sess)
		utils.ResponseUnprocessable(w, "Validation failed", snap, fieldErrors(snap.Form))
		return
	}
	if err != nil {
		handleServiceError(h.log, w, err, "submit")
		return
	}

	sess.Await("submit", done)
	utils.ResponseAccepted(w, "Submitted", h.snapshot(sess))
}

// ResetForm handles POST /api/sessions/{sid}/reset
func (h *SessionHandler) ResetForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.editor(w, r)
	if !ok {
		return
	}
	sess.Editor.ResetForm()
	utils.ResponseSuccess(w, "Form reset", h.snapshot(sess))
}

// AnswerDialog handles POST /api/sessions/{sid}/dialog
func (h *SessionHandler) AnswerDialog(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req request.DialogAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := sess.Dialogs.Answer(uuid.MustParse(req.DialogID), req.Accepted); err != nil {
		h.log.Warn("Dialog answer rejected",
			zap.String("session_id", sess.ID.String()),
			zap.String("dialog_id", req.DialogID),
		)
		utils.ResponseNotFound(w, err.Error())
		return
	}

	utils.ResponseSuccess(w, "Dialog answered", h.snapshot(sess))
}

// Delete handles POST /api/sessions/{sid}/delete
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.viewer(w, r)
	if !ok {
		return
	}
	if sess.Viewer.Busy() {
		utils.ResponseConflict(w, usecase.ErrBusy.Error())
		return
	}

	if !sess.Go("delete", sess.Viewer.Delete) {
		utils.ResponseNotFound(w, "Session closed")
		return
	}
	utils.ResponseAccepted(w, "Delete requested", h.snapshot(sess))
}

// Edit handles POST /api/sessions/{sid}/edit
func (h *SessionHandler) Edit(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.viewer(w, r)
	if !ok {
		return
	}
	sess.Viewer.Edit()
	utils.ResponseSuccess(w, "success", h.snapshot(sess))
}

// CloseSession handles DELETE /api/sessions/{sid}
func (h *SessionHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	h.store.Remove(sess.ID)
	h.log.Info("Session closed", zap.String("session_id", sess.ID.String()))
	utils.ResponseSuccess(w, "Session closed", nil)
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id, _ := utils.GetSessionIDFromContext(r.Context())
	sess, ok := utils.GetSessionFromContext[*Session](r.Context())
	if !ok {
		h.log.Warn("No session in request context",
			zap.Stringer("session_id", id),
			zap.String("path", r.URL.Path))
		utils.ResponseNotFound(w, "Session not found")
		return nil, false
	}
	h.log.Debug("Session request",
		zap.Stringer("session_id", id),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	sess.Touch()
	return sess, true
}

func (h *SessionHandler) editor(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sess, ok := h.session(w, r)
	if !ok {
		return nil, false
	}
	if sess.Editor == nil {
		utils.ResponseBadRequest(w, "Not an editor session", nil)
		return nil, false
	}
	return sess, true
}

func (h *SessionHandler) viewer(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sess, ok := h.session(w, r)
	if !ok {
		return nil, false
	}
	if sess.Viewer == nil {
		utils.ResponseBadRequest(w, "Not a viewer session", nil)
		return nil, false
	}
	return sess, true
}

func (h *SessionHandler) snapshot(sess *Session) response.SessionResponse {
	snap := response.SessionResponse{
		ID:    sess.ID.String(),
		Kind:  string(sess.Kind),
		Route: sess.Routes.Route(),
	}
	if dialog, ok := sess.Dialogs.Pending(); ok {
		snap.Dialog = &dialog
	}
	if err := sess.Err(); err != nil {
		snap.Error = err.Error()
	}

	switch {
	case sess.Editor != nil:
		snap.Mode = string(sess.Editor.Mode())
		snap.MovieID = sess.Editor.ID()
		snap.Busy = sess.Editor.Busy()
		snap.Genres = sess.Editor.Genres()
		if states, err := sess.Editor.FormState(); err == nil {
			snap.Ready = true
			valid := true
			for _, s := range states {
				valid = valid && s.Valid
				snap.Form = append(snap.Form, response.FieldResponse{
					Name:    string(s.Name),
					Value:   s.Value,
					Touched: s.Touched,
					Valid:   s.Valid,
					Error:   s.Error,
				})
			}
			snap.FormValid = &valid
		}

	case sess.Viewer != nil:
		id := sess.Viewer.ID()
		snap.MovieID = &id
		snap.Busy = sess.Viewer.Busy()
		if movie, ok := sess.Viewer.Movie(); ok {
			snap.Ready = true
			resp := response.MovieToResponse(movie, h.noPhotoURL)
			snap.Movie = &resp
		}
	}

	return snap
}

func fieldErrors(fields []response.FieldResponse) map[string]string {
	errs := make(map[string]string)
	for _, f := range fields {
		if f.Error != "" {
			errs[f.Name] = f.Error
		}
	}
	return errs
}

// decodeJSON decodes the request body into dst; an empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
