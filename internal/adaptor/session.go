package adaptor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNoDialog   = errors.New("no such dialog pending")
	ErrDialogOpen = errors.New("another dialog is already open")
)

var (
	_ usecase.Dialog    = (*DialogBridge)(nil)
	_ usecase.Navigator = (*RouteTracker)(nil)
)

// DialogBridge parks a dialog request until the browser answers it.
type DialogBridge struct {
	mu      sync.Mutex
	pending *pendingDialog
}

type pendingDialog struct {
	req    entity.DialogRequest
	answer chan bool
}

func (b *DialogBridge) Present(ctx context.Context, req entity.DialogRequest) (bool, error) {
	p := &pendingDialog{req: req, answer: make(chan bool, 1)}

	b.mu.Lock()
	if b.pending != nil {
		b.mu.Unlock()
		return false, ErrDialogOpen
	}
	b.pending = p
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		if b.pending == p {
			b.pending = nil
		}
		b.mu.Unlock()
	}()

	select {
	case accepted := <-p.answer:
		return accepted, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (b *DialogBridge) Pending() (entity.DialogRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == nil {
		return entity.DialogRequest{}, false
	}
	return b.pending.req, true
}

// Answer resolves the pending dialog with the given id.
func (b *DialogBridge) Answer(id uuid.UUID, accepted bool) error {
	b.mu.Lock()
	p := b.pending
	if p == nil || p.req.ID != id {
		b.mu.Unlock()
		return ErrNoDialog
	}
	b.pending = nil
	b.mu.Unlock()

	p.answer <- accepted
	return nil
}

// RouteTracker records where the workflow asked the browser to go.
type RouteTracker struct {
	mu    sync.Mutex
	route string
}

func (t *RouteTracker) GoTo(route string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.route = route
}

func (t *RouteTracker) Route() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.route
}

type Kind string

const (
	KindEditor Kind = "editor"
	KindViewer Kind = "viewer"
)

// Session is one browser view bound to one workflow instance.
type Session struct {
	ID      uuid.UUID
	Kind    Kind
	Editor  *usecase.EditorWorkflow
	Viewer  *usecase.ViewerWorkflow
	Dialogs *DialogBridge
	Routes  *RouteTracker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	log    *zap.Logger

	mu       sync.Mutex
	closed   bool
	lastErr  error
	lastSeen time.Time
}

func newSession(kind Kind, route string, log *zap.Logger) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.New()
	s := &Session{
		ID:       id,
		Kind:     kind,
		Dialogs:  &DialogBridge{},
		Routes:   &RouteTracker{route: route},
		ctx:      ctx,
		cancel:   cancel,
		log:      log.With(zap.String("session_id", id.String()), zap.String("kind", string(kind))),
		lastSeen: time.Now(),
	}
	return s
}

func (s *Session) UI() usecase.UI {
	return usecase.UI{Dialog: s.Dialogs, Navigator: s.Routes}
}

// Go runs fn in the background on the session context and keeps its error.
// It reports false, without running fn, once the session is closed.
func (s *Session) Go(name string, fn func(ctx context.Context) error) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.lastErr = nil
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		err := fn(s.ctx)
		if err != nil && !errors.Is(err, usecase.ErrDisposed) {
			s.log.Warn("Background operation failed", zap.String("operation", name), zap.Error(err))
			s.setErr(err)
		}
	}()
	return true
}

// Await collects the result of an operation already running elsewhere.
func (s *Session) Await(name string, done <-chan error) bool {
	return s.Go(name, func(ctx context.Context) error {
		select {
		case err := <-done:
			return err
		case <-ctx.Done():
			return nil
		}
	})
}

func (s *Session) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Close disposes the workflow and waits for background work to stop.
// Later calls to Go are refused, so Wait never races a new Add.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	if s.Editor != nil {
		s.Editor.Dispose()
	}
	if s.Viewer != nil {
		s.Viewer.Dispose()
	}
	s.cancel()
	s.wg.Wait()
}

// SessionStore keeps the live sessions of the server.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	log      *zap.Logger
}

func NewSessionStore(log *zap.Logger) *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*Session),
		log:      log.With(zap.String("component", "session_store")),
	}
}

func (st *SessionStore) Add(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

func (st *SessionStore) Get(id uuid.UUID) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Remove drops the session and closes it. It reports whether it existed.
func (st *SessionStore) Remove(id uuid.UUID) bool {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if ok {
		s.Close()
	}
	return ok
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep closes sessions idle for longer than idle and returns how many.
func (st *SessionStore) Sweep(idle time.Duration) int {
	now := time.Now()

	st.mu.Lock()
	var stale []*Session
	for id, s := range st.sessions {
		if s.idleSince(now) > idle {
			stale = append(stale, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range stale {
		s.Close()
	}
	if len(stale) > 0 {
		st.log.Info("Idle sessions closed", zap.Int("count", len(stale)))
	}
	return len(stale)
}

// Run sweeps every interval until ctx ends, then closes what is left.
func (st *SessionStore) Run(ctx context.Context, interval, idle time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("session sweep interval must be positive, got %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st.Sweep(idle)
		case <-ctx.Done():
			st.Sweep(-1)
			return nil
		}
	}
}
