package usecase

import "context"

// lifecycle ends when the owning view goes away. Work bound to it is
// cancelled and late results are dropped instead of applied.
type lifecycle struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func newLifecycle() *lifecycle {
	ctx, cancel := context.WithCancel(context.Background())
	return &lifecycle{ctx: ctx, cancel: cancel}
}

// bind derives a context that is also cancelled on dispose.
func (l *lifecycle) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(l.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (l *lifecycle) disposed() bool {
	return l.ctx.Err() != nil
}

func (l *lifecycle) dispose() {
	l.cancel()
}
