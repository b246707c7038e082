package usecase

import (
	"context"
	"errors"
	"fmt"

	"movie-catalog/internal/data/entity"

	"go.uber.org/zap"
)

type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Outcome is the tagged result of one persistence call.
type Outcome struct {
	Op    Operation
	Movie *entity.Movie
	Err   error
}

func (o Outcome) Failed() bool {
	return o.Err != nil
}

// outcomeFlow is the user feedback attached to one operation kind.
// A nil success dialog means resolved runs right away with accepted=true.
type outcomeFlow struct {
	success  func() entity.DialogRequest
	failure  func() entity.DialogRequest
	resolved func(accepted bool)
}

// reconciler turns outcomes into dialogs, then navigation or form changes.
type reconciler struct {
	dialog Dialog
	life   *lifecycle
	log    *zap.Logger
}

func (r *reconciler) handle(ctx context.Context, o Outcome, flow outcomeFlow) error {
	if r.life.disposed() {
		return ErrDisposed
	}

	if o.Failed() {
		r.log.Warn("Operation failed",
			zap.String("operation", string(o.Op)),
			zap.Error(o.Err),
		)
		if flow.failure != nil {
			if _, err := r.present(ctx, flow.failure()); err != nil {
				return err
			}
		}
		return fmt.Errorf("%w: %s: %w", ErrPersistenceFailed, o.Op, o.Err)
	}

	accepted := true
	if flow.success != nil {
		var err error
		if accepted, err = r.present(ctx, flow.success()); err != nil {
			return err
		}
	}

	if r.life.disposed() {
		return ErrDisposed
	}
	if flow.resolved != nil {
		flow.resolved(accepted)
	}

	r.log.Info("Operation completed",
		zap.String("operation", string(o.Op)),
		zap.Bool("accepted", accepted),
	)
	return nil
}

// present shows req and waits. A presenter error other than cancellation
// counts as the dialog being closed.
func (r *reconciler) present(ctx context.Context, req entity.DialogRequest) (bool, error) {
	if r.life.disposed() {
		return false, ErrDisposed
	}

	accepted, err := r.dialog.Present(ctx, req)
	if r.life.disposed() {
		return false, ErrDisposed
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil || errors.Is(err, context.Canceled) {
			return false, fmt.Errorf("present dialog: %w", err)
		}
		r.log.Warn("Dialog failed, treating it as closed",
			zap.String("dialog_id", req.ID.String()),
			zap.Error(err),
		)
		return false, nil
	}
	return accepted, nil
}
