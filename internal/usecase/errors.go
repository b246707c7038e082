package usecase

import "errors"

var (
	// ErrInvalidForm blocks a submit; the field errors are on the form state.
	ErrInvalidForm = errors.New("validation failed")
	// ErrPersistenceFailed wraps a failed create, update or delete after the error dialog closed.
	ErrPersistenceFailed = errors.New("persistence failed")
	// ErrFetchFailed wraps a failed initial load. No dialog is shown for it.
	ErrFetchFailed  = errors.New("fetch failed")
	ErrNotReady     = errors.New("workflow not loaded yet")
	ErrBusy         = errors.New("workflow busy")
	ErrDisposed     = errors.New("workflow disposed")
	ErrUnknownField = errors.New("unknown form field")
)
