package domain

import "errors"

var (
	// ErrPaneNotFound is returned by the host when a handle refers to a
	// pane that no longer exists. Callers treat it as a no-op.
	ErrPaneNotFound = errors.New("pane not found")
	// ErrSinkExists is returned by a text sink when an exclusive create
	// loses a race with a concurrent creator.
	ErrSinkExists      = errors.New("sink resource already exists")
	ErrInvalidSettings = errors.New("invalid settings")
)
