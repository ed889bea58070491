package editor

import (
	"errors"
	"fmt"
)

// ErrUserCancelled is the outcome of a session the user dismissed. It is an
// expected result, not a failure.
var ErrUserCancelled = errors.New("crop cancelled by user")

var (
	// ErrNotReady is returned for editing calls outside the Ready state.
	ErrNotReady = errors.New("editor is not ready")
	// ErrSessionClosed is returned once the session has resolved.
	ErrSessionClosed = errors.New("editor session is closed")
	// ErrSaveInProgress is returned by Cancel once the export has started.
	ErrSaveInProgress = errors.New("save already in progress")
)

// LoadError reports that the source image could not be decoded.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load failed: %v", e.Err) }

func (e *LoadError) Unwrap() error { return e.Err }

// ExportError reports that rasterizing or encoding the crop failed.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string { return fmt.Sprintf("export failed: %v", e.Err) }

func (e *ExportError) Unwrap() error { return e.Err }

// IsCancelled reports whether err is a user cancellation rather than a
// failure worth surfacing.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrUserCancelled)
}
