package session

import (
	"errors"
	"fmt"
)

var (
	// ErrHelpRequested is returned by Load for an empty argument list or one
	// that asks for help. No image is decoded in that case.
	ErrHelpRequested = errors.New("help requested")
	// ErrNoImages is returned when no playlist entry could be decoded.
	ErrNoImages = errors.New("no readable images")
	// ErrNoPostcard is returned by orientation commands before any postcard
	// was extracted.
	ErrNoPostcard = errors.New("no postcard extracted yet")
)

// DecodeError reports a playlist entry that could not be read.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("could not read %q: %v", e.Path, e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

// WriteError reports a postcard that could not be persisted. The in-memory
// postcard is unaffected.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("could not write %q: %v", e.Path, e.Err) }

func (e *WriteError) Unwrap() error { return e.Err }
