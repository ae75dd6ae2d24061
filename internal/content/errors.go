package content

import (
	"errors"
	"fmt"
)

var (
	// ErrNoContent is returned when the provider answered with nothing usable.
	ErrNoContent = errors.New("no content generated")

	// ErrStreamConsumed is returned when a stream is iterated a second time.
	ErrStreamConsumed = errors.New("stream already consumed")
)

// GenerationError means the provider returned no usable content, malformed
// JSON, or output that failed validation.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// StreamError is a transport failure before or during a chat stream.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream failed: %v", e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }
