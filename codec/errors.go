package codec

import (
	"errors"
	"fmt"
)

// Sentinel errors for the kinds enumerated in the codec's error-handling
// design. Wrap these with fmt.Errorf("...: %w", err) at call sites rather
// than constructing new error values, so callers can still errors.Is/As
// against them.
var (
	// ErrEmptyInput is returned when Encode is given a zero-length input.
	ErrEmptyInput = errors.New("codec: input is empty")

	// ErrNoFrames is returned when Decode receives zero decodable frames.
	ErrNoFrames = errors.New("codec: no decodable frames in input")

	// ErrMetadataLost is returned when frame 0 is missing or CRC-invalid.
	ErrMetadataLost = errors.New("codec: metadata frame missing or corrupt")

	// ErrPasswordRequired is returned when frame 0 declares the payload
	// encrypted but Decode was not given a password.
	ErrPasswordRequired = errors.New("codec: payload is encrypted but no password was given")

	// ErrMalformedMetadata is returned when frame 0's payload is shorter
	// than its declared field lengths or contains non-UTF-8 strings.
	ErrMalformedMetadata = errors.New("codec: malformed metadata frame")
)

// UnrecoverableLossError is returned when peeling decode terminates with
// one or more source chunks still absent. Index is the first missing
// source's ordinal.
type UnrecoverableLossError struct {
	Index int
}

func (e *UnrecoverableLossError) Error() string {
	return fmt.Sprintf("codec: source chunk %d unrecoverable after peeling", e.Index)
}
