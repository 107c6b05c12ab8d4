package replay

import (
	"errors"
	"fmt"
)

var (
	// ErrDecompress means the buffer is not LZ-string data or inflates to nothing.
	ErrDecompress = errors.New("replay decompression failed")
	// ErrMalformed means the payload is not a JSON array or a field has the wrong shape.
	ErrMalformed = errors.New("malformed replay")
	// ErrTruncated means the payload is missing required fields.
	ErrTruncated = errors.New("truncated replay")
)

// DecodeError reports which positional field could not be decoded.
// Index is -1 when the failure is not tied to a single field.
type DecodeError struct {
	Field string
	Index int
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode replay: %v", e.Err)
	}
	return fmt.Sprintf("decode replay field %d (%s): %v", e.Index, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func fieldError(index int, sentinel error, format string, args ...any) error {
	return &DecodeError{
		Field: fieldNames[index],
		Index: index,
		Err:   fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)),
	}
}

func wrapCause(sentinel, cause error) error {
	return fmt.Errorf("%w: %v", sentinel, cause)
}
