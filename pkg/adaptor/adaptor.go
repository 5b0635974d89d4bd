// Package adaptor translates between wet value trees and their textual
// encodings. Each adaptor owns one grammar; callers pick one through the
// format package rather than constructing adaptors directly.
package adaptor

import (
	"errors"
	"fmt"
	"io"

	"github.com/deploymenttheory/go-wetfmt/pkg/wet"
)

// Adaptor converts a wet value to and from a byte stream.
// Configuration is fixed at construction; Serialize and Deserialize do not
// mutate adaptor state and are safe for concurrent use.
type Adaptor interface {
	// Serialize writes the encoding of value to w
	Serialize(value wet.Value, w io.Writer) error

	// Deserialize reads r to completion and returns the decoded value
	Deserialize(r io.Reader) (wet.Value, error)

	// Name returns the format name used in diagnostics
	Name() string
}

// Codec operations reported in CodecError
const (
	OpSerialize   = "serialize"
	OpDeserialize = "deserialize"
)

var (
	// ErrUnrepresentable is wrapped when a value's shape has no encoding in the target grammar
	ErrUnrepresentable = errors.New("value not representable")

	// ErrMalformed is wrapped when input text does not follow the grammar
	ErrMalformed = errors.New("malformed input")
)

// CodecError is returned by every adaptor operation that fails
type CodecError struct {
	Format string
	Op     string
	Err    error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Format, e.Op, e.Err)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func newCodecError(format, op string, err error) *CodecError {
	return &CodecError{Format: format, Op: op, Err: err}
}

// unrepresentable builds an ErrUnrepresentable cause naming the offending path
func unrepresentable(path, reason string) error {
	if path == "" {
		return fmt.Errorf("%w: %s", ErrUnrepresentable, reason)
	}
	return fmt.Errorf("%w: %s: %s", ErrUnrepresentable, path, reason)
}

// malformed wraps a parser failure with ErrMalformed
func malformed(err error) error {
	return fmt.Errorf("%w: %v", ErrMalformed, err)
}
