// Package format selects a codec adaptor by file format and converts wet
// values to and from text through it.
package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/deploymenttheory/go-wetfmt/pkg/adaptor"
)

// FileFormat is a supported document format
type FileFormat uint8

const (
	INI FileFormat = iota + 1
	JSON
)

var (
	// ErrUnknownFormat is returned for a format name or extension outside the supported set
	ErrUnknownFormat = errors.New("unknown file format")

	// ErrDecode is returned when adaptor output is not valid UTF-8
	ErrDecode = errors.New("unable to decode utf-8")
)

// Formats lists every supported format in a stable order
var Formats = []FileFormat{INI, JSON}

// FromString parses a format name. Only the exact lowercase names "ini" and
// "json" are accepted.
func FromString(name string) (FileFormat, error) {
	switch name {
	case "ini":
		return INI, nil
	case "json":
		return JSON, nil
	default:
		return 0, ErrUnknownFormat
	}
}

// DetectFromPath picks a format from a file extension, ignoring case
func DetectFromPath(path string) (FileFormat, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	f, err := FromString(ext)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot infer from %q", ErrUnknownFormat, path)
	}
	return f, nil
}

// String returns the canonical name of the format
func (f FileFormat) String() string {
	switch f {
	case INI:
		return "ini"
	case JSON:
		return "json"
	default:
		return fmt.Sprintf("FileFormat(%d)", uint8(f))
	}
}

// Valid reports whether f is one of the supported formats
func (f FileFormat) Valid() bool {
	return f == INI || f == JSON
}

// Adaptor constructs the codec adaptor for f. JSON output is compact.
func (f FileFormat) Adaptor() (adaptor.Adaptor, error) {
	switch f {
	case INI:
		return adaptor.NewINIAdaptor(), nil
	case JSON:
		return adaptor.NewJSONAdaptor(adaptor.JSONOptions{Pretty: false}), nil
	default:
		return nil, ErrUnknownFormat
	}
}

// MarshalText implements encoding.TextMarshaler
func (f FileFormat) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, ErrUnknownFormat
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *FileFormat) UnmarshalText(text []byte) error {
	parsed, err := FromString(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
