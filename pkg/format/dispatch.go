package format

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/deploymenttheory/go-wetfmt/pkg/adaptor"
	"github.com/deploymenttheory/go-wetfmt/pkg/wet"
)

// Serialize converts a wet value into text using the adaptor for f.
// Adaptor errors are returned unchanged.
func Serialize(value wet.Value, f FileFormat) (string, error) {
	a, err := f.Adaptor()
	if err != nil {
		return "", err
	}
	return serializeWith(a, value)
}

func serializeWith(a adaptor.Adaptor, value wet.Value) (string, error) {
	var buf bytes.Buffer
	if err := a.Serialize(value, &buf); err != nil {
		return "", err
	}
	if !utf8.Valid(buf.Bytes()) {
		return "", ErrDecode
	}
	return buf.String(), nil
}

// Deserialize parses text from r using the adaptor for f and returns the
// wet value. Adaptor errors are returned unchanged.
func Deserialize(r io.Reader, f FileFormat) (wet.Value, error) {
	a, err := f.Adaptor()
	if err != nil {
		return wet.Value{}, err
	}
	return a.Deserialize(r)
}
