package convert

import (
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-wetfmt/pkg/app"
	"github.com/deploymenttheory/go-wetfmt/pkg/format"
)

// Validate validates a conversion request
func (r *Request) Validate() error {
	_, _, err := r.validate()
	return err
}

// validate checks the request and returns the formats it resolves to
func (r *Request) validate() (from, to format.FileFormat, err error) {
	if r.InputPath == "" {
		return 0, 0, app.NewError(app.ErrCodeInvalidInput, "input path is required", nil)
	}

	if r.InputPath != StdioPath && r.InputPath == r.OutputPath {
		return 0, 0, app.NewError(app.ErrCodeInvalidInput, "input and output must be different files", nil)
	}

	return r.ResolveFormats()
}

// ResolveFormats returns the source and target formats. Explicit names win
// over extension detection; standard streams have no extension to detect.
func (r *Request) ResolveFormats() (from, to format.FileFormat, err error) {
	from, err = resolveFormat(r.From, r.InputPath, "input")
	if err != nil {
		return 0, 0, err
	}
	to, err = resolveFormat(r.To, r.OutputPath, "output")
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

func resolveFormat(name, path, role string) (format.FileFormat, error) {
	if name != "" {
		f, err := format.FromString(name)
		if err != nil {
			return 0, app.NewError(app.ErrCodeUnknownFormat, fmt.Sprintf("invalid %s format %q", role, name), err)
		}
		return f, nil
	}

	if isStdio(path) {
		return 0, app.NewError(app.ErrCodeInvalidInput, fmt.Sprintf("%s format is required for standard streams", role), nil)
	}

	f, err := format.DetectFromPath(path)
	if err != nil {
		if errors.Is(err, format.ErrUnknownFormat) {
			return 0, app.NewError(app.ErrCodeUnknownFormat, fmt.Sprintf("cannot determine %s format", role), err)
		}
		return 0, err
	}
	return f, nil
}
