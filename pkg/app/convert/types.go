package convert

import (
	"time"

	"github.com/deploymenttheory/go-wetfmt/pkg/format"
)

// StdioPath selects standard input or output instead of a file
const StdioPath = "-"

// Request represents a document conversion request
type Request struct {
	InputPath  string
	OutputPath string

	// Format names; empty means infer from the matching path's extension
	From string
	To   string

	// Pretty indents JSON output
	Pretty bool

	// Overwrite allows replacing an existing output file
	Overwrite bool
}

// Response describes a completed conversion
type Response struct {
	RequestID  string            `json:"request_id" yaml:"request_id"`
	InputPath  string            `json:"input_path" yaml:"input_path"`
	OutputPath string            `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	From       format.FileFormat `json:"from" yaml:"from"`
	To         format.FileFormat `json:"to" yaml:"to"`
	RootKind   string            `json:"root_kind" yaml:"root_kind"`
	Entries    int               `json:"entries" yaml:"entries"`
	Bytes      int               `json:"bytes" yaml:"bytes"`
	Duration   time.Duration     `json:"duration" yaml:"duration"`

	// Content is the converted document
	Content string `json:"-" yaml:"-"`
}

// ToStdout reports whether the converted document goes to standard output
func (r *Response) ToStdout() bool {
	return isStdio(r.OutputPath)
}

func isStdio(path string) bool {
	return path == "" || path == StdioPath
}
