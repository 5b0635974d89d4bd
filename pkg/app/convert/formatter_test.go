package convert

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-wetfmt/pkg/format"
)

func fileResponse() *Response {
	return &Response{
		RequestID:  "2f1c9b1e-0000-4000-8000-000000000001",
		InputPath:  "loader.ini",
		OutputPath: "loader.json",
		From:       format.INI,
		To:         format.JSON,
		RootKind:   "mapping",
		Entries:    2,
		Bytes:      64,
		Duration:   1500 * time.Microsecond,
		Content:    `{"k":"v"}`,
	}
}

func TestFormatOutput(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		wantErr  bool
		validate func(*testing.T, string)
	}{
		{
			name:   "table format",
			format: "table",
			validate: func(t *testing.T, output string) {
				assert.Contains(t, output, "INPUT")
				assert.Contains(t, output, "loader.ini")
				assert.Contains(t, output, "mapping (2)")
				assert.Contains(t, output, "request 2f1c9b1e")
			},
		},
		{
			name:   "json format",
			format: "json",
			validate: func(t *testing.T, output string) {
				var decoded map[string]any
				require.NoError(t, json.Unmarshal([]byte(output), &decoded))
				assert.Equal(t, "ini", decoded["from"])
				assert.Equal(t, "json", decoded["to"])
				assert.NotContains(t, decoded, "Content")
			},
		},
		{
			name:   "yaml format",
			format: "yaml",
			validate: func(t *testing.T, output string) {
				assert.Contains(t, output, "from: ini")
				assert.Contains(t, output, "to: json")
				assert.Contains(t, output, "duration: 1.5ms")
				assert.NotContains(t, output, `{"k":"v"}`)
			},
		},
		{
			name:    "unsupported format",
			format:  "xml",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := FormatOutput(&buf, fileResponse(), tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, buf.String())
		})
	}
}

func TestFormatOutput_StdoutWritesDocument(t *testing.T) {
	resp := fileResponse()
	resp.OutputPath = ""

	for _, f := range []string{"table", "json", "yaml"} {
		var buf bytes.Buffer
		require.NoError(t, FormatOutput(&buf, resp, f))
		assert.Equal(t, "{\"k\":\"v\"}\n", buf.String())
	}
}
