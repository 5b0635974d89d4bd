package convert

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-wetfmt/pkg/adaptor"
	"github.com/deploymenttheory/go-wetfmt/pkg/app"
	"github.com/deploymenttheory/go-wetfmt/pkg/format"
)

const loaderINI = `timeout = 3

[arch]
linux = /vmlinuz-linux
options = rw
options = quiet
`

func testContext(stdin string) *app.Context {
	ctx := app.NewContext()
	ctx.Stdin = strings.NewReader(stdin)
	ctx.Stdout = io.Discard
	ctx.Stderr = io.Discard
	return ctx
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		request  func(t *testing.T) *Request
		validate func(*testing.T, *Response)
	}{
		{
			name: "ini file to json stdout",
			request: func(t *testing.T) *Request {
				return &Request{InputPath: writeFile(t, "loader.ini", loaderINI), To: "json"}
			},
			validate: func(t *testing.T, resp *Response) {
				assert.Equal(t, format.INI, resp.From)
				assert.Equal(t, format.JSON, resp.To)
				assert.True(t, resp.ToStdout())
				assert.Equal(t, `{"timeout":"3","arch":{"linux":"/vmlinuz-linux","options":["rw","quiet"]}}`, resp.Content)
				assert.Equal(t, "mapping", resp.RootKind)
				assert.Equal(t, 2, resp.Entries)
				assert.Equal(t, len(resp.Content), resp.Bytes)
			},
		},
		{
			name:  "json stdin to ini stdout",
			stdin: `{"name":"efi","mount":{"point":"/boot/efi","opts":["umask=0077","shortname=winnt"]}}`,
			request: func(t *testing.T) *Request {
				return &Request{InputPath: StdioPath, From: "json", To: "ini"}
			},
			validate: func(t *testing.T, resp *Response) {
				assert.Contains(t, resp.Content, "[mount]")
				back, err := format.Deserialize(strings.NewReader(resp.Content), format.INI)
				require.NoError(t, err)
				m, ok := back.AsMap()
				require.True(t, ok)
				assert.Equal(t, []string{"name", "mount"}, m.Keys())
			},
		},
		{
			name:  "pretty json",
			stdin: `{"a":[1,2]}`,
			request: func(t *testing.T) *Request {
				return &Request{InputPath: StdioPath, From: "json", To: "json", Pretty: true}
			},
			validate: func(t *testing.T, resp *Response) {
				assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ]\n}", resp.Content)
			},
		},
		{
			name:  "pretty flag ignored for ini",
			stdin: `{"k":"v"}`,
			request: func(t *testing.T) *Request {
				return &Request{InputPath: StdioPath, From: "json", To: "ini", Pretty: true}
			},
			validate: func(t *testing.T, resp *Response) {
				assert.Contains(t, resp.Content, "k")
				assert.NotContains(t, resp.Content, "{")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Handle(testContext(tt.stdin), tt.request(t))
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.NotEmpty(t, resp.RequestID)
			tt.validate(t, resp)
		})
	}
}

func TestHandle_WritesOutputFile(t *testing.T) {
	input := writeFile(t, "loader.ini", loaderINI)
	output := filepath.Join(t.TempDir(), "loader.json")

	resp, err := Handle(testContext(""), &Request{InputPath: input, OutputPath: output})
	require.NoError(t, err)
	assert.False(t, resp.ToStdout())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, resp.Content, string(data))
	assert.True(t, json.Valid(data))

	// a second run refuses to clobber the file
	_, err = Handle(testContext(""), &Request{InputPath: input, OutputPath: output})
	require.Error(t, err)
	assert.Equal(t, app.ErrCodeIO, app.ErrorCode(err))

	_, err = Handle(testContext(""), &Request{InputPath: input, OutputPath: output, Overwrite: true})
	require.NoError(t, err)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		request  func(t *testing.T) *Request
		code     string
		contains error
	}{
		{
			name:    "missing input file",
			request: func(t *testing.T) *Request { return &Request{InputPath: filepath.Join(t.TempDir(), "nope.ini"), To: "json"} },
			code:    app.ErrCodeIO,
		},
		{
			name:     "malformed json",
			stdin:    `{"a":`,
			request:  func(t *testing.T) *Request { return &Request{InputPath: StdioPath, From: "json", To: "ini"} },
			code:     app.ErrCodeCodec,
			contains: adaptor.ErrMalformed,
		},
		{
			name:     "shape ini cannot hold",
			stdin:    `{"parts":[{"n":1},{"n":2}]}`,
			request:  func(t *testing.T) *Request { return &Request{InputPath: StdioPath, From: "json", To: "ini"} },
			code:     app.ErrCodeCodec,
			contains: adaptor.ErrUnrepresentable,
		},
		{
			name:     "unknown format name",
			request:  func(t *testing.T) *Request { return &Request{InputPath: StdioPath, From: "toml", To: "ini"} },
			code:     app.ErrCodeUnknownFormat,
			contains: format.ErrUnknownFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Handle(testContext(tt.stdin), tt.request(t))
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Equal(t, tt.code, app.ErrorCode(err))
			if tt.contains != nil {
				assert.ErrorIs(t, err, tt.contains)
			}
		})
	}
}

func TestHandle_ReportsProgress(t *testing.T) {
	ctx := testContext(`{"k":"v"}`)
	var steps []int
	ctx.SetProgress(func(_ string, percent int) { steps = append(steps, percent) })

	_, err := Handle(ctx, &Request{InputPath: StdioPath, From: "json", To: "json"})
	require.NoError(t, err)
	assert.Equal(t, []int{10, 50, 100}, steps)
}

func TestHandle_LogsRequestID(t *testing.T) {
	ctx := testContext(`{"k":"v"}`)
	var logs bytes.Buffer
	ctx.Stderr = &logs
	ctx.Verbose = true

	resp, err := Handle(ctx, &Request{InputPath: StdioPath, From: "json", To: "json"})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "request_id="+resp.RequestID)
	assert.Contains(t, logs.String(), "conversion completed")
}
