package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-wetfmt/pkg/format"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.Output)
	assert.Empty(t, cfg.InputFormat)
	assert.Empty(t, cfg.OutputFormat)
	assert.False(t, cfg.Pretty)
	assert.False(t, cfg.Overwrite)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.Quiet)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, "wetfmt.yaml", `
input_format: ini
output_format: json
pretty: true
output: yaml
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ini", cfg.InputFormat)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.True(t, cfg.Pretty)
	assert.Equal(t, "yaml", cfg.Output)

	to, err := format.FromString(cfg.OutputFormat)
	require.NoError(t, err)
	assert.Equal(t, format.JSON, to)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeConfig(t, "wetfmt.json", `{"output_format":"ini","overwrite":true}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ini", cfg.OutputFormat)
	assert.True(t, cfg.Overwrite)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "wetfmt.yaml", "output_format: json\n")
	t.Setenv("WETFMT_OUTPUT_FORMAT", "ini")
	t.Setenv("WETFMT_PRETTY", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ini", cfg.OutputFormat)
	assert.True(t, cfg.Pretty)
}

func TestLoad_Verbosity(t *testing.T) {
	path := writeConfig(t, "wetfmt.yaml", "quiet: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Quiet)
	assert.False(t, cfg.Verbose)

	t.Setenv("WETFMT_QUIET", "false")
	t.Setenv("WETFMT_VERBOSE", "true")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Quiet)
	assert.True(t, cfg.Verbose)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		file    string
	}{
		{name: "unknown format", file: "bad.yaml", content: "input_format: xml\n"},
		{name: "uppercase format", file: "bad.yaml", content: "output_format: JSON\n"},
		{name: "unknown output style", file: "bad.yaml", content: "output: csv\n"},
		{name: "malformed yaml", file: "bad.yaml", content: "output: [\n"},
		{name: "verbose and quiet", file: "bad.yaml", content: "verbose: true\nquiet: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}

	t.Run("explicit file missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
