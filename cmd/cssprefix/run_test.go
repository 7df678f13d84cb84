package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yacobolo/cssprefix"
)

func TestRunStdin(t *testing.T) {
	resetKoanf()

	var out bytes.Buffer
	in := strings.NewReader(".a {\n  display: flex;\n}\n")
	require.NoError(t, runStdin(context.Background(), in, &out, cssprefix.Config{SourceDir: "."}, zap.NewNop()))

	assert.Equal(t, ".a {\n  display: -webkit-flex;\n  display: -ms-flexbox;\n  display: flex;\n}\n", out.String())
}

func TestRunStdinMinify(t *testing.T) {
	resetKoanf()

	var out bytes.Buffer
	in := strings.NewReader(".a {\n  order: 1;\n}\n")
	config := cssprefix.Config{SourceDir: ".", Minify: true}
	require.NoError(t, runStdin(context.Background(), in, &out, config, zap.NewNop()))

	assert.Equal(t, ".a{-webkit-order:1;-ms-flex-order:1;order:1}", out.String())
}

func TestRunCommand(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	path := filepath.Join(dir, "site.css")
	require.NoError(t, os.WriteFile(path, []byte(".a { transform: none; }"), 0644))

	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"run", "--source", dir, "--output-format", "json"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ".a { -webkit-transform: none;\n -ms-transform: none;\n transform: none; }", string(data))

	var report cssprefix.JSONOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 1, report.Summary.FilesChanged)
	assert.Equal(t, 1, report.Summary.Expanded)
}

func TestRunCommand_RejectsPathArgument(t *testing.T) {
	resetKoanf()

	cmd := rootCmd
	cmd.SetArgs([]string{"run", "styles"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use - to read stdin")
}

func TestTableCommand(t *testing.T) {
	resetKoanf()

	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"table", "--format", "json"})
	require.NoError(t, cmd.Execute())

	var snap struct {
		Properties map[string][]string            `json:"properties"`
		Values     map[string]map[string][]string `json:"values"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &snap))
	assert.Equal(t, []string{"-webkit-order", "-ms-flex-order", "order"}, snap.Properties["order"])
	assert.Equal(t, []string{"-webkit-flex", "-ms-flexbox", "flex"}, snap.Values["display"]["flex"])

	out.Reset()
	cmd.SetArgs([]string{"table", "--format", "yaml"})
	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "properties:\n"))
	assert.Contains(t, out.String(), "-webkit-order")
	assert.Contains(t, out.String(), "\nvalues:\n")

	cmd.SetArgs([]string{"table", "--format", "toml"})
	assert.Error(t, cmd.Execute())
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "cssprefix dev\n", out.String())
}
