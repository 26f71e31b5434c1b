package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, exit, err := Parse([]string{"./data"}, &bytes.Buffer{}, Env{})
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, "./data", cfg.Source)
	assert.Equal(t, "fill", cfg.Split)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Reference.IsZero())
	assert.True(t, cfg.S3.UseSSL)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
}

func TestParse_SourcePrecedence(t *testing.T) {
	env := Env{"PRODGRAPH_SOURCE": "from-env"}

	cfg, _, err := Parse(nil, &bytes.Buffer{}, env)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Source)

	cfg, _, err = Parse([]string{"-source", "from-flag"}, &bytes.Buffer{}, env)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Source)

	cfg, _, err = Parse([]string{"-s", "short"}, &bytes.Buffer{}, env)
	require.NoError(t, err)
	assert.Equal(t, "short", cfg.Source)

	cfg, _, err = Parse([]string{"positional"}, &bytes.Buffer{}, env)
	require.NoError(t, err)
	assert.Equal(t, "positional", cfg.Source)
}

func TestParse_EnvDefaults(t *testing.T) {
	env := Env{
		"PRODGRAPH_SPLIT":         "even",
		"PRODGRAPH_OUTPUT_FORMAT": "yaml",
		"PRODGRAPH_LOG_LEVEL":     "debug",
		"PRODGRAPH_REFERENCE":     "2024-05-01",
		"PRODGRAPH_S3_ENDPOINT":   "minio:9000",
		"PRODGRAPH_S3_USE_SSL":    "false",
		"PRODGRAPH_PG_DSN":        "postgres://localhost/plant",
	}

	cfg, _, err := Parse([]string{"postgres"}, &bytes.Buffer{}, env)
	require.NoError(t, err)

	assert.Equal(t, "even", cfg.Split)
	assert.Equal(t, "yaml", cfg.OutputFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), cfg.Reference)
	assert.Equal(t, "minio:9000", cfg.S3.Endpoint)
	assert.False(t, cfg.S3.UseSSL)
	assert.Equal(t, "postgres://localhost/plant", cfg.SourceConfig().PostgresDSN)
}

func TestParse_Help(t *testing.T) {
	out := &bytes.Buffer{}

	cfg, exit, err := Parse([]string{"-h"}, out, Env{})
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_NoSourcePrintsUsage(t *testing.T) {
	out := &bytes.Buffer{}

	_, exit, err := Parse(nil, out, Env{})
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Contains(t, out.String(), "PRODGRAPH_SOURCE")
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown flag", args: []string{"-nope"}, want: "flag provided but not defined"},
		{name: "bad split", args: []string{"-split", "random", "data"}, want: "split strategy"},
		{name: "bad output", args: []string{"-output-format", "xml", "data"}, want: "output format"},
		{name: "bad level", args: []string{"-log-level", "loud", "data"}, want: "log level"},
		{name: "bad log format", args: []string{"-log-format", "xml", "data"}, want: "log format"},
		{name: "bad reference", args: []string{"-reference", "tomorrow", "data"}, want: "invalid reference"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{}, Env{})

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr), "got %v", err)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}

func TestParseReference(t *testing.T) {
	testCases := []struct {
		in   string
		want time.Time
	}{
		{in: "", want: time.Time{}},
		{in: "2024-05-01T06:00:00Z", want: time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)},
		{in: "2024-05-01 06:00:00+0000", want: time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)},
		{in: "2024-05-01", want: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseReference(tc.in)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")
	require.NoError(t, os.WriteFile(first, []byte("PRODGRAPH_SPLIT=even\nPRODGRAPH_LOG_LEVEL=warn\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("PRODGRAPH_LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("PRODGRAPH_OUTPUT_FORMAT", "yaml")
	t.Setenv("PRODGRAPH_SPLIT", "fill")

	env, err := LoadEnv(first, filepath.Join(dir, "missing.env"), second)
	require.NoError(t, err)

	assert.Equal(t, "fill", env["PRODGRAPH_SPLIT"])
	assert.Equal(t, "debug", env["PRODGRAPH_LOG_LEVEL"])
	assert.Equal(t, "yaml", env["PRODGRAPH_OUTPUT_FORMAT"])
}
