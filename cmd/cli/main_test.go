package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/prodgraph/internal/cli"
	"github.com/specialistvlad/prodgraph/internal/model"
	"github.com/stretchr/testify/require"
)

func TestRun_BuildsPlan(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	tasks := `[
		{"taskno": "A", "duration": 10, "priority": 1, "quantity": 4, "micro_batch_size": 2, "resource_count": 1},
		{"taskno": "B", "duration": 10, "priority": 1, "quantity": 1, "predecessors": ["A"], "resource_count": 1}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.json"), []byte(tasks), 0o600))
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, logs, []string{"-reference", "2024-05-01", dir})

	// --- Assert ---
	require.NoError(t, err, "logs:\n%s", logs.String())
	var payload struct {
		Tasks []struct {
			ID           string   `json:"taskno"`
			Predecessors []string `json:"predecessors"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &payload))
	require.Len(t, payload.Tasks, 3)
	require.Equal(t, "B", payload.Tasks[2].ID)
	require.Equal(t, []string{"A-1", "A-2"}, payload.Tasks[2].Predecessors)
}

func TestRun_CycleFails(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	tasks := `[
		{"taskno": "A", "duration": 1, "priority": 1, "quantity": 1, "predecessors": ["B"], "resource_count": 0},
		{"taskno": "B", "duration": 1, "priority": 1, "quantity": 1, "predecessors": ["A"], "resource_count": 0}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.json"), []byte(tasks), 0o600))

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{dir})

	// --- Assert ---
	require.Error(t, err)
	require.True(t, errors.Is(err, model.ErrCycle), "got %v", err)
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, logs, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, logs.String(), "Usage:", "Expected help text to be printed to the log writer")
	require.Empty(t, out.String())
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	// --- Assert ---
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_SourceError(t *testing.T) {
	t.Parallel()

	// --- Act ---
	// No endpoint is configured, so the S3 loader cannot be created.
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"-s3-endpoint", "", "s3://plans"})

	// --- Assert ---
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Contains(t, exitErr.Message, "endpoint")
}
