package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ParseLevel(tt.in, slog.LevelWarn), tt.in)
	}
	require.Equal(t, slog.LevelInfo, ParseLevel("", slog.LevelInfo))
}

func TestOpenOutputCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	w, closeFn, err := OpenOutput(path)
	require.NoError(t, err)

	_, err = w.Write([]byte("line\n"))
	require.NoError(t, err)
	closeFn()
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "line\n", string(data))
}

func TestOpenOutputStandardStreams(t *testing.T) {
	w, closeFn, err := OpenOutput("STDERR")
	require.NoError(t, err)
	require.Equal(t, os.Stderr, w)
	closeFn()
}

func TestInstallAddsContextFields(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Install(&buf, slog.LevelInfo)
	slog.DebugContext(context.Background(), "hidden")
	slog.InfoContext(WithLogRunID(context.Background(), "run-1"), "shown")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, `"run_id":"run-1"`)
}
