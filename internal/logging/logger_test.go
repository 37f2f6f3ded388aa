package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
	require.Contains(t, err.Error(), "loud")
}

func TestNewWriter_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, slog.LevelInfo)
	l.Info("stage failed", "error", errors.New("boom"))
	l.Debug("hidden")

	out := buf.String()
	require.Contains(t, out, "err=boom")
	require.NotContains(t, out, "error=")
	require.NotContains(t, out, "hidden")
}

func TestNewNop(t *testing.T) {
	require.NotPanics(t, func() { NewNop().Error("dropped") })
}
