package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" info ", zerolog.InfoLevel},
		{"Warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_WritesBothOutputs(t *testing.T) {
	var console, file bytes.Buffer
	l := New("debug", &console, &file)

	l.Debug().Str("body", "Earth").Msg("travel started")

	assert.Contains(t, console.String(), "travel started")
	assert.Contains(t, file.String(), "travel started")
	assert.Contains(t, file.String(), "body=Earth")
	assert.NotContains(t, file.String(), "\x1b[", "file output has no color")
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var console bytes.Buffer
	l := New("warn", &console, nil)

	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")
}

func TestSampled_ThinsBursts(t *testing.T) {
	var buf bytes.Buffer
	l := Sampled(zerolog.New(&buf))

	for range 50 {
		l.Info().Msg("frame")
	}

	n := bytes.Count(buf.Bytes(), []byte("frame"))
	assert.GreaterOrEqual(t, n, 5, "the burst passes")
	assert.LessOrEqual(t, n, 6, "then one in 100")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	l := Component(zerolog.New(&buf), "travel")
	l.Info().Msg("ok")

	assert.Contains(t, buf.String(), `"component":"travel"`)
}

func TestRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solaris.log")
	file := RotatingFile(path, 1, 1)

	var console bytes.Buffer
	l := New("INFO", &console, file)
	l.Info().Str("body", "Earth").Msg("travel started")
	require.NoError(t, file.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "travel started")
	assert.Contains(t, string(data), "body=Earth")
}
