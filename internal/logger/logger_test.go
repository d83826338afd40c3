package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"hovertrans/backend/internal/logger"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		require.Equal(t, want, logger.ParseLevel(in), "level %q", in)
	}
}

func TestNewHandler_TextLowercasesLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(logger.NewHandler(&buf, slog.LevelInfo, logger.FormatText))

	log.Info("hello", "module", "test")

	require.Contains(t, buf.String(), "level=info")
	require.Contains(t, buf.String(), "module=test")
}

func TestNewHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(logger.NewHandler(&buf, slog.LevelInfo, logger.FormatJSON))

	log.Warn("careful")

	require.Contains(t, buf.String(), `"level":"warn"`)
	require.Contains(t, buf.String(), `"msg":"careful"`)
}

func TestNewHandler_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(logger.NewHandler(&buf, slog.LevelWarn, logger.FormatColor))

	log.Info("dropped")
	require.Empty(t, buf.String())

	log.Error("kept")
	require.Contains(t, buf.String(), "kept")
}
