package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/config"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/log"
	"github.com/tuanvumaihuynh/shipment-dashboard/pkg/correlationid"
)

func TestNewHandler(t *testing.T) {
	t.Run("Should add correlation id to json records", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(log.NewHandler(config.Log{Format: config.LogFormatJSON, Level: slog.LevelInfo}, &buf))

		ctx := correlationid.NewContext(context.Background(), "abc-123")
		logger.InfoContext(ctx, "hello", slog.Int("n", 1))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "hello", rec["msg"])
		assert.Equal(t, "abc-123", rec["correlation_id"])
		assert.NotContains(t, rec, "trace_id")
	})

	t.Run("Should respect the level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(log.NewHandler(config.Log{Format: config.LogFormatText, Level: slog.LevelWarn}, &buf))

		logger.Info("dropped")
		assert.Empty(t, buf.String())

		logger.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})
}
