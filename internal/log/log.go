package log

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/config"
)

// NewSlogLogger creates a new slog logger writing to w with the given configuration
// and installs it as the default logger.
func NewSlogLogger(cfg config.Log, w io.Writer) *slog.Logger {
	log := slog.New(NewHandler(cfg, w))
	slog.SetDefault(log)

	return log
}

// NewHandler builds the JSON or tint handler selected by cfg, wrapped so that
// correlation and trace ids found in the context are added to every record.
func NewHandler(cfg config.Log, w io.Writer) slog.Handler {
	var handler slog.Handler

	if cfg.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     cfg.Level,
			AddSource: cfg.AddSource,
		})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      cfg.Level,
			AddSource:  cfg.AddSource,
			TimeFormat: time.RFC3339,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Value.Kind() == slog.KindAny {
					if _, ok := a.Value.Any().(error); ok {
						return tint.Attr(9, a)
					}
				}
				return a
			},
		})
	}

	return newEnrichedHandler(handler)
}
