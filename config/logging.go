package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/gg"
	log "github.com/sirupsen/logrus"
)

// ConfigureLogging sets the logrus level and formatter. At debug level the
// gg renderer logs to the same output.
func ConfigureLogging(level, logFormat string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(lvl)

	switch logFormat {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format: %q", logFormat)
	}

	if lvl >= log.DebugLevel {
		gg.SetLogger(slog.New(slog.NewTextHandler(log.StandardLogger().Out, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	return nil
}
