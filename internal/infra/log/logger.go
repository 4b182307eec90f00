// Package logs builds the application slog.Logger from configuration.
package logs

import (
	"log/slog"
	"os"
	"strings"

	"dacsan/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Params defines the parameters required for the logger
type Params struct {
	fx.In

	Config *config.Config
}

// New creates the slog.Logger: JSON handler by default, text when pretty
// logging is configured, tagged with the service name.
func New(params Params) (*slog.Logger, error) {
	level, ok := logLevels[strings.ToLower(params.Config.Env.Log.Level)]
	if !ok {
		return nil, errors.Errorf("unknown log level: %s", params.Config.Env.Log.Level)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if params.Config.Env.Log.Pretty {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	if name := params.Config.Env.ServiceName; name != "" {
		logger = logger.With(slog.String("service", name))
	}

	return logger, nil
}
