package contract

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger initializes the global zap logger.
// format is "console" (human readable, stderr) or "json".
func InitLogger(level, format string) error {
	var zapCfg zap.Config
	if format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.DisableStacktrace = true
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(lvl)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	if zap.L().Core().Enabled(zapcore.ErrorLevel) {
		zap.L().Error(msg, zap.Error(err))
		_ = zap.L().Sync()
	} else {
		// The global logger is a no-op until InitLogger runs.
		_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	}
	os.Exit(1)
}

// LogWarn logs a warning message.
func LogWarn(msg string, err error) {
	zap.L().Warn(msg, zap.Error(err))
}
