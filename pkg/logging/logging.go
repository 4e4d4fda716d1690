package logging

import (
	"go.uber.org/zap"
)

// Logger is the global logger instance
var Logger *zap.Logger

// Setup builds the process logger writing to stderr and installs it as the
// zap global.
func Setup(debug bool, appName, appVersion string) error {
	return build(newConfig(debug, appName, appVersion))
}

// SetupFile is like Setup but writes to path instead of stderr. The
// interactive UI uses it so log lines do not draw over the screen.
// An empty path disables logging.
func SetupFile(path string, debug bool, appName, appVersion string) error {
	if path == "" {
		Logger = zap.NewNop()
		zap.ReplaceGlobals(Logger)
		return nil
	}
	cfg := newConfig(debug, appName, appVersion)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return build(cfg)
}

func newConfig(debug bool, appName, appVersion string) zap.Config {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}
	return cfg
}

func build(cfg zap.Config) error {
	var err error
	Logger, err = cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		return err
	}

	zap.ReplaceGlobals(Logger)
	return nil
}
