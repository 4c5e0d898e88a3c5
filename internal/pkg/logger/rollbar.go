package logger

import (
	"github.com/rollbar/rollbar-go"
	"github.com/rs/zerolog"
)

// RollbarConfig holds the settings for forwarding error events to Rollbar
type RollbarConfig struct {
	Token       string
	Environment string
	CodeVersion string
	ServerHost  string
}

// RollbarHook forwards error-level and fatal events to Rollbar
type RollbarHook struct {
	minLevel zerolog.Level
	report   func(level string, msg string)
}

// NewRollbarHook configures the Rollbar client and returns a hook for Configure.
// With an empty token it returns nil.
func NewRollbarHook(cfg RollbarConfig) *RollbarHook {
	if cfg.Token == "" {
		return nil
	}
	rollbar.SetToken(cfg.Token)
	rollbar.SetEnvironment(cfg.Environment)
	rollbar.SetCodeVersion(cfg.CodeVersion)
	rollbar.SetServerHost(cfg.ServerHost)
	rollbar.SetEnabled(true)

	return &RollbarHook{
		minLevel: zerolog.ErrorLevel,
		report: func(level string, msg string) {
			rollbar.Log(level, msg)
		},
	}
}

// Run implements zerolog.Hook
func (h *RollbarHook) Run(_ *zerolog.Event, level zerolog.Level, msg string) {
	if level < h.minLevel || level == zerolog.NoLevel {
		return
	}
	switch level {
	case zerolog.FatalLevel, zerolog.PanicLevel:
		h.report(rollbar.CRIT, msg)
	default:
		h.report(rollbar.ERR, msg)
	}
}

// FlushRollbar blocks until queued Rollbar items are sent
func FlushRollbar() {
	rollbar.Wait()
}
