package temporal

import (
	"github.com/rs/zerolog"
	"go.temporal.io/sdk/log"
)

// SDKLogger bridges Temporal SDK logging onto zerolog.
type SDKLogger struct {
	logger zerolog.Logger
}

func NewSDKLogger(logger zerolog.Logger) log.Logger {
	return &SDKLogger{
		logger: logger.With().Str("component", "temporal-sdk").Logger(),
	}
}

func (l *SDKLogger) event(event *zerolog.Event, msg string, keyvals ...interface{}) {
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		event = event.Interface(key, keyvals[i+1])
	}
	event.Msg(msg)
}

func (l *SDKLogger) Debug(msg string, keyvals ...interface{}) {
	l.event(l.logger.Debug(), msg, keyvals...)
}

func (l *SDKLogger) Info(msg string, keyvals ...interface{}) {
	l.event(l.logger.Info(), msg, keyvals...)
}

func (l *SDKLogger) Warn(msg string, keyvals ...interface{}) {
	l.event(l.logger.Warn(), msg, keyvals...)
}

func (l *SDKLogger) Error(msg string, keyvals ...interface{}) {
	l.event(l.logger.Error(), msg, keyvals...)
}
