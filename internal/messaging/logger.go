package messaging

import (
	"github.com/ThreeDotsLabs/watermill"
	"go.uber.org/zap"
)

// zapLoggerAdapter bridges watermill's logging to zap.
type zapLoggerAdapter struct {
	logger *zap.Logger
	fields watermill.LogFields
}

// NewZapLogger wraps a zap logger as a watermill LoggerAdapter.
func NewZapLogger(logger *zap.Logger) watermill.LoggerAdapter {
	return &zapLoggerAdapter{logger: logger}
}

func (l *zapLoggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	l.logger.Error(msg, append(l.zapFields(fields), zap.Error(err))...)
}

func (l *zapLoggerAdapter) Info(msg string, fields watermill.LogFields) {
	l.logger.Info(msg, l.zapFields(fields)...)
}

func (l *zapLoggerAdapter) Debug(msg string, fields watermill.LogFields) {
	l.logger.Debug(msg, l.zapFields(fields)...)
}

func (l *zapLoggerAdapter) Trace(msg string, fields watermill.LogFields) {
	l.logger.Debug(msg, l.zapFields(fields)...)
}

func (l *zapLoggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &zapLoggerAdapter{
		logger: l.logger,
		fields: l.fields.Add(fields),
	}
}

func (l *zapLoggerAdapter) zapFields(fields watermill.LogFields) []zap.Field {
	merged := l.fields.Add(fields)

	zapFields := make([]zap.Field, 0, len(merged))
	for key, value := range merged {
		zapFields = append(zapFields, zap.Any(key, value))
	}

	return zapFields
}
