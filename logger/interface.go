package logger

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LoggerInterface defines the contract for logging operations
type LoggerInterface interface {
	Info(msg string, props ...map[string]interface{})
	Error(msg string, props ...map[string]interface{})
	Debug(msg string, props ...map[string]interface{})
}

// ContextKey type for storing context values
type contextKey string

// RequestIDKey carries the per-request id assigned by the request log middleware
const RequestIDKey contextKey = "request_id"

// WithRequestID returns a copy of ctx carrying id
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID returns the request id stored in ctx, or ""
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// contextLogger wraps a logger with context. It calls logAt directly so the
// reported location is its caller's, not this file.
type contextLogger struct {
	logger  *Logger
	context context.Context
}

// WithContext returns a logger that adds the request id from ctx to every entry
func (l *Logger) WithContext(ctx context.Context) LoggerInterface {
	return &contextLogger{
		logger:  l,
		context: ctx,
	}
}

// Helper to merge context fields with provided fields
func (c *contextLogger) mergeContextFields(props []map[string]interface{}) map[string]interface{} {
	fields := make(map[string]interface{})
	if len(props) > 0 {
		for k, v := range props[0] {
			fields[k] = v
		}
	}

	if reqID := RequestID(c.context); reqID != "" {
		fields["request_id"] = reqID
	}

	return fields
}

func (c *contextLogger) Info(msg string, props ...map[string]interface{}) {
	c.logger.logAt(callerDepth, logrus.InfoLevel, msg, c.mergeContextFields(props))
}

func (c *contextLogger) Error(msg string, props ...map[string]interface{}) {
	c.logger.logAt(callerDepth, logrus.ErrorLevel, msg, c.mergeContextFields(props))
}

func (c *contextLogger) Debug(msg string, props ...map[string]interface{}) {
	c.logger.logAt(callerDepth, logrus.DebugLevel, msg, c.mergeContextFields(props))
}
