// Package observability provides the structured logger used across plotkit.
//
// A CoreLogger is a *slog.Logger that can also forward errors to Sentry.
package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/wandb/wandb/plotkit/internal/observability/wberrors"
	"github.com/wandb/wandb/plotkit/internal/sentry_ext"
)

type Tags map[string]string

// NewTags creates Tags from a mix of slog.Attr values and key-value pairs.
//
// Incomplete pairs and values of other types are ignored.
func NewTags(args ...any) Tags {
	tags := Tags{}
	for len(args) > 0 {
		switch x := args[0].(type) {
		case slog.Attr:
			tags[x.Key] = x.Value.String()
			args = args[1:]
		case string:
			if len(args) < 2 {
				return tags
			}
			attr := slog.Any(x, args[1])
			tags[attr.Key] = attr.Value.String()
			args = args[2:]
		default:
			args = args[1:]
		}
	}
	return tags
}

const LevelFatal = slog.Level(12)

type CoreLoggerParams struct {
	Sentry *sentry_ext.Client
	Tags   Tags
}

type CoreLogger struct {
	*slog.Logger
	baseTags Tags
	sentry   *sentry_ext.Client
}

func NewCoreLogger(logger *slog.Logger, params *CoreLoggerParams) *CoreLogger {
	if params == nil {
		params = &CoreLoggerParams{}
	}

	tags := Tags{}
	var args []any
	for key, value := range params.Tags {
		args = append(args, slog.String(key, value))
		tags[key] = value
	}

	return &CoreLogger{
		Logger:   logger.With(args...),
		sentry:   params.Sentry,
		baseTags: tags,
	}
}

// withArgs merges the given args with the logger's base tags.
//
// Base tags take precedence over args.
func (cl *CoreLogger) withArgs(args ...any) Tags {
	tags := NewTags(args...)
	for key, value := range cl.baseTags {
		tags[key] = value
	}
	return tags
}

// With returns a derived logger that includes the given tags in each message.
func (cl *CoreLogger) With(args ...any) *CoreLogger {
	return &CoreLogger{
		Logger:   cl.Logger.With(args...),
		baseTags: cl.baseTags,
		sentry:   cl.sentry,
	}
}

// CaptureError logs an error and sends it to Sentry.
//
// Attributes attached to the error with wberrors are added to the log record
// and to the Sentry tags. Errors marked with SkipSentryIf are only logged.
func (cl *CoreLogger) CaptureError(err error, args ...any) {
	for _, attr := range wberrors.Attrs(err) {
		args = append(args, attr)
	}
	cl.Error(err.Error(), args...)

	if cl.sentry != nil && !wberrors.SkipSentry(err) {
		tags := cl.withArgs(args...)
		for key, value := range wberrors.Tags(err) {
			tags[key] = value
		}
		cl.sentry.CaptureException(err, tags)
	}
}

// CaptureFatal logs a fatal error and sends it to Sentry.
func (cl *CoreLogger) CaptureFatal(err error, args ...any) {
	cl.Log(context.Background(), LevelFatal, err.Error(), args...)

	if cl.sentry != nil {
		cl.sentry.CaptureException(err, cl.withArgs(args...))
	}
}

// CaptureWarn logs a warning and sends it to Sentry.
func (cl *CoreLogger) CaptureWarn(msg string, args ...any) {
	cl.Warn(msg, args...)

	if cl.sentry != nil {
		cl.sentry.CaptureMessage(msg, cl.withArgs(args...))
	}
}

// Reraise reports panics to Sentry and panics again.
//
// Must be called directly with defer.
func (cl *CoreLogger) Reraise(args ...any) {
	if err := recover(); err != nil {
		if cl.sentry == nil {
			panic(err)
		}
		cl.sentry.Reraise(err, cl.withArgs(args...))
	}
}

// GetTags returns the tags associated with the logger.
//
// Used for testing.
func (cl *CoreLogger) GetTags() Tags {
	return cl.baseTags
}

// NewNoOpLogger returns a logger that discards all messages.
//
// Used for testing.
func NewNoOpLogger() *CoreLogger {
	return NewCoreLogger(
		slog.New(slog.NewJSONHandler(io.Discard, nil)),
		nil,
	)
}
