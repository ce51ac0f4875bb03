// Package wberrors defines the error type used throughout plotkit.
//
// Use Newf, Enrichf and Bubblef instead of `fmt.Errorf` and `errors.New`:
//
//   - Newf constructs an error from a formatted message.
//   - Enrichf adds context to an error without exposing it to errors.Is.
//   - Bubblef adds context and keeps the inner error matchable with errors.Is.
//
// Attr and SkipSentryIf return the error to allow chaining:
//
//	return wberrors.Bubblef(ErrInvalidConfiguration, "legend location").
//		Attr(slog.String("location", loc)).
//		SkipSentryIf(true)
package wberrors

import (
	"fmt"
	"log/slog"
	"maps"
)

// Attrs returns any slog attrs stored in the error.
func Attrs(err error) []slog.Attr {
	wberr, ok := err.(*Error)
	if !ok {
		return nil
	}

	attrs := make([]slog.Attr, 0, len(wberr.attrs))
	for key, value := range wberr.attrs {
		attrs = append(attrs, slog.Attr{Key: key, Value: value})
	}
	return attrs
}

// Tags returns the attrs of the error rendered as Sentry tags.
func Tags(err error) map[string]string {
	wberr, ok := err.(*Error)
	if !ok {
		return nil
	}

	tags := make(map[string]string, len(wberr.attrs))
	for key, value := range wberr.attrs {
		tags[key] = value.String()
	}
	return tags
}

// SkipSentry reports whether the error was marked as not worth capturing.
func SkipSentry(err error) bool {
	if wberr, ok := err.(*Error); ok {
		return wberr.noSentry
	}
	return false
}

// Error is a Go error with structured data for logging.
//
// Errors are not safe for concurrent use. Construct and enrich an error in a
// single statement.
type Error struct {
	msg string
	err error // wrapped error or nil

	noSentry bool

	// attrs is included in slog records and uploaded as Sentry tags.
	attrs map[string]slog.Value
}

// Newf creates a new error using Sprintf to construct the message.
func Newf(format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// Enrichf prefixes the message of err without exposing err to errors.Unwrap.
//
// An empty format keeps the message of err unchanged. Attrs and the Sentry
// flag of an enriched err carry over.
func Enrichf(err error, format string, args ...any) *Error {
	return wrap(fmt.Sprintf(format, args...), err, false)
}

// Bubblef is like Enrichf, but exposes err through errors.Unwrap.
//
// Use it for sentinel errors that callers check with errors.Is.
func Bubblef(err error, format string, args ...any) *Error {
	return wrap(fmt.Sprintf(format, args...), err, true)
}

func wrap(msg string, err error, shouldWrap bool) *Error {
	if err == nil {
		panic("wberrors: cannot wrap nil error")
	}

	wrapped := &Error{}

	switch {
	case shouldWrap:
		wrapped.msg = msg
		wrapped.err = err
	case msg == "":
		wrapped.msg = err.Error()
	default:
		wrapped.msg = fmt.Sprintf("%s: %v", msg, err)
	}

	if wberr, ok := err.(*Error); ok {
		wrapped.noSentry = wberr.noSentry
		wrapped.attrs = maps.Clone(wberr.attrs)
	}

	return wrapped
}

// Attr associates structured data to the error and returns the error.
//
// An attr with the same key is overwritten.
func (e *Error) Attr(attr slog.Attr) *Error {
	if e.attrs == nil {
		e.attrs = make(map[string]slog.Value)
	}

	e.attrs[attr.Key] = attr.Value
	return e
}

// SkipSentryIf marks the error as not to be uploaded if condition is true.
func (e *Error) SkipSentryIf(condition bool) *Error {
	e.noSentry = e.noSentry || condition
	return e
}

// Error implements error.Error.
func (e *Error) Error() string {
	switch {
	case e.err == nil:
		return e.msg
	case e.msg == "":
		return e.err.Error()
	default:
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
}

// Unwrap returns the inner error of Bubblef.
func (e *Error) Unwrap() error {
	return e.err
}
