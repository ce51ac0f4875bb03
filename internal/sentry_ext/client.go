// Package sentry_ext wraps the Sentry SDK with de-duplication of recent events.
package sentry_ext

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
)

type Params struct {
	// DSN is the Data Source Name for the Sentry client.
	//
	// An empty DSN disables uploads.
	DSN string
	// AttachStacktrace attaches a stacktrace to message events.
	AttachStacktrace bool
	// Release is the version of the application.
	Release string
	// Environment is the environment the application is running in.
	Environment string
	// BeforeSend modifies events before they are sent.
	BeforeSend func(*sentry.Event, *sentry.EventHint) *sentry.Event
	// LRUSize is the number of recent events remembered for de-duplication.
	LRUSize int
	// Transport overrides the event transport. Used for testing.
	Transport sentry.Transport
}

type Client struct {
	// recent tracks events sent recently to avoid uploading duplicates.
	recent *cache
}

// New initializes the Sentry SDK and returns a client.
//
// Returns nil if the de-duplication cache cannot be created.
func New(params Params) *Client {
	if params.BeforeSend == nil {
		params.BeforeSend = RemoveBottomFrames
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              params.DSN,
		AttachStacktrace: params.AttachStacktrace,
		Release:          params.Release,
		BeforeSend:       params.BeforeSend,
		Environment:      params.Environment,
		Transport:        params.Transport,
	}); err != nil {
		slog.Error("sentry_ext: New: failed to initialize sentry", "err", err)
	}

	if params.DSN == "" {
		slog.Debug("sentry_ext: New: sentry is disabled, no DSN provided")
	}

	recent, err := newCache(params.LRUSize)
	if err != nil {
		slog.Error("sentry_ext: New: failed to create cache", "err", err)
		return nil
	}

	return &Client{recent: recent}
}

// CaptureException sends an error-level event enriched with tags.
func (s *Client) CaptureException(err error, tags map[string]string) {
	if !s.recent.shouldCapture(err.Error()) {
		return
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
	})
	hub.CaptureException(err)
}

// CaptureMessage sends an info-level event enriched with tags.
func (s *Client) CaptureMessage(msg string, tags map[string]string) {
	if !s.recent.shouldCapture(msg) {
		return
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
	})
	hub.CaptureMessage(msg)
}

// Reraise captures a recovered panic value and panics with it again.
func (s *Client) Reraise(recovered any, tags map[string]string) {
	if recovered == nil {
		return
	}

	err, ok := recovered.(error)
	if !ok {
		err = fmt.Errorf("%v", recovered)
	}
	s.CaptureException(err, tags)
	sentry.Flush(2 * time.Second)
	panic(recovered)
}

// Flush waits until buffered events are sent or the timeout expires.
func (s *Client) Flush(timeout time.Duration) bool {
	return sentry.CurrentHub().Flush(timeout)
}

// RemoveBottomFrames drops the frames contributed by this package and the
// logger from recovered panics.
func RemoveBottomFrames(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	for i, exception := range event.Exception {
		if exception.Stacktrace == nil {
			continue
		}

		frames := exception.Stacktrace.Frames
		n := len(frames)
		if n < 3 {
			continue
		}

		for j := n - 1; j >= n-3; j-- {
			path := frames[j].AbsPath
			if !strings.HasSuffix(path, "client.go") &&
				!strings.HasSuffix(path, "logging.go") {
				break
			}
			frames = frames[:j]
		}
		event.Exception[i].Stacktrace.Frames = frames
	}
	return event
}
