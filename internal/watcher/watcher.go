// Package watcher reports changes to data files so charts can reload them.
package watcher

import (
	"time"

	"github.com/wandb/wandb/plotkit/internal/observability"
)

// Watcher invokes callbacks when watched files are written or recreated.
type Watcher interface {
	// Watch begins polling the file at path.
	//
	// onChange runs on a watcher goroutine after the file's modification
	// time or size changes. Changes within one polling period coalesce.
	Watch(path string, onChange func()) error

	// Finish stops polling and waits for in-flight callbacks to return.
	Finish()
}

type Params struct {
	Logger *observability.CoreLogger

	// PollingPeriod is how often files are checked. Defaults to 500ms.
	PollingPeriod time.Duration
}

func New(params Params) Watcher {
	return newPollingWatcher(params)
}
