package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	poller "github.com/radovskyb/watcher"
	"golang.org/x/sync/errgroup"

	"github.com/wandb/wandb/plotkit/internal/observability"
	"github.com/wandb/wandb/plotkit/internal/observability/wberrors"
)

const defaultPollingPeriod = 500 * time.Millisecond

type pollingWatcher struct {
	mu       sync.Mutex
	logger   *observability.CoreLogger
	delegate *poller.Watcher
	wg       sync.WaitGroup
	handlers map[string]func()
	finished bool

	period time.Duration
}

func newPollingWatcher(params Params) *pollingWatcher {
	if params.PollingPeriod <= 0 {
		params.PollingPeriod = defaultPollingPeriod
	}
	if params.Logger == nil {
		params.Logger = observability.NewNoOpLogger()
	}

	return &pollingWatcher{
		logger:   params.Logger,
		handlers: make(map[string]func()),
		period:   params.PollingPeriod,
	}
}

func (w *pollingWatcher) Watch(path string, onChange func()) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finished {
		return wberrors.Newf("watcher: Watch() called after Finish()")
	}

	if w.delegate == nil {
		if err := w.start(); err != nil {
			return err
		}
	}

	// Events carry absolute paths.
	abs, err := filepath.Abs(path)
	if err != nil {
		return wberrors.Enrichf(err, "watcher: resolving %s", path)
	}
	if err := w.delegate.Add(abs); err != nil {
		return wberrors.Enrichf(err, "watcher: adding %s", path)
	}
	w.handlers[abs] = onChange

	return nil
}

func (w *pollingWatcher) Finish() {
	w.mu.Lock()
	w.finished = true
	delegate := w.delegate
	w.mu.Unlock()

	if delegate != nil {
		delegate.Close()
	}
	w.wg.Wait()
}

// start launches the polling loop and the event loop.
//
// It returns once polling is running, or with the error that kept it from
// starting. Close() is a no-op until then.
func (w *pollingWatcher) start() error {
	w.delegate = poller.New()
	// The poller may report Create for an existing file when Add races its
	// loop, so Create and Write are treated alike.
	w.delegate.FilterOps(poller.Write, poller.Create)

	grp, ctx := errgroup.WithContext(context.Background())
	w.wg.Add(2)

	grp.Go(func() error {
		defer w.wg.Done()
		w.loop(ctx)
		return nil
	})

	grp.Go(func() error {
		defer w.wg.Done()
		return w.delegate.Start(w.period)
	})

	started := make(chan struct{})
	go func() {
		w.delegate.Wait()
		close(started)
	}()

	select {
	case <-started:
		return nil
	case <-ctx.Done():
		return grp.Wait()
	}
}

// loop dispatches file events until the poller closes.
//
// ctx ends the loop if the poller fails to start, in which case none of its
// channels ever receive.
func (w *pollingWatcher) loop(ctx context.Context) {
	for {
		select {
		case event := <-w.delegate.Event:
			if event.IsDir() {
				continue
			}
			w.dispatch(event.Path)

		case err := <-w.delegate.Error:
			w.logger.CaptureError(fmt.Errorf("watcher: polling error: %v", err))

		case <-w.delegate.Closed:
			return

		case <-ctx.Done():
			return
		}
	}
}

func (w *pollingWatcher) dispatch(path string) {
	w.mu.Lock()
	handler := w.handlers[path]
	w.mu.Unlock()

	if handler != nil {
		handler()
	}
}
