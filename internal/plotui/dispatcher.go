package plotui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wandb/wandb/plotkit/internal/debounce"
)

// Dispatcher runs timer callbacks on the bubbletea update goroutine.
//
// An expired timer posts a TimerFiredMsg to the event channel, and the
// callback runs when Update receives it. Stopped timers never run.
type Dispatcher struct {
	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]func()

	events    chan<- tea.Msg
	done      chan struct{}
	closeOnce sync.Once
}

var _ debounce.Dispatcher = &Dispatcher{}

func NewDispatcher(events chan<- tea.Msg) *Dispatcher {
	return &Dispatcher{
		pending: make(map[uint64]func()),
		events:  events,
		done:    make(chan struct{}),
	}
}

func (d *Dispatcher) AfterFunc(delay time.Duration, f func()) debounce.Timer {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.pending[id] = f
	d.mu.Unlock()

	t := &dispatchTimer{dispatcher: d, id: id}
	t.timer = time.AfterFunc(delay, func() {
		select {
		case d.events <- TimerFiredMsg{ID: id}:
		case <-d.done:
		}
	})
	return t
}

// Fire runs the callback of an expired timer.
//
// Returns false if the timer was stopped or already fired.
func (d *Dispatcher) Fire(id uint64) bool {
	d.mu.Lock()
	f, ok := d.pending[id]
	delete(d.pending, id)
	d.mu.Unlock()

	if ok {
		f()
	}
	return ok
}

// Pending returns the number of scheduled callbacks.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Close drops all scheduled callbacks and unblocks expiring timers.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() { close(d.done) })

	d.mu.Lock()
	clear(d.pending)
	d.mu.Unlock()
}

func (d *Dispatcher) cancel(id uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[id]
	delete(d.pending, id)
	return ok
}

type dispatchTimer struct {
	dispatcher *Dispatcher
	id         uint64
	timer      *time.Timer
}

func (t *dispatchTimer) Stop() bool {
	t.timer.Stop()
	return t.dispatcher.cancel(t.id)
}
