package plotui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wandb/wandb/plotkit/internal/datasource"
)

// TimerFiredMsg reports an expired Dispatcher timer.
type TimerFiredMsg struct {
	ID uint64
}

// FileChangedMsg indicates that the history file has changed.
type FileChangedMsg struct{}

// HistoryLoadedMsg carries a freshly read history file.
type HistoryLoadedMsg struct {
	History *datasource.History
	Err     error
}

// SystemSampleMsg carries one host utilization reading.
type SystemSampleMsg struct {
	Sample datasource.SystemSample
	Err    error
}

// sampleTickMsg asks for the next host reading.
type sampleTickMsg struct{}

// eventMsg wraps a message received from the event channel.
type eventMsg struct {
	msg tea.Msg
}
