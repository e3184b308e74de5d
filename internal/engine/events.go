package engine

import (
	"os"
	"time"

	"github.com/Paintersrp/devrun/internal/runtime"
)

// EventType identifies the lifecycle notifications fed into the supervisor's
// state-transition function.
type EventType string

const (
	EventTypeChildExited    EventType = "child_exited"
	EventTypeChildFailed    EventType = "child_failed"
	EventTypeSignalReceived EventType = "signal_received"
)

// Event represents a single lifecycle notification.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Task      string
	// Index is the position of the task in the supervisor's task list.
	// Task names are not required to be unique.
	Index  int
	Status runtime.ExitStatus
	Err    error
	Signal os.Signal
}

const (
	ReasonChildExit   = "child_exit"
	ReasonSpawnFailed = "spawn_failed"
	ReasonSignal      = "signal"
)

func childExited(index int, task string, status runtime.ExitStatus) Event {
	return Event{Timestamp: time.Now(), Type: EventTypeChildExited, Task: task, Index: index, Status: status}
}

func childFailed(index int, task string, err error) Event {
	return Event{Timestamp: time.Now(), Type: EventTypeChildFailed, Task: task, Index: index, Err: err}
}

func signalReceived(sig os.Signal) Event {
	return Event{Timestamp: time.Now(), Type: EventTypeSignalReceived, Signal: sig}
}
