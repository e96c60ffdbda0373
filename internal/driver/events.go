package driver

import "time"

// Stage describes a phase of formatting one file.
type Stage string

const (
	// StageRead is reading and decoding the file.
	StageRead Stage = "read"
	// StageFormat is lexing, parsing and rendering.
	StageFormat Stage = "format"
	// StageWrite is the backup and the atomic rewrite.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is running.
	StatusWorking Status = "working"
	// StatusUnchanged indicates the file was already formatted.
	StatusUnchanged Status = "unchanged"
	// StatusChanged indicates formatting changed (or would change) the file.
	StatusChanged Status = "changed"
	// StatusError indicates the file failed and was left untouched.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Terminal reports whether the event ends the work on its file.
func (e Event) Terminal() bool {
	switch e.Status {
	case StatusUnchanged, StatusChanged, StatusError:
		return true
	default:
		return false
	}
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: workers report from their own goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}
