package core

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"josephlewis.net/smallsh/core/config"
)

// Recorder writes a JSON-lines log of one interpreter session: dispatched
// commands, process starts and exits, and mode toggles. A nil *Recorder is a
// valid no-op, so session logging can be disabled without touching callers.
type Recorder struct {
	// SessionID identifies this session in the log entries.
	SessionID string

	mu     sync.Mutex
	enc    *json.Encoder
	closer io.Closer
}

type logEntry struct {
	Time       time.Time `json:"time"`
	Session    string    `json:"session"`
	Event      string    `json:"event"`
	Argv       []string  `json:"argv,omitempty"`
	Builtin    bool      `json:"builtin,omitempty"`
	Pid        int       `json:"pid,omitempty"`
	Background bool      `json:"background,omitempty"`
	ExitCode   int       `json:"exit_code"`
	Signal     int       `json:"signal,omitempty"`
	Entering   bool      `json:"entering,omitempty"`
}

// OpenRecorder creates a session log under the configuration's log
// directory.
func OpenRecorder(configuration *config.Configuration) (*Recorder, error) {
	id := uuid.NewString()
	fd, err := configuration.CreateSessionLog(id + ".log")
	if err != nil {
		return nil, err
	}
	return NewRecorder(id, fd), nil
}

// NewRecorder wraps an open log sink.
func NewRecorder(sessionID string, w io.WriteCloser) *Recorder {
	return &Recorder{
		SessionID: sessionID,
		enc:       json.NewEncoder(w),
		closer:    w,
	}
}

func (r *Recorder) log(entry logEntry) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.Time = time.Now()
	entry.Session = r.SessionID
	// A log write failure must never break the interpreter.
	_ = r.enc.Encode(entry)
}

// CommandDispatched records one parsed command entering dispatch.
func (r *Recorder) CommandDispatched(argv []string, builtin bool) {
	r.log(logEntry{Event: "dispatch", Argv: argv, Builtin: builtin})
}

// ProcessStarted records a successful spawn.
func (r *Recorder) ProcessStarted(pid int, argv []string, background bool) {
	r.log(logEntry{Event: "start", Pid: pid, Argv: argv, Background: background})
}

// ProcessExited records a foreground completion.
func (r *Recorder) ProcessExited(pid, exitCode, sig int) {
	r.log(logEntry{Event: "exit", Pid: pid, ExitCode: exitCode, Signal: sig})
}

// ModeToggled records a foreground-only mode flip.
func (r *Recorder) ModeToggled(entering bool) {
	r.log(logEntry{Event: "mode", Entering: entering})
}

// Close flushes and closes the underlying log.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	return r.closer.Close()
}
