package notify

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is the severity of a notice
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Notice is a transient user-facing message raised by an action
type Notice struct {
	ID      uuid.UUID `json:"id"`
	Level   Level     `json:"level"`
	Screen  string    `json:"screen"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// New stamps a notice with a fresh id and the current time
func New(level Level, screen, message string) Notice {
	return Notice{
		ID:      uuid.New(),
		Level:   level,
		Screen:  screen,
		Message: message,
		At:      time.Now(),
	}
}

// Notifier receives notices
type Notifier interface {
	Notify(n Notice)
}

// Func adapts a function to Notifier
type Func func(Notice)

func (f Func) Notify(n Notice) { f(n) }

// Recorder keeps every notice in memory
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of what has been recorded
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Last returns the most recent notice
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

// Reset drops the history
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = nil
}

// LogNotifier writes notices to the standard logger
type LogNotifier struct{}

func (LogNotifier) Notify(n Notice) {
	log.Printf("[Notice] %s %s: %s", n.Screen, n.Level, n.Message)
}

// Multi fans a notice out to several notifiers in order
type Multi []Notifier

func (m Multi) Notify(n Notice) {
	for _, target := range m {
		if target != nil {
			target.Notify(n)
		}
	}
}

// Discard drops every notice
var Discard Notifier = Func(func(Notice) {})
