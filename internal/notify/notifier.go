// Package notify scans for approaching deadlines and emits notifications
// through pluggable sinks: a structured-log sink and an in-memory journal
// the tool surface can read.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes notification classes.
type Kind string

const (
	KindDeadline Kind = "deadline"
	KindSummary  Kind = "daily_summary"
)

// Notification is one emitted alert.
type Notification struct {
	ID      string    `json:"id"`
	Kind    Kind      `json:"kind"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Notifier receives notifications. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l *LogNotifier) Notify(n Notification) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("notification", "kind", n.Kind, "title", n.Title, "message", n.Message)
}

// Journal retains the most recent notifications, newest first.
type Journal struct {
	mu    sync.Mutex
	max   int
	items []Notification
}

// NewJournal creates a journal keeping at most max entries.
func NewJournal(max int) *Journal {
	if max <= 0 {
		max = 50
	}
	return &Journal{max: max}
}

func (j *Journal) Notify(n Notification) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.items = append([]Notification{n}, j.items...)
	if len(j.items) > j.max {
		j.items = j.items[:j.max]
	}
}

// Recent returns a copy of the retained notifications, newest first.
func (j *Journal) Recent() []Notification {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]Notification(nil), j.items...)
}

// Fanout delivers each notification to every sink.
type Fanout []Notifier

func (f Fanout) Notify(n Notification) {
	for _, sink := range f {
		sink.Notify(n)
	}
}

func newNotification(kind Kind, title, message string, at time.Time) Notification {
	return Notification{
		ID:      uuid.NewString(),
		Kind:    kind,
		Title:   title,
		Message: message,
		Time:    at,
	}
}
