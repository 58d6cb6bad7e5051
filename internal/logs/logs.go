// Package logs is the editor's diagnostic sink. It is a slog.Handler that keeps
// the most recent records for the in-editor log window and forwards every record
// to a second handler (usually a text handler on stdout).
package logs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const DefaultCapacity = 200

// Entry is one recorded diagnostic line.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   string // "key=value" pairs, space separated
}

func (e Entry) IsError() bool {
	return e.Level >= slog.LevelError
}

// String renders the entry the way the log window shows it.
func (e Entry) String() string {
	tag := "info"
	switch {
	case e.Level >= slog.LevelError:
		tag = "error"
	case e.Level >= slog.LevelWarn:
		tag = "warn"
	case e.Level < slog.LevelInfo:
		tag = "debug"
	}
	if e.Attrs == "" {
		return fmt.Sprintf("[%s] %s", tag, e.Message)
	}
	return fmt.Sprintf("[%s] %s %s", tag, e.Message, e.Attrs)
}

// store is shared between a Logs handler and the handlers derived from it
// through WithAttrs/WithGroup.
type store struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int
	shown    bool
}

type Logs struct {
	st     *store
	next   slog.Handler
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// New creates a sink holding at most capacity entries. next may be nil.
func New(capacity int, level slog.Leveler, next slog.Handler) *Logs {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if level == nil {
		level = slog.LevelInfo
	}
	return &Logs{
		st:    &store{capacity: capacity, entries: make([]Entry, 0, capacity)},
		next:  next,
		level: level,
	}
}

// Logger returns a slog.Logger writing into this sink.
func (l *Logs) Logger() *slog.Logger {
	return slog.New(l)
}

func (l *Logs) Enabled(ctx context.Context, level slog.Level) bool {
	if level >= l.level.Level() {
		return true
	}
	return l.next != nil && l.next.Enabled(ctx, level)
}

func (l *Logs) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= l.level.Level() {
		l.append(r)
	}
	if l.next != nil && l.next.Enabled(ctx, r.Level) {
		return l.next.Handle(ctx, r)
	}
	return nil
}

func (l *Logs) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := l.clone()
	prefix := l.groupPrefix()
	for _, a := range attrs {
		a.Key = prefix + a.Key
		c.attrs = append(c.attrs, a)
	}
	if l.next != nil {
		c.next = l.next.WithAttrs(attrs)
	}
	return c
}

func (l *Logs) WithGroup(name string) slog.Handler {
	if name == "" {
		return l
	}
	c := l.clone()
	c.groups = append(c.groups, name)
	if l.next != nil {
		c.next = l.next.WithGroup(name)
	}
	return c
}

func (l *Logs) clone() *Logs {
	return &Logs{
		st:     l.st,
		next:   l.next,
		level:  l.level,
		attrs:  append([]slog.Attr(nil), l.attrs...),
		groups: append([]string(nil), l.groups...),
	}
}

func (l *Logs) groupPrefix() string {
	if len(l.groups) == 0 {
		return ""
	}
	return strings.Join(l.groups, ".") + "."
}

func (l *Logs) append(r slog.Record) {
	var b strings.Builder
	write := func(prefix string, a slog.Attr) {
		if a.Equal(slog.Attr{}) {
			return
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(prefix)
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(a.Value.Resolve().String())
	}
	for _, a := range l.attrs {
		write("", a)
	}
	prefix := l.groupPrefix()
	r.Attrs(func(a slog.Attr) bool {
		write(prefix, a)
		return true
	})

	e := Entry{Time: r.Time, Level: r.Level, Message: r.Message, Attrs: b.String()}

	l.st.mu.Lock()
	defer l.st.mu.Unlock()
	if len(l.st.entries) >= l.st.capacity {
		copy(l.st.entries, l.st.entries[1:])
		l.st.entries = l.st.entries[:len(l.st.entries)-1]
	}
	l.st.entries = append(l.st.entries, e)
	if e.IsError() {
		l.st.shown = true
	}
}

// Entries returns a copy of the recorded entries, oldest first.
func (l *Logs) Entries() []Entry {
	l.st.mu.Lock()
	defer l.st.mu.Unlock()
	out := make([]Entry, len(l.st.entries))
	copy(out, l.st.entries)
	return out
}

func (l *Logs) Len() int {
	l.st.mu.Lock()
	defer l.st.mu.Unlock()
	return len(l.st.entries)
}

// Errors counts recorded entries at error level.
func (l *Logs) Errors() int {
	l.st.mu.Lock()
	defer l.st.mu.Unlock()
	n := 0
	for _, e := range l.st.entries {
		if e.IsError() {
			n++
		}
	}
	return n
}

func (l *Logs) Clear() {
	l.st.mu.Lock()
	defer l.st.mu.Unlock()
	l.st.entries = l.st.entries[:0]
}

// IsShown reports whether the log window should be visible. An error entry
// opens it.
func (l *Logs) IsShown() bool {
	l.st.mu.Lock()
	defer l.st.mu.Unlock()
	return l.st.shown
}

func (l *Logs) SetShown(shown bool) {
	l.st.mu.Lock()
	defer l.st.mu.Unlock()
	l.st.shown = shown
}
