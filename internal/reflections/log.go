// Package reflections keeps the shared reflections log and computes the
// filtered, sorted views the UI shows. The log owns its entries; views are
// always derived from the full set, never updated incrementally.
package reflections

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vida/internal/model"
	"vida/internal/store"
)

// LogOption configures a Log at load time.
type LogOption func(*Log)

// WithLogIDFunc overrides id generation.
func WithLogIDFunc(fn func() string) LogOption {
	return func(l *Log) { l.newID = fn }
}

// WithClock overrides the creation-time source.
func WithClock(fn func() time.Time) LogOption {
	return func(l *Log) { l.now = fn }
}

// Log is the persisted reflections journal.
type Log struct {
	kv      store.KV
	entries []model.Reflection
	newID   func() string
	now     func() time.Time
}

// LoadLog restores the log from its store key; an absent snapshot is an
// empty log.
func LoadLog(kv store.KV, opts ...LogOption) (*Log, error) {
	l := &Log{kv: kv, newID: uuid.NewString, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	raw, ok, err := kv.Get(store.ReflectionsKey)
	if err != nil {
		return nil, fmt.Errorf("load reflections: %w", err)
	}
	if ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &l.entries); err != nil {
			return nil, fmt.Errorf("load reflections: %w", err)
		}
	}
	return l, nil
}

// Entries returns a copy of the full log.
func (l *Log) Entries() []model.Reflection {
	out := make([]model.Reflection, len(l.entries))
	copy(out, l.entries)
	return out
}

// Add appends a new entry stamped with the creation instant. Blank title or
// text (after trimming) and categories outside the closed set are silent
// no-ops.
func (l *Log) Add(category, title, text, date string) error {
	title = strings.TrimSpace(title)
	text = strings.TrimSpace(text)
	if title == "" || text == "" || !model.ValidReflectionCategory(category) {
		return nil
	}
	l.entries = append(l.entries, model.Reflection{
		ID:        l.newID(),
		Category:  category,
		Title:     title,
		Text:      text,
		Date:      date,
		Timestamp: l.now().UnixMilli(),
	})
	return l.persist()
}

// Delete removes the entry with the given id; unknown ids are a no-op.
func (l *Log) Delete(id string) error {
	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return l.persist()
		}
	}
	return nil
}

func (l *Log) persist() error {
	b, err := json.Marshal(l.entries)
	if err != nil {
		return fmt.Errorf("marshal reflections: %w", err)
	}
	if err := l.kv.Set(store.ReflectionsKey, b); err != nil {
		return fmt.Errorf("persist reflections: %w", err)
	}
	return nil
}
