// Package collection owns the ordered, mutable item list of one life area.
//
// The collection is the source of truth for order and content. Every
// mutation synchronously writes the full snapshot to its store key; invalid
// input (blank text, unknown id, bad reorder) is a benign no-op, never an
// error. The only errors that cross this boundary come from the store.
package collection

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"vida/internal/model"
	"vida/internal/store"
)

// Option configures a Collection at load time.
type Option func(*Collection)

// WithOnCompleted registers the hook invoked exactly once per false→true
// completion transition. The hook runs synchronously and must not panic.
func WithOnCompleted(fn func(area model.Area)) Option {
	return func(c *Collection) { c.onCompleted = fn }
}

// WithIDFunc overrides id generation (tests want stable ids).
func WithIDFunc(fn func() string) Option {
	return func(c *Collection) { c.newID = fn }
}

// Collection is the ordered item list of one area.
type Collection struct {
	area        model.Area
	key         string
	kv          store.KV
	items       []model.Item
	pending     map[string]int // id -> mark generation, removal not yet committed
	markSeq     int
	onCompleted func(model.Area)
	newID       func() string
}

// Load builds the collection from the persisted snapshot under the area's
// key, falling back to a deep copy of defaults when the snapshot is absent
// or empty. The defaults slice is never aliased; mutating the loaded
// collection cannot touch the caller's template.
func Load(kv store.KV, area model.Area, defaults []model.Item, opts ...Option) (*Collection, error) {
	c := &Collection{
		area:    area,
		key:     store.GoalsKey(area),
		kv:      kv,
		pending: map[string]int{},
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}

	raw, ok, err := kv.Get(c.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	if ok && len(raw) > 0 {
		var items []model.Item
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("load %s: %w", c.key, err)
		}
		if len(items) > 0 {
			c.items = items
			return c, nil
		}
	}
	c.items = make([]model.Item, len(defaults))
	copy(c.items, defaults)
	return c, nil
}

// Area returns the area this collection belongs to.
func (c *Collection) Area() model.Area { return c.area }

// Len returns the number of items.
func (c *Collection) Len() int { return len(c.items) }

// Items returns a copy of the items in canonical order.
func (c *Collection) Items() []model.Item {
	out := make([]model.Item, len(c.items))
	copy(out, c.items)
	return out
}

// IDs returns the id sequence in canonical order.
func (c *Collection) IDs() []string {
	ids := make([]string, len(c.items))
	for i, it := range c.items {
		ids[i] = it.ID
	}
	return ids
}

// Get returns the item with the given id.
func (c *Collection) Get(id string) (model.Item, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	return model.Item{}, false
}

func (c *Collection) index(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add prepends a new uncompleted item with a fresh id. Blank text (after
// trimming) is a silent no-op.
func (c *Collection) Add(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	it := model.Item{ID: c.newID(), Text: text}
	c.items = append([]model.Item{it}, c.items...)
	return c.persist()
}

// Delete removes the item with the given id; unknown ids are a no-op.
func (c *Collection) Delete(id string) error {
	i := c.index(id)
	if i < 0 {
		return nil
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.pending, id)
	return c.persist()
}

// Toggle flips the item's completed flag, firing the completion hook on the
// false→true transition only. Persists in both directions.
func (c *Collection) Toggle(id string) error {
	i := c.index(id)
	if i < 0 {
		return nil
	}
	c.items[i].Completed = !c.items[i].Completed
	if c.items[i].Completed && c.onCompleted != nil {
		c.onCompleted(c.area)
	}
	return c.persist()
}

// Edit replaces the item's text. A blank replacement is discarded and the
// previous text kept; persistence happens only when the text really changed.
func (c *Collection) Edit(id, newText string) error {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return nil
	}
	i := c.index(id)
	if i < 0 || c.items[i].Text == newText {
		return nil
	}
	c.items[i].Text = newText
	return c.persist()
}

// Reorder re-sorts the collection to match ids. The argument must be a full
// permutation of the current id set; anything else (missing ids, foreign
// ids, duplicates) leaves the collection untouched.
func (c *Collection) Reorder(ids []string) error {
	if len(ids) != len(c.items) {
		return nil
	}
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, dup := pos[id]; dup {
			return nil
		}
		pos[id] = i
	}
	for _, it := range c.items {
		if _, ok := pos[it.ID]; !ok {
			return nil
		}
	}
	sort.SliceStable(c.items, func(i, j int) bool {
		return pos[c.items[i].ID] < pos[c.items[j].ID]
	})
	return c.persist()
}

// MarkForRemoval starts the two-phase delete: the item stays in memory and
// storage, flagged so the projection can fade it out. Each mark gets a fresh
// generation; FinishRemoval must present it, so a timer armed for an earlier
// mark of the same id cannot commit after a cancel and re-mark.
func (c *Collection) MarkForRemoval(id string) (gen int, ok bool) {
	if c.index(id) < 0 {
		return 0, false
	}
	c.markSeq++
	c.pending[id] = c.markSeq
	return c.markSeq, true
}

// CancelRemoval clears the removal flag without touching the item.
func (c *Collection) CancelRemoval(id string) {
	delete(c.pending, id)
}

// FinishRemoval commits the removal marked with gen. Unmarked ids and stale
// generations are ignored; a plain Delete for ids that were never marked
// would skip the fade.
func (c *Collection) FinishRemoval(id string, gen int) error {
	if gen <= 0 || c.pending[id] != gen {
		return nil
	}
	return c.Delete(id)
}

// PendingRemoval reports whether the id is marked for removal.
func (c *Collection) PendingRemoval(id string) bool {
	_, ok := c.pending[id]
	return ok
}

func (c *Collection) persist() error {
	b, err := json.Marshal(c.items)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.key, err)
	}
	if err := c.kv.Set(c.key, b); err != nil {
		return fmt.Errorf("persist %s: %w", c.key, err)
	}
	return nil
}
