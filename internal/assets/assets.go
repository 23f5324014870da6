// Package assets tracks possessions of the financial area and derives their
// replacement horizon. Unlike goal items, invalid input here is rejected
// loudly: the caller keeps the in-progress values and gets a typed error.
package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vida/internal/model"
	"vida/internal/store"
)

// DateLayout is the calendar format of purchase dates.
const DateLayout = "2006-01-02"

// ReplacementYears is how long an asset is expected to last.
const ReplacementYears = 7

// Validation errors returned by Add and Edit.
var (
	ErrNameRequired = errors.New("asset name is required")
	ErrDateRequired = errors.New("purchase date is required")
	ErrBadDate      = errors.New("purchase date must be YYYY-MM-DD")
)

// TrackerOption configures a Tracker at load time.
type TrackerOption func(*Tracker)

// WithIDFunc overrides id generation.
func WithIDFunc(fn func() string) TrackerOption {
	return func(t *Tracker) { t.newID = fn }
}

// Tracker owns the asset list and its persistence key.
type Tracker struct {
	kv     store.KV
	assets []model.Asset
	newID  func() string
}

// LoadTracker restores the tracker from its store key.
func LoadTracker(kv store.KV, opts ...TrackerOption) (*Tracker, error) {
	t := &Tracker{kv: kv, newID: uuid.NewString}
	for _, opt := range opts {
		opt(t)
	}
	raw, ok, err := kv.Get(store.AssetsKey)
	if err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}
	if ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &t.assets); err != nil {
			return nil, fmt.Errorf("load assets: %w", err)
		}
	}
	return t, nil
}

// Assets returns a copy of the list.
func (t *Tracker) Assets() []model.Asset {
	out := make([]model.Asset, len(t.assets))
	copy(out, t.assets)
	return out
}

// Get returns the asset with the given id.
func (t *Tracker) Get(id string) (model.Asset, bool) {
	for _, a := range t.assets {
		if a.ID == id {
			return a, true
		}
	}
	return model.Asset{}, false
}

func validate(name, purchaseDate string) (string, string, error) {
	name = strings.TrimSpace(name)
	purchaseDate = strings.TrimSpace(purchaseDate)
	if name == "" {
		return "", "", ErrNameRequired
	}
	if purchaseDate == "" {
		return "", "", ErrDateRequired
	}
	if _, err := time.Parse(DateLayout, purchaseDate); err != nil {
		return "", "", ErrBadDate
	}
	return name, purchaseDate, nil
}

// Add validates and appends a new asset. On a validation error nothing is
// inserted.
func (t *Tracker) Add(name, purchaseDate string) (model.Asset, error) {
	name, purchaseDate, err := validate(name, purchaseDate)
	if err != nil {
		return model.Asset{}, err
	}
	a := model.Asset{ID: t.newID(), Name: name, PurchaseDate: purchaseDate}
	t.assets = append(t.assets, a)
	if err := t.persist(); err != nil {
		return model.Asset{}, err
	}
	return a, nil
}

// Edit validates and replaces both fields of an existing asset. A validation
// error leaves the stored asset untouched; the caller keeps the in-progress
// values and decides how to re-prompt. Unknown ids are a no-op.
func (t *Tracker) Edit(id, name, purchaseDate string) error {
	name, purchaseDate, err := validate(name, purchaseDate)
	if err != nil {
		return err
	}
	for i := range t.assets {
		if t.assets[i].ID == id {
			t.assets[i].Name = name
			t.assets[i].PurchaseDate = purchaseDate
			return t.persist()
		}
	}
	return nil
}

// Delete removes the asset with the given id. Confirmation is the caller's
// responsibility; the tracker removes unconditionally.
func (t *Tracker) Delete(id string) error {
	for i := range t.assets {
		if t.assets[i].ID == id {
			t.assets = append(t.assets[:i], t.assets[i+1:]...)
			return t.persist()
		}
	}
	return nil
}

// ReplacementDate derives when an asset bought on purchaseDate is due for
// replacement. Derived on every call, never stored.
func ReplacementDate(purchaseDate string) (string, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(purchaseDate))
	if err != nil {
		return "", ErrBadDate
	}
	return d.AddDate(ReplacementYears, 0, 0).Format(DateLayout), nil
}

func (t *Tracker) persist() error {
	b, err := json.Marshal(t.assets)
	if err != nil {
		return fmt.Errorf("marshal assets: %w", err)
	}
	if err := t.kv.Set(store.AssetsKey, b); err != nil {
		return fmt.Errorf("persist assets: %w", err)
	}
	return nil
}
