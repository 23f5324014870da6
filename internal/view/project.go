// Package view turns collection state into a display-ready projection.
// It never mutates the items it reads; presentation layers render the rows
// and feed user intent back to the collection.
package view

import (
	"vida/internal/model"
	"vida/internal/sanitize"
)

// Row is one render-ready entry.
type Row struct {
	ID             string
	Text           string // sanitized, safe for any rendering surface
	Time           string
	Completed      bool
	Editing        bool
	EditText       string // raw current text, pre-fills the inline editor
	PendingRemoval bool
	Placeholder    bool // the single "nothing here yet" row of an empty list
}

// Project maps items (in canonical order) to rows. editingID marks the item
// whose row should carry an open inline editor; pending reports which items
// are mid two-phase delete (nil means none). An empty collection projects to
// a single placeholder row.
func Project(items []model.Item, editingID string, pending func(id string) bool) []Row {
	if len(items) == 0 {
		return []Row{{Placeholder: true}}
	}
	rows := make([]Row, len(items))
	for i, it := range items {
		r := Row{
			ID:        it.ID,
			Text:      sanitize.Clean(it.Text),
			Time:      it.Time,
			Completed: it.Completed,
		}
		if it.ID == editingID {
			r.Editing = true
			r.EditText = it.Text
		}
		if pending != nil && pending(it.ID) {
			r.PendingRemoval = true
		}
		rows[i] = r
	}
	return rows
}
