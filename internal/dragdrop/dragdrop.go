// Package dragdrop computes where a dragged row lands. It is pure geometry:
// no collection state, no rendering, just boxes and a pointer.
package dragdrop

// Box is the rendered bounds of one candidate row. The row currently being
// dragged must not be among the candidates.
type Box struct {
	ID     string
	Top    int
	Height int
}

// InsertBefore returns the id of the candidate the dragged row should be
// inserted before, given the pointer's vertical position. Among candidates
// whose midpoint lies below the pointer, the nearest one wins. ok=false
// means the pointer is below every midpoint: insert at the end.
func InsertBefore(boxes []Box, y int) (id string, ok bool) {
	best := 0
	for _, b := range boxes {
		offset := y - (b.Top + b.Height/2)
		if offset >= 0 {
			continue
		}
		if !ok || offset > best {
			best = offset
			id = b.ID
			ok = true
		}
	}
	return id, ok
}

// Reordered builds the id sequence that results from dropping dragged before
// anchor (or at the end when atEnd). order is the current sequence including
// the dragged id.
func Reordered(order []string, dragged, anchor string, atEnd bool) []string {
	rest := make([]string, 0, len(order))
	for _, id := range order {
		if id != dragged {
			rest = append(rest, id)
		}
	}
	if atEnd {
		return append(rest, dragged)
	}
	out := make([]string, 0, len(order))
	inserted := false
	for _, id := range rest {
		if id == anchor && !inserted {
			out = append(out, dragged)
			inserted = true
		}
		out = append(out, id)
	}
	if !inserted {
		out = append(out, dragged)
	}
	return out
}
