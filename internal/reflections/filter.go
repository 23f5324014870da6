package reflections

import (
	"sort"
	"strings"
	"time"

	"vida/internal/model"
)

// Range selects how far back the view reaches.
type Range string

const (
	RangeAll   Range = "all"
	RangeToday Range = "today"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
)

// Sort orders the view by creation timestamp.
type Sort string

const (
	SortAsc  Sort = "asc"
	SortDesc Sort = "desc"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// Filter bundles the view parameters.
type Filter struct {
	Search   string
	Category string // one of model.ReflectionCategories, or CategoryAll
	Range    Range
	Sort     Sort
}

// Apply computes the derived view: text filter, category filter, date-range
// filter, then a stable sort by timestamp. The input is never mutated and
// identical inputs produce identical output.
//
// Range anchors are deliberately asymmetric: "today" starts at the local
// midnight of now, while "week" and "month" count back from the end of the
// current day.
func Apply(entries []model.Reflection, f Filter, now time.Time) []model.Reflection {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	cutoff, bounded := rangeCutoff(f.Range, now)

	out := make([]model.Reflection, 0, len(entries))
	for _, e := range entries {
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Title), search) &&
			!strings.Contains(strings.ToLower(e.Text), search) {
			continue
		}
		if f.Category != "" && f.Category != CategoryAll && e.Category != f.Category {
			continue
		}
		if bounded && e.Timestamp < cutoff {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if f.Sort == SortAsc {
			return out[i].Timestamp < out[j].Timestamp
		}
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}

func rangeCutoff(r Range, now time.Time) (int64, bool) {
	y, m, d := now.Date()
	loc := now.Location()
	switch r {
	case RangeToday:
		return time.Date(y, m, d, 0, 0, 0, 0, loc).UnixMilli(), true
	case RangeWeek:
		end := time.Date(y, m, d, 23, 59, 59, 999_000_000, loc)
		return end.Add(-7 * 24 * time.Hour).UnixMilli(), true
	case RangeMonth:
		end := time.Date(y, m, d, 23, 59, 59, 999_000_000, loc)
		return end.Add(-30 * 24 * time.Hour).UnixMilli(), true
	}
	return 0, false
}
