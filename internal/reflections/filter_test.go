package reflections

import (
	"reflect"
	"testing"
	"time"

	"vida/internal/model"
)

func entry(id, category, title, text string, ts int64) model.Reflection {
	return model.Reflection{ID: id, Category: category, Title: title, Text: text, Timestamp: ts}
}

func TestApplySortByTimestamp(t *testing.T) {
	entries := []model.Reflection{
		entry("e1", "Física", "uno", "", 1),
		entry("e2", "Física", "dos", "", 2),
		entry("e3", "Física", "tres", "", 3),
	}
	now := time.Now()

	got := Apply(entries, Filter{Sort: SortDesc}, now)
	if ids := ids(got); !reflect.DeepEqual(ids, []string{"e3", "e2", "e1"}) {
		t.Fatalf("desc order = %v", ids)
	}
	got = Apply(entries, Filter{Sort: SortAsc}, now)
	if ids := ids(got); !reflect.DeepEqual(ids, []string{"e1", "e2", "e3"}) {
		t.Fatalf("asc order = %v", ids)
	}
}

func TestApplyCategoryFilter(t *testing.T) {
	entries := []model.Reflection{
		entry("e1", "Física", "a", "", 1),
		entry("e2", "Familia", "b", "", 2),
		entry("e3", "Física", "c", "", 3),
	}
	got := Apply(entries, Filter{Category: "Física", Sort: SortAsc}, time.Now())
	if ids := ids(got); !reflect.DeepEqual(ids, []string{"e1", "e3"}) {
		t.Fatalf("category filter = %v", ids)
	}
	got = Apply(entries, Filter{Category: CategoryAll, Sort: SortAsc}, time.Now())
	if len(got) != 3 {
		t.Fatalf(`"all" must not filter, got %d`, len(got))
	}
}

func TestApplySearchMatchesTitleOrText(t *testing.T) {
	entries := []model.Reflection{
		entry("e1", "Física", "Correr al amanecer", "me sentí bien", 1),
		entry("e2", "Familia", "Cena", "hablamos de CORRER juntos", 2),
		entry("e3", "Personal", "Lectura", "nada que ver", 3),
	}
	got := Apply(entries, Filter{Search: "correr", Sort: SortAsc}, time.Now())
	if ids := ids(got); !reflect.DeepEqual(ids, []string{"e1", "e2"}) {
		t.Fatalf("search = %v", ids)
	}
	if got := Apply(entries, Filter{Search: "   ", Sort: SortAsc}, time.Now()); len(got) != 3 {
		t.Fatalf("blank search must match everything, got %d", len(got))
	}
}

func TestApplyRangeAnchors(t *testing.T) {
	// Fixed local "now": 2026-08-25 10:00.
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.Local)
	midnight := time.Date(2026, 8, 25, 0, 0, 0, 0, time.Local)
	endOfDay := time.Date(2026, 8, 25, 23, 59, 59, 999_000_000, time.Local)

	entries := []model.Reflection{
		entry("today", "Física", "t", "", midnight.Add(time.Hour).UnixMilli()),
		entry("yesterday", "Física", "y", "", midnight.Add(-2*time.Hour).UnixMilli()),
		entry("sixDays", "Física", "s", "", endOfDay.Add(-6*24*time.Hour).UnixMilli()),
		entry("eightDays", "Física", "e", "", endOfDay.Add(-8*24*time.Hour).UnixMilli()),
		entry("old", "Física", "o", "", endOfDay.Add(-40*24*time.Hour).UnixMilli()),
	}

	got := Apply(entries, Filter{Range: RangeToday, Sort: SortAsc}, now)
	if ids := ids(got); !reflect.DeepEqual(ids, []string{"today"}) {
		t.Fatalf("today = %v", ids)
	}

	// Week counts back from end of day, so "yesterday" and "sixDays" are in.
	got = Apply(entries, Filter{Range: RangeWeek, Sort: SortAsc}, now)
	if ids := ids(got); !reflect.DeepEqual(ids, []string{"eightDays", "sixDays", "yesterday", "today"}[1:]) {
		t.Fatalf("week = %v", ids)
	}

	got = Apply(entries, Filter{Range: RangeMonth, Sort: SortAsc}, now)
	if ids := ids(got); !reflect.DeepEqual(ids, []string{"eightDays", "sixDays", "yesterday", "today"}) {
		t.Fatalf("month = %v", ids)
	}

	got = Apply(entries, Filter{Range: RangeAll, Sort: SortAsc}, now)
	if len(got) != len(entries) {
		t.Fatalf("all = %d entries", len(got))
	}
}

func TestApplyIsIdempotentAndPure(t *testing.T) {
	entries := []model.Reflection{
		entry("e2", "Física", "b", "", 2),
		entry("e1", "Familia", "a", "", 1),
	}
	snapshot := make([]model.Reflection, len(entries))
	copy(snapshot, entries)

	f := Filter{Sort: SortDesc}
	now := time.Now()
	first := Apply(entries, f, now)
	second := Apply(entries, f, now)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs must give identical output")
	}
	if !reflect.DeepEqual(entries, snapshot) {
		t.Fatal("Apply mutated its input")
	}
}

func ids(entries []model.Reflection) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
