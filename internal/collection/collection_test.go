package collection

import (
	"fmt"
	"reflect"
	"testing"

	"vida/internal/model"
	"vida/internal/store"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func load(t *testing.T, kv store.KV, defaults []model.Item, opts ...Option) *Collection {
	t.Helper()
	opts = append([]Option{WithIDFunc(seqIDs())}, opts...)
	c, err := Load(kv, model.AreaPhysical, defaults, opts...)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

func TestAddPrepends(t *testing.T) {
	kv := store.NewMem()
	c := load(t, kv, nil)

	if err := c.Add("caminar"); err != nil {
		t.Fatal(err)
	}
	if err := c.Add("  nadar  "); err != nil {
		t.Fatal(err)
	}

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Text != "nadar" || items[0].Completed {
		t.Fatalf("newest item wrong: %+v", items[0])
	}
	if items[1].Text != "caminar" {
		t.Fatalf("order wrong: %+v", items)
	}
	if items[0].ID == items[1].ID {
		t.Fatal("ids must be unique")
	}
	if kv.SetCalls != 2 {
		t.Fatalf("persist calls = %d, want 2", kv.SetCalls)
	}
}

func TestAddBlankIsNoop(t *testing.T) {
	kv := store.NewMem()
	c := load(t, kv, nil)
	for _, text := range []string{"", "   ", "\t\n"} {
		if err := c.Add(text); err != nil {
			t.Fatal(err)
		}
	}
	if c.Len() != 0 {
		t.Fatalf("blank add mutated the collection: %v", c.Items())
	}
	if kv.SetCalls != 0 {
		t.Fatalf("blank add persisted: %d calls", kv.SetCalls)
	}
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	kv := store.NewMem()
	var hooks []model.Area
	c := load(t, kv, nil, WithOnCompleted(func(a model.Area) { hooks = append(hooks, a) }))

	c.Add("meta")
	id := c.IDs()[0]

	if err := c.Toggle(id); err != nil {
		t.Fatal(err)
	}
	if it, _ := c.Get(id); !it.Completed {
		t.Fatal("toggle did not complete the item")
	}
	if err := c.Toggle(id); err != nil {
		t.Fatal(err)
	}
	if it, _ := c.Get(id); it.Completed {
		t.Fatal("double toggle must restore the original state")
	}

	// Exactly one hook call, for the false→true transition only.
	if len(hooks) != 1 || hooks[0] != model.AreaPhysical {
		t.Fatalf("hook calls = %v, want exactly one for fisica", hooks)
	}
	// Both directions persist.
	if kv.SetCalls != 3 { // add + 2 toggles
		t.Fatalf("persist calls = %d, want 3", kv.SetCalls)
	}
}

func TestToggleUnknownIDIsNoop(t *testing.T) {
	kv := store.NewMem()
	c := load(t, kv, nil)
	c.Add("meta")
	before := kv.SetCalls
	if err := c.Toggle("nope"); err != nil {
		t.Fatal(err)
	}
	if kv.SetCalls != before {
		t.Fatal("unknown id must not persist")
	}
}

func TestEditSemantics(t *testing.T) {
	kv := store.NewMem()
	c := load(t, kv, nil)
	c.Add("antes")
	id := c.IDs()[0]
	base := kv.SetCalls

	if err := c.Edit(id, "   "); err != nil {
		t.Fatal(err)
	}
	if it, _ := c.Get(id); it.Text != "antes" {
		t.Fatalf("blank edit must keep the text, got %q", it.Text)
	}
	if kv.SetCalls != base {
		t.Fatal("blank edit must not persist")
	}

	if err := c.Edit(id, "  después  "); err != nil {
		t.Fatal(err)
	}
	if it, _ := c.Get(id); it.Text != "después" {
		t.Fatalf("edit result = %q", it.Text)
	}
	if kv.SetCalls != base+1 {
		t.Fatal("real edit must persist once")
	}

	// Re-submitting the same text changes nothing.
	if err := c.Edit(id, "después"); err != nil {
		t.Fatal(err)
	}
	if kv.SetCalls != base+1 {
		t.Fatal("no-change edit must not persist")
	}
}

func TestDelete(t *testing.T) {
	kv := store.NewMem()
	c := load(t, kv, nil)
	c.Add("a")
	c.Add("b")
	ids := c.IDs()

	if err := c.Delete(ids[0]); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 || c.IDs()[0] != ids[1] {
		t.Fatalf("delete left %v", c.IDs())
	}
	before := kv.SetCalls
	if err := c.Delete("missing"); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 || kv.SetCalls != before {
		t.Fatal("deleting a missing id must be a no-op")
	}
}

func TestReorderPermutation(t *testing.T) {
	kv := store.NewMem()
	c := load(t, kv, nil)
	c.Add("a")
	c.Add("b")
	c.Add("c")
	ids := c.IDs() // [c b a] by prepend order

	want := []string{ids[2], ids[0], ids[1]}
	if err := c.Reorder(want); err != nil {
		t.Fatal(err)
	}
	if got := c.IDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Reorder → %v, want %v", got, want)
	}
}

func TestReorderRejectsPartialAndForeignIDs(t *testing.T) {
	kv := store.NewMem()
	c := load(t, kv, nil)
	c.Add("a")
	c.Add("b")
	before := c.IDs()
	calls := kv.SetCalls

	cases := [][]string{
		{before[0]},                     // missing id
		{before[0], "foreign"},          // unknown id
		{before[0], before[0]},          // duplicate
		{before[0], before[1], "extra"}, // wrong length
		nil,                             // empty
	}
	for _, ids := range cases {
		if err := c.Reorder(ids); err != nil {
			t.Fatal(err)
		}
		if got := c.IDs(); !reflect.DeepEqual(got, before) {
			t.Fatalf("Reorder(%v) mutated order: %v", ids, got)
		}
	}
	if kv.SetCalls != calls {
		t.Fatal("rejected reorders must not persist")
	}
}

func TestLoadPrefersNonEmptySnapshot(t *testing.T) {
	kv := store.NewMem()
	seed := load(t, kv, nil)
	seed.Add("persistida")

	defaults := []model.Item{{ID: "d1", Text: "default"}}
	c := load(t, kv, defaults)
	if c.Len() != 1 || c.Items()[0].Text != "persistida" {
		t.Fatalf("snapshot should win over defaults: %v", c.Items())
	}
}

func TestLoadDefaultsAreCopied(t *testing.T) {
	defaults := []model.Item{{ID: "d1", Text: "plantilla"}}

	kv := store.NewMem()
	c := load(t, kv, defaults)
	if c.Len() != 1 || c.Items()[0].Text != "plantilla" {
		t.Fatalf("empty store should load defaults: %v", c.Items())
	}

	// Mutating the loaded collection must not leak into the template.
	c.Edit("d1", "mutada")
	if defaults[0].Text != "plantilla" {
		t.Fatalf("defaults template was aliased: %+v", defaults[0])
	}

	// A second fresh load (new empty store) still sees the pristine defaults.
	c2 := load(t, store.NewMem(), defaults)
	if c2.Items()[0].Text != "plantilla" {
		t.Fatalf("second load saw mutated defaults: %v", c2.Items())
	}
}

func TestTwoPhaseRemoval(t *testing.T) {
	kv := store.NewMem()
	c := load(t, kv, nil)
	c.Add("efímera")
	id := c.IDs()[0]
	calls := kv.SetCalls

	gen, ok := c.MarkForRemoval(id)
	if !ok {
		t.Fatal("mark must succeed for an existing id")
	}
	if _, ok := c.MarkForRemoval("missing"); ok {
		t.Fatal("mark must fail for an unknown id")
	}
	if !c.PendingRemoval(id) {
		t.Fatal("item should be flagged")
	}
	if c.Len() != 1 || kv.SetCalls != calls {
		t.Fatal("marking must not touch memory or storage")
	}

	// Cancel path: flag cleared, nothing removed.
	c.CancelRemoval(id)
	if c.PendingRemoval(id) || c.Len() != 1 {
		t.Fatal("cancel must keep the item")
	}
	if err := c.FinishRemoval(id, gen); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 {
		t.Fatal("finish after cancel must not delete")
	}

	// Commit path.
	gen, _ = c.MarkForRemoval(id)
	if err := c.FinishRemoval(id, gen); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Fatal("finish must delete the marked item")
	}
	if kv.SetCalls != calls+1 {
		t.Fatalf("commit must persist once, got %d extra calls", kv.SetCalls-calls)
	}
}

func TestRemarkedRemovalIgnoresStaleFinish(t *testing.T) {
	kv := store.NewMem()
	c := load(t, kv, nil)
	c.Add("efímera")
	id := c.IDs()[0]

	gen1, _ := c.MarkForRemoval(id)
	c.CancelRemoval(id)
	gen2, _ := c.MarkForRemoval(id)
	if gen1 == gen2 {
		t.Fatal("re-marking must issue a fresh generation")
	}

	// The first mark's timer fires after the cancel and re-mark.
	if err := c.FinishRemoval(id, gen1); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 || !c.PendingRemoval(id) {
		t.Fatal("stale finish must neither delete nor clear the new mark")
	}

	if err := c.FinishRemoval(id, gen2); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Fatal("current finish must delete")
	}
}
