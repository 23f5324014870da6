package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"vida/internal/model"
)

func TestGoalsKeyPerArea(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range model.Areas() {
		k := GoalsKey(a)
		if seen[k] {
			t.Fatalf("duplicate key %q", k)
		}
		seen[k] = true
	}
	if seen[AssetsKey] || seen[ReflectionsKey] {
		t.Fatal("goal keys collide with asset/reflection namespaces")
	}
}

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vida.json")
	s := OpenJSON(path)

	if _, ok, err := s.Get("goals:fisica"); err != nil || ok {
		t.Fatalf("missing file should read as absent, got ok=%v err=%v", ok, err)
	}

	want := []byte(`[{"id":"a","text":"hola","completed":false}]`)
	if err := s.Set("goals:fisica", want); err != nil {
		t.Fatalf("set: %v", err)
	}

	// A fresh handle must see the same value.
	got, ok, err := OpenJSON(path).Get("goals:fisica")
	if err != nil || !ok {
		t.Fatalf("get after reopen: ok=%v err=%v", ok, err)
	}
	if string(got) != string(want) {
		t.Fatalf("got %s, want %s", got, want)
	}

	// Keys are independent namespaces.
	if err := s.Set("reflections", []byte(`[]`)); err != nil {
		t.Fatalf("set second key: %v", err)
	}
	got, ok, _ = s.Get("goals:fisica")
	if !ok || string(got) != string(want) {
		t.Fatalf("first key clobbered by second: %s", got)
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "vida.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if _, ok, err := s.Get("assets"); err != nil || ok {
		t.Fatalf("fresh db should read as absent, got ok=%v err=%v", ok, err)
	}
	if err := s.Set("assets", []byte(`[1]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set("assets", []byte(`[2]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, ok, err := s.Get("assets")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(got) != `[2]` {
		t.Fatalf("set must replace, got %s", got)
	}
}

func TestWatcherFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vida.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	fired := make(chan struct{}, 1)
	w, err := Watch(path, 20*time.Millisecond, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(`{"k":"v"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not fire after write")
	}
}
