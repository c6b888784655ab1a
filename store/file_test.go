package store

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/capital"
	"github.com/etnz/capital/date"
)

func newState(t *testing.T, amount int) *capital.State {
	t.Helper()
	s, err := capital.NewState().SetInitialCapital(date.New(2025, time.January, 1), capital.M(amount))
	if err != nil {
		t.Fatalf("SetInitialCapital() error = %v", err)
	}
	return s
}

func encode(t *testing.T, s *capital.State) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := capital.Encode(&buf, s); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestFile_LoadMissing(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "portfolio.json"))
	s, err := f.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Initialized {
		t.Error("Load() of a missing file returned an initialized portfolio")
	}
}

func TestFile_SaveLoad(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "sub", "portfolio.json"))
	want := newState(t, 1_000_000)

	if err := f.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := f.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(encode(t, got), encode(t, want)) {
		t.Errorf("Load() = %s, want %s", encode(t, got), encode(t, want))
	}

	// no temporary file is left behind
	entries, err := os.ReadDir(filepath.Dir(f.Path()))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}

func TestFile_SaveReplaces(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "portfolio.json"))
	if err := f.Save(newState(t, 100)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	want := newState(t, 200)
	if err := f.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := f.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(encode(t, got), encode(t, want)) {
		t.Errorf("Load() = %s, want the last saved state", encode(t, got))
	}
	info, err := os.Stat(f.Path())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm&0o600 != 0o600 {
		t.Errorf("document mode = %v, want it readable and writable by its owner", perm)
	}
}

func TestFile_LoadCorrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFile(path).Load(); err == nil {
		t.Error("Load() of a corrupted file succeeded")
	}
}
