package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaver_Coalesces(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "portfolio.json"))
	sv := NewSaver(f, time.Hour)

	for _, amount := range []int{100, 200, 300} {
		if err := sv.Schedule(newState(t, amount)); err != nil {
			t.Fatalf("Schedule() error = %v", err)
		}
	}
	if _, err := os.Stat(f.Path()); err == nil {
		t.Fatal("the state has been written before the quiet period")
	}
	if err := sv.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	got, err := f.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := newState(t, 300); !bytes.Equal(encode(t, got), encode(t, want)) {
		t.Errorf("saved %s, want the last scheduled state", encode(t, got))
	}
	if sv.Pending() {
		t.Error("Pending() = true after Flush()")
	}
}

func TestSaver_Debounced(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "portfolio.json"))
	sv := NewSaver(f, 10*time.Millisecond)
	if err := sv.Schedule(newState(t, 100)); err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for sv.Pending() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if err := sv.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(f.Path()); err != nil {
		t.Errorf("the state has not been written: %v", err)
	}
	if err := sv.Schedule(newState(t, 1)); !errors.Is(err, ErrClosed) {
		t.Errorf("Schedule() after Close() error = %v, want %v", err, ErrClosed)
	}
}

func TestSaver_RestartsQuietPeriod(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "portfolio.json"))
	sv := NewSaver(f, 50*time.Millisecond)
	defer sv.Close()

	// every schedule lands inside the previous quiet period
	for _, amount := range []int{100, 200, 300} {
		if err := sv.Schedule(newState(t, amount)); err != nil {
			t.Fatalf("Schedule() error = %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}
	deadline := time.Now().Add(5 * time.Second)
	for sv.Pending() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if sv.Pending() {
		t.Fatal("the state has not been written after the quiet period")
	}
	// waits for the background write to finish
	if err := sv.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	got, err := f.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := newState(t, 300); !bytes.Equal(encode(t, got), encode(t, want)) {
		t.Errorf("saved %s, want the last scheduled state", encode(t, got))
	}
}

func TestSaver_Retry(t *testing.T) {
	dir := t.TempDir()
	// the document path is a directory: every write fails
	path := filepath.Join(dir, "portfolio.json")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}
	sv := NewSaver(NewFile(path), time.Hour)
	if err := sv.Schedule(newState(t, 100)); err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	if err := sv.Flush(); err == nil {
		t.Fatal("Flush() succeeded, want an error")
	}
	if !sv.Pending() || sv.Err() == nil {
		t.Fatal("the failed state is not kept for a retry")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := sv.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("the state has not been written on retry: %v", err)
	}
}
