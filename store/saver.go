package store

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/etnz/capital"
)

// DefaultDelay is the quiet period before a scheduled state is written.
const DefaultDelay = 2 * time.Second

// ErrClosed is returned when scheduling on a closed Saver.
var ErrClosed = errors.New("saver closed")

// Saver writes states in the background, at most once per quiet period.
//
// Scheduling a state replaces any state still waiting to be written, so only
// the latest snapshot reaches the disk. A failed write keeps its snapshot
// pending: the next schedule, Flush or Close tries again.
type Saver struct {
	file     *File
	debounce func(func())

	mu      sync.Mutex
	pending *capital.State
	closed  bool
	err     error // last write error

	write sync.Mutex // serialises writes
}

// NewSaver returns a Saver writing to f after delay.
func NewSaver(f *File, delay time.Duration) *Saver {
	return &Saver{file: f, debounce: debounce.New(delay)}
}

// Schedule records s as the state to write, and restarts the quiet period.
func (sv *Saver) Schedule(s *capital.State) error {
	sv.mu.Lock()
	defer sv.mu.Unlock()
	if sv.closed {
		return ErrClosed
	}
	sv.pending = s
	sv.debounce(sv.flushQuiet)
	return nil
}

// flushQuiet is run once the quiet period is over.
func (sv *Saver) flushQuiet() {
	sv.mu.Lock()
	closed := sv.closed
	sv.mu.Unlock()
	if closed {
		return // Close did the last write
	}
	if err := sv.Flush(); err != nil {
		log.Printf("cannot save portfolio, will retry: %v", err)
	}
}

// Flush writes the pending state now, if any.
func (sv *Saver) Flush() error {
	sv.write.Lock()
	defer sv.write.Unlock()

	sv.mu.Lock()
	s := sv.pending
	sv.pending = nil
	sv.mu.Unlock()
	if s == nil {
		return nil
	}

	err := sv.file.Save(s)

	sv.mu.Lock()
	defer sv.mu.Unlock()
	sv.err = err
	if err != nil && sv.pending == nil {
		// nothing newer came in, keep it for the next attempt
		sv.pending = s
	}
	return err
}

// Pending reports whether a state is waiting to be written.
func (sv *Saver) Pending() bool {
	sv.mu.Lock()
	defer sv.mu.Unlock()
	return sv.pending != nil
}

// Err returns the error of the last write attempt.
func (sv *Saver) Err() error {
	sv.mu.Lock()
	defer sv.mu.Unlock()
	return sv.err
}

// Close stops background writes and writes the pending state.
func (sv *Saver) Close() error {
	sv.mu.Lock()
	sv.closed = true
	sv.mu.Unlock()
	return sv.Flush()
}
