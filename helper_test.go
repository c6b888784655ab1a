package capital

import (
	"bytes"
	"testing"
	"time"

	"github.com/etnz/capital/date"
)

// day is the date used by all test operations.
var day = date.New(2025, time.March, 1)

// must fails the test on error and returns the new state.
func must(t *testing.T) func(*State, error) *State {
	t.Helper()
	return func(s *State, err error) *State {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return s
	}
}

// initialized returns the default state with one million of initial capital.
func initialized(t *testing.T) *State {
	t.Helper()
	return must(t)(NewState().SetInitialCapital(day, M(1_000_000)))
}

// encoded returns the document bytes of s.
func encoded(t *testing.T, s *State) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return buf.Bytes()
}

// checkTotal verifies that asset values add up to the total capital.
func checkTotal(t *testing.T, s *State) {
	t.Helper()
	if got := s.Assets.Total(); !got.Equal(s.TotalCapital) {
		t.Errorf("sum of values = %v, want total capital %v", got.Decimal(), s.TotalCapital.Decimal())
	}
}

// checkClosure verifies that percentages sum to 100.
func checkClosure(t *testing.T, s *State) {
	t.Helper()
	if got := s.Assets.PercentageSum(); got != 100 {
		t.Errorf("PercentageSum() = %d, want 100", got)
	}
}
