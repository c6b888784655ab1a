package capital

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// The persisted document is a single JSON object, the State itself. It has
// evolved over time: older documents miss the foreign stock asset, the trade
// history or the projection settings. Migrate backfills them, and it is the
// only place that knows about older shapes.

// Decode reads a state document and migrates it to the current shape.
func Decode(r io.Reader) (*State, error) {
	var s State
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("cannot decode state: %w", err)
	}
	Migrate(&s)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Encode writes s as a compact JSON document followed by a newline.
func Encode(w io.Writer, s *State) error {
	return json.NewEncoder(w).Encode(s)
}

// Export writes s as an indented JSON document, suitable for backups.
func Export(w io.Writer, s *State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// requiredPaths must exist, and not be null, in an imported document.
var requiredPaths = []string{"$.assets", "$.transactions"}

// Import reads a backup produced by Export. Unlike Decode it first checks
// that the document carries the mandatory top level fields, and rejects it
// with ErrMalformedImport otherwise.
func Import(r io.Reader) (*State, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read import: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedImport, err)
	}
	if _, ok := jobj.(map[string]any); !ok {
		return nil, fmt.Errorf("%w: not a JSON object", ErrMalformedImport)
	}
	var errs []error
	for _, path := range requiredPaths {
		jval, err := jsonpath.Get(path, jobj)
		if err != nil || jval == nil {
			errs = append(errs, fmt.Errorf("%w: %s is missing", ErrMalformedImport, path))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	s, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedImport, err)
	}
	return s, nil
}

// Migrate backfills the fields that older documents do not have.
func Migrate(s *State) {
	if s.Assets == nil {
		s.Assets = make(Assets)
	}
	if _, ok := s.Assets[ForeignStock]; !ok {
		a := defaultAssets()[ForeignStock]
		a.Percentage = 0
		s.Assets[ForeignStock] = a
	}
	for key, a := range s.Assets {
		if a.SubItems == nil {
			a.SubItems = []SubItem{}
			s.Assets[key] = a
		}
	}
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.TradeHistory == nil {
		s.TradeHistory = []TradeRecord{}
	}
	if s.Projection == nil {
		ps := DefaultProjectionSettings()
		s.Projection = &ps
	}
}

// Validate checks the structural rules the engine relies on: a single cash
// asset without sub-items and no negative value.
func (s *State) Validate() error {
	var errs []error
	cash, ok := s.Assets[Cash]
	switch {
	case !ok:
		errs = append(errs, fmt.Errorf("%w: no cash asset", ErrMalformedImport))
	case len(cash.SubItems) > 0:
		errs = append(errs, fmt.Errorf("%w: cash has sub-items", ErrMalformedImport))
	}
	for _, key := range s.Assets.Keys() {
		if a := s.Assets[key]; a.Value.IsNegative() {
			errs = append(errs, fmt.Errorf("%w: %s has a negative value %s", ErrMalformedImport, key, a.Value))
		}
	}
	return errors.Join(errs...)
}
