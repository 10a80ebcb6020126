package backup

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/roach88/hearth/internal/model"
	"github.com/roach88/hearth/internal/store"
)

// Phase tracks where an import is in its lifecycle.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseValidating    Phase = "validating"
	PhaseSafetyCapture Phase = "safety_capture"
	PhaseApplying      Phase = "applying"
	PhaseCommitted     Phase = "committed"
	PhaseRolledBack    Phase = "rolled_back"
)

// Import replaces the entire persisted state with the given snapshot
// document. The sequence is validate, capture current state, then apply.
// Validation failures leave the store untouched. Apply failures return an
// *ImportError; the state may then be partially written, and Rollback
// restores the safety capture.
func (s *Service) Import(ctx context.Context, filename string, data []byte) error {
	s.phase = PhaseValidating
	snap, err := Validate(filename, data, s.maxBytes)
	if err != nil {
		s.phase = PhaseIdle
		return err
	}

	s.phase = PhaseSafetyCapture
	capture, err := s.ExportAll(ctx)
	if err != nil {
		s.phase = PhaseIdle
		return fmt.Errorf("safety capture: %w", err)
	}
	s.capture = capture

	s.phase = PhaseApplying
	if err := s.apply(ctx, snap); err != nil {
		return err
	}

	s.phase = PhaseCommitted
	return nil
}

// Rollback restores the safety capture taken by the last Import. It is only
// meaningful after an apply failure; without a capture it is an error.
func (s *Service) Rollback(ctx context.Context) error {
	if s.capture == nil {
		return fmt.Errorf("rollback: no safety capture available")
	}
	if err := s.apply(ctx, s.capture); err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	s.phase = PhaseRolledBack
	return nil
}

// apply writes a snapshot over the current state: every known collection is
// replaced (emptied when absent from the snapshot) and the preference map is
// synced key by key, deleting keys the snapshot does not carry.
func (s *Service) apply(ctx context.Context, snap *model.Snapshot) error {
	known := make(map[string]bool)
	for _, name := range s.store.Collections() {
		known[name] = true
	}
	for name := range snap.Data.Collections {
		if !known[name] {
			return &ImportError{
				Collection: name,
				Err:        fmt.Errorf("unknown collection"),
			}
		}
	}

	if err := s.applyPreferences(ctx, snap.Data.Preferences); err != nil {
		return err
	}

	for _, name := range s.store.Collections() {
		records, err := decodeRecords(name, snap.Data.Collections[name])
		if err != nil {
			return err
		}
		if err := s.store.ReplaceAll(ctx, name, records); err != nil {
			return &ImportError{Collection: name, Err: err}
		}
	}
	return nil
}

func (s *Service) applyPreferences(ctx context.Context, prefs map[string]string) error {
	current, err := s.store.PrefAll(ctx)
	if err != nil {
		return &ImportError{Collection: "preferences", Err: err}
	}
	for key, value := range prefs {
		if err := s.store.PrefSet(ctx, key, value); err != nil {
			return &ImportError{Collection: "preferences", Err: err}
		}
	}
	for key := range current {
		if _, keep := prefs[key]; keep {
			continue
		}
		if err := s.store.PrefDelete(ctx, key); err != nil {
			return &ImportError{Collection: "preferences", Err: err}
		}
	}
	return nil
}

// decodeRecords lifts raw snapshot entries into store records, keyed by the
// id each record carries.
func decodeRecords(collection string, raw []json.RawMessage) ([]store.Record, error) {
	records := make([]store.Record, 0, len(raw))
	for i, entry := range raw {
		var keyed struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(entry, &keyed); err != nil {
			return nil, &ImportError{
				Collection: collection,
				Err:        fmt.Errorf("record %d: %w", i, err),
			}
		}
		if keyed.ID == "" {
			return nil, &ImportError{
				Collection: collection,
				Err:        fmt.Errorf("record %d: missing id", i),
			}
		}
		records = append(records, store.Record{ID: keyed.ID, Data: entry})
	}
	return records, nil
}
