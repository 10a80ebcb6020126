package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// SnapshotFormatVersion tags snapshot documents produced by this release.
const SnapshotFormatVersion = "1.0"

// Snapshot is the backup artifact: one versioned, timestamped document
// holding the entire persisted state - every collection plus every scalar
// preference. A snapshot produced by export is always a valid import input
// for a store of the same or migratable version.
type Snapshot struct {
	Version    string           `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Data       SnapshotData     `json:"data"`
	Metadata   SnapshotMetadata `json:"metadata"`
}

// SnapshotData is the data section: the preference map plus one array per
// collection name. Records stay as raw JSON so export/import round-trips
// byte-identical documents regardless of the domain types in play.
type SnapshotData struct {
	Preferences map[string]string
	Collections map[string][]json.RawMessage
}

// SnapshotMetadata describes the exporting context.
type SnapshotMetadata struct {
	App      string `json:"app"`
	Platform string `json:"platform"`
}

// preferencesKey is the one reserved name inside the data section; every
// other key names a collection array.
const preferencesKey = "preferences"

// MarshalJSON flattens the data section into a single object:
// {"preferences": {...}, "notes": [...], "chores": [...], ...}.
func (d SnapshotData) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Collections)+1)
	prefs := d.Preferences
	if prefs == nil {
		prefs = map[string]string{}
	}
	out[preferencesKey] = prefs
	for name, records := range d.Collections {
		if records == nil {
			records = []json.RawMessage{}
		}
		out[name] = records
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits the flat data section back into the preference map
// and per-collection record arrays.
func (d *SnapshotData) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse data section: %w", err)
	}

	d.Preferences = map[string]string{}
	d.Collections = map[string][]json.RawMessage{}

	for key, value := range raw {
		if key == preferencesKey {
			if err := json.Unmarshal(value, &d.Preferences); err != nil {
				return fmt.Errorf("parse preferences: %w", err)
			}
			continue
		}
		var records []json.RawMessage
		if err := json.Unmarshal(value, &records); err != nil {
			return fmt.Errorf("parse collection %q: %w", key, err)
		}
		if records == nil {
			records = []json.RawMessage{}
		}
		d.Collections[key] = records
	}
	return nil
}
