package state

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MarshalSnapshot serializes the world for the persistence boundary.
func MarshalSnapshot(w *World) ([]byte, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot restores a world from a saved snapshot, rejecting
// snapshots whose version tag is missing or from a different major version.
func UnmarshalSnapshot(data []byte) (*World, error) {
	var w World
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if err := CheckVersion(w.Version); err != nil {
		return nil, err
	}
	return &w, nil
}

// CheckVersion accepts any snapshot from the current major version.
func CheckVersion(v string) error {
	if v == "" {
		return fmt.Errorf("snapshot has no version tag")
	}
	want, _, _ := strings.Cut(Version, ".")
	got, _, _ := strings.Cut(v, ".")
	if got != want {
		return fmt.Errorf("snapshot version %s is incompatible with %s", v, Version)
	}
	return nil
}
