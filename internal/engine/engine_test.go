package engine

import (
	"testing"

	"github.com/turbodog111/parliament/internal/config"
	"github.com/turbodog111/parliament/internal/constituency"
	"github.com/turbodog111/parliament/internal/entropy"
	"github.com/turbodog111/parliament/internal/politics"
	"github.com/turbodog111/parliament/internal/state"
)

// sharedCatalog is built once; generation is deterministic and read-only.
var sharedCatalog = constituency.Generate(99)

func newTestEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	return New(config.Default(), sharedCatalog, entropy.NewSeeded(seed))
}

func newTestWorld(t *testing.T, party politics.PartyID) *state.World {
	t.Helper()
	w, err := state.New(party, "Test Leader")
	if err != nil {
		t.Fatalf("state.New: %v", err)
	}
	return w
}
