// Package engine implements the deterministic simulation core: the polling
// model, the first-past-the-post election calculator, government formation,
// the bill division model, and the turn orchestrator that sequences them.
package engine

import (
	"errors"

	"github.com/turbodog111/parliament/internal/config"
	"github.com/turbodog111/parliament/internal/constituency"
	"github.com/turbodog111/parliament/internal/entropy"
)

// Rejected operations. These report an illegal transition to the caller;
// the world is left untouched.
var (
	ErrWrongPhase      = errors.New("operation not legal in this phase")
	ErrElectionOverdue = errors.New("parliament has reached its term limit; an election must be held")
	ErrElectionTooSoon = errors.New("the minimum parliamentary term has not elapsed")
	ErrNotInGovernment = errors.New("only the governing party can call an election")
	ErrBillNotActive   = errors.New("bill is not active")
)

// Engine runs the simulation against a world handle. It owns no state of its
// own beyond configuration, the constituency catalog, and its random source,
// so multiple engines (and worlds) can coexist.
type Engine struct {
	cfg     config.Config
	catalog *constituency.Catalog
	rng     entropy.Source
}

// New wires an engine. Pass entropy.NewSeeded for reproducible runs.
func New(cfg config.Config, catalog *constituency.Catalog, rng entropy.Source) *Engine {
	return &Engine{cfg: cfg, catalog: catalog, rng: rng}
}

// Catalog exposes the read-only constituency catalog.
func (e *Engine) Catalog() *constituency.Catalog { return e.catalog }

// Config exposes the tuning constants.
func (e *Engine) Config() config.Config { return e.cfg }
