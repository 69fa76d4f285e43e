package engine

import (
	"fmt"

	"github.com/turbodog111/parliament/internal/entropy"
	"github.com/turbodog111/parliament/internal/state"
)

// PMQStrategy selects the Prime Minister's approach at the despatch box.
type PMQStrategy string

const (
	PMQAttack PMQStrategy = "attack" // go after the opposition, high variance
	PMQDefend PMQStrategy = "defend" // stand on the record, safe
	PMQPivot  PMQStrategy = "pivot"  // change the subject, modest upside
	PMQHumour PMQStrategy = "humour" // play the chamber, highest variance
)

// PMQStrategies lists the valid despatch box approaches.
var PMQStrategies = []PMQStrategy{PMQAttack, PMQDefend, PMQPivot, PMQHumour}

// PMQResult is the public fallout from a Prime Minister's Questions session.
type PMQResult struct {
	Strategy PMQStrategy       `json:"strategy"`
	Landed   bool              `json:"landed"`
	Effects  state.EffectDelta `json:"effects"`
}

// RunPMQs resolves a Prime Minister's Questions session. The chamber only
// sits between elections, and only a player in government faces the
// despatch box.
func (e *Engine) RunPMQs(w *state.World, strategy PMQStrategy) (*PMQResult, error) {
	if w.Phase != state.PhaseGoverning {
		return nil, ErrWrongPhase
	}
	if !w.IsInGovernment {
		return nil, ErrNotInGovernment
	}

	roll := e.rng.Float()
	res := &PMQResult{Strategy: strategy, Landed: true}

	switch strategy {
	case PMQAttack:
		if roll > 0.5 {
			res.Effects.Approval = entropy.IntBetween(e.rng, 2, 6)
			res.Effects.Unity = entropy.IntBetween(e.rng, 1, 4)
		} else {
			res.Landed = false
			res.Effects.Approval = entropy.IntBetween(e.rng, -4, -1)
			res.Effects.Unity = entropy.IntBetween(e.rng, -2, 2)
		}
	case PMQDefend:
		res.Effects.Approval = entropy.IntBetween(e.rng, -1, 3)
		res.Effects.Unity = entropy.IntBetween(e.rng, 1, 3)
		res.Landed = res.Effects.Approval >= 0
	case PMQPivot:
		res.Effects.Approval = entropy.IntBetween(e.rng, 0, 4)
		res.Effects.Unity = entropy.IntBetween(e.rng, 0, 2)
	case PMQHumour:
		if roll > 0.4 {
			res.Effects.Approval = entropy.IntBetween(e.rng, 3, 8)
			res.Effects.Unity = entropy.IntBetween(e.rng, 2, 5)
		} else {
			res.Landed = false
			res.Effects.Approval = entropy.IntBetween(e.rng, -6, -2)
			res.Effects.Unity = entropy.IntBetween(e.rng, -3, -1)
		}
	default:
		return nil, fmt.Errorf("unknown despatch box strategy %q", strategy)
	}

	w.ApplyEffects(res.Effects)
	return res, nil
}
