package engine

import (
	"github.com/turbodog111/parliament/internal/politics"
	"github.com/turbodog111/parliament/internal/state"
)

// UpdatePolling advances national vote intention by one turn, in fixed
// order: uniform noise, approval feedback on the player party, a low-unity
// penalty, mean reversion toward the baseline, then renormalization.
// Every party keeps a residual floor of support — never exactly zero.
func (e *Engine) UpdatePolling(w *state.World) {
	// Random noise on every competitive party. The "other" bucket holds
	// whatever normalization leaves it; the speaker has no polling slot.
	for _, p := range politics.PartyOrder {
		v, ok := w.Polling[p]
		if !ok {
			continue
		}
		noise := (e.rng.Float() - 0.5) * e.cfg.PollNoise * 2
		w.Polling[p] = maxf(e.cfg.PollFloor, v+noise)
	}

	// Approval feeds the player party's standing.
	approvalEffect := float64(w.Approval-50) * e.cfg.ApprovalFeedback
	w.Polling[w.PlayerParty] = maxf(e.cfg.PlayerPollFloor, w.Polling[w.PlayerParty]+approvalEffect)

	// A divided party bleeds support.
	if w.Unity < e.cfg.UnityLow {
		penalty := float64(e.cfg.UnityLow-w.Unity) * e.cfg.UnityPenalty
		w.Polling[w.PlayerParty] = maxf(e.cfg.PlayerPollFloor, w.Polling[w.PlayerParty]-penalty)
	}

	// Mean reversion toward the baseline figures.
	for _, p := range politics.PartyOrder {
		v, ok := w.Polling[p]
		if !ok {
			continue
		}
		baseline := politics.BaselinePolling[p]
		w.Polling[p] = v + (baseline-v)*e.cfg.PollReversion
	}

	w.NormalizePolling()
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
