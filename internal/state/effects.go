package state

import "github.com/turbodog111/parliament/internal/politics"

// EffectDelta is a fully-specified mutation of the player-facing scalars and
// polling. Every field is always present; a zero value means no change, so
// applying a delta is total — no field-presence checks, no truthiness traps.
type EffectDelta struct {
	Approval  int                          `json:"approval"`
	Unity     int                          `json:"unity"`
	Funds     int                          `json:"funds"`
	Activists int                          `json:"activists"`
	Polling   map[politics.PartyID]float64 `json:"polling,omitempty"`
}

// ApplyEffects mutates the world by one delta. Approval and unity are clamped
// into [0,100], funds and activists floored at zero, polling changes floored
// at 0.1 and renormalized. Records the approval trend.
func (w *World) ApplyEffects(d EffectDelta) {
	oldApproval := w.Approval

	w.Approval = clampInt(w.Approval+d.Approval, 0, 100)
	w.Unity = clampInt(w.Unity+d.Unity, 0, 100)

	w.PartyFunds += d.Funds
	if w.PartyFunds < 0 {
		w.PartyFunds = 0
	}
	w.Activists += d.Activists
	if w.Activists < 0 {
		w.Activists = 0
	}

	if len(d.Polling) > 0 {
		for p, change := range d.Polling {
			current, ok := w.Polling[p]
			if !ok {
				continue // unknown party-id: no new keys enter the closed set
			}
			next := current + change
			if next < 0.1 {
				next = 0.1
			}
			w.Polling[p] = next
		}
		w.NormalizePolling()
	}

	w.ApprovalTrend = w.Approval - oldApproval
}
