package narrative

import (
	"github.com/turbodog111/parliament/internal/politics"
	"github.com/turbodog111/parliament/internal/state"
)

// Clamp ranges for externally supplied effects. Generated content may ask
// for anything; the engine only ever sees these bounds.
const (
	maxScalarEffect   = 15
	maxPollingEffect  = 10.0
	maxResourceEffect = 500
)

var severities = map[string]bool{
	"minor": true, "moderate": true, "major": true, "crisis": true,
}

var categories = map[string]bool{
	"economy": true, "health": true, "immigration": true, "crime": true,
	"environment": true, "foreign-affairs": true, "education": true,
	"housing": true, "transport": true, "party-politics": true,
	"scandal": true, "royal": true, "media": true, "culture-war": true,
}

// Choice is one response option on an event card.
type Choice struct {
	Label   string            `json:"label"`
	Hint    string            `json:"hint"`
	Effects state.EffectDelta `json:"effects"`
}

// Event is a political event presented to the player.
type Event struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Category    string   `json:"category"`
	Choices     []Choice `json:"choices"`
	Generated   bool     `json:"generated"` // true when produced by the live generator
}

// VoteAnalysis predicts how a division will go.
type VoteAnalysis struct {
	Prediction      string   `json:"prediction"` // likely_pass | likely_fail | too_close
	Analysis        string   `json:"analysis"`
	KeyFactors      []string `json:"keyFactors"`
	PotentialRebels string   `json:"potentialRebels"`
}

// BillDraft is a generated bill proposal.
type BillDraft struct {
	Title    string            `json:"title"`
	Summary  string            `json:"summary"`
	Ideology politics.Ideology `json:"ideology"`
}

// sanitizeEvent normalizes an externally supplied event in place: bad enums
// fall back to defaults and every choice's effects are clamped. Returns
// false if the event is unusable (no title or fewer than two choices).
func sanitizeEvent(ev *Event) bool {
	if ev == nil || ev.Title == "" || len(ev.Choices) < 2 {
		return false
	}
	if !severities[ev.Severity] {
		ev.Severity = "moderate"
	}
	if !categories[ev.Category] {
		ev.Category = "party-politics"
	}
	for i := range ev.Choices {
		ev.Choices[i].Effects = sanitizeEffects(ev.Choices[i].Effects)
	}
	return true
}

// sanitizeEffects clamps a delta to the declared ranges. Missing fields are
// already zero (neutral) by construction of the delta type; unknown party
// IDs in polling are dropped so no new key can enter the closed set.
func sanitizeEffects(d state.EffectDelta) state.EffectDelta {
	out := state.EffectDelta{
		Approval:  clampInt(d.Approval, -maxScalarEffect, maxScalarEffect),
		Unity:     clampInt(d.Unity, -maxScalarEffect, maxScalarEffect),
		Funds:     clampInt(d.Funds, -maxResourceEffect, maxResourceEffect),
		Activists: clampInt(d.Activists, -maxResourceEffect, maxResourceEffect),
	}
	if len(d.Polling) > 0 {
		out.Polling = make(map[politics.PartyID]float64, len(d.Polling))
		for p, v := range d.Polling {
			if politics.ByID(p) == nil {
				continue
			}
			out.Polling[p] = clampFloat(v, -maxPollingEffect, maxPollingEffect)
		}
	}
	return out
}

// sanitizeDraft clamps a bill draft's ideology onto the canonical axes.
func sanitizeDraft(d *BillDraft) bool {
	if d == nil || d.Title == "" {
		return false
	}
	clean := make(politics.Ideology, len(politics.Axes))
	for _, axis := range politics.Axes {
		v, ok := d.Ideology[axis]
		if !ok {
			continue
		}
		clean[axis] = clampFloat(v, 0, 100)
	}
	d.Ideology = clean
	return true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
