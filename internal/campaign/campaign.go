// Package campaign implements the campaign-phase actions: regional
// targeting, rallies, canvassing, advertising, and policy repositioning.
// Actions spend party funds and activists and nudge national polling.
package campaign

import (
	"errors"
	"log/slog"

	"github.com/turbodog111/parliament/internal/engine"
	"github.com/turbodog111/parliament/internal/entropy"
	"github.com/turbodog111/parliament/internal/politics"
	"github.com/turbodog111/parliament/internal/state"
)

var (
	ErrInsufficientFunds     = errors.New("not enough funds")
	ErrInsufficientActivists = errors.New("not enough activists")
	ErrAlreadyTargeted       = errors.New("region already targeted")
	ErrRegionLocked          = errors.New("party cannot campaign in this region")
	ErrUnknownAxis           = errors.New("unknown policy axis")
)

// Manager runs campaign actions against a world using the engine's catalog
// and a random source for action outcomes.
type Manager struct {
	eng *engine.Engine
	rng entropy.Source
}

// New wires a campaign manager around an engine.
func New(eng *engine.Engine, rng entropy.Source) *Manager {
	return &Manager{eng: eng, rng: rng}
}

// RegionSummary aggregates a region's seats for campaign planning.
type RegionSummary struct {
	Name     string                       `json:"name"`
	Country  string                       `json:"country"`
	Seats    int                          `json:"seats"`
	AvgLean  map[politics.PartyID]float64 `json:"avg_lean"`
	Targeted bool                         `json:"targeted"`
}

// Regions summarises every region: seat counts and average party lean.
func (m *Manager) Regions(w *state.World) []RegionSummary {
	out := make([]RegionSummary, 0, len(politics.Regions))
	for _, region := range politics.Regions {
		seats := m.eng.Catalog().Region(region)
		if len(seats) == 0 {
			continue
		}
		avg := make(map[politics.PartyID]float64)
		for _, con := range seats {
			for p, v := range con.Lean {
				avg[p] += v
			}
		}
		for p := range avg {
			avg[p] /= float64(len(seats))
		}
		out = append(out, RegionSummary{
			Name:     region,
			Country:  seats[0].Country,
			Seats:    len(seats),
			AvgLean:  avg,
			Targeted: containsString(w.CampaignTargets, region),
		})
	}
	return out
}

// TargetableRegions lists the regions the player's party may campaign in.
// Country-locked parties are confined to their nation, and no GB party
// campaigns in Northern Ireland.
func (m *Manager) TargetableRegions(w *state.World) []string {
	party := politics.ByID(w.PlayerParty)
	var out []string
	for _, region := range politics.Regions {
		if !regionAllowed(party, region) {
			continue
		}
		out = append(out, region)
	}
	return out
}

func regionAllowed(party *politics.Party, region string) bool {
	if party == nil {
		return true
	}
	switch party.Country {
	case "Scotland":
		return region == "Scotland"
	case "Wales":
		return region == "Wales"
	case "Northern Ireland":
		return region == "Northern Ireland"
	}
	// GB-wide parties stay out of Northern Ireland.
	return region != "Northern Ireland"
}

// TargetRegion commits ground resources to a region for the rest of the
// campaign (50 funds, 25 activists) and applies a polling boost.
func (m *Manager) TargetRegion(w *state.World, region string) error {
	if w.Phase != state.PhaseCampaign {
		return engine.ErrWrongPhase
	}
	if !regionAllowed(politics.ByID(w.PlayerParty), region) {
		return ErrRegionLocked
	}
	if containsString(w.CampaignTargets, region) {
		return ErrAlreadyTargeted
	}
	if err := spend(w, 50, 25); err != nil {
		return err
	}
	w.CampaignTargets = append(w.CampaignTargets, region)
	m.applyRegionalBoost(w, region, 1.5)
	slog.Info("campaign target set", "region", region)
	return nil
}

// HoldRally stages a rally (30 funds, 15 activists). Usually a morale
// boost; a poorly attended one costs approval instead.
func (m *Manager) HoldRally(w *state.World, region string) (bool, error) {
	if w.Phase != state.PhaseCampaign {
		return false, engine.ErrWrongPhase
	}
	if err := spend(w, 30, 15); err != nil {
		return false, err
	}
	if m.rng.Float() > 0.3 {
		m.applyRegionalBoost(w, region, 1.0)
		w.ApplyEffects(state.EffectDelta{
			Approval: entropy.IntBetween(m.rng, 1, 3),
			Unity:    entropy.IntBetween(m.rng, 1, 4),
		})
		return true, nil
	}
	w.ApplyEffects(state.EffectDelta{Approval: -entropy.IntBetween(m.rng, 1, 2)})
	return false, nil
}

// Doorknock canvasses a region (10 funds, 30 activists). Reliable but
// modest.
func (m *Manager) Doorknock(w *state.World, region string) error {
	if w.Phase != state.PhaseCampaign {
		return engine.ErrWrongPhase
	}
	if err := spend(w, 10, 30); err != nil {
		return err
	}
	m.applyRegionalBoost(w, region, 0.7)
	return nil
}

// RunAd buys regional advertising (80 funds, 5 activists). Expensive and
// effective, with a risk of backfiring.
func (m *Manager) RunAd(w *state.World, region string) (bool, error) {
	if w.Phase != state.PhaseCampaign {
		return false, engine.ErrWrongPhase
	}
	if err := spend(w, 80, 5); err != nil {
		return false, err
	}
	if m.rng.Float() > 0.25 {
		m.applyRegionalBoost(w, region, 2.0)
		w.ApplyEffects(state.EffectDelta{Approval: entropy.IntBetween(m.rng, 1, 4)})
		return true, nil
	}
	w.ApplyEffects(state.EffectDelta{Approval: -entropy.IntBetween(m.rng, 1, 3)})
	return false, nil
}

// applyRegionalBoost lifts the player's national polling in proportion to
// the region's share of the house, at a competitor's expense.
func (m *Manager) applyRegionalBoost(w *state.World, region string, amount float64) {
	seats := m.eng.Catalog().Region(region)
	if len(seats) == 0 {
		return
	}

	boost := float64(len(seats)) / float64(politics.TotalSeats) * amount
	w.Polling[w.PlayerParty] = maxf(0.5, w.Polling[w.PlayerParty]+boost)

	// The gain comes from somewhere: shave a random viable competitor.
	var competitors []politics.PartyID
	for _, p := range politics.PartyOrder {
		if p == w.PlayerParty {
			continue
		}
		if w.Polling[p] > 2 {
			competitors = append(competitors, p)
		}
	}
	if len(competitors) > 0 {
		target := competitors[m.rng.IntN(len(competitors))]
		w.Polling[target] = maxf(0.1, w.Polling[target]-boost*0.5)
	}

	w.NormalizePolling()
}

// ShiftPolicy moves one axis of the player's platform. Only the canonical
// axes are accepted; drifting far from the party's founding ideology costs
// unity. Repositioning is legal in either phase, since the platform also
// feeds the default ideology of bills between elections.
func (m *Manager) ShiftPolicy(w *state.World, axis politics.Axis, value float64) error {
	if !validAxis(axis) {
		return ErrUnknownAxis
	}
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	w.Policy[axis] = value

	party := politics.ByID(w.PlayerParty)
	if party != nil {
		diff := value - party.Ideology[axis]
		if diff < 0 {
			diff = -diff
		}
		if diff > 30 {
			w.ApplyEffects(state.EffectDelta{Unity: -2})
		}
	}
	return nil
}

func validAxis(axis politics.Axis) bool {
	for _, a := range politics.Axes {
		if a == axis {
			return true
		}
	}
	return false
}

// Projection runs the election calculator against current polling without
// holding the election.
func (m *Manager) Projection(w *state.World) *engine.ElectionOutcome {
	return m.eng.CalculateElection(w)
}

func spend(w *state.World, funds, activists int) error {
	if w.PartyFunds < funds {
		return ErrInsufficientFunds
	}
	if w.Activists < activists {
		return ErrInsufficientActivists
	}
	w.PartyFunds -= funds
	w.Activists -= activists
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
