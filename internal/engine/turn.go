package engine

import (
	"log/slog"

	"github.com/turbodog111/parliament/internal/politics"
	"github.com/turbodog111/parliament/internal/state"
)

// TurnReport summarises one advanced turn.
type TurnReport struct {
	Turn int    `json:"turn"`
	Date string `json:"date"`
}

// ElectionReport bundles the election outcome with the resulting government.
type ElectionReport struct {
	Outcome    *ElectionOutcome `json:"outcome"`
	Government Government       `json:"government"`
}

// AdvanceTurn moves the world one month forward during the governing phase:
// polling step, approval and unity drift toward their long-run targets,
// resource accrual, counters. Rejected once the parliamentary term has run
// out — the election must be held first.
func (e *Engine) AdvanceTurn(w *state.World) (TurnReport, error) {
	if w.Phase != state.PhaseGoverning {
		return TurnReport{}, ErrWrongPhase
	}
	if e.IsElectionDue(w) {
		return TurnReport{}, ErrElectionOverdue
	}

	w.Turn++
	w.TurnsInParliament++

	e.UpdatePolling(w)

	// Gravity of office: approval settles toward its long-run target.
	approvalDrift := float64(e.cfg.ApprovalTarget-w.Approval) * e.cfg.ApprovalDrift
	w.Approval = clamp(w.Approval+roundf(approvalDrift), 0, 100)

	unityDrift := float64(e.cfg.UnityTarget-w.Unity) * e.cfg.UnityDrift
	w.Unity = clamp(w.Unity+roundf(unityDrift), 0, 100)

	w.PartyFunds += e.cfg.FundsPerTurn
	w.Activists += e.cfg.ActivistsPerTurn

	report := TurnReport{Turn: w.Turn, Date: state.Date(w.Turn)}
	slog.Debug("turn advanced",
		"turn", w.Turn,
		"date", report.Date,
		"approval", w.Approval,
		"unity", w.Unity,
	)
	return report, nil
}

// IsElectionDue reports whether parliament has reached its term limit.
func (e *Engine) IsElectionDue(w *state.World) bool {
	return w.TurnsInParliament >= e.cfg.TurnsPerParliament
}

// CanCallElection reports whether a voluntary election is available: only
// the governing party may go to the country, and only after the minimum
// term has elapsed.
func (e *Engine) CanCallElection(w *state.World) bool {
	return w.IsInGovernment && w.TurnsInParliament >= e.cfg.MinElectionTurns
}

// CallElection dissolves parliament voluntarily and opens the campaign.
func (e *Engine) CallElection(w *state.World) error {
	if w.Phase != state.PhaseGoverning {
		return ErrWrongPhase
	}
	if !w.IsInGovernment {
		return ErrNotInGovernment
	}
	if w.TurnsInParliament < e.cfg.MinElectionTurns {
		return ErrElectionTooSoon
	}
	e.beginCampaign(w)
	return nil
}

// DissolveParliament forces the campaign when the term limit is reached.
func (e *Engine) DissolveParliament(w *state.World) error {
	if w.Phase != state.PhaseGoverning {
		return ErrWrongPhase
	}
	if !e.IsElectionDue(w) {
		return ErrElectionTooSoon
	}
	e.beginCampaign(w)
	return nil
}

func (e *Engine) beginCampaign(w *state.World) {
	w.Phase = state.PhaseCampaign
	w.CampaignTargets = nil
	slog.Info("parliament dissolved", "turn", w.Turn, "date", state.Date(w.Turn))
}

// RunElection holds the general election and returns to the governing
// phase: calculate the result, snapshot polling as the next swing baseline,
// form a government, reset per-term state, and settle the player's
// post-election mood.
func (e *Engine) RunElection(w *state.World) (*ElectionReport, error) {
	if w.Phase != state.PhaseCampaign {
		return nil, ErrWrongPhase
	}

	outcome := e.CalculateElection(w)

	w.Seats = politics.CopySeats(outcome.Seats)
	w.LastElectionPolling = politics.CopyPolling(w.Polling)
	w.ElectionCount++
	w.ElectionHistory = append(w.ElectionHistory, state.ElectionRecord{
		Turn:    w.Turn,
		Date:    state.Date(w.Turn),
		Seats:   politics.CopySeats(outcome.Seats),
		Polling: politics.CopyPolling(w.Polling),
	})

	gov := DetermineGovernment(outcome.Seats)
	w.PMParty = gov.PMParty
	w.IsInGovernment = w.PlayerParty == gov.PMParty
	w.OppositionLeader = oppositionLeader(gov)
	w.CoalitionPartners = nil
	w.TurnsInParliament = 0

	// Back to governing with a clean order paper.
	w.Phase = state.PhaseGoverning
	w.Bills = nil

	// Victory lifts the party; defeat wounds it.
	if w.IsInGovernment {
		w.Approval = clamp(w.Approval+10, 0, 100)
		w.Unity = clamp(w.Unity+15, 0, 100)
	} else {
		w.Approval = clamp(w.Approval-5, 0, 100)
		w.Unity = clamp(w.Unity-10, 0, 100)
	}

	slog.Info("general election held",
		"turn", w.Turn,
		"date", state.Date(w.Turn),
		"pm_party", gov.PMParty,
		"majority", gov.HasMajority,
		"government_seats", gov.GovernmentSeats,
		"effective_majority", gov.EffectiveMajority,
	)

	return &ElectionReport{Outcome: outcome, Government: gov}, nil
}

// oppositionLeader picks the largest competitive party that is not in office.
func oppositionLeader(gov Government) politics.PartyID {
	for _, ps := range gov.Ranked {
		if ps.Party != gov.PMParty {
			return ps.Party
		}
	}
	return politics.Con
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundf rounds to the nearest integer, away from zero on halves.
func roundf(v float64) int {
	if v < 0 {
		return -roundf(-v)
	}
	return int(v + 0.5)
}
