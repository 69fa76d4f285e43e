package engine

import (
	"github.com/google/uuid"

	"github.com/turbodog111/parliament/internal/politics"
	"github.com/turbodog111/parliament/internal/state"
)

// CreateBill introduces a bill into the active list. Bills can only be
// tabled while parliament sits. A nil ideology defaults to the player
// party's current policy platform.
func (e *Engine) CreateBill(w *state.World, title, summary string, ideology politics.Ideology) (*state.Bill, error) {
	if w.Phase != state.PhaseGoverning {
		return nil, ErrWrongPhase
	}
	if ideology == nil {
		ideology = w.Policy.Clone()
	}
	bill := &state.Bill{
		ID:             uuid.NewString(),
		Title:          title,
		Summary:        summary,
		Proposer:       w.PlayerParty,
		Ideology:       ideology,
		Stage:          state.StageIntroduced,
		Status:         state.BillActive,
		IntroducedTurn: w.Turn,
	}
	w.Bills = append(w.Bills, bill)
	return bill, nil
}

// AdvanceBillStage applies a division result to a bill: a passing vote sends
// it to royal assent, a failing one defeats it. Either way the bill is
// terminal and moves to history.
func (e *Engine) AdvanceBillStage(w *state.World, bill *state.Bill, vote *state.VoteResult) error {
	if bill.Status != state.BillActive || bill.Stage != state.StageIntroduced {
		return ErrBillNotActive
	}
	if vote == nil {
		return nil
	}

	bill.LastVote = vote
	bill.ResolvedTurn = w.Turn
	if vote.Passed {
		bill.Stage = state.StageRoyalAssent
		bill.Status = state.BillPassed
	} else {
		bill.Status = state.BillDefeated
	}

	w.BillHistory = append(w.BillHistory, bill)
	active := w.Bills[:0]
	for _, b := range w.Bills {
		if b.ID != bill.ID {
			active = append(active, b)
		}
	}
	w.Bills = active
	return nil
}
