package engine

import (
	"testing"

	"github.com/turbodog111/parliament/internal/politics"
	"github.com/turbodog111/parliament/internal/state"
)

func testBill(proposer politics.PartyID, ideology politics.Ideology) *state.Bill {
	return &state.Bill{
		ID:       "test-bill",
		Title:    "Test Bill",
		Proposer: proposer,
		Ideology: ideology,
		Stage:    state.StageIntroduced,
		Status:   state.BillActive,
	}
}

func TestBillVoteConservesBenches(t *testing.T) {
	e := newTestEngine(t, 2)
	w := newTestWorld(t, politics.Lab)
	bill := testBill(politics.Lab, politics.Ideology{politics.AxisNHS: 30})

	result := e.CalculateBillVote(w, bill)

	for p, pv := range result.Breakdown {
		if pv.Abstain {
			continue
		}
		if pv.Ayes+pv.Noes != pv.Seats {
			t.Errorf("%s split %d+%d over %d seats", p, pv.Ayes, pv.Noes, pv.Seats)
		}
		if pv.Ayes < 0 || pv.Noes < 0 {
			t.Errorf("%s has a negative lobby count", p)
		}
	}
	if result.Majority != result.Ayes-result.Noes {
		t.Errorf("majority = %d, want %d", result.Majority, result.Ayes-result.Noes)
	}
	if result.Passed != (result.Ayes > result.Noes) {
		t.Error("passed flag disagrees with the lobbies")
	}
}

func TestAbstentionistsSitOut(t *testing.T) {
	e := newTestEngine(t, 2)
	w := newTestWorld(t, politics.Lab)
	bill := testBill(politics.Lab, politics.Ideology{politics.AxisNHS: 30})

	result := e.CalculateBillVote(w, bill)

	sf := result.Breakdown[politics.SF]
	if !sf.Abstain {
		t.Error("Sinn Féin should abstain in full")
	}
	if sf.Ayes != 0 || sf.Noes != 0 {
		t.Errorf("abstaining bench voted %d/%d", sf.Ayes, sf.Noes)
	}
	if result.Abstentions < w.Seats[politics.SF] {
		t.Errorf("abstentions = %d, want at least the %d abstaining members",
			result.Abstentions, w.Seats[politics.SF])
	}
}

func TestGoverningPartyBacksOwnBill(t *testing.T) {
	e := newTestEngine(t, 2)
	w := newTestWorld(t, politics.Lab)
	w.Unity = 90
	bill := testBill(politics.Lab, politics.Ideology{politics.AxisNHS: 25})

	result := e.CalculateBillVote(w, bill)

	lab := result.Breakdown[politics.Lab]
	if lab.Ayes <= lab.Noes {
		t.Errorf("the whipped governing party split %d/%d against its own bill", lab.Ayes, lab.Noes)
	}
}

func TestHostileOppositionVotesNo(t *testing.T) {
	e := newTestEngine(t, 2)
	w := newTestWorld(t, politics.Lab)
	// A bill at the left extreme on axes the Conservatives score far right.
	bill := testBill(politics.Lab, politics.Ideology{
		politics.AxisImmigration: 5,
		politics.AxisEconomy:     5,
	})

	result := e.CalculateBillVote(w, bill)

	con := result.Breakdown[politics.Con]
	if con.Ayes >= con.Noes {
		t.Errorf("ideologically hostile bench voted %d/%d in favour", con.Ayes, con.Noes)
	}
}

func TestGovernmentDefeatsHostileOppositionBill(t *testing.T) {
	e := newTestEngine(t, 2)
	w := newTestWorld(t, politics.Lab)
	// A minor opposition party tables a bill at the far right of every
	// axis. The government bench is not whipped on opposition business,
	// so with Labour holding a majority only the low-alignment support
	// floor applies and the bill falls.
	ideology := politics.Ideology{}
	for _, axis := range politics.Axes {
		ideology[axis] = 98
	}

	result := e.CalculateBillVote(w, testBill(politics.Reform, ideology))

	if result.Passed {
		t.Fatalf("a hostile opposition bill passed %d/%d against a government majority",
			result.Ayes, result.Noes)
	}
	lab := result.Breakdown[politics.Lab]
	if lab.Ayes >= lab.Noes {
		t.Errorf("the government bench split %d/%d for a bill it opposes", lab.Ayes, lab.Noes)
	}
}

func TestLowUnityBreedsRebels(t *testing.T) {
	bill := politics.Ideology{politics.AxisNHS: 30}

	united := newTestWorld(t, politics.Lab)
	united.Unity = 100
	divided := newTestWorld(t, politics.Lab)
	divided.Unity = 0

	ayesUnited := newTestEngine(t, 2).CalculateBillVote(united, testBill(politics.Lab, bill)).Breakdown[politics.Lab].Ayes
	ayesDivided := newTestEngine(t, 2).CalculateBillVote(divided, testBill(politics.Lab, bill)).Breakdown[politics.Lab].Ayes

	if ayesDivided >= ayesUnited {
		t.Errorf("divided bench produced %d ayes, united %d; rebellion should grow as unity falls",
			ayesDivided, ayesUnited)
	}
}

func TestZeroSeatPartiesSkipped(t *testing.T) {
	e := newTestEngine(t, 2)
	w := newTestWorld(t, politics.Lab)
	w.Seats[politics.Green] = 0

	result := e.CalculateBillVote(w, testBill(politics.Lab, politics.Ideology{politics.AxisNHS: 30}))

	if _, ok := result.Breakdown[politics.Green]; ok {
		t.Error("a bench with no members appeared in the breakdown")
	}
}

func TestBillVoteDeterministic(t *testing.T) {
	bill := politics.Ideology{politics.AxisNHS: 30, politics.AxisTax: 60}
	w1 := newTestWorld(t, politics.Lab)
	w2 := newTestWorld(t, politics.Lab)

	a := newTestEngine(t, 9).CalculateBillVote(w1, testBill(politics.Lab, bill))
	b := newTestEngine(t, 9).CalculateBillVote(w2, testBill(politics.Lab, bill))

	if a.Ayes != b.Ayes || a.Noes != b.Noes || a.Abstentions != b.Abstentions {
		t.Errorf("identical seeds produced %d/%d/%d and %d/%d/%d",
			a.Ayes, a.Noes, a.Abstentions, b.Ayes, b.Noes, b.Abstentions)
	}
}
