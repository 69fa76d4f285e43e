package state

import (
	"math"
	"testing"

	"github.com/turbodog111/parliament/internal/politics"
)

func TestNewWorldBaseline(t *testing.T) {
	w, err := New(politics.Con, "Test Leader")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if w.Phase != PhaseGoverning {
		t.Errorf("phase = %s, want governing", w.Phase)
	}
	if w.Approval != 45 || w.Unity != 70 {
		t.Errorf("approval/unity = %d/%d, want 45/70", w.Approval, w.Unity)
	}
	if w.PartyFunds != 500 || w.Activists != 200 {
		t.Errorf("funds/activists = %d/%d, want 500/200", w.PartyFunds, w.Activists)
	}
	if w.PMParty != politics.Lab {
		t.Errorf("PM party = %s, want lab incumbent", w.PMParty)
	}
	if w.IsInGovernment {
		t.Error("a Conservative player starts in opposition")
	}
	if w.OppositionLeader != politics.Con {
		t.Errorf("opposition leader = %s, want the player's party", w.OppositionLeader)
	}
	if w.GameID == "" {
		t.Error("expected a game ID")
	}

	total := 0
	for _, n := range w.Seats {
		total += n
	}
	if total != politics.TotalSeats {
		t.Errorf("seats sum to %d, want %d", total, politics.TotalSeats)
	}
}

func TestNewWorldRejectsUnknownParty(t *testing.T) {
	if _, err := New(politics.PartyID("martian"), "X"); err == nil {
		t.Error("expected an error for an unknown party")
	}
}

func TestLabourPlayerStartsInGovernment(t *testing.T) {
	w, err := New(politics.Lab, "Test PM")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !w.IsInGovernment {
		t.Error("a Labour player starts in office")
	}
	if w.OppositionLeader != politics.Con {
		t.Errorf("opposition leader = %s, want con", w.OppositionLeader)
	}
}

func TestNormalizePolling(t *testing.T) {
	w := &World{Polling: map[politics.PartyID]float64{
		politics.Lab: 60,
		politics.Con: 60,
	}}
	w.NormalizePolling()

	total := 0.0
	for _, v := range w.Polling {
		total += v
	}
	if math.Abs(total-100) > 0.5 {
		t.Errorf("normalized total = %.2f, want ~100", total)
	}
}

func TestNormalizePollingWithinTolerance(t *testing.T) {
	w := &World{Polling: map[politics.PartyID]float64{
		politics.Lab: 50.2,
		politics.Con: 50.1,
	}}
	w.NormalizePolling()
	if w.Polling[politics.Lab] != 50.2 {
		t.Error("totals within tolerance should not be rescaled")
	}
}

func TestNormalizePollingIdempotent(t *testing.T) {
	w := &World{Polling: map[politics.PartyID]float64{
		politics.Lab: 70,
		politics.Con: 50,
	}}
	w.NormalizePolling()
	first := map[politics.PartyID]float64{}
	for p, v := range w.Polling {
		first[p] = v
	}
	w.NormalizePolling()
	for p, v := range w.Polling {
		if first[p] != v {
			t.Errorf("%s moved from %.1f to %.1f on re-normalize", p, first[p], v)
		}
	}
}

func TestApplyEffectsClamps(t *testing.T) {
	w, _ := New(politics.Lab, "Test PM")
	w.ApplyEffects(EffectDelta{Approval: 100, Unity: -100, Funds: -10000, Activists: -10000})

	if w.Approval != 100 {
		t.Errorf("approval = %d, want clamped 100", w.Approval)
	}
	if w.Unity != 0 {
		t.Errorf("unity = %d, want clamped 0", w.Unity)
	}
	if w.PartyFunds != 0 || w.Activists != 0 {
		t.Errorf("funds/activists = %d/%d, want floored at 0", w.PartyFunds, w.Activists)
	}
	if w.ApprovalTrend != 55 {
		t.Errorf("approval trend = %d, want 55", w.ApprovalTrend)
	}
}

func TestApplyEffectsPollingFloorAndUnknowns(t *testing.T) {
	w, _ := New(politics.Lab, "Test PM")
	before := len(w.Polling)

	w.ApplyEffects(EffectDelta{Polling: map[politics.PartyID]float64{
		politics.Green:              -50,
		politics.PartyID("martian"): 10,
	}})

	if len(w.Polling) != before {
		t.Error("unknown party keys must not enter polling")
	}
	if w.Polling[politics.Green] <= 0 {
		t.Errorf("green polling = %.2f, want floored above zero", w.Polling[politics.Green])
	}
}

func TestApplyEffectsZeroDeltaIsNoOp(t *testing.T) {
	w, _ := New(politics.Lab, "Test PM")
	approval, unity := w.Approval, w.Unity
	w.ApplyEffects(EffectDelta{})
	if w.Approval != approval || w.Unity != unity {
		t.Error("zero delta changed scalars")
	}
	if w.ApprovalTrend != 0 {
		t.Errorf("approval trend = %d, want 0", w.ApprovalTrend)
	}
}

func TestSnapshotRoundtrip(t *testing.T) {
	w, _ := New(politics.SNP, "Test Leader")
	w.Turn = 17
	w.Bills = append(w.Bills, &Bill{ID: "b1", Title: "Test Bill", Stage: StageIntroduced, Status: BillActive})

	data, err := MarshalSnapshot(w)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.Turn != 17 || got.PlayerParty != politics.SNP {
		t.Errorf("roundtrip lost state: turn=%d party=%s", got.Turn, got.PlayerParty)
	}
	if len(got.Bills) != 1 || got.Bills[0].ID != "b1" {
		t.Error("roundtrip lost bills")
	}
}

func TestSnapshotVersionCheck(t *testing.T) {
	if err := CheckVersion("1.9.4"); err != nil {
		t.Errorf("same-major snapshot rejected: %v", err)
	}
	if err := CheckVersion("2.0.0"); err == nil {
		t.Error("cross-major snapshot accepted")
	}
	if err := CheckVersion(""); err == nil {
		t.Error("untagged snapshot accepted")
	}
}

func TestDateProgression(t *testing.T) {
	for _, tc := range []struct {
		turn int
		want string
	}{
		{0, "July 2024"},
		{5, "December 2024"},
		{6, "January 2025"},
		{18, "January 2026"},
	} {
		if got := Date(tc.turn); got != tc.want {
			t.Errorf("Date(%d) = %q, want %q", tc.turn, got, tc.want)
		}
	}
}
