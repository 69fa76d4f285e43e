package engine

import (
	"errors"
	"testing"

	"github.com/turbodog111/parliament/internal/politics"
	"github.com/turbodog111/parliament/internal/state"
)

func TestPMQsRequireOffice(t *testing.T) {
	e := newTestEngine(t, 8)
	w := newTestWorld(t, politics.Con)

	if _, err := e.RunPMQs(w, PMQDefend); !errors.Is(err, ErrNotInGovernment) {
		t.Errorf("err = %v, want ErrNotInGovernment", err)
	}
}

func TestPMQsOnlyWhileParliamentSits(t *testing.T) {
	e := newTestEngine(t, 8)
	w := newTestWorld(t, politics.Lab)
	w.Phase = state.PhaseCampaign

	if _, err := e.RunPMQs(w, PMQDefend); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("err = %v, want ErrWrongPhase", err)
	}
}

func TestPMQsRejectUnknownStrategy(t *testing.T) {
	e := newTestEngine(t, 8)
	w := newTestWorld(t, politics.Lab)

	if _, err := e.RunPMQs(w, PMQStrategy("filibuster")); err == nil {
		t.Error("expected an error for an unknown strategy")
	}
}

func TestPMQEffectsStayInBand(t *testing.T) {
	for _, strategy := range PMQStrategies {
		for seed := int64(0); seed < 20; seed++ {
			e := newTestEngine(t, seed)
			w := newTestWorld(t, politics.Lab)
			before := w.Approval

			res, err := e.RunPMQs(w, strategy)
			if err != nil {
				t.Fatalf("%s: %v", strategy, err)
			}

			if res.Effects.Approval < -6 || res.Effects.Approval > 8 {
				t.Errorf("%s approval swing %d outside the design band", strategy, res.Effects.Approval)
			}
			if w.Approval != before+res.Effects.Approval {
				t.Errorf("%s: reported effect %d not applied", strategy, res.Effects.Approval)
			}
		}
	}
}

func TestPMQDefendNeverCollapses(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		e := newTestEngine(t, seed)
		w := newTestWorld(t, politics.Lab)

		res, err := e.RunPMQs(w, PMQDefend)
		if err != nil {
			t.Fatalf("RunPMQs: %v", err)
		}
		if res.Effects.Approval < -1 || res.Effects.Approval > 3 {
			t.Errorf("defend approval swing %d, want within [-1, 3]", res.Effects.Approval)
		}
		if res.Effects.Unity < 1 || res.Effects.Unity > 3 {
			t.Errorf("defend unity swing %d, want within [1, 3]", res.Effects.Unity)
		}
	}
}
