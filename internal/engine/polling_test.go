package engine

import (
	"math"
	"testing"

	"github.com/turbodog111/parliament/internal/politics"
)

func TestUpdatePollingStaysNormalized(t *testing.T) {
	e := newTestEngine(t, 1)
	w := newTestWorld(t, politics.Lab)

	for i := 0; i < 24; i++ {
		e.UpdatePolling(w)
		total := 0.0
		for _, v := range w.Polling {
			total += v
		}
		if math.Abs(total-100) > 0.6 {
			t.Fatalf("turn %d: polling sums to %.2f", i, total)
		}
	}
}

func TestUpdatePollingDeterministic(t *testing.T) {
	run := func(seed int64) map[politics.PartyID]float64 {
		e := newTestEngine(t, seed)
		w := newTestWorld(t, politics.Lab)
		for i := 0; i < 12; i++ {
			e.UpdatePolling(w)
		}
		return w.Polling
	}

	a, b := run(7), run(7)
	for p, v := range a {
		if b[p] != v {
			t.Errorf("%s diverged with identical seeds: %.3f vs %.3f", p, v, b[p])
		}
	}
}

func TestUpdatePollingFloors(t *testing.T) {
	e := newTestEngine(t, 3)
	w := newTestWorld(t, politics.Lab)

	// Drive every small party to the floor.
	for i := 0; i < 120; i++ {
		e.UpdatePolling(w)
		for p, v := range w.Polling {
			if v <= 0 {
				t.Fatalf("turn %d: %s polled %.3f, floor breached", i, p, v)
			}
		}
	}
}

func TestLowApprovalDragsPlayerPolling(t *testing.T) {
	runs := 50
	highWins := 0
	for seed := int64(0); seed < int64(runs); seed++ {
		high := newTestWorld(t, politics.Lab)
		high.Approval = 90
		low := newTestWorld(t, politics.Lab)
		low.Approval = 10

		// Same noise for both runs.
		newTestEngine(t, seed).UpdatePolling(high)
		newTestEngine(t, seed).UpdatePolling(low)

		if high.Polling[politics.Lab] > low.Polling[politics.Lab] {
			highWins++
		}
	}
	if highWins < runs*3/4 {
		t.Errorf("high approval beat low approval in only %d/%d runs", highWins, runs)
	}
}

func TestLowUnityCostsSupport(t *testing.T) {
	united := newTestWorld(t, politics.Lab)
	united.Unity = 80
	divided := newTestWorld(t, politics.Lab)
	divided.Unity = 10

	newTestEngine(t, 11).UpdatePolling(united)
	newTestEngine(t, 11).UpdatePolling(divided)

	if divided.Polling[politics.Lab] >= united.Polling[politics.Lab] {
		t.Errorf("divided party polled %.2f, united %.2f, want a unity penalty",
			divided.Polling[politics.Lab], united.Polling[politics.Lab])
	}
}
