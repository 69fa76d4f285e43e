package engine

import (
	"testing"

	"github.com/turbodog111/parliament/internal/politics"
)

func TestElectionConservesSeats(t *testing.T) {
	e := newTestEngine(t, 5)
	w := newTestWorld(t, politics.Lab)

	outcome := e.CalculateElection(w)

	total := 0
	for _, n := range outcome.Seats {
		total += n
	}
	if total != politics.TotalSeats {
		t.Errorf("seats sum to %d, want %d", total, politics.TotalSeats)
	}
	if outcome.Seats[politics.Speaker] != 1 {
		t.Errorf("speaker seats = %d, want exactly 1", outcome.Seats[politics.Speaker])
	}
}

func TestElectionReproducible(t *testing.T) {
	w := newTestWorld(t, politics.Lab)
	a := newTestEngine(t, 5).CalculateElection(w)
	b := newTestEngine(t, 6).CalculateElection(w)

	// The projection draws no randomness, so even different engine seeds
	// agree given the same polling.
	for p, n := range a.Seats {
		if b.Seats[p] != n {
			t.Errorf("%s seats diverged: %d vs %d", p, n, b.Seats[p])
		}
	}
}

func TestNationalistPartiesStayHome(t *testing.T) {
	e := newTestEngine(t, 5)
	w := newTestWorld(t, politics.Lab)
	// Give the SNP an absurd national surge; it still cannot leave Scotland.
	w.Polling[politics.SNP] = 40
	w.NormalizePolling()

	outcome := e.CalculateElection(w)
	for _, res := range outcome.Constituencies {
		if res.Winner == politics.SNP && res.Region != "Scotland" {
			t.Errorf("SNP won %s in %s", res.Name, res.Region)
		}
		if res.Winner == politics.DUP && res.Region != "Northern Ireland" {
			t.Errorf("DUP won %s in %s", res.Name, res.Region)
		}
	}
}

func TestElectionSwingMovesSeats(t *testing.T) {
	e := newTestEngine(t, 5)

	base := newTestWorld(t, politics.Lab)
	baseline := e.CalculateElection(base)

	surged := newTestWorld(t, politics.Lab)
	surged.Polling[politics.Con] = 45
	surged.Polling[politics.Lab] = 20
	surged.NormalizePolling()
	landslide := e.CalculateElection(surged)

	if landslide.Seats[politics.Con] <= baseline.Seats[politics.Con] {
		t.Errorf("a massive swing to con yielded %d seats, baseline %d",
			landslide.Seats[politics.Con], baseline.Seats[politics.Con])
	}
	if landslide.Seats[politics.Lab] >= baseline.Seats[politics.Lab] {
		t.Errorf("a massive swing away from lab kept %d seats, baseline %d",
			landslide.Seats[politics.Lab], baseline.Seats[politics.Lab])
	}
}

func TestConstituenciesSortedTightestFirst(t *testing.T) {
	e := newTestEngine(t, 5)
	w := newTestWorld(t, politics.Lab)
	outcome := e.CalculateElection(w)

	for i := 1; i < len(outcome.Constituencies); i++ {
		if outcome.Constituencies[i].Margin < outcome.Constituencies[i-1].Margin {
			t.Fatalf("results not ordered by margin at index %d", i)
		}
	}
}

func TestRegionFactor(t *testing.T) {
	for _, tc := range []struct {
		region, country string
		want            float64
	}{
		{"Scotland", "Scotland", 0.7},
		{"Northern Ireland", "Northern Ireland", 0.3},
		{"Wales", "Wales", 0.85},
		{"London", "England", 1.1},
		{"North East", "England", 1.0},
	} {
		if got := regionFactor(tc.region, tc.country); got != tc.want {
			t.Errorf("regionFactor(%s, %s) = %.2f, want %.2f", tc.region, tc.country, got, tc.want)
		}
	}
}

func TestEverySeatDeclaresAWinner(t *testing.T) {
	e := newTestEngine(t, 5)
	w := newTestWorld(t, politics.Lab)
	outcome := e.CalculateElection(w)

	if len(outcome.Constituencies) != e.Catalog().Len() {
		t.Fatalf("declared %d seats, catalog holds %d", len(outcome.Constituencies), e.Catalog().Len())
	}
	for _, res := range outcome.Constituencies {
		if res.Winner == "" {
			t.Errorf("%s declared no winner", res.Name)
		}
		if res.Margin < 0 {
			t.Errorf("%s has negative margin %.3f", res.Name, res.Margin)
		}
	}
}
