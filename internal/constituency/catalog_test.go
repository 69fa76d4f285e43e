package constituency

import (
	"testing"

	"github.com/turbodog111/parliament/internal/politics"
)

func TestGenerateSeatCount(t *testing.T) {
	c := Generate(1)
	if c.Len() != ContestedSeats {
		t.Errorf("generated %d seats, want %d", c.Len(), ContestedSeats)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(42).All()
	b := Generate(42).All()

	if len(a) != len(b) {
		t.Fatalf("catalog sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Region != b[i].Region {
			t.Fatalf("seat %d differs: %s vs %s", i, a[i].Name, b[i].Name)
		}
		for p, v := range a[i].Lean {
			if b[i].Lean[p] != v {
				t.Fatalf("%s: %s lean differs: %.4f vs %.4f", a[i].Name, p, v, b[i].Lean[p])
			}
		}
		if a[i].Marginality != b[i].Marginality {
			t.Fatalf("%s: marginality differs", a[i].Name)
		}
	}
}

func TestGenerateSeedsDiffer(t *testing.T) {
	a := Generate(1).All()
	b := Generate(2).All()

	same := 0
	for i := range a {
		if a[i].Lean[politics.Lab] == b[i].Lean[politics.Lab] {
			same++
		}
	}
	if same == len(a) {
		t.Error("different seeds produced identical lean maps")
	}
}

func TestRegionSeatCounts(t *testing.T) {
	c := Generate(1)
	for region, want := range regionSeats {
		if got := len(c.Region(region)); got != want {
			t.Errorf("%s has %d seats, want %d", region, got, want)
		}
	}
}

func TestSeatProperties(t *testing.T) {
	c := Generate(7)
	names := make(map[string]bool, c.Len())

	for _, con := range c.All() {
		if con.Name == "" {
			t.Fatal("unnamed constituency")
		}
		if names[con.Name] {
			t.Errorf("duplicate constituency name %q", con.Name)
		}
		names[con.Name] = true

		if con.Marginality < 0 || con.Marginality > 1 {
			t.Errorf("%s marginality %.3f outside [0,1]", con.Name, con.Marginality)
		}
		if con.Country == "" {
			t.Errorf("%s has no country", con.Name)
		}
		for p, v := range con.Lean {
			if v < 0 {
				t.Errorf("%s: %s lean %.4f negative", con.Name, p, v)
			}
		}
	}
}

func TestNorthernIrelandFieldsItsOwnParties(t *testing.T) {
	c := Generate(1)
	gb := map[politics.PartyID]bool{
		politics.Con: true, politics.Lab: true, politics.Lib: true,
		politics.SNP: true, politics.Reform: true, politics.Green: true,
		politics.Plaid: true,
	}
	for _, con := range c.Region("Northern Ireland") {
		for p := range con.Lean {
			if gb[p] {
				t.Errorf("%s fields GB party %s", con.Name, p)
			}
		}
	}
}

func TestMarginals(t *testing.T) {
	c := Generate(1)
	m := c.Marginals("London", 10)

	if len(m) != 10 {
		t.Fatalf("got %d marginals, want 10", len(m))
	}
	for i := 1; i < len(m); i++ {
		if m[i].Marginality > m[i-1].Marginality {
			t.Fatal("marginals not ordered tightest first")
		}
	}
}
