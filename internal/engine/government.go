package engine

import (
	"sort"

	"github.com/turbodog111/parliament/internal/politics"
)

// PartySeats pairs a party with its seat count, used for the ranked result.
type PartySeats struct {
	Party politics.PartyID `json:"party"`
	Seats int              `json:"seats"`
}

// Government is the outcome of government formation over a seat map.
type Government struct {
	PMParty           politics.PartyID `json:"pm_party"`
	HasMajority       bool             `json:"has_majority"`
	EffectiveMajority int              `json:"effective_majority"`
	GovernmentSeats   int              `json:"government_seats"`
	HungParliament    bool             `json:"hung_parliament"`
	Ranked            []PartySeats     `json:"ranked"` // competitive parties, largest first
}

// DetermineGovernment applies the majority rule to a seat result. The
// speaker's seat and abstentionist members are excluded from the effective
// house; the majority threshold is floor(effectiveHouse/2)+1. The largest
// competitive party takes office; when two parties tie for largest, the one
// earlier in the canonical party order wins the tie. No coalition
// arithmetic — a short-of-majority outcome is reported as hung.
func DetermineGovernment(seats map[politics.PartyID]int) Government {
	ranked := make([]PartySeats, 0, len(politics.PartyOrder))
	for _, p := range politics.PartyOrder {
		ranked = append(ranked, PartySeats{Party: p, Seats: seats[p]})
	}
	// Stable sort preserves canonical order among equals — the documented
	// tie-break rule.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Seats > ranked[j].Seats
	})

	largest := ranked[0]

	abstaining := 0
	for _, p := range politics.PartyOrder {
		party := politics.ByID(p)
		if party != nil && party.Abstentionist {
			abstaining += seats[p]
		}
	}

	effectiveHouse := politics.TotalSeats - abstaining - 1 // -1 for the speaker
	effectiveMajority := effectiveHouse/2 + 1
	hasMajority := largest.Seats >= effectiveMajority

	return Government{
		PMParty:           largest.Party,
		HasMajority:       hasMajority,
		EffectiveMajority: effectiveMajority,
		GovernmentSeats:   largest.Seats,
		HungParliament:    !hasMajority,
		Ranked:            ranked,
	}
}
