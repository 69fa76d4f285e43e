package engine

import (
	"github.com/turbodog111/parliament/internal/entropy"
	"github.com/turbodog111/parliament/internal/politics"
	"github.com/turbodog111/parliament/internal/state"
)

// CalculateBillVote simulates a Commons division on a bill. The whip only
// applies to government business: on a bill proposed by the governing party
// or a coalition partner, the government benches vote aye minus a rebellion
// share shaped by unity. On opposition business the whip covers the proposer
// alone, and the government benches assess the bill on ideological alignment
// like any other party. Abstentionists sit out in full; the speaker never
// votes.
func (e *Engine) CalculateBillVote(w *state.World, bill *state.Bill) *state.VoteResult {
	ayes, noes, abstentions := 0, 0, 0
	breakdown := make(map[politics.PartyID]state.PartyVotes)

	proposerGoverns := bill.Proposer == w.PMParty || containsParty(w.CoalitionPartners, bill.Proposer)

	for _, partyID := range politics.PartyOrder {
		party := politics.ByID(partyID)
		if party == nil {
			continue
		}
		seats := w.Seats[partyID]
		if seats == 0 {
			continue
		}

		if party.Abstentionist {
			abstentions += seats
			breakdown[partyID] = state.PartyVotes{Seats: seats, Abstain: true}
			continue
		}

		alignment := politics.Alignment(party.Ideology, bill.Ideology)

		isGovernment := partyID == w.PMParty || containsParty(w.CoalitionPartners, partyID)
		isProposer := partyID == bill.Proposer

		var partyAyes int
		if isProposer || (isGovernment && proposerGoverns) {
			// Whipped vote: rebellion shrinks as unity rises. Non-player
			// benches get an assumed cohesion figure.
			rebelRate := e.cfg.GovernmentRebelRate
			if isProposer {
				rebelRate = e.cfg.ProposerRebelRate
			}
			unityFactor := e.cfg.AssumedUnity
			if partyID == w.PlayerParty {
				unityFactor = float64(w.Unity) / 100
			}
			rebels := int(float64(seats) * rebelRate * (1 - unityFactor*0.7))
			partyAyes = seats - rebels
		} else {
			// Free(ish) vote by alignment band.
			switch {
			case alignment > 0.65:
				partyAyes = int(float64(seats) * alignment * 0.6)
			case alignment > 0.4:
				partyAyes = int(float64(seats) * alignment * 0.3)
			default:
				partyAyes = int(float64(seats) * 0.05)
			}
		}

		// Per-party noise, bounded so the split stays within the bench.
		partyAyes += entropy.IntBetween(e.rng, -e.cfg.VoteNoiseSeats, e.cfg.VoteNoiseSeats)
		if partyAyes < 0 {
			partyAyes = 0
		}
		if partyAyes > seats {
			partyAyes = seats
		}
		partyNoes := seats - partyAyes

		ayes += partyAyes
		noes += partyNoes
		breakdown[partyID] = state.PartyVotes{Seats: seats, Ayes: partyAyes, Noes: partyNoes}
	}

	return &state.VoteResult{
		Ayes:        ayes,
		Noes:        noes,
		Abstentions: abstentions,
		Passed:      ayes > noes,
		Majority:    ayes - noes,
		Breakdown:   breakdown,
	}
}

func containsParty(list []politics.PartyID, p politics.PartyID) bool {
	for _, v := range list {
		if v == p {
			return true
		}
	}
	return false
}
