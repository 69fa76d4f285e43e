package engine

import (
	"sort"

	"github.com/turbodog111/parliament/internal/constituency"
	"github.com/turbodog111/parliament/internal/politics"
	"github.com/turbodog111/parliament/internal/state"
)

// ConstituencyResult is the declared outcome in one seat.
type ConstituencyResult struct {
	Name     string                       `json:"name"`
	Region   string                       `json:"region"`
	Winner   politics.PartyID             `json:"winner"`
	RunnerUp politics.PartyID             `json:"runner_up"`
	Margin   float64                      `json:"margin"`
	Votes    map[politics.PartyID]float64 `json:"votes"`
}

// ElectionOutcome is a full national result: the aggregated seat map and
// every constituency declaration, tightest races first.
type ElectionOutcome struct {
	Seats          map[politics.PartyID]int `json:"seats"`
	Constituencies []ConstituencyResult     `json:"constituencies"`
}

// regionFactor dampens or amplifies the national swing by country and
// region: Scotland and Northern Ireland move less than the GB-wide figure,
// London more.
func regionFactor(region, country string) float64 {
	switch country {
	case "Scotland":
		return 0.7
	case "Northern Ireland":
		return 0.3
	case "Wales":
		return 0.85
	}
	if region == "London" {
		return 1.1
	}
	return 1.0
}

// CalculateElection projects current polling against the last-election
// baseline into a full FPTP result. The routine itself draws no randomness;
// given fixed polling the outcome is reproducible.
func (e *Engine) CalculateElection(w *state.World) *ElectionOutcome {
	seats := make(map[politics.PartyID]int, len(politics.PartyOrder)+3)
	for _, p := range politics.PartyOrder {
		seats[p] = 0
	}
	seats[politics.Independent] = 0
	seats[politics.Other] = 0
	seats[politics.Speaker] = 1 // the chair is never contested

	// National swing per party since the last election.
	swings := make(map[politics.PartyID]float64, len(w.Polling))
	for p, v := range w.Polling {
		swings[p] = v - w.LastElectionPolling[p]
	}

	results := make([]ConstituencyResult, 0, e.catalog.Len())
	for _, con := range e.catalog.All() {
		res := e.contestSeat(con, swings)
		seatFor, known := seats[res.Winner]
		if known {
			seats[res.Winner] = seatFor + 1
		} else {
			seats[politics.Other]++
		}
		results = append(results, res)
	}

	// Tightest races first.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Margin < results[j].Margin
	})

	return &ElectionOutcome{Seats: seats, Constituencies: results}
}

// contestSeat resolves one district under regionally-modulated swing.
func (e *Engine) contestSeat(con constituency.Constituency, swings map[politics.PartyID]float64) ConstituencyResult {
	factor := regionFactor(con.Region, con.Country)
	votes := make(map[politics.PartyID]float64, len(con.Lean)+1)
	total := 0.0

	// Stable iteration over the district's contesting parties.
	ids := make([]politics.PartyID, 0, len(con.Lean))
	for p := range con.Lean {
		ids = append(ids, p)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, p := range ids {
		baseVote := con.Lean[p]
		swing := swings[p] / 100 * factor

		party := politics.ByID(p)
		if party != nil {
			// Parties swing harder where they are organizationally strong.
			if containsString(party.HomeRegions, con.Region) {
				swing *= 1.3
			}
			// Nationalist parties cannot contest outside their nation.
			if party.Country != "" && party.Country != con.Country {
				baseVote = 0
				swing = 0
			}
		}

		// Marginal seats swing more.
		swing *= 1 + con.Marginality*0.3

		share := baseVote + swing
		if share < 0 {
			share = 0
		}
		votes[p] = share
		total += share
	}

	// Unaccounted vote goes to minor candidates.
	if total < 0.95 {
		votes[politics.Other] += (1 - total) * 0.5
	}

	// FPTP: the single highest share takes the seat. A seat where every
	// modeled party is restricted out still resolves — to "other".
	winner, runnerUp := politics.Other, politics.Other
	winnerVote, runnerUpVote := 0.0, 0.0

	tally := make([]politics.PartyID, 0, len(votes))
	for p := range votes {
		tally = append(tally, p)
	}
	sort.Slice(tally, func(i, j int) bool { return tally[i] < tally[j] })
	for _, p := range tally {
		v := votes[p]
		if v > winnerVote {
			runnerUp, runnerUpVote = winner, winnerVote
			winner, winnerVote = p, v
		} else if v > runnerUpVote {
			runnerUp, runnerUpVote = p, v
		}
	}

	return ConstituencyResult{
		Name:     con.Name,
		Region:   con.Region,
		Winner:   winner,
		RunnerUp: runnerUp,
		Margin:   winnerVote - runnerUpVote,
		Votes:    votes,
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
