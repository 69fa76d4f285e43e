// Package state owns the mutable political world: seats, polling, approval,
// bills, and phase. There is no ambient global — callers hold a *World and
// thread it through the engine, so independent simulations can coexist.
package state

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/turbodog111/parliament/internal/politics"
)

// Version tags saved snapshots. Loads reject snapshots from a different
// major version.
const Version = "1.0.0"

// Phase gates which operations are legal.
type Phase string

const (
	PhaseGoverning Phase = "governing"
	PhaseCampaign  Phase = "campaign"
)

// BillStage tracks a bill through its simplified lifecycle.
type BillStage string

const (
	StageIntroduced  BillStage = "introduced"
	StageRoyalAssent BillStage = "royal assent"
)

// BillStatus is the bill's terminal disposition.
type BillStatus string

const (
	BillActive   BillStatus = "active"
	BillPassed   BillStatus = "passed"
	BillDefeated BillStatus = "defeated"
)

// Bill is one piece of legislation.
type Bill struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Summary        string             `json:"summary"`
	Proposer       politics.PartyID   `json:"proposer"`
	Ideology       politics.Ideology  `json:"ideology"`
	Stage          BillStage          `json:"stage"`
	Status         BillStatus         `json:"status"`
	LastVote       *VoteResult        `json:"last_vote,omitempty"`
	IntroducedTurn int                `json:"introduced_turn"`
	ResolvedTurn   int                `json:"resolved_turn,omitempty"`
}

// PartyVotes is one party's share of a division.
type PartyVotes struct {
	Seats   int  `json:"seats"`
	Ayes    int  `json:"ayes"`
	Noes    int  `json:"noes"`
	Abstain bool `json:"abstain,omitempty"`
}

// VoteResult is the outcome of a Commons division.
type VoteResult struct {
	Ayes        int                             `json:"ayes"`
	Noes        int                             `json:"noes"`
	Abstentions int                             `json:"abstentions"`
	Passed      bool                            `json:"passed"`
	Majority    int                             `json:"majority"`
	Breakdown   map[politics.PartyID]PartyVotes `json:"breakdown"`
}

// ElectionRecord archives one general election.
type ElectionRecord struct {
	Turn    int                          `json:"turn"`
	Date    string                       `json:"date"`
	Seats   map[politics.PartyID]int     `json:"seats"`
	Polling map[politics.PartyID]float64 `json:"polling"`
}

// EventRecord logs a resolved political event and the choice taken.
type EventRecord struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Severity    string      `json:"severity"`
	Category    string      `json:"category"`
	ChosenLabel string      `json:"chosen_label"`
	Effects     EffectDelta `json:"effects"`
	Turn        int         `json:"turn"`
	Date        string      `json:"date"`
}

// Headline is one generated newspaper headline.
type Headline struct {
	Source   string `json:"source"`
	Headline string `json:"headline"`
	Turn     int    `json:"turn"`
}

// World is the complete mutable political snapshot. Single writer at a time:
// the currently executing orchestrator step.
type World struct {
	Version     string           `json:"version"`
	GameID      string           `json:"game_id"`
	PlayerParty politics.PartyID `json:"player_party"`
	PlayerName  string           `json:"player_name"`
	Phase       Phase            `json:"phase"`

	Turn              int `json:"turn"`
	TurnsInParliament int `json:"turns_in_parliament"`
	ElectionCount     int `json:"election_count"`

	// Seats from the last election. Sums to politics.TotalSeats always.
	Seats map[politics.PartyID]int `json:"seats"`

	// National polling (%), renormalized after every mutation. No speaker
	// entry — the chair sits outside vote-intention polling.
	Polling             map[politics.PartyID]float64 `json:"polling"`
	LastElectionPolling map[politics.PartyID]float64 `json:"last_election_polling"`

	Approval      int `json:"approval"`       // PM approval, 0–100
	ApprovalTrend int `json:"approval_trend"` // last change
	Unity         int `json:"unity"`          // party unity, 0–100
	PartyFunds    int `json:"party_funds"`
	Activists     int `json:"activists"`

	// Player party's current policy platform, distinct from the static
	// catalog ideology.
	Policy politics.Ideology `json:"policy"`

	Bills       []*Bill `json:"bills"`
	BillHistory []*Bill `json:"bill_history"`

	PMParty           politics.PartyID   `json:"pm_party"`
	OppositionLeader  politics.PartyID   `json:"opposition_leader"`
	CoalitionPartners []politics.PartyID `json:"coalition_partners"`
	IsInGovernment    bool               `json:"is_in_government"`

	EventLog []EventRecord `json:"event_log"`
	NewsLog  []Headline    `json:"news_log"`

	CampaignTargets []string         `json:"campaign_targets"`
	ElectionHistory []ElectionRecord `json:"election_history"`
}

// New creates a fresh world at the July 2024 baseline. Labour holds office;
// a player leading any other party starts in opposition.
func New(playerParty politics.PartyID, playerName string) (*World, error) {
	party := politics.ByID(playerParty)
	if party == nil {
		return nil, fmt.Errorf("unknown party %q", playerParty)
	}

	w := &World{
		Version:     Version,
		GameID:      uuid.NewString(),
		PlayerParty: playerParty,
		PlayerName:  playerName,
		Phase:       PhaseGoverning,

		Seats:               politics.CopySeats(politics.BaselineSeats),
		Polling:             politics.CopyPolling(politics.BaselinePolling),
		LastElectionPolling: politics.CopyPolling(politics.BaselinePolling),

		Approval:   45,
		Unity:      70,
		PartyFunds: 500,
		Activists:  200,

		Policy: party.Ideology.Clone(),

		PMParty:           politics.Lab,
		OppositionLeader:  politics.Con,
		IsInGovernment:    playerParty == politics.Lab,
		CoalitionPartners: nil,
	}
	if playerParty != politics.Lab {
		w.OppositionLeader = playerParty
	}
	return w, nil
}

// NormalizePolling rescales polling so the shares sum to 100 whenever the
// total has drifted past tolerance. Values are kept to one decimal place.
// Idempotent: re-running it never moves an already-normalized map.
func (w *World) NormalizePolling() {
	total := 0.0
	for _, v := range w.Polling {
		total += v
	}
	if total <= 0 {
		return
	}
	diff := total - 100
	if diff < 0 {
		diff = -diff
	}
	if diff <= 0.5 {
		return
	}
	factor := 100 / total
	for p, v := range w.Polling {
		w.Polling[p] = roundTenth(v * factor)
	}
}

// ActiveBill finds an active bill by ID.
func (w *World) ActiveBill(id string) *Bill {
	for _, b := range w.Bills {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func roundTenth(v float64) float64 {
	if v < 0 {
		return -roundTenth(-v)
	}
	return float64(int(v*10+0.5)) / 10
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
