package narrative

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/turbodog111/parliament/internal/entropy"
	"github.com/turbodog111/parliament/internal/politics"
	"github.com/turbodog111/parliament/internal/state"
)

const (
	// eventChance is the per-turn probability that something happens.
	eventChance = 0.7
	// recentWindow is how many recent event titles to avoid repeating.
	recentWindow = 5
)

// Service produces events, headlines and analysis for the game. When the
// client is nil (no model configured) it serves from static pools, so the
// game is fully playable offline.
type Service struct {
	client *Client
	rng    entropy.Source
	recent []string
}

func NewService(client *Client, rng entropy.Source) *Service {
	return &Service{client: client, rng: rng}
}

// Enabled reports whether a live generator is wired in.
func (s *Service) Enabled() bool { return s.client != nil }

// MaybeEvent rolls for a political event this turn. Returns nil when the
// turn passes quietly.
func (s *Service) MaybeEvent(ctx context.Context, w *state.World) *Event {
	if s.rng.Float() >= eventChance {
		return nil
	}
	ev := s.Event(ctx, w)
	return &ev
}

// Event produces an event, preferring the live generator and falling back
// to the static pool on any failure.
func (s *Service) Event(ctx context.Context, w *state.World) Event {
	if s.client != nil {
		ev, err := s.client.generateEvent(ctx, w)
		if err == nil {
			s.remember(ev.Title)
			return *ev
		}
		slog.Warn("event generation failed, using fallback", "error", err)
	}
	ev := pickFallbackEvent(s.rng, s.recent)
	s.remember(ev.Title)
	return ev
}

// Headlines produces this turn's newspaper front pages.
func (s *Service) Headlines(ctx context.Context, w *state.World) []state.Headline {
	var headlines []state.Headline
	if s.client != nil {
		generated, err := s.client.generateHeadlines(ctx, w)
		if err == nil {
			headlines = generated
		} else {
			slog.Warn("headline generation failed, using fallback", "error", err)
		}
	}
	if headlines == nil {
		headlines = pickFallbackHeadlines(s.rng)
	}
	for i := range headlines {
		headlines[i].Turn = w.Turn
	}
	return headlines
}

// VoteAnalysis produces commentary on an upcoming division. The projected
// result drives the fallback so offline analysis still reflects the whip
// count rather than canned text.
func (s *Service) VoteAnalysis(ctx context.Context, w *state.World, bill *state.Bill, projected *state.VoteResult) VoteAnalysis {
	if s.client != nil {
		va, err := s.client.generateVoteAnalysis(ctx, w, bill)
		if err == nil {
			return *va
		}
		slog.Warn("vote analysis failed, using fallback", "error", err)
	}
	return analyseProjection(bill, projected)
}

// BillDraft produces a bill on the given topic. Offline, a neutral draft
// centred on the proposer's own platform is returned.
func (s *Service) BillDraft(ctx context.Context, w *state.World, topic string) BillDraft {
	if s.client != nil {
		draft, err := s.client.generateBillDraft(ctx, w, topic)
		if err == nil {
			return *draft
		}
		slog.Warn("bill drafting failed, using fallback", "error", err)
	}
	return BillDraft{
		Title:    fmt.Sprintf("%s Bill %d", topic, state.Year(w.Turn)),
		Summary:  fmt.Sprintf("A bill to make provision about %s, and for connected purposes.", topic),
		Ideology: w.Policy.Clone(),
	}
}

// ResolveEvent applies the chosen response to the world and records it in
// the event log. Index is clamped rather than rejected since the choices
// are a closed UI-driven set.
func ResolveEvent(w *state.World, ev *Event, choiceIdx int) state.EventRecord {
	if choiceIdx < 0 {
		choiceIdx = 0
	}
	if choiceIdx >= len(ev.Choices) {
		choiceIdx = len(ev.Choices) - 1
	}
	choice := ev.Choices[choiceIdx]

	effects := choice.Effects
	// Approval swings bleed into the player's own polling at a reduced rate.
	if effects.Approval != 0 {
		if effects.Polling == nil {
			effects.Polling = make(map[politics.PartyID]float64, 1)
		}
		effects.Polling[w.PlayerParty] += float64(effects.Approval) * 0.3
	}
	w.ApplyEffects(effects)

	record := state.EventRecord{
		Title:       ev.Title,
		Description: ev.Description,
		Severity:    ev.Severity,
		Category:    ev.Category,
		ChosenLabel: choice.Label,
		Effects:     choice.Effects,
		Turn:        w.Turn,
		Date:        state.Date(w.Turn),
	}
	w.EventLog = append(w.EventLog, record)
	return record
}

// analyseProjection builds a deterministic analysis from a simulated
// division result.
func analyseProjection(bill *state.Bill, result *state.VoteResult) VoteAnalysis {
	va := VoteAnalysis{
		KeyFactors: []string{"Party whip strength", "Ideological distance from the bill"},
	}
	margin := result.Ayes - result.Noes
	switch {
	case margin > 40:
		va.Prediction = "likely_pass"
		va.Analysis = fmt.Sprintf("The %s commands a comfortable cross-bench coalition for this division. Barring a mass rebellion, expect it to clear this stage with room to spare.", bill.Title)
	case margin < -40:
		va.Prediction = "likely_fail"
		va.Analysis = fmt.Sprintf("The numbers are not there for the %s. Opposition benches are largely hostile and the whips have little margin to work with.", bill.Title)
	default:
		va.Prediction = "too_close"
		va.Analysis = fmt.Sprintf("The %s hangs on a knife edge. A handful of rebels or abstentions on either side could decide the outcome.", bill.Title)
	}
	if result.Abstentions > 20 {
		va.PotentialRebels = "Significant abstentions expected across several benches."
	} else {
		va.PotentialRebels = "A small number of ideological outliers on each side."
	}
	return va
}

func (s *Service) remember(title string) {
	s.recent = append(s.recent, title)
	if len(s.recent) > recentWindow {
		s.recent = s.recent[len(s.recent)-recentWindow:]
	}
}
