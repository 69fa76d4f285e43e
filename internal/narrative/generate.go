package narrative

import (
	"context"
	"fmt"

	"github.com/turbodog111/parliament/internal/state"
)

// generateEvent asks the live generator for an event card. Returns an error
// when the output cannot be coerced into the schema.
func (c *Client) generateEvent(ctx context.Context, w *state.World) (*Event, error) {
	messages := []Message{
		{
			Role: "system",
			Content: `You are a British political event generator for a Parliament simulator game. Generate realistic UK political events.
Return ONLY a JSON object (no markdown, no explanation) with this exact structure:
{"title":"Event title","description":"2-3 sentence description","severity":"minor|moderate|major|crisis","category":"economy|health|immigration|crime|environment|foreign-affairs|education|housing|transport|party-politics|scandal|media","choices":[{"label":"Choice text","hint":"Brief mechanical hint","effects":{"approval":0,"unity":0,"polling":{"partyId":0}}},{"label":"Choice text","hint":"Hint","effects":{"approval":0,"unity":0}},{"label":"Choice text","hint":"Hint","effects":{"approval":0,"unity":0}}]}`,
		},
		{
			Role: "user",
			Content: buildContext(w) + `

Generate a political event appropriate for this situation. Make it specific to current UK politics. The three choices should have different risk/reward profiles. Effects should range from -15 to +15 for approval/unity.`,
		},
	}

	raw, err := c.Chat(ctx, messages, 0.85, 600)
	if err != nil {
		return nil, err
	}

	var ev Event
	if !extractJSON(raw, &ev) {
		return nil, fmt.Errorf("event output is not valid JSON")
	}
	if !sanitizeEvent(&ev) {
		return nil, fmt.Errorf("event output missing title or choices")
	}
	ev.Generated = true
	return &ev, nil
}

// generateHeadlines asks for a set of newspaper headlines.
func (c *Client) generateHeadlines(ctx context.Context, w *state.World) ([]state.Headline, error) {
	eventContext := ""
	if n := len(w.EventLog); n > 0 {
		last := w.EventLog[n-1]
		eventContext = fmt.Sprintf("\nLatest event: %q — Player chose: %q", last.Title, last.ChosenLabel)
	}

	messages := []Message{
		{
			Role: "system",
			Content: `You are generating British newspaper headlines for a Parliament simulator. Return ONLY a JSON array of 3-4 headline objects.
Format: [{"source":"BBC|Guardian|Telegraph|Sun|Times","headline":"The headline text"}]
Each outlet has a distinct voice: BBC is neutral, Guardian is left-leaning, Telegraph is right-leaning, Sun is tabloid/populist, Times is establishment.`,
		},
		{
			Role:    "user",
			Content: buildContext(w) + eventContext + "\n\nGenerate 3-4 newspaper headlines about the current political situation.",
		},
	}

	raw, err := c.Chat(ctx, messages, 0.7, 200)
	if err != nil {
		return nil, err
	}

	var headlines []state.Headline
	if !extractJSON(raw, &headlines) || len(headlines) == 0 {
		return nil, fmt.Errorf("headline output is not valid JSON")
	}
	return headlines, nil
}

// generateVoteAnalysis asks for a structured prediction on a bill.
func (c *Client) generateVoteAnalysis(ctx context.Context, w *state.World, bill *state.Bill) (*VoteAnalysis, error) {
	messages := []Message{
		{
			Role: "system",
			Content: `You are a Parliamentary vote analyst. Provide a brief analysis of how a bill vote is likely to go, considering party positions, whipping, and potential rebels. Return ONLY a JSON object:
{"prediction":"likely_pass|likely_fail|too_close","analysis":"2-3 sentence analysis","keyFactors":["factor1","factor2"],"potentialRebels":"description of likely rebels"}`,
		},
		{
			Role: "user",
			Content: fmt.Sprintf("%s\n\nAnalyse the upcoming vote on: %q - %s\nStage: %s, Proposed by: %s",
				buildContext(w), bill.Title, bill.Summary, bill.Stage, partyLongName(bill.Proposer)),
		},
	}

	raw, err := c.Chat(ctx, messages, 0.4, 400)
	if err != nil {
		return nil, err
	}

	var va VoteAnalysis
	if !extractJSON(raw, &va) || va.Prediction == "" {
		return nil, fmt.Errorf("analysis output is not valid JSON")
	}
	return &va, nil
}

// generateBillDraft asks for a bill on a topic.
func (c *Client) generateBillDraft(ctx context.Context, w *state.World, topic string) (*BillDraft, error) {
	messages := []Message{
		{
			Role: "system",
			Content: `You are a Parliamentary bill drafter. Generate a bill for the UK Parliament. Return ONLY a JSON object:
{"title":"Short Bill Title Act 20XX","summary":"One paragraph describing what the bill does","ideology":{"economy":50,"tax":50,"nhs":50,"immigration":50,"environment":50,"defence":50,"devolution":50}}`,
		},
		{
			Role:    "user",
			Content: fmt.Sprintf("%s\n\nDraft a bill about: %s\nPolitical leaning: aligned with the proposing party's ideology", buildContext(w), topic),
		},
	}

	raw, err := c.Chat(ctx, messages, 0.6, 600)
	if err != nil {
		return nil, err
	}

	var draft BillDraft
	if !extractJSON(raw, &draft) {
		return nil, fmt.Errorf("draft output is not valid JSON")
	}
	if !sanitizeDraft(&draft) {
		return nil, fmt.Errorf("draft output missing title")
	}
	return &draft, nil
}
