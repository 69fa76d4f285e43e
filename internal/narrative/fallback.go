package narrative

import (
	"github.com/turbodog111/parliament/internal/entropy"
	"github.com/turbodog111/parliament/internal/politics"
	"github.com/turbodog111/parliament/internal/state"
)

// fallbackEvents is the static pool used when no generator is configured or
// when its output fails validation.
var fallbackEvents = []Event{
	{
		Title:       "NHS Waiting Lists Hit Record High",
		Description: "New figures show NHS England waiting lists have reached a record 7.8 million. Opposition parties are demanding emergency action while health unions threaten industrial action over pay.",
		Severity:    "major",
		Category:    "health",
		Choices: []Choice{
			{
				Label:   "Announce emergency NHS funding package",
				Hint:    "Popular but strains the budget",
				Effects: state.EffectDelta{Approval: 5, Funds: -100, Polling: map[politics.PartyID]float64{politics.Green: -0.3}},
			},
			{
				Label:   "Blame the previous government's underinvestment",
				Hint:    "Deflects but looks evasive",
				Effects: state.EffectDelta{Approval: -2, Unity: 2},
			},
			{
				Label:   "Propose structural NHS reform with private sector involvement",
				Hint:    "Divisive within most parties",
				Effects: state.EffectDelta{Approval: -1, Unity: -6, Polling: map[politics.PartyID]float64{politics.Reform: 0.5}},
			},
		},
	},
	{
		Title:       "Small Boats Crossings Surge",
		Description: "Channel crossings have surged to their highest monthly total on record. The Home Office is under intense pressure as tabloids run front-page coverage demanding action.",
		Severity:    "major",
		Category:    "immigration",
		Choices: []Choice{
			{
				Label:   "Announce tough new enforcement measures",
				Hint:    "Appeals to the right, angers the left",
				Effects: state.EffectDelta{Approval: 3, Unity: -4, Polling: map[politics.PartyID]float64{politics.Reform: -0.8}},
			},
			{
				Label:   "Propose expanded safe and legal routes",
				Hint:    "Principled but risks tabloid backlash",
				Effects: state.EffectDelta{Approval: -3, Unity: 3, Polling: map[politics.PartyID]float64{politics.Green: -0.3, politics.Lib: -0.3}},
			},
			{
				Label:   "Seek a returns agreement with France",
				Hint:    "Sensible but slow to show results",
				Effects: state.EffectDelta{Approval: 1, Unity: 1},
			},
		},
	},
	{
		Title:       "Inflation Falls But Food Prices Stay High",
		Description: "Headline inflation has fallen to 3.1%, but food price inflation remains stubbornly high at 8%. Families report continued pressure on household budgets despite the improving headline figures.",
		Severity:    "moderate",
		Category:    "economy",
		Choices: []Choice{
			{
				Label:   "Take credit for falling inflation",
				Hint:    "Risky if voters don't feel better off",
				Effects: state.EffectDelta{Approval: 2, Unity: 1},
			},
			{
				Label:   "Announce targeted cost-of-living support",
				Hint:    "Costs money but shows action",
				Effects: state.EffectDelta{Approval: 4, Funds: -75},
			},
			{
				Label:   "Warn against complacency and promise fiscal discipline",
				Hint:    "Sober but uninspiring",
				Effects: state.EffectDelta{Approval: -1, Unity: 2},
			},
		},
	},
	{
		Title:       "Backbench Rebellion Brewing",
		Description: "A group of your backbenchers is privately briefing journalists against the leadership's direction. A letter signed by 25 MPs is circulating, demanding a change of course.",
		Severity:    "moderate",
		Category:    "party-politics",
		Choices: []Choice{
			{
				Label:   "Meet the rebels and offer concessions",
				Hint:    "Restores unity but looks weak",
				Effects: state.EffectDelta{Approval: -2, Unity: 8},
			},
			{
				Label:   "Face them down publicly",
				Hint:    "Strong leadership or open warfare",
				Effects: state.EffectDelta{Approval: 3, Unity: -8},
			},
			{
				Label:   "Quietly reshuffle troublemakers out of key roles",
				Hint:    "Machiavellian but effective",
				Effects: state.EffectDelta{Unity: -3, Activists: -20},
			},
		},
	},
	{
		Title:       "Minister Caught in Expenses Row",
		Description: "A senior frontbencher from your party has been accused of claiming expenses for a second home they rarely use. The story is leading the evening news bulletins.",
		Severity:    "major",
		Category:    "scandal",
		Choices: []Choice{
			{
				Label:   "Sack them immediately",
				Hint:    "Decisive but loses an ally",
				Effects: state.EffectDelta{Approval: 2, Unity: -5},
			},
			{
				Label:   "Stand by them pending an investigation",
				Hint:    "Loyal but the story drags on",
				Effects: state.EffectDelta{Approval: -5, Unity: 3},
			},
			{
				Label:   "Let them resign with dignity",
				Hint:    "Contained damage",
				Effects: state.EffectDelta{Approval: -1, Unity: -1},
			},
		},
	},
	{
		Title:       "Flooding Devastates Northern Towns",
		Description: "Severe flooding has hit towns across the north of England after record rainfall. Thousands of homes are underwater and flood defence spending is under scrutiny.",
		Severity:    "major",
		Category:    "environment",
		Choices: []Choice{
			{
				Label:   "Visit affected areas and pledge recovery funds",
				Hint:    "Visible leadership costs money",
				Effects: state.EffectDelta{Approval: 4, Funds: -80},
			},
			{
				Label:   "Announce a review of flood defence spending",
				Hint:    "Buys time but looks bureaucratic",
				Effects: state.EffectDelta{Approval: -2},
			},
			{
				Label:   "Link the disaster to climate policy",
				Hint:    "Green voters approve, others see opportunism",
				Effects: state.EffectDelta{Approval: -1, Polling: map[politics.PartyID]float64{politics.Green: -0.5}},
			},
		},
	},
	{
		Title:       "Teachers Vote for Strike Action",
		Description: "The largest teaching union has voted overwhelmingly for strike action over pay and workload. Schools across England face closure for several days next month.",
		Severity:    "moderate",
		Category:    "education",
		Choices: []Choice{
			{
				Label:   "Open negotiations with an improved pay offer",
				Hint:    "Costly but avoids disruption",
				Effects: state.EffectDelta{Approval: 2, Funds: -60},
			},
			{
				Label:   "Condemn the strikes as harming children",
				Hint:    "Firm but risks alienating parents who back teachers",
				Effects: state.EffectDelta{Approval: -2, Unity: 2},
			},
			{
				Label:   "Propose minimum service level legislation",
				Hint:    "Hard line with legal risk",
				Effects: state.EffectDelta{Approval: -1, Unity: -3, Polling: map[politics.PartyID]float64{politics.Con: 0.3}},
			},
		},
	},
	{
		Title:       "Poll Boost After Conference Speech",
		Description: "Your party conference speech has been well received, with commentators praising its energy and clarity. A snap poll shows a modest bounce in your favourability.",
		Severity:    "minor",
		Category:    "party-politics",
		Choices: []Choice{
			{
				Label:   "Capitalise with a media blitz",
				Hint:    "Momentum costs resources",
				Effects: state.EffectDelta{Approval: 3, Funds: -40, Activists: 30},
			},
			{
				Label:   "Bank the gains and return to governing",
				Hint:    "Steady as she goes",
				Effects: state.EffectDelta{Approval: 1, Unity: 2},
			},
			{
				Label:   "Use the moment to announce a bold policy",
				Hint:    "High risk, high reward",
				Effects: state.EffectDelta{Approval: 2, Unity: -3},
			},
		},
	},
	{
		Title:       "Rail Chaos After Signal Failures",
		Description: "A cascade of signal failures has paralysed the rail network for a second day. Commuters are stranded and the transport secretary is facing calls to resign.",
		Severity:    "moderate",
		Category:    "transport",
		Choices: []Choice{
			{
				Label:   "Announce emergency infrastructure investment",
				Hint:    "Addresses the cause at a price",
				Effects: state.EffectDelta{Approval: 2, Funds: -70},
			},
			{
				Label:   "Blame the train operating companies",
				Hint:    "Deflection with some truth to it",
				Effects: state.EffectDelta{Approval: -1},
			},
			{
				Label:   "Promise a review of rail franchising",
				Hint:    "Kicks the can down the line",
				Effects: state.EffectDelta{Approval: -2, Unity: 1},
			},
		},
	},
	{
		Title:       "Housing Crisis Deepens",
		Description: "Average private rents have risen 9% in a year and homelessness charities report record demand. Young voters say housing is now their top political issue.",
		Severity:    "moderate",
		Category:    "housing",
		Choices: []Choice{
			{
				Label:   "Pledge a major housebuilding programme",
				Hint:    "Ambitious, angers NIMBY voters",
				Effects: state.EffectDelta{Approval: 3, Unity: -4},
			},
			{
				Label:   "Introduce rent controls in high-pressure areas",
				Hint:    "Popular with renters, landlords revolt",
				Effects: state.EffectDelta{Approval: 2, Unity: -5, Polling: map[politics.PartyID]float64{politics.Con: 0.4}},
			},
			{
				Label:   "Expand help-to-buy style support",
				Hint:    "Safe but economists say it inflates prices",
				Effects: state.EffectDelta{Approval: 1, Funds: -50},
			},
		},
	},
}

// fallbackHeadlines is keyed loosely by situation and cycled through when
// no generator is available.
var fallbackHeadlines = [][]state.Headline{
	{
		{Source: "BBC", Headline: "Westminster braces for turbulent week as polls tighten"},
		{Source: "Guardian", Headline: "Government under pressure over public services funding"},
		{Source: "Sun", Headline: "PM IN CRISIS TALKS AS VOTERS TURN"},
	},
	{
		{Source: "Telegraph", Headline: "Backbench unease grows over direction of government"},
		{Source: "Times", Headline: "Cabinet split emerges over spending priorities"},
		{Source: "BBC", Headline: "Analysis: what the latest polling means for the parties"},
	},
	{
		{Source: "Guardian", Headline: "Campaigners urge bolder action on cost of living"},
		{Source: "Sun", Headline: "WHAT PLANET ARE THEY ON? Fury at Westminster games"},
		{Source: "Telegraph", Headline: "Business leaders warn against policy drift"},
	},
	{
		{Source: "BBC", Headline: "Parliament returns to packed legislative agenda"},
		{Source: "Times", Headline: "Whips work overtime as key votes loom"},
		{Source: "Guardian", Headline: "Marginal seats in focus as parties eye next election"},
	},
	{
		{Source: "Sun", Headline: "POLL SHOCK: Voters deliver brutal verdict"},
		{Source: "Telegraph", Headline: "Tax burden at postwar high, economists find"},
		{Source: "BBC", Headline: "Fact check: the claims behind this week's political row"},
	},
}

// pickFallbackEvent selects a random event from the static pool, avoiding
// the most recently used titles where possible.
func pickFallbackEvent(rng entropy.Source, recent []string) Event {
	seen := make(map[string]bool, len(recent))
	for _, t := range recent {
		seen[t] = true
	}
	var fresh []int
	for i := range fallbackEvents {
		if !seen[fallbackEvents[i].Title] {
			fresh = append(fresh, i)
		}
	}
	var idx int
	if len(fresh) > 0 {
		idx = fresh[rng.IntN(len(fresh))]
	} else {
		idx = rng.IntN(len(fallbackEvents))
	}
	ev := fallbackEvents[idx]
	ev.Generated = false
	return ev
}

func pickFallbackHeadlines(rng entropy.Source) []state.Headline {
	set := fallbackHeadlines[rng.IntN(len(fallbackHeadlines))]
	out := make([]state.Headline, len(set))
	copy(out, set)
	return out
}
