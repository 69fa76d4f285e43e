package politics

// PartyID identifies a party or one of the three non-partisan seat buckets.
type PartyID string

const (
	Con      PartyID = "con"
	Lab      PartyID = "lab"
	Lib      PartyID = "lib"
	SNP      PartyID = "snp"
	Reform   PartyID = "reform"
	Green    PartyID = "green"
	Plaid    PartyID = "plaid"
	DUP      PartyID = "dup"
	SF       PartyID = "sf"
	SDLP     PartyID = "sdlp"
	Alliance PartyID = "alliance"

	// Non-partisan seat buckets.
	Independent PartyID = "ind"
	Speaker     PartyID = "speaker"
	Other       PartyID = "other"
)

// Party is a static party record. The zero Country means the party contests
// seats anywhere in the UK; a set Country restricts it to that nation.
type Party struct {
	ID            PartyID
	Name          string
	Short         string
	Leader        string
	Ideology      Ideology
	HomeRegions   []string // regions where national swing is amplified
	Country       string   // "" = no restriction
	Abstentionist bool     // holds seats but never votes
	Description   string
}

// PartyOrder is the canonical party ordering, used for stable iteration,
// display, and tie-breaking.
var PartyOrder = []PartyID{
	Con, Lab, Lib, SNP, Reform, Green, Plaid, DUP, SF, SDLP, Alliance,
}

// Playable lists the parties a player may lead.
var Playable = []PartyID{Con, Lab, Lib, SNP, Reform, Green, Plaid}

// SeatBuckets lists the party IDs that appear in seat maps alongside
// PartyOrder (no party record exists for these).
var SeatBuckets = []PartyID{Independent, Speaker, Other}

// ByID returns the party record, or nil for buckets and unknown IDs.
func ByID(id PartyID) *Party {
	p, ok := parties[id]
	if !ok {
		return nil
	}
	return &p
}

// TotalSeats is the size of the House of Commons.
const TotalSeats = 650

// Regions are the twelve electoral regions.
var Regions = []string{
	"North East", "North West", "Yorkshire and The Humber",
	"East Midlands", "West Midlands", "East of England",
	"London", "South East", "South West",
	"Wales", "Scotland", "Northern Ireland",
}

// Countries are the four nations of the UK.
var Countries = []string{"England", "Wales", "Scotland", "Northern Ireland"}

var parties = map[PartyID]Party{
	Con: {
		ID: Con, Name: "Conservative", Short: "Con", Leader: "Kemi Badenoch",
		Ideology: Ideology{
			AxisEconomy: 70, AxisTax: 72, AxisNHS: 55, AxisImmigration: 70,
			AxisEnvironment: 60, AxisDefence: 75, AxisDevolution: 70,
		},
		HomeRegions: []string{"South East", "South West", "East of England", "East Midlands"},
		Description: "Centre-right party of government, favouring free markets and traditional values.",
	},
	Lab: {
		ID: Lab, Name: "Labour", Short: "Lab", Leader: "Keir Starmer",
		Ideology: Ideology{
			AxisEconomy: 35, AxisTax: 35, AxisNHS: 25, AxisImmigration: 45,
			AxisEnvironment: 35, AxisDefence: 45, AxisDevolution: 35,
		},
		HomeRegions: []string{"North East", "North West", "Yorkshire and The Humber", "London", "Wales"},
		Description: "Centre-left party, championing workers' rights, the NHS, and social justice.",
	},
	Lib: {
		ID: Lib, Name: "Liberal Democrats", Short: "Lib Dem", Leader: "Ed Davey",
		Ideology: Ideology{
			AxisEconomy: 45, AxisTax: 40, AxisNHS: 30, AxisImmigration: 25,
			AxisEnvironment: 25, AxisDefence: 35, AxisDevolution: 25,
		},
		HomeRegions: []string{"South West", "South East", "London"},
		Description: "Centrist liberal party, strong on civil liberties, EU relations, and the environment.",
	},
	SNP: {
		ID: SNP, Name: "Scottish National Party", Short: "SNP", Leader: "John Swinney",
		Ideology: Ideology{
			AxisEconomy: 30, AxisTax: 30, AxisNHS: 20, AxisImmigration: 25,
			AxisEnvironment: 25, AxisDefence: 30, AxisDevolution: 5,
		},
		HomeRegions: []string{"Scotland"},
		Country:     "Scotland",
		Description: "Scottish independence party with social democratic domestic policies.",
	},
	Reform: {
		ID: Reform, Name: "Reform UK", Short: "Reform", Leader: "Nigel Farage",
		Ideology: Ideology{
			AxisEconomy: 80, AxisTax: 85, AxisNHS: 65, AxisImmigration: 95,
			AxisEnvironment: 85, AxisDefence: 85, AxisDevolution: 75,
		},
		HomeRegions: []string{"East of England", "East Midlands", "North East", "Yorkshire and The Humber"},
		Description: "Right-wing populist party focused on immigration control and small government.",
	},
	Green: {
		ID: Green, Name: "Green Party", Short: "Green", Leader: "Carla Denyer",
		Ideology: Ideology{
			AxisEconomy: 15, AxisTax: 15, AxisNHS: 10, AxisImmigration: 15,
			AxisEnvironment: 5, AxisDefence: 15, AxisDevolution: 20,
		},
		HomeRegions: []string{"London", "South East", "South West"},
		Description: "Left-wing environmentalist party prioritising climate action and social justice.",
	},
	Plaid: {
		ID: Plaid, Name: "Plaid Cymru", Short: "Plaid", Leader: "Rhun ap Iorwerth",
		Ideology: Ideology{
			AxisEconomy: 25, AxisTax: 25, AxisNHS: 20, AxisImmigration: 30,
			AxisEnvironment: 20, AxisDefence: 25, AxisDevolution: 5,
		},
		HomeRegions: []string{"Wales"},
		Country:     "Wales",
		Description: "Welsh nationalist party seeking greater Welsh autonomy and cultural preservation.",
	},
	DUP: {
		ID: DUP, Name: "Democratic Unionist Party", Short: "DUP", Leader: "Gavin Robinson",
		Ideology: Ideology{
			AxisEconomy: 55, AxisTax: 55, AxisNHS: 40, AxisImmigration: 70,
			AxisEnvironment: 60, AxisDefence: 80, AxisDevolution: 40,
		},
		HomeRegions: []string{"Northern Ireland"},
		Country:     "Northern Ireland",
		Description: "Northern Irish unionist party with socially conservative positions.",
	},
	SF: {
		ID: SF, Name: "Sinn Féin", Short: "SF", Leader: "Mary Lou McDonald",
		Ideology: Ideology{
			AxisEconomy: 20, AxisTax: 20, AxisNHS: 15, AxisImmigration: 30,
			AxisEnvironment: 25, AxisDefence: 20, AxisDevolution: 5,
		},
		HomeRegions:   []string{"Northern Ireland"},
		Country:       "Northern Ireland",
		Abstentionist: true,
		Description:   "Irish republican party that abstains from taking Westminster seats.",
	},
	SDLP: {
		ID: SDLP, Name: "SDLP", Short: "SDLP", Leader: "Claire Hanna",
		Ideology: Ideology{
			AxisEconomy: 30, AxisTax: 30, AxisNHS: 25, AxisImmigration: 30,
			AxisEnvironment: 25, AxisDefence: 30, AxisDevolution: 15,
		},
		HomeRegions: []string{"Northern Ireland"},
		Country:     "Northern Ireland",
		Description: "Moderate Irish nationalist social democratic party.",
	},
	Alliance: {
		ID: Alliance, Name: "Alliance Party", Short: "Alliance", Leader: "Naomi Long",
		Ideology: Ideology{
			AxisEconomy: 45, AxisTax: 40, AxisNHS: 30, AxisImmigration: 30,
			AxisEnvironment: 25, AxisDefence: 40, AxisDevolution: 25,
		},
		HomeRegions: []string{"Northern Ireland"},
		Country:     "Northern Ireland",
		Description: "Cross-community liberal party in Northern Ireland.",
	},
}

// BaselineSeats is the 2024 general election seat distribution.
var BaselineSeats = map[PartyID]int{
	Con: 121, Lab: 412, Lib: 72, SNP: 9, Reform: 5, Green: 4, Plaid: 4,
	DUP: 5, SF: 7, SDLP: 2, Alliance: 1,
	Independent: 6, Speaker: 1, Other: 1,
}

// BaselinePolling is the 2024 national vote share (%). The polling model
// mean-reverts toward these figures. No speaker entry — the speaker's seat
// is outside vote-intention polling.
var BaselinePolling = map[PartyID]float64{
	Con: 23.7, Lab: 33.7, Lib: 12.2, SNP: 2.5, Reform: 14.3, Green: 6.7,
	Plaid: 0.7, DUP: 0.6, SF: 0.7, SDLP: 0.3, Alliance: 0.2, Other: 4.4,
}

// CopySeats returns an independent copy of a seat map.
func CopySeats(m map[PartyID]int) map[PartyID]int {
	out := make(map[PartyID]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// CopyPolling returns an independent copy of a polling map.
func CopyPolling(m map[PartyID]float64) map[PartyID]float64 {
	out := make(map[PartyID]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
