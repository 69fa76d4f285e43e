// Package constituency provides the static catalog of contested seats: one
// record per electoral district with its region, country, baseline party
// lean, and marginality. The catalog is generated deterministically from a
// seed and is read-only at runtime.
package constituency

import (
	"fmt"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/turbodog111/parliament/internal/politics"
)

// Constituency is one electoral district. Lean maps each contesting party to
// its baseline vote share (0–1); shares sum to just under 1, with the
// remainder representing minor candidates. Marginality 0 is a safe seat,
// 1 a knife-edge one.
type Constituency struct {
	ID          int
	Name        string
	Region      string
	Country     string
	Lean        map[politics.PartyID]float64
	Marginality float64
}

// ContestedSeats is the number of districts in the catalog. The speaker's
// seat is held apart and never contested, so this is one short of the house.
const ContestedSeats = politics.TotalSeats - 1

// regionSeats fixes how many contested seats each region holds. The speaker's
// seat is carved out of the North West. Totals 649.
var regionSeats = map[string]int{
	"North East":               27,
	"North West":               72,
	"Yorkshire and The Humber": 54,
	"East Midlands":            47,
	"West Midlands":            57,
	"East of England":          61,
	"London":                   75,
	"South East":               91,
	"South West":               58,
	"Wales":                    32,
	"Scotland":                 57,
	"Northern Ireland":         18,
}

// regionCountry maps each region to its nation.
var regionCountry = map[string]string{
	"North East":               "England",
	"North West":               "England",
	"Yorkshire and The Humber": "England",
	"East Midlands":            "England",
	"West Midlands":            "England",
	"East of England":          "England",
	"London":                   "England",
	"South East":               "England",
	"South West":               "England",
	"Wales":                    "Wales",
	"Scotland":                 "Scotland",
	"Northern Ireland":         "Northern Ireland",
}

// regionLean holds each region's baseline party profile. Per-seat leans are
// perturbed around these figures.
var regionLean = map[string]map[politics.PartyID]float64{
	"North East": {
		politics.Lab: 0.46, politics.Con: 0.18, politics.Reform: 0.20,
		politics.Lib: 0.06, politics.Green: 0.05,
	},
	"North West": {
		politics.Lab: 0.45, politics.Con: 0.22, politics.Reform: 0.15,
		politics.Lib: 0.08, politics.Green: 0.05,
	},
	"Yorkshire and The Humber": {
		politics.Lab: 0.42, politics.Con: 0.24, politics.Reform: 0.18,
		politics.Lib: 0.07, politics.Green: 0.05,
	},
	"East Midlands": {
		politics.Con: 0.36, politics.Lab: 0.34, politics.Reform: 0.17,
		politics.Lib: 0.05, politics.Green: 0.04,
	},
	"West Midlands": {
		politics.Lab: 0.38, politics.Con: 0.30, politics.Reform: 0.16,
		politics.Lib: 0.06, politics.Green: 0.05,
	},
	"East of England": {
		politics.Con: 0.38, politics.Lab: 0.28, politics.Reform: 0.17,
		politics.Lib: 0.08, politics.Green: 0.05,
	},
	"London": {
		politics.Lab: 0.48, politics.Con: 0.22, politics.Lib: 0.11,
		politics.Green: 0.09, politics.Reform: 0.06,
	},
	"South East": {
		politics.Con: 0.38, politics.Lab: 0.26, politics.Lib: 0.18,
		politics.Green: 0.07, politics.Reform: 0.07,
	},
	"South West": {
		politics.Con: 0.34, politics.Lab: 0.24, politics.Lib: 0.24,
		politics.Green: 0.07, politics.Reform: 0.07,
	},
	"Wales": {
		politics.Lab: 0.40, politics.Con: 0.20, politics.Plaid: 0.15,
		politics.Reform: 0.12, politics.Lib: 0.05, politics.Green: 0.04,
	},
	"Scotland": {
		politics.SNP: 0.34, politics.Lab: 0.32, politics.Con: 0.14,
		politics.Lib: 0.09, politics.Reform: 0.06, politics.Green: 0.03,
	},
	"Northern Ireland": {
		politics.SF: 0.27, politics.DUP: 0.25, politics.Alliance: 0.17,
		politics.SDLP: 0.14, politics.Other: 0.10,
	},
}

// Catalog is the full set of contested constituencies.
type Catalog struct {
	seats    []Constituency
	byRegion map[string][]int // region → indexes into seats
}

// Generate builds the catalog deterministically from a seed. The same seed
// always yields the same districts, leans, and marginalities.
func Generate(seed int64) *Catalog {
	// Independent noise layers: lean perturbation, vote engagement,
	// marginality texture.
	leanNoise := opensimplex.NewNormalized(seed)
	sumNoise := opensimplex.NewNormalized(seed + 1)
	margNoise := opensimplex.NewNormalized(seed + 2)

	c := &Catalog{byRegion: make(map[string][]int)}
	id := 0

	for _, region := range politics.Regions {
		count := regionSeats[region]
		country := regionCountry[region]
		base := regionLean[region]

		// Stable party order within the region profile.
		partyIDs := make([]politics.PartyID, 0, len(base))
		for p := range base {
			partyIDs = append(partyIDs, p)
		}
		sort.Slice(partyIDs, func(i, j int) bool { return partyIDs[i] < partyIDs[j] })

		names := regionSeatNames(region, count)

		for i := 0; i < count; i++ {
			// Seats in a region sit along one noise axis so neighbouring
			// districts lean alike.
			x := float64(i) * 0.35

			lean := make(map[politics.PartyID]float64, len(base))
			total := 0.0
			for pi, p := range partyIDs {
				y := float64(pi) * 7.3
				n := leanNoise.Eval2(x, y) // [0, 1]
				share := base[p] + (n-0.5)*0.12
				if share < 0.005 {
					share = 0.005
				}
				lean[p] = share
				total += share
			}

			// Rescale so shares sum to a little under 1, leaving room for
			// minor candidates.
			target := 0.93 + 0.04*sumNoise.Eval2(x, 31.7)
			for p := range lean {
				lean[p] = lean[p] / total * target
			}

			// Marginality: mostly the closeness of the top two shares,
			// textured by noise.
			top1, top2 := topTwo(lean)
			closeness := 1 - (top1-top2)/0.30
			if closeness < 0 {
				closeness = 0
			}
			if closeness > 1 {
				closeness = 1
			}
			m := 0.7*closeness + 0.3*margNoise.Eval2(x, 57.1)

			id++
			c.seats = append(c.seats, Constituency{
				ID:          id,
				Name:        names[i],
				Region:      region,
				Country:     country,
				Lean:        lean,
				Marginality: m,
			})
			c.byRegion[region] = append(c.byRegion[region], len(c.seats)-1)
		}
	}

	return c
}

func topTwo(lean map[politics.PartyID]float64) (float64, float64) {
	first, second := 0.0, 0.0
	for _, v := range lean {
		if v > first {
			second = first
			first = v
		} else if v > second {
			second = v
		}
	}
	return first, second
}

// Len returns the number of contested seats.
func (c *Catalog) Len() int { return len(c.seats) }

// All returns every constituency in catalog order.
func (c *Catalog) All() []Constituency { return c.seats }

// Region returns the constituencies of one region.
func (c *Catalog) Region(name string) []Constituency {
	idxs := c.byRegion[name]
	out := make([]Constituency, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, c.seats[i])
	}
	return out
}

// Marginals returns the region's most marginal seats, most competitive first.
func (c *Catalog) Marginals(region string, count int) []Constituency {
	seats := c.Region(region)
	sort.Slice(seats, func(i, j int) bool {
		return seats[i].Marginality > seats[j].Marginality
	})
	if count < len(seats) {
		seats = seats[:count]
	}
	return seats
}

// regionSeatNames produces count distinct seat names for a region.
func regionSeatNames(region string, count int) []string {
	towns := regionTowns[region]
	qualifiers := []string{
		"", " North", " South", " East", " West", " Central",
		" and Villages", " Moor", " Vale", " Borders",
	}

	names := make([]string, 0, count)
	seen := make(map[string]bool, count)
	for q := 0; len(names) < count; q++ {
		for _, town := range towns {
			if len(names) >= count {
				break
			}
			name := town
			if q < len(qualifiers) {
				name += qualifiers[q]
			} else {
				name = fmt.Sprintf("%s %d", town, q)
			}
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

var regionTowns = map[string][]string{
	"North East": {
		"Newcastle", "Gateshead", "Sunderland", "Durham", "Darlington",
		"Hartlepool", "Middlesbrough", "Stockton", "Tynemouth", "Blyth",
		"Hexham", "Bishop Auckland", "Washington", "South Shields",
	},
	"North West": {
		"Manchester", "Liverpool", "Preston", "Blackburn", "Blackpool",
		"Bolton", "Bury", "Carlisle", "Chester", "Lancaster", "Oldham",
		"Rochdale", "Salford", "Stockport", "Warrington", "Wigan",
		"Barrow", "Crewe", "Macclesfield", "Southport",
	},
	"Yorkshire and The Humber": {
		"Leeds", "Sheffield", "Bradford", "Hull", "York", "Wakefield",
		"Huddersfield", "Halifax", "Doncaster", "Rotherham", "Barnsley",
		"Scarborough", "Harrogate", "Grimsby", "Keighley", "Scunthorpe",
	},
	"East Midlands": {
		"Nottingham", "Leicester", "Derby", "Lincoln", "Northampton",
		"Chesterfield", "Mansfield", "Loughborough", "Kettering",
		"Boston", "Grantham", "Wellingborough", "Newark", "Corby",
	},
	"West Midlands": {
		"Birmingham", "Coventry", "Wolverhampton", "Stoke", "Walsall",
		"Dudley", "Worcester", "Shrewsbury", "Telford", "Stafford",
		"Solihull", "Nuneaton", "Redditch", "Hereford", "Tamworth",
	},
	"East of England": {
		"Norwich", "Ipswich", "Cambridge", "Peterborough", "Luton",
		"Colchester", "Chelmsford", "Southend", "Bedford", "Watford",
		"Stevenage", "Basildon", "Harlow", "St Albans", "King's Lynn",
		"Great Yarmouth",
	},
	"London": {
		"Hackney", "Islington", "Camden", "Westminster", "Lambeth",
		"Southwark", "Lewisham", "Greenwich", "Croydon", "Bromley",
		"Ealing", "Brent", "Harrow", "Barnet", "Enfield", "Haringey",
		"Tottenham", "Wandsworth", "Fulham", "Romford",
	},
	"South East": {
		"Brighton", "Oxford", "Reading", "Southampton", "Portsmouth",
		"Canterbury", "Maidstone", "Guildford", "Woking", "Crawley",
		"Eastbourne", "Hastings", "Dover", "Ashford", "Basingstoke",
		"Winchester", "Milton Keynes", "Aylesbury", "Slough", "Medway",
		"Worthing", "Chichester", "Banbury",
	},
	"South West": {
		"Bristol", "Plymouth", "Exeter", "Bath", "Gloucester",
		"Cheltenham", "Swindon", "Bournemouth", "Poole", "Taunton",
		"Torbay", "Truro", "St Ives", "Salisbury", "Yeovil", "Stroud",
	},
	"Wales": {
		"Cardiff", "Swansea", "Newport", "Wrexham", "Bangor",
		"Aberystwyth", "Llanelli", "Merthyr Tydfil", "Caerphilly",
		"Bridgend", "Rhondda", "Pontypridd",
	},
	"Scotland": {
		"Glasgow", "Edinburgh", "Aberdeen", "Dundee", "Stirling",
		"Inverness", "Perth", "Paisley", "Falkirk", "Kilmarnock",
		"Ayr", "Dunfermline", "Livingston", "Motherwell", "Greenock",
	},
	"Northern Ireland": {
		"Belfast", "Derry", "Lisburn", "Newry", "Armagh", "Antrim",
		"Bangor NI", "Omagh", "Enniskillen", "Coleraine",
	},
}
