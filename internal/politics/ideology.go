// Package politics holds the static political reference data: policy axes,
// party definitions, and the baseline seat and polling tables.
// Immutable after load — the engine never writes here.
package politics

// Axis names one policy dimension. Every axis ranges 0 (left/liberal)
// to 100 (right/authoritarian).
type Axis string

const (
	AxisEconomy     Axis = "economy"
	AxisTax         Axis = "tax"
	AxisNHS         Axis = "nhs"
	AxisImmigration Axis = "immigration"
	AxisEnvironment Axis = "environment"
	AxisDefence     Axis = "defence"
	AxisDevolution  Axis = "devolution"
)

// Axes is the canonical axis order.
var Axes = []Axis{
	AxisEconomy, AxisTax, AxisNHS, AxisImmigration,
	AxisEnvironment, AxisDefence, AxisDevolution,
}

// Ideology maps policy axes to positions. Party vectors carry all axes;
// bill vectors may be partial.
type Ideology map[Axis]float64

// Clone returns an independent copy.
func (i Ideology) Clone() Ideology {
	out := make(Ideology, len(i))
	for k, v := range i {
		out[k] = v
	}
	return out
}

// Alignment scores how closely two ideology vectors agree, averaged over the
// axes present in both: (100 − |a−b|) / 100 per axis, so 1.0 is identical
// positions and 0.0 is maximal distance. With no shared axes the score is a
// neutral 0.5 — an unpositioned bill is neither friend nor foe.
func Alignment(party, bill Ideology) float64 {
	sum := 0.0
	axes := 0
	for axis, billPos := range bill {
		partyPos, ok := party[axis]
		if !ok {
			continue
		}
		diff := billPos - partyPos
		if diff < 0 {
			diff = -diff
		}
		sum += (100 - diff) / 100
		axes++
	}
	if axes == 0 {
		return 0.5
	}
	return sum / float64(axes)
}
