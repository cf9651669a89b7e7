package models

// GreeksVector holds the four first-order sensitivities of a single option
// leg, per contract and per share. The sign convention is direction-agnostic
// (raw Black-Scholes sign); leg direction is applied during aggregation.
type GreeksVector struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
}

// GreeksFromMap builds a GreeksVector from a loosely-typed field map.
// Missing fields contribute 0.0 rather than failing; callers supplying
// Greeks from external sources often omit fields they did not compute.
func GreeksFromMap(m map[string]float64) GreeksVector {
	return GreeksVector{
		Delta: m["delta"],
		Gamma: m["gamma"],
		Theta: m["theta"],
		Vega:  m["vega"],
	}
}

// Scale returns the vector multiplied by k. Used to apply leg direction
// (k = -1 for long legs) and contract/share multipliers.
func (g GreeksVector) Scale(k float64) GreeksVector {
	return GreeksVector{
		Delta: g.Delta * k,
		Gamma: g.Gamma * k,
		Theta: g.Theta * k,
		Vega:  g.Vega * k,
	}
}

// Add returns the element-wise sum of two vectors.
func (g GreeksVector) Add(o GreeksVector) GreeksVector {
	return GreeksVector{
		Delta: g.Delta + o.Delta,
		Gamma: g.Gamma + o.Gamma,
		Theta: g.Theta + o.Theta,
		Vega:  g.Vega + o.Vega,
	}
}
