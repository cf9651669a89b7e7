// Package pricing implements closed-form European option pricing and
// first-order Greeks under the standard log-normal diffusion model.
//
// All functions are pure. Degenerate time-to-expiration (T <= 0) falls back
// to intrinsic value for prices and zero for Greeks; callers are responsible
// for validating sigma and rate ranges before pricing.
package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/quantfeld/ironcondor/internal/models"
)

var stdNormal = distuv.UnitNormal

// d1d2 returns the two Black-Scholes quantiles for the given inputs.
func d1d2(s, k, t, r, sigma float64) (float64, float64) {
	sqrtT := math.Sqrt(t)
	d1 := (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / (sigma * sqrtT)
	return d1, d1 - sigma*sqrtT
}

// Call returns the theoretical price of a European call.
// With T <= 0 the option has no time value and the intrinsic is returned.
func Call(s, k, t, r, sigma float64) float64 {
	if t <= 0 {
		return math.Max(0, s-k)
	}
	d1, d2 := d1d2(s, k, t, r, sigma)
	return s*stdNormal.CDF(d1) - k*math.Exp(-r*t)*stdNormal.CDF(d2)
}

// Put returns the theoretical price of a European put.
// With T <= 0 the option has no time value and the intrinsic is returned.
func Put(s, k, t, r, sigma float64) float64 {
	if t <= 0 {
		return math.Max(0, k-s)
	}
	d1, d2 := d1d2(s, k, t, r, sigma)
	return k*math.Exp(-r*t)*stdNormal.CDF(-d2) - s*stdNormal.CDF(-d1)
}

// Price returns the theoretical price for the given right.
func Price(s, k, t, r, sigma float64, right models.OptionRight) float64 {
	if right == models.RightPut {
		return Put(s, k, t, r, sigma)
	}
	return Call(s, k, t, r, sigma)
}

// Greeks returns delta, gamma, theta, and vega for a single leg.
//
// Theta is expressed per calendar day (annual decay / 365). Vega is scaled
// to price change per one volatility point (/ 100). Gamma and vega are
// identical for calls and puts at the same strike. An expired leg (T <= 0)
// has no time premium left to be sensitive to, so all Greeks are zero.
func Greeks(s, k, t, r, sigma float64, right models.OptionRight) models.GreeksVector {
	if t <= 0 {
		return models.GreeksVector{}
	}

	d1, d2 := d1d2(s, k, t, r, sigma)
	sqrtT := math.Sqrt(t)
	discount := math.Exp(-r * t)

	var delta, theta float64
	if right == models.RightPut {
		delta = stdNormal.CDF(d1) - 1
		theta = (-s*stdNormal.Prob(d1)*sigma/(2*sqrtT) + r*k*discount*stdNormal.CDF(-d2)) / 365
	} else {
		delta = stdNormal.CDF(d1)
		theta = (-s*stdNormal.Prob(d1)*sigma/(2*sqrtT) - r*k*discount*stdNormal.CDF(d2)) / 365
	}

	return models.GreeksVector{
		Delta: delta,
		Gamma: stdNormal.Prob(d1) / (s * sigma * sqrtT),
		Theta: theta,
		Vega:  s * stdNormal.Prob(d1) * sqrtT / 100,
	}
}
