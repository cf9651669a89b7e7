// Package probability estimates terminal-price probabilities for option
// positions.
//
// Band probabilities use a normal approximation of the terminal price with
// standard deviation S·sigma·sqrt(T) rather than full log-normal quantiles.
// The approximation is deliberate and must be preserved: downstream scoring
// is calibrated against its bias. Reports label it with
// models.ProbabilityMethod.
package probability

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/quantfeld/ironcondor/internal/models"
)

var stdNormal = distuv.UnitNormal

// ITM returns the risk-neutral probability that a leg finishes in-the-money
// at expiration, using the drift-adjusted d2 = (ln(S/K) - sigma^2 T/2)/(sigma sqrt(T)).
//
// For T <= 0 the outcome is already decided: 1 if the spot is past the
// strike in the exercising direction, 0 otherwise.
func ITM(s, k, t, sigma float64, right models.OptionRight) float64 {
	if t <= 0 {
		if (right == models.RightCall && s > k) || (right == models.RightPut && s < k) {
			return 1.0
		}
		return 0.0
	}

	d2 := (math.Log(s/k) - 0.5*sigma*sigma*t) / (sigma * math.Sqrt(t))
	if right == models.RightCall {
		return 1 - stdNormal.CDF(d2)
	}
	return stdNormal.CDF(d2)
}

// Band returns the probability that the underlying lands strictly between
// lower and upper at expiration, under the normal terminal-price
// approximation with std dev S·sigma·sqrt(T).
func Band(s, lower, upper, t, sigma float64) float64 {
	if t <= 0 {
		if s > lower && s < upper {
			return 1.0
		}
		return 0.0
	}

	priceStd := s * sigma * math.Sqrt(t)
	zUpper := (upper - s) / priceStd
	zLower := (lower - s) / priceStd
	return stdNormal.CDF(zUpper) - stdNormal.CDF(zLower)
}
