// Package optimizer searches for iron condor strikes that hit a target
// probability of profit.
package optimizer

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/quantfeld/ironcondor/internal/models"
	"github.com/quantfeld/ironcondor/internal/util"
)

// strikeTick is the strike granularity used by listed index options.
// Rounding to it is a market convention, not floating-point cleanup.
const strikeTick = 5.0

var stdNormal = distuv.UnitNormal

// OptimalStrikes places the short strikes at the z-score bounding a
// symmetric interval with the target probability under the normal
// terminal-price approximation, then adds protective wings wingWidth away.
// All four strikes are rounded to the nearest multiple of 5.
func OptimalStrikes(spot, t, sigma, targetProbability, wingWidth float64) (models.StrikeSet, error) {
	if spot <= 0 {
		return models.StrikeSet{}, fmt.Errorf("spot must be > 0, got %.2f", spot)
	}
	if t <= 0 {
		return models.StrikeSet{}, fmt.Errorf("time to expiration must be > 0, got %.4f", t)
	}
	if sigma <= 0 {
		return models.StrikeSet{}, fmt.Errorf("volatility must be > 0, got %.4f", sigma)
	}
	if targetProbability < 0.5 || targetProbability > 0.95 {
		return models.StrikeSet{}, fmt.Errorf("target probability must be in [0.5, 0.95], got %.2f", targetProbability)
	}
	if wingWidth <= 0 {
		return models.StrikeSet{}, fmt.Errorf("wing width must be > 0, got %.2f", wingWidth)
	}

	priceStd := spot * sigma * math.Sqrt(t)
	z := stdNormal.Quantile((1 + targetProbability) / 2)

	shortCall := spot + z*priceStd
	shortPut := spot - z*priceStd

	return models.StrikeSet{
		LongCall:  util.RoundToTick(shortCall+wingWidth, strikeTick),
		ShortCall: util.RoundToTick(shortCall, strikeTick),
		ShortPut:  util.RoundToTick(shortPut, strikeTick),
		LongPut:   util.RoundToTick(shortPut-wingWidth, strikeTick),
	}, nil
}
