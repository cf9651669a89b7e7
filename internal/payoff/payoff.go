// Package payoff evaluates the expiration P&L of an iron condor.
package payoff

import "github.com/quantfeld/ironcondor/internal/models"

// Evaluate returns the total dollar P&L of a condor at the given underlying
// price. netCredit must already include the contracts and 100-share
// multipliers; the per-share spread legs are scaled by 100 here.
//
// The function is piecewise linear and continuous, with breakpoints at
// exactly the four strikes.
func Evaluate(underlying float64, strikes models.StrikeSet, netCredit float64) float64 {
	var callPnL float64
	switch {
	case underlying <= strikes.ShortCall:
		callPnL = 0
	case underlying >= strikes.LongCall:
		callPnL = -(strikes.LongCall - strikes.ShortCall)
	default:
		callPnL = -(underlying - strikes.ShortCall)
	}

	var putPnL float64
	switch {
	case underlying >= strikes.ShortPut:
		putPnL = 0
	case underlying <= strikes.LongPut:
		putPnL = -(strikes.ShortPut - strikes.LongPut)
	default:
		putPnL = -(strikes.ShortPut - underlying)
	}

	return (callPnL+putPnL)*models.SharesPerContract + netCredit
}

// Curve samples the payoff at n evenly spaced prices across
// [lo, hi] inclusive. n must be at least 2.
func Curve(strikes models.StrikeSet, netCredit, lo, hi float64, n int) []models.PayoffPoint {
	points := make([]models.PayoffPoint, 0, n)
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		price := lo + step*float64(i)
		points = append(points, models.PayoffPoint{
			Price: price,
			PnL:   Evaluate(price, strikes, netCredit),
		})
	}
	return points
}
