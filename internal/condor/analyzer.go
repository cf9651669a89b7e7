// Package condor composes the pricing, probability, payoff, optimizer, and
// scoring engines into a full iron condor analysis report.
//
// Every operation is a pure, synchronous function of validated inputs; the
// package holds no mutable state and performs no I/O, so callers may run
// any number of analyses concurrently without coordination.
package condor

import (
	"fmt"
	"time"

	"github.com/quantfeld/ironcondor/internal/models"
	"github.com/quantfeld/ironcondor/internal/optimizer"
	"github.com/quantfeld/ironcondor/internal/payoff"
	"github.com/quantfeld/ironcondor/internal/pricing"
	"github.com/quantfeld/ironcondor/internal/probability"
	"github.com/quantfeld/ironcondor/internal/scoring"
	"github.com/quantfeld/ironcondor/internal/util"
)

const (
	// recommendationTarget is the probability of profit the recommended
	// strikes are optimized for in every analysis.
	recommendationTarget = 0.70

	// payoffSamples is the number of points on the report's payoff curve.
	payoffSamples = 20

	// payoffSpan is the fraction of spot covered on each side of the
	// payoff curve, i.e. samples span [0.85*S, 1.15*S].
	payoffSpan = 0.15
)

// Analyzer produces analysis reports for iron condor strategies. The zero
// value is not usable; construct with NewAnalyzer.
type Analyzer struct {
	now func() time.Time
}

// NewAnalyzer returns an Analyzer that evaluates expirations against the
// wall clock.
func NewAnalyzer() *Analyzer {
	return &Analyzer{now: time.Now}
}

// NewAnalyzerWithClock returns an Analyzer with an injected clock, for
// deterministic evaluation in tests.
func NewAnalyzerWithClock(now func() time.Time) *Analyzer {
	return &Analyzer{now: now}
}

// Analyze produces the full report for one strategy instance.
//
// A past or same-day expiration returns models.ErrExpiredStrategy with no
// partial report. Degenerate intermediate values (max loss <= 0) fall back
// to zero return-on-risk rather than erroring.
func (a *Analyzer) Analyze(params *models.StrategyParameters) (*models.AnalysisReport, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid strategy parameters: %w", err)
	}

	dte := params.DaysToExpiration(a.now())
	if dte <= 0 {
		return nil, models.ErrExpiredStrategy
	}
	t := float64(dte) / 365.0

	spot := params.Spot()
	sigma := params.ImpliedVolatility
	r := params.RiskFreeRate
	strikes := params.Strikes
	multiplier := float64(params.Contracts) * models.SharesPerContract

	longCallPrice := pricing.Call(spot, strikes.LongCall, t, r, sigma)
	shortCallPrice := pricing.Call(spot, strikes.ShortCall, t, r, sigma)
	shortPutPrice := pricing.Put(spot, strikes.ShortPut, t, r, sigma)
	longPutPrice := pricing.Put(spot, strikes.LongPut, t, r, sigma)

	netCredit := (shortCallPrice - longCallPrice + shortPutPrice - longPutPrice) * multiplier
	maxProfit := netCredit
	maxLoss := strikes.MaxSpreadWidth()*multiplier - netCredit

	creditPerShare := netCredit / multiplier
	upperBreakeven := strikes.ShortCall + creditPerShare
	lowerBreakeven := strikes.ShortPut - creditPerShare

	var returnOnRisk, riskRewardRatio float64
	if maxLoss > 0 {
		returnOnRisk = maxProfit / maxLoss * 100
		riskRewardRatio = maxProfit / maxLoss
	}

	probabilityOfProfit := probability.Band(spot, lowerBreakeven, upperBreakeven, t, sigma) * 100
	shortCallITM := probability.ITM(spot, strikes.ShortCall, t, sigma, models.RightCall) * 100
	shortPutITM := probability.ITM(spot, strikes.ShortPut, t, sigma, models.RightPut) * 100

	optimal, err := optimizer.OptimalStrikes(spot, t, sigma, recommendationTarget, strikes.MaxSpreadWidth())
	if err != nil {
		return nil, fmt.Errorf("strike recommendation failed: %w", err)
	}

	curve := payoff.Curve(strikes, netCredit, spot*(1-payoffSpan), spot*(1+payoffSpan), payoffSamples)
	for i := range curve {
		curve[i].Price = util.Round2(curve[i].Price)
		curve[i].PnL = util.Round2(curve[i].PnL)
	}

	return &models.AnalysisReport{
		RiskReward: models.RiskReward{
			MaxProfit:       util.Round2(maxProfit),
			MaxLoss:         util.Round2(maxLoss),
			ReturnOnRiskPct: util.Round2(returnOnRisk),
			RiskRewardRatio: util.RoundToTick(riskRewardRatio, 0.001),
			NetCredit:       util.Round2(netCredit),
		},
		Breakevens: models.Breakevens{
			Upper:    util.Round2(upperBreakeven),
			Lower:    util.Round2(lowerBreakeven),
			Range:    util.Round2(upperBreakeven - lowerBreakeven),
			RangePct: util.Round2((upperBreakeven - lowerBreakeven) / spot * 100),
		},
		Probability: models.ProbabilitySummary{
			ProfitPct:       util.Round2(probabilityOfProfit),
			LossPct:         util.Round2(100 - probabilityOfProfit),
			ShortCallITMPct: util.Round2(shortCallITM),
			ShortPutITMPct:  util.Round2(shortPutITM),
			Method:          models.ProbabilityMethod,
		},
		Sensitivity: models.Sensitivity{
			UpsideRoomPct:     util.Round2((upperBreakeven - spot) / spot * 100),
			DownsideRoomPct:   util.Round2((spot - lowerBreakeven) / spot * 100),
			DaysToExpiration:  dte,
			ImpliedVolatility: sigma,
			CurrentPrice:      spot,
		},
		Recommendations: models.StrikeRecommendation{
			OptimalLongCall:  optimal.LongCall,
			OptimalShortCall: optimal.ShortCall,
			OptimalShortPut:  optimal.ShortPut,
			OptimalLongPut:   optimal.LongPut,
			Reasoning: fmt.Sprintf("Strikes optimized for ~%.0f%% probability of profit based on %.0f%% IV",
				recommendationTarget*100, sigma*100),
		},
		Quality: models.QualityMetrics{
			Score:   scoring.Score(returnOnRisk, probabilityOfProfit, dte),
			Rating:  scoring.Rating(returnOnRisk, probabilityOfProfit),
			Factors: scoring.Factors(returnOnRisk, probabilityOfProfit, dte),
		},
		PayoffProfile: curve,
	}, nil
}
