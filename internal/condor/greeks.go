package condor

import (
	"fmt"
	"math"

	"github.com/quantfeld/ironcondor/internal/models"
	"github.com/quantfeld/ironcondor/internal/util"
)

// LegGreeks carries caller-supplied per-leg Greeks vectors. The caller is
// responsible for having priced the legs; vectors use the raw
// direction-agnostic Black-Scholes sign convention.
type LegGreeks struct {
	LongCall  models.GreeksVector `json:"long_call_greeks"`
	ShortCall models.GreeksVector `json:"short_call_greeks"`
	ShortPut  models.GreeksVector `json:"short_put_greeks"`
	LongPut   models.GreeksVector `json:"long_put_greeks"`
}

// LegsBreakdown holds each leg's signed contribution to the portfolio.
type LegsBreakdown struct {
	LongCall  models.GreeksVector `json:"long_call"`
	ShortCall models.GreeksVector `json:"short_call"`
	ShortPut  models.GreeksVector `json:"short_put"`
	LongPut   models.GreeksVector `json:"long_put"`
}

// RiskProfile flags the structural risk characteristics of the aggregate.
type RiskProfile struct {
	DeltaNeutral  bool   `json:"delta_neutral"`
	PositiveTheta bool   `json:"positive_theta"`
	NegativeVega  bool   `json:"negative_vega"`
	GammaRisk     string `json:"gamma_risk"`
}

// DailyEstimates approximates next-day P&L under simple scenarios.
type DailyEstimates struct {
	ThetaDecayPnL      float64 `json:"theta_decay_pnl"`
	PnLUnderlyingUp1   float64 `json:"pnl_if_underlying_up_1pct"`
	PnLUnderlyingDown1 float64 `json:"pnl_if_underlying_down_1pct"`
}

// Interpretation gives plain-language readings of each Greek.
type Interpretation struct {
	Delta string `json:"delta"`
	Theta string `json:"theta"`
	Vega  string `json:"vega"`
	Gamma string `json:"gamma"`
}

// GreeksReport is the aggregate Greeks view of a condor position.
type GreeksReport struct {
	Portfolio      models.GreeksVector `json:"portfolio_greeks"`
	Legs           LegsBreakdown       `json:"legs_breakdown"`
	RiskProfile    RiskProfile         `json:"risk_profile"`
	DailyEstimates DailyEstimates      `json:"daily_estimates"`
	Interpretation Interpretation      `json:"interpretation"`
}

// AggregateGreeks nets the four legs into portfolio-level Greeks.
//
// Short legs contribute positively and long legs negatively (the condor is
// a net-short structure), scaled by contracts and the 100-share multiplier.
// Missing Greek fields in the input are zero-valued and simply contribute
// nothing; permissive aggregation is intentional.
func AggregateGreeks(legs LegGreeks, contracts int) *GreeksReport {
	multiplier := float64(contracts) * models.SharesPerContract

	longCall := legs.LongCall.Scale(-multiplier)
	shortCall := legs.ShortCall.Scale(multiplier)
	shortPut := legs.ShortPut.Scale(multiplier)
	longPut := legs.LongPut.Scale(-multiplier)

	portfolio := longCall.Add(shortCall).Add(shortPut).Add(longPut)

	profile := RiskProfile{
		DeltaNeutral:  math.Abs(portfolio.Delta) < 5,
		PositiveTheta: portfolio.Theta > 0,
		NegativeVega:  portfolio.Vega < 0,
		GammaRisk:     gammaRisk(portfolio.Gamma),
	}

	return &GreeksReport{
		Portfolio:   roundVector(portfolio),
		Legs:        LegsBreakdown{LongCall: roundVector(longCall), ShortCall: roundVector(shortCall), ShortPut: roundVector(shortPut), LongPut: roundVector(longPut)},
		RiskProfile: profile,
		DailyEstimates: DailyEstimates{
			ThetaDecayPnL:      util.Round2(portfolio.Theta),
			PnLUnderlyingUp1:   util.Round2(portfolio.Delta * 0.01),
			PnLUnderlyingDown1: util.Round2(-portfolio.Delta * 0.01),
		},
		Interpretation: interpret(portfolio, profile),
	}
}

func gammaRisk(gamma float64) string {
	switch abs := math.Abs(gamma); {
	case abs < 0.1:
		return "low"
	case abs < 0.5:
		return "moderate"
	default:
		return "high"
	}
}

func roundVector(g models.GreeksVector) models.GreeksVector {
	return models.GreeksVector{
		Delta: util.Round4(g.Delta),
		Gamma: util.Round4(g.Gamma),
		Theta: util.Round4(g.Theta),
		Vega:  util.Round4(g.Vega),
	}
}

func interpret(portfolio models.GreeksVector, profile RiskProfile) Interpretation {
	i := Interpretation{
		Delta: "Position is delta-neutral",
		Theta: "Position loses value over time",
		Vega:  "Position benefits from increasing volatility",
		Gamma: fmt.Sprintf("Gamma risk is %s", profile.GammaRisk),
	}
	if !profile.DeltaNeutral {
		i.Delta = fmt.Sprintf("Position has directional bias (delta: %.2f)", portfolio.Delta)
	}
	if profile.PositiveTheta {
		i.Theta = "Position benefits from time decay"
	}
	if profile.NegativeVega {
		i.Vega = "Position benefits from decreasing volatility"
	}
	return i
}
