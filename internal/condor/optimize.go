package condor

import (
	"fmt"
	"time"

	"github.com/quantfeld/ironcondor/internal/models"
	"github.com/quantfeld/ironcondor/internal/optimizer"
)

// OptimizeRequest asks for strikes hitting a target probability of profit,
// plus the expected performance of the resulting condor.
type OptimizeRequest struct {
	Symbol            string    `json:"symbol"`
	Expiration        time.Time `json:"expiration"`
	CurrentPrice      float64   `json:"current_price"`
	ImpliedVolatility float64   `json:"implied_volatility"`
	TargetProbability float64   `json:"target_probability"`
	WingWidth         float64   `json:"wing_width"`
	Contracts         int       `json:"contracts"`
	RiskFreeRate      float64   `json:"risk_free_rate"`
}

// OptimizationParameters echoes the inputs the optimization ran with.
type OptimizationParameters struct {
	TargetProbability float64 `json:"target_probability"`
	WingWidth         float64 `json:"wing_width"`
	CurrentPrice      float64 `json:"current_price"`
	ImpliedVolatility float64 `json:"implied_volatility"`
	DaysToExpiration  int     `json:"days_to_expiration"`
}

// OptimizeResult pairs the optimal strikes with a full analysis of the
// condor they describe.
type OptimizeResult struct {
	OptimalStrikes      models.StrikeSet       `json:"optimal_strikes"`
	ExpectedPerformance *models.AnalysisReport `json:"expected_performance"`
	Parameters          OptimizationParameters `json:"optimization_parameters"`
}

// Optimize derives the strikes for the requested probability target and
// then analyzes the resulting condor ("optimize then analyze").
func (a *Analyzer) Optimize(req OptimizeRequest) (*OptimizeResult, error) {
	dte := int(req.Expiration.Sub(a.now()).Hours() / 24)
	if dte <= 0 {
		return nil, models.ErrExpiredStrategy
	}
	t := float64(dte) / 365.0

	strikes, err := optimizer.OptimalStrikes(req.CurrentPrice, t, req.ImpliedVolatility,
		req.TargetProbability, req.WingWidth)
	if err != nil {
		return nil, fmt.Errorf("strike optimization failed: %w", err)
	}

	analysis, err := a.Analyze(&models.StrategyParameters{
		Symbol:            req.Symbol,
		Expiration:        req.Expiration,
		Strikes:           strikes,
		Contracts:         req.Contracts,
		CurrentPrice:      req.CurrentPrice,
		ImpliedVolatility: req.ImpliedVolatility,
		RiskFreeRate:      req.RiskFreeRate,
	})
	if err != nil {
		return nil, fmt.Errorf("analyzing optimized strikes: %w", err)
	}

	return &OptimizeResult{
		OptimalStrikes:      strikes,
		ExpectedPerformance: analysis,
		Parameters: OptimizationParameters{
			TargetProbability: req.TargetProbability,
			WingWidth:         req.WingWidth,
			CurrentPrice:      req.CurrentPrice,
			ImpliedVolatility: req.ImpliedVolatility,
			DaysToExpiration:  dte,
		},
	}, nil
}
