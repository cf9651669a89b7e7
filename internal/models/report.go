package models

// ProbabilityMethod documents the price-distribution assumption behind the
// probability figures in a report. The engine deliberately uses a normal
// approximation of the terminal price (std dev S·sigma·sqrt(T)) rather than
// full log-normal quantiles; downstream score calibration assumes its bias.
const ProbabilityMethod = "black_scholes_normal_distribution"

// RiskReward summarizes the dollar risk profile of the position.
type RiskReward struct {
	MaxProfit       float64 `json:"max_profit"`
	MaxLoss         float64 `json:"max_loss"`
	ReturnOnRiskPct float64 `json:"return_on_risk_percent"`
	RiskRewardRatio float64 `json:"risk_reward_ratio"`
	NetCredit       float64 `json:"net_credit"`
}

// Breakevens holds the two zero-P&L underlying prices at expiration.
type Breakevens struct {
	Upper    float64 `json:"upper"`
	Lower    float64 `json:"lower"`
	Range    float64 `json:"range"`
	RangePct float64 `json:"range_percent"`
}

// ProbabilitySummary holds the profit-band and per-leg ITM probabilities,
// all expressed in percent.
type ProbabilitySummary struct {
	ProfitPct       float64 `json:"profit_percent"`
	LossPct         float64 `json:"loss_percent"`
	ShortCallITMPct float64 `json:"short_call_itm_percent"`
	ShortPutITMPct  float64 `json:"short_put_itm_percent"`
	Method          string  `json:"method"`
}

// Sensitivity describes how much room the position has before breaching a
// breakeven, plus the inputs the analysis was computed against.
type Sensitivity struct {
	UpsideRoomPct     float64 `json:"upside_room_percent"`
	DownsideRoomPct   float64 `json:"downside_room_percent"`
	DaysToExpiration  int     `json:"days_to_expiration"`
	ImpliedVolatility float64 `json:"implied_volatility"`
	CurrentPrice      float64 `json:"current_price"`
}

// StrikeRecommendation carries the optimizer's suggested strikes for the
// analyzed expiration and volatility.
type StrikeRecommendation struct {
	OptimalLongCall  float64 `json:"optimal_long_call_strike"`
	OptimalShortCall float64 `json:"optimal_short_call_strike"`
	OptimalShortPut  float64 `json:"optimal_short_put_strike"`
	OptimalLongPut   float64 `json:"optimal_long_put_strike"`
	Reasoning        string  `json:"reasoning"`
}

// QualityFactors labels each scoring input qualitatively.
type QualityFactors struct {
	ReturnOnRisk        string `json:"return_on_risk"`
	ProbabilityOfProfit string `json:"probability_of_profit"`
	TimeToExpiration    string `json:"time_to_expiration"`
}

// QualityMetrics holds the blended 0-100 score and ordinal rating.
type QualityMetrics struct {
	Score   float64        `json:"score"`
	Rating  string         `json:"rating"`
	Factors QualityFactors `json:"factors"`
}

// PayoffPoint is one sample of the expiration P&L curve.
type PayoffPoint struct {
	Price float64 `json:"price"`
	PnL   float64 `json:"pnl"`
}

// AnalysisReport is the full derived output for one iron condor. It is
// created fresh per request and has no lifecycle beyond the call that
// produced it.
type AnalysisReport struct {
	RiskReward      RiskReward           `json:"risk_reward"`
	Breakevens      Breakevens           `json:"breakevens"`
	Probability     ProbabilitySummary   `json:"probability"`
	Sensitivity     Sensitivity          `json:"sensitivity"`
	Recommendations StrikeRecommendation `json:"recommendations"`
	Quality         QualityMetrics       `json:"quality_metrics"`
	PayoffProfile   []PayoffPoint        `json:"payoff_profile"`
}
