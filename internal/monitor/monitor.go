// Package monitor evaluates open iron condor positions against current
// market prices: mark-to-expiration P&L, threshold alerts, and batch
// refreshes across a book of positions.
package monitor

import (
	"fmt"
	"time"

	"github.com/quantfeld/ironcondor/internal/models"
	"github.com/quantfeld/ironcondor/internal/payoff"
	"github.com/quantfeld/ironcondor/internal/util"
)

// Alert thresholds. A position is flagged once it captures half its
// maximum profit, loses half the credit received, or enters the final
// week before expiration.
const (
	profitTargetPercent  = 50.0
	lossThresholdFactor  = 0.5
	expirationWarningDTE = 7
)

// Alert types.
const (
	AlertProfitTarget      = "PROFIT_TARGET"
	AlertLossThreshold     = "LOSS_THRESHOLD"
	AlertExpirationWarning = "EXPIRATION_WARNING"
)

// Alert severities.
const (
	SeverityInfo    = "INFO"
	SeverityWarning = "WARNING"
)

// Alert is a single actionable condition on a monitored position.
type Alert struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// PositionRequest describes an open position to evaluate.
type PositionRequest struct {
	StrategyID   int              `json:"strategy_id"`
	Symbol       string           `json:"symbol"`
	Expiration   time.Time        `json:"expiration_date"`
	Strikes      models.StrikeSet `json:"strikes"`
	Contracts    int              `json:"contracts"`
	EntryCredit  float64          `json:"entry_credit"`
	CurrentPrice float64          `json:"current_price"`
}

// PositionStatus is the evaluated state of one position.
type PositionStatus struct {
	StrategyID       int     `json:"strategy_id"`
	CurrentPrice     float64 `json:"current_price"`
	CurrentPnL       float64 `json:"current_pnl"`
	PnLPercent       float64 `json:"pnl_percent"`
	DaysToExpiration int     `json:"days_to_expiration"`
	EntryCredit      float64 `json:"entry_credit"`
}

// Report pairs a position's status with any triggered alerts.
type Report struct {
	Status PositionStatus `json:"position_status"`
	Alerts []Alert        `json:"alerts"`
}

// Monitor evaluates positions against an injectable clock.
type Monitor struct {
	now func() time.Time
}

// NewMonitor returns a Monitor using the wall clock.
func NewMonitor() *Monitor {
	return &Monitor{now: time.Now}
}

// NewMonitorWithClock returns a Monitor with an injected clock for
// deterministic evaluation in tests.
func NewMonitorWithClock(now func() time.Time) *Monitor {
	return &Monitor{now: now}
}

// Evaluate computes the position's mark-to-expiration P&L at the request's
// current price and collects threshold alerts. The entry credit must be
// nonzero since P&L percent is expressed against it.
func (m *Monitor) Evaluate(req *PositionRequest) (*Report, error) {
	if err := req.Strikes.Validate(); err != nil {
		return nil, fmt.Errorf("invalid strikes: %w", err)
	}
	if req.EntryCredit == 0 {
		return nil, fmt.Errorf("entry credit must be nonzero")
	}
	if req.CurrentPrice <= 0 {
		return nil, fmt.Errorf("current price must be positive, got %v", req.CurrentPrice)
	}

	dte := int(req.Expiration.Sub(m.now()).Hours() / 24)
	currentPnL := payoff.Evaluate(req.CurrentPrice, req.Strikes, req.EntryCredit)
	pnlPercent := currentPnL / abs(req.EntryCredit) * 100

	alerts := []Alert{}
	if pnlPercent >= profitTargetPercent {
		alerts = append(alerts, Alert{
			Type:     AlertProfitTarget,
			Message:  fmt.Sprintf("Position has reached %.1f%% of max profit", pnlPercent),
			Severity: SeverityInfo,
		})
	}
	if currentPnL < -req.EntryCredit*lossThresholdFactor {
		alerts = append(alerts, Alert{
			Type:     AlertLossThreshold,
			Message:  fmt.Sprintf("Position has lost %.1f%% of max profit", abs(currentPnL/req.EntryCredit*100)),
			Severity: SeverityWarning,
		})
	}
	if dte <= expirationWarningDTE {
		alerts = append(alerts, Alert{
			Type:     AlertExpirationWarning,
			Message:  fmt.Sprintf("Position expires in %d days", dte),
			Severity: SeverityInfo,
		})
	}

	return &Report{
		Status: PositionStatus{
			StrategyID:       req.StrategyID,
			CurrentPrice:     req.CurrentPrice,
			CurrentPnL:       util.Round2(currentPnL),
			PnLPercent:       util.Round2(pnlPercent),
			DaysToExpiration: dte,
			EntryCredit:      req.EntryCredit,
		},
		Alerts: alerts,
	}, nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
