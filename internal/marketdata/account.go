package marketdata

import (
	"fmt"
	"time"

	"github.com/quantfeld/ironcondor/internal/util"
)

// DemoPosition is a generated open position for the demo account surface.
type DemoPosition struct {
	PositionID    string    `json:"position_id"`
	Symbol        string    `json:"symbol"`
	PositionType  string    `json:"position_type"`
	Quantity      float64   `json:"quantity"`
	EntryPrice    float64   `json:"entry_price"`
	CurrentPrice  float64   `json:"current_price"`
	UnrealizedPnL float64   `json:"unrealized_pnl"`
	Commission    float64   `json:"commission"`
	OpenTime      time.Time `json:"open_time"`
}

// EquitySnapshot is a generated account balance summary.
type EquitySnapshot struct {
	Broker          string    `json:"broker"`
	AccountID       string    `json:"account_id"`
	EquityBalance   float64   `json:"equity_balance"`
	CashBalance     float64   `json:"cash_balance"`
	MarginUsed      float64   `json:"margin_used"`
	AvailableMargin float64   `json:"available_margin"`
	UnrealizedPnL   float64   `json:"unrealized_pnl"`
	MarginLevel     float64   `json:"margin_level"`
	Timestamp       time.Time `json:"timestamp"`
}

// DemoPositions returns a sample open book for the demo account.
func DemoPositions(now time.Time) []DemoPosition {
	return []DemoPosition{
		{
			PositionID:    fmt.Sprintf("POS_%04d", 1000+int(secureFloat64()*9000)),
			Symbol:        "EURUSD",
			PositionType:  "LONG",
			Quantity:      100000.0,
			EntryPrice:    1.0850,
			CurrentPrice:  1.0875,
			UnrealizedPnL: 250.0,
			Commission:    5.0,
			OpenTime:      now,
		},
	}
}

// DemoEquity returns a generated equity snapshot with unrealized P&L
// wandering within +-500 around a 50k base.
func DemoEquity(accountID string, now time.Time) EquitySnapshot {
	const baseEquity = 50000.0
	unrealized := secureFloat64()*1000 - 500
	marginUsed := baseEquity * 0.04

	return EquitySnapshot{
		Broker:          "synthetic",
		AccountID:       accountID,
		EquityBalance:   util.Round2(baseEquity + unrealized),
		CashBalance:     baseEquity,
		MarginUsed:      util.Round2(marginUsed),
		AvailableMargin: util.Round2(baseEquity * 0.96),
		UnrealizedPnL:   util.Round2(unrealized),
		MarginLevel:     util.Round2((baseEquity + unrealized) / marginUsed * 100),
		Timestamp:       now,
	}
}
