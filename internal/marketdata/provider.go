// Package marketdata defines the market data collaborator consumed by the
// analytics service, plus a synthetic implementation and a circuit-breaker
// wrapper for unreliable upstream feeds.
package marketdata

import "time"

// Quote is a point-in-time snapshot of a symbol's market state.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Last          float64   `json:"last"`
	Bid           float64   `json:"bid"`
	Ask           float64   `json:"ask"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Open          float64   `json:"open"`
	Volume        int64     `json:"volume"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Timestamp     time.Time `json:"timestamp"`
}

// Provider supplies market prices to the analytics layer. The core never
// fetches data itself; it only consumes prices handed to it by callers
// holding a Provider.
type Provider interface {
	// CurrentPrice returns the latest trade price for the symbol.
	CurrentPrice(symbol string) (float64, error)

	// GetQuote returns a full quote snapshot for the symbol.
	GetQuote(symbol string) (*Quote, error)

	// History returns recent prices for the symbol, most recent last,
	// suitable for indicator computation.
	History(symbol string, n int) ([]float64, error)
}
