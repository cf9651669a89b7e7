package marketdata

import (
	"crypto/rand"
	"math"
	"math/big"
	"time"

	"github.com/quantfeld/ironcondor/internal/util"
)

// Reference levels for well-known symbols. Unknown symbols get a random
// level in [100, 1000).
var basePrices = map[string]float64{
	"US30":   42500.0,
	"SPX":    4500.0,
	"AAPL":   175.0,
	"GOOGL":  140.0,
	"MSFT":   340.0,
	"TSLA":   250.0,
	"EURUSD": 1.0850,
	"GBPUSD": 1.2650,
}

// secureFloat64 generates a cryptographically secure random float64 between 0 and 1.
func secureFloat64() float64 {
	n, err := rand.Int(rand.Reader, big.NewInt(1<<53))
	if err != nil {
		// Fallback to a reasonable default if crypto/rand fails
		return 0.5
	}
	return float64(n.Int64()) / (1 << 53)
}

// SyntheticProvider generates plausible market data without any upstream
// connection. Prices wander up to +-1% of the symbol's reference level per
// quote. Useful for development, demos, and tests.
type SyntheticProvider struct {
	now func() time.Time
}

// Ensure SyntheticProvider implements Provider at compile time.
var _ Provider = (*SyntheticProvider)(nil)

// NewSyntheticProvider returns a provider backed by generated data.
func NewSyntheticProvider() *SyntheticProvider {
	return &SyntheticProvider{now: time.Now}
}

func basePrice(symbol string) float64 {
	if p, ok := basePrices[symbol]; ok {
		return p
	}
	return 100.0 + secureFloat64()*900.0
}

// CurrentPrice returns the latest generated trade price for the symbol.
func (p *SyntheticProvider) CurrentPrice(symbol string) (float64, error) {
	return basePrice(symbol), nil
}

// GetQuote returns a generated quote around the symbol's reference level.
func (p *SyntheticProvider) GetQuote(symbol string) (*Quote, error) {
	base := basePrice(symbol)
	change := (secureFloat64() - 0.5) * base * 0.02
	changePercent := change / base * 100

	return &Quote{
		Symbol:        symbol,
		Last:          util.Round4(base),
		Bid:           util.Round4(base * 0.9995),
		Ask:           util.Round4(base * 1.0005),
		High:          util.Round4(base + math.Abs(change)*1.5),
		Low:           util.Round4(base - math.Abs(change)*1.5),
		Open:          util.Round4(base - change),
		Volume:        int64(secureFloat64()*10000 + 5000),
		Change:        util.Round4(change),
		ChangePercent: util.Round2(changePercent),
		Timestamp:     p.now(),
	}, nil
}

// History returns n generated prices within +-0.5% of the symbol's level,
// most recent last.
func (p *SyntheticProvider) History(symbol string, n int) ([]float64, error) {
	base := basePrice(symbol)
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = base * (1 + (secureFloat64()-0.5)*0.01)
	}
	return prices, nil
}
