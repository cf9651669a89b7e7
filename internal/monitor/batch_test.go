package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfeld/ironcondor/internal/marketdata"
)

// stubProvider returns a fixed price per symbol, or an error for symbols
// it does not know.
type stubProvider struct {
	prices map[string]float64
}

var _ marketdata.Provider = (*stubProvider)(nil)

func (s *stubProvider) CurrentPrice(symbol string) (float64, error) {
	p, ok := s.prices[symbol]
	if !ok {
		return 0, errors.New("unknown symbol " + symbol)
	}
	return p, nil
}

func (s *stubProvider) GetQuote(symbol string) (*marketdata.Quote, error) {
	p, err := s.CurrentPrice(symbol)
	if err != nil {
		return nil, err
	}
	return &marketdata.Quote{Symbol: symbol, Last: p}, nil
}

func (s *stubProvider) History(symbol string, n int) ([]float64, error) {
	p, err := s.CurrentPrice(symbol)
	if err != nil {
		return nil, err
	}
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = p
	}
	return prices, nil
}

func TestBatchUpdatePreferSuppliedPrices(t *testing.T) {
	m := NewMonitorWithClock(fixedNow)
	provider := &stubProvider{prices: map[string]float64{"SPX": 4510}}

	positions := []BatchPosition{
		{ID: "POS_1", Symbol: "SPX", EntryPrice: 4400},
		{ID: "POS_2", Symbol: "AAPL", EntryPrice: 170},
	}
	// SPX comes from the supplied map even though the provider also knows it.
	result, err := m.BatchUpdatePositions(context.Background(), positions,
		map[string]float64{"SPX": 4525.5, "AAPL": 176.25}, provider)
	require.NoError(t, err)

	require.Equal(t, 2, result.TotalUpdated)
	assert.Equal(t, "POS_1", result.Updates[0].PositionID)
	assert.InDelta(t, 4525.5, result.Updates[0].CurrentPrice, 1e-9)
	assert.InDelta(t, 176.25, result.Updates[1].CurrentPrice, 1e-9)
	assert.Equal(t, fixedNow(), result.Updates[0].UpdatedAt)
}

func TestBatchUpdateProviderFallback(t *testing.T) {
	m := NewMonitorWithClock(fixedNow)
	provider := &stubProvider{prices: map[string]float64{"MSFT": 342.5}}

	positions := []BatchPosition{{ID: "POS_9", Symbol: "MSFT", EntryPrice: 300}}
	result, err := m.BatchUpdatePositions(context.Background(), positions, nil, provider)
	require.NoError(t, err)
	assert.InDelta(t, 342.5, result.Updates[0].CurrentPrice, 1e-9)
}

func TestBatchUpdateEntryPriceFallback(t *testing.T) {
	m := NewMonitorWithClock(fixedNow)

	positions := []BatchPosition{{Symbol: "TSLA", EntryPrice: 251.75}}
	result, err := m.BatchUpdatePositions(context.Background(), positions, nil, nil)
	require.NoError(t, err)

	assert.InDelta(t, 251.75, result.Updates[0].CurrentPrice, 1e-9)
	// Positions without an identifier get one assigned.
	assert.NotEmpty(t, result.Updates[0].PositionID)
}

func TestBatchUpdatePropagatesProviderError(t *testing.T) {
	m := NewMonitorWithClock(fixedNow)
	provider := &stubProvider{prices: map[string]float64{}}

	positions := []BatchPosition{{ID: "POS_3", Symbol: "NOPE", EntryPrice: 100}}
	_, err := m.BatchUpdatePositions(context.Background(), positions, nil, provider)
	assert.Error(t, err)
}

func TestBatchUpdateKeepsInputOrder(t *testing.T) {
	m := NewMonitorWithClock(fixedNow)

	symbols := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	positions := make([]BatchPosition, len(symbols))
	prices := make(map[string]float64, len(symbols))
	for i, sym := range symbols {
		positions[i] = BatchPosition{ID: sym, Symbol: sym, EntryPrice: 1}
		prices[sym] = float64(i + 1)
	}

	result, err := m.BatchUpdatePositions(context.Background(), positions, prices, nil)
	require.NoError(t, err)
	for i, sym := range symbols {
		assert.Equal(t, sym, result.Updates[i].Symbol)
		assert.InDelta(t, float64(i+1), result.Updates[i].CurrentPrice, 1e-9)
	}
}
