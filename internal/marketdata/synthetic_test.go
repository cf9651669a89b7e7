package marketdata

import (
	"math"
	"testing"
	"time"
)

func TestGetQuoteKnownSymbol(t *testing.T) {
	fixed := time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC)
	p := &SyntheticProvider{now: func() time.Time { return fixed }}

	q, err := p.GetQuote("SPX")
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}

	if q.Symbol != "SPX" {
		t.Errorf("Symbol = %q, want SPX", q.Symbol)
	}
	if q.Last != 4500 {
		t.Errorf("Last = %v, want reference level 4500", q.Last)
	}
	if q.Bid >= q.Ask {
		t.Errorf("Bid %v should be below Ask %v", q.Bid, q.Ask)
	}
	if q.High < q.Last || q.Low > q.Last {
		t.Errorf("Last %v outside [Low %v, High %v]", q.Last, q.Low, q.High)
	}
	// Change stays within the +-1% envelope.
	if math.Abs(q.Change) > q.Last*0.01+1e-9 {
		t.Errorf("Change %v exceeds 1%% of last %v", q.Change, q.Last)
	}
	if q.Volume < 5000 || q.Volume > 15000 {
		t.Errorf("Volume = %v, want within [5000, 15000]", q.Volume)
	}
	if !q.Timestamp.Equal(fixed) {
		t.Errorf("Timestamp = %v, want injected clock %v", q.Timestamp, fixed)
	}
}

func TestCurrentPriceUnknownSymbolRange(t *testing.T) {
	p := NewSyntheticProvider()
	for i := 0; i < 20; i++ {
		price, err := p.CurrentPrice("ZZZZ")
		if err != nil {
			t.Fatalf("CurrentPrice: %v", err)
		}
		if price < 100 || price >= 1000 {
			t.Errorf("unknown symbol price = %v, want within [100, 1000)", price)
		}
	}
}

func TestHistoryLengthAndEnvelope(t *testing.T) {
	p := NewSyntheticProvider()
	prices, err := p.History("AAPL", 50)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(prices) != 50 {
		t.Fatalf("len = %d, want 50", len(prices))
	}
	for _, price := range prices {
		if math.Abs(price-175)/175 > 0.005+1e-9 {
			t.Errorf("history price %v outside 0.5%% of 175", price)
		}
	}
}

func TestSentimentFromChange(t *testing.T) {
	tests := []struct {
		changePercent float64
		score         float64
		signal        string
	}{
		{changePercent: 1.2, score: 56, signal: SignalBullish},
		{changePercent: 0.5, score: 52.5, signal: SignalNeutral},
		{changePercent: 0.0, score: 50, signal: SignalNeutral},
		{changePercent: -0.5, score: 47.5, signal: SignalNeutral},
		{changePercent: -0.51, score: 47.5, signal: SignalBearish},
		{changePercent: -2.0, score: 40, signal: SignalBearish},
	}

	for _, tt := range tests {
		got := SentimentFromChange(tt.changePercent)
		if math.Abs(got.Score-tt.score) > 1e-9 {
			t.Errorf("SentimentFromChange(%v).Score = %v, want %v", tt.changePercent, got.Score, tt.score)
		}
		if got.Signal != tt.signal {
			t.Errorf("SentimentFromChange(%v).Signal = %q, want %q", tt.changePercent, got.Signal, tt.signal)
		}
	}
}
