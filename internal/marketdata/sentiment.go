package marketdata

import "github.com/quantfeld/ironcondor/internal/util"

// Sentiment signals derived from intraday change.
const (
	SignalBullish = "bullish"
	SignalBearish = "bearish"
	SignalNeutral = "neutral"

	sentimentBullishPct = 0.5
	sentimentBearishPct = -0.5
)

// Sentiment is a coarse read of the day's price action. Score centers on 50
// and moves 5 points per percent of intraday change.
type Sentiment struct {
	Score  float64 `json:"score"`
	Signal string  `json:"signal"`
}

// SentimentFromChange derives the sentiment reading from a quote's
// intraday change percent.
func SentimentFromChange(changePercent float64) Sentiment {
	signal := SignalNeutral
	switch {
	case changePercent > sentimentBullishPct:
		signal = SignalBullish
	case changePercent < sentimentBearishPct:
		signal = SignalBearish
	}
	return Sentiment{
		Score:  util.RoundToTick(50+changePercent*5, 0.1),
		Signal: signal,
	}
}
