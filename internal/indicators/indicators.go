// Package indicators computes the technical indicators reported alongside
// market data: RSI, simple and exponential moving averages, and MACD.
package indicators

import (
	"github.com/montanaflynn/stats"

	"github.com/quantfeld/ironcondor/internal/util"
)

const (
	rsiPeriod      = 14
	smaShortPeriod = 20
	smaLongPeriod  = 50
	emaFastSpan    = 12
	emaSlowSpan    = 26
	signalSpan     = 9

	// minSamples is the minimum history length for a full indicator set;
	// shorter series get neutral values and a plain average.
	minSamples = 20
)

// Summary holds the latest value of each indicator.
type Summary struct {
	RSI        float64 `json:"rsi"`
	MACD       float64 `json:"macd"`
	MACDSignal float64 `json:"macd_signal"`
	SMA20      float64 `json:"sma_20"`
	SMA50      float64 `json:"sma_50"`
	EMA12      float64 `json:"ema_12"`
	EMA26      float64 `json:"ema_26"`
}

// Compute derives the indicator summary from a price history, most recent
// price last. Series shorter than 20 samples yield a neutral RSI of 50,
// zero MACD, and the plain average as both moving averages.
func Compute(prices []float64) Summary {
	if len(prices) < minSamples {
		avg, err := stats.Mean(prices)
		if err != nil {
			avg = 0
		}
		return Summary{
			RSI:   50,
			SMA20: util.Round4(avg),
			SMA50: util.Round4(avg),
			EMA12: util.Round4(avg),
			EMA26: util.Round4(avg),
		}
	}

	emaFast := emaSeries(prices, emaFastSpan)
	emaSlow := emaSeries(prices, emaSlowSpan)

	macd := make([]float64, len(prices))
	for i := range macd {
		macd[i] = emaFast[i] - emaSlow[i]
	}
	signal := emaSeries(macd, signalSpan)

	smaLong := len(prices)
	if smaLong > smaLongPeriod {
		smaLong = smaLongPeriod
	}

	return Summary{
		RSI:        util.Round2(rsi(prices)),
		MACD:       util.Round4(macd[len(macd)-1]),
		MACDSignal: util.Round4(signal[len(signal)-1]),
		SMA20:      util.Round4(tailMean(prices, smaShortPeriod)),
		SMA50:      util.Round4(tailMean(prices, smaLong)),
		EMA12:      util.Round4(emaFast[len(emaFast)-1]),
		EMA26:      util.Round4(emaSlow[len(emaSlow)-1]),
	}
}

// tailMean averages the last n samples of the series.
func tailMean(prices []float64, n int) float64 {
	mean, err := stats.Mean(prices[len(prices)-n:])
	if err != nil {
		return 0
	}
	return mean
}

// rsi computes the 14-period relative strength index over the rolling
// average of gains and losses in the most recent window.
func rsi(prices []float64) float64 {
	var gains, losses []float64
	for i := 1; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			gains = append(gains, delta)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -delta)
		}
	}

	if len(gains) > rsiPeriod {
		gains = gains[len(gains)-rsiPeriod:]
		losses = losses[len(losses)-rsiPeriod:]
	}

	avgGain, _ := stats.Mean(gains)
	avgLoss, _ := stats.Mean(losses)
	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// emaSeries returns the exponential moving average of the series with
// alpha = 2/(span+1), seeded from the first sample.
func emaSeries(series []float64, span int) []float64 {
	alpha := 2.0 / (float64(span) + 1)
	out := make([]float64, len(series))
	out[0] = series[0]
	for i := 1; i < len(series); i++ {
		out[i] = alpha*series[i] + (1-alpha)*out[i-1]
	}
	return out
}
