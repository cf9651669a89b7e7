package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfeld/ironcondor/internal/config"
	"github.com/quantfeld/ironcondor/internal/marketdata"
)

// fixedProvider serves deterministic quotes for handler tests.
type fixedProvider struct{}

var _ marketdata.Provider = (*fixedProvider)(nil)

func (fixedProvider) CurrentPrice(symbol string) (float64, error) {
	return 4500, nil
}

func (fixedProvider) GetQuote(symbol string) (*marketdata.Quote, error) {
	return &marketdata.Quote{
		Symbol:        symbol,
		Last:          4500,
		Bid:           4497.75,
		Ask:           4502.25,
		ChangePercent: 0.8,
		Timestamp:     time.Now(),
	}, nil
}

func (fixedProvider) History(symbol string, n int) ([]float64, error) {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = 4500 + float64(i%5)
	}
	return prices, nil
}

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewServer(config.Default(), fixedProvider{}, logger)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), "body: %s", rec.Body.String())
	return rec, decoded
}

func futureExpiration(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func TestHealthEndpoint(t *testing.T) {
	rec, body := doJSON(t, testServer(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "ironcondor-analytics", body["service"])
}

func TestRootEndpoint(t *testing.T) {
	rec, body := doJSON(t, testServer(t), http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "online", body["status"])
	assert.Contains(t, body["features"], "Iron Condor Strategy Analysis")
}

func TestMarketDataEndpoint(t *testing.T) {
	rec, body := doJSON(t, testServer(t), http.MethodPost, "/market-data", map[string]any{
		"symbols": []string{"SPX", "AAPL"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 2, body["symbols_count"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	spx, ok := data["SPX"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, spx, "price")
	assert.Contains(t, spx, "indicators")

	sentiment, ok := spx["sentiment"].(map[string]any)
	require.True(t, ok)
	// Fixed quote moves +0.8%, which reads bullish.
	assert.Equal(t, "bullish", sentiment["signal"])
	assert.InDelta(t, 54.0, sentiment["score"].(float64), 1e-9)
}

func TestMarketDataRequiresSymbols(t *testing.T) {
	rec, body := doJSON(t, testServer(t), http.MethodPost, "/market-data", map[string]any{
		"symbols": []string{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestPositionsEndpoint(t *testing.T) {
	rec, body := doJSON(t, testServer(t), http.MethodGet, "/positions?account_id=ACC-9", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ACC-9", body["account_id"])
	assert.EqualValues(t, 1, body["total_positions"])
}

func TestEquityEndpoint(t *testing.T) {
	rec, body := doJSON(t, testServer(t), http.MethodGet, "/equity", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "DEFAULT", data["account_id"])
	assert.InDelta(t, 50000.0, data["cash_balance"].(float64), 1e-9)
}

func analyzeBody(expiration string) map[string]any {
	return map[string]any{
		"symbol":            "SPX",
		"expiration_date":   expiration,
		"long_call_strike":  4600,
		"short_call_strike": 4550,
		"short_put_strike":  4450,
		"long_put_strike":   4400,
		"current_price":     4500,
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	rec, body := doJSON(t, testServer(t), http.MethodPost, "/iron-condor/analyze", analyzeBody(futureExpiration(30)))
	require.Equal(t, http.StatusOK, rec.Code, "body: %v", body)
	assert.Equal(t, true, body["success"])

	analysis, ok := body["analysis"].(map[string]any)
	require.True(t, ok)
	riskReward, ok := analysis["risk_reward"].(map[string]any)
	require.True(t, ok)
	assert.Greater(t, riskReward["net_credit"].(float64), 0.0)

	probability, ok := analysis["probability"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "black_scholes_normal_distribution", probability["method"])

	payoff, ok := analysis["payoff_profile"].([]any)
	require.True(t, ok)
	assert.Len(t, payoff, 20)
}

func TestAnalyzeRejectsPastExpiration(t *testing.T) {
	rec, body := doJSON(t, testServer(t), http.MethodPost, "/iron-condor/analyze", analyzeBody("2020-01-17"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Expiration date must be in the future", body["detail"])
}

func TestAnalyzeRejectsBadStrikes(t *testing.T) {
	req := analyzeBody(futureExpiration(30))
	req["long_call_strike"] = 4500 // below the short call
	rec, body := doJSON(t, testServer(t), http.MethodPost, "/iron-condor/analyze", req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestAnalyzeRejectsMalformedDate(t *testing.T) {
	rec, _ := doJSON(t, testServer(t), http.MethodPost, "/iron-condor/analyze", analyzeBody("not-a-date"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGreeksEndpoint(t *testing.T) {
	rec, body := doJSON(t, testServer(t), http.MethodPost, "/iron-condor/greeks", map[string]any{
		"long_call_greeks":  map[string]float64{"delta": 0.25, "theta": -0.45},
		"short_call_greeks": map[string]float64{"delta": 0.35, "theta": -0.55},
		"short_put_greeks":  map[string]float64{"delta": -0.33, "theta": -0.52},
		"long_put_greeks":   map[string]float64{"delta": -0.22, "theta": -0.42},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	portfolio, ok := body["portfolio_greeks"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, -1.0, portfolio["delta"].(float64), 1e-9)
	assert.InDelta(t, -20.0, portfolio["theta"].(float64), 1e-9)

	assert.Contains(t, body, "legs_breakdown")
	assert.Contains(t, body, "risk_profile")
	assert.Contains(t, body, "interpretation")
}

func TestOptimizeEndpointAppliesDefaults(t *testing.T) {
	// target_probability, wing_width, implied_volatility and risk_free_rate
	// all come from configuration defaults.
	rec, body := doJSON(t, testServer(t), http.MethodPost, "/iron-condor/optimize", map[string]any{
		"symbol":          "SPX",
		"expiration_date": futureExpiration(30),
		"current_price":   4500,
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %v", body)

	params, ok := body["optimization_parameters"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 0.70, params["target_probability"].(float64), 1e-9)
	assert.InDelta(t, 5.0, params["wing_width"].(float64), 1e-9)

	strikes, ok := body["optimal_strikes"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"long_call", "short_call", "short_put", "long_put"} {
		strike := strikes[key].(float64)
		assert.Zero(t, int(strike)%5, "strike %s = %v should be a multiple of 5", key, strike)
	}
}

func TestMonitorEndpointWithSuppliedPrice(t *testing.T) {
	rec, body := doJSON(t, testServer(t), http.MethodPost, "/iron-condor/monitor", map[string]any{
		"strategy_id":     7,
		"symbol":          "SPX",
		"expiration_date": futureExpiration(30),
		"strikes": map[string]float64{
			"long_call": 4600, "short_call": 4550, "short_put": 4450, "long_put": 4400,
		},
		"contracts":    1,
		"entry_credit": 1500,
		"market_data":  map[string]float64{"price": 4500},
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %v", body)

	status, ok := body["position_status"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 1500.0, status["current_pnl"].(float64), 1e-9)
	assert.InDelta(t, 100.0, status["pnl_percent"].(float64), 1e-9)

	alerts, ok := body["alerts"].([]any)
	require.True(t, ok)
	require.Len(t, alerts, 1)
	alert := alerts[0].(map[string]any)
	assert.Equal(t, "PROFIT_TARGET", alert["type"])
}

func TestMonitorEndpointFallsBackToProvider(t *testing.T) {
	// No market_data supplied; the fixed provider serves 4500.
	rec, body := doJSON(t, testServer(t), http.MethodPost, "/iron-condor/monitor", map[string]any{
		"strategy_id":     8,
		"symbol":          "SPX",
		"expiration_date": futureExpiration(30),
		"strikes": map[string]float64{
			"long_call": 4600, "short_call": 4550, "short_put": 4450, "long_put": 4400,
		},
		"contracts":    1,
		"entry_credit": 1500,
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %v", body)

	status := body["position_status"].(map[string]any)
	assert.InDelta(t, 4500.0, status["current_price"].(float64), 1e-9)
}

func TestBatchUpdateEndpoint(t *testing.T) {
	rec, body := doJSON(t, testServer(t), http.MethodPost, "/iron-condor/batch-update", map[string]any{
		"positions": []map[string]any{
			{"id": "POS_1", "symbol": "SPX", "entry_price": 4400},
			{"id": "POS_2", "symbol": "AAPL", "entry_price": 170},
		},
		"market_data": map[string]float64{"AAPL": 176.25},
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %v", body)
	assert.EqualValues(t, 2, body["total_updated"])

	updates, ok := body["updates"].([]any)
	require.True(t, ok)

	first := updates[0].(map[string]any)
	// SPX is missing from market_data, so the provider fills it in.
	assert.Equal(t, "POS_1", first["position_id"])
	assert.InDelta(t, 4500.0, first["current_price"].(float64), 1e-9)

	second := updates[1].(map[string]any)
	assert.InDelta(t, 176.25, second["current_price"].(float64), 1e-9)
}

func TestInvalidJSONBody(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/iron-condor/analyze", bytes.NewBufferString("{nope"))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
