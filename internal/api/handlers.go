package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/quantfeld/ironcondor/internal/condor"
	"github.com/quantfeld/ironcondor/internal/indicators"
	"github.com/quantfeld/ironcondor/internal/marketdata"
	"github.com/quantfeld/ironcondor/internal/models"
	"github.com/quantfeld/ironcondor/internal/monitor"
)

const expirationLayout = "2006-01-02"

type errorResponse struct {
	Success bool   `json:"success"`
	Detail  string `json:"detail"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, detail string) {
	s.respondJSON(w, status, errorResponse{Success: false, Detail: detail})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	return true
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"service": "Iron Condor Analytics Service",
		"status":  "online",
		"version": serviceVersion,
		"features": []string{
			"Market Data Processing",
			"Iron Condor Strategy Analysis",
			"Options Greeks Calculation",
			"Position Management",
			"Real-time Updates",
		},
		"timestamp": s.now(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "ironcondor-analytics",
		"timestamp": s.now(),
		"uptime":    time.Since(s.started).Seconds(),
	})
}

type marketDataRequest struct {
	Symbols   []string `json:"symbols"`
	Timeframe string   `json:"timeframe"`
}

type symbolData struct {
	Price       *marketdata.Quote    `json:"price"`
	Indicators  indicators.Summary   `json:"indicators"`
	Sentiment   marketdata.Sentiment `json:"sentiment"`
	ProcessedAt time.Time            `json:"processed_at"`
}

func (s *Server) handleMarketData(w http.ResponseWriter, r *http.Request) {
	var req marketDataRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Symbols) == 0 {
		s.respondError(w, http.StatusBadRequest, "At least one symbol is required")
		return
	}

	data := make(map[string]symbolData, len(req.Symbols))
	for _, symbol := range req.Symbols {
		quote, err := s.provider.GetQuote(symbol)
		if err != nil {
			s.logger.WithError(err).Errorf("Quote lookup failed for %s", symbol)
			s.respondError(w, http.StatusInternalServerError, "Failed to process market data")
			return
		}
		history, err := s.provider.History(symbol, 50)
		if err != nil {
			s.logger.WithError(err).Errorf("History lookup failed for %s", symbol)
			s.respondError(w, http.StatusInternalServerError, "Failed to process market data")
			return
		}

		data[symbol] = symbolData{
			Price:       quote,
			Indicators:  indicators.Compute(history),
			Sentiment:   marketdata.SentimentFromChange(quote.ChangePercent),
			ProcessedAt: s.now(),
		}
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"data":          data,
		"symbols_count": len(req.Symbols),
		"timestamp":     s.now(),
	})
}

func accountID(r *http.Request) string {
	if id := r.URL.Query().Get("account_id"); id != "" {
		return id
	}
	return "DEFAULT"
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	positions := marketdata.DemoPositions(s.now())

	var totalPnL float64
	for _, pos := range positions {
		totalPnL += pos.UnrealizedPnL
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success":              true,
		"account_id":           accountID(r),
		"positions":            positions,
		"total_positions":      len(positions),
		"total_unrealized_pnl": totalPnL,
		"timestamp":            s.now(),
	})
}

func (s *Server) handleEquity(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"data":      marketdata.DemoEquity(accountID(r), s.now()),
		"timestamp": s.now(),
	})
}

type analyzeRequest struct {
	Symbol            string  `json:"symbol"`
	ExpirationDate    string  `json:"expiration_date"`
	LongCallStrike    float64 `json:"long_call_strike"`
	ShortCallStrike   float64 `json:"short_call_strike"`
	ShortPutStrike    float64 `json:"short_put_strike"`
	LongPutStrike     float64 `json:"long_put_strike"`
	Contracts         int     `json:"contracts"`
	CurrentPrice      float64 `json:"current_price"`
	ImpliedVolatility float64 `json:"implied_volatility"`
	RiskFreeRate      float64 `json:"risk_free_rate"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decode(w, r, &req) {
		return
	}

	expiration, err := time.Parse(expirationLayout, req.ExpirationDate)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid expiration_date: %v", err))
		return
	}

	params := &models.StrategyParameters{
		Symbol:     req.Symbol,
		Expiration: expiration,
		Strikes: models.StrikeSet{
			LongCall:  req.LongCallStrike,
			ShortCall: req.ShortCallStrike,
			ShortPut:  req.ShortPutStrike,
			LongPut:   req.LongPutStrike,
		},
		Contracts:         defaultInt(req.Contracts, 1),
		CurrentPrice:      req.CurrentPrice,
		ImpliedVolatility: defaultFloat(req.ImpliedVolatility, s.defaults.ImpliedVolatility),
		RiskFreeRate:      defaultFloat(req.RiskFreeRate, s.defaults.RiskFreeRate),
	}

	report, err := s.analyzer.Analyze(params)
	if err != nil {
		s.respondAnalysisError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"analysis":  report,
		"timestamp": s.now(),
	})
}

type greeksRequest struct {
	LongCallGreeks  map[string]float64 `json:"long_call_greeks"`
	ShortCallGreeks map[string]float64 `json:"short_call_greeks"`
	ShortPutGreeks  map[string]float64 `json:"short_put_greeks"`
	LongPutGreeks   map[string]float64 `json:"long_put_greeks"`
	Contracts       int                `json:"contracts"`
}

type greeksResponse struct {
	Success bool `json:"success"`
	*condor.GreeksReport
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleGreeks(w http.ResponseWriter, r *http.Request) {
	var req greeksRequest
	if !s.decode(w, r, &req) {
		return
	}

	report := condor.AggregateGreeks(condor.LegGreeks{
		LongCall:  models.GreeksFromMap(req.LongCallGreeks),
		ShortCall: models.GreeksFromMap(req.ShortCallGreeks),
		ShortPut:  models.GreeksFromMap(req.ShortPutGreeks),
		LongPut:   models.GreeksFromMap(req.LongPutGreeks),
	}, defaultInt(req.Contracts, 1))

	s.respondJSON(w, http.StatusOK, greeksResponse{
		Success:      true,
		GreeksReport: report,
		Timestamp:    s.now(),
	})
}

type optimizeRequest struct {
	Symbol            string  `json:"symbol"`
	ExpirationDate    string  `json:"expiration_date"`
	CurrentPrice      float64 `json:"current_price"`
	ImpliedVolatility float64 `json:"implied_volatility"`
	TargetProbability float64 `json:"target_probability"`
	WingWidth         float64 `json:"wing_width"`
	Contracts         int     `json:"contracts"`
	RiskFreeRate      float64 `json:"risk_free_rate"`
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if !s.decode(w, r, &req) {
		return
	}

	expiration, err := time.Parse(expirationLayout, req.ExpirationDate)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid expiration_date: %v", err))
		return
	}

	result, err := s.analyzer.Optimize(condor.OptimizeRequest{
		Symbol:            req.Symbol,
		Expiration:        expiration,
		CurrentPrice:      req.CurrentPrice,
		ImpliedVolatility: defaultFloat(req.ImpliedVolatility, s.defaults.ImpliedVolatility),
		TargetProbability: defaultFloat(req.TargetProbability, s.defaults.TargetProbability),
		WingWidth:         defaultFloat(req.WingWidth, s.defaults.WingWidth),
		Contracts:         defaultInt(req.Contracts, 1),
		RiskFreeRate:      defaultFloat(req.RiskFreeRate, s.defaults.RiskFreeRate),
	})
	if err != nil {
		s.respondAnalysisError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success":                 true,
		"optimal_strikes":         result.OptimalStrikes,
		"expected_performance":    result.ExpectedPerformance,
		"optimization_parameters": result.Parameters,
		"timestamp":               s.now(),
	})
}

type monitorRequest struct {
	StrategyID     int                `json:"strategy_id"`
	Symbol         string             `json:"symbol"`
	ExpirationDate string             `json:"expiration_date"`
	Strikes        map[string]float64 `json:"strikes"`
	Contracts      int                `json:"contracts"`
	EntryCredit    float64            `json:"entry_credit"`
	MarketData     map[string]float64 `json:"market_data"`
}

type monitorResponse struct {
	Success bool `json:"success"`
	*monitor.Report
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleMonitor(w http.ResponseWriter, r *http.Request) {
	var req monitorRequest
	if !s.decode(w, r, &req) {
		return
	}

	expiration, err := time.Parse(expirationLayout, req.ExpirationDate)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid expiration_date: %v", err))
		return
	}

	currentPrice, ok := req.MarketData["price"]
	if !ok {
		currentPrice, err = s.provider.CurrentPrice(req.Symbol)
		if err != nil {
			s.logger.WithError(err).Errorf("Price lookup failed for %s", req.Symbol)
			s.respondError(w, http.StatusInternalServerError, "Monitoring failed")
			return
		}
	}

	report, err := s.monitor.Evaluate(&monitor.PositionRequest{
		StrategyID: req.StrategyID,
		Symbol:     req.Symbol,
		Expiration: expiration,
		Strikes: models.StrikeSet{
			LongCall:  req.Strikes["long_call"],
			ShortCall: req.Strikes["short_call"],
			ShortPut:  req.Strikes["short_put"],
			LongPut:   req.Strikes["long_put"],
		},
		Contracts:    defaultInt(req.Contracts, 1),
		EntryCredit:  req.EntryCredit,
		CurrentPrice: currentPrice,
	})
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, monitorResponse{
		Success:   true,
		Report:    report,
		Timestamp: s.now(),
	})
}

type batchUpdateRequest struct {
	Positions  []monitor.BatchPosition `json:"positions"`
	MarketData map[string]float64      `json:"market_data"`
}

func (s *Server) handleBatchUpdate(w http.ResponseWriter, r *http.Request) {
	var req batchUpdateRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := s.monitor.BatchUpdatePositions(r.Context(), req.Positions, req.MarketData, s.provider)
	if err != nil {
		s.logger.WithError(err).Error("Batch update failed")
		s.respondError(w, http.StatusInternalServerError, "Batch update failed")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"updates":       result.Updates,
		"total_updated": result.TotalUpdated,
		"timestamp":     s.now(),
	})
}

// respondAnalysisError maps engine errors to HTTP statuses. Every failure
// the analyzer can produce is driven by request inputs, so they all map
// to 400.
func (s *Server) respondAnalysisError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrExpiredStrategy) {
		s.respondError(w, http.StatusBadRequest, "Expiration date must be in the future")
		return
	}
	s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid input: %v", err))
}

func defaultInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

func defaultFloat(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}
