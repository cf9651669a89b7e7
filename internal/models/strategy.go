// Package models defines the domain types shared by the iron condor
// analytics engine: strategy parameters, option legs, Greeks vectors,
// and the aggregated analysis report.
package models

import (
	"errors"
	"fmt"
	"time"
)

// SharesPerContract is the standard equity option multiplier.
const SharesPerContract = 100.0

// ErrExpiredStrategy is returned when a strategy's expiration date is not
// strictly in the future. No partial analysis is produced in that case.
var ErrExpiredStrategy = errors.New("expiration date must be in the future")

// OptionRight identifies a contract as a call or a put.
type OptionRight string

const (
	// RightCall represents a call option contract.
	RightCall OptionRight = "call"
	// RightPut represents a put option contract.
	RightPut OptionRight = "put"
)

// Valid returns true if the OptionRight is one of the defined constants.
func (r OptionRight) Valid() bool {
	return r == RightCall || r == RightPut
}

// PositionSide identifies whether a leg is held long or written short.
type PositionSide string

const (
	// SideLong represents a bought (long) leg.
	SideLong PositionSide = "long"
	// SideShort represents a written (short) leg.
	SideShort PositionSide = "short"
)

// OptionLeg is a single leg of a multi-leg position. Legs are immutable
// once constructed and are identified only by their role in the combination.
type OptionLeg struct {
	Strike float64      `json:"strike"`
	Right  OptionRight  `json:"right"`
	Side   PositionSide `json:"side"`
}

// StrikeSet holds the four strikes of an iron condor, ordered
// long put < short put <= short call < long call.
type StrikeSet struct {
	LongCall  float64 `json:"long_call"`
	ShortCall float64 `json:"short_call"`
	ShortPut  float64 `json:"short_put"`
	LongPut   float64 `json:"long_put"`
}

// CallSpreadWidth returns the distance between the short and long call strikes.
func (s StrikeSet) CallSpreadWidth() float64 {
	return s.LongCall - s.ShortCall
}

// PutSpreadWidth returns the distance between the short and long put strikes.
func (s StrikeSet) PutSpreadWidth() float64 {
	return s.ShortPut - s.LongPut
}

// MaxSpreadWidth returns the wider of the two spread widths. Max loss on an
// iron condor is driven by the wider wing.
func (s StrikeSet) MaxSpreadWidth() float64 {
	if cw, pw := s.CallSpreadWidth(), s.PutSpreadWidth(); cw > pw {
		return cw
	}
	return s.PutSpreadWidth()
}

// Legs expands the strike set into the four condor legs.
func (s StrikeSet) Legs() []OptionLeg {
	return []OptionLeg{
		{Strike: s.LongCall, Right: RightCall, Side: SideLong},
		{Strike: s.ShortCall, Right: RightCall, Side: SideShort},
		{Strike: s.ShortPut, Right: RightPut, Side: SideShort},
		{Strike: s.LongPut, Right: RightPut, Side: SideLong},
	}
}

// Validate checks the condor strike ordering invariant: wings outside shorts.
func (s StrikeSet) Validate() error {
	if s.LongPut <= 0 || s.ShortPut <= 0 || s.ShortCall <= 0 || s.LongCall <= 0 {
		return fmt.Errorf("all strikes must be positive")
	}
	if s.LongCall <= s.ShortCall {
		return fmt.Errorf("long_call (%.2f) must be above short_call (%.2f)", s.LongCall, s.ShortCall)
	}
	if s.ShortCall < s.ShortPut {
		return fmt.Errorf("short_call (%.2f) must be at or above short_put (%.2f)", s.ShortCall, s.ShortPut)
	}
	if s.ShortPut <= s.LongPut {
		return fmt.Errorf("short_put (%.2f) must be above long_put (%.2f)", s.ShortPut, s.LongPut)
	}
	return nil
}

// StrategyParameters describes a single iron condor to analyze.
// CurrentPrice is optional; when zero the midpoint of the short strikes
// is used as the spot price.
type StrategyParameters struct {
	Symbol            string    `json:"symbol"`
	Expiration        time.Time `json:"expiration"`
	Strikes           StrikeSet `json:"strikes"`
	Contracts         int       `json:"contracts"`
	CurrentPrice      float64   `json:"current_price,omitempty"`
	ImpliedVolatility float64   `json:"implied_volatility"`
	RiskFreeRate      float64   `json:"risk_free_rate"`
}

// Validate checks ranges on all scalar inputs. Expiration is validated
// separately by the analyzer because it depends on the evaluation clock.
func (p *StrategyParameters) Validate() error {
	if err := p.Strikes.Validate(); err != nil {
		return err
	}
	if p.Contracts <= 0 {
		return fmt.Errorf("contracts must be > 0")
	}
	if p.CurrentPrice < 0 {
		return fmt.Errorf("current_price must be >= 0")
	}
	if p.ImpliedVolatility <= 0 || p.ImpliedVolatility > 2.0 {
		return fmt.Errorf("implied_volatility must be in (0, 2.0]")
	}
	if p.RiskFreeRate < 0 || p.RiskFreeRate > 0.20 {
		return fmt.Errorf("risk_free_rate must be in [0, 0.20]")
	}
	return nil
}

// Spot returns the underlying price to analyze against: the supplied
// current price, or the midpoint of the short strikes when none was given.
func (p *StrategyParameters) Spot() float64 {
	if p.CurrentPrice > 0 {
		return p.CurrentPrice
	}
	return (p.Strikes.ShortCall + p.Strikes.ShortPut) / 2
}

// DaysToExpiration returns whole calendar days between now and expiration.
// Past expirations yield negative values; callers decide how to treat them.
func (p *StrategyParameters) DaysToExpiration(now time.Time) int {
	return int(p.Expiration.Sub(now).Hours() / 24)
}
