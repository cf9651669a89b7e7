package payoff

import (
	"math"
	"testing"

	"github.com/quantfeld/ironcondor/internal/models"
)

var testStrikes = models.StrikeSet{
	LongCall:  4600,
	ShortCall: 4550,
	ShortPut:  4450,
	LongPut:   4400,
}

func TestEvaluateRegions(t *testing.T) {
	const netCredit = 500.0

	tests := []struct {
		name       string
		underlying float64
		expected   float64
	}{
		{
			name:       "between short strikes keeps full credit",
			underlying: 4500,
			expected:   netCredit,
		},
		{
			name:       "at short call keeps full credit",
			underlying: 4550,
			expected:   netCredit,
		},
		{
			name:       "at short put keeps full credit",
			underlying: 4450,
			expected:   netCredit,
		},
		{
			name:       "above long call caps loss at call width",
			underlying: 4700,
			expected:   -50*100 + netCredit,
		},
		{
			name:       "below long put caps loss at put width",
			underlying: 4300,
			expected:   -50*100 + netCredit,
		},
		{
			name:       "midway through call spread",
			underlying: 4575,
			expected:   -25*100 + netCredit,
		},
		{
			name:       "midway through put spread",
			underlying: 4425,
			expected:   -25*100 + netCredit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.underlying, testStrikes, netCredit)
			if math.Abs(got-tt.expected) > 1e-10 {
				t.Errorf("Evaluate(%v) = %v, expected %v", tt.underlying, got, tt.expected)
			}
		})
	}
}

func TestEvaluateContinuousAtStrikes(t *testing.T) {
	// The payoff is piecewise linear; verify no jump at any breakpoint.
	const netCredit = 350.0
	const eps = 1e-6

	breakpoints := []float64{
		testStrikes.LongPut,
		testStrikes.ShortPut,
		testStrikes.ShortCall,
		testStrikes.LongCall,
	}

	for _, bp := range breakpoints {
		left := Evaluate(bp-eps, testStrikes, netCredit)
		at := Evaluate(bp, testStrikes, netCredit)
		right := Evaluate(bp+eps, testStrikes, netCredit)
		if math.Abs(at-left) > 1e-3 || math.Abs(right-at) > 1e-3 {
			t.Errorf("discontinuity at strike %v: left=%v at=%v right=%v", bp, left, at, right)
		}
	}
}

func TestCurve(t *testing.T) {
	points := Curve(testStrikes, 500, 4500*0.85, 4500*1.15, 20)

	if len(points) != 20 {
		t.Fatalf("len(points) = %d, expected 20", len(points))
	}
	if math.Abs(points[0].Price-4500*0.85) > 1e-10 {
		t.Errorf("first sample price = %v, expected %v", points[0].Price, 4500*0.85)
	}
	if math.Abs(points[19].Price-4500*1.15) > 1e-9 {
		t.Errorf("last sample price = %v, expected %v", points[19].Price, 4500*1.15)
	}
	for i := 1; i < len(points); i++ {
		if points[i].Price <= points[i-1].Price {
			t.Errorf("samples not strictly increasing at index %d", i)
		}
	}
	// Deep wings should both sit at max loss.
	if points[0].PnL != points[19].PnL {
		t.Errorf("wing losses differ: %v vs %v", points[0].PnL, points[19].PnL)
	}
}
