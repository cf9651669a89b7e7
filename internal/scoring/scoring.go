// Package scoring converts risk/reward, probability, and time metrics into
// a 0-100 quality score and an ordinal rating.
package scoring

import (
	"github.com/quantfeld/ironcondor/internal/models"
	"github.com/quantfeld/ironcondor/internal/util"
)

// Preferred holding window for a new condor, in days to expiration.
const (
	preferredMinDTE = 30
	preferredMaxDTE = 45
)

// Score blends return-on-risk (percent), probability of profit (percent),
// and days to expiration into a 0-100 quality score.
//
// ROR saturates at 50% (min(100, ROR*2), weight 0.3). POP is used as-is
// (weight 0.5). The time component is 100 inside [30,45] days, ramps
// linearly to 0 at day 0 below the window, and loses 2 points per day past
// 45 with a floor of 0 (weight 0.2). The result is rounded to 2 decimals.
func Score(returnOnRisk, probabilityOfProfit float64, daysToExpiration int) float64 {
	rorScore := returnOnRisk * 2
	if rorScore > 100 {
		rorScore = 100
	}
	popScore := probabilityOfProfit

	var timeScore float64
	switch {
	case daysToExpiration >= preferredMinDTE && daysToExpiration <= preferredMaxDTE:
		timeScore = 100
	case daysToExpiration < preferredMinDTE:
		timeScore = float64(daysToExpiration) / preferredMinDTE * 100
		if timeScore < 0 {
			timeScore = 0
		}
	default:
		timeScore = 100 - float64(daysToExpiration-preferredMaxDTE)*2
		if timeScore < 0 {
			timeScore = 0
		}
	}

	return util.Round2(rorScore*0.3 + popScore*0.5 + timeScore*0.2)
}

// Rating maps return-on-risk and probability of profit to an ordinal label.
//
// Note the blend here (ROR*2*0.4 + POP*0.6) differs from the one used by
// Score; the two are calibrated independently and must not be unified.
func Rating(returnOnRisk, probabilityOfProfit float64) string {
	score := returnOnRisk*2*0.4 + probabilityOfProfit*0.6

	switch {
	case score >= 80:
		return "Excellent"
	case score >= 65:
		return "Good"
	case score >= 50:
		return "Fair"
	default:
		return "Poor"
	}
}

// Factors labels each scoring input qualitatively for the report.
func Factors(returnOnRisk, probabilityOfProfit float64, daysToExpiration int) models.QualityFactors {
	f := models.QualityFactors{
		ReturnOnRisk:        "Poor",
		ProbabilityOfProfit: "Poor",
		TimeToExpiration:    "Risky",
	}

	if returnOnRisk > 20 {
		f.ReturnOnRisk = "Good"
	} else if returnOnRisk > 10 {
		f.ReturnOnRisk = "Fair"
	}

	if probabilityOfProfit > 65 {
		f.ProbabilityOfProfit = "Good"
	} else if probabilityOfProfit > 50 {
		f.ProbabilityOfProfit = "Fair"
	}

	if daysToExpiration >= preferredMinDTE && daysToExpiration <= preferredMaxDTE {
		f.TimeToExpiration = "Optimal"
	} else if daysToExpiration > 20 {
		f.TimeToExpiration = "Acceptable"
	}

	return f
}
