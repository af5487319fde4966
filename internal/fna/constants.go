// Package fna implements the Financial Needs Analysis calculators: personal
// and business health scoring, business valuation, and protection gap
// analysis. Every function is pure and total: divisions guard their
// denominators and substitute a policy fallback instead of failing, and
// out-of-range inputs propagate arithmetically rather than being rejected.
package fna

// Planning targets and assumptions.
const (
	emergencyFundMonthsTarget = 6
	savingsRateTarget         = 0.20
	debtToIncomeWarning       = 0.36
	debtToIncomeCritical      = 0.50

	retirementIncomeReplacement = 0.80
	safeWithdrawalRate          = 0.04 // 4% rule
	assumedReturnRate           = 0.07
	inflationRate               = 0.03

	// Life insurance rule of thumb: 10-15x income.
	lifeInsuranceMultipleTarget = 12

	disabilityReplacementRate = 0.60

	// EBITDA is not collected separately; approximate it from net profit.
	ebitdaApproximationFactor = 1.15
)

// IndustryMultipliers holds the (revenue multiple, EBITDA multiple) pair used
// for valuation in a given industry.
type IndustryMultipliers struct {
	Revenue float64
	EBITDA  float64
}

// industryMultipliers is read-only after init. Unknown industries fall back
// to the "other" entry; the lookup is total.
var industryMultipliers = map[string]IndustryMultipliers{
	"financial_services":    {Revenue: 2.5, EBITDA: 8.0},
	"insurance":             {Revenue: 2.0, EBITDA: 7.0},
	"real_estate":           {Revenue: 1.8, EBITDA: 6.5},
	"healthcare":            {Revenue: 2.2, EBITDA: 9.0},
	"technology":            {Revenue: 3.5, EBITDA: 12.0},
	"retail":                {Revenue: 0.8, EBITDA: 4.0},
	"restaurant":            {Revenue: 0.5, EBITDA: 3.5},
	"construction":          {Revenue: 0.7, EBITDA: 4.5},
	"manufacturing":         {Revenue: 1.0, EBITDA: 5.0},
	"professional_services": {Revenue: 1.5, EBITDA: 6.0},
	"other":                 {Revenue: 1.2, EBITDA: 5.0},
}

// MultipliersFor returns the valuation multipliers for an industry key,
// falling back to "other" for anything unrecognized.
func MultipliersFor(industry string) IndustryMultipliers {
	if m, ok := industryMultipliers[industry]; ok {
		return m
	}
	return industryMultipliers["other"]
}

// band is one entry of an ordered breakpoint table: the first band whose
// Min the value meets (value >= Min) wins.
type band struct {
	Min   float64
	Score int
}

// scoreFromBands evaluates an ordered breakpoint table top-down and returns
// the floor score when no band matches.
func scoreFromBands(value float64, bands []band, floor int) int {
	for _, b := range bands {
		if value >= b.Min {
			return b.Score
		}
	}
	return floor
}

// GradeFor maps a 0-100 score to a letter grade.
func GradeFor(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// StatusFor maps a 0-100 score to a traffic-light status.
func StatusFor(score int) Status {
	switch {
	case score >= 70:
		return StatusGood
	case score >= 40:
		return StatusWarning
	default:
		return StatusCritical
	}
}
