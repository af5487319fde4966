package fna

import "math"

var protectionTierBands = []band{{1.0, 25}, {0.75, 20}, {0.50, 15}, {0.25, 10}}

// CalculateIncomeProtection runs the personal protection gap analysis:
// life insurance shortfall against income replaced to retirement, disability
// benefit against a 60% replacement target, and a 0-100 protection score
// whose four components always sum to the total.
func CalculateIncomeProtection(p Profile) IncomeProtection {
	monthlyIncome := p.TotalIncome / 12

	// Death scenario: replace income through retirement, 20 years minimum.
	monthlyIncomeLost := monthlyIncome
	yearsOfIncomeNeeded := p.RetireAge - p.Age
	if yearsOfIncomeNeeded < 20 {
		yearsOfIncomeNeeded = 20
	}
	totalIncomeGap := monthlyIncomeLost * 12 * float64(yearsOfIncomeNeeded)
	lifeInsuranceShortfall := math.Max(0, totalIncomeGap-p.LifeInsuranceCoverage)

	// Disability scenario.
	incomeReplacementTarget := monthlyIncome * disabilityReplacementRate
	disabilityGap := math.Max(0, incomeReplacementTarget-p.DisabilityMonthlyBenefit)

	lifeScore := coverageTierScore(p.LifeInsuranceCoverage, totalIncomeGap)
	disabilityScore := coverageTierScore(p.DisabilityMonthlyBenefit, incomeReplacementTarget)
	emergencyScore := calculateEmergencyTierScore(p)
	estateScore := calculateEstateTierScore(p)

	protectionScore := lifeScore + disabilityScore + emergencyScore + estateScore

	return IncomeProtection{
		MonthlyIncomeLost:         math.Round(monthlyIncomeLost),
		YearsOfIncomeNeeded:       yearsOfIncomeNeeded,
		TotalIncomeGap:            math.Round(totalIncomeGap),
		LifeInsuranceCoverage:     p.LifeInsuranceCoverage,
		LifeInsuranceShortfall:    math.Round(lifeInsuranceShortfall),
		IncomeReplacementTarget:   math.Round(incomeReplacementTarget),
		CurrentDisabilityCoverage: p.DisabilityMonthlyBenefit,
		DisabilityGap:             math.Round(disabilityGap),
		ProtectionScore:           protectionScore,
		ProtectionGrade:           GradeFor(protectionScore),
		ScoreBreakdown: ScoreBreakdown{
			LifeInsurance:  lifeScore,
			Disability:     disabilityScore,
			EmergencyFund:  emergencyScore,
			EstatePlanning: estateScore,
		},
	}
}

// coverageTierScore maps a coverage ratio to 0-25. A zero target earns full
// credit; a strictly positive ratio below 25% earns 5.
func coverageTierScore(current, target float64) int {
	if target <= 0 {
		return 25
	}
	ratio := current / target
	score := scoreFromBands(ratio, protectionTierBands, 0)
	if score == 0 && ratio > 0 {
		score = 5
	}
	return score
}

func calculateEmergencyTierScore(p Profile) int {
	if p.TotalMonthlyExpenses <= 0 {
		return 25
	}
	months := (p.EmergencyFund + p.CheckingSavings) / p.TotalMonthlyExpenses
	switch {
	case months >= emergencyFundMonthsTarget:
		return 25
	case months >= 4:
		return 20
	case months >= 3:
		return 15
	case months >= 1:
		return 10
	case months > 0:
		return 5
	default:
		return 0
	}
}

// calculateEstateTierScore weights the four estate documents 7/6/6/6.
func calculateEstateTierScore(p Profile) int {
	score := 0
	if p.HasWill {
		score += 7
	}
	if p.HasTrust {
		score += 6
	}
	if p.HasPOA {
		score += 6
	}
	if p.HasHealthDirective {
		score += 6
	}
	return minInt(25, score)
}

// CalculateBusinessProtection runs the business protection summary: key
// person and buy-sell funding gaps against the shared valuation, plus cash
// runway classification.
func CalculateBusinessProtection(p Profile) BusinessProtection {
	valuation := CalculateValuation(p)
	ownership := ownershipFraction(p)

	keyPersonNeeded := math.Round(valuation.Mid * 0.5)
	keyPersonGapPercent := 0
	if keyPersonNeeded > 0 {
		keyPersonGapPercent = int(math.Round(math.Max(0, 1-p.KeyPersonInsurance/keyPersonNeeded) * 100))
	}

	buySellNeeded := math.Round(valuation.Mid * ownership)
	buySellFundedPercent := 100
	if buySellNeeded > 0 {
		buySellFundedPercent = int(math.Round(math.Min(100, p.BuySellFunding/buySellNeeded*100)))
	}

	burn := monthlyBurn(p)
	runwayKnown := burn > 0
	runwayMonths := 0.0
	if runwayKnown {
		runwayMonths = math.Round(p.BusinessCashOnHand/burn*10) / 10
	}

	var runwayStatus RunwayStatus
	switch {
	case !runwayKnown || runwayMonths >= 6:
		runwayStatus = RunwayHealthy
	case runwayMonths < 3:
		runwayStatus = RunwayCritical
	default:
		runwayStatus = RunwayWarning
	}

	return BusinessProtection{
		ValuationLow:         valuation.Low,
		ValuationMid:         valuation.Mid,
		ValuationHigh:        valuation.High,
		EBITDAMultiple:       valuation.EBITDAMultiple,
		KeyPersonNeeded:      keyPersonNeeded,
		KeyPersonCurrent:     p.KeyPersonInsurance,
		KeyPersonGapPercent:  keyPersonGapPercent,
		BuySellNeeded:        buySellNeeded,
		BuySellCurrent:       p.BuySellFunding,
		BuySellFundedPercent: buySellFundedPercent,
		CashRunwayMonths:     runwayMonths,
		RunwayKnown:          runwayKnown,
		CashRunwayStatus:     runwayStatus,
		MonthlyBurn:          math.Round(burn),
	}
}
