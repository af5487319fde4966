package fna

import "math"

// Business category weights. They sum to 1.
const (
	weightProfitability = 0.30
	weightLiquidity     = 0.25
	weightBizProtection = 0.25
	weightSuccession    = 0.20
)

var (
	marginBands        = []band{{0.20, 60}, {0.10, 45}, {0.05, 30}}
	revenuePerEmpBands = []band{{200000, 40}, {150000, 30}, {100000, 20}}
	liquidityBands     = []band{{6, 100}, {3, 70}, {1, 40}}
)

// CalculateBusiness runs the business Financial Needs Analysis.
func CalculateBusiness(p Profile) BusinessResult {
	revenue := p.AnnualRevenue
	netProfit := revenue - p.AnnualExpenses
	if p.NetProfit != nil {
		netProfit = *p.NetProfit
	}
	assets := p.BusinessAssets
	liabilities := p.BusinessLiabilities
	employees := 1
	if p.NumberOfEmployees != nil {
		employees = *p.NumberOfEmployees
	}

	businessNetWorth := assets - liabilities
	profitMargin := 0.0
	if revenue > 0 {
		profitMargin = netProfit / revenue
	}
	revenuePerEmployee := 0.0
	if employees > 0 {
		revenuePerEmployee = revenue / float64(employees)
	}
	// Zero when equity is non-positive; insolvency is not surfaced here.
	debtToEquityRatio := 0.0
	if businessNetWorth > 0 {
		debtToEquityRatio = liabilities / businessNetWorth
	}

	valuation := CalculateValuation(p)

	profitabilityScore := calculateProfitabilityScore(profitMargin, revenuePerEmployee)
	liquidityScore := calculateLiquidityScore(p)
	protectionScore := calculateBusinessProtectionScore(p, valuation.Mid)
	successionScore := calculateSuccessionScore(p)

	healthScore := int(math.Round(
		float64(profitabilityScore)*weightProfitability +
			float64(liquidityScore)*weightLiquidity +
			float64(protectionScore)*weightBizProtection +
			float64(successionScore)*weightSuccession))

	topChallenges := identifyBusinessChallenges(p, businessChallengeInputs{
		profitMargin:      profitMargin,
		liquidityScore:    liquidityScore,
		successionScore:   successionScore,
		debtToEquityRatio: debtToEquityRatio,
	})

	return BusinessResult{
		BusinessNetWorth:   businessNetWorth,
		ProfitMargin:       profitMargin,
		RevenuePerEmployee: revenuePerEmployee,
		DebtToEquityRatio:  debtToEquityRatio,
		ValuationLow:       valuation.Low,
		ValuationMid:       valuation.Mid,
		ValuationHigh:      valuation.High,
		EBITDAMultiple:     valuation.EBITDAMultiple,
		HealthScore:        healthScore,
		HealthGrade:        GradeFor(healthScore),
		Categories: BusinessCategories{
			Profitability: ScoreCategory{Score: profitabilityScore, Status: StatusFor(profitabilityScore)},
			Liquidity:     ScoreCategory{Score: liquidityScore, Status: StatusFor(liquidityScore)},
			Protection:    ScoreCategory{Score: protectionScore, Status: StatusFor(protectionScore)},
			Succession:    ScoreCategory{Score: successionScore, Status: StatusFor(successionScore)},
		},
		TopChallenges: topChallenges,
	}
}

// calculateProfitabilityScore scores profit margin (0-60) plus revenue per
// employee (0-40). Strictly positive values below the last breakpoint earn
// the minimum tier.
func calculateProfitabilityScore(margin, revenuePerEmp float64) int {
	score := scoreFromBands(margin, marginBands, 0)
	if score == 0 && margin > 0 {
		score = 15
	}

	emp := scoreFromBands(revenuePerEmp, revenuePerEmpBands, 0)
	if emp == 0 && revenuePerEmp > 0 {
		emp = 10
	}

	return score + emp
}

func calculateLiquidityScore(p Profile) int {
	monthly := monthlyBurn(p)
	months := 0.0
	if monthly > 0 {
		months = p.BusinessCashOnHand / monthly
	}
	return scoreFromBands(months, liquidityBands, 20)
}

// calculateBusinessProtectionScore scores key person insurance (0-50) and
// buy-sell funding (0-50) against valuation-derived targets. A zero target
// earns full credit for its half.
func calculateBusinessProtectionScore(p Profile, valuationMid float64) int {
	score := 0

	keyNeeded := valuationMid * 0.5
	if keyNeeded > 0 {
		score += minInt(50, int(math.Round(p.KeyPersonInsurance/keyNeeded*50)))
	} else {
		score += 50
	}

	bsNeeded := valuationMid * ownershipFraction(p)
	if bsNeeded > 0 {
		score += minInt(50, int(math.Round(p.BuySellFunding/bsNeeded*50)))
	} else {
		score += 50
	}

	return score
}

func calculateSuccessionScore(p Profile) int {
	score := 10
	if p.YearsInBusiness >= 10 {
		score = 30
	} else if p.YearsInBusiness >= 5 {
		score = 20
	}

	if p.BuySellFunding > 0 {
		score += 35
	}
	if p.KeyPersonInsurance > 0 {
		score += 35
	}

	return minInt(100, score)
}

type businessChallengeInputs struct {
	profitMargin      float64
	liquidityScore    int
	successionScore   int
	debtToEquityRatio float64
}

// identifyBusinessChallenges evaluates the fixed challenge rules in
// declaration order and keeps the first five that trigger.
func identifyBusinessChallenges(p Profile, in businessChallengeInputs) []string {
	var challenges []string

	if in.profitMargin < 0.05 {
		challenges = append(challenges, "Thin profit margins limit your ability to reinvest and build resilience.")
	}
	if in.liquidityScore < 40 {
		challenges = append(challenges, "Insufficient cash reserves. Less than 3 months of operating expenses on hand.")
	}
	if p.KeyPersonInsurance == 0 {
		challenges = append(challenges, "No key person insurance leaves the business vulnerable if a critical team member is lost.")
	}
	if p.BuySellFunding == 0 && ownershipFraction(p)*100 < 100 {
		challenges = append(challenges, "No buy-sell agreement funding could create ownership transfer problems.")
	}
	if in.debtToEquityRatio > 2 {
		challenges = append(challenges, "High debt-to-equity ratio increases financial risk and limits borrowing capacity.")
	}
	if in.successionScore < 40 {
		challenges = append(challenges, "Lack of succession planning puts the business at risk of disruption.")
	}

	if len(challenges) > 5 {
		challenges = challenges[:5]
	}
	return challenges
}

// monthlyBurn is the explicit operating expense figure when supplied,
// otherwise annual expenses spread over twelve months.
func monthlyBurn(p Profile) float64 {
	if p.MonthlyOperatingExpenses != nil {
		return *p.MonthlyOperatingExpenses
	}
	return p.AnnualExpenses / 12
}

// ownershipFraction defaults to full ownership when the percentage is absent.
func ownershipFraction(p Profile) float64 {
	if p.OwnershipPercentage != nil {
		return *p.OwnershipPercentage / 100
	}
	return 1
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
