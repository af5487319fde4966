package fna

import "math"

// Personal category weights. They sum to 1.
const (
	weightCashFlow   = 0.20
	weightProtection = 0.25
	weightSavings    = 0.20
	weightDebt       = 0.15
	weightRetirement = 0.20
)

var (
	cashFlowBands = []band{{0.20, 100}, {0.10, 80}, {0.05, 60}, {0, 40}}

	// Savings category sub-tables, each worth up to 50 points. A strictly
	// positive value below the last breakpoint still earns 10 points.
	savingsRateBands = []band{{savingsRateTarget, 50}, {0.10, 35}, {0.05, 20}}
	emergencyBands   = []band{{emergencyFundMonthsTarget, 50}, {3, 35}, {1, 20}}

	retirementBands = []band{{1.0, 100}, {0.75, 80}, {0.50, 60}, {0.25, 40}}
)

// CalculatePersonal runs the personal Financial Needs Analysis.
func CalculatePersonal(p Profile) Result {
	netWorth := p.TotalAssets - p.TotalLiabilities

	monthlyIncome := p.TotalIncome / 12
	monthlyNetCashFlow := monthlyIncome - p.TotalMonthlyExpenses
	annualNetCashFlow := monthlyNetCashFlow * 12

	debtToIncomeRatio := 0.0
	if monthlyIncome > 0 {
		debtToIncomeRatio = p.DebtPayments / monthlyIncome
	}

	liquid := p.EmergencyFund + p.CheckingSavings
	emergencyFundMonths := 0.0
	if p.TotalMonthlyExpenses > 0 {
		emergencyFundMonths = liquid / p.TotalMonthlyExpenses
	}
	emergencyFundTarget := p.TotalMonthlyExpenses * emergencyFundMonthsTarget
	emergencyFundGap := math.Max(0, emergencyFundTarget-liquid)

	savingsRate := 0.0
	if p.TotalIncome > 0 {
		savingsRate = math.Max(0, annualNetCashFlow) / p.TotalIncome
	}

	yearsToRetirement := p.RetireAge - p.Age
	if yearsToRetirement < 0 {
		yearsToRetirement = 0
	}
	annualRetirementNeed := p.TotalIncome * retirementIncomeReplacement
	retirementTarget := annualRetirementNeed / safeWithdrawalRate
	currentRetirementSavings := p.Retirement401k + p.RothIRA + p.BrokerageAccounts
	realReturn := assumedReturnRate - inflationRate
	futureValue := currentRetirementSavings
	if yearsToRetirement > 0 {
		futureValue = currentRetirementSavings * math.Pow(1+realReturn, float64(yearsToRetirement))
	}
	retirementGap := math.Max(0, retirementTarget-futureValue)

	cashFlowScore := calculateCashFlowScore(monthlyNetCashFlow, monthlyIncome)
	protectionScore := calculateProtectionScore(p)
	savingsScore := calculateSavingsScore(savingsRate, emergencyFundMonths)
	debtScore := calculateDebtScore(debtToIncomeRatio)
	retirementScore := calculateRetirementScore(futureValue, retirementTarget)

	healthScore := int(math.Round(
		float64(cashFlowScore)*weightCashFlow +
			float64(protectionScore)*weightProtection +
			float64(savingsScore)*weightSavings +
			float64(debtScore)*weightDebt +
			float64(retirementScore)*weightRetirement))

	topChallenges := identifyChallenges(p, challengeInputs{
		cashFlowScore:       cashFlowScore,
		retirementScore:     retirementScore,
		emergencyFundMonths: emergencyFundMonths,
		debtToIncomeRatio:   debtToIncomeRatio,
		savingsRate:         savingsRate,
	})

	return Result{
		NetWorth:            netWorth,
		MonthlyNetCashFlow:  monthlyNetCashFlow,
		AnnualNetCashFlow:   annualNetCashFlow,
		DebtToIncomeRatio:   debtToIncomeRatio,
		EmergencyFundMonths: emergencyFundMonths,
		EmergencyFundTarget: emergencyFundTarget,
		EmergencyFundGap:    emergencyFundGap,
		SavingsRate:         savingsRate,
		RetirementGap:       retirementGap,
		RetirementTarget:    retirementTarget,
		YearsToRetirement:   yearsToRetirement,
		HealthScore:         healthScore,
		HealthGrade:         GradeFor(healthScore),
		Categories: PersonalCategories{
			CashFlow:   ScoreCategory{Score: cashFlowScore, Status: StatusFor(cashFlowScore)},
			Protection: ScoreCategory{Score: protectionScore, Status: StatusFor(protectionScore)},
			Savings:    ScoreCategory{Score: savingsScore, Status: StatusFor(savingsScore)},
			Debt:       ScoreCategory{Score: debtScore, Status: StatusFor(debtScore)},
			Retirement: ScoreCategory{Score: retirementScore, Status: StatusFor(retirementScore)},
		},
		TopChallenges: topChallenges,
	}
}

func calculateCashFlowScore(monthlyNet, monthlyIncome float64) int {
	if monthlyIncome <= 0 {
		return 0
	}
	return scoreFromBands(monthlyNet/monthlyIncome, cashFlowBands, 20)
}

// calculateProtectionScore scores life insurance (0-30), disability coverage
// (0-30) and estate planning documents (0-40). A zero target earns full
// credit for its component.
func calculateProtectionScore(p Profile) int {
	score := 0.0
	targetLifeInsurance := p.TotalIncome * lifeInsuranceMultipleTarget
	targetDisability := p.TotalIncome * disabilityReplacementRate / 12

	if targetLifeInsurance > 0 {
		score += math.Min(1, p.LifeInsuranceCoverage/targetLifeInsurance) * 30
	} else {
		score += 30
	}

	if targetDisability > 0 {
		score += math.Min(1, p.DisabilityMonthlyBenefit/targetDisability) * 30
	} else {
		score += 30
	}

	if p.HasWill {
		score += 10
	}
	if p.HasTrust {
		score += 10
	}
	if p.HasPOA {
		score += 10
	}
	if p.HasHealthDirective {
		score += 10
	}

	return int(math.Round(math.Min(100, score)))
}

func calculateSavingsScore(savingsRate, efMonths float64) int {
	score := scoreFromBands(savingsRate, savingsRateBands, 0)
	if score == 0 && savingsRate > 0 {
		score = 10
	}

	ef := scoreFromBands(efMonths, emergencyBands, 0)
	if ef == 0 && efMonths > 0 {
		ef = 10
	}

	return score + ef
}

func calculateDebtScore(dtiRatio float64) int {
	switch {
	case dtiRatio <= 0.15:
		return 100
	case dtiRatio <= 0.25:
		return 80
	case dtiRatio <= debtToIncomeWarning:
		return 60
	case dtiRatio <= debtToIncomeCritical:
		return 40
	default:
		return 20
	}
}

// calculateRetirementScore scores projected retirement savings against the
// target corpus. A zero target is scored as a neutral 50.
func calculateRetirementScore(futureValue, target float64) int {
	if target <= 0 {
		return 50
	}
	return scoreFromBands(futureValue/target, retirementBands, 20)
}

type challengeInputs struct {
	cashFlowScore       int
	retirementScore     int
	emergencyFundMonths float64
	debtToIncomeRatio   float64
	savingsRate         float64
}

// identifyChallenges evaluates the fixed challenge rules in declaration
// order and keeps the first five that trigger.
func identifyChallenges(p Profile, in challengeInputs) []string {
	var challenges []string

	if in.cashFlowScore < 40 {
		challenges = append(challenges, "Negative or minimal monthly cash flow limits your ability to save and invest.")
	}
	if in.emergencyFundMonths < 3 {
		challenges = append(challenges, "Emergency fund below 3 months of expenses leaves you vulnerable to unexpected events.")
	}
	if in.debtToIncomeRatio > debtToIncomeWarning {
		challenges = append(challenges, "High debt-to-income ratio is consuming too much of your monthly income.")
	}
	if p.LifeInsuranceCoverage < p.TotalIncome*5 && p.Dependents > 0 {
		challenges = append(challenges, "Inadequate life insurance coverage could leave dependents financially vulnerable.")
	}
	if p.DisabilityMonthlyBenefit < (p.TotalIncome*disabilityReplacementRate/12)*0.5 {
		challenges = append(challenges, "Insufficient disability coverage would severely impact income if unable to work.")
	}
	if in.retirementScore < 40 {
		challenges = append(challenges, "Retirement savings are significantly behind target for your age and income level.")
	}
	if in.savingsRate < 0.05 {
		challenges = append(challenges, "Very low savings rate makes it difficult to build long-term wealth.")
	}
	if !p.HasWill && p.TotalAssets > 100000 {
		challenges = append(challenges, "No will or estate plan in place despite significant assets.")
	}

	if len(challenges) > 5 {
		challenges = challenges[:5]
	}
	return challenges
}
