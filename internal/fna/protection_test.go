package fna

import (
	"reflect"
	"testing"
)

func TestIncomeProtectionGaps(t *testing.T) {
	p := Profile{
		FormType:                 FormTypePersonal,
		Age:                      35,
		RetireAge:                65,
		TotalIncome:              120000,
		LifeInsuranceCoverage:    500000,
		DisabilityMonthlyBenefit: 2000,
	}
	result := CalculateIncomeProtection(p)

	if result.MonthlyIncomeLost != 10000 {
		t.Fatalf("MonthlyIncomeLost = %v, want 10000", result.MonthlyIncomeLost)
	}
	if result.YearsOfIncomeNeeded != 30 {
		t.Fatalf("YearsOfIncomeNeeded = %d, want 30", result.YearsOfIncomeNeeded)
	}
	if result.TotalIncomeGap != 3600000 {
		t.Fatalf("TotalIncomeGap = %v, want 3600000", result.TotalIncomeGap)
	}
	if result.LifeInsuranceShortfall != 3100000 {
		t.Fatalf("LifeInsuranceShortfall = %v, want 3100000", result.LifeInsuranceShortfall)
	}
	if result.IncomeReplacementTarget != 6000 {
		t.Fatalf("IncomeReplacementTarget = %v, want 6000", result.IncomeReplacementTarget)
	}
	if result.DisabilityGap != 4000 {
		t.Fatalf("DisabilityGap = %v, want 4000", result.DisabilityGap)
	}
}

func TestIncomeProtectionYearsFlooredAtTwenty(t *testing.T) {
	p := Profile{FormType: FormTypePersonal, Age: 60, RetireAge: 65, TotalIncome: 60000}
	result := CalculateIncomeProtection(p)
	if result.YearsOfIncomeNeeded != 20 {
		t.Fatalf("YearsOfIncomeNeeded = %d, want 20", result.YearsOfIncomeNeeded)
	}
}

func TestIncomeProtectionSubScoresSumToTotal(t *testing.T) {
	profiles := []Profile{
		{},
		{TotalIncome: 120000, Age: 35, RetireAge: 65, LifeInsuranceCoverage: 500000, DisabilityMonthlyBenefit: 2000},
		{TotalIncome: 90000, TotalMonthlyExpenses: 4000, EmergencyFund: 20000, CheckingSavings: 5000, HasWill: true, HasPOA: true},
		{TotalIncome: 200000, Age: 55, RetireAge: 60, LifeInsuranceCoverage: 5000000, DisabilityMonthlyBenefit: 12000, TotalMonthlyExpenses: 8000, EmergencyFund: 60000, HasWill: true, HasTrust: true, HasPOA: true, HasHealthDirective: true},
	}

	for i, p := range profiles {
		result := CalculateIncomeProtection(p)
		sum := result.ScoreBreakdown.LifeInsurance +
			result.ScoreBreakdown.Disability +
			result.ScoreBreakdown.EmergencyFund +
			result.ScoreBreakdown.EstatePlanning
		if sum != result.ProtectionScore {
			t.Fatalf("profile %d: breakdown sums to %d, score is %d", i, sum, result.ProtectionScore)
		}
		if result.ProtectionGrade != GradeFor(result.ProtectionScore) {
			t.Fatalf("profile %d: grade %q does not match score %d", i, result.ProtectionGrade, result.ProtectionScore)
		}
	}
}

func TestIncomeProtectionZeroIncomeFullCredit(t *testing.T) {
	result := CalculateIncomeProtection(Profile{FormType: FormTypePersonal})

	// Zero targets earn full credit for life, disability and emergency fund.
	if result.ScoreBreakdown.LifeInsurance != 25 {
		t.Fatalf("life sub-score = %d, want 25", result.ScoreBreakdown.LifeInsurance)
	}
	if result.ScoreBreakdown.Disability != 25 {
		t.Fatalf("disability sub-score = %d, want 25", result.ScoreBreakdown.Disability)
	}
	if result.ScoreBreakdown.EmergencyFund != 25 {
		t.Fatalf("emergency sub-score = %d, want 25", result.ScoreBreakdown.EmergencyFund)
	}
	if result.ScoreBreakdown.EstatePlanning != 0 {
		t.Fatalf("estate sub-score = %d, want 0", result.ScoreBreakdown.EstatePlanning)
	}
}

func TestEstateTierScoreWeights(t *testing.T) {
	all := Profile{HasWill: true, HasTrust: true, HasPOA: true, HasHealthDirective: true}
	if got := calculateEstateTierScore(all); got != 25 {
		t.Fatalf("all documents = %d, want 25 (capped)", got)
	}
	willOnly := Profile{HasWill: true}
	if got := calculateEstateTierScore(willOnly); got != 7 {
		t.Fatalf("will only = %d, want 7", got)
	}
}

func TestBusinessProtectionBuySellZeroNeedEdge(t *testing.T) {
	// Zero valuation means zero buy-sell need; funded percent reports 100
	// rather than dividing by zero.
	p := Profile{
		FormType:            FormTypeBusiness,
		OwnershipPercentage: floatPtr(100),
	}
	result := CalculateBusinessProtection(p)

	if result.BuySellNeeded != 0 {
		t.Fatalf("BuySellNeeded = %v, want 0", result.BuySellNeeded)
	}
	if result.BuySellFundedPercent != 100 {
		t.Fatalf("BuySellFundedPercent = %d, want 100", result.BuySellFundedPercent)
	}
	if result.KeyPersonGapPercent != 0 {
		t.Fatalf("KeyPersonGapPercent = %d, want 0", result.KeyPersonGapPercent)
	}
}

func TestBusinessProtectionGapPercents(t *testing.T) {
	p := sampleBusinessProfile()
	p.OwnershipPercentage = floatPtr(60)
	p.KeyPersonInsurance = 489083 // about half of the key person need
	p.BuySellFunding = 587000
	result := CalculateBusinessProtection(p)

	// Valuation mid is 1956667: key person need 978334 (rounded),
	// buy-sell need 1174000 (rounded 60%).
	if result.KeyPersonNeeded != 978334 {
		t.Fatalf("KeyPersonNeeded = %v, want 978334", result.KeyPersonNeeded)
	}
	if result.KeyPersonGapPercent != 50 {
		t.Fatalf("KeyPersonGapPercent = %d, want 50", result.KeyPersonGapPercent)
	}
	if result.BuySellNeeded != 1174000 {
		t.Fatalf("BuySellNeeded = %v, want 1174000", result.BuySellNeeded)
	}
	if result.BuySellFundedPercent != 50 {
		t.Fatalf("BuySellFundedPercent = %d, want 50", result.BuySellFundedPercent)
	}
}

func TestBusinessProtectionCashRunway(t *testing.T) {
	tests := []struct {
		name        string
		cash        float64
		monthlyOpEx *float64
		annualExp   float64
		wantMonths  float64
		wantKnown   bool
		wantStatus  RunwayStatus
	}{
		{"healthy", 700000, floatPtr(100000), 0, 7, true, RunwayHealthy},
		{"warning", 400000, floatPtr(100000), 0, 4, true, RunwayWarning},
		{"critical", 150000, floatPtr(100000), 0, 1.5, true, RunwayCritical},
		{"fallback to annual expenses", 60000, nil, 120000, 6, true, RunwayHealthy},
		{"unknown burn is healthy", 50000, nil, 0, 0, false, RunwayHealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Profile{
				FormType:                 FormTypeBusiness,
				BusinessCashOnHand:       tt.cash,
				MonthlyOperatingExpenses: tt.monthlyOpEx,
				AnnualExpenses:           tt.annualExp,
			}
			result := CalculateBusinessProtection(p)
			if result.RunwayKnown != tt.wantKnown {
				t.Fatalf("RunwayKnown = %v, want %v", result.RunwayKnown, tt.wantKnown)
			}
			if result.CashRunwayMonths != tt.wantMonths {
				t.Fatalf("CashRunwayMonths = %v, want %v", result.CashRunwayMonths, tt.wantMonths)
			}
			if result.CashRunwayStatus != tt.wantStatus {
				t.Fatalf("CashRunwayStatus = %q, want %q", result.CashRunwayStatus, tt.wantStatus)
			}
		})
	}
}

func TestBusinessProtectionDeterministic(t *testing.T) {
	p := sampleBusinessProfile()
	if !reflect.DeepEqual(CalculateBusinessProtection(p), CalculateBusinessProtection(p)) {
		t.Fatalf("expected identical results for identical input")
	}
}
