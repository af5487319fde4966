package fna

// Form type discriminants. Exactly one of the personal or business
// calculators applies to a given profile.
const (
	FormTypePersonal = "personal"
	FormTypeBusiness = "business"
)

// Status classifies a category score as good, warning or critical.
// It is always derived from the score via StatusFor, never set directly.
type Status string

const (
	StatusGood     Status = "good"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Profile is the validated intake record an analysis runs on. The caller
// owns validation and defaulting; the calculators never reject a value.
// Pointer fields distinguish "absent" from an explicit zero where the two
// produce different results.
type Profile struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Age        int    `json:"age"`
	RetireAge  int    `json:"retireAge"`
	Dependents int    `json:"dependents"`
	FormType   string `json:"formType"`

	// Income
	AnnualSalary float64 `json:"annualSalary"`
	SpouseIncome float64 `json:"spouseIncome"`
	OtherIncome  float64 `json:"otherIncome"`
	TotalIncome  float64 `json:"totalIncome"`

	// Monthly expenses
	Housing              float64 `json:"housing"`
	Utilities            float64 `json:"utilities"`
	Food                 float64 `json:"food"`
	Transportation       float64 `json:"transportation"`
	Insurance            float64 `json:"insurance"`
	Healthcare           float64 `json:"healthcare"`
	DebtPayments         float64 `json:"debtPayments"`
	Entertainment        float64 `json:"entertainment"`
	OtherExpenses        float64 `json:"otherExpenses"`
	TotalMonthlyExpenses float64 `json:"totalMonthlyExpenses"`

	// Assets
	CheckingSavings   float64 `json:"checkingSavings"`
	EmergencyFund     float64 `json:"emergencyFund"`
	Retirement401k    float64 `json:"retirement401k"`
	RothIRA           float64 `json:"rothIRA"`
	BrokerageAccounts float64 `json:"brokerageAccounts"`
	RealEstateEquity  float64 `json:"realEstateEquity"`
	OtherAssets       float64 `json:"otherAssets"`
	TotalAssets       float64 `json:"totalAssets"`

	// Liabilities
	Mortgage         float64 `json:"mortgage"`
	AutoLoans        float64 `json:"autoLoans"`
	StudentLoans     float64 `json:"studentLoans"`
	CreditCards      float64 `json:"creditCards"`
	OtherDebts       float64 `json:"otherDebts"`
	TotalLiabilities float64 `json:"totalLiabilities"`

	// Protection and estate planning
	LifeInsuranceCoverage    float64 `json:"lifeInsuranceCoverage"`
	DisabilityMonthlyBenefit float64 `json:"disabilityMonthlyBenefit"`
	HasWill                  bool    `json:"hasWill"`
	HasTrust                 bool    `json:"hasTrust"`
	HasPOA                   bool    `json:"hasPOA"`
	HasHealthDirective       bool    `json:"hasHealthDirective"`

	// Business fields
	BusinessName             string   `json:"businessName,omitempty"`
	Industry                 string   `json:"industry,omitempty"`
	AnnualRevenue            float64  `json:"annualRevenue,omitempty"`
	AnnualExpenses           float64  `json:"annualExpenses,omitempty"`
	NetProfit                *float64 `json:"netProfit,omitempty"`
	BusinessAssets           float64  `json:"businessAssets,omitempty"`
	BusinessLiabilities      float64  `json:"businessLiabilities,omitempty"`
	NumberOfEmployees        *int     `json:"numberOfEmployees,omitempty"`
	OwnershipPercentage      *float64 `json:"ownershipPercentage,omitempty"`
	YearsInBusiness          int      `json:"yearsInBusiness,omitempty"`
	KeyPersonInsurance       float64  `json:"keyPersonInsurance,omitempty"`
	BuySellFunding           float64  `json:"buySellFunding,omitempty"`
	BusinessCashOnHand       float64  `json:"businessCashOnHand,omitempty"`
	MonthlyOperatingExpenses *float64 `json:"monthlyOperatingExpenses,omitempty"`
}

// ScoreCategory pairs a 0-100 score with its derived status.
type ScoreCategory struct {
	Score  int    `json:"score"`
	Status Status `json:"status"`
}

// PersonalCategories is the fixed set of personal category scores.
type PersonalCategories struct {
	CashFlow   ScoreCategory `json:"cashFlow"`
	Protection ScoreCategory `json:"protection"`
	Savings    ScoreCategory `json:"savings"`
	Debt       ScoreCategory `json:"debt"`
	Retirement ScoreCategory `json:"retirement"`
}

// Result is the personal Financial Needs Analysis.
type Result struct {
	NetWorth            float64 `json:"netWorth"`
	MonthlyNetCashFlow  float64 `json:"monthlyNetCashFlow"`
	AnnualNetCashFlow   float64 `json:"annualNetCashFlow"`
	DebtToIncomeRatio   float64 `json:"debtToIncomeRatio"`
	EmergencyFundMonths float64 `json:"emergencyFundMonths"`
	EmergencyFundTarget float64 `json:"emergencyFundTarget"`
	EmergencyFundGap    float64 `json:"emergencyFundGap"`
	SavingsRate         float64 `json:"savingsRate"`
	RetirementGap       float64 `json:"retirementGap"`
	RetirementTarget    float64 `json:"retirementTarget"`
	YearsToRetirement   int     `json:"yearsToRetirement"`

	HealthScore int    `json:"healthScore"`
	HealthGrade string `json:"healthGrade"`

	Categories    PersonalCategories `json:"categories"`
	TopChallenges []string           `json:"topChallenges"`
}

// BusinessCategories is the fixed set of business category scores.
type BusinessCategories struct {
	Profitability ScoreCategory `json:"profitability"`
	Liquidity     ScoreCategory `json:"liquidity"`
	Protection    ScoreCategory `json:"protection"`
	Succession    ScoreCategory `json:"succession"`
}

// BusinessResult is the business Financial Needs Analysis.
type BusinessResult struct {
	BusinessNetWorth   float64 `json:"businessNetWorth"`
	ProfitMargin       float64 `json:"profitMargin"`
	RevenuePerEmployee float64 `json:"revenuePerEmployee"`
	DebtToEquityRatio  float64 `json:"debtToEquityRatio"`

	ValuationLow   float64 `json:"valuationLow"`
	ValuationMid   float64 `json:"valuationMid"`
	ValuationHigh  float64 `json:"valuationHigh"`
	EBITDAMultiple float64 `json:"ebitdaMultiple"`

	HealthScore int    `json:"healthScore"`
	HealthGrade string `json:"healthGrade"`

	Categories    BusinessCategories `json:"categories"`
	TopChallenges []string           `json:"topChallenges"`
}

// Valuation is a three-point business valuation estimate. Mid is the plain
// average of (Low, revenue valuation, EBITDA valuation) and is not
// guaranteed to lie between Low and High; callers must not assume ordering.
type Valuation struct {
	Low            float64 `json:"valuationLow"`
	Mid            float64 `json:"valuationMid"`
	High           float64 `json:"valuationHigh"`
	EBITDAMultiple float64 `json:"ebitdaMultiple"`
}

// ScoreBreakdown splits an income protection score into its four 0-25
// components. The components always sum to the total protection score.
type ScoreBreakdown struct {
	LifeInsurance  int `json:"lifeInsurance"`
	Disability     int `json:"disability"`
	EmergencyFund  int `json:"emergencyFund"`
	EstatePlanning int `json:"estatePlanning"`
}

// IncomeProtection is the personal second-phase gap analysis.
type IncomeProtection struct {
	MonthlyIncomeLost         float64 `json:"monthlyIncomeLost"`
	YearsOfIncomeNeeded       int     `json:"yearsOfIncomeNeeded"`
	TotalIncomeGap            float64 `json:"totalIncomeGap"`
	LifeInsuranceCoverage     float64 `json:"lifeInsuranceCoverage"`
	LifeInsuranceShortfall    float64 `json:"lifeInsuranceShortfall"`
	IncomeReplacementTarget   float64 `json:"incomeReplacementTarget"`
	CurrentDisabilityCoverage float64 `json:"currentDisabilityCoverage"`
	DisabilityGap             float64 `json:"disabilityGap"`

	ProtectionScore int            `json:"protectionScore"`
	ProtectionGrade string         `json:"protectionGrade"`
	ScoreBreakdown  ScoreBreakdown `json:"scoreBreakdown"`
}

// RunwayStatus classifies business cash runway.
type RunwayStatus string

const (
	RunwayCritical RunwayStatus = "critical"
	RunwayWarning  RunwayStatus = "warning"
	RunwayHealthy  RunwayStatus = "healthy"
)

// BusinessProtection is the business second-phase gap analysis.
// RunwayKnown is false when the monthly burn is zero and no runway can be
// computed; the status is healthy in that case.
type BusinessProtection struct {
	ValuationLow   float64 `json:"valuationLow"`
	ValuationMid   float64 `json:"valuationMid"`
	ValuationHigh  float64 `json:"valuationHigh"`
	EBITDAMultiple float64 `json:"ebitdaMultiple"`

	KeyPersonNeeded     float64 `json:"keyPersonNeeded"`
	KeyPersonCurrent    float64 `json:"keyPersonCurrent"`
	KeyPersonGapPercent int     `json:"keyPersonGapPercent"`

	BuySellNeeded        float64 `json:"buySellNeeded"`
	BuySellCurrent       float64 `json:"buySellCurrent"`
	BuySellFundedPercent int     `json:"buySellFundedPercent"`

	CashRunwayMonths float64      `json:"cashRunwayMonths"`
	RunwayKnown      bool         `json:"cashRunwayKnown"`
	CashRunwayStatus RunwayStatus `json:"cashRunwayStatus"`
	MonthlyBurn      float64      `json:"monthlyBurn"`
}
