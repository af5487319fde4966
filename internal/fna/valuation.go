package fna

import "math"

// CalculateValuation produces the three-point valuation estimate shared by
// the business scorer and the business protection summary.
//
// Mid averages Low with the revenue and EBITDA valuations. It deliberately
// excludes the asset valuation and is therefore not ordered with respect to
// Low and High (a heavily asset-backed low-revenue business yields a Mid
// below Low). Downstream consumers depend on this exact arithmetic.
func CalculateValuation(p Profile) Valuation {
	revenue := p.AnnualRevenue
	netProfit := revenue - p.AnnualExpenses
	if p.NetProfit != nil {
		netProfit = *p.NetProfit
	}
	industry := p.Industry
	if industry == "" {
		industry = "other"
	}

	multipliers := MultipliersFor(industry)
	netAssets := p.BusinessAssets - p.BusinessLiabilities
	ebitda := netProfit * ebitdaApproximationFactor

	revenueValuation := revenue * multipliers.Revenue
	ebitdaValuation := ebitda * multipliers.EBITDA
	assetValuation := netAssets

	low := math.Max(0, netAssets)
	high := math.Max(revenueValuation, math.Max(ebitdaValuation, assetValuation))
	mid := math.Round((low + revenueValuation + ebitdaValuation) / 3)

	return Valuation{
		Low:            math.Round(low),
		Mid:            math.Round(math.Max(0, mid)),
		High:           math.Round(math.Max(0, high)),
		EBITDAMultiple: multipliers.EBITDA,
	}
}
