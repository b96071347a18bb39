package services

import "math"

// Taxa DI anual aproximada (13.65% a.a)
const CDIAnnualRate = 0.1365

// CalculateInvestmentReturn projects the final amount of an investment that
// yields a percentage of the CDI benchmark, compounding monthly.
//
// The annual rate is converted to its monthly equivalent, scaled by the
// investment's CDI percentage and compounded over the whole-month duration.
func CalculateInvestmentReturn(initialAmount, cdiPercent float64, months int) float64 {
	monthlyRate := math.Pow(1+CDIAnnualRate, 1.0/12) - 1
	effectiveMonthlyRate := monthlyRate * (cdiPercent / 100)
	return initialAmount * math.Pow(1+effectiveMonthlyRate, float64(months))
}

// InvestmentYield is the projected gain over the initial amount.
func InvestmentYield(initialAmount, cdiPercent float64, months int) float64 {
	return CalculateInvestmentReturn(initialAmount, cdiPercent, months) - initialAmount
}
