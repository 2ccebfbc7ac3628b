// internal/journal/calc.go
package journal

import "math"

// BasePipValue is the pip value in account currency for the base 0.01 lot.
// Pip value scales linearly with lot size relative to this base unit.
const BasePipValue = 0.10

// RiskedAmount returns the monetary amount at risk for a balance and
// risk percentage.
func RiskedAmount(balance, riskPercent float64) float64 {
	return balance * (riskPercent / 100)
}

// PipsToRisk returns the pip distance to the stop for a risked amount and
// lot size. Returns 0 when the scaled pip value is 0 to avoid division
// by zero.
func PipsToRisk(riskedAmount, lotSize float64) float64 {
	pipValue := BasePipValue * (lotSize / 0.01)
	if pipValue == 0 {
		return 0
	}
	return riskedAmount / pipValue
}

// ProfitTarget returns the profit target for a risked amount and reward
// multiple.
func ProfitTarget(riskedAmount, rewardMultiple float64) float64 {
	return riskedAmount * rewardMultiple
}

// OptimalLotSize returns the position size that risks exactly riskPercent
// of balance over stopPips, rounded to two decimal places.
func OptimalLotSize(balance, riskPercent, stopPips, pipValue float64) float64 {
	if stopPips*pipValue == 0 {
		return 0
	}
	lot := RiskedAmount(balance, riskPercent) / (stopPips * pipValue)
	return math.Round(lot*100) / 100
}
