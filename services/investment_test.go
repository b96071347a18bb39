package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateInvestmentReturn(t *testing.T) {
	t.Run("100% of CDI over 12 months compounds to the annual rate", func(t *testing.T) {
		// 1000 * ((1.1365)^(1/12))^12 == 1000 * 1.1365
		got := CalculateInvestmentReturn(1000, 100, 12)
		assert.InDelta(t, 1136.50, got, 0.005)
	})

	t.Run("zero percent of CDI yields nothing", func(t *testing.T) {
		got := CalculateInvestmentReturn(5000, 0, 24)
		assert.InDelta(t, 5000, got, 1e-9)
	})

	t.Run("percent above 100 is not capped", func(t *testing.T) {
		at100 := CalculateInvestmentReturn(1000, 100, 12)
		at110 := CalculateInvestmentReturn(1000, 110, 12)
		assert.Greater(t, at110, at100)
	})

	t.Run("matches the formula for a long horizon", func(t *testing.T) {
		monthly := math.Pow(1+CDIAnnualRate, 1.0/12) - 1
		want := 250000 * math.Pow(1+monthly*0.85, 360)
		got := CalculateInvestmentReturn(250000, 85, 360)
		assert.InDelta(t, want, got, 0.01)
	})
}

func TestInvestmentYield(t *testing.T) {
	yield := InvestmentYield(1000, 100, 12)
	assert.InDelta(t, 136.50, yield, 0.005)
}

func TestCalculateInvestmentReturnDeterministic(t *testing.T) {
	a := CalculateInvestmentReturn(987654.32, 102.5, 47)
	b := CalculateInvestmentReturn(987654.32, 102.5, 47)
	assert.Equal(t, a, b)
}
