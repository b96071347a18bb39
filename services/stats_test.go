package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/DyoneNunes/controlefinanceiro/models"
)

var (
	viewDate  = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	thisMonth = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	lastMonth = time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
)

func TestBuildDashboardStatsMonthlyBuckets(t *testing.T) {
	paidDate := thisMonth
	bills := []models.Bill{
		{Value: 1000, DueDate: lastMonth, Status: models.StatusOverdue},
		{Value: 500, DueDate: thisMonth, Status: models.StatusPending},
		// paid this month even though it was due last month: cash-flow view
		{Value: 200, DueDate: lastMonth, Status: models.StatusPaid, PaidDate: &paidDate},
	}

	stats := BuildDashboardStats(bills, nil, nil, nil, viewDate)

	assert.InDelta(t, 200, stats.PaidTotal, 1e-9)
	assert.InDelta(t, 500, stats.PendingTotal, 1e-9)
	assert.InDelta(t, 1000, stats.OverdueTotal, 1e-9)
	assert.InDelta(t, 1500, stats.PendingTotal+stats.OverdueTotal, 1e-9)
	assert.Equal(t, 1, stats.PaidCount)
	assert.Equal(t, 1, stats.PendingCount)
	assert.Equal(t, 1, stats.OverdueCount)
}

func TestBuildDashboardStatsPaidFallsBackToDueDate(t *testing.T) {
	// legacy paid bill without a paid date counts by due date
	bills := []models.Bill{
		{Value: 300, DueDate: thisMonth, Status: models.StatusPaid},
		{Value: 400, DueDate: lastMonth, Status: models.StatusPaid},
	}

	stats := BuildDashboardStats(bills, nil, nil, nil, viewDate)

	assert.InDelta(t, 300, stats.PaidTotal, 1e-9)
}

func TestBuildDashboardStatsOverdueIgnoresMonth(t *testing.T) {
	longAgo := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	bills := []models.Bill{
		{Value: 80, DueDate: longAgo, Status: models.StatusOverdue},
		{Value: 20, DueDate: lastMonth, Status: models.StatusOverdue},
	}

	stats := BuildDashboardStats(bills, nil, nil, nil, viewDate)

	assert.InDelta(t, 100, stats.OverdueTotal, 1e-9)
	assert.Equal(t, 2, stats.OverdueCount)
}

func TestBuildDashboardStatsBalance(t *testing.T) {
	paidDate := thisMonth
	bills := []models.Bill{
		{Value: 1200, DueDate: thisMonth, Status: models.StatusPaid, PaidDate: &paidDate},
		{Value: 999, DueDate: thisMonth, Status: models.StatusPending},
	}
	incomes := []models.Income{
		{Value: 5000, Date: thisMonth},
		{Value: 800, Date: lastMonth}, // outside the view month
	}
	expenses := []models.RandomExpense{
		{Value: 350, Date: thisMonth, Status: models.StatusPaid},
	}
	investments := []models.Investment{
		{InitialAmount: 1000, CDIPercent: 100, DurationMonths: 12, StartDate: thisMonth},
		{InitialAmount: 2000, CDIPercent: 100, DurationMonths: 12, StartDate: lastMonth},
	}

	stats := BuildDashboardStats(bills, incomes, expenses, investments, viewDate)

	assert.InDelta(t, 5000, stats.IncomeTotal, 1e-9)
	assert.InDelta(t, 350, stats.RandomExpenseTotal, 1e-9)
	assert.InDelta(t, 1000, stats.InvestedTotal, 1e-9)
	// balance excludes pending bills and investment yield
	assert.InDelta(t, 5000-(1200+350+1000), stats.Balance, 1e-9)

	assert.InDelta(t, 3000, stats.AllTimeInvested, 1e-9)
	assert.InDelta(t, 136.50*3, stats.InvestmentYield, 0.02)
}

func TestBuildDashboardStatsNilCollections(t *testing.T) {
	stats := BuildDashboardStats(nil, nil, nil, nil, viewDate)
	assert.Equal(t, models.DashboardStats{}, stats)
}

func TestBuildDashboardStatsIdempotent(t *testing.T) {
	bills := []models.Bill{{Value: 10, DueDate: thisMonth, Status: models.StatusPending}}
	incomes := []models.Income{{Value: 99, Date: thisMonth}}

	first := BuildDashboardStats(bills, incomes, nil, nil, viewDate)
	second := BuildDashboardStats(bills, incomes, nil, nil, viewDate)
	assert.Equal(t, first, second)
}

func TestBuildYearlyStats(t *testing.T) {
	paidInJan := time.Date(2027, 1, 5, 0, 0, 0, 0, time.UTC)
	bills := []models.Bill{
		// due in 2026, paid in 2027: the yearly view keys paid bills on due
		// date, so this belongs to 2026
		{Value: 100, DueDate: time.Date(2026, 12, 28, 0, 0, 0, 0, time.UTC), Status: models.StatusPaid, PaidDate: &paidInJan},
		{Value: 50, DueDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), Status: models.StatusPending},
		{Value: 70, DueDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Status: models.StatusPaid},
	}
	incomes := []models.Income{
		{Value: 4000, Date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
	}
	expenses := []models.RandomExpense{
		{Value: 30, Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), Status: models.StatusPaid},
		// variable expenses count for the year regardless of status
		{Value: 25, Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Status: models.StatusPending},
	}
	investments := []models.Investment{
		{InitialAmount: 500, StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{InitialAmount: 900, StartDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	stats := BuildYearlyStats(bills, incomes, expenses, investments, 2026)

	assert.InDelta(t, 4000, stats.IncomeTotal, 1e-9)
	assert.InDelta(t, 100+30+25, stats.ExpenseTotal, 1e-9)
	assert.InDelta(t, 500, stats.InvestedTotal, 1e-9)
	assert.InDelta(t, 4000-155-500, stats.Balance, 1e-9)
}
