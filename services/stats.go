package services

import (
	"time"

	"github.com/DyoneNunes/controlefinanceiro/models"
)

// ============================================================================
// AGREGAÇÃO DO DASHBOARD
//
// Three temporal filters coexist on purpose:
//   - paid bills follow cash-flow (month money actually left, paid date first,
//     due date as fallback for legacy rows without one)
//   - pending bills follow competence (month the obligation is due)
//   - overdue bills accumulate across every month
// Collapsing these into a single convention changes observable behavior.
// ============================================================================

// BuildDashboardStats computes the statistics for the month of viewDate.
// Statuses must already be applied (ApplyBillStatus/ApplyExpenseStatus).
// Nil slices are valid and produce zero totals.
func BuildDashboardStats(
	bills []models.Bill,
	incomes []models.Income,
	expenses []models.RandomExpense,
	investments []models.Investment,
	viewDate time.Time,
) models.DashboardStats {
	var stats models.DashboardStats

	for _, bill := range bills {
		switch bill.Status {
		case models.StatusPaid:
			// Cash-flow: month the money left. Due date is only a fallback
			// for legacy rows that were marked paid without a paid date.
			ref := bill.DueDate
			if bill.PaidDate != nil {
				ref = *bill.PaidDate
			}
			if sameMonth(ref, viewDate) {
				stats.PaidTotal += bill.Value
				stats.PaidCount++
			}
		case models.StatusPending:
			if sameMonth(bill.DueDate, viewDate) {
				stats.PendingTotal += bill.Value
				stats.PendingCount++
			}
		case models.StatusOverdue:
			stats.OverdueTotal += bill.Value
			stats.OverdueCount++
		}
	}

	for _, income := range incomes {
		if sameMonth(income.Date, viewDate) {
			stats.IncomeTotal += income.Value
		}
	}

	for _, expense := range expenses {
		if sameMonth(expense.Date, viewDate) {
			stats.RandomExpenseTotal += expense.Value
		}
	}

	for _, inv := range investments {
		if sameMonth(inv.StartDate, viewDate) {
			stats.InvestedTotal += inv.InitialAmount
		}
		stats.AllTimeInvested += inv.InitialAmount
		stats.InvestmentYield += InvestmentYield(inv.InitialAmount, inv.CDIPercent, inv.DurationMonths)
	}

	// Cash-flow balance: pending/overdue bills have not left the account yet
	// and investment yield is unrealized, so neither participates.
	stats.Balance = stats.IncomeTotal - (stats.PaidTotal + stats.RandomExpenseTotal + stats.InvestedTotal)

	return stats
}

// BuildYearlyStats mirrors the monthly filters keyed on the calendar year.
// Paid bills enter by due date here, not paid date; the asymmetry with the
// monthly view is intentional.
func BuildYearlyStats(
	bills []models.Bill,
	incomes []models.Income,
	expenses []models.RandomExpense,
	investments []models.Investment,
	year int,
) models.YearlyStats {
	var stats models.YearlyStats

	for _, income := range incomes {
		if income.Date.Year() == year {
			stats.IncomeTotal += income.Value
		}
	}

	for _, bill := range bills {
		if bill.Status == models.StatusPaid && bill.DueDate.Year() == year {
			stats.ExpenseTotal += bill.Value
		}
	}

	for _, expense := range expenses {
		if expense.Date.Year() == year {
			stats.ExpenseTotal += expense.Value
		}
	}

	for _, inv := range investments {
		if inv.StartDate.Year() == year {
			stats.InvestedTotal += inv.InitialAmount
		}
	}

	stats.Balance = stats.IncomeTotal - stats.ExpenseTotal - stats.InvestedTotal

	return stats
}

func sameMonth(t, view time.Time) bool {
	return t.Year() == view.Year() && t.Month() == view.Month()
}
