package services

import (
	"time"

	"github.com/DyoneNunes/controlefinanceiro/models"
)

// ============================================================================
// STATUS DAS CONTAS
// Derivado das datas em cada leitura; nunca confiado do banco.
// ============================================================================

// CalculateStatus derives the lifecycle status of a bill or random expense.
// A record with a paid date is always "paid", even when it was paid late.
// Otherwise the due date is compared at day granularity: strictly before
// today is "overdue", today or later is "pending".
func CalculateStatus(paidDate *time.Time, dueDate, today time.Time) models.BillStatus {
	if paidDate != nil {
		return models.StatusPaid
	}

	due := startOfDay(dueDate)
	now := startOfDay(today)

	if due.Before(now) {
		return models.StatusOverdue
	}
	return models.StatusPending
}

// ApplyBillStatus recomputes the status of every bill in place. A record
// already marked paid stays paid; everything else is re-derived from the dates.
func ApplyBillStatus(bills []models.Bill, today time.Time) {
	for i := range bills {
		if bills[i].Status == models.StatusPaid || bills[i].PaidDate != nil {
			bills[i].Status = models.StatusPaid
			continue
		}
		bills[i].Status = CalculateStatus(bills[i].PaidDate, bills[i].DueDate, today)
	}
}

// ApplyExpenseStatus recomputes the status of every random expense in place,
// treating its date as the due date. Expenses default to paid at creation,
// so the stored paid status is preserved even without a paid date.
func ApplyExpenseStatus(expenses []models.RandomExpense, today time.Time) {
	for i := range expenses {
		if expenses[i].Status == models.StatusPaid || expenses[i].PaidDate != nil {
			expenses[i].Status = models.StatusPaid
			continue
		}
		expenses[i].Status = CalculateStatus(expenses[i].PaidDate, expenses[i].Date, today)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
