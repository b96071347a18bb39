package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/DyoneNunes/controlefinanceiro/models"
)

func TestCalculateStatus(t *testing.T) {
	today := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	t.Run("due today is pending, not overdue", func(t *testing.T) {
		due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, models.StatusPending, CalculateStatus(nil, due, today))
	})

	t.Run("due yesterday is overdue", func(t *testing.T) {
		due := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
		assert.Equal(t, models.StatusOverdue, CalculateStatus(nil, due, today))
	})

	t.Run("due in the future is pending", func(t *testing.T) {
		due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, models.StatusPending, CalculateStatus(nil, due, today))
	})

	t.Run("paid date always wins", func(t *testing.T) {
		due := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		paid := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		// paid long after the due date, still paid
		assert.Equal(t, models.StatusPaid, CalculateStatus(&paid, due, today))
	})

	t.Run("time of day on the due date is ignored", func(t *testing.T) {
		due := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)
		assert.Equal(t, models.StatusPending, CalculateStatus(nil, due, today))
	})
}

func TestCalculateStatusIdempotent(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	first := CalculateStatus(nil, due, today)
	second := CalculateStatus(nil, due, today)
	assert.Equal(t, first, second)
}

func TestApplyBillStatus(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	paid := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	bills := []models.Bill{
		{Name: "aluguel", DueDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "luz", DueDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)},
		{Name: "internet", DueDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), PaidDate: &paid},
		// legacy row: marked paid without a paid date, must stay paid
		{Name: "agua", DueDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Status: models.StatusPaid},
	}

	ApplyBillStatus(bills, today)

	assert.Equal(t, models.StatusOverdue, bills[0].Status)
	assert.Equal(t, models.StatusPending, bills[1].Status)
	assert.Equal(t, models.StatusPaid, bills[2].Status)
	assert.Equal(t, models.StatusPaid, bills[3].Status)
}

func TestApplyExpenseStatusDefaultsPaid(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	expenses := []models.RandomExpense{
		{Name: "mercado", Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Status: models.StatusPaid},
		{Name: "farmacia", Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Status: models.StatusPending},
	}

	ApplyExpenseStatus(expenses, today)

	assert.Equal(t, models.StatusPaid, expenses[0].Status)
	assert.Equal(t, models.StatusOverdue, expenses[1].Status)
}
