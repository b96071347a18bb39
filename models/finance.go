package models

import "time"

// ============================================================================
// FINANCIAL RECORDS (todos escopados por grupo)
// ============================================================================

type BillStatus string

const (
	StatusPending BillStatus = "pending"
	StatusPaid    BillStatus = "paid"
	StatusOverdue BillStatus = "overdue"
)

// Bill is a fixed obligation. Status is derived from the dates on every read;
// the stored value is only trusted when a paid_date exists.
type Bill struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Value     float64    `json:"value"`
	DueDate   time.Time  `json:"dueDate"`
	Status    BillStatus `json:"status"`
	PaidDate  *time.Time `json:"paidDate"`
	GroupID   string     `json:"group_id"`
	UserID    string     `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
}

type Income struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Value       float64   `json:"value"`
	Date        time.Time `json:"date"`
	GroupID     string    `json:"group_id"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// RandomExpense is an ad-hoc cost. Same status lifecycle as Bill, with its
// date acting as the due date.
type RandomExpense struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Value     float64    `json:"value"`
	Date      time.Time  `json:"date"`
	Status    BillStatus `json:"status"`
	PaidDate  *time.Time `json:"paidDate"`
	GroupID   string     `json:"group_id"`
	UserID    string     `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
}

type Investment struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	InitialAmount  float64   `json:"initialAmount"`
	CDIPercent     float64   `json:"cdiPercent"`
	StartDate      time.Time `json:"startDate"`
	DurationMonths int       `json:"durationMonths"`
	GroupID        string    `json:"group_id"`
	UserID         string    `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`

	// Computed on read, never stored
	ProjectedAmount float64 `json:"projectedAmount"`
	ProjectedYield  float64 `json:"projectedYield"`
}

// ============================================================================
// REQUESTS
// ============================================================================

type CreateBillRequest struct {
	Name    string     `json:"name" binding:"required"`
	Value   float64    `json:"value" binding:"required,gt=0"`
	DueDate time.Time  `json:"dueDate" binding:"required"`
	Status  BillStatus `json:"status"`
}

type CreateIncomeRequest struct {
	Description string    `json:"description" binding:"required"`
	Value       float64   `json:"value" binding:"required,gt=0"`
	Date        time.Time `json:"date" binding:"required"`
}

type CreateRandomExpenseRequest struct {
	Name   string     `json:"name" binding:"required"`
	Value  float64    `json:"value" binding:"required,gt=0"`
	Date   time.Time  `json:"date" binding:"required"`
	Status BillStatus `json:"status"`
}

type CreateInvestmentRequest struct {
	Name           string    `json:"name" binding:"required"`
	InitialAmount  float64   `json:"initialAmount" binding:"required,gt=0"`
	CDIPercent     float64   `json:"cdiPercent" binding:"required,gt=0"`
	StartDate      time.Time `json:"startDate" binding:"required"`
	DurationMonths int       `json:"durationMonths" binding:"required,gte=1"`
}

// ============================================================================
// DASHBOARD
// ============================================================================

// DashboardStats mixes three accounting views on purpose: paid totals follow
// cash-flow (month of payment), pending totals follow competence (month of due
// date) and overdue totals accumulate across all months.
type DashboardStats struct {
	IncomeTotal        float64 `json:"incomeTotal"`
	PaidTotal          float64 `json:"paidTotal"`
	PendingTotal       float64 `json:"pendingTotal"`
	OverdueTotal       float64 `json:"overdueTotal"`
	RandomExpenseTotal float64 `json:"randomExpenseTotal"`
	InvestedTotal      float64 `json:"investedTotal"`
	Balance            float64 `json:"balance"`

	PaidCount    int `json:"paidCount"`
	PendingCount int `json:"pendingCount"`
	OverdueCount int `json:"overdueCount"`

	// All-time asset figures, independent of the selected month
	AllTimeInvested float64 `json:"allTimeInvested"`
	InvestmentYield float64 `json:"investmentYield"`
}

type YearlyStats struct {
	IncomeTotal   float64 `json:"incomeTotal"`
	ExpenseTotal  float64 `json:"expenseTotal"`
	InvestedTotal float64 `json:"investedTotal"`
	Balance       float64 `json:"balance"`
}
