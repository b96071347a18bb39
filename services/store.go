package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DyoneNunes/controlefinanceiro/models"
)

// FinanceStore reads and writes the four group-scoped record types. Every
// query is bounded by group_id so records from other groups are invisible,
// indistinguishable from rows that do not exist.
type FinanceStore struct {
	db *sql.DB
}

func NewFinanceStore(db *sql.DB) *FinanceStore {
	return &FinanceStore{db: db}
}

// ============================================================================
// BILLS
// ============================================================================

func (s *FinanceStore) Bills(ctx context.Context, groupID string) ([]models.Bill, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, value, due_date, status, paid_date, group_id, COALESCE(user_id::text, ''), created_at
		FROM bills
		WHERE group_id = $1
		ORDER BY due_date ASC
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bills: %w", err)
	}
	defer rows.Close()

	bills := []models.Bill{}
	for rows.Next() {
		var b models.Bill
		var paidDate sql.NullTime
		if err := rows.Scan(&b.ID, &b.Name, &b.Value, &b.DueDate, &b.Status, &paidDate, &b.GroupID, &b.UserID, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		if paidDate.Valid {
			t := paidDate.Time
			b.PaidDate = &t
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (s *FinanceStore) CreateBill(ctx context.Context, groupID, userID string, req models.CreateBillRequest) (*models.Bill, error) {
	status := req.Status
	if status == "" {
		status = models.StatusPending
	}

	var b models.Bill
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO bills (name, value, due_date, status, group_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, value, due_date, status, group_id, COALESCE(user_id::text, ''), created_at
	`, req.Name, req.Value, req.DueDate, status, groupID, userID).Scan(
		&b.ID, &b.Name, &b.Value, &b.DueDate, &b.Status, &b.GroupID, &b.UserID, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}
	return &b, nil
}

func (s *FinanceStore) PayBill(ctx context.Context, groupID, billID string) (*models.Bill, error) {
	var b models.Bill
	var paidDate sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		UPDATE bills SET status = 'paid', paid_date = NOW()
		WHERE id = $1 AND group_id = $2
		RETURNING id, name, value, due_date, status, paid_date, group_id, COALESCE(user_id::text, ''), created_at
	`, billID, groupID).Scan(
		&b.ID, &b.Name, &b.Value, &b.DueDate, &b.Status, &paidDate, &b.GroupID, &b.UserID, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pay bill: %w", err)
	}
	if paidDate.Valid {
		t := paidDate.Time
		b.PaidDate = &t
	}
	return &b, nil
}

func (s *FinanceStore) DeleteBill(ctx context.Context, groupID, billID string) error {
	return s.deleteScoped(ctx, "bills", groupID, billID)
}

// ============================================================================
// INCOMES
// ============================================================================

func (s *FinanceStore) Incomes(ctx context.Context, groupID string) ([]models.Income, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, value, date, group_id, COALESCE(user_id::text, ''), created_at
		FROM incomes
		WHERE group_id = $1
		ORDER BY date DESC
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch incomes: %w", err)
	}
	defer rows.Close()

	incomes := []models.Income{}
	for rows.Next() {
		var in models.Income
		if err := rows.Scan(&in.ID, &in.Description, &in.Value, &in.Date, &in.GroupID, &in.UserID, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, in)
	}
	return incomes, rows.Err()
}

func (s *FinanceStore) CreateIncome(ctx context.Context, groupID, userID string, req models.CreateIncomeRequest) (*models.Income, error) {
	var in models.Income
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO incomes (description, value, date, group_id, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, description, value, date, group_id, COALESCE(user_id::text, ''), created_at
	`, req.Description, req.Value, req.Date, groupID, userID).Scan(
		&in.ID, &in.Description, &in.Value, &in.Date, &in.GroupID, &in.UserID, &in.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create income: %w", err)
	}
	return &in, nil
}

func (s *FinanceStore) DeleteIncome(ctx context.Context, groupID, incomeID string) error {
	return s.deleteScoped(ctx, "incomes", groupID, incomeID)
}

// ============================================================================
// RANDOM EXPENSES
// ============================================================================

func (s *FinanceStore) RandomExpenses(ctx context.Context, groupID string) ([]models.RandomExpense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, value, date, status, paid_date, group_id, COALESCE(user_id::text, ''), created_at
		FROM random_expenses
		WHERE group_id = $1
		ORDER BY date DESC
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch random expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.RandomExpense{}
	for rows.Next() {
		var e models.RandomExpense
		var paidDate sql.NullTime
		if err := rows.Scan(&e.ID, &e.Name, &e.Value, &e.Date, &e.Status, &paidDate, &e.GroupID, &e.UserID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan random expense: %w", err)
		}
		if paidDate.Valid {
			t := paidDate.Time
			e.PaidDate = &t
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (s *FinanceStore) CreateRandomExpense(ctx context.Context, groupID, userID string, req models.CreateRandomExpenseRequest) (*models.RandomExpense, error) {
	// Gastos avulsos já saíram do bolso na maioria dos casos
	status := req.Status
	if status == "" {
		status = models.StatusPaid
	}

	var e models.RandomExpense
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO random_expenses (name, value, date, status, group_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, value, date, status, group_id, COALESCE(user_id::text, ''), created_at
	`, req.Name, req.Value, req.Date, status, groupID, userID).Scan(
		&e.ID, &e.Name, &e.Value, &e.Date, &e.Status, &e.GroupID, &e.UserID, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create random expense: %w", err)
	}
	return &e, nil
}

func (s *FinanceStore) PayRandomExpense(ctx context.Context, groupID, expenseID string) (*models.RandomExpense, error) {
	var e models.RandomExpense
	var paidDate sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		UPDATE random_expenses SET status = 'paid', paid_date = NOW()
		WHERE id = $1 AND group_id = $2
		RETURNING id, name, value, date, status, paid_date, group_id, COALESCE(user_id::text, ''), created_at
	`, expenseID, groupID).Scan(
		&e.ID, &e.Name, &e.Value, &e.Date, &e.Status, &paidDate, &e.GroupID, &e.UserID, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pay random expense: %w", err)
	}
	if paidDate.Valid {
		t := paidDate.Time
		e.PaidDate = &t
	}
	return &e, nil
}

func (s *FinanceStore) DeleteRandomExpense(ctx context.Context, groupID, expenseID string) error {
	return s.deleteScoped(ctx, "random_expenses", groupID, expenseID)
}

// ============================================================================
// INVESTMENTS
// ============================================================================

func (s *FinanceStore) Investments(ctx context.Context, groupID string) ([]models.Investment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, initial_amount, cdi_percent, start_date, duration_months, group_id, COALESCE(user_id::text, ''), created_at
		FROM investments
		WHERE group_id = $1
		ORDER BY created_at DESC
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch investments: %w", err)
	}
	defer rows.Close()

	investments := []models.Investment{}
	for rows.Next() {
		var inv models.Investment
		if err := rows.Scan(&inv.ID, &inv.Name, &inv.InitialAmount, &inv.CDIPercent, &inv.StartDate, &inv.DurationMonths, &inv.GroupID, &inv.UserID, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		inv.ProjectedAmount = CalculateInvestmentReturn(inv.InitialAmount, inv.CDIPercent, inv.DurationMonths)
		inv.ProjectedYield = inv.ProjectedAmount - inv.InitialAmount
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}

func (s *FinanceStore) CreateInvestment(ctx context.Context, groupID, userID string, req models.CreateInvestmentRequest) (*models.Investment, error) {
	var inv models.Investment
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO investments (name, initial_amount, cdi_percent, start_date, duration_months, group_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, initial_amount, cdi_percent, start_date, duration_months, group_id, COALESCE(user_id::text, ''), created_at
	`, req.Name, req.InitialAmount, req.CDIPercent, req.StartDate, req.DurationMonths, groupID, userID).Scan(
		&inv.ID, &inv.Name, &inv.InitialAmount, &inv.CDIPercent, &inv.StartDate, &inv.DurationMonths, &inv.GroupID, &inv.UserID, &inv.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}
	inv.ProjectedAmount = CalculateInvestmentReturn(inv.InitialAmount, inv.CDIPercent, inv.DurationMonths)
	inv.ProjectedYield = inv.ProjectedAmount - inv.InitialAmount
	return &inv, nil
}

func (s *FinanceStore) DeleteInvestment(ctx context.Context, groupID, investmentID string) error {
	return s.deleteScoped(ctx, "investments", groupID, investmentID)
}

// ============================================================================
// HELPERS
// ============================================================================

var allowedTables = map[string]bool{
	"bills":           true,
	"incomes":         true,
	"random_expenses": true,
	"investments":     true,
}

func (s *FinanceStore) deleteScoped(ctx context.Context, table, groupID, recordID string) error {
	if !allowedTables[table] {
		return fmt.Errorf("unknown table %q", table)
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM `+table+` WHERE id = $1 AND group_id = $2`, recordID, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
