package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DyoneNunes/controlefinanceiro/models"
	"github.com/DyoneNunes/controlefinanceiro/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ============================================================================
// FAKE STORE
// ============================================================================

type fakeFinanceStore struct {
	bills       []models.Bill
	incomes     []models.Income
	expenses    []models.RandomExpense
	investments []models.Investment

	billsErr       error
	incomesErr     error
	expensesErr    error
	investmentsErr error
}

func (f *fakeFinanceStore) Bills(ctx context.Context, groupID string) ([]models.Bill, error) {
	return f.bills, f.billsErr
}

func (f *fakeFinanceStore) CreateBill(ctx context.Context, groupID, userID string, req models.CreateBillRequest) (*models.Bill, error) {
	return &models.Bill{Name: req.Name, Value: req.Value, DueDate: req.DueDate, Status: models.StatusPending, GroupID: groupID, UserID: userID}, nil
}

func (f *fakeFinanceStore) PayBill(ctx context.Context, groupID, billID string) (*models.Bill, error) {
	return nil, services.ErrNotFound
}

func (f *fakeFinanceStore) DeleteBill(ctx context.Context, groupID, billID string) error {
	return services.ErrNotFound
}

func (f *fakeFinanceStore) Incomes(ctx context.Context, groupID string) ([]models.Income, error) {
	return f.incomes, f.incomesErr
}

func (f *fakeFinanceStore) CreateIncome(ctx context.Context, groupID, userID string, req models.CreateIncomeRequest) (*models.Income, error) {
	return &models.Income{Description: req.Description, Value: req.Value, Date: req.Date, GroupID: groupID, UserID: userID}, nil
}

func (f *fakeFinanceStore) DeleteIncome(ctx context.Context, groupID, incomeID string) error {
	return services.ErrNotFound
}

func (f *fakeFinanceStore) RandomExpenses(ctx context.Context, groupID string) ([]models.RandomExpense, error) {
	return f.expenses, f.expensesErr
}

func (f *fakeFinanceStore) CreateRandomExpense(ctx context.Context, groupID, userID string, req models.CreateRandomExpenseRequest) (*models.RandomExpense, error) {
	return &models.RandomExpense{Name: req.Name, Value: req.Value, Date: req.Date, Status: models.StatusPaid, GroupID: groupID, UserID: userID}, nil
}

func (f *fakeFinanceStore) PayRandomExpense(ctx context.Context, groupID, expenseID string) (*models.RandomExpense, error) {
	return nil, services.ErrNotFound
}

func (f *fakeFinanceStore) DeleteRandomExpense(ctx context.Context, groupID, expenseID string) error {
	return services.ErrNotFound
}

func (f *fakeFinanceStore) Investments(ctx context.Context, groupID string) ([]models.Investment, error) {
	return f.investments, f.investmentsErr
}

func (f *fakeFinanceStore) CreateInvestment(ctx context.Context, groupID, userID string, req models.CreateInvestmentRequest) (*models.Investment, error) {
	return &models.Investment{Name: req.Name, InitialAmount: req.InitialAmount, CDIPercent: req.CDIPercent, StartDate: req.StartDate, DurationMonths: req.DurationMonths, GroupID: groupID, UserID: userID}, nil
}

func (f *fakeFinanceStore) DeleteInvestment(ctx context.Context, groupID, investmentID string) error {
	return services.ErrNotFound
}

func financeRouter(store FinanceStore) *gin.Engine {
	h := &FinanceHandler{Store: store}
	r := gin.New()
	r.GET("/bills", h.ListBills)
	r.PATCH("/bills/:id/pay", h.PayBill)
	r.GET("/expenses", h.ListRandomExpenses)
	r.GET("/stats", h.GetStats)
	return r
}

func doJSON(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ============================================================================
// READ PATH: STATUS DERIVED, NOT ECHOED
// ============================================================================

func TestListBillsRederivesStatusFromDates(t *testing.T) {
	now := time.Now()
	store := &fakeFinanceStore{
		bills: []models.Bill{
			// Stored as pending but the due date has passed
			{Name: "luz", Value: 180, Status: models.StatusPending, DueDate: now.AddDate(0, 0, -3)},
			// Stored as overdue but the due date is still ahead
			{Name: "internet", Value: 100, Status: models.StatusOverdue, DueDate: now.AddDate(0, 0, 5)},
			// Marked paid without a paid date: stays paid
			{Name: "aluguel", Value: 1500, Status: models.StatusPaid, DueDate: now.AddDate(0, 0, -10)},
		},
	}

	w := doJSON(financeRouter(store), "GET", "/bills")
	require.Equal(t, http.StatusOK, w.Code)

	var bills []models.Bill
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bills))
	require.Len(t, bills, 3)

	assert.Equal(t, models.StatusOverdue, bills[0].Status, "past due date must override the stored pending")
	assert.Equal(t, models.StatusPending, bills[1].Status, "future due date must override the stored overdue")
	assert.Equal(t, models.StatusPaid, bills[2].Status)
}

func TestListExpensesRederivesStatusFromDates(t *testing.T) {
	now := time.Now()
	store := &fakeFinanceStore{
		expenses: []models.RandomExpense{
			{Name: "mercado", Value: 250, Status: models.StatusPending, Date: now.AddDate(0, 0, -1)},
			{Name: "farmacia", Value: 60, Status: models.StatusPaid, Date: now.AddDate(0, 0, -1)},
		},
	}

	w := doJSON(financeRouter(store), "GET", "/expenses")
	require.Equal(t, http.StatusOK, w.Code)

	var expenses []models.RandomExpense
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &expenses))
	require.Len(t, expenses, 2)

	assert.Equal(t, models.StatusOverdue, expenses[0].Status)
	assert.Equal(t, models.StatusPaid, expenses[1].Status)
}

func TestPayBillUnknownRecordIs404(t *testing.T) {
	w := doJSON(financeRouter(&fakeFinanceStore{}), "PATCH", "/bills/ffffffff-ffff-ffff-ffff-ffffffffffff/pay")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ============================================================================
// STATS: PER-SECTION DEGRADATION
// ============================================================================

type statsPayload struct {
	Month    int                   `json:"month"`
	Year     int                   `json:"year"`
	Monthly  models.DashboardStats `json:"monthly"`
	Yearly   models.YearlyStats    `json:"yearly"`
	Degraded []string              `json:"degraded"`
}

func TestGetStatsSectionFailureDegradesInsteadOf500(t *testing.T) {
	store := &fakeFinanceStore{
		incomes:  []models.Income{{Description: "salario", Value: 7000, Date: time.Now()}},
		billsErr: errors.New("connection refused"),
	}

	w := doJSON(financeRouter(store), "GET", "/stats")
	require.Equal(t, http.StatusOK, w.Code, "a single failed section must not fail the request")

	var payload statsPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	assert.Equal(t, []string{"bills"}, payload.Degraded)
	assert.Equal(t, 7000.0, payload.Monthly.IncomeTotal, "healthy sections keep their values")
	assert.Zero(t, payload.Monthly.PaidTotal, "the failed section reports zeros")
	assert.Zero(t, payload.Monthly.OverdueTotal)
	assert.Zero(t, payload.Monthly.PaidCount)
}

func TestGetStatsHealthyResponseHasNoDegradedKey(t *testing.T) {
	now := time.Now()
	paid := now
	store := &fakeFinanceStore{
		bills:   []models.Bill{{Name: "aluguel", Value: 200, Status: models.StatusPaid, DueDate: now, PaidDate: &paid}},
		incomes: []models.Income{{Description: "salario", Value: 7000, Date: now}},
	}

	w := doJSON(financeRouter(store), "GET", "/stats")
	require.Equal(t, http.StatusOK, w.Code)

	assert.NotContains(t, w.Body.String(), "degraded")

	var payload statsPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, 200.0, payload.Monthly.PaidTotal)
	assert.Equal(t, 7000.0, payload.Monthly.IncomeTotal)
}

func TestGetStatsRejectsInvalidMonth(t *testing.T) {
	w := doJSON(financeRouter(&fakeFinanceStore{}), "GET", "/stats?month=13")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
