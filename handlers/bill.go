package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/DyoneNunes/controlefinanceiro/middleware"
	"github.com/DyoneNunes/controlefinanceiro/models"
	"github.com/DyoneNunes/controlefinanceiro/services"
	"github.com/gin-gonic/gin"
)

// FinanceStore is the storage surface the finance endpoints consume.
// Satisfied by *services.FinanceStore.
type FinanceStore interface {
	Bills(ctx context.Context, groupID string) ([]models.Bill, error)
	CreateBill(ctx context.Context, groupID, userID string, req models.CreateBillRequest) (*models.Bill, error)
	PayBill(ctx context.Context, groupID, billID string) (*models.Bill, error)
	DeleteBill(ctx context.Context, groupID, billID string) error

	Incomes(ctx context.Context, groupID string) ([]models.Income, error)
	CreateIncome(ctx context.Context, groupID, userID string, req models.CreateIncomeRequest) (*models.Income, error)
	DeleteIncome(ctx context.Context, groupID, incomeID string) error

	RandomExpenses(ctx context.Context, groupID string) ([]models.RandomExpense, error)
	CreateRandomExpense(ctx context.Context, groupID, userID string, req models.CreateRandomExpenseRequest) (*models.RandomExpense, error)
	PayRandomExpense(ctx context.Context, groupID, expenseID string) (*models.RandomExpense, error)
	DeleteRandomExpense(ctx context.Context, groupID, expenseID string) error

	Investments(ctx context.Context, groupID string) ([]models.Investment, error)
	CreateInvestment(ctx context.Context, groupID, userID string, req models.CreateInvestmentRequest) (*models.Investment, error)
	DeleteInvestment(ctx context.Context, groupID, investmentID string) error
}

// FinanceHandler regroupe les endpoints des donnees financieres d'un groupe.
// Toutes les routes passent par le middleware RequireGroupAccess.
type FinanceHandler struct {
	Store FinanceStore
	WS    *WSHandler
}

func (h *FinanceHandler) broadcast(c *gin.Context, groupID, updateType string) {
	if h.WS != nil {
		h.WS.BroadcastUpdate(groupID, updateType, middleware.GetUsername(c))
	}
}

func (h *FinanceHandler) ListBills(c *gin.Context) {
	groupID := middleware.GetGroupID(c)

	bills, err := h.Store.Bills(c.Request.Context(), groupID)
	if err != nil {
		log.Printf("Error fetching bills: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bills"})
		return
	}

	// Le statut est recalcule a la lecture, jamais persiste en masse
	services.ApplyBillStatus(bills, time.Now())

	c.JSON(http.StatusOK, bills)
}

func (h *FinanceHandler) CreateBill(c *gin.Context) {
	groupID := middleware.GetGroupID(c)
	userID := middleware.GetUserID(c)

	var req models.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill, err := h.Store.CreateBill(c.Request.Context(), groupID, userID, req)
	if err != nil {
		log.Printf("Error creating bill: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bill"})
		return
	}

	h.broadcast(c, groupID, "bill_created")
	c.JSON(http.StatusCreated, bill)
}

func (h *FinanceHandler) PayBill(c *gin.Context) {
	groupID := middleware.GetGroupID(c)
	billID := c.Param("id")

	bill, err := h.Store.PayBill(c.Request.Context(), groupID, billID)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
		return
	}
	if err != nil {
		log.Printf("Error paying bill: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pay bill"})
		return
	}

	h.broadcast(c, groupID, "bill_paid")
	c.JSON(http.StatusOK, bill)
}

func (h *FinanceHandler) DeleteBill(c *gin.Context) {
	groupID := middleware.GetGroupID(c)
	billID := c.Param("id")

	err := h.Store.DeleteBill(c.Request.Context(), groupID, billID)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
		return
	}
	if err != nil {
		log.Printf("Error deleting bill: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bill"})
		return
	}

	h.broadcast(c, groupID, "bill_deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted successfully"})
}
