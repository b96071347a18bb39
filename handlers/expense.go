package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/DyoneNunes/controlefinanceiro/middleware"
	"github.com/DyoneNunes/controlefinanceiro/models"
	"github.com/DyoneNunes/controlefinanceiro/services"
	"github.com/gin-gonic/gin"
)

func (h *FinanceHandler) ListRandomExpenses(c *gin.Context) {
	groupID := middleware.GetGroupID(c)

	expenses, err := h.Store.RandomExpenses(c.Request.Context(), groupID)
	if err != nil {
		log.Printf("Error fetching expenses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
		return
	}

	services.ApplyExpenseStatus(expenses, time.Now())

	c.JSON(http.StatusOK, expenses)
}

func (h *FinanceHandler) CreateRandomExpense(c *gin.Context) {
	groupID := middleware.GetGroupID(c)
	userID := middleware.GetUserID(c)

	var req models.CreateRandomExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.Store.CreateRandomExpense(c.Request.Context(), groupID, userID, req)
	if err != nil {
		log.Printf("Error creating expense: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		return
	}

	h.broadcast(c, groupID, "expense_created")
	c.JSON(http.StatusCreated, expense)
}

func (h *FinanceHandler) PayRandomExpense(c *gin.Context) {
	groupID := middleware.GetGroupID(c)
	expenseID := c.Param("id")

	expense, err := h.Store.PayRandomExpense(c.Request.Context(), groupID, expenseID)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}
	if err != nil {
		log.Printf("Error paying expense: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pay expense"})
		return
	}

	h.broadcast(c, groupID, "expense_paid")
	c.JSON(http.StatusOK, expense)
}

func (h *FinanceHandler) DeleteRandomExpense(c *gin.Context) {
	groupID := middleware.GetGroupID(c)
	expenseID := c.Param("id")

	err := h.Store.DeleteRandomExpense(c.Request.Context(), groupID, expenseID)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}
	if err != nil {
		log.Printf("Error deleting expense: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		return
	}

	h.broadcast(c, groupID, "expense_deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
