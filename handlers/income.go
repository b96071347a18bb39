package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/DyoneNunes/controlefinanceiro/middleware"
	"github.com/DyoneNunes/controlefinanceiro/models"
	"github.com/DyoneNunes/controlefinanceiro/services"
	"github.com/gin-gonic/gin"
)

func (h *FinanceHandler) ListIncomes(c *gin.Context) {
	groupID := middleware.GetGroupID(c)

	incomes, err := h.Store.Incomes(c.Request.Context(), groupID)
	if err != nil {
		log.Printf("Error fetching incomes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch incomes"})
		return
	}

	c.JSON(http.StatusOK, incomes)
}

func (h *FinanceHandler) CreateIncome(c *gin.Context) {
	groupID := middleware.GetGroupID(c)
	userID := middleware.GetUserID(c)

	var req models.CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	income, err := h.Store.CreateIncome(c.Request.Context(), groupID, userID, req)
	if err != nil {
		log.Printf("Error creating income: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create income"})
		return
	}

	h.broadcast(c, groupID, "income_created")
	c.JSON(http.StatusCreated, income)
}

func (h *FinanceHandler) DeleteIncome(c *gin.Context) {
	groupID := middleware.GetGroupID(c)
	incomeID := c.Param("id")

	err := h.Store.DeleteIncome(c.Request.Context(), groupID, incomeID)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Income not found"})
		return
	}
	if err != nil {
		log.Printf("Error deleting income: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete income"})
		return
	}

	h.broadcast(c, groupID, "income_deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Income deleted successfully"})
}
