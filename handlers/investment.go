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

func (h *FinanceHandler) ListInvestments(c *gin.Context) {
	groupID := middleware.GetGroupID(c)

	investments, err := h.Store.Investments(c.Request.Context(), groupID)
	if err != nil {
		log.Printf("Error fetching investments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch investments"})
		return
	}

	c.JSON(http.StatusOK, investments)
}

func (h *FinanceHandler) CreateInvestment(c *gin.Context) {
	groupID := middleware.GetGroupID(c)
	userID := middleware.GetUserID(c)

	var req models.CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	investment, err := h.Store.CreateInvestment(c.Request.Context(), groupID, userID, req)
	if err != nil {
		log.Printf("Error creating investment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create investment"})
		return
	}

	h.broadcast(c, groupID, "investment_created")
	c.JSON(http.StatusCreated, investment)
}

func (h *FinanceHandler) DeleteInvestment(c *gin.Context) {
	groupID := middleware.GetGroupID(c)
	investmentID := c.Param("id")

	err := h.Store.DeleteInvestment(c.Request.Context(), groupID, investmentID)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Investment not found"})
		return
	}
	if err != nil {
		log.Printf("Error deleting investment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete investment"})
		return
	}

	h.broadcast(c, groupID, "investment_deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Investment deleted successfully"})
}

// SimulateInvestment projette un montant sans rien persister.
type SimulateInvestmentRequest struct {
	InitialAmount  float64 `json:"initial_amount" binding:"required,gt=0"`
	CDIPercent     float64 `json:"cdi_percent" binding:"required,gt=0"`
	DurationMonths int     `json:"duration_months" binding:"required,gte=1"`
}

func (h *FinanceHandler) SimulateInvestment(c *gin.Context) {
	var req SimulateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	projected := services.CalculateInvestmentReturn(req.InitialAmount, req.CDIPercent, req.DurationMonths)

	c.JSON(http.StatusOK, gin.H{
		"initial_amount":   req.InitialAmount,
		"projected_amount": projected,
		"projected_yield":  projected - req.InitialAmount,
		"annual_cdi_rate":  services.CDIAnnualRate,
	})
}
