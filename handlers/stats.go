package handlers

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/DyoneNunes/controlefinanceiro/middleware"
	"github.com/DyoneNunes/controlefinanceiro/models"
	"github.com/DyoneNunes/controlefinanceiro/services"
	"github.com/gin-gonic/gin"
)

// GetStats renvoie le tableau de bord du mois demande (par defaut le mois
// courant) ainsi que le cumul annuel. Une section en erreur est remplacee
// par des zeros et signalee dans "degraded" plutot que de faire echouer
// toute la reponse.
func (h *FinanceHandler) GetStats(c *gin.Context) {
	groupID := middleware.GetGroupID(c)
	ctx := c.Request.Context()

	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if m := c.Query("month"); m != "" {
		if v, err := strconv.Atoi(m); err == nil && v >= 1 && v <= 12 {
			month = v
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
			return
		}
	}
	if y := c.Query("year"); y != "" {
		if v, err := strconv.Atoi(y); err == nil && v >= 1970 {
			year = v
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
	}

	viewDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)

	var (
		wg          sync.WaitGroup
		bills       []models.Bill
		incomes     []models.Income
		expenses    []models.RandomExpense
		investments []models.Investment

		mu       sync.Mutex
		degraded []string
	)

	fail := func(section string) {
		mu.Lock()
		degraded = append(degraded, section)
		mu.Unlock()
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		var err error
		if bills, err = h.Store.Bills(ctx, groupID); err != nil {
			fail("bills")
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if incomes, err = h.Store.Incomes(ctx, groupID); err != nil {
			fail("incomes")
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if expenses, err = h.Store.RandomExpenses(ctx, groupID); err != nil {
			fail("expenses")
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if investments, err = h.Store.Investments(ctx, groupID); err != nil {
			fail("investments")
		}
	}()
	wg.Wait()

	services.ApplyBillStatus(bills, now)
	services.ApplyExpenseStatus(expenses, now)

	payload := gin.H{
		"month":   month,
		"year":    year,
		"monthly": services.BuildDashboardStats(bills, incomes, expenses, investments, viewDate),
		"yearly":  services.BuildYearlyStats(bills, incomes, expenses, investments, year),
	}
	if len(degraded) > 0 {
		payload["degraded"] = degraded
	}

	c.JSON(http.StatusOK, payload)
}
