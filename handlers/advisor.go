package handlers

import (
	"log"
	"net/http"

	"github.com/DyoneNunes/controlefinanceiro/middleware"
	"github.com/DyoneNunes/controlefinanceiro/services"
	"github.com/DyoneNunes/controlefinanceiro/utils"
	"github.com/gin-gonic/gin"
)

type AdvisorHandler struct {
	Advisor *services.Advisor
}

// GetAdvice produit (ou ressort du cache) le conseil financier du groupe.
// Contrairement aux stats, tout echec ici est fatal: un conseil partiel
// serait trompeur.
func (h *AdvisorHandler) GetAdvice(c *gin.Context) {
	groupID := middleware.GetGroupID(c)

	advice, err := h.Advisor.Advise(c.Request.Context(), groupID)
	if err != nil {
		log.Printf("❌ Advisor error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate financial advice"})
		return
	}

	action := "generated"
	if advice.Cached {
		action = "cache_hit"
	}
	utils.LogAdvisorAction(action, groupID, len(advice.Advice.PontosAtencao))

	c.JSON(http.StatusOK, advice)
}
