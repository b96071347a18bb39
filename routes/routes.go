package routes

import (
	"database/sql"

	"github.com/DyoneNunes/controlefinanceiro/handlers"
	"github.com/DyoneNunes/controlefinanceiro/middleware"
	"github.com/DyoneNunes/controlefinanceiro/services"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.POST("/auth/signup", authHandler.Signup)
	rg.POST("/auth/login", authHandler.Login)

	// Validation du token pour le frontend
	validate := rg.Group("/")
	validate.Use(middleware.AuthMiddleware())
	validate.GET("/auth/validate", authHandler.Validate)
}

// SetupUserRoutes sets up protected user routes.
func SetupUserRoutes(rg *gin.RouterGroup, db *sql.DB) {
	userHandler := &handlers.UserHandler{DB: db}

	rg.GET("/user/profile", userHandler.GetProfile)
	rg.POST("/user/password", userHandler.ChangePassword)
	rg.POST("/user/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/user/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/user/2fa/disable", userHandler.DisableTOTP)
	rg.DELETE("/user/account", userHandler.DeleteAccount)
}

// SetupGroupRoutes sets up group management routes.
func SetupGroupRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	groupHandler := &handlers.GroupHandler{DB: db, WS: ws}

	rg.GET("/groups", groupHandler.ListGroups)
	rg.POST("/groups", groupHandler.CreateGroup)
	rg.GET("/groups/:id", groupHandler.GetGroup)
	rg.PUT("/groups/:id", groupHandler.RenameGroup)
	rg.DELETE("/groups/:id", groupHandler.DeleteGroup)
	rg.GET("/groups/:id/members", groupHandler.ListMembers)
	rg.POST("/groups/:id/invite", groupHandler.InviteMember)
}

// SetupFinanceRoutes sets up the group-scoped finance routes. Every route
// here requires a valid X-Group-ID header and group membership.
func SetupFinanceRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	h := &handlers.FinanceHandler{
		Store: services.NewFinanceStore(db),
		WS:    ws,
	}

	scoped := rg.Group("/")
	scoped.Use(middleware.RequireGroupAccess(middleware.DBRoleLookup(db)))
	{
		scoped.GET("/bills", h.ListBills)
		scoped.POST("/bills", h.CreateBill)
		scoped.PATCH("/bills/:id/pay", h.PayBill)
		scoped.DELETE("/bills/:id", h.DeleteBill)

		scoped.GET("/incomes", h.ListIncomes)
		scoped.POST("/incomes", h.CreateIncome)
		scoped.DELETE("/incomes/:id", h.DeleteIncome)

		scoped.GET("/expenses", h.ListRandomExpenses)
		scoped.POST("/expenses", h.CreateRandomExpense)
		scoped.PATCH("/expenses/:id/pay", h.PayRandomExpense)
		scoped.DELETE("/expenses/:id", h.DeleteRandomExpense)

		scoped.GET("/investments", h.ListInvestments)
		scoped.POST("/investments", h.CreateInvestment)
		scoped.DELETE("/investments/:id", h.DeleteInvestment)
		scoped.POST("/investments/simulate", h.SimulateInvestment)

		scoped.GET("/stats", h.GetStats)
	}
}

// SetupAdvisorRoutes sets up the AI advisor route.
func SetupAdvisorRoutes(rg *gin.RouterGroup, db *sql.DB, cache services.Cache) {
	advisorHandler := &handlers.AdvisorHandler{
		Advisor: services.NewAdvisor(services.NewFinanceStore(db), cache, services.NewGeminiAIService()),
	}

	scoped := rg.Group("/")
	scoped.Use(middleware.RequireGroupAccess(middleware.DBRoleLookup(db)))
	scoped.POST("/advisor", advisorHandler.GetAdvice)
}
