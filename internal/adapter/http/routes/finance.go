package routes

import (
	"mimo_finance/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathCalendar = "/calendar"
	PathFinance  = "/finance"
	PathPartners = "/partners"
)

func addFinanceRoutes(rg *gin.RouterGroup, financeHandler *handlers.FinanceHandler) {
	calendar := rg.Group(PathCalendar)
	{
		calendar.GET("/week", financeHandler.GetWeek)
		calendar.GET("/weeks", financeHandler.GetMonthWeeks)
	}

	finance := rg.Group(PathFinance)
	{
		finance.GET("/partners", financeHandler.GetPartnerRanking)
		finance.GET("/clients", financeHandler.GetClientBreakdown)
		finance.GET("/months/:month", financeHandler.GetMonthOverview)
		finance.GET("/months/:month/export", financeHandler.ExportMonthOverview)
		finance.GET("/services/status", financeHandler.GetServiceStatuses)
	}

	partners := rg.Group(PathPartners)
	{
		partners.GET("/:partner_id/wallet", financeHandler.GetPartnerWallet)
	}
}
