package routes

import (
	"mimo_finance/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments = "/payments"
	PathImports  = "/imports"
)

func addPaymentRoutes(rg *gin.RouterGroup, financeHandler *handlers.FinanceHandler, paymentHandler *handlers.PaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("", paymentHandler.CreatePayment)
		payments.GET("/:payment_id/lines", financeHandler.GetPaymentLines)
		payments.PUT("/:payment_id/lines", paymentHandler.UpdateLines)
		payments.GET("/:payment_id/actions", financeHandler.GetPaymentActions)

		payments.PATCH("/:payment_id/share", paymentHandler.Share)
		payments.PATCH("/:payment_id/approve", paymentHandler.Approve)
		payments.PATCH("/:payment_id/decline", paymentHandler.Decline)
		payments.PATCH("/:payment_id/hold", paymentHandler.Hold)
		payments.PATCH("/:payment_id/resume", paymentHandler.Resume)
		payments.PATCH("/:payment_id/pay", paymentHandler.MarkPaid)

		payments.POST("/:payment_id/notes", paymentHandler.AddNote)
	}

	rg.POST(PathImports, paymentHandler.Import)
}
