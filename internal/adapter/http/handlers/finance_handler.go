package handlers

import (
	"errors"
	"net/http"

	"mimo_finance/internal/adapter/export"
	response "mimo_finance/internal/adapter/http/dto/response"
	"mimo_finance/internal/usecase"
	"mimo_finance/pkg"
	"mimo_finance/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FinanceHandler serves the read side: calendars, rankings, breakdowns and
// partner wallets.
type FinanceHandler struct {
	usecase usecase.IFinanceUseCase
	log     *zap.Logger
}

func NewFinanceHandler(uc usecase.IFinanceUseCase, log *zap.Logger) *FinanceHandler {
	return &FinanceHandler{usecase: uc, log: logger.OrNop(log)}
}

// GetWeek returns the business week containing date (default: today).
// @Summary Business week containing a date
// @Tags calendar
// @Param date query string false "YYYY-MM-DD"
// @Success 200 {object} response.WeekResponse
// @Router /calendar/week [get]
func (h *FinanceHandler) GetWeek(c *gin.Context) {
	week, err := h.usecase.Week(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.fail(c, "week", err)
		return
	}
	c.JSON(http.StatusOK, response.FromWeek(week))
}

// @Summary Business weeks of a month
// @Tags calendar
// @Param month query string false "YYYY-MM"
// @Success 200 {array} response.WeekResponse
// @Router /calendar/weeks [get]
func (h *FinanceHandler) GetMonthWeeks(c *gin.Context) {
	weeks, err := h.usecase.MonthWeeks(c.Request.Context(), c.Query("month"))
	if err != nil {
		h.fail(c, "month-weeks", err)
		return
	}
	c.JSON(http.StatusOK, response.FromWeeks(weeks))
}

// @Summary Partner ranking for a week or a month
// @Tags finance
// @Param week query string false "YYYY-MM-DD"
// @Param month query string false "YYYY-MM"
// @Success 200 {object} response.PartnerRankingResponse
// @Router /finance/partners [get]
func (h *FinanceHandler) GetPartnerRanking(c *gin.Context) {
	q := usecase.PeriodQuery{Week: c.Query("week"), Month: c.Query("month")}
	ranking, err := h.usecase.PartnerRanking(c.Request.Context(), q)
	if err != nil {
		h.fail(c, "partners", err)
		return
	}
	c.JSON(http.StatusOK, response.FromPartnerRanking(ranking))
}

// @Summary Client breakdown for a week
// @Tags finance
// @Param week query string false "YYYY-MM-DD"
// @Success 200 {object} response.ClientBreakdownResponse
// @Router /finance/clients [get]
func (h *FinanceHandler) GetClientBreakdown(c *gin.Context) {
	breakdown, err := h.usecase.ClientBreakdown(c.Request.Context(), c.Query("week"))
	if err != nil {
		h.fail(c, "clients", err)
		return
	}
	c.JSON(http.StatusOK, response.FromClientBreakdown(breakdown))
}

// @Summary Month overview
// @Tags finance
// @Param month path string true "YYYY-MM"
// @Success 200 {object} response.MonthOverviewResponse
// @Router /finance/months/{month} [get]
func (h *FinanceHandler) GetMonthOverview(c *gin.Context) {
	overview, err := h.usecase.MonthOverview(c.Request.Context(), c.Param("month"))
	if err != nil {
		h.fail(c, "month", err)
		return
	}
	c.JSON(http.StatusOK, response.FromMonthOverview(overview))
}

// ExportMonthOverview downloads the month overview and partner ranking as XLSX.
// @Summary Month overview spreadsheet
// @Tags finance
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param month path string true "YYYY-MM"
// @Success 200 {file} file
// @Router /finance/months/{month}/export [get]
func (h *FinanceHandler) ExportMonthOverview(c *gin.Context) {
	ctx := c.Request.Context()
	month := c.Param("month")

	overview, err := h.usecase.MonthOverview(ctx, month)
	if err != nil {
		h.fail(c, "month-export", err)
		return
	}
	ranking, err := h.usecase.PartnerRanking(ctx, usecase.PeriodQuery{Month: month})
	if err != nil {
		h.fail(c, "month-export", err)
		return
	}

	b, err := export.MonthWorkbook(overview, ranking.Partners)
	if err != nil {
		h.fail(c, "month-export", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.FileName(overview.Year, overview.Month)+`"`)
	c.Data(http.StatusOK, export.ContentTypeXLSX, b)
}

// @Summary Payment status of every known service
// @Tags finance
// @Success 200 {object} map[string]response.ServiceStatusResponse
// @Router /finance/services/status [get]
func (h *FinanceHandler) GetServiceStatuses(c *gin.Context) {
	statuses, err := h.usecase.ServiceStatuses(c.Request.Context())
	if err != nil {
		h.fail(c, "service-statuses", err)
		return
	}
	c.JSON(http.StatusOK, response.FromServiceStatuses(statuses))
}

// @Summary Payment with its resolved lines
// @Tags payments
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} response.PaymentLinesResponse
// @Router /payments/{payment_id}/lines [get]
func (h *FinanceHandler) GetPaymentLines(c *gin.Context) {
	lines, err := h.usecase.PaymentLines(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		h.fail(c, "payment-lines", err)
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentLines(lines))
}

// @Summary Legal actions for a payment
// @Tags payments
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} response.ActionsResponse
// @Router /payments/{payment_id}/actions [get]
func (h *FinanceHandler) GetPaymentActions(c *gin.Context) {
	actions, err := h.usecase.PaymentActions(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		h.fail(c, "payment-actions", err)
		return
	}
	c.JSON(http.StatusOK, response.FromActions(actions))
}

// @Summary Partner wallet
// @Tags partners
// @Param partner_id path string true "Partner ID"
// @Success 200 {object} response.PartnerWalletResponse
// @Router /partners/{partner_id}/wallet [get]
func (h *FinanceHandler) GetPartnerWallet(c *gin.Context) {
	wallet, err := h.usecase.PartnerWallet(c.Request.Context(), c.Param("partner_id"))
	if err != nil {
		h.fail(c, "wallet", err)
		return
	}
	c.JSON(http.StatusOK, response.FromPartnerWallet(wallet))
}

func (h *FinanceHandler) fail(c *gin.Context, op string, err error) {
	appErr := mapFinanceError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.log.Error("[finance][handler] request failed", zap.String("op", op), zap.Error(err))
	} else {
		h.log.Info("[finance][handler] request rejected", zap.String("op", op), zap.Error(err))
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapFinanceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidDate):
		return pkg.NewDomainErrorSimple("INVALID_DATE", "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidMonth):
		return pkg.NewDomainErrorSimple("INVALID_MONTH", "Invalid month, expected YYYY-MM", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPeriod):
		return pkg.NewDomainErrorSimple("INVALID_PERIOD", "Exactly one of week or month is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPartnerID), errors.Is(err, usecase.ErrInvalidPaymentID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrSnapshotUnavailable):
		return pkg.NewDomainError("FINANCE_DATA_UNAVAILABLE", "Finance data is temporarily unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
