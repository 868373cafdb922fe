package handlers

import (
	"errors"
	"io"
	"net/http"

	request "mimo_finance/internal/adapter/http/dto/request"
	response "mimo_finance/internal/adapter/http/dto/response"
	"mimo_finance/internal/adapter/ingest"
	"mimo_finance/internal/domain/calendar"
	"mimo_finance/internal/domain/lifecycle"
	"mimo_finance/internal/usecase"
	"mimo_finance/pkg"
	"mimo_finance/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errInvalidPaymentPayload = pkg.NewDomainErrorSimple("INVALID_PAYMENT_INPUT", "Invalid payment payload", http.StatusBadRequest)
	errInvalidImportPayload  = pkg.NewDomainErrorSimple("INVALID_IMPORT_INPUT", "Invalid import payload", http.StatusBadRequest)
)

// PaymentHandler handles the write side of weekly payments.
type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
	cal     calendar.Calendar
	decoder *ingest.Decoder
	log     *zap.Logger
}

func NewPaymentHandler(uc usecase.IPaymentUseCase, cal calendar.Calendar, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		usecase: uc,
		cal:     cal,
		decoder: ingest.NewDecoder(cal.Location()),
		log:     logger.OrNop(log),
	}
}

// @Summary Create a weekly payment
// @Tags payments
// @Param payload body request.CreatePaymentRequest true "Payment"
// @Success 201 {object} response.PaymentResponse
// @Router /payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var payload request.CreatePaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}
	cmd, err := payload.ToCommand(h.cal.ParseDate)
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_DATE", err.Error(), http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), cmd)
	if err != nil {
		h.fail(c, "create", "", err)
		return
	}
	h.log.Info("[payment][handler] created", zap.String("payment_id", created.ID), zap.String("partner_id", created.PartnerID))
	c.JSON(http.StatusCreated, response.FromPayment(created))
}

// @Summary Replace the lines of a payment
// @Tags payments
// @Param payment_id path string true "Payment ID"
// @Param payload body request.UpdateLinesRequest true "Lines"
// @Success 200 {object} response.PaymentResponse
// @Router /payments/{payment_id}/lines [put]
func (h *PaymentHandler) UpdateLines(c *gin.Context) {
	paymentID := c.Param("payment_id")
	var payload request.UpdateLinesRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	updated, err := h.usecase.UpdateLines(c.Request.Context(), paymentID, payload.ToCommand())
	if err != nil {
		h.fail(c, "update-lines", paymentID, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(updated))
}

// @Summary Share a payment with its partner
// @Tags payments
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} response.PaymentResponse
// @Router /payments/{payment_id}/share [patch]
func (h *PaymentHandler) Share(c *gin.Context) { h.apply(c, lifecycle.ActionShare) }

// @Summary Approve a shared payment
// @Tags payments
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} response.PaymentResponse
// @Router /payments/{payment_id}/approve [patch]
func (h *PaymentHandler) Approve(c *gin.Context) { h.apply(c, lifecycle.ActionApprove) }

// @Summary Decline a shared payment
// @Tags payments
// @Param payment_id path string true "Payment ID"
// @Param payload body request.ActionRequest true "Reason"
// @Success 200 {object} response.PaymentResponse
// @Router /payments/{payment_id}/decline [patch]
func (h *PaymentHandler) Decline(c *gin.Context) { h.apply(c, lifecycle.ActionDecline) }

// @Summary Put a payment on hold
// @Tags payments
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} response.PaymentResponse
// @Router /payments/{payment_id}/hold [patch]
func (h *PaymentHandler) Hold(c *gin.Context) { h.apply(c, lifecycle.ActionHold) }

// @Summary Resume a payment on hold
// @Tags payments
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} response.PaymentResponse
// @Router /payments/{payment_id}/resume [patch]
func (h *PaymentHandler) Resume(c *gin.Context) { h.apply(c, lifecycle.ActionResume) }

// @Summary Pay out an approved payment
// @Tags payments
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} response.PaymentResponse
// @Router /payments/{payment_id}/pay [patch]
func (h *PaymentHandler) MarkPaid(c *gin.Context) { h.apply(c, lifecycle.ActionMarkPaid) }

func (h *PaymentHandler) apply(c *gin.Context, action lifecycle.Action) {
	paymentID := c.Param("payment_id")

	// The body is optional; an empty one carries no note.
	var payload request.ActionRequest
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	updated, err := h.usecase.Apply(c.Request.Context(), paymentID, action, payload.ResolveNote())
	if err != nil {
		h.fail(c, string(action), paymentID, err)
		return
	}
	h.log.Info("[payment][handler] action applied",
		zap.String("payment_id", paymentID),
		zap.String("action", string(action)),
		zap.String("status", string(updated.Status)))
	c.JSON(http.StatusOK, response.FromPayment(updated))
}

// @Summary Append a note to a payment
// @Tags payments
// @Param payment_id path string true "Payment ID"
// @Param payload body request.NoteRequest true "Note"
// @Success 200 {object} response.PaymentResponse
// @Router /payments/{payment_id}/notes [post]
func (h *PaymentHandler) AddNote(c *gin.Context) {
	paymentID := c.Param("payment_id")
	var payload request.NoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	updated, err := h.usecase.AddNote(c.Request.Context(), paymentID, payload.Text)
	if err != nil {
		h.fail(c, "note", paymentID, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(updated))
}

// @Summary Bulk import payments and services
// @Tags imports
// @Param payload body request.ImportRequest true "Raw lists"
// @Success 200 {object} response.ImportResponse
// @Router /imports [post]
func (h *PaymentHandler) Import(c *gin.Context) {
	var payload request.ImportRequest
	if err := c.ShouldBindJSON(&payload); err != nil || payload.IsEmpty() {
		c.JSON(errInvalidImportPayload.HTTPStatus, errInvalidImportPayload.ToHTTPError())
		return
	}
	payments, services, err := payload.Decode(h.decoder)
	if err != nil {
		h.log.Info("[payment][handler] import payload rejected", zap.Error(err))
		c.JSON(errInvalidImportPayload.HTTPStatus, errInvalidImportPayload.ToHTTPError())
		return
	}

	result, err := h.usecase.Import(c.Request.Context(), payments, services)
	if err != nil {
		h.fail(c, "import", "", err)
		return
	}
	h.log.Info("[payment][handler] import done", zap.Int("payments", result.Payments), zap.Int("services", result.Services))
	c.JSON(http.StatusOK, response.FromImportResult(result))
}

func (h *PaymentHandler) fail(c *gin.Context, op, paymentID string, err error) {
	appErr := mapPaymentError(err)
	fields := []zap.Field{zap.String("op", op), zap.String("payment_id", paymentID), zap.Error(err)}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.log.Error("[payment][handler] request failed", fields...)
	} else {
		h.log.Info("[payment][handler] request rejected", fields...)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPartnerID), errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrNoServices), errors.Is(err, usecase.ErrInvalidAmount):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnknownService):
		return pkg.NewDomainErrorSimple("UNKNOWN_SERVICE", err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrReasonRequired):
		return pkg.NewDomainErrorSimple("REASON_REQUIRED", "A reason is required to decline a payment", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEmptyNote):
		return pkg.NewDomainErrorSimple("EMPTY_NOTE", "Note text is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrServiceAlreadyLinked):
		return pkg.NewDomainErrorSimple("SERVICE_ALREADY_LINKED", err.Error(), http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotModifiable):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_MODIFIABLE", "Payment lines can no longer change", http.StatusConflict)
	case errors.Is(err, usecase.ErrIllegalTransition):
		return pkg.NewDomainErrorSimple("ILLEGAL_TRANSITION", "Action not allowed in the current status", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_BAD_REQUEST", "Payment provider rejected the payout", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPayoutRejected):
		return pkg.NewDomainErrorSimple("PAYOUT_REJECTED", "Payout rejected by the payment provider", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotAvailable):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrSnapshotUnavailable):
		return pkg.NewDomainError("FINANCE_DATA_UNAVAILABLE", "Finance data is temporarily unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
