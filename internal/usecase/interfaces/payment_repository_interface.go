package interfaces

import (
	"context"
	"errors"
	"time"

	"mimo_finance/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// ErrConditionFailed is returned when a conditional write finds the record in
// an unexpected state.
var ErrConditionFailed = errors.New("condition failed")

// StatusUpdate moves a payment to To, only if its current status is in From.
// The note is appended to the audit trail in the same write.
type StatusUpdate struct {
	From              []entities.PaymentStatus
	To                entities.PaymentStatus
	PaidAt            time.Time
	ProviderPaymentID string
	Note              entities.Note
}

// LinesUpdate replaces the service linkage and total, only if the payment's
// current status is in From. Embedded replaces the legacy embedded copies; an
// empty Embedded removes them.
type LinesUpdate struct {
	From       []entities.PaymentStatus
	ServiceIDs []string
	Embedded   []entities.Service
	Total      decimal.Decimal
	Note       entities.Note
}

// IPaymentRepository abstracts persistence for Payment.
//
// Lookups return a zero-value Payment (and no error) when the id is unknown.
// List returns every payment, exhausting pagination.
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	Put(ctx context.Context, p entities.Payment) error
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	List(ctx context.Context) ([]entities.Payment, error)
	UpdateStatus(ctx context.Context, id string, upd StatusUpdate) (entities.Payment, error)
	UpdateLines(ctx context.Context, id string, upd LinesUpdate) (entities.Payment, error)
	AppendNote(ctx context.Context, id string, note entities.Note) (entities.Payment, error)
}
