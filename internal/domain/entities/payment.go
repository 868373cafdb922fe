package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents where a weekly partner payment sits in its lifecycle.
//
// Transition rules live in the lifecycle package; this type only names the states.

type PaymentStatus string

const (
	PaymentStatusCreating PaymentStatus = "CREATING"
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusShared   PaymentStatus = "SHARED"
	PaymentStatusApproved PaymentStatus = "APPROVED"
	PaymentStatusDeclined PaymentStatus = "DECLINED"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusOnHold   PaymentStatus = "ON_HOLD"
)

// Note is one entry of a payment's append-only audit trail.
type Note struct {
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

// Payment is a batch of services billed together to a partner for one business week.
//
// Service linkage:
//   - ServiceIDs is the authoritative list of linked service ids.
//   - Embedded carries service copies found inline on legacy records
//     (services/items arrays). The reconciler merges both into resolved lines.
//
// Total is the stored (backend-computed) amount; zero means "recompute from lines".
type Payment struct {
	ID          string          `json:"id"`
	PartnerID   string          `json:"partnerId"`
	PartnerName string          `json:"partnerName,omitempty"`
	ServiceIDs  []string        `json:"serviceIds"`
	Embedded    []Service       `json:"services,omitempty"`
	WeekStart   time.Time       `json:"weekStart"`
	WeekEnd     time.Time       `json:"weekEnd"`
	CreatedAt   time.Time       `json:"createdAt"`
	Total       decimal.Decimal `json:"total"`
	Status      PaymentStatus   `json:"status"`
	PaidAt      time.Time       `json:"paidAt"`
	NotesLog    []Note          `json:"notesLog,omitempty"`

	// ProviderPaymentID references the payout created when the payment was paid.
	ProviderPaymentID string `json:"providerPaymentId,omitempty"`
}

// Anchor returns the instant that places the payment in a business week:
// weekStart when present, createdAt otherwise. Zero when neither is usable.
func (p Payment) Anchor() time.Time {
	if !p.WeekStart.IsZero() {
		return p.WeekStart
	}
	return p.CreatedAt
}
