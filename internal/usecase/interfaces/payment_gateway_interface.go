package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway abstracts the external provider used to pay partners out
// (e.g. Mercado Pago).
//
// The raw provider response is kept for traceability. Calls sharing an
// idempotencyKey create at most one payout at the provider.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, idempotencyKey string, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
