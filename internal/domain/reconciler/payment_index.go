package reconciler

import (
	"mimo_finance/internal/domain/entities"
	"mimo_finance/internal/domain/lifecycle"
)

// Ownership records which payment a service is linked into.
type Ownership struct {
	PaymentID string
	Status    entities.PaymentStatus
}

// ServicePaymentStatus is the answer to "what is this service's payment status".
type ServicePaymentStatus struct {
	Status    string `json:"status"`
	PaymentID string `json:"paymentId,omitempty"`
}

// PaymentIndex is the reverse index service id -> owning payment.
type PaymentIndex struct {
	owners map[string]Ownership
}

// BuildPaymentIndex indexes the lines of every resolved payment. When a service
// shows up in several payments, a payment past the modifiable states wins over
// a reopenable one; otherwise the later payment wins.
func BuildPaymentIndex(resolved []ResolvedPayment) PaymentIndex {
	owners := make(map[string]Ownership)
	for _, rp := range resolved {
		candidate := Ownership{PaymentID: rp.Payment.ID, Status: lifecycle.Normalize(string(rp.Payment.Status))}
		for _, id := range LineIDs(rp.Lines) {
			existing, ok := owners[id]
			if ok && !lifecycle.IsModifiable(existing.Status) && lifecycle.IsModifiable(candidate.Status) {
				continue
			}
			owners[id] = candidate
		}
	}
	return PaymentIndex{owners: owners}
}

// Owner returns the payment owning serviceID.
func (x PaymentIndex) Owner(serviceID string) (Ownership, bool) {
	o, ok := x.owners[serviceID]
	return o, ok
}

// StatusOf returns the service-level status; unlinked services read "not linked".
func (x PaymentIndex) StatusOf(serviceID string) ServicePaymentStatus {
	o, ok := x.owners[serviceID]
	if !ok {
		return ServicePaymentStatus{Status: lifecycle.ServiceNotLinked}
	}
	return ServicePaymentStatus{Status: lifecycle.ServiceStatus(o.Status), PaymentID: o.PaymentID}
}

// StatusLookup returns the status of every linked service.
func (x PaymentIndex) StatusLookup() map[string]ServicePaymentStatus {
	out := make(map[string]ServicePaymentStatus, len(x.owners))
	for id := range x.owners {
		out[id] = x.StatusOf(id)
	}
	return out
}

// CanLink reports whether serviceID may be linked into paymentID. A service
// held by another payment that is no longer modifiable is taken.
func (x PaymentIndex) CanLink(serviceID, paymentID string) bool {
	o, ok := x.owners[serviceID]
	if !ok || o.PaymentID == paymentID {
		return true
	}
	return lifecycle.IsModifiable(o.Status)
}

// Conflicts returns the ids among serviceIDs that paymentID may not take.
func (x PaymentIndex) Conflicts(serviceIDs []string, paymentID string) []string {
	var out []string
	for _, id := range serviceIDs {
		if !x.CanLink(id, paymentID) {
			out = append(out, id)
		}
	}
	return out
}

// Unlinked filters services down to those not owned by any payment.
func (x PaymentIndex) Unlinked(services []entities.Service) []entities.Service {
	out := make([]entities.Service, 0, len(services))
	for _, s := range services {
		if _, ok := x.owners[s.ID]; !ok {
			out = append(out, s)
		}
	}
	return out
}
