package aggregator

import (
	"strings"

	"mimo_finance/internal/domain/entities"
	"mimo_finance/internal/domain/lifecycle"
	"mimo_finance/internal/domain/reconciler"

	"github.com/shopspring/decimal"
)

// WalletEntry is one payment as its partner sees it.
type WalletEntry struct {
	Payment       entities.Payment
	Lines         []entities.Service
	Week          entities.BusinessWeek
	Total         decimal.Decimal
	DisplayStatus string
}

// PartnerWallet is the partner-scoped view of payments.
type PartnerWallet struct {
	PartnerID   string
	DisplayName string
	Entries     []WalletEntry
	// Totals is keyed by partner-facing display status.
	Totals map[string]decimal.Decimal
}

// VisibleToPartner keeps the payments owned by partnerID that the partner may
// see. CREATING and PENDING payments never pass.
func VisibleToPartner(resolved []reconciler.ResolvedPayment, partnerID string) []reconciler.ResolvedPayment {
	partnerID = strings.TrimSpace(partnerID)
	out := make([]reconciler.ResolvedPayment, 0, len(resolved))
	for _, rp := range resolved {
		if strings.TrimSpace(rp.Payment.PartnerID) != partnerID {
			continue
		}
		if !lifecycle.VisibleToPartner(rp.Payment.Status) {
			continue
		}
		out = append(out, rp)
	}
	return out
}

// PartnerView builds the wallet for partnerID, keeping input order.
func (a *Aggregator) PartnerView(resolved []reconciler.ResolvedPayment, partnerID string) PartnerWallet {
	visible := VisibleToPartner(resolved, partnerID)
	w := PartnerWallet{
		PartnerID: strings.TrimSpace(partnerID),
		Entries:   make([]WalletEntry, 0, len(visible)),
		Totals:    map[string]decimal.Decimal{},
	}

	inline := ""
	for _, rp := range visible {
		if n := strings.TrimSpace(rp.Payment.PartnerName); n != "" {
			inline = n
		}
		status := lifecycle.DisplayStatus(rp.Payment.Status, lifecycle.AudiencePartner)
		total := PaymentTotal(rp.Payment, rp.Lines)
		w.Entries = append(w.Entries, WalletEntry{
			Payment:       rp.Payment,
			Lines:         rp.Lines,
			Week:          a.EarnedWeek(rp.Payment),
			Total:         total,
			DisplayStatus: status,
		})
		w.Totals[status] = w.Totals[status].Add(total)
	}
	w.DisplayName = a.partnerName(w.PartnerID, inline)
	return w
}
