package response

import (
	"fmt"
	"time"

	"mimo_finance/internal/domain/aggregator"
	"mimo_finance/internal/domain/entities"
	"mimo_finance/internal/domain/reconciler"
	"mimo_finance/internal/usecase"
)

type WeekResponse struct {
	Key   string    `json:"key"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func FromWeek(w entities.BusinessWeek) WeekResponse {
	return WeekResponse{Key: w.Key, Start: w.Start, End: w.End}
}

func FromWeeks(ws []entities.BusinessWeek) []WeekResponse {
	out := make([]WeekResponse, 0, len(ws))
	for _, w := range ws {
		out = append(out, FromWeek(w))
	}
	return out
}

type PartnerSummaryResponse struct {
	PartnerID    string  `json:"partner_id,omitempty"`
	DisplayName  string  `json:"display_name"`
	PaymentCount int     `json:"payment_count"`
	ServiceCount int     `json:"service_count"`
	Revenue      float64 `json:"revenue"`
}

type PartnerRankingResponse struct {
	Weeks    []WeekResponse           `json:"weeks"`
	Partners []PartnerSummaryResponse `json:"partners"`
}

func FromPartnerRanking(r usecase.PartnerRanking) PartnerRankingResponse {
	out := PartnerRankingResponse{
		Weeks:    FromWeeks(r.Weeks),
		Partners: make([]PartnerSummaryResponse, 0, len(r.Partners)),
	}
	for _, p := range r.Partners {
		out.Partners = append(out.Partners, PartnerSummaryResponse{
			PartnerID:    p.PartnerID,
			DisplayName:  p.DisplayName,
			PaymentCount: p.PaymentCount,
			ServiceCount: p.ServiceCount,
			Revenue:      p.Revenue.InexactFloat64(),
		})
	}
	return out
}

type ClientSummaryResponse struct {
	Key         string            `json:"key"`
	DisplayName string            `json:"display_name"`
	Count       int               `json:"count"`
	Total       float64           `json:"total"`
	Items       []ServiceResponse `json:"items"`
}

type ClientBreakdownResponse struct {
	Week    WeekResponse            `json:"week"`
	Clients []ClientSummaryResponse `json:"clients"`
}

func FromClientBreakdown(b usecase.ClientBreakdown) ClientBreakdownResponse {
	out := ClientBreakdownResponse{
		Week:    FromWeek(b.Week),
		Clients: make([]ClientSummaryResponse, 0, len(b.Clients)),
	}
	for _, c := range b.Clients {
		out.Clients = append(out.Clients, ClientSummaryResponse{
			Key:         c.Key,
			DisplayName: c.DisplayName,
			Count:       c.Count,
			Total:       c.Total.InexactFloat64(),
			Items:       FromServices(c.Items),
		})
	}
	return out
}

type WeekTotalResponse struct {
	Week         WeekResponse `json:"week"`
	PaymentCount int          `json:"payment_count"`
	ServiceCount int          `json:"service_count"`
	Total        float64      `json:"total"`
}

type MonthOverviewResponse struct {
	Month     string              `json:"month"`
	Weeks     []WeekTotalResponse `json:"weeks"`
	Earned    float64             `json:"earned"`
	Paid      float64             `json:"paid"`
	PaidCount int                 `json:"paid_count"`
}

func FromMonthOverview(m aggregator.MonthOverview) MonthOverviewResponse {
	out := MonthOverviewResponse{
		Month:     fmt.Sprintf("%04d-%02d", m.Year, int(m.Month)),
		Weeks:     make([]WeekTotalResponse, 0, len(m.Weeks)),
		Earned:    m.Earned.InexactFloat64(),
		Paid:      m.Paid.InexactFloat64(),
		PaidCount: m.PaidCount,
	}
	for _, w := range m.Weeks {
		out.Weeks = append(out.Weeks, WeekTotalResponse{
			Week:         FromWeek(w.Week),
			PaymentCount: w.PaymentCount,
			ServiceCount: w.ServiceCount,
			Total:        w.Total.InexactFloat64(),
		})
	}
	return out
}

type ServiceStatusResponse struct {
	Status    string `json:"status"`
	PaymentID string `json:"payment_id,omitempty"`
}

func FromServiceStatuses(m map[string]reconciler.ServicePaymentStatus) map[string]ServiceStatusResponse {
	out := make(map[string]ServiceStatusResponse, len(m))
	for id, s := range m {
		out[id] = ServiceStatusResponse{Status: s.Status, PaymentID: s.PaymentID}
	}
	return out
}

type WalletEntryResponse struct {
	Payment       PaymentResponse   `json:"payment"`
	Lines         []ServiceResponse `json:"lines"`
	Week          WeekResponse      `json:"week"`
	Total         float64           `json:"total"`
	DisplayStatus string            `json:"display_status"`
}

type PartnerWalletResponse struct {
	PartnerID   string                `json:"partner_id"`
	DisplayName string                `json:"display_name"`
	Entries     []WalletEntryResponse `json:"entries"`
	Totals      map[string]float64    `json:"totals"`
}

func FromPartnerWallet(w aggregator.PartnerWallet) PartnerWalletResponse {
	out := PartnerWalletResponse{
		PartnerID:   w.PartnerID,
		DisplayName: w.DisplayName,
		Entries:     make([]WalletEntryResponse, 0, len(w.Entries)),
		Totals:      make(map[string]float64, len(w.Totals)),
	}
	for _, e := range w.Entries {
		out.Entries = append(out.Entries, WalletEntryResponse{
			Payment:       FromPayment(e.Payment),
			Lines:         FromServices(e.Lines),
			Week:          FromWeek(e.Week),
			Total:         e.Total.InexactFloat64(),
			DisplayStatus: e.DisplayStatus,
		})
	}
	for status, v := range w.Totals {
		out.Totals[status] = v.InexactFloat64()
	}
	return out
}
