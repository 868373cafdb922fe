package response

import (
	"time"

	"mimo_finance/internal/domain/entities"
	"mimo_finance/internal/domain/lifecycle"
	"mimo_finance/internal/usecase"
)

type ServiceResponse struct {
	ID          string     `json:"id"`
	PartnerID   string     `json:"partner_id,omitempty"`
	ClientName  string     `json:"client_name"`
	ServiceDate *time.Time `json:"service_date,omitempty"`
	ServiceType string     `json:"service_type,omitempty"`
	Park        string     `json:"park,omitempty"`
	Location    string     `json:"location,omitempty"`
	Team        string     `json:"team,omitempty"`
	Guests      int        `json:"guests,omitempty"`
	Hopper      bool       `json:"hopper,omitempty"`
	FinalValue  float64    `json:"final_value"`
	Observation string     `json:"observation,omitempty"`
}

func FromService(s entities.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		PartnerID:   s.PartnerID,
		ClientName:  s.ClientName(),
		ServiceDate: optionalTime(s.ServiceDate),
		ServiceType: s.ServiceType.DisplayName(),
		Park:        s.Park,
		Location:    s.Location,
		Team:        s.Team,
		Guests:      s.Guests,
		Hopper:      s.Hopper,
		FinalValue:  s.FinalValue.InexactFloat64(),
		Observation: s.Observation,
	}
}

func FromServices(ss []entities.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, FromService(s))
	}
	return out
}

type NoteResponse struct {
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

type PaymentResponse struct {
	PaymentID         string         `json:"payment_id"`
	PartnerID         string         `json:"partner_id"`
	PartnerName       string         `json:"partner_name,omitempty"`
	ServiceIDs        []string       `json:"service_ids"`
	WeekStart         *time.Time     `json:"week_start,omitempty"`
	WeekEnd           *time.Time     `json:"week_end,omitempty"`
	CreatedAt         *time.Time     `json:"created_at,omitempty"`
	Total             float64        `json:"total"`
	Status            string         `json:"status"`
	PaidAt            *time.Time     `json:"paid_at,omitempty"`
	ProviderPaymentID string         `json:"provider_payment_id,omitempty"`
	Notes             []NoteResponse `json:"notes,omitempty"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	ids := p.ServiceIDs
	if ids == nil {
		ids = []string{}
	}
	out := PaymentResponse{
		PaymentID:         p.ID,
		PartnerID:         p.PartnerID,
		PartnerName:       p.PartnerName,
		ServiceIDs:        ids,
		WeekStart:         optionalTime(p.WeekStart),
		WeekEnd:           optionalTime(p.WeekEnd),
		CreatedAt:         optionalTime(p.CreatedAt),
		Total:             p.Total.InexactFloat64(),
		Status:            string(p.Status),
		PaidAt:            optionalTime(p.PaidAt),
		ProviderPaymentID: p.ProviderPaymentID,
	}
	for _, n := range p.NotesLog {
		out.Notes = append(out.Notes, NoteResponse{ID: n.ID, At: n.At, Text: n.Text})
	}
	return out
}

type ActionsResponse struct {
	CanShare     bool `json:"can_share"`
	CanApprove   bool `json:"can_approve"`
	CanDecline   bool `json:"can_decline"`
	CanMarkPaid  bool `json:"can_mark_paid"`
	CanHold      bool `json:"can_hold"`
	CanResume    bool `json:"can_resume"`
	CanEditLines bool `json:"can_edit_lines"`
}

func FromActions(a lifecycle.Actions) ActionsResponse {
	return ActionsResponse{
		CanShare:     a.CanShare,
		CanApprove:   a.CanApprove,
		CanDecline:   a.CanDecline,
		CanMarkPaid:  a.CanMarkPaid,
		CanHold:      a.CanHold,
		CanResume:    a.CanResume,
		CanEditLines: a.CanEditLines,
	}
}

type PaymentLinesResponse struct {
	Payment   PaymentResponse   `json:"payment"`
	Lines     []ServiceResponse `json:"lines"`
	Week      WeekResponse      `json:"week"`
	LineTotal float64           `json:"line_total"`
	Total     float64           `json:"total"`
	Actions   ActionsResponse   `json:"actions"`
}

func FromPaymentLines(pl usecase.PaymentLines) PaymentLinesResponse {
	return PaymentLinesResponse{
		Payment:   FromPayment(pl.Payment),
		Lines:     FromServices(pl.Lines),
		Week:      FromWeek(pl.Week),
		LineTotal: pl.LineTotal.InexactFloat64(),
		Total:     pl.Total.InexactFloat64(),
		Actions:   FromActions(pl.Actions),
	}
}

type ImportResponse struct {
	Payments int `json:"payments"`
	Services int `json:"services"`
}

func FromImportResult(r usecase.ImportResult) ImportResponse {
	return ImportResponse{Payments: r.Payments, Services: r.Services}
}

// optionalTime drops zero instants from the payload.
func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
