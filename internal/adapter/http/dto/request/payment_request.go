package request

import (
	"errors"
	"strings"
	"time"

	"mimo_finance/internal/usecase"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidWeekStart = errors.New("invalid week_start, expected YYYY-MM-DD")
)

// CreatePaymentRequest opens a weekly payment for a partner.
type CreatePaymentRequest struct {
	PartnerID   string   `json:"partner_id" binding:"required"`
	PartnerName string   `json:"partner_name"`
	ServiceIDs  []string `json:"service_ids" binding:"required"`
	WeekStart   string   `json:"week_start"`
	Note        string   `json:"note"`
}

// ToCommand builds the use case command. parseDate reads week_start in the
// business location; an empty week_start is left zero.
func (r CreatePaymentRequest) ToCommand(parseDate func(string) (time.Time, bool)) (usecase.CreatePaymentCommand, error) {
	cmd := usecase.CreatePaymentCommand{
		PartnerID:   strings.TrimSpace(r.PartnerID),
		PartnerName: strings.TrimSpace(r.PartnerName),
		ServiceIDs:  r.ServiceIDs,
		Note:        strings.TrimSpace(r.Note),
	}
	if v := strings.TrimSpace(r.WeekStart); v != "" {
		t, ok := parseDate(v)
		if !ok {
			return usecase.CreatePaymentCommand{}, ErrInvalidWeekStart
		}
		cmd.WeekStart = t
	}
	return cmd, nil
}

// UpdateLinesRequest replaces the services of a payment. Drafts accept JSON
// numbers or numeric strings.
type UpdateLinesRequest struct {
	ServiceIDs []string                   `json:"service_ids" binding:"required"`
	Drafts     map[string]decimal.Decimal `json:"drafts"`
}

func (r UpdateLinesRequest) ToCommand() usecase.UpdateLinesCommand {
	drafts := make(map[string]decimal.Decimal, len(r.Drafts))
	for id, v := range r.Drafts {
		if id = strings.TrimSpace(id); id != "" {
			drafts[id] = v
		}
	}
	return usecase.UpdateLinesCommand{ServiceIDs: r.ServiceIDs, Drafts: drafts}
}

// ActionRequest is the optional body of a status action. Declines read the
// reason, other actions the note.
type ActionRequest struct {
	Note   string `json:"note"`
	Reason string `json:"reason"`
}

func (r ActionRequest) ResolveNote() string {
	if v := strings.TrimSpace(r.Reason); v != "" {
		return v
	}
	return strings.TrimSpace(r.Note)
}

type NoteRequest struct {
	Text string `json:"text" binding:"required"`
}
