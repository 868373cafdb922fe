package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ServiceType is the kind of tour/work delivered. Legacy records carry only a
// bare string, in which case it lands in ID and Name stays empty.
type ServiceType struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// DisplayName returns the human name, falling back to the bare id.
func (t ServiceType) DisplayName() string {
	if n := strings.TrimSpace(t.Name); n != "" {
		return n
	}
	return strings.TrimSpace(t.ID)
}

// Service is a billable unit of work performed for a client by a partner.
//
// Services are read-only for the aggregation core. ServiceDate is a calendar
// date semantically; a zero value marks an unparseable source date.
type Service struct {
	ID          string          `json:"id"`
	PartnerID   string          `json:"partnerId,omitempty"`
	PartnerName string          `json:"partnerName,omitempty"`
	FirstName   string          `json:"firstName,omitempty"`
	LastName    string          `json:"lastName,omitempty"`
	ServiceDate time.Time       `json:"serviceDate"`
	ServiceType ServiceType     `json:"serviceType"`
	Park        string          `json:"park,omitempty"`
	Location    string          `json:"location,omitempty"`
	Team        string          `json:"team,omitempty"`
	Guests      int             `json:"guests,omitempty"`
	Hopper      bool            `json:"hopper,omitempty"`
	FinalValue  decimal.Decimal `json:"finalValue"`
	Observation string          `json:"observation,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ClientName joins the client name parts.
func (s Service) ClientName() string {
	return strings.TrimSpace(strings.TrimSpace(s.FirstName) + " " + strings.TrimSpace(s.LastName))
}
