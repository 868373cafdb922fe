// Package ingest is the boundary where raw payment and service payloads (REST
// responses, bulk imports, legacy exports) become canonical entities.
//
// Every legacy shape is resolved here: `_id` vs `id`, serviceType objects vs
// bare strings, serviceIds holding ids or objects, embedded services/items
// arrays. Nothing downstream branches on shape again. Bad field values degrade
// to zero values; only malformed JSON is an error.
package ingest

import (
	"encoding/json"
	"errors"
	"time"

	"mimo_finance/internal/domain/entities"
	"mimo_finance/internal/domain/lifecycle"

	"github.com/google/uuid"
)

var ErrNotAList = errors.New("payload is not a list")

type Decoder struct {
	loc *time.Location
}

// NewDecoder reads plain dates and offset-less timestamps as wall time in loc.
func NewDecoder(loc *time.Location) *Decoder {
	if loc == nil {
		loc = time.Local
	}
	return &Decoder{loc: loc}
}

// list accepts a bare array or an envelope {"data"|"items"|"results": [...]}.
func list(data []byte) ([]json.RawMessage, error) {
	var v json.RawMessage
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if arr := asArray(v); arr != nil {
		return arr, nil
	}
	if o, ok := asObject(v); ok {
		if arr := asArray(o.first("data", "items", "results")); arr != nil {
			return arr, nil
		}
	}
	return nil, ErrNotAList
}

// Services decodes a list of services. Entries that are not objects are skipped.
func (d *Decoder) Services(data []byte) ([]entities.Service, error) {
	raws, err := list(data)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Service, 0, len(raws))
	for _, raw := range raws {
		if s, ok := d.Service(raw); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// Payments decodes a list of payments. Entries that are not objects are skipped.
func (d *Decoder) Payments(data []byte) ([]entities.Payment, error) {
	raws, err := list(data)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Payment, 0, len(raws))
	for _, raw := range raws {
		if p, ok := d.Payment(raw); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (d *Decoder) Service(raw json.RawMessage) (entities.Service, bool) {
	o, ok := asObject(raw)
	if !ok {
		return entities.Service{}, false
	}
	partnerID, partnerName := d.partner(o)
	return entities.Service{
		ID:          o.idOf("id", "_id", "serviceId"),
		PartnerID:   partnerID,
		PartnerName: partnerName,
		FirstName:   text(o.first("firstName", "first_name")),
		LastName:    text(o.first("lastName", "last_name")),
		ServiceDate: instant(o.first("serviceDate", "service_date", "date"), d.loc),
		ServiceType: serviceType(o.first("serviceType", "service_type")),
		Park:        named(o.first("park")),
		Location:    named(o.first("location")),
		Team:        named(o.first("team")),
		Guests:      integer(o.first("guests")),
		Hopper:      boolish(o.first("hopper")),
		FinalValue:  amount(o.first("finalValue", "final_value", "value")),
		Observation: text(o.first("observation", "observations")),
		CreatedAt:   instant(o.first("createdAt", "created_at"), d.loc),
	}, true
}

func (d *Decoder) Payment(raw json.RawMessage) (entities.Payment, bool) {
	o, ok := asObject(raw)
	if !ok {
		return entities.Payment{}, false
	}
	partnerID, partnerName := d.partner(o)
	p := entities.Payment{
		ID:                o.idOf("id", "_id"),
		PartnerID:         partnerID,
		PartnerName:       partnerName,
		WeekStart:         instant(o.first("weekStart", "week_start"), d.loc),
		WeekEnd:           instant(o.first("weekEnd", "week_end"), d.loc),
		CreatedAt:         instant(o.first("createdAt", "created_at"), d.loc),
		Total:             amount(o.first("total")),
		Status:            lifecycle.Normalize(text(o.first("status"))),
		PaidAt:            instant(o.first("paidAt", "paid_at"), d.loc),
		ProviderPaymentID: text(o.first("providerPaymentId")),
	}

	for _, el := range asArray(o.first("serviceIds", "service_ids")) {
		id := scalarID(el)
		if ref, ok := asObject(el); ok {
			id = ref.idOf("id", "_id", "serviceId")
		}
		if id != "" {
			p.ServiceIDs = append(p.ServiceIDs, id)
		}
	}
	for _, key := range []string{"services", "items"} {
		for _, el := range asArray(o.first(key)) {
			if s, ok := d.Service(el); ok {
				p.Embedded = append(p.Embedded, s)
			}
		}
	}
	for _, el := range asArray(o.first("notesLog", "notes_log")) {
		if n, ok := d.note(el); ok {
			p.NotesLog = append(p.NotesLog, n)
		}
	}
	return p, true
}

func (d *Decoder) note(raw json.RawMessage) (entities.Note, bool) {
	if s := text(raw); s != "" {
		return entities.Note{ID: uuid.NewString(), Text: s}, true
	}
	o, ok := asObject(raw)
	if !ok {
		return entities.Note{}, false
	}
	n := entities.Note{
		ID:   o.idOf("id", "_id"),
		At:   instant(o.first("at", "createdAt"), d.loc),
		Text: text(o.first("text", "note", "message")),
	}
	if n.Text == "" {
		return entities.Note{}, false
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return n, true
}

// partner reads partnerId/partnerName or an embedded partner object.
func (d *Decoder) partner(o object) (string, string) {
	id := o.idOf("partnerId", "partner_id")
	name := text(o.first("partnerName", "partner_name"))
	if ref, ok := asObject(o.first("partner")); ok {
		if id == "" {
			id = ref.idOf("id", "_id")
		}
		if name == "" {
			name = text(ref.first("name", "fullName", "full_name"))
		}
	} else if id == "" {
		id = scalarID(o.first("partner"))
	}
	return id, name
}

func serviceType(raw json.RawMessage) entities.ServiceType {
	if o, ok := asObject(raw); ok {
		return entities.ServiceType{ID: o.idOf("id", "_id"), Name: text(o.first("name", "label"))}
	}
	return entities.ServiceType{ID: text(raw)}
}

// named reads a bare string or the name of an embedded {id, name} object.
func named(raw json.RawMessage) string {
	if o, ok := asObject(raw); ok {
		return text(o.first("name", "label"))
	}
	return text(raw)
}
