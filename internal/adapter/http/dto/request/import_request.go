package request

import (
	"bytes"
	"encoding/json"

	"mimo_finance/internal/adapter/ingest"
	"mimo_finance/internal/domain/entities"
)

// ImportRequest carries raw payment and service lists. Both are decoded
// leniently, so exports from older tools are accepted as they are.
type ImportRequest struct {
	Payments json.RawMessage `json:"payments"`
	Services json.RawMessage `json:"services"`
}

func (r ImportRequest) IsEmpty() bool {
	return absent(r.Payments) && absent(r.Services)
}

func (r ImportRequest) Decode(d *ingest.Decoder) ([]entities.Payment, []entities.Service, error) {
	var (
		payments []entities.Payment
		services []entities.Service
		err      error
	)
	if !absent(r.Payments) {
		if payments, err = d.Payments(r.Payments); err != nil {
			return nil, nil, err
		}
	}
	if !absent(r.Services) {
		if services, err = d.Services(r.Services); err != nil {
			return nil, nil, err
		}
	}
	return payments, services, nil
}

func absent(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	return len(v) == 0 || bytes.Equal(v, []byte("null"))
}
