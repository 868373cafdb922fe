package ingest

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"mimo_finance/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestDecoder_Services(t *testing.T) {
	ny, _ := time.LoadLocation("America/New_York")
	dec := NewDecoder(ny)

	body := `[
		{"_id": {"$oid": "65f0a"}, "partner": {"_id": "p1", "name": "Ann"}, "firstName": " José ", "lastName": "Amora",
		 "serviceDate": "2024-06-12", "serviceType": {"_id": "t1", "name": "Magic Kingdom Tour"},
		 "guests": "4", "hopper": "yes", "finalValue": "$1,250.50", "team": {"name": "Blue"}},
		{"id": 42, "partnerId": "p2", "serviceType": "VIP", "finalValue": "n/a", "serviceDate": "not a date"},
		"garbage"
	]`
	services, err := dec.Services([]byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(services) != 2 {
		t.Fatalf("expected 2 services, got %d", len(services))
	}

	s := services[0]
	if s.ID != "65f0a" || s.PartnerID != "p1" || s.PartnerName != "Ann" {
		t.Fatalf("unexpected identity fields: %+v", s)
	}
	if s.ClientName() != "José Amora" {
		t.Fatalf("unexpected client name %q", s.ClientName())
	}
	if !s.ServiceDate.Equal(time.Date(2024, 6, 12, 0, 0, 0, 0, ny)) {
		t.Fatalf("plain dates are wall dates in the business zone, got %v", s.ServiceDate)
	}
	if s.ServiceType.DisplayName() != "Magic Kingdom Tour" || s.Guests != 4 || !s.Hopper || s.Team != "Blue" {
		t.Fatalf("unexpected descriptive fields: %+v", s)
	}
	if !s.FinalValue.Equal(decimal.RequireFromString("1250.50")) {
		t.Fatalf("unexpected final value %s", s.FinalValue)
	}

	s = services[1]
	if s.ID != "42" || s.ServiceType.DisplayName() != "VIP" {
		t.Fatalf("unexpected fields: %+v", s)
	}
	if !s.FinalValue.IsZero() || !s.ServiceDate.IsZero() {
		t.Fatalf("bad values must degrade to zero: %+v", s)
	}
}

func TestDecoder_Payments(t *testing.T) {
	dec := NewDecoder(time.UTC)
	body := `{"data": [
		{"_id": "pay1", "partnerId": "p1", "serviceIds": ["s1", {"_id": "s2"}, {"serviceId": "s3"}, 7, null],
		 "weekStart": "2024-06-12T00:00:00.000Z", "total": 0, "status": "shared",
		 "notesLog": [{"id": "n1", "at": 1718150400000, "text": "sent"}, "legacy text note"]},
		{"id": "pay2", "services": [{"id": "s1", "finalValue": 20}], "items": [{"_id": "s9", "finalValue": 5}], "createdAt": 1718150400000},
		{"id": "pay3", "status": ""}
	]}`
	payments, err := dec.Payments([]byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payments) != 3 {
		t.Fatalf("expected 3 payments, got %d", len(payments))
	}

	p := payments[0]
	want := []string{"s1", "s2", "s3", "7"}
	if len(p.ServiceIDs) != len(want) {
		t.Fatalf("unexpected service ids %v", p.ServiceIDs)
	}
	for i := range want {
		if p.ServiceIDs[i] != want[i] {
			t.Fatalf("unexpected service ids %v", p.ServiceIDs)
		}
	}
	if p.Status != entities.PaymentStatusShared || !p.WeekStart.Equal(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected payment %+v", p)
	}
	if len(p.NotesLog) != 2 || p.NotesLog[0].ID != "n1" || p.NotesLog[1].Text != "legacy text note" || p.NotesLog[1].ID == "" {
		t.Fatalf("unexpected notes %+v", p.NotesLog)
	}

	p = payments[1]
	if len(p.Embedded) != 2 || p.Embedded[0].ID != "s1" || p.Embedded[1].ID != "s9" || len(p.ServiceIDs) != 0 {
		t.Fatalf("unexpected embedded linkage %+v", p)
	}
	if !p.CreatedAt.Equal(time.UnixMilli(1718150400000)) {
		t.Fatalf("unexpected createdAt %v", p.CreatedAt)
	}

	if payments[2].Status != entities.PaymentStatusPending {
		t.Fatalf("missing status must default to PENDING, got %q", payments[2].Status)
	}
}

func TestDecoder_Errors(t *testing.T) {
	dec := NewDecoder(time.UTC)
	if _, err := dec.Payments([]byte(`[{`)); err == nil {
		t.Fatalf("expected syntax error")
	}
	if _, err := dec.Payments([]byte(`{"foo": 1}`)); !errors.Is(err, ErrNotAList) {
		t.Fatalf("expected ErrNotAList, got %v", err)
	}
	got, err := dec.Services([]byte(`[]`))
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %v %v", got, err)
	}
}

func TestInstant(t *testing.T) {
	loc := time.UTC
	cases := map[string]time.Time{
		`"2024-06-12T10:00:00Z"`:      time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC),
		`"2024-06-12T10:00:00"`:       time.Date(2024, 6, 12, 10, 0, 0, 0, loc),
		`"2024-06-12 10:00:00"`:       time.Date(2024, 6, 12, 10, 0, 0, 0, loc),
		`"06/12/2024"`:                time.Date(2024, 6, 12, 0, 0, 0, 0, loc),
		`{"$date": "2024-06-12"}`:     time.Date(2024, 6, 12, 0, 0, 0, 0, loc),
		`"2024-06-12T10:00:00-04:00"`: time.Date(2024, 6, 12, 14, 0, 0, 0, time.UTC),
		`"garbage"`:                   {},
		`true`:                        {},
	}
	for in, want := range cases {
		if got := instant([]byte(in), loc); !got.Equal(want) {
			t.Fatalf("instant(%s) = %v, want %v", in, got, want)
		}
	}
}
