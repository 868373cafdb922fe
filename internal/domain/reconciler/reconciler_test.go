package reconciler

import (
	"reflect"
	"testing"

	"mimo_finance/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func svc(id string, value int64) entities.Service {
	return entities.Service{ID: id, FinalValue: decimal.NewFromInt(value)}
}

func ids(lines []entities.Service) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.ID)
	}
	return out
}

func TestResolveServiceLines(t *testing.T) {
	idx := NewServiceIndex([]entities.Service{svc("s1", 50), svc("s2", 30), svc("s3", 10)})

	t.Run("ids resolved through index", func(t *testing.T) {
		lines := ResolveServiceLines(entities.Payment{ServiceIDs: []string{"s1", "s2"}}, idx)
		if got := ids(lines); !reflect.DeepEqual(got, []string{"s1", "s2"}) {
			t.Fatalf("unexpected lines %v", got)
		}
	})

	t.Run("embedded only", func(t *testing.T) {
		p := entities.Payment{Embedded: []entities.Service{svc("s1", 20)}, ServiceIDs: []string{}}
		lines := ResolveServiceLines(p, nil)
		if len(lines) != 1 || lines[0].ID != "s1" || !lines[0].FinalValue.Equal(decimal.NewFromInt(20)) {
			t.Fatalf("unexpected lines %+v", lines)
		}
	})

	t.Run("embedded copy preferred over index", func(t *testing.T) {
		p := entities.Payment{ServiceIDs: []string{"s1"}, Embedded: []entities.Service{svc("s1", 99)}}
		lines := ResolveServiceLines(p, idx)
		if len(lines) != 1 || !lines[0].FinalValue.Equal(decimal.NewFromInt(99)) {
			t.Fatalf("expected embedded snapshot, got %+v", lines)
		}
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		p := entities.Payment{
			ServiceIDs: []string{"s1", "s2", "s1", " s2 "},
			Embedded:   []entities.Service{svc("s2", 30), svc("s2", 31)},
		}
		if got := ids(ResolveServiceLines(p, idx)); !reflect.DeepEqual(got, []string{"s1", "s2"}) {
			t.Fatalf("unexpected lines %v", got)
		}
	})

	t.Run("orphans dropped and unlisted embedded appended", func(t *testing.T) {
		p := entities.Payment{
			ServiceIDs: []string{"missing", "s3"},
			Embedded:   []entities.Service{svc("e1", 5), {FinalValue: decimal.NewFromInt(7)}},
		}
		lines := ResolveServiceLines(p, idx)
		if got := ids(lines); !reflect.DeepEqual(got, []string{"s3", "e1", ""}) {
			t.Fatalf("unexpected lines %v", got)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		p := entities.Payment{ServiceIDs: []string{"s2", "s1", "x"}, Embedded: []entities.Service{svc("e9", 1)}}
		first := ResolveServiceLines(p, idx)
		second := ResolveServiceLines(p, idx)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("resolution not idempotent: %+v vs %+v", first, second)
		}
	})
}

func TestNewServiceIndex_LastWins(t *testing.T) {
	idx := NewServiceIndex([]entities.Service{svc("s1", 1), svc("s1", 2), svc("", 3)})
	if len(idx) != 1 || !idx["s1"].FinalValue.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("unexpected index %+v", idx)
	}
}

func TestPaymentIndex(t *testing.T) {
	idx := NewServiceIndex([]entities.Service{svc("s1", 1), svc("s2", 1), svc("s3", 1), svc("s4", 1)})
	resolved := ResolveAll([]entities.Payment{
		{ID: "p1", Status: entities.PaymentStatusPaid, ServiceIDs: []string{"s1"}},
		{ID: "p2", Status: entities.PaymentStatusDeclined, ServiceIDs: []string{"s1", "s2"}},
		{ID: "p3", Status: entities.PaymentStatusShared, ServiceIDs: []string{"s3"}},
	}, idx)
	px := BuildPaymentIndex(resolved)

	if o, _ := px.Owner("s1"); o.PaymentID != "p1" {
		t.Fatalf("paid payment must keep s1, got %+v", o)
	}
	if st := px.StatusOf("s1"); st.Status != "paid" || st.PaymentID != "p1" {
		t.Fatalf("unexpected status %+v", st)
	}
	if st := px.StatusOf("s2"); st.Status != "declined" {
		t.Fatalf("unexpected status %+v", st)
	}
	if st := px.StatusOf("s3"); st.Status != "pending" {
		t.Fatalf("unexpected status %+v", st)
	}
	if st := px.StatusOf("s4"); st.Status != "not linked" || st.PaymentID != "" {
		t.Fatalf("unexpected status %+v", st)
	}
	if len(px.StatusLookup()) != 3 {
		t.Fatalf("expected 3 linked services")
	}

	if px.CanLink("s1", "p9") {
		t.Fatalf("s1 is held by a paid payment")
	}
	if !px.CanLink("s2", "p9") {
		t.Fatalf("s2 is held by a declined payment and may be relinked")
	}
	if !px.CanLink("s3", "p3") {
		t.Fatalf("owner may keep its own service")
	}
	if got := px.Conflicts([]string{"s1", "s2", "s3", "s4"}, "p9"); !reflect.DeepEqual(got, []string{"s1", "s3"}) {
		t.Fatalf("unexpected conflicts %v", got)
	}
	if got := ids(px.Unlinked([]entities.Service{svc("s1", 1), svc("s4", 1)})); !reflect.DeepEqual(got, []string{"s4"}) {
		t.Fatalf("unexpected unlinked %v", got)
	}
}
