package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"mimo_finance/internal/domain/calendar"
	"mimo_finance/internal/domain/entities"
	"mimo_finance/internal/domain/fuzzy"
	mock_interfaces "mimo_finance/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var (
	june12 = time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	june13 = time.Date(2024, 6, 13, 9, 0, 0, 0, time.UTC)
	june14 = time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC)
	june15 = time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)
	june19 = time.Date(2024, 6, 19, 0, 0, 0, 0, time.UTC)
	june20 = time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC)
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func fixtureServices() []entities.Service {
	return []entities.Service{
		{ID: "s1", PartnerID: "p1", FirstName: "Maria", LastName: "Silva", ServiceDate: june13, FinalValue: dec("80")},
		{ID: "s2", PartnerID: "p1", FirstName: "João", LastName: "Souza", ServiceDate: june13, FinalValue: dec("20")},
		{ID: "s3", PartnerID: "p2", FirstName: "Ana", LastName: "Costa", ServiceDate: june14, FinalValue: dec("50")},
		{ID: "s4", PartnerID: "p2", FirstName: "Rui", LastName: "Dias", ServiceDate: june20, FinalValue: dec("10")},
	}
}

func fixturePayments() []entities.Payment {
	return []entities.Payment{
		{ID: "pay-1", PartnerID: "p1", ServiceIDs: []string{"s1", "s2"}, WeekStart: june12, Status: entities.PaymentStatusPending},
		{ID: "pay-2", PartnerID: "p2", ServiceIDs: []string{"s3"}, WeekStart: june12, Total: dec("50"), Status: entities.PaymentStatusPaid, PaidAt: june15},
		{ID: "pay-3", PartnerID: "p1", WeekStart: june19, Total: dec("999"), Status: entities.PaymentStatusShared},
	}
}

func newFinanceFixture(t *testing.T) *FinanceUseCase {
	t.Helper()
	ctrl := gomock.NewController(t)
	payRepo := mock_interfaces.NewMockIPaymentRepository(ctrl)
	svcRepo := mock_interfaces.NewMockIServiceRepository(ctrl)
	partners := mock_interfaces.NewMockIPartnerDirectory(ctrl)

	payRepo.EXPECT().List(gomock.Any()).Return(fixturePayments(), nil).AnyTimes()
	svcRepo.EXPECT().List(gomock.Any()).Return(fixtureServices(), nil).AnyTimes()
	partners.EXPECT().ListPartnerNames(gomock.Any()).Return(map[string]string{"p1": "Ana Lima", "p2": "Bruno Reis"}, nil).AnyTimes()

	loader := NewSnapshotLoader(payRepo, svcRepo, partners, nil, nil, time.Minute, nil)
	uc := NewFinanceUseCase(loader, calendar.New(time.UTC), fuzzy.DefaultOptions(), nil, time.Minute, nil)
	uc.now = func() time.Time { return june14 }
	return uc
}

func TestFinanceUseCase_Week(t *testing.T) {
	uc := newFinanceFixture(t)

	t.Run("explicit date", func(t *testing.T) {
		w, err := uc.Week(context.Background(), "2024-06-17")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !w.Start.Equal(june12) || w.Key != "2024-W24" {
			t.Fatalf("unexpected week: %+v", w)
		}
	})

	t.Run("empty date uses now", func(t *testing.T) {
		w, err := uc.Week(context.Background(), "")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !w.Start.Equal(june12) {
			t.Fatalf("unexpected week: %+v", w)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := uc.Week(context.Background(), "14/06/2024")
		if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate, got %v", err)
		}
	})
}

func TestFinanceUseCase_MonthWeeks(t *testing.T) {
	uc := newFinanceFixture(t)

	weeks, err := uc.MonthWeeks(context.Background(), "2024-06")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(weeks) != 4 || !weeks[1].Start.Equal(june12) {
		t.Fatalf("unexpected weeks: %+v", weeks)
	}

	if _, err := uc.MonthWeeks(context.Background(), "June"); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestFinanceUseCase_PartnerRanking(t *testing.T) {
	uc := newFinanceFixture(t)

	t.Run("period required", func(t *testing.T) {
		if _, err := uc.PartnerRanking(context.Background(), PeriodQuery{}); !errors.Is(err, ErrInvalidPeriod) {
			t.Fatalf("expected ErrInvalidPeriod, got %v", err)
		}
		if _, err := uc.PartnerRanking(context.Background(), PeriodQuery{Week: "2024-06-12", Month: "2024-06"}); !errors.Is(err, ErrInvalidPeriod) {
			t.Fatalf("expected ErrInvalidPeriod, got %v", err)
		}
	})

	t.Run("week window", func(t *testing.T) {
		r, err := uc.PartnerRanking(context.Background(), PeriodQuery{Week: "2024-06-12"})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(r.Partners) != 2 {
			t.Fatalf("expected 2 partners, got %+v", r.Partners)
		}
		if r.Partners[0].PartnerID != "p1" || !r.Partners[0].Revenue.Equal(dec("100")) {
			t.Fatalf("unexpected leader: %+v", r.Partners[0])
		}
		if r.Partners[0].DisplayName != "Ana Lima" {
			t.Fatalf("expected directory name, got %q", r.Partners[0].DisplayName)
		}
		if r.Partners[1].PartnerID != "p2" || !r.Partners[1].Revenue.Equal(dec("50")) {
			t.Fatalf("unexpected runner-up: %+v", r.Partners[1])
		}
	})

	t.Run("month window", func(t *testing.T) {
		r, err := uc.PartnerRanking(context.Background(), PeriodQuery{Month: "2024-06"})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(r.Weeks) != 4 {
			t.Fatalf("expected 4 weeks, got %d", len(r.Weeks))
		}
		if r.Partners[0].PartnerID != "p1" || !r.Partners[0].Revenue.Equal(dec("1099")) {
			t.Fatalf("unexpected leader: %+v", r.Partners[0])
		}
	})
}

func TestFinanceUseCase_ClientBreakdown(t *testing.T) {
	uc := newFinanceFixture(t)

	cb, err := uc.ClientBreakdown(context.Background(), "2024-06-12")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cb.Week.Key != "2024-W24" {
		t.Fatalf("unexpected week: %+v", cb.Week)
	}
	if len(cb.Clients) != 3 {
		t.Fatalf("expected 3 clients, got %+v", cb.Clients)
	}
	if cb.Clients[0].DisplayName != "Maria Silva" || !cb.Clients[0].Total.Equal(dec("80")) {
		t.Fatalf("unexpected top client: %+v", cb.Clients[0])
	}
}

func TestFinanceUseCase_MonthOverview(t *testing.T) {
	uc := newFinanceFixture(t)

	mo, err := uc.MonthOverview(context.Background(), "2024-06")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !mo.Earned.Equal(dec("1149")) {
		t.Fatalf("expected earned 1149, got %s", mo.Earned)
	}
	if !mo.Paid.Equal(dec("50")) || mo.PaidCount != 1 {
		t.Fatalf("unexpected paid: %s (%d)", mo.Paid, mo.PaidCount)
	}

	if _, err := uc.MonthOverview(context.Background(), "2024-13"); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestFinanceUseCase_ServiceStatuses(t *testing.T) {
	uc := newFinanceFixture(t)

	st, err := uc.ServiceStatuses(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if st["s1"].Status != "pending" || st["s1"].PaymentID != "pay-1" {
		t.Fatalf("unexpected s1: %+v", st["s1"])
	}
	if st["s3"].Status != "paid" {
		t.Fatalf("unexpected s3: %+v", st["s3"])
	}
	if st["s4"].Status != "not linked" || st["s4"].PaymentID != "" {
		t.Fatalf("unexpected s4: %+v", st["s4"])
	}
}

func TestFinanceUseCase_PaymentLines(t *testing.T) {
	uc := newFinanceFixture(t)

	t.Run("invalid id", func(t *testing.T) {
		if _, err := uc.PaymentLines(context.Background(), "  "); !errors.Is(err, ErrInvalidPaymentID) {
			t.Fatalf("expected ErrInvalidPaymentID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := uc.PaymentLines(context.Background(), "missing"); !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("resolved lines", func(t *testing.T) {
		pl, err := uc.PaymentLines(context.Background(), "pay-1")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(pl.Lines) != 2 || pl.Lines[0].ID != "s1" {
			t.Fatalf("unexpected lines: %+v", pl.Lines)
		}
		if !pl.Total.Equal(dec("100")) || !pl.LineTotal.Equal(dec("100")) {
			t.Fatalf("unexpected totals: %s / %s", pl.Total, pl.LineTotal)
		}
		if !pl.Actions.CanShare || !pl.Actions.CanHold || pl.Actions.CanApprove {
			t.Fatalf("unexpected actions: %+v", pl.Actions)
		}
	})

	t.Run("actions for paid payment", func(t *testing.T) {
		a, err := uc.PaymentActions(context.Background(), "pay-2")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if a.CanShare || a.CanMarkPaid || a.CanEditLines {
			t.Fatalf("paid payment must be terminal: %+v", a)
		}
	})
}

func TestFinanceUseCase_PartnerWallet(t *testing.T) {
	uc := newFinanceFixture(t)

	if _, err := uc.PartnerWallet(context.Background(), ""); !errors.Is(err, ErrInvalidPartnerID) {
		t.Fatalf("expected ErrInvalidPartnerID, got %v", err)
	}

	w, err := uc.PartnerWallet(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(w.Entries) != 1 || w.Entries[0].Payment.ID != "pay-3" {
		t.Fatalf("pending payments must stay hidden: %+v", w.Entries)
	}
	if !w.Totals["pending"].Equal(dec("999")) {
		t.Fatalf("unexpected totals: %+v", w.Totals)
	}
	if w.DisplayName != "Ana Lima" {
		t.Fatalf("unexpected name: %q", w.DisplayName)
	}
}

func TestFinanceUseCase_Memoize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	payRepo := mock_interfaces.NewMockIPaymentRepository(ctrl)
	svcRepo := mock_interfaces.NewMockIServiceRepository(ctrl)
	memo := mock_interfaces.NewMockICache(ctrl)

	payRepo.EXPECT().List(gomock.Any()).Return(fixturePayments(), nil).AnyTimes()
	svcRepo.EXPECT().List(gomock.Any()).Return(fixtureServices(), nil).AnyTimes()

	loader := NewSnapshotLoader(payRepo, svcRepo, nil, nil, nil, time.Minute, nil)
	uc := NewFinanceUseCase(loader, calendar.New(time.UTC), fuzzy.DefaultOptions(), memo, time.Minute, nil)

	t.Run("miss computes and stores", func(t *testing.T) {
		memo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, nil)
		memo.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), time.Minute).Return(nil)

		mo, err := uc.MonthOverview(context.Background(), "2024-06")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !mo.Earned.Equal(dec("1149")) {
			t.Fatalf("unexpected earned: %s", mo.Earned)
		}
	})

	t.Run("hit returns stored result", func(t *testing.T) {
		stored, _ := json.Marshal(map[string]any{"Year": 2024, "Month": 6, "Earned": "7", "Paid": "0"})
		memo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, true, nil)

		mo, err := uc.MonthOverview(context.Background(), "2024-06")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !mo.Earned.Equal(dec("7")) {
			t.Fatalf("expected memoized value, got %s", mo.Earned)
		}
	})
}

func TestSnapshotLoader_Load(t *testing.T) {
	t.Run("cache hit skips repositories", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payRepo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		svcRepo := mock_interfaces.NewMockIServiceRepository(ctrl)
		cache := mock_interfaces.NewMockICache(ctrl)

		b, _ := json.Marshal(Snapshot{Payments: fixturePayments(), Fingerprint: "abc"})
		cache.EXPECT().Get(gomock.Any(), SnapshotKey).Return(b, true, nil)

		snap, err := NewSnapshotLoader(payRepo, svcRepo, nil, cache, nil, time.Minute, nil).Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(snap.Payments) != 3 || snap.Fingerprint != "abc" {
			t.Fatalf("unexpected snapshot: %+v", snap)
		}
	})

	t.Run("fetch fills both caches", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payRepo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		svcRepo := mock_interfaces.NewMockIServiceRepository(ctrl)
		cache := mock_interfaces.NewMockICache(ctrl)
		offline := mock_interfaces.NewMockICache(ctrl)

		cache.EXPECT().Get(gomock.Any(), SnapshotKey).Return(nil, false, nil)
		payRepo.EXPECT().List(gomock.Any()).Return(fixturePayments(), nil)
		svcRepo.EXPECT().List(gomock.Any()).Return(fixtureServices(), nil)
		cache.EXPECT().Set(gomock.Any(), SnapshotKey, gomock.Any(), 30*time.Second).Return(nil)
		offline.EXPECT().Set(gomock.Any(), SnapshotKey, gomock.Any(), time.Duration(0)).Return(nil)

		snap, err := NewSnapshotLoader(payRepo, svcRepo, nil, cache, offline, 30*time.Second, nil).Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if snap.Fingerprint == "" || snap.Offline {
			t.Fatalf("unexpected snapshot: %+v", snap)
		}
	})

	t.Run("repository failure falls back to offline copy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payRepo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		svcRepo := mock_interfaces.NewMockIServiceRepository(ctrl)
		offline := mock_interfaces.NewMockICache(ctrl)

		b, _ := json.Marshal(Snapshot{Services: fixtureServices()})
		payRepo.EXPECT().List(gomock.Any()).Return(nil, errors.New("dynamodb down"))
		offline.EXPECT().Get(gomock.Any(), SnapshotKey).Return(b, true, nil)

		snap, err := NewSnapshotLoader(payRepo, svcRepo, nil, nil, offline, time.Minute, nil).Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !snap.Offline || len(snap.Services) != 4 || snap.Fingerprint == "" {
			t.Fatalf("unexpected snapshot: %+v", snap)
		}
	})

	t.Run("no data anywhere", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payRepo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		svcRepo := mock_interfaces.NewMockIServiceRepository(ctrl)
		offline := mock_interfaces.NewMockICache(ctrl)

		payRepo.EXPECT().List(gomock.Any()).Return(nil, errors.New("dynamodb down"))
		offline.EXPECT().Get(gomock.Any(), SnapshotKey).Return(nil, false, nil)

		_, err := NewSnapshotLoader(payRepo, svcRepo, nil, nil, offline, time.Minute, nil).Load(context.Background())
		if !errors.Is(err, ErrSnapshotUnavailable) {
			t.Fatalf("expected ErrSnapshotUnavailable, got %v", err)
		}
	})

	t.Run("directory failure is tolerated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payRepo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		svcRepo := mock_interfaces.NewMockIServiceRepository(ctrl)
		partners := mock_interfaces.NewMockIPartnerDirectory(ctrl)

		payRepo.EXPECT().List(gomock.Any()).Return(fixturePayments(), nil)
		svcRepo.EXPECT().List(gomock.Any()).Return(fixtureServices(), nil)
		partners.EXPECT().ListPartnerNames(gomock.Any()).Return(nil, errors.New("users table missing"))

		snap, err := NewSnapshotLoader(payRepo, svcRepo, partners, nil, nil, time.Minute, nil).Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if snap.Partners == nil || len(snap.Partners) != 0 {
			t.Fatalf("expected empty directory, got %+v", snap.Partners)
		}
	})
}

func TestFingerprint_IgnoresFetchTime(t *testing.T) {
	a := Snapshot{Payments: fixturePayments(), FetchedAt: june12}
	b := Snapshot{Payments: fixturePayments(), FetchedAt: june19}
	if fingerprint(a) != fingerprint(b) {
		t.Fatalf("fetch time must not change the fingerprint")
	}
	b.Payments[0].Total = dec("1")
	if fingerprint(a) == fingerprint(b) {
		t.Fatalf("content change must change the fingerprint")
	}
}
