package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"mimo_finance/internal/domain/aggregator"
	"mimo_finance/internal/domain/calendar"
	"mimo_finance/internal/domain/entities"
	"mimo_finance/internal/domain/fuzzy"
	"mimo_finance/internal/domain/lifecycle"
	"mimo_finance/internal/domain/reconciler"
	"mimo_finance/internal/usecase/interfaces"
	"mimo_finance/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidMonth     = errors.New("invalid month, expected YYYY-MM")
	ErrInvalidPeriod    = errors.New("exactly one of week or month is required")
	ErrInvalidPartnerID = errors.New("invalid partner_id")
	ErrInvalidPaymentID = errors.New("invalid payment_id")
	ErrPaymentNotFound  = errors.New("payment not found")
)

// PeriodQuery selects either the business week containing Week (YYYY-MM-DD)
// or the calendar month Month (YYYY-MM).
type PeriodQuery struct {
	Week  string
	Month string
}

// PaymentLines is a payment with its resolved services and derived amounts.
type PaymentLines struct {
	Payment   entities.Payment
	Lines     []entities.Service
	Week      entities.BusinessWeek
	LineTotal decimal.Decimal
	Total     decimal.Decimal
	Actions   lifecycle.Actions
}

// PartnerRanking is a ranking plus the window it was computed for.
type PartnerRanking struct {
	Weeks    []entities.BusinessWeek
	Partners []aggregator.PartnerSummary
}

// ClientBreakdown is the per-client cost of one business week.
type ClientBreakdown struct {
	Week    entities.BusinessWeek
	Clients []aggregator.ClientSummary
}

// IFinanceUseCase is the read side: every operation aggregates over the
// current snapshot and never mutates it.
type IFinanceUseCase interface {
	Week(ctx context.Context, date string) (entities.BusinessWeek, error)
	MonthWeeks(ctx context.Context, month string) ([]entities.BusinessWeek, error)
	PartnerRanking(ctx context.Context, q PeriodQuery) (PartnerRanking, error)
	ClientBreakdown(ctx context.Context, date string) (ClientBreakdown, error)
	MonthOverview(ctx context.Context, month string) (aggregator.MonthOverview, error)
	ServiceStatuses(ctx context.Context) (map[string]reconciler.ServicePaymentStatus, error)
	PaymentLines(ctx context.Context, paymentID string) (PaymentLines, error)
	PaymentActions(ctx context.Context, paymentID string) (lifecycle.Actions, error)
	PartnerWallet(ctx context.Context, partnerID string) (aggregator.PartnerWallet, error)
}

type FinanceUseCase struct {
	loader *SnapshotLoader
	cal    calendar.Calendar
	opts   fuzzy.Options
	memo   interfaces.ICache
	ttl    time.Duration
	log    *zap.Logger
	now    func() time.Time
}

var _ IFinanceUseCase = (*FinanceUseCase)(nil)

// NewFinanceUseCase wires the read side. memo may be nil to disable result
// memoization.
func NewFinanceUseCase(loader *SnapshotLoader, cal calendar.Calendar, opts fuzzy.Options, memo interfaces.ICache, ttl time.Duration, log *zap.Logger) *FinanceUseCase {
	return &FinanceUseCase{
		loader: loader,
		cal:    cal,
		opts:   opts,
		memo:   memo,
		ttl:    ttl,
		log:    logger.OrNop(log),
		now:    time.Now,
	}
}

// view is one snapshot resolved and ready to aggregate.
type view struct {
	snap     Snapshot
	agg      *aggregator.Aggregator
	resolved []reconciler.ResolvedPayment
}

func (u *FinanceUseCase) view(ctx context.Context) (view, error) {
	snap, err := u.loader.Load(ctx)
	if err != nil {
		return view{}, err
	}
	idx := reconciler.NewServiceIndex(snap.Services)
	return view{
		snap:     snap,
		agg:      aggregator.New(u.cal, aggregator.DirectoryMap(snap.Partners), u.opts),
		resolved: reconciler.ResolveAll(snap.Payments, idx),
	}, nil
}

func (u *FinanceUseCase) Week(_ context.Context, date string) (entities.BusinessWeek, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return u.cal.Current(u.now()), nil
	}
	t, ok := u.cal.ParseDate(date)
	if !ok {
		return entities.BusinessWeek{}, ErrInvalidDate
	}
	return u.cal.WeekContaining(t), nil
}

func (u *FinanceUseCase) MonthWeeks(_ context.Context, month string) ([]entities.BusinessWeek, error) {
	year, m, ok := u.month(month)
	if !ok {
		return nil, ErrInvalidMonth
	}
	return u.cal.WeeksIntersectingMonth(year, m), nil
}

func (u *FinanceUseCase) PartnerRanking(ctx context.Context, q PeriodQuery) (PartnerRanking, error) {
	week, month := strings.TrimSpace(q.Week), strings.TrimSpace(q.Month)
	if (week == "") == (month == "") {
		return PartnerRanking{}, ErrInvalidPeriod
	}

	var weeks []entities.BusinessWeek
	if week != "" {
		w, err := u.Week(ctx, week)
		if err != nil {
			return PartnerRanking{}, err
		}
		weeks = []entities.BusinessWeek{w}
	} else {
		ws, err := u.MonthWeeks(ctx, month)
		if err != nil {
			return PartnerRanking{}, err
		}
		weeks = ws
	}

	v, err := u.view(ctx)
	if err != nil {
		return PartnerRanking{}, err
	}
	query := "week=" + week + "&month=" + month
	return memoize(ctx, u, "partners", query, v.snap, func() PartnerRanking {
		inWindow := make([]reconciler.ResolvedPayment, 0, len(v.resolved))
		for _, rp := range v.resolved {
			for _, w := range weeks {
				if v.agg.EarnedInWeek(rp.Payment, w) {
					inWindow = append(inWindow, rp)
					break
				}
			}
		}
		return PartnerRanking{Weeks: weeks, Partners: v.agg.PartnerSummaries(inWindow)}
	}), nil
}

func (u *FinanceUseCase) ClientBreakdown(ctx context.Context, date string) (ClientBreakdown, error) {
	week, err := u.Week(ctx, date)
	if err != nil {
		return ClientBreakdown{}, err
	}
	v, err := u.view(ctx)
	if err != nil {
		return ClientBreakdown{}, err
	}
	return memoize(ctx, u, "clients", week.Key, v.snap, func() ClientBreakdown {
		return ClientBreakdown{Week: week, Clients: v.agg.ClientBreakdown(v.resolved, week)}
	}), nil
}

func (u *FinanceUseCase) MonthOverview(ctx context.Context, month string) (aggregator.MonthOverview, error) {
	year, m, ok := u.month(month)
	if !ok {
		return aggregator.MonthOverview{}, ErrInvalidMonth
	}
	v, err := u.view(ctx)
	if err != nil {
		return aggregator.MonthOverview{}, err
	}
	return memoize(ctx, u, "month", fmt.Sprintf("%04d-%02d", year, m), v.snap, func() aggregator.MonthOverview {
		return v.agg.MonthOverview(v.resolved, year, m)
	}), nil
}

func (u *FinanceUseCase) ServiceStatuses(ctx context.Context) (map[string]reconciler.ServicePaymentStatus, error) {
	v, err := u.view(ctx)
	if err != nil {
		return nil, err
	}
	pidx := reconciler.BuildPaymentIndex(v.resolved)
	out := pidx.StatusLookup()
	for _, s := range v.snap.Services {
		if s.ID == "" {
			continue
		}
		if _, ok := out[s.ID]; !ok {
			out[s.ID] = pidx.StatusOf(s.ID)
		}
	}
	return out, nil
}

func (u *FinanceUseCase) PaymentLines(ctx context.Context, paymentID string) (PaymentLines, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return PaymentLines{}, ErrInvalidPaymentID
	}
	v, err := u.view(ctx)
	if err != nil {
		return PaymentLines{}, err
	}
	rp, ok := findResolved(v.resolved, paymentID)
	if !ok {
		u.log.Info("[finance][usecase] payment not found", zap.String("payment_id", paymentID))
		return PaymentLines{}, ErrPaymentNotFound
	}
	return PaymentLines{
		Payment:   rp.Payment,
		Lines:     rp.Lines,
		Week:      v.agg.EarnedWeek(rp.Payment),
		LineTotal: aggregator.LineTotal(rp.Payment, rp.Lines),
		Total:     aggregator.PaymentTotal(rp.Payment, rp.Lines),
		Actions:   lifecycle.LegalActions(rp.Payment.Status),
	}, nil
}

func (u *FinanceUseCase) PaymentActions(ctx context.Context, paymentID string) (lifecycle.Actions, error) {
	pl, err := u.PaymentLines(ctx, paymentID)
	if err != nil {
		return lifecycle.Actions{}, err
	}
	return pl.Actions, nil
}

func (u *FinanceUseCase) PartnerWallet(ctx context.Context, partnerID string) (aggregator.PartnerWallet, error) {
	partnerID = strings.TrimSpace(partnerID)
	if partnerID == "" {
		return aggregator.PartnerWallet{}, ErrInvalidPartnerID
	}
	v, err := u.view(ctx)
	if err != nil {
		return aggregator.PartnerWallet{}, err
	}
	return memoize(ctx, u, "wallet", partnerID, v.snap, func() aggregator.PartnerWallet {
		return v.agg.PartnerView(v.resolved, partnerID)
	}), nil
}

func (u *FinanceUseCase) month(s string) (int, time.Month, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		now := u.now().In(u.cal.Location())
		return now.Year(), now.Month(), true
	}
	return calendar.ParseMonth(s)
}

func findResolved(resolved []reconciler.ResolvedPayment, id string) (reconciler.ResolvedPayment, bool) {
	for _, rp := range resolved {
		if rp.Payment.ID == id {
			return rp, true
		}
	}
	return reconciler.ResolvedPayment{}, false
}

// memoize caches compute's result under the snapshot fingerprint, so a changed
// dataset never serves a stale result.
func memoize[T any](ctx context.Context, u *FinanceUseCase, kind, query string, snap Snapshot, compute func() T) T {
	if u.memo == nil || snap.Fingerprint == "" {
		return compute()
	}
	key := "result:" + kind + ":" + query + ":" + snap.Fingerprint

	if b, ok, err := u.memo.Get(ctx, key); err == nil && ok {
		var cached T
		if err := json.Unmarshal(b, &cached); err == nil {
			return cached
		}
	}

	v := compute()
	if b, err := json.Marshal(v); err == nil {
		if err := u.memo.Set(ctx, key, b, u.ttl); err != nil {
			u.log.Debug("[finance][usecase] memo write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return v
}
