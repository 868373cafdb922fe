// Package aggregator produces monetary summaries by partner, client, week and
// month from reconciled payments.
//
// Two time notions stay separate throughout: "earned in" places a payment by
// its business week (weekStart, else createdAt); "paid in" places a PAID
// payment by paidAt.
package aggregator

import (
	"sort"
	"strings"
	"time"

	"mimo_finance/internal/domain/calendar"
	"mimo_finance/internal/domain/entities"
	"mimo_finance/internal/domain/fuzzy"
	"mimo_finance/internal/domain/lifecycle"
	"mimo_finance/internal/domain/reconciler"

	"github.com/shopspring/decimal"
)

const (
	UnknownPartner = "Unknown Partner"
	UnknownClient  = "Unknown Client"
)

// Directory resolves partner display names by id.
type Directory interface {
	PartnerName(id string) (string, bool)
}

// DirectoryMap is a Directory backed by a plain map.
type DirectoryMap map[string]string

func (d DirectoryMap) PartnerName(id string) (string, bool) {
	n, ok := d[id]
	n = strings.TrimSpace(n)
	return n, ok && n != ""
}

// Aggregator derives totals and summaries from resolved payments.
type Aggregator struct {
	cal   calendar.Calendar
	dir   Directory
	fuzzy fuzzy.Options
}

func New(cal calendar.Calendar, dir Directory, opts fuzzy.Options) *Aggregator {
	if dir == nil {
		dir = DirectoryMap(nil)
	}
	return &Aggregator{cal: cal, dir: dir, fuzzy: opts}
}

func (a *Aggregator) Calendar() calendar.Calendar { return a.cal }

// EarnedWeek is the business week a payment belongs to. Zero when the payment
// has no usable date.
func (a *Aggregator) EarnedWeek(p entities.Payment) entities.BusinessWeek {
	return a.cal.WeekContaining(p.Anchor())
}

func (a *Aggregator) EarnedInWeek(p entities.Payment, w entities.BusinessWeek) bool {
	if w.IsZero() {
		return false
	}
	return a.EarnedWeek(p).Key == w.Key
}

// EarnedInMonth attributes a payment to the month holding its week start.
func (a *Aggregator) EarnedInMonth(p entities.Payment, year int, month time.Month) bool {
	w := a.EarnedWeek(p)
	if w.IsZero() {
		return false
	}
	return w.Start.Year() == year && w.Start.Month() == month
}

// PaidInMonth reports whether a PAID payment was paid in the month. A PAID
// payment missing paidAt falls back to its earned anchor.
func (a *Aggregator) PaidInMonth(p entities.Payment, year int, month time.Month) bool {
	if lifecycle.Normalize(string(p.Status)) != entities.PaymentStatusPaid {
		return false
	}
	at := p.PaidAt
	if at.IsZero() {
		at = p.Anchor()
	}
	return a.cal.InMonth(at, year, month)
}

// PartnerSummary is one row of a partner ranking.
type PartnerSummary struct {
	PartnerID    string
	DisplayName  string
	PaymentCount int
	ServiceCount int
	Revenue      decimal.Decimal
}

type partnerRow struct {
	id       string
	name     string
	payments int
	services int
	amount   decimal.Decimal
	at       time.Time
}

// PartnerSummaries ranks partners by revenue across resolved payments.
func (a *Aggregator) PartnerSummaries(resolved []reconciler.ResolvedPayment) []PartnerSummary {
	rows := make([]partnerRow, 0, len(resolved))
	for _, rp := range resolved {
		rows = append(rows, partnerRow{
			id:       strings.TrimSpace(rp.Payment.PartnerID),
			name:     rp.Payment.PartnerName,
			payments: 1,
			services: len(rp.Lines),
			amount:   PaymentTotal(rp.Payment, rp.Lines),
			at:       rp.Payment.Anchor(),
		})
	}
	return a.groupPartners(rows)
}

// PartnerServiceRanking ranks partners by the services they performed.
func (a *Aggregator) PartnerServiceRanking(services []entities.Service) []PartnerSummary {
	rows := make([]partnerRow, 0, len(services))
	for _, s := range services {
		rows = append(rows, partnerRow{
			id:       strings.TrimSpace(s.PartnerID),
			name:     s.PartnerName,
			services: 1,
			amount:   s.FinalValue,
			at:       s.ServiceDate,
		})
	}
	return a.groupPartners(rows)
}

// groupPartners accumulates rows by partner id. The last non-empty inline name
// wins, then the directory, then UnknownPartner. Rows without an id are merged
// by fuzzy name.
func (a *Aggregator) groupPartners(rows []partnerRow) []PartnerSummary {
	byID := map[string]*PartnerSummary{}
	inline := map[string]string{}
	var order []string
	var anonymous []partnerRow

	for _, r := range rows {
		if r.id == "" {
			anonymous = append(anonymous, r)
			continue
		}
		s, ok := byID[r.id]
		if !ok {
			s = &PartnerSummary{PartnerID: r.id, Revenue: decimal.Zero}
			byID[r.id] = s
			order = append(order, r.id)
		}
		s.PaymentCount += r.payments
		s.ServiceCount += r.services
		s.Revenue = s.Revenue.Add(r.amount)
		if n := strings.TrimSpace(r.name); n != "" {
			inline[r.id] = n
		}
	}

	out := make([]PartnerSummary, 0, len(order)+1)
	for _, id := range order {
		s := byID[id]
		s.DisplayName = a.partnerName(id, inline[id])
		out = append(out, *s)
	}

	for _, c := range fuzzy.Group(anonymous, func(r partnerRow) string { return r.name }, func(r partnerRow) time.Time { return r.at }, a.fuzzy) {
		s := PartnerSummary{DisplayName: c.Name, Revenue: decimal.Zero}
		if c.Key == "" {
			s.DisplayName = UnknownPartner
		}
		for _, r := range c.Members {
			s.PaymentCount += r.payments
			s.ServiceCount += r.services
			s.Revenue = s.Revenue.Add(r.amount)
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue.GreaterThan(out[j].Revenue) })
	return out
}

func (a *Aggregator) partnerName(id, inline string) string {
	if inline != "" {
		return inline
	}
	if n, ok := a.dir.PartnerName(id); ok {
		return n
	}
	return UnknownPartner
}

// ClientSummary is the cost attributed to one (fuzzy-merged) client.
type ClientSummary struct {
	Key         string
	DisplayName string
	Count       int
	Total       decimal.Decimal
	Items       []entities.Service
}

// ClientBreakdown sums, per client, the services of every payment earned in
// week. A service reachable through several payments counts once.
func (a *Aggregator) ClientBreakdown(resolved []reconciler.ResolvedPayment, week entities.BusinessWeek) []ClientSummary {
	seen := map[string]struct{}{}
	var lines []entities.Service
	for _, rp := range resolved {
		if !a.EarnedInWeek(rp.Payment, week) {
			continue
		}
		for _, l := range rp.Lines {
			key := a.DedupeKey(l)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			lines = append(lines, l)
		}
	}

	clusters := fuzzy.Group(lines, entities.Service.ClientName, func(s entities.Service) time.Time { return s.ServiceDate }, a.fuzzy)
	out := make([]ClientSummary, 0, len(clusters))
	for _, c := range clusters {
		cs := ClientSummary{Key: c.Key, DisplayName: c.Name, Total: decimal.Zero, Items: c.Members}
		if c.Key == "" {
			cs.DisplayName = UnknownClient
		}
		for _, s := range c.Members {
			cs.Count++
			cs.Total = cs.Total.Add(s.FinalValue)
		}
		out = append(out, cs)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out
}

// DedupeKey identifies a service across payments: its id, or for id-less
// copies a composite of client name, day, service type and amount.
func (a *Aggregator) DedupeKey(s entities.Service) string {
	if id := strings.TrimSpace(s.ID); id != "" {
		return "id:" + id
	}
	day := ""
	if !s.ServiceDate.IsZero() {
		day = s.ServiceDate.In(a.cal.Location()).Format("2006-01-02")
	}
	return strings.Join([]string{
		fuzzy.NameKey(s.ClientName()),
		day,
		fuzzy.NameKey(s.ServiceType.DisplayName()),
		s.FinalValue.String(),
	}, "|")
}

// WeekTotal is the earned amount for one business week.
type WeekTotal struct {
	Week         entities.BusinessWeek
	PaymentCount int
	ServiceCount int
	Total        decimal.Decimal
}

// WeeklyTotals buckets payments by earned week, ascending. Payments without a
// usable date are left out.
func (a *Aggregator) WeeklyTotals(resolved []reconciler.ResolvedPayment) []WeekTotal {
	byKey := map[string]*WeekTotal{}
	for _, rp := range resolved {
		w := a.EarnedWeek(rp.Payment)
		if w.IsZero() {
			continue
		}
		wt, ok := byKey[w.Key]
		if !ok {
			wt = &WeekTotal{Week: w, Total: decimal.Zero}
			byKey[w.Key] = wt
		}
		wt.add(rp)
	}
	out := make([]WeekTotal, 0, len(byKey))
	for _, wt := range byKey {
		out = append(out, *wt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week.Start.Before(out[j].Week.Start) })
	return out
}

func (wt *WeekTotal) add(rp reconciler.ResolvedPayment) {
	wt.PaymentCount++
	wt.ServiceCount += len(rp.Lines)
	wt.Total = wt.Total.Add(PaymentTotal(rp.Payment, rp.Lines))
}

// MonthOverview combines the weeks attributed to a month with what was paid in it.
type MonthOverview struct {
	Year      int
	Month     time.Month
	Weeks     []WeekTotal
	Earned    decimal.Decimal
	Paid      decimal.Decimal
	PaidCount int
}

func (a *Aggregator) MonthOverview(resolved []reconciler.ResolvedPayment, year int, month time.Month) MonthOverview {
	weeks := a.cal.WeeksIntersectingMonth(year, month)
	mo := MonthOverview{Year: year, Month: month, Weeks: make([]WeekTotal, len(weeks)), Earned: decimal.Zero, Paid: decimal.Zero}
	pos := make(map[string]int, len(weeks))
	for i, w := range weeks {
		mo.Weeks[i] = WeekTotal{Week: w, Total: decimal.Zero}
		pos[w.Key] = i
	}

	for _, rp := range resolved {
		if a.EarnedInMonth(rp.Payment, year, month) {
			if i, ok := pos[a.EarnedWeek(rp.Payment).Key]; ok {
				mo.Weeks[i].add(rp)
				mo.Earned = mo.Earned.Add(PaymentTotal(rp.Payment, rp.Lines))
			}
		}
		if a.PaidInMonth(rp.Payment, year, month) {
			mo.PaidCount++
			mo.Paid = mo.Paid.Add(PaymentTotal(rp.Payment, rp.Lines))
		}
	}
	return mo
}
