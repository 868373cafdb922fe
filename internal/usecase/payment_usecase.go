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
	"mimo_finance/internal/domain/lifecycle"
	"mimo_finance/internal/domain/reconciler"
	"mimo_finance/internal/usecase/interfaces"
	"mimo_finance/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrNoServices                 = errors.New("at least one service is required")
	ErrUnknownService             = errors.New("unknown service")
	ErrServiceAlreadyLinked       = errors.New("service already linked to another payment")
	ErrPaymentNotModifiable       = errors.New("payment lines can no longer change")
	ErrIllegalTransition          = errors.New("action not allowed in the current status")
	ErrReasonRequired             = errors.New("a reason is required")
	ErrEmptyNote                  = errors.New("note text is required")
	ErrInvalidAmount              = errors.New("amounts must not be negative")
	ErrPaymentGatewayBadRequest   = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayNotAvailable = errors.New("payment gateway not configured")

	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
	ErrPayoutRejected                 = errors.New("payout rejected by the payment provider")
)

// CreatePaymentCommand opens a weekly payment. A zero WeekStart places the
// payment in the week of its earliest service.
type CreatePaymentCommand struct {
	PartnerID   string
	PartnerName string
	ServiceIDs  []string
	WeekStart   time.Time
	Note        string
}

// UpdateLinesCommand replaces a payment's services. Drafts carry edited
// per-line amounts keyed by service id; they supersede stored values.
type UpdateLinesCommand struct {
	ServiceIDs []string
	Drafts     map[string]decimal.Decimal
}

// ImportResult counts the records written by Import.
type ImportResult struct {
	Payments int
	Services int
}

// IPaymentUseCase is the write side. Every mutation is validated here, written
// conditionally on the expected status and followed by a snapshot refresh.
type IPaymentUseCase interface {
	Create(ctx context.Context, cmd CreatePaymentCommand) (entities.Payment, error)
	UpdateLines(ctx context.Context, paymentID string, cmd UpdateLinesCommand) (entities.Payment, error)
	Apply(ctx context.Context, paymentID string, action lifecycle.Action, note string) (entities.Payment, error)
	AddNote(ctx context.Context, paymentID, text string) (entities.Payment, error)
	Import(ctx context.Context, payments []entities.Payment, services []entities.Service) (ImportResult, error)
}

type PaymentUseCase struct {
	payments interfaces.IPaymentRepository
	services interfaces.IServiceRepository
	gateway  interfaces.IPaymentGateway
	loader   *SnapshotLoader
	cal      calendar.Calendar
	log      *zap.Logger
	now      func() time.Time
	newID    func() string
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

// NewPaymentUseCase wires the write side. loader is used only to invalidate
// the read-side snapshot and may be nil.
func NewPaymentUseCase(payments interfaces.IPaymentRepository, services interfaces.IServiceRepository, gateway interfaces.IPaymentGateway, loader *SnapshotLoader, cal calendar.Calendar, log *zap.Logger) *PaymentUseCase {
	return &PaymentUseCase{
		payments: payments,
		services: services,
		gateway:  gateway,
		loader:   loader,
		cal:      cal,
		log:      logger.OrNop(log),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (u *PaymentUseCase) Create(ctx context.Context, cmd CreatePaymentCommand) (entities.Payment, error) {
	partnerID := strings.TrimSpace(cmd.PartnerID)
	log := u.log.With(zap.String("partner_id", partnerID))
	log.Info("[payment][usecase] create start", zap.Int("services", len(cmd.ServiceIDs)))

	if partnerID == "" {
		return entities.Payment{}, ErrInvalidPartnerID
	}
	ids := cleanIDs(cmd.ServiceIDs)
	if len(ids) == 0 {
		return entities.Payment{}, ErrNoServices
	}

	idx, resolved, pidx, err := u.indexes(ctx)
	if err != nil {
		log.Error("[payment][usecase] loading indexes failed", zap.Error(err))
		return entities.Payment{}, err
	}
	lines, err := linesFor(ids, entities.Payment{}, idx)
	if err != nil {
		return entities.Payment{}, err
	}
	if conflicts := pidx.Conflicts(ids, ""); len(conflicts) > 0 {
		log.Info("[payment][usecase] double booking rejected", zap.Strings("service_ids", conflicts))
		return entities.Payment{}, fmt.Errorf("%w: %s", ErrServiceAlreadyLinked, strings.Join(conflicts, ", "))
	}

	anchor := cmd.WeekStart
	if anchor.IsZero() {
		anchor = earliestServiceDate(lines)
	}
	if anchor.IsZero() {
		anchor = u.now()
	}
	week := u.cal.WeekContaining(anchor)

	now := u.now().UTC()
	p := entities.Payment{
		ID:          u.newID(),
		PartnerID:   partnerID,
		PartnerName: strings.TrimSpace(cmd.PartnerName),
		ServiceIDs:  ids,
		WeekStart:   week.Start,
		WeekEnd:     week.End,
		CreatedAt:   now,
		Status:      entities.PaymentStatusPending,
	}
	p.Total = aggregator.LineTotal(p, lines)
	if text := strings.TrimSpace(cmd.Note); text != "" {
		p.NotesLog = []entities.Note{u.note(text)}
	}

	if err := u.detach(ctx, resolved, ids, p.ID); err != nil {
		return entities.Payment{}, err
	}
	created, err := u.payments.Create(ctx, p)
	if err != nil {
		log.Error("[payment][usecase] repository create failed", zap.String("payment_id", p.ID), zap.Error(err))
		return entities.Payment{}, err
	}
	u.loader.Invalidate(ctx)
	log.Info("[payment][usecase] create success",
		zap.String("payment_id", created.ID),
		zap.String("week", week.Key),
		zap.String("total", created.Total.StringFixed(2)))
	return created, nil
}

func (u *PaymentUseCase) UpdateLines(ctx context.Context, paymentID string, cmd UpdateLinesCommand) (entities.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	log := u.log.With(zap.String("payment_id", paymentID))
	log.Info("[payment][usecase] update lines start", zap.Int("services", len(cmd.ServiceIDs)), zap.Int("drafts", len(cmd.Drafts)))

	if paymentID == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}
	ids := cleanIDs(cmd.ServiceIDs)
	if len(ids) == 0 {
		return entities.Payment{}, ErrNoServices
	}
	for _, v := range cmd.Drafts {
		if v.IsNegative() {
			return entities.Payment{}, ErrInvalidAmount
		}
	}

	p, err := u.find(ctx, paymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	if !lifecycle.IsModifiable(p.Status) {
		log.Info("[payment][usecase] payment locked", zap.String("status", string(p.Status)))
		return entities.Payment{}, ErrPaymentNotModifiable
	}

	idx, resolved, pidx, err := u.indexes(ctx)
	if err != nil {
		return entities.Payment{}, err
	}
	lines, err := linesFor(ids, p, idx)
	if err != nil {
		return entities.Payment{}, err
	}
	if conflicts := pidx.Conflicts(ids, paymentID); len(conflicts) > 0 {
		log.Info("[payment][usecase] double booking rejected", zap.Strings("service_ids", conflicts))
		return entities.Payment{}, fmt.Errorf("%w: %s", ErrServiceAlreadyLinked, strings.Join(conflicts, ", "))
	}

	total := aggregator.LineTotalWithDrafts(p, lines, cmd.Drafts)
	embedded := keptEmbedded(p.Embedded, ids, cmd.Drafts)

	for _, line := range lines {
		v, ok := cmd.Drafts[line.ID]
		if !ok || v.Equal(line.FinalValue) || hasService(p.Embedded, line.ID) {
			continue
		}
		if _, err := u.services.UpdateFinalValue(ctx, line.ID, v); err != nil {
			log.Error("[payment][usecase] service value update failed", zap.String("service_id", line.ID), zap.Error(err))
			return entities.Payment{}, err
		}
	}

	if err := u.detach(ctx, resolved, ids, paymentID); err != nil {
		return entities.Payment{}, err
	}
	updated, err := u.payments.UpdateLines(ctx, paymentID, interfaces.LinesUpdate{
		From:       withStored(modifiableStatuses(), p.Status),
		ServiceIDs: ids,
		Embedded:   embedded,
		Total:      total,
		Note:       u.note(fmt.Sprintf("lines updated: %d services, total %s", len(ids), total.StringFixed(2))),
	})
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return entities.Payment{}, ErrPaymentNotModifiable
		}
		log.Error("[payment][usecase] repository update lines failed", zap.Error(err))
		return entities.Payment{}, err
	}
	if updated.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	u.loader.Invalidate(ctx)
	log.Info("[payment][usecase] update lines success", zap.String("total", total.StringFixed(2)))
	return updated, nil
}

// Apply runs one lifecycle action. Decline needs a reason; mark_paid creates
// the payout before the status moves. Leaving the editable states requires
// every line to be free of other active payments.
func (u *PaymentUseCase) Apply(ctx context.Context, paymentID string, action lifecycle.Action, note string) (entities.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	note = strings.TrimSpace(note)
	log := u.log.With(zap.String("payment_id", paymentID), zap.String("action", string(action)))
	log.Info("[payment][usecase] transition start")

	if paymentID == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}
	if lifecycle.RequiresReason(action) && note == "" {
		return entities.Payment{}, ErrReasonRequired
	}

	p, err := u.find(ctx, paymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	current := lifecycle.Normalize(string(p.Status))
	next, ok := lifecycle.Transition(current, action)
	if !ok {
		log.Info("[payment][usecase] transition rejected", zap.String("status", string(current)))
		return entities.Payment{}, ErrIllegalTransition
	}
	if lifecycle.IsModifiable(current) && !lifecycle.IsModifiable(next) {
		if err := u.ensureExclusive(ctx, p); err != nil {
			return entities.Payment{}, err
		}
	}

	text := fmt.Sprintf("%s: %s -> %s", action, current, next)
	if note != "" {
		text += ": " + note
	}
	upd := interfaces.StatusUpdate{
		From: withStored(lifecycle.SourcesOf(action), p.Status),
		To:   next,
		Note: u.note(text),
	}

	if action == lifecycle.ActionMarkPaid {
		providerID, err := u.payout(ctx, p)
		if err != nil {
			return entities.Payment{}, err
		}
		upd.PaidAt = u.now().UTC()
		upd.ProviderPaymentID = providerID
	}

	updated, err := u.payments.UpdateStatus(ctx, paymentID, upd)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			log.Info("[payment][usecase] transition lost a race", zap.String("status", string(current)))
			return entities.Payment{}, ErrIllegalTransition
		}
		log.Error("[payment][usecase] repository update status failed", zap.Error(err))
		return entities.Payment{}, err
	}
	if updated.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	u.loader.Invalidate(ctx)
	log.Info("[payment][usecase] transition success", zap.String("from", string(current)), zap.String("to", string(updated.Status)))
	return updated, nil
}

// AddNote appends to the audit trail. Notes are accepted in every status.
func (u *PaymentUseCase) AddNote(ctx context.Context, paymentID, text string) (entities.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	text = strings.TrimSpace(text)
	if paymentID == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}
	if text == "" {
		return entities.Payment{}, ErrEmptyNote
	}
	updated, err := u.payments.AppendNote(ctx, paymentID, u.note(text))
	if err != nil {
		u.log.Error("[payment][usecase] append note failed", zap.String("payment_id", paymentID), zap.Error(err))
		return entities.Payment{}, err
	}
	if updated.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	u.loader.Invalidate(ctx)
	return updated, nil
}

// Import writes decoded records as they are. Payments without an id get one;
// statuses are normalized.
func (u *PaymentUseCase) Import(ctx context.Context, payments []entities.Payment, services []entities.Service) (ImportResult, error) {
	u.log.Info("[payment][usecase] import start", zap.Int("payments", len(payments)), zap.Int("services", len(services)))
	var res ImportResult
	for _, s := range services {
		if strings.TrimSpace(s.ID) == "" {
			continue
		}
		if err := u.services.Put(ctx, s); err != nil {
			u.log.Error("[payment][usecase] import service failed", zap.String("service_id", s.ID), zap.Error(err))
			return res, err
		}
		res.Services++
	}
	for _, p := range payments {
		if strings.TrimSpace(p.ID) == "" {
			p.ID = u.newID()
		}
		p.Status = lifecycle.Normalize(string(p.Status))
		if err := u.payments.Put(ctx, p); err != nil {
			u.log.Error("[payment][usecase] import payment failed", zap.String("payment_id", p.ID), zap.Error(err))
			return res, err
		}
		res.Payments++
	}
	if res.Payments > 0 || res.Services > 0 {
		u.loader.Invalidate(ctx)
	}
	u.log.Info("[payment][usecase] import success", zap.Int("payments", res.Payments), zap.Int("services", res.Services))
	return res, nil
}

func (u *PaymentUseCase) find(ctx context.Context, id string) (entities.Payment, error) {
	p, err := u.payments.GetByID(ctx, id)
	if err != nil {
		u.log.Error("[payment][usecase] repository get failed", zap.String("payment_id", id), zap.Error(err))
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

// indexes reads storage directly; double-booking checks must not trust a
// cached snapshot.
func (u *PaymentUseCase) indexes(ctx context.Context) (reconciler.ServiceIndex, []reconciler.ResolvedPayment, reconciler.PaymentIndex, error) {
	payments, err := u.payments.List(ctx)
	if err != nil {
		return nil, nil, reconciler.PaymentIndex{}, err
	}
	services, err := u.services.List(ctx)
	if err != nil {
		return nil, nil, reconciler.PaymentIndex{}, err
	}
	idx := reconciler.NewServiceIndex(services)
	resolved := reconciler.ResolveAll(payments, idx)
	return idx, resolved, reconciler.BuildPaymentIndex(resolved), nil
}

// ensureExclusive rejects p when one of its lines is owned by another payment
// past the editable states.
func (u *PaymentUseCase) ensureExclusive(ctx context.Context, p entities.Payment) error {
	idx, _, pidx, err := u.indexes(ctx)
	if err != nil {
		u.log.Error("[payment][usecase] loading indexes failed", zap.String("payment_id", p.ID), zap.Error(err))
		return err
	}
	lines := reconciler.ResolveServiceLines(p, idx)
	if conflicts := pidx.Conflicts(reconciler.LineIDs(lines), p.ID); len(conflicts) > 0 {
		u.log.Info("[payment][usecase] double booking rejected",
			zap.String("payment_id", p.ID),
			zap.Strings("service_ids", conflicts))
		return fmt.Errorf("%w: %s", ErrServiceAlreadyLinked, strings.Join(conflicts, ", "))
	}
	return nil
}

// detach takes ids out of every other editable payment still holding them, so
// a service that moves is counted in one payment only. The write is
// conditional: an owner that left the editable states meanwhile keeps its
// lines and the move fails.
func (u *PaymentUseCase) detach(ctx context.Context, resolved []reconciler.ResolvedPayment, ids []string, targetID string) error {
	moving := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		moving[id] = struct{}{}
	}
	for _, rp := range resolved {
		if rp.Payment.ID == targetID || !lifecycle.IsModifiable(rp.Payment.Status) {
			continue
		}
		var moved []string
		kept := make([]entities.Service, 0, len(rp.Lines))
		for _, l := range rp.Lines {
			if _, ok := moving[l.ID]; ok && l.ID != "" {
				moved = append(moved, l.ID)
				continue
			}
			kept = append(kept, l)
		}
		if len(moved) == 0 {
			continue
		}

		total := decimal.Zero
		if len(kept) > 0 {
			total = aggregator.LineTotal(rp.Payment, kept)
		}
		keptIDs := make([]string, 0, len(rp.Payment.ServiceIDs))
		for _, id := range cleanIDs(rp.Payment.ServiceIDs) {
			if _, ok := moving[id]; !ok {
				keptIDs = append(keptIDs, id)
			}
		}
		_, err := u.payments.UpdateLines(ctx, rp.Payment.ID, interfaces.LinesUpdate{
			From:       withStored(modifiableStatuses(), rp.Payment.Status),
			ServiceIDs: keptIDs,
			Embedded:   withoutServices(rp.Payment.Embedded, moving),
			Total:      total,
			Note:       u.note(fmt.Sprintf("services moved to %s: %s", targetID, strings.Join(moved, ", "))),
		})
		if err != nil {
			if errors.Is(err, interfaces.ErrConditionFailed) {
				u.log.Info("[payment][usecase] previous owner locked during move",
					zap.String("payment_id", rp.Payment.ID),
					zap.Strings("service_ids", moved))
				return fmt.Errorf("%w: %s", ErrServiceAlreadyLinked, strings.Join(moved, ", "))
			}
			u.log.Error("[payment][usecase] detaching services failed", zap.String("payment_id", rp.Payment.ID), zap.Error(err))
			return err
		}
		u.log.Info("[payment][usecase] services moved",
			zap.String("from_payment_id", rp.Payment.ID),
			zap.String("to_payment_id", targetID),
			zap.Strings("service_ids", moved))
	}
	return nil
}

// payout pays the partner the payment's total through the gateway.
func (u *PaymentUseCase) payout(ctx context.Context, p entities.Payment) (string, error) {
	if u.gateway == nil {
		u.log.Error("[payment][usecase] gateway not configured", zap.String("payment_id", p.ID))
		return "", ErrPaymentGatewayNotAvailable
	}
	services, err := u.services.List(ctx)
	if err != nil {
		return "", err
	}
	lines := reconciler.ResolveServiceLines(p, reconciler.NewServiceIndex(services))
	total := aggregator.PaymentTotal(p, lines)

	payload, err := json.Marshal(map[string]any{
		"transaction_amount": total.InexactFloat64(),
		"description":        fmt.Sprintf("Weekly payment %s", u.cal.WeekContaining(p.Anchor()).Key),
		"external_reference": p.ID,
		"metadata": map[string]any{
			"partner_id": p.PartnerID,
			"services":   len(lines),
		},
	})
	if err != nil {
		return "", err
	}

	key := payoutKey(p)
	providerID, providerStatus, _, err := u.gateway.CreatePayment(ctx, key, payload)
	if err != nil {
		u.log.Error("[payment][usecase] payment gateway failed", zap.String("payment_id", p.ID), zap.Error(err))
		switch {
		case isGatewayInvalidUsers(err):
			return "", ErrPaymentGatewayInvalidUsers
		case isGatewayCustomerNotFound(err):
			return "", ErrPaymentGatewayCustomerNotFound
		case isGatewayUnauthorized(err):
			return "", ErrPaymentGatewayUnauthorized
		case isGatewayBadRequest(err):
			return "", ErrPaymentGatewayBadRequest
		}
		return "", err
	}
	switch strings.ToLower(providerStatus) {
	case "rejected", "cancelled":
		u.log.Warn("[payment][usecase] payout rejected",
			zap.String("payment_id", p.ID),
			zap.String("idempotency_key", key),
			zap.String("provider_payment_id", providerID),
			zap.String("provider_status", providerStatus))
		// the note advances the idempotency key so the next attempt is a new payout
		text := fmt.Sprintf("%s: provider payment %s is %s", payoutRejectedNote, providerID, providerStatus)
		if _, err := u.payments.AppendNote(ctx, p.ID, u.note(text)); err != nil {
			u.log.Error("[payment][usecase] recording rejected payout failed", zap.String("payment_id", p.ID), zap.Error(err))
			return "", err
		}
		u.loader.Invalidate(ctx)
		return "", ErrPayoutRejected
	}
	u.log.Info("[payment][usecase] payment gateway success",
		zap.String("payment_id", p.ID),
		zap.String("provider_payment_id", providerID),
		zap.String("provider_status", providerStatus))
	return providerID, nil
}

func (u *PaymentUseCase) note(text string) entities.Note {
	return entities.Note{ID: u.newID(), At: u.now().UTC(), Text: text}
}

func modifiableStatuses() []entities.PaymentStatus {
	return []entities.PaymentStatus{
		entities.PaymentStatusPending,
		entities.PaymentStatusOnHold,
		entities.PaymentStatusDeclined,
	}
}

// withStored adds the status exactly as stored when it is a legacy spelling,
// so the conditional write still matches the record.
func withStored(from []entities.PaymentStatus, stored entities.PaymentStatus) []entities.PaymentStatus {
	for _, s := range from {
		if s == stored {
			return from
		}
	}
	return append(from, stored)
}

// cleanIDs trims, drops empties and dedupes, keeping first-seen order.
func cleanIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// linesFor resolves ids the way a payment's lines resolve: p's embedded copy
// first, then the service table.
func linesFor(ids []string, p entities.Payment, idx reconciler.ServiceIndex) ([]entities.Service, error) {
	lines := make([]entities.Service, 0, len(ids))
	var missing []string
	for _, id := range ids {
		s, ok := embeddedService(p.Embedded, id)
		if !ok {
			s, ok = idx[id]
		}
		if !ok {
			missing = append(missing, id)
			continue
		}
		lines = append(lines, s)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, strings.Join(missing, ", "))
	}
	return lines, nil
}

func embeddedService(embedded []entities.Service, id string) (entities.Service, bool) {
	for _, s := range embedded {
		if strings.TrimSpace(s.ID) == id {
			return s, true
		}
	}
	return entities.Service{}, false
}

func hasService(embedded []entities.Service, id string) bool {
	_, ok := embeddedService(embedded, id)
	return ok
}

// keptEmbedded returns the embedded copies still listed in ids, once each,
// with drafts applied.
func keptEmbedded(embedded []entities.Service, ids []string, drafts map[string]decimal.Decimal) []entities.Service {
	var out []entities.Service
	for _, id := range ids {
		s, ok := embeddedService(embedded, id)
		if !ok {
			continue
		}
		s.ID = id
		if v, ok := drafts[id]; ok {
			s.FinalValue = v
		}
		out = append(out, s)
	}
	return out
}

func withoutServices(embedded []entities.Service, drop map[string]struct{}) []entities.Service {
	var out []entities.Service
	for _, s := range embedded {
		if _, ok := drop[strings.TrimSpace(s.ID)]; ok {
			continue
		}
		out = append(out, s)
	}
	return out
}

const payoutRejectedNote = "payout rejected"

// payoutKey is stable for a payment until a rejected payout is recorded on it,
// so retries and concurrent mark_paid calls reach the provider as one payout.
func payoutKey(p entities.Payment) string {
	attempt := 0
	for _, n := range p.NotesLog {
		if strings.HasPrefix(n.Text, payoutRejectedNote) {
			attempt++
		}
	}
	return fmt.Sprintf("payout-%s-%d", p.ID, attempt)
}

func earliestServiceDate(lines []entities.Service) time.Time {
	var earliest time.Time
	for _, l := range lines {
		if l.ServiceDate.IsZero() {
			continue
		}
		if earliest.IsZero() || l.ServiceDate.Before(earliest) {
			earliest = l.ServiceDate
		}
	}
	return earliest
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayInvalidUsers(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034")
}

func isGatewayCustomerNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}
