package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"mimo_finance/internal/domain/entities"
	"mimo_finance/internal/usecase/interfaces"
	"mimo_finance/pkg/logger"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// SnapshotKey is the cache key of the current finance snapshot. Writers
// invalidate it after every successful mutation.
const SnapshotKey = "snapshot"

var ErrSnapshotUnavailable = errors.New("finance data unavailable")

// Snapshot is the complete input the read side aggregates over.
// Fingerprint identifies its content, so derived results can be memoized.
type Snapshot struct {
	Payments    []entities.Payment `json:"payments"`
	Services    []entities.Service `json:"services"`
	Partners    map[string]string  `json:"partners"`
	FetchedAt   time.Time          `json:"fetchedAt"`
	Fingerprint string             `json:"fingerprint"`
	Offline     bool               `json:"-"`
}

// SnapshotLoader reads the snapshot from cache, then from the repositories,
// then from the offline store when the repositories fail.
type SnapshotLoader struct {
	payments interfaces.IPaymentRepository
	services interfaces.IServiceRepository
	partners interfaces.IPartnerDirectory
	cache    interfaces.ICache
	offline  interfaces.ICache
	ttl      time.Duration
	log      *zap.Logger
	now      func() time.Time
}

// NewSnapshotLoader wires the loader. cache, offline and partners may be nil.
func NewSnapshotLoader(payments interfaces.IPaymentRepository, services interfaces.IServiceRepository, partners interfaces.IPartnerDirectory, cache, offline interfaces.ICache, ttl time.Duration, log *zap.Logger) *SnapshotLoader {
	return &SnapshotLoader{
		payments: payments,
		services: services,
		partners: partners,
		cache:    cache,
		offline:  offline,
		ttl:      ttl,
		log:      logger.OrNop(log),
		now:      time.Now,
	}
}

// Load returns the cached snapshot when fresh, otherwise fetches it.
func (l *SnapshotLoader) Load(ctx context.Context) (Snapshot, error) {
	if snap, ok := l.read(ctx, l.cache); ok {
		return snap, nil
	}

	snap, err := l.Fetch(ctx)
	if err != nil {
		l.log.Warn("[finance][snapshot] fetch failed", zap.Error(err))
		if off, ok := l.read(ctx, l.offline); ok {
			off.Offline = true
			l.log.Warn("[finance][snapshot] serving offline snapshot", zap.Time("fetched_at", off.FetchedAt))
			return off, nil
		}
		return Snapshot{}, errors.Join(ErrSnapshotUnavailable, err)
	}

	b, err := json.Marshal(snap)
	if err != nil {
		l.log.Warn("[finance][snapshot] encode failed", zap.Error(err))
		return snap, nil
	}
	l.write(ctx, l.cache, b, l.ttl)
	l.write(ctx, l.offline, b, 0)
	return snap, nil
}

// Fetch reads straight from the repositories, bypassing every cache.
func (l *SnapshotLoader) Fetch(ctx context.Context) (Snapshot, error) {
	if l.payments == nil || l.services == nil {
		return Snapshot{}, errors.New("repositories not configured")
	}
	payments, err := l.payments.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	services, err := l.services.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	partners := map[string]string{}
	if l.partners != nil {
		names, err := l.partners.ListPartnerNames(ctx)
		if err != nil {
			// Names only decorate the output; inline names and the unknown
			// placeholder still apply.
			l.log.Warn("[finance][snapshot] partner directory failed", zap.Error(err))
		} else if names != nil {
			partners = names
		}
	}

	snap := Snapshot{
		Payments:  payments,
		Services:  services,
		Partners:  partners,
		FetchedAt: l.now().UTC(),
	}
	snap.Fingerprint = fingerprint(snap)
	l.log.Debug("[finance][snapshot] fetched",
		zap.Int("payments", len(payments)),
		zap.Int("services", len(services)),
		zap.String("fingerprint", snap.Fingerprint))
	return snap, nil
}

// Invalidate drops the shared snapshot. The offline copy is kept; it is only
// read when storage is unreachable.
func (l *SnapshotLoader) Invalidate(ctx context.Context) {
	if l == nil || l.cache == nil {
		return
	}
	if err := l.cache.Invalidate(ctx, SnapshotKey); err != nil {
		l.log.Warn("[finance][snapshot] invalidate failed", zap.Error(err))
	}
}

func (l *SnapshotLoader) read(ctx context.Context, c interfaces.ICache) (Snapshot, bool) {
	if c == nil {
		return Snapshot{}, false
	}
	b, ok, err := c.Get(ctx, SnapshotKey)
	if err != nil {
		l.log.Warn("[finance][snapshot] cache read failed", zap.Error(err))
		return Snapshot{}, false
	}
	if !ok {
		return Snapshot{}, false
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		l.log.Warn("[finance][snapshot] cached snapshot unreadable", zap.Error(err))
		return Snapshot{}, false
	}
	if snap.Fingerprint == "" {
		snap.Fingerprint = fingerprint(snap)
	}
	return snap, true
}

func (l *SnapshotLoader) write(ctx context.Context, c interfaces.ICache, b []byte, ttl time.Duration) {
	if c == nil {
		return
	}
	if err := c.Set(ctx, SnapshotKey, b, ttl); err != nil {
		l.log.Warn("[finance][snapshot] cache write failed", zap.Error(err))
	}
}

// fingerprint hashes the aggregation inputs. FetchedAt is left out so an
// unchanged dataset keeps its identity across refreshes.
func fingerprint(s Snapshot) string {
	b, err := json.Marshal(struct {
		Payments []entities.Payment `json:"p"`
		Services []entities.Service `json:"s"`
		Partners map[string]string  `json:"n"`
	}{s.Payments, s.Services, s.Partners})
	if err != nil {
		return ""
	}
	return strconv.FormatUint(xxhash.Sum64(b), 16)
}
