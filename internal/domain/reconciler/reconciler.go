// Package reconciler turns a payment's service references (id lists, embedded
// legacy copies) into the concrete service lines it covers, and indexes which
// payment owns each service.
package reconciler

import (
	"strings"

	"mimo_finance/internal/domain/entities"
)

// ServiceIndex maps service id to the full service record.
type ServiceIndex map[string]entities.Service

// NewServiceIndex indexes services by id; a later duplicate replaces an earlier one.
func NewServiceIndex(services []entities.Service) ServiceIndex {
	idx := make(ServiceIndex, len(services))
	for _, s := range services {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			continue
		}
		s.ID = id
		idx[id] = s
	}
	return idx
}

// ResolvedPayment is a payment together with its resolved service lines.
type ResolvedPayment struct {
	Payment entities.Payment
	Lines   []entities.Service
}

// ResolveServiceLines returns the ordered, de-duplicated service lines of p.
//
// Ids from ServiceIDs come first in their original order, each resolved to the
// embedded copy when there is one, else to idx. Embedded services whose id was
// not listed follow. References that resolve to nothing are dropped.
func ResolveServiceLines(p entities.Payment, idx ServiceIndex) []entities.Service {
	embedded := make(map[string]entities.Service, len(p.Embedded))
	embeddedOrder := make([]entities.Service, 0, len(p.Embedded))
	for _, s := range p.Embedded {
		s.ID = strings.TrimSpace(s.ID)
		if s.ID != "" {
			if _, dup := embedded[s.ID]; dup {
				continue
			}
			embedded[s.ID] = s
		}
		embeddedOrder = append(embeddedOrder, s)
	}

	seen := make(map[string]struct{}, len(p.ServiceIDs)+len(embeddedOrder))
	lines := make([]entities.Service, 0, len(p.ServiceIDs)+len(embeddedOrder))
	for _, raw := range p.ServiceIDs {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if s, ok := embedded[id]; ok {
			lines = append(lines, s)
			continue
		}
		if s, ok := idx[id]; ok {
			lines = append(lines, s)
		}
	}

	for _, s := range embeddedOrder {
		if s.ID != "" {
			if _, ok := seen[s.ID]; ok {
				continue
			}
			seen[s.ID] = struct{}{}
		}
		lines = append(lines, s)
	}
	return lines
}

// ResolveAll resolves every payment, preserving input order.
func ResolveAll(payments []entities.Payment, idx ServiceIndex) []ResolvedPayment {
	out := make([]ResolvedPayment, 0, len(payments))
	for _, p := range payments {
		out = append(out, ResolvedPayment{Payment: p, Lines: ResolveServiceLines(p, idx)})
	}
	return out
}

// LineIDs returns the ids of lines that carry one.
func LineIDs(lines []entities.Service) []string {
	ids := make([]string, 0, len(lines))
	for _, s := range lines {
		if s.ID != "" {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
