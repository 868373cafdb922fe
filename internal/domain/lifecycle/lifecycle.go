// Package lifecycle describes the payment status machine.
//
// It only computes which actions are legal and how a status reads for a given
// audience. Enforcing a transition is the job of whoever persists it.
package lifecycle

import (
	"strings"

	"mimo_finance/internal/domain/entities"
)

// Action is an admin operation that moves a payment between statuses.
type Action string

const (
	ActionShare    Action = "share"
	ActionApprove  Action = "approve"
	ActionDecline  Action = "decline"
	ActionMarkPaid Action = "mark_paid"
	ActionHold     Action = "hold"
	ActionResume   Action = "resume"
)

type Audience string

const (
	AudienceAdmin   Audience = "admin"
	AudiencePartner Audience = "partner"
)

// Service-level payment statuses.
const (
	ServiceNotLinked = "not linked"
	ServicePending   = "pending"
	ServicePaid      = "paid"
	ServiceDeclined  = "declined"
)

var transitions = map[entities.PaymentStatus]map[Action]entities.PaymentStatus{
	entities.PaymentStatusPending: {
		ActionShare: entities.PaymentStatusShared,
		ActionHold:  entities.PaymentStatusOnHold,
	},
	entities.PaymentStatusOnHold: {
		ActionShare:  entities.PaymentStatusShared,
		ActionResume: entities.PaymentStatusPending,
	},
	entities.PaymentStatusDeclined: {
		ActionShare: entities.PaymentStatusShared,
	},
	entities.PaymentStatusShared: {
		ActionApprove: entities.PaymentStatusApproved,
		ActionDecline: entities.PaymentStatusDeclined,
	},
	entities.PaymentStatusApproved: {
		ActionMarkPaid: entities.PaymentStatusPaid,
	},
}

// Actions is the legality map a UI uses to enable or disable controls.
type Actions struct {
	CanShare     bool `json:"canShare"`
	CanApprove   bool `json:"canApprove"`
	CanDecline   bool `json:"canDecline"`
	CanMarkPaid  bool `json:"canMarkPaid"`
	CanHold      bool `json:"canHold"`
	CanResume    bool `json:"canResume"`
	CanEditLines bool `json:"canEditLines"`
}

// Normalize maps a raw status string onto a known status. An empty status is
// the implicit initial state, PENDING.
func Normalize(raw string) entities.PaymentStatus {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	switch s {
	case "":
		return entities.PaymentStatusPending
	case "AWAITING_APPROVAL":
		return entities.PaymentStatusShared
	case "ONHOLD", "HOLD":
		return entities.PaymentStatusOnHold
	}
	return entities.PaymentStatus(s)
}

// Transition returns the status reached by applying action to from.
func Transition(from entities.PaymentStatus, action Action) (entities.PaymentStatus, bool) {
	next, ok := transitions[Normalize(string(from))][action]
	return next, ok
}

// CanApply reports whether action is legal from status.
func CanApply(status entities.PaymentStatus, action Action) bool {
	_, ok := Transition(status, action)
	return ok
}

// SourcesOf lists every status from which action is legal.
func SourcesOf(action Action) []entities.PaymentStatus {
	var out []entities.PaymentStatus
	for _, s := range []entities.PaymentStatus{
		entities.PaymentStatusPending,
		entities.PaymentStatusOnHold,
		entities.PaymentStatusDeclined,
		entities.PaymentStatusShared,
		entities.PaymentStatusApproved,
	} {
		if CanApply(s, action) {
			out = append(out, s)
		}
	}
	return out
}

// RequiresReason reports whether the action must carry a note.
func RequiresReason(action Action) bool {
	return action == ActionDecline
}

// IsModifiable reports whether linkage and line amounts may still change.
// Every other state only accepts new notes.
func IsModifiable(status entities.PaymentStatus) bool {
	switch Normalize(string(status)) {
	case entities.PaymentStatusPending, entities.PaymentStatusOnHold, entities.PaymentStatusDeclined:
		return true
	}
	return false
}

// LegalActions computes the legality map for status.
func LegalActions(status entities.PaymentStatus) Actions {
	return Actions{
		CanShare:     CanApply(status, ActionShare),
		CanApprove:   CanApply(status, ActionApprove),
		CanDecline:   CanApply(status, ActionDecline),
		CanMarkPaid:  CanApply(status, ActionMarkPaid),
		CanHold:      CanApply(status, ActionHold),
		CanResume:    CanApply(status, ActionResume),
		CanEditLines: IsModifiable(status),
	}
}

// VisibleToPartner reports whether the owning partner may see a payment.
// CREATING and PENDING are admin-only.
func VisibleToPartner(status entities.PaymentStatus) bool {
	switch Normalize(string(status)) {
	case entities.PaymentStatusShared,
		entities.PaymentStatusApproved,
		entities.PaymentStatusPaid,
		entities.PaymentStatusDeclined,
		entities.PaymentStatusOnHold:
		return true
	}
	return false
}

// DisplayStatus renders status for an audience. Partners see everything
// before approval as "pending".
func DisplayStatus(status entities.PaymentStatus, audience Audience) string {
	s := Normalize(string(status))
	if audience == AudiencePartner {
		switch s {
		case entities.PaymentStatusCreating, entities.PaymentStatusPending, entities.PaymentStatusShared:
			return "pending"
		case entities.PaymentStatusOnHold:
			return "on hold"
		}
		return strings.ToLower(string(s))
	}

	switch s {
	case entities.PaymentStatusShared:
		return "AWAITING APPROVAL"
	case entities.PaymentStatusOnHold:
		return "ON HOLD"
	}
	return string(s)
}

// ServiceStatus is the payment status shown next to a linked service.
func ServiceStatus(status entities.PaymentStatus) string {
	switch Normalize(string(status)) {
	case entities.PaymentStatusPaid:
		return ServicePaid
	case entities.PaymentStatusDeclined:
		return ServiceDeclined
	}
	return ServicePending
}
