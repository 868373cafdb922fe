package interfaces

import "context"

// IPartnerDirectory lists partner display names keyed by partner id.
type IPartnerDirectory interface {
	ListPartnerNames(ctx context.Context) (map[string]string, error)
}
