package interfaces

import (
	"context"

	"mimo_finance/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// IServiceRepository abstracts persistence for Service. The finance core never
// writes services; only line edits and imports do.
type IServiceRepository interface {
	List(ctx context.Context) ([]entities.Service, error)
	Put(ctx context.Context, s entities.Service) error
	UpdateFinalValue(ctx context.Context, id string, value decimal.Decimal) (entities.Service, error)
}
