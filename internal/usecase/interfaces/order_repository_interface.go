package interfaces

import (
	"context"
	"encoding/json"

	"pesapal_gateway/internal/domain/entities"
)

// IOrderRepository persists submitted orders.
//
// Lookups return a zero Order and a nil error when nothing matches.

type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByTrackingID(ctx context.Context, orderTrackingID string) (entities.Order, error)
	ListByMerchantReference(ctx context.Context, merchantReference string) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, orderTrackingID string, status entities.OrderStatus, payload json.RawMessage) (entities.Order, error)
}
