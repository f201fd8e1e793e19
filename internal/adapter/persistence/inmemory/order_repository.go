package inmemory

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"pesapal_gateway/internal/domain/entities"
	"pesapal_gateway/internal/usecase/interfaces"
)

var ErrOrderAlreadyExists = errors.New("order already exists")

// OrderRepository keeps orders in process memory. It is meant for local runs
// and the CLI, where no DynamoDB table is available.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]entities.Order
}

var _ interfaces.IOrderRepository = (*OrderRepository)(nil)

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]entities.Order)}
}

func (r *OrderRepository) Create(_ context.Context, o entities.Order) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[o.OrderTrackingID]; exists {
		return entities.Order{}, ErrOrderAlreadyExists
	}
	r.orders[o.OrderTrackingID] = o
	return o, nil
}

func (r *OrderRepository) GetByTrackingID(_ context.Context, orderTrackingID string) (entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.orders[orderTrackingID], nil
}

func (r *OrderRepository) ListByMerchantReference(_ context.Context, merchantReference string) ([]entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Order, 0)
	for _, o := range r.orders {
		if o.MerchantReference == merchantReference {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, orderTrackingID string, status entities.OrderStatus, payload json.RawMessage) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderTrackingID]
	if !ok {
		return entities.Order{}, nil
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	if len(payload) > 0 {
		o.GatewayPayloadRaw = payload
	}
	r.orders[orderTrackingID] = o
	return o, nil
}
