package interfaces

import (
	"context"

	"pesapal_gateway/internal/domain/entities"
)

// IPaymentGateway abstracts the Pesapal API client.
//
// Responses are returned verbatim so callers can persist them for
// traceability.
type IPaymentGateway interface {
	RegisterIPN(ctx context.Context, ipnURL string) (entities.GatewayResponse, error)
	NotificationID(ctx context.Context, callbackURL string, forceRefresh bool) (string, error)
	SubmitOrder(ctx context.Context, order entities.OrderDetails) (entities.GatewayResponse, error)
	GetTransactionStatus(ctx context.Context, orderTrackingID string) (entities.GatewayResponse, error)
}
