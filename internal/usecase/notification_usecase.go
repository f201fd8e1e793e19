package usecase

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"pesapal_gateway/internal/domain/entities"
	"pesapal_gateway/internal/usecase/interfaces"
)

var (
	ErrInvalidIPNURL = errors.New("invalid ipn url")
)

// INotificationUseCase covers the IPN side of the integration:
//   - registering the URL Pesapal notifies (RegisterIPN)
//   - processing a notification when Pesapal calls it (HandleCallback)

type INotificationUseCase interface {
	RegisterIPN(ctx context.Context, ipnURL string, forceRefresh bool) (string, error)
	HandleCallback(ctx context.Context, evt entities.IPNEvent) entities.IPNAck
}

type NotificationUseCase struct {
	gateway interfaces.IPaymentGateway
	orders  IOrderUseCase
}

var _ INotificationUseCase = (*NotificationUseCase)(nil)

func NewNotificationUseCase(gateway interfaces.IPaymentGateway, orders IOrderUseCase) *NotificationUseCase {
	return &NotificationUseCase{gateway: gateway, orders: orders}
}

// RegisterIPN returns the notification id for ipnURL. Unless forceRefresh is
// set, a previously cached id is returned without contacting the gateway.
func (u *NotificationUseCase) RegisterIPN(ctx context.Context, ipnURL string, forceRefresh bool) (string, error) {
	ipnURL = strings.TrimSpace(ipnURL)
	if !isAbsoluteHTTPURL(ipnURL) {
		log.Printf("[ipn][usecase] invalid url=%q", ipnURL)
		return "", ErrInvalidIPNURL
	}
	if u.gateway == nil {
		return "", errors.New("payment gateway not configured")
	}
	log.Printf("[ipn][usecase] register start url=%s force_refresh=%t", ipnURL, forceRefresh)

	id, err := u.gateway.NotificationID(ctx, ipnURL, forceRefresh)
	if err != nil {
		log.Printf("[ipn][usecase] register failed url=%s err=%v", ipnURL, err)
		return "", mapGatewayError(err)
	}
	log.Printf("[ipn][usecase] register success url=%s ipn_id=%s", ipnURL, id)
	return id, nil
}

// HandleCallback processes one IPN call. The notification itself carries no
// status, so the order status is fetched from the gateway and recorded.
// The returned ack has status 200 when that succeeded and 500 otherwise, which
// makes Pesapal retry the notification.
func (u *NotificationUseCase) HandleCallback(ctx context.Context, evt entities.IPNEvent) entities.IPNAck {
	ack := entities.IPNAck{
		OrderNotificationType:  evt.OrderNotificationType,
		OrderTrackingID:        evt.OrderTrackingID,
		OrderMerchantReference: evt.OrderMerchantReference,
		Status:                 http.StatusInternalServerError,
	}
	log.Printf("[ipn][usecase] IPN received: TrackingID=%s, MerchantRef=%s, Type=%s", evt.OrderTrackingID, evt.OrderMerchantReference, evt.OrderNotificationType)

	if strings.TrimSpace(evt.OrderTrackingID) == "" {
		log.Printf("[ipn][usecase] callback without OrderTrackingId")
		return ack
	}
	if u.orders == nil {
		log.Printf("[ipn][usecase] order use case not configured")
		return ack
	}

	status, err := u.orders.GetTransactionStatus(ctx, evt.OrderTrackingID)
	if err != nil {
		log.Printf("[ipn][usecase] callback status lookup failed order_tracking_id=%s err=%v", evt.OrderTrackingID, err)
		return ack
	}
	log.Printf("[ipn][usecase] callback processed order_tracking_id=%s status=%s", evt.OrderTrackingID, status.Status)

	ack.Status = http.StatusOK
	return ack
}

func isAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
