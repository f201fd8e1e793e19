package response

import (
	"encoding/json"
	"time"

	"pesapal_gateway/internal/domain/entities"
)

type OrderResponse struct {
	OrderTrackingID   string    `json:"order_tracking_id"`
	MerchantReference string    `json:"merchant_reference"`
	RedirectURL       string    `json:"redirect_url"`
	Amount            float64   `json:"amount"`
	Currency          string    `json:"currency"`
	Description       string    `json:"description"`
	PaymentMethod     string    `json:"payment_method,omitempty"`
	NotificationID    string    `json:"notification_id,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	GatewayPayload map[string]interface{} `json:"gateway_payload,omitempty"`
}

func FromOrder(o entities.Order) OrderResponse {
	res := OrderResponse{
		OrderTrackingID:   o.OrderTrackingID,
		MerchantReference: o.MerchantReference,
		RedirectURL:       o.RedirectURL,
		Amount:            o.Amount,
		Currency:          o.Currency,
		Description:       o.Description,
		PaymentMethod:     o.PaymentMethod,
		NotificationID:    o.NotificationID,
		Status:            string(o.Status),
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
	if len(o.GatewayPayloadRaw) > 0 {
		var payload map[string]interface{}
		if err := json.Unmarshal(o.GatewayPayloadRaw, &payload); err == nil {
			res.GatewayPayload = payload
		}
	}
	return res
}

// TransactionStatusResponse wraps the raw GetTransactionStatus body with the
// status it maps to.
type TransactionStatusResponse struct {
	OrderTrackingID string                 `json:"order_tracking_id"`
	Status          string                 `json:"status"`
	Final           bool                   `json:"final"`
	Payload         map[string]interface{} `json:"payload"`
}

func FromTransactionStatus(s entities.TransactionStatus) TransactionStatusResponse {
	payload := map[string]interface{}(s.Payload)
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return TransactionStatusResponse{
		OrderTrackingID: s.OrderTrackingID,
		Status:          string(s.Status),
		Final:           s.Status.IsFinal(),
		Payload:         payload,
	}
}

func FromOrders(orders []entities.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

type RegisterIPNResponse struct {
	URL            string `json:"url"`
	NotificationID string `json:"notification_id"`
}
