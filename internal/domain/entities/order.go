package entities

import (
	"encoding/json"
	"strings"
	"time"
)

// OrderStatus mirrors Pesapal's payment_status_description values.
//
// PENDING is local: the order was accepted by the gateway but no status has
// been observed yet.

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusFailed    OrderStatus = "FAILED"
	OrderStatusInvalid   OrderStatus = "INVALID"
	OrderStatusReversed  OrderStatus = "REVERSED"
)

// ParseOrderStatus maps a payment_status_description (case-insensitive) to an
// OrderStatus. Unknown or empty values map to PENDING.
func ParseOrderStatus(description string) OrderStatus {
	switch OrderStatus(strings.ToUpper(strings.TrimSpace(description))) {
	case OrderStatusCompleted:
		return OrderStatusCompleted
	case OrderStatusFailed:
		return OrderStatusFailed
	case OrderStatusInvalid:
		return OrderStatusInvalid
	case OrderStatusReversed:
		return OrderStatusReversed
	default:
		return OrderStatusPending
	}
}

// IsFinal reports whether no further status change is expected.
func (s OrderStatus) IsFinal() bool {
	return s == OrderStatusCompleted || s == OrderStatusFailed || s == OrderStatusReversed
}

// Order is a payment order submitted to Pesapal.
//
// Storage model (DynamoDB):
//   - PK: order_tracking_id
//   - GSI (merchant_reference-index): merchant_reference
//
// GatewayPayloadRaw keeps the last gateway body (submit or status) for audit.

type Order struct {
	OrderTrackingID   string      `json:"order_tracking_id"`
	MerchantReference string      `json:"merchant_reference"`
	Amount            float64     `json:"amount"`
	Currency          string      `json:"currency"`
	Description       string      `json:"description"`
	PaymentMethod     string      `json:"payment_method,omitempty"`
	CallbackURL       string      `json:"callback_url"`
	NotificationID    string      `json:"notification_id"`
	RedirectURL       string      `json:"redirect_url"`
	Status            OrderStatus `json:"status"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`

	GatewayPayloadRaw json.RawMessage `json:"gateway_payload_raw,omitempty"`
}

// TransactionStatus is the outcome of a GetTransactionStatus lookup.
type TransactionStatus struct {
	OrderTrackingID string          `json:"order_tracking_id"`
	Status          OrderStatus     `json:"status"`
	Payload         GatewayResponse `json:"payload"`
}

// BillingAddress is Pesapal's billing_address object. Either EmailAddress or
// PhoneNumber must be set.
type BillingAddress struct {
	EmailAddress string `json:"email_address,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
	FirstName    string `json:"first_name,omitempty"`
	MiddleName   string `json:"middle_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Line1        string `json:"line_1,omitempty"`
	Line2        string `json:"line_2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	ZipCode      string `json:"zip_code,omitempty"`
}
