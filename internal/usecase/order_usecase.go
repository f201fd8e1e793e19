package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"pesapal_gateway/internal/domain/entities"
	"pesapal_gateway/internal/infrastructure/payments"
	"pesapal_gateway/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound              = errors.New("order not found")
	ErrInvalidOrderTrackingID     = errors.New("invalid order_tracking_id")
	ErrInvalidMerchantReference   = errors.New("invalid merchant_reference")
	ErrInvalidOrderAmount         = errors.New("invalid order amount")
	ErrInvalidCurrency            = errors.New("invalid currency")
	ErrInvalidBillingAddress      = errors.New("billing address needs email_address or phone_number")
	ErrMissingCallbackURL         = errors.New("missing callback_url")
	ErrOrderNotAccepted           = errors.New("order not accepted by payment gateway")
	ErrPaymentGatewayBadRequest   = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayUnavailable  = errors.New("payment gateway unavailable")
	ErrPaymentGatewayRegistration = errors.New("payment gateway ipn registration failed")
)

const (
	merchantReferencePrefix = "ORD-"
	maxDescriptionLength    = 100
)

// SubmitOrderInput is what a caller provides to start a payment.
//
// MerchantReference, Description, CallbackURL and NotificationID are optional:
// a reference is generated, and the use case defaults fill the rest.
type SubmitOrderInput struct {
	MerchantReference string
	Amount            float64
	Currency          string
	Description       string
	CallbackURL       string
	NotificationID    string
	PaymentMethod     string
	BillingAddress    entities.BillingAddress
}

// IOrderUseCase submits Pesapal orders and tracks their status.

type IOrderUseCase interface {
	SubmitOrder(ctx context.Context, in SubmitOrderInput) (entities.Order, error)
	GetTransactionStatus(ctx context.Context, orderTrackingID string) (entities.TransactionStatus, error)
	GetByTrackingID(ctx context.Context, orderTrackingID string) (entities.Order, error)
	ListByMerchantReference(ctx context.Context, merchantReference string) ([]entities.Order, error)
}

type OrderUseCase struct {
	repo                  interfaces.IOrderRepository
	gateway               interfaces.IPaymentGateway
	defaultCallbackURL    string
	defaultNotificationID string
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

// NewOrderUseCase builds the use case. callbackURL and notificationID are
// applied to orders that do not carry their own; either may be empty.
func NewOrderUseCase(repo interfaces.IOrderRepository, gateway interfaces.IPaymentGateway, callbackURL, notificationID string) *OrderUseCase {
	return &OrderUseCase{
		repo:                  repo,
		gateway:               gateway,
		defaultCallbackURL:    strings.TrimSpace(callbackURL),
		defaultNotificationID: strings.TrimSpace(notificationID),
	}
}

func (u *OrderUseCase) SubmitOrder(ctx context.Context, in SubmitOrderInput) (entities.Order, error) {
	log.Printf("[order][usecase] submit start raw_reference=%q amount=%.2f currency=%q", in.MerchantReference, in.Amount, in.Currency)
	if in.Amount <= 0 {
		log.Printf("[order][usecase] invalid amount=%.2f", in.Amount)
		return entities.Order{}, ErrInvalidOrderAmount
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if len(currency) != 3 {
		log.Printf("[order][usecase] invalid currency=%q", in.Currency)
		return entities.Order{}, ErrInvalidCurrency
	}
	billing := in.BillingAddress
	billing.EmailAddress = strings.TrimSpace(billing.EmailAddress)
	billing.PhoneNumber = strings.TrimSpace(billing.PhoneNumber)
	if billing.EmailAddress == "" && billing.PhoneNumber == "" {
		log.Printf("[order][usecase] invalid billing address (no email/phone)")
		return entities.Order{}, ErrInvalidBillingAddress
	}
	callbackURL := firstNonEmpty(in.CallbackURL, u.defaultCallbackURL)
	if callbackURL == "" {
		log.Printf("[order][usecase] missing callback url")
		return entities.Order{}, ErrMissingCallbackURL
	}
	if u.gateway == nil {
		log.Printf("[order][usecase] gateway not configured")
		return entities.Order{}, errors.New("payment gateway not configured")
	}
	if u.repo == nil {
		log.Printf("[order][usecase] order repository not configured")
		return entities.Order{}, errors.New("order repository not configured")
	}

	reference := strings.TrimSpace(in.MerchantReference)
	if reference == "" {
		reference = merchantReferencePrefix + uuid.NewString()
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = fmt.Sprintf("Order %s", reference)
	}
	if r := []rune(description); len(r) > maxDescriptionLength {
		description = string(r[:maxDescriptionLength])
	}
	notificationID := firstNonEmpty(in.NotificationID, u.defaultNotificationID)
	paymentMethod := strings.TrimSpace(in.PaymentMethod)

	details := entities.OrderDetails{
		entities.OrderFieldID:          reference,
		"currency":                     currency,
		"amount":                       in.Amount,
		"description":                  description,
		entities.OrderFieldCallbackURL: callbackURL,
		"billing_address":              billing,
	}
	// Without an id here the gateway client resolves one from its cache or
	// registers callbackURL.
	if notificationID != "" {
		details[entities.OrderFieldNotificationID] = notificationID
	}
	if paymentMethod != "" {
		details["payment_method"] = paymentMethod
	}

	log.Printf("[order][usecase] calling payment gateway merchant_reference=%s", reference)
	resp, err := u.gateway.SubmitOrder(ctx, details)
	if err != nil {
		log.Printf("[order][usecase] payment gateway failed merchant_reference=%s err=%v", reference, err)
		return entities.Order{}, mapGatewayError(err)
	}

	redirectURL := resp.String("redirect_url")
	trackingID := resp.String("order_tracking_id")
	if redirectURL == "" || trackingID == "" {
		msg := resp.ErrorMessage()
		if msg == "" {
			msg = "Failed to create payment link."
		}
		log.Printf("[order][usecase] order not accepted merchant_reference=%s err=%s", reference, msg)
		return entities.Order{}, fmt.Errorf("%w: %s", ErrOrderNotAccepted, msg)
	}
	log.Printf("[order][usecase] payment gateway success merchant_reference=%s order_tracking_id=%s", reference, trackingID)

	raw, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[order][usecase] response marshal failed merchant_reference=%s err=%v", reference, err)
	}

	if v := resp.String("merchant_reference"); v != "" {
		reference = v
	}
	if notificationID == "" {
		// the gateway client injected one; it is cached by now
		id, err := u.gateway.NotificationID(ctx, callbackURL, false)
		if err != nil {
			log.Printf("[order][usecase] notification id read-back failed merchant_reference=%s err=%v", reference, err)
		}
		notificationID = id
	}
	now := time.Now().UTC()
	o := entities.Order{
		OrderTrackingID:   trackingID,
		MerchantReference: reference,
		Amount:            in.Amount,
		Currency:          currency,
		Description:       description,
		PaymentMethod:     paymentMethod,
		CallbackURL:       callbackURL,
		NotificationID:    notificationID,
		RedirectURL:       redirectURL,
		Status:            entities.OrderStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
		GatewayPayloadRaw: raw,
	}

	created, err := u.repo.Create(ctx, o)
	if err != nil {
		log.Printf("[order][usecase] order repository create failed order_tracking_id=%s err=%v", trackingID, err)
		return entities.Order{}, err
	}
	log.Printf("[order][usecase] submit success order_tracking_id=%s merchant_reference=%s", created.OrderTrackingID, created.MerchantReference)
	return created, nil
}

// GetTransactionStatus queries the gateway and records the observed status on
// the stored order, if there is one. A failed local update is logged and does
// not fail the lookup.
func (u *OrderUseCase) GetTransactionStatus(ctx context.Context, orderTrackingID string) (entities.TransactionStatus, error) {
	orderTrackingID = strings.TrimSpace(orderTrackingID)
	if orderTrackingID == "" {
		return entities.TransactionStatus{}, ErrInvalidOrderTrackingID
	}
	if u.gateway == nil {
		return entities.TransactionStatus{}, errors.New("payment gateway not configured")
	}
	log.Printf("[order][usecase] status start order_tracking_id=%s", orderTrackingID)

	resp, err := u.gateway.GetTransactionStatus(ctx, orderTrackingID)
	if err != nil {
		log.Printf("[order][usecase] status gateway failed order_tracking_id=%s err=%v", orderTrackingID, err)
		return entities.TransactionStatus{}, mapGatewayError(err)
	}
	status := entities.ParseOrderStatus(resp.String("payment_status_description"))

	if u.repo != nil {
		u.recordStatus(ctx, orderTrackingID, status, resp)
	}
	log.Printf("[order][usecase] status success order_tracking_id=%s status=%s", orderTrackingID, status)

	return entities.TransactionStatus{
		OrderTrackingID: orderTrackingID,
		Status:          status,
		Payload:         resp,
	}, nil
}

func (u *OrderUseCase) recordStatus(ctx context.Context, orderTrackingID string, status entities.OrderStatus, resp entities.GatewayResponse) {
	existing, err := u.repo.GetByTrackingID(ctx, orderTrackingID)
	if err != nil {
		log.Printf("[order][usecase] status load order failed order_tracking_id=%s err=%v", orderTrackingID, err)
		return
	}
	if existing.OrderTrackingID == "" {
		log.Printf("[order][usecase] status for unknown order order_tracking_id=%s", orderTrackingID)
		return
	}
	if existing.Status == status {
		return
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[order][usecase] status marshal failed order_tracking_id=%s err=%v", orderTrackingID, err)
		raw = nil
	}
	if _, err := u.repo.UpdateStatus(ctx, orderTrackingID, status, raw); err != nil {
		log.Printf("[order][usecase] status update failed order_tracking_id=%s err=%v", orderTrackingID, err)
		return
	}
	log.Printf("[order][usecase] status updated order_tracking_id=%s from=%s to=%s", orderTrackingID, existing.Status, status)
}

func (u *OrderUseCase) GetByTrackingID(ctx context.Context, orderTrackingID string) (entities.Order, error) {
	orderTrackingID = strings.TrimSpace(orderTrackingID)
	if orderTrackingID == "" {
		return entities.Order{}, ErrInvalidOrderTrackingID
	}
	if u.repo == nil {
		return entities.Order{}, errors.New("order repository not configured")
	}

	o, err := u.repo.GetByTrackingID(ctx, orderTrackingID)
	if err != nil {
		return entities.Order{}, err
	}
	if o.OrderTrackingID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

// ListByMerchantReference returns the orders submitted under a merchant
// reference, newest first.
func (u *OrderUseCase) ListByMerchantReference(ctx context.Context, merchantReference string) ([]entities.Order, error) {
	merchantReference = strings.TrimSpace(merchantReference)
	if merchantReference == "" {
		return nil, ErrInvalidMerchantReference
	}
	if u.repo == nil {
		return nil, errors.New("order repository not configured")
	}

	orders, err := u.repo.ListByMerchantReference(ctx, merchantReference)
	if err != nil {
		log.Printf("[order][usecase] list failed merchant_reference=%s err=%v", merchantReference, err)
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// mapGatewayError tags client errors with a use case sentinel while keeping
// the original error in the chain.
func mapGatewayError(err error) error {
	var gwErr *payments.GatewayError
	switch {
	case errors.Is(err, payments.ErrAuthentication):
		return fmt.Errorf("%w: %w", ErrPaymentGatewayUnauthorized, err)
	case errors.Is(err, payments.ErrRegistration):
		return fmt.Errorf("%w: %w", ErrPaymentGatewayRegistration, err)
	case errors.Is(err, payments.ErrTransport), errors.Is(err, payments.ErrInvalidResponse):
		return fmt.Errorf("%w: %w", ErrPaymentGatewayUnavailable, err)
	case errors.As(err, &gwErr):
		switch {
		case gwErr.StatusCode == http.StatusUnauthorized || gwErr.StatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrPaymentGatewayUnauthorized, err)
		case gwErr.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %w", ErrPaymentGatewayUnavailable, err)
		default:
			// 4xx and HTTP 200 with a failing embedded status.
			return fmt.Errorf("%w: %w", ErrPaymentGatewayBadRequest, err)
		}
	default:
		return err
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
