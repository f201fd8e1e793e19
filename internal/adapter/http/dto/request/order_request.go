package request

import (
	"strings"

	"pesapal_gateway/internal/domain/entities"
	"pesapal_gateway/internal/usecase"
)

type BillingAddressRequest struct {
	EmailAddress string `json:"email_address"`
	PhoneNumber  string `json:"phone_number"`
	CountryCode  string `json:"country_code"`
	FirstName    string `json:"first_name"`
	MiddleName   string `json:"middle_name"`
	LastName     string `json:"last_name"`
	Line1        string `json:"line_1"`
	Line2        string `json:"line_2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	ZipCode      string `json:"zip_code"`
}

// OrderRequest is the payload for POST /v1/orders. Field names follow the
// Pesapal SubmitOrderRequest body, with id accepted as merchant_reference too.
type OrderRequest struct {
	ID                string                `json:"id"`
	MerchantReference string                `json:"merchant_reference"`
	Amount            float64               `json:"amount" binding:"required"`
	Currency          string                `json:"currency" binding:"required"`
	Description       string                `json:"description"`
	CallbackURL       string                `json:"callback_url"`
	NotificationID    string                `json:"notification_id"`
	PaymentMethod     string                `json:"payment_method"`
	BillingAddress    BillingAddressRequest `json:"billing_address"`
}

func (r OrderRequest) ResolveMerchantReference() string {
	if v := strings.TrimSpace(r.ID); v != "" {
		return v
	}
	return strings.TrimSpace(r.MerchantReference)
}

func (r OrderRequest) ToSubmitOrderInput() usecase.SubmitOrderInput {
	b := r.BillingAddress
	return usecase.SubmitOrderInput{
		MerchantReference: r.ResolveMerchantReference(),
		Amount:            r.Amount,
		Currency:          r.Currency,
		Description:       r.Description,
		CallbackURL:       r.CallbackURL,
		NotificationID:    r.NotificationID,
		PaymentMethod:     r.PaymentMethod,
		BillingAddress: entities.BillingAddress{
			EmailAddress: b.EmailAddress,
			PhoneNumber:  b.PhoneNumber,
			CountryCode:  b.CountryCode,
			FirstName:    b.FirstName,
			MiddleName:   b.MiddleName,
			LastName:     b.LastName,
			Line1:        b.Line1,
			Line2:        b.Line2,
			City:         b.City,
			State:        b.State,
			PostalCode:   b.PostalCode,
			ZipCode:      b.ZipCode,
		},
	}
}
