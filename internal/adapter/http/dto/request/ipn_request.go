package request

import (
	"strings"

	"pesapal_gateway/internal/domain/entities"
)

type RegisterIPNRequest struct {
	URL          string `json:"url" binding:"required"`
	ForceRefresh bool   `json:"force_refresh"`
}

// IPNCallbackRequest is what Pesapal sends to the registered IPN URL, as query
// parameters on GET and as a JSON body on POST.
type IPNCallbackRequest struct {
	OrderTrackingID        string `form:"OrderTrackingId" json:"OrderTrackingId"`
	OrderMerchantReference string `form:"OrderMerchantReference" json:"OrderMerchantReference"`
	OrderNotificationType  string `form:"OrderNotificationType" json:"OrderNotificationType"`
}

func (r IPNCallbackRequest) ToEvent() entities.IPNEvent {
	return entities.IPNEvent{
		OrderTrackingID:        strings.TrimSpace(r.OrderTrackingID),
		OrderMerchantReference: strings.TrimSpace(r.OrderMerchantReference),
		OrderNotificationType:  strings.TrimSpace(r.OrderNotificationType),
	}
}
