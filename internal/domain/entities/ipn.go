package entities

// IPNEvent is the query string Pesapal sends to a registered callback URL.
type IPNEvent struct {
	OrderTrackingID        string `json:"OrderTrackingId"`
	OrderMerchantReference string `json:"OrderMerchantReference"`
	OrderNotificationType  string `json:"OrderNotificationType"`
}

// IPNAck is the acknowledgement body Pesapal expects from a callback URL.
// Status is 200 when the notification was processed and 500 otherwise.
type IPNAck struct {
	OrderNotificationType  string `json:"orderNotificationType"`
	OrderTrackingID        string `json:"orderTrackingId"`
	OrderMerchantReference string `json:"orderMerchantReference"`
	Status                 int    `json:"status"`
}
