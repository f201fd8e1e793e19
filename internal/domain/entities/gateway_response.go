package entities

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GatewayResponse is a decoded Pesapal JSON body.
//
// Pesapal schemas vary per endpoint and per payment method, so the body is kept
// verbatim and callers read the fields they need.

type GatewayResponse map[string]any

// String returns the value stored under key rendered as a string, or "" when absent.
func (r GatewayResponse) String(key string) string {
	if r == nil {
		return ""
	}
	return stringify(r[key])
}

// Has reports whether key is present with a non-null value.
func (r GatewayResponse) Has(key string) bool {
	if r == nil {
		return false
	}
	v, ok := r[key]
	return ok && v != nil
}

// ErrorMessage extracts the gateway error text: error.message first, then a
// top-level error value. It returns "" when neither is present.
func (r GatewayResponse) ErrorMessage() string {
	if r == nil {
		return ""
	}
	raw, ok := r["error"]
	if !ok || raw == nil {
		return ""
	}
	if nested, ok := raw.(map[string]any); ok {
		if msg := stringify(nested["message"]); msg != "" {
			return msg
		}
	}
	return stringify(raw)
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64, bool, int, int64:
		return fmt.Sprintf("%v", t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}

// OrderDetails is the order payload forwarded to SubmitOrderRequest.
//
// Expected keys: id, currency, amount, description, callback_url,
// notification_id, billing_address and optionally payment_method.

type OrderDetails map[string]any

const (
	OrderFieldID             = "id"
	OrderFieldCallbackURL    = "callback_url"
	OrderFieldNotificationID = "notification_id"
)

// Clone returns a shallow copy so callers' maps are never mutated.
func (d OrderDetails) Clone() OrderDetails {
	out := make(OrderDetails, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	return out
}

// String returns the value stored under key as a trimmed string.
func (d OrderDetails) String(key string) string {
	if d == nil {
		return ""
	}
	return stringify(d[key])
}
