package payments

import (
	"errors"
	"fmt"
)

var (
	ErrMissingPesapalCredentials = errors.New("missing PESAPAL_CONSUMER_KEY or PESAPAL_CONSUMER_SECRET")
	ErrAuthentication            = errors.New("pesapal authentication failed")
	ErrRegistration              = errors.New("pesapal ipn registration failed")
	ErrGateway                   = errors.New("pesapal request failed")
	ErrTransport                 = errors.New("pesapal transport failure")
	ErrInvalidResponse           = errors.New("pesapal returned an invalid response")
)

const (
	unknownErrorMessage  = "Unknown error"
	requestFailedMessage = "Request failed"
	missingIPNIDMessage  = "ipn_id missing from response"
)

// AuthenticationError is returned when RequestToken answers without a token.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return "Authentication failed: " + e.Message
}

func (e *AuthenticationError) Is(target error) bool { return target == ErrAuthentication }

// RegistrationError is returned when RegisterIPN answers without an ipn_id.
type RegistrationError struct {
	URL     string
	Message string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("IPN registration failed for %s: %s", e.URL, e.Message)
}

func (e *RegistrationError) Is(target error) bool { return target == ErrRegistration }

// GatewayError is a request Pesapal rejected, either through the HTTP status
// or through the status field embedded in the body.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("API Error (http %d): %s", e.StatusCode, e.Message)
}

func (e *GatewayError) Is(target error) bool { return target == ErrGateway }

// TransportError is a request that never produced an HTTP response.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error calling %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }
