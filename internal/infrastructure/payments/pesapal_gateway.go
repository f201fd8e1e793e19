package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"pesapal_gateway/internal/domain/entities"
	"pesapal_gateway/internal/infrastructure/kvstore"

	"golang.org/x/sync/singleflight"
)

const (
	SandboxBaseURL = "https://cybqa.pesapal.com/pesapalv3"
	LiveBaseURL    = "https://pay.pesapal.com/v3"

	EndpointRequestToken         = "/api/Auth/RequestToken"
	EndpointRegisterIPN          = "/api/URLSetup/RegisterIPN"
	EndpointSubmitOrderRequest   = "/api/Transactions/SubmitOrderRequest"
	EndpointGetTransactionStatus = "/api/Transactions/GetTransactionStatus"

	// NotificationIDKey is the store key holding the registered IPN id.
	NotificationIDKey = "notification_id"

	DefaultHTTPTimeout = 30 * time.Second

	ipnNotificationTypeGET = "GET"
	tokenFlightKey         = "token"
	refreshFlightKey       = "token-refresh"
	maxResponseBytes       = 1 << 20
)

// PesapalGateway is a Pesapal API 3.0 client.
//
// The bearer token and the IPN notification id are acquired lazily on first
// use and then reused for the lifetime of the value. Tokens are not
// expiry-checked; call Authenticate to force a new one. The notification id
// is also persisted in a kvstore.Store so it survives restarts; the stored
// value always wins over a new registration unless forceRefresh is set.
//
// A PesapalGateway is safe for concurrent use.
type PesapalGateway struct {
	consumerKey    string
	consumerSecret string
	baseURL        string
	httpClient     *http.Client
	store          kvstore.Store

	mu             sync.Mutex
	accessToken    string
	notificationID string

	tokenFlight singleflight.Group
	ipnMu       sync.Mutex
}

type Option func(*PesapalGateway)

// WithHTTPClient replaces the default client (which has DefaultHTTPTimeout).
func WithHTTPClient(c *http.Client) Option {
	return func(g *PesapalGateway) {
		if c != nil {
			g.httpClient = c
		}
	}
}

// WithTimeout sets the request timeout on a copy of the current client; a
// client passed to WithHTTPClient is not modified.
func WithTimeout(d time.Duration) Option {
	return func(g *PesapalGateway) {
		if d > 0 {
			c := *g.httpClient
			c.Timeout = d
			g.httpClient = &c
		}
	}
}

// WithBaseURL overrides the environment-selected base URL.
func WithBaseURL(baseURL string) Option {
	return func(g *PesapalGateway) {
		if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
			g.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithStore sets where the notification id is persisted. Defaults to a
// kvstore.FileStore at kvstore.DefaultFilePath.
func WithStore(s kvstore.Store) Option {
	return func(g *PesapalGateway) {
		if s != nil {
			g.store = s
		}
	}
}

// WithNotificationID seeds the in-memory notification id, e.g. from PESAPAL_IPN_ID.
func WithNotificationID(id string) Option {
	return func(g *PesapalGateway) {
		g.notificationID = strings.TrimSpace(id)
	}
}

func NewPesapalGateway(consumerKey, consumerSecret string, isLive bool, opts ...Option) (*PesapalGateway, error) {
	consumerKey = strings.TrimSpace(consumerKey)
	consumerSecret = strings.TrimSpace(consumerSecret)
	if consumerKey == "" || consumerSecret == "" {
		log.Printf("[pesapal][gateway] missing consumer credentials")
		return nil, ErrMissingPesapalCredentials
	}

	baseURL := SandboxBaseURL
	if isLive {
		baseURL = LiveBaseURL
	}

	g := &PesapalGateway{
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		baseURL:        baseURL,
		httpClient:     &http.Client{Timeout: DefaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.store == nil {
		g.store = kvstore.NewFileStore(kvstore.DefaultFilePath)
	}
	log.Printf("[pesapal][gateway] client initialized base_url=%s live=%t", g.baseURL, isLive)

	return g, nil
}

// BaseURL returns the API root the client talks to.
func (g *PesapalGateway) BaseURL() string { return g.baseURL }

// Authenticate requests a new bearer token, replacing any cached one.
// Concurrent Authenticate callers share a single RequestToken call, but never
// join a lazy fetch started by AccessToken.
func (g *PesapalGateway) Authenticate(ctx context.Context) (string, error) {
	return g.acquireToken(ctx, true)
}

// AccessToken returns the cached bearer token, authenticating on first use.
func (g *PesapalGateway) AccessToken(ctx context.Context) (string, error) {
	g.mu.Lock()
	token := g.accessToken
	g.mu.Unlock()
	if token != "" {
		return token, nil
	}
	return g.acquireToken(ctx, false)
}

func (g *PesapalGateway) acquireToken(ctx context.Context, force bool) (string, error) {
	key := tokenFlightKey
	if force {
		key = refreshFlightKey
	}
	v, err, _ := g.tokenFlight.Do(key, func() (any, error) {
		if !force {
			g.mu.Lock()
			token := g.accessToken
			g.mu.Unlock()
			if token != "" {
				return token, nil
			}
		}
		return g.authenticate(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (g *PesapalGateway) authenticate(ctx context.Context) (string, error) {
	log.Printf("[pesapal][gateway] authenticate start")
	payload := map[string]string{
		"consumer_key":    g.consumerKey,
		"consumer_secret": g.consumerSecret,
	}

	resp, err := g.request(ctx, EndpointRequestToken, http.MethodPost, payload)
	if err != nil {
		log.Printf("[pesapal][gateway] authenticate failed err=%v", err)
		return "", err
	}

	token := resp.String("token")
	if token == "" {
		msg := resp.ErrorMessage()
		if msg == "" {
			msg = unknownErrorMessage
		}
		log.Printf("[pesapal][gateway] authenticate failed: no token in response err=%s", msg)
		return "", &AuthenticationError{Message: msg}
	}

	g.mu.Lock()
	g.accessToken = token
	g.mu.Unlock()
	log.Printf("[pesapal][gateway] authenticate success")

	return token, nil
}

// RegisterIPN registers url as a GET notification endpoint and returns the
// decoded response verbatim; on success it carries ipn_id.
func (g *PesapalGateway) RegisterIPN(ctx context.Context, ipnURL string) (entities.GatewayResponse, error) {
	log.Printf("[pesapal][gateway] register-ipn start url=%s", ipnURL)
	payload := map[string]string{
		"url":                   ipnURL,
		"ipn_notification_type": ipnNotificationTypeGET,
	}

	resp, err := g.request(ctx, EndpointRegisterIPN, http.MethodPost, payload)
	if err != nil {
		log.Printf("[pesapal][gateway] register-ipn failed url=%s err=%v", ipnURL, err)
		return nil, err
	}
	log.Printf("[pesapal][gateway] register-ipn success url=%s ipn_id=%s", ipnURL, resp.String("ipn_id"))
	return resp, nil
}

// NotificationID returns the IPN id to attach to orders.
//
// Lookup order: the store, then the in-memory value, then a fresh
// RegisterIPN(callbackURL) whose id is cached and written to the store.
// forceRefresh skips both caches. A stored id is never validated against the
// gateway.
func (g *PesapalGateway) NotificationID(ctx context.Context, callbackURL string, forceRefresh bool) (string, error) {
	g.ipnMu.Lock()
	defer g.ipnMu.Unlock()

	if !forceRefresh {
		id, found, err := g.store.Get(ctx, NotificationIDKey)
		if err != nil {
			log.Printf("[pesapal][gateway] notification id cache unreadable; ignoring err=%v", err)
		} else if found && id != "" {
			g.setNotificationID(id)
			return id, nil
		}

		g.mu.Lock()
		id = g.notificationID
		g.mu.Unlock()
		if id != "" {
			return id, nil
		}
	}

	resp, err := g.RegisterIPN(ctx, callbackURL)
	if err != nil {
		return "", err
	}

	id := resp.String("ipn_id")
	if id == "" {
		msg := resp.ErrorMessage()
		if msg == "" {
			msg = missingIPNIDMessage
		}
		return "", &RegistrationError{URL: callbackURL, Message: msg}
	}

	g.setNotificationID(id)
	if err := g.store.Set(ctx, NotificationIDKey, id); err != nil {
		log.Printf("[pesapal][gateway] failed persisting notification id ipn_id=%s err=%v", id, err)
	}
	return id, nil
}

func (g *PesapalGateway) setNotificationID(id string) {
	g.mu.Lock()
	g.notificationID = id
	g.mu.Unlock()
}

// SubmitOrder sends order to SubmitOrderRequest. When the order has no
// notification_id one is derived from its callback_url via NotificationID.
// The caller's map is not modified.
//
// A successful response carries order_tracking_id and redirect_url; callers
// should still check for an error field.
func (g *PesapalGateway) SubmitOrder(ctx context.Context, order entities.OrderDetails) (entities.GatewayResponse, error) {
	details := order.Clone()
	reference := details.String(entities.OrderFieldID)
	log.Printf("[pesapal][gateway] submit-order start merchant_reference=%s", reference)

	if details.String(entities.OrderFieldNotificationID) == "" {
		id, err := g.NotificationID(ctx, details.String(entities.OrderFieldCallbackURL), false)
		if err != nil {
			log.Printf("[pesapal][gateway] submit-order notification id failed merchant_reference=%s err=%v", reference, err)
			return nil, err
		}
		details[entities.OrderFieldNotificationID] = id
	}

	resp, err := g.request(ctx, EndpointSubmitOrderRequest, http.MethodPost, details)
	if err != nil {
		log.Printf("[pesapal][gateway] submit-order failed merchant_reference=%s err=%v", reference, err)
		return nil, err
	}
	log.Printf("[pesapal][gateway] submit-order success merchant_reference=%s order_tracking_id=%s", reference, resp.String("order_tracking_id"))
	return resp, nil
}

// GetTransactionStatus looks up a submitted order by its tracking id and
// returns the decoded response verbatim.
func (g *PesapalGateway) GetTransactionStatus(ctx context.Context, orderTrackingID string) (entities.GatewayResponse, error) {
	log.Printf("[pesapal][gateway] transaction-status start order_tracking_id=%s", orderTrackingID)
	q := url.Values{}
	q.Set("orderTrackingId", orderTrackingID)

	resp, err := g.request(ctx, EndpointGetTransactionStatus+"?"+q.Encode(), http.MethodGet, nil)
	if err != nil {
		log.Printf("[pesapal][gateway] transaction-status failed order_tracking_id=%s err=%v", orderTrackingID, err)
		return nil, err
	}
	log.Printf("[pesapal][gateway] transaction-status success order_tracking_id=%s payment_status=%s", orderTrackingID, resp.String("payment_status_description"))
	return resp, nil
}

// request performs one JSON call. Every endpoint except RequestToken carries
// the bearer token.
//
// A call fails on transport error, on HTTP status >= 400, or when the body has
// a status field that is not the string "200" or "0". Pesapal reports some
// errors with HTTP 200 and an embedded status, so both checks are needed.
func (g *PesapalGateway) request(ctx context.Context, endpoint, method string, payload any) (entities.GatewayResponse, error) {
	var body io.Reader
	if payload != nil && method != http.MethodGet {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", endpoint, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if endpoint != EndpointRequestToken {
		token, err := g.AccessToken(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	decoded := entities.GatewayResponse{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			if res.StatusCode >= http.StatusBadRequest {
				return nil, &GatewayError{StatusCode: res.StatusCode, Message: requestFailedMessage}
			}
			return nil, fmt.Errorf("%w: decode %s (http %d): %v", ErrInvalidResponse, endpoint, res.StatusCode, err)
		}
	}

	if isFailure(res.StatusCode, decoded) {
		msg := decoded.ErrorMessage()
		if msg == "" {
			msg = requestFailedMessage
		}
		return nil, &GatewayError{StatusCode: res.StatusCode, Message: msg}
	}

	return decoded, nil
}

func isFailure(statusCode int, body entities.GatewayResponse) bool {
	if statusCode >= http.StatusBadRequest {
		return true
	}
	if !body.Has("status") {
		return false
	}
	s, ok := body["status"].(string)
	return !ok || (s != "200" && s != "0")
}
