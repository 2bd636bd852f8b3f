package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrUpstreamTimeout marks a processor call that exceeded its deadline.
	// Callers on a synchronous path should surface it as retryable.
	ErrUpstreamTimeout = errors.New("payment processor request timed out")
	// ErrUpstream marks any other failed processor call.
	ErrUpstream = errors.New("payment processor request failed")
)

// Client talks to the payment processor's checkout-session API.
type Client struct {
	http *resty.Client
}

// NewClient builds a processor client against the configured endpoint. Every
// request is bounded by the given timeout.
func NewClient(baseURL, secretKey string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetAuthToken(secretKey).
			SetHeader("Content-Type", "application/json").
			SetTimeout(timeout),
	}
}

// CreateCheckoutSession creates a hosted checkout session on the processor.
// The session-id placeholder is appended to the success URL so the redirected
// page can recover the session id.
func (c *Client) CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error) {
	params.SuccessURL = appendSessionPlaceholder(params.SuccessURL)

	var session CheckoutSession
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(params).
		SetResult(&session).
		Post("/v1/checkout/sessions")
	if err != nil {
		return nil, wrapTransportError("create checkout session", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: create checkout session returned %d: %s", ErrUpstream, resp.StatusCode(), resp.String())
	}
	return &session, nil
}

// GetCheckoutSession fetches the current state of a checkout session.
func (c *Client) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	var session CheckoutSession
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&session).
		SetPathParam("id", sessionID).
		Get("/v1/checkout/sessions/{id}")
	if err != nil {
		return nil, wrapTransportError("get checkout session", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: get checkout session returned %d: %s", ErrUpstream, resp.StatusCode(), resp.String())
	}
	return &session, nil
}

func appendSessionPlaceholder(successURL string) string {
	if strings.Contains(successURL, SessionIDPlaceholder) {
		return successURL
	}
	sep := "?"
	if strings.Contains(successURL, "?") {
		sep = "&"
	}
	return successURL + sep + "session_id=" + SessionIDPlaceholder
}

func wrapTransportError(op string, err error) error {
	if isTimeout(err) {
		return fmt.Errorf("%w: %s: %v", ErrUpstreamTimeout, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrUpstream, op, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
