package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotConfigured reports a checkout attempt with no Stripe key set.
var ErrNotConfigured = errors.New("stripe is not configured")

// StripeClient creates checkout sessions over Stripe's form-encoded HTTP API.
type StripeClient struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client

	SuccessURL string
	CancelURL  string
}

// NewStripeClient returns a client for api.stripe.com. An empty key yields a
// client whose calls fail with ErrNotConfigured.
func NewStripeClient(secretKey string) *StripeClient {
	return &StripeClient{
		secretKey:  secretKey,
		baseURL:    "https://api.stripe.com",
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether a secret key is present.
func (c *StripeClient) Configured() bool {
	return c.secretKey != ""
}

// CheckoutRequest describes the subscription to sell.
type CheckoutRequest struct {
	CompanyID       int64
	CompanyName     string
	Email           string
	DriverCount     int
	UnitAmountCents int
}

// CreateCheckoutSession creates a monthly subscription checkout and returns
// the hosted payment URL.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	if req.DriverCount <= 0 {
		return "", fmt.Errorf("driver count must be positive")
	}

	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("customer_email", req.Email)
	form.Add("payment_method_types[]", "card")
	form.Set("line_items[0][price_data][currency]", "usd")
	form.Set("line_items[0][price_data][unit_amount]", strconv.Itoa(req.UnitAmountCents))
	form.Set("line_items[0][price_data][recurring][interval]", "month")
	form.Set("line_items[0][price_data][product_data][name]", "FreightQuick Driver Subscription")
	form.Set("line_items[0][price_data][product_data][description]",
		fmt.Sprintf("Fleet management for %s", req.CompanyName))
	form.Set("line_items[0][quantity]", strconv.Itoa(req.DriverCount))
	form.Set("metadata[company_id]", strconv.FormatInt(req.CompanyID, 10))
	form.Set("metadata[company_name]", req.CompanyName)
	form.Set("success_url", c.SuccessURL)
	form.Set("cancel_url", c.CancelURL)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build stripe request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read stripe response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var stripeErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(body, &stripeErr) == nil && stripeErr.Error.Message != "" {
			return "", fmt.Errorf("stripe: %s", stripeErr.Error.Message)
		}
		return "", fmt.Errorf("stripe returned status %d", resp.StatusCode)
	}

	var session struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &session); err != nil {
		return "", fmt.Errorf("failed to parse stripe session: %w", err)
	}
	return session.URL, nil
}
