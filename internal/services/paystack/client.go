// Package paystack is the outbound adapter for the Paystack payment gateway.
// It covers exactly three concerns: initializing a charge, verifying a charge
// by reference, and authenticating inbound webhooks by signature. Everything
// else about the gateway is treated as opaque.
package paystack

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrGatewayError = errors.New("payment gateway error")

// Config holds the gateway credentials and client settings.
type Config struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

// Client talks to the Paystack REST API. It is constructed once at startup
// and injected; there is no package-level singleton.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.paystack.co"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		secretKey:  cfg.SecretKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Initialize creates a charge for the given customer and amount in kobo,
// returning the redirect URL and the gateway-issued reference.
func (c *Client) Initialize(ctx context.Context, email string, amountKobo int64) (*InitResult, error) {
	body := map[string]interface{}{
		"email":  email,
		"amount": amountKobo,
	}

	var resp apiResponse[initData]
	if err := c.post(ctx, "/transaction/initialize", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("%w: %s", ErrGatewayError, resp.Message)
	}
	return &InitResult{
		AuthorizationURL: resp.Data.AuthorizationURL,
		AccessCode:       resp.Data.AccessCode,
		Reference:        resp.Data.Reference,
	}, nil
}

// Verify fetches the authoritative status of a charge by reference.
func (c *Client) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	var resp apiResponse[verifyData]
	if err := c.get(ctx, "/transaction/verify/"+reference, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("%w: %s", ErrGatewayError, resp.Message)
	}
	return &VerifyResult{
		Status:     resp.Data.Status,
		AmountKobo: resp.Data.Amount,
		Reference:  resp.Data.Reference,
	}, nil
}

// ValidateSignature authenticates a webhook delivery: HMAC-SHA512 over the
// exact raw body with the secret key must equal the hex signature header.
// Comparison is constant time.
func (c *Client) ValidateSignature(rawBody []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *Client) post(ctx context.Context, path string, body interface{}, dest interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, dest)
}

func (c *Client) get(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, dest)
}

func (c *Client) do(req *http.Request, dest interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: upstream returned %d", ErrGatewayError, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: invalid response: %v", ErrGatewayError, err)
	}
	return nil
}
